// Package api is the HTTP gateway to the iCare backend. It owns URL
// construction, authentication headers, the two request encodings (JSON and
// multipart), and the error taxonomy every screen branches on. Each call is
// exactly one network request: no retry, no queue, no cache.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// ErrNotLoggedIn is returned when an authenticated call is attempted with no
// stored token. Screens should guard before calling so this stays rare.
var ErrNotLoggedIn = errors.New("api: not logged in")

// TokenStore supplies the session token and accepts the forced clear that a
// 401 triggers. *session.Store satisfies it.
type TokenStore interface {
	Token() (string, bool)
	Clear() error
}

// Client talks to one backend origin.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	tokens      TokenStore
	logger      *zap.Logger
	chatTimeout time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient swaps the underlying transport (tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithChatTimeout bounds unified-chat calls. Zero disables the bound.
func WithChatTimeout(d time.Duration) Option {
	return func(c *Client) { c.chatTimeout = d }
}

// WithLogger attaches a logger for request tracing.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// DefaultChatTimeout matches the original client's 30s bound on the unified
// chat endpoint.
const DefaultChatTimeout = 30 * time.Second

// NewClient builds a client for baseURL. tokens may be nil for a client that
// only ever performs unauthenticated calls.
func NewClient(baseURL string, tokens TokenStore, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:     baseURL,
		httpClient:  &http.Client{},
		tokens:      tokens,
		logger:      zap.NewNop(),
		chatTimeout: DefaultChatTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL reports the configured origin.
func (c *Client) BaseURL() string { return c.baseURL }

type callOpts struct {
	authed  bool
	timeout time.Duration
}

// do issues one request and decodes the 2xx body into out (when non-nil).
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, opts callOpts, out any) error {
	if opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request %s %s: %w", method, path, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if opts.authed {
		if c.tokens == nil {
			return ErrNotLoggedIn
		}
		token, ok := c.tokens.Token()
		if !ok {
			return ErrNotLoggedIn
		}
		req.Header.Set("Authorization", "Token "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.classifyTransport(method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Kind: KindNetwork, Err: fmt.Errorf("read response: %w", err)}
	}

	c.logger.Debug("api call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if err := c.classifyStatus(resp.StatusCode, respBody, opts.authed); err != nil {
		return err
	}

	if out != nil && len(respBody) > 0 {
		dec := json.NewDecoder(bytes.NewReader(respBody))
		dec.UseNumber()
		if err := dec.Decode(out); err != nil {
			return &Error{Kind: KindServer, StatusCode: resp.StatusCode,
				Err: fmt.Errorf("decode response: %w", err)}
		}
	}
	return nil
}

func (c *Client) classifyTransport(method, path string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: KindTimeout, Err: err}
	}
	var uerr *url.Error
	if errors.As(err, &uerr) && uerr.Timeout() {
		return &Error{Kind: KindTimeout, Err: err}
	}
	return &Error{Kind: KindNetwork, Err: fmt.Errorf("%s %s: %w", method, path, err)}
}

func (c *Client) classifyStatus(status int, body []byte, authed bool) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusUnauthorized && authed:
		// Token expiry is only ever observed here. Drop the stored token so
		// the next screen sees a logged-out session.
		if c.tokens != nil {
			_ = c.tokens.Clear()
		}
		return &Error{Kind: KindAuthExpired, StatusCode: status}
	case status == http.StatusBadRequest:
		return &Error{Kind: KindValidation, StatusCode: status,
			Message: firstValidationMessage(body)}
	default:
		return &Error{Kind: KindServer, StatusCode: status,
			Message: firstValidationMessage(body)}
	}
}

func (c *Client) postJSON(ctx context.Context, path string, in, out any, opts callOpts) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode request body: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, bytes.NewReader(payload), "application/json", opts, out)
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, "", callOpts{authed: true}, out)
}

// ---------------------------------------------------------------------------
// Auth and profile

// Login exchanges credentials for a token. Unauthenticated.
func (c *Client) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	var resp LoginResponse
	err := c.postJSON(ctx, EndpointLogin, req, &resp, callOpts{})
	return resp, err
}

// Register creates an account. Unauthenticated.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (RegisterResponse, error) {
	var resp RegisterResponse
	err := c.postJSON(ctx, EndpointRegister, req, &resp, callOpts{})
	return resp, err
}

// Logout invalidates the token server-side.
func (c *Client) Logout(ctx context.Context) error {
	return c.postJSON(ctx, EndpointLogout, struct{}{}, nil, callOpts{authed: true})
}

// DeleteAccount removes the account and its token.
func (c *Client) DeleteAccount(ctx context.Context) (MessageResponse, error) {
	var resp MessageResponse
	err := c.do(ctx, http.MethodDelete, EndpointDelete, nil, "", callOpts{authed: true}, &resp)
	return resp, err
}

// FetchProfile returns the current account info.
func (c *Client) FetchProfile(ctx context.Context) (Profile, error) {
	var resp Profile
	err := c.getJSON(ctx, EndpointProfile, &resp)
	return resp, err
}

// UpdateLocation stores new coordinates on the profile.
func (c *Client) UpdateLocation(ctx context.Context, loc Location) (MessageResponse, error) {
	var resp MessageResponse
	err := c.postJSON(ctx, EndpointUpdateLocation, loc, &resp, callOpts{authed: true})
	return resp, err
}

// ---------------------------------------------------------------------------
// Chat

// Chat sends a text message to the unified endpoint. The configured chat
// timeout applies; exceeding it yields KindTimeout, not KindNetwork.
func (c *Client) Chat(ctx context.Context, message, sessionID string) (Envelope, error) {
	var env Envelope
	err := c.postJSON(ctx, EndpointChat, ChatRequest{Message: message, SessionID: sessionID},
		&env, callOpts{authed: true, timeout: c.chatTimeout})
	return env, err
}

// VoiceChat uploads a WAV clip for transcription and a spoken reply. The
// reply envelope additionally carries input_text and base64 audio.
func (c *Client) VoiceChat(ctx context.Context, wav []byte, sessionID string) (Envelope, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("audio", "audio.wav")
	if err != nil {
		return Envelope{}, fmt.Errorf("create audio part: %w", err)
	}
	if _, err := part.Write(wav); err != nil {
		return Envelope{}, fmt.Errorf("write audio part: %w", err)
	}
	if err := w.WriteField("session_id", sessionID); err != nil {
		return Envelope{}, fmt.Errorf("write session_id field: %w", err)
	}
	if err := w.WriteField("need_voice", "true"); err != nil {
		return Envelope{}, fmt.Errorf("write need_voice field: %w", err)
	}
	if err := w.Close(); err != nil {
		return Envelope{}, fmt.Errorf("close multipart writer: %w", err)
	}

	var env Envelope
	err = c.do(ctx, http.MethodPost, EndpointChat, &buf, w.FormDataContentType(),
		callOpts{authed: true}, &env)
	return env, err
}

// ---------------------------------------------------------------------------
// Dedicated search lists

// HospitalList fetches the nearby/open hospital variant. Records arrive
// already uniform.
func (c *Client) HospitalList(ctx context.Context, kind ListKind) ([]HospitalRecord, error) {
	var raw []map[string]any
	if err := c.getJSON(ctx, hospitalListPath(kind), &raw); err != nil {
		return nil, err
	}
	return Hospitals(raw), nil
}

// PharmacyList fetches the nearby/open pharmacy variant. Records arrive
// Korean-keyed and are normalized at this boundary.
func (c *Client) PharmacyList(ctx context.Context, kind ListKind) ([]PharmacyRecord, error) {
	var raw []map[string]any
	if err := c.getJSON(ctx, pharmacyListPath(kind), &raw); err != nil {
		return nil, err
	}
	return Pharmacies(raw), nil
}

// ---------------------------------------------------------------------------
// Prescriptions

// UploadPrescription sends a document image through the OCR pipeline.
func (c *Client) UploadPrescription(ctx context.Context, image []byte, filename, childName string) (PrescriptionUploadResult, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("image", filepath.Base(filename))
	if err != nil {
		return PrescriptionUploadResult{}, fmt.Errorf("create image part: %w", err)
	}
	if _, err := part.Write(image); err != nil {
		return PrescriptionUploadResult{}, fmt.Errorf("write image part: %w", err)
	}
	if err := w.WriteField("child_name", childName); err != nil {
		return PrescriptionUploadResult{}, fmt.Errorf("write child_name field: %w", err)
	}
	if err := w.Close(); err != nil {
		return PrescriptionUploadResult{}, fmt.Errorf("close multipart writer: %w", err)
	}

	var resp PrescriptionUploadResult
	err = c.do(ctx, http.MethodPost, EndpointPrescriptionOCR, &buf, w.FormDataContentType(),
		callOpts{authed: true}, &resp)
	return resp, err
}

// Prescriptions lists every stored document, newest first.
func (c *Client) Prescriptions(ctx context.Context) (PrescriptionList, error) {
	var resp PrescriptionList
	err := c.getJSON(ctx, EndpointPrescriptionList, &resp)
	return resp, err
}

// PrescriptionsByDate lists documents ordered for the calendar view.
func (c *Client) PrescriptionsByDate(ctx context.Context) (PrescriptionList, error) {
	var resp PrescriptionList
	err := c.getJSON(ctx, EndpointPrescriptionByDate, &resp)
	return resp, err
}

// PrescriptionDetail fetches one document with its medicine rows.
func (c *Client) PrescriptionDetail(ctx context.Context, id int) (PrescriptionDetailResult, error) {
	var resp PrescriptionDetailResult
	err := c.getJSON(ctx, prescriptionDetailPath(id), &resp)
	return resp, err
}

// DeletePrescription removes one document.
func (c *Client) DeletePrescription(ctx context.Context, id int) (MessageResponse, error) {
	var resp MessageResponse
	err := c.do(ctx, http.MethodDelete, prescriptionDeletePath(id), nil, "",
		callOpts{authed: true}, &resp)
	return resp, err
}

// ---------------------------------------------------------------------------
// Drug info

// DrugInfo queries the public drug information service. Unauthenticated.
func (c *Client) DrugInfo(ctx context.Context, drugName string) (DrugInfoResponse, error) {
	var resp DrugInfoResponse
	err := c.postJSON(ctx, EndpointDrugInfo, DrugInfoRequest{DrugName: drugName}, &resp, callOpts{})
	return resp, err
}
