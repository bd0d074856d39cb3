package api

import "encoding/json"

// Envelope type discriminators as sent by the unified chat endpoint.
const (
	TypeChat         = "chat"
	TypeHospitalList = "hospital_list"
	TypePharmacyList = "pharmacy_list"
	TypeMulti        = "multi"
	TypeNoResults    = "no_results"
	TypeError        = "error"
)

// Envelope is the server's response to a conversational request. The shape is
// owned by the backend; this is only the contract the client consumes.
type Envelope struct {
	Type         string           `json:"type"`
	StartMessage string           `json:"start_message,omitempty"`
	EndMessage   string           `json:"end_message,omitempty"`
	Data         []map[string]any `json:"data,omitempty"`
	// Responses carries ordered nested envelopes when Type is "multi".
	Responses []Envelope `json:"responses,omitempty"`
	SessionID string     `json:"session_id,omitempty"`

	// Voice fields, present on multipart (audio) requests only.
	InputText string `json:"input_text,omitempty"`
	Audio     string `json:"audio,omitempty"`
	AudioType string `json:"audio_type,omitempty"`
}

// ChatRequest is the JSON body for a text message to the unified endpoint.
type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

// LoginRequest authenticates by email.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the opaque token plus basic account info.
type LoginResponse struct {
	Token string  `json:"token"`
	User  Profile `json:"user"`
}

// Profile is the persisted "last known user" blob.
type Profile struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// RegisterRequest mirrors the signup form, location fields optional.
type RegisterRequest struct {
	Username      string   `json:"username"`
	Email         string   `json:"email"`
	Password      string   `json:"password"`
	PasswordCheck string   `json:"passwordCheck"`
	TermAgreed    bool     `json:"term_agreed"`
	Latitude      *float64 `json:"latitude,omitempty"`
	Longitude     *float64 `json:"longitude,omitempty"`
}

// RegisterResponse echoes the created account.
type RegisterResponse struct {
	Username   string `json:"username"`
	Email      string `json:"email"`
	TermAgreed bool   `json:"term_agreed"`
}

// Location updates the profile coordinates used by proximity search.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// MessageResponse is the generic {"message": ...} acknowledgement body.
type MessageResponse struct {
	Message string `json:"message"`
}

// Medicine is one prescribed item inside a prescription detail.
type Medicine struct {
	Name       string `json:"name"`
	Effect     string `json:"effect,omitempty"`
	Dosage     string `json:"dosage,omitempty"`
	Frequency  string `json:"frequency,omitempty"`
	Duration   string `json:"duration,omitempty"`
	Precaution string `json:"precaution,omitempty"`
}

// PharmacyInfo identifies the dispensing pharmacy on a prescription.
type PharmacyInfo struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// Prescription is one stored prescription document, as listed or detailed.
type Prescription struct {
	PrescriptionID     int          `json:"prescription_id"`
	ChildName          string       `json:"child_name"`
	PharmacyName       string       `json:"pharmacy_name,omitempty"`
	PharmacyInfo       PharmacyInfo `json:"pharmacy_info,omitempty"`
	PrescriptionNumber string       `json:"prescription_number"`
	PrescriptionDate   string       `json:"prescription_date"`
	PharmacyAddress    string       `json:"pharmacy_address,omitempty"`
	TotalAmount        json.Number  `json:"total_amount,omitempty"`
	Duration           json.Number  `json:"duration,omitempty"`
	EndDate            string       `json:"end_date,omitempty"`
	Medicines          []Medicine   `json:"medicines,omitempty"`
	CreatedAt          string       `json:"created_at,omitempty"`
}

// PrescriptionList is the {"count": N, "results": [...]} wrapper.
type PrescriptionList struct {
	Count   int            `json:"count"`
	Results []Prescription `json:"results"`
}

// PrescriptionUploadResult is the OCR endpoint's acknowledgement.
type PrescriptionUploadResult struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Data    Prescription `json:"data"`
}

// PrescriptionDetailResult wraps a single document.
type PrescriptionDetailResult struct {
	Success bool         `json:"success"`
	Data    Prescription `json:"data"`
}

// DrugInfoRequest looks up a medicine by product name.
type DrugInfoRequest struct {
	DrugName string `json:"drugName"`
}

// DrugRecord is one entry from the public drug information service.
type DrugRecord struct {
	ItemName      string `json:"itemName"`
	Efficacy      string `json:"efcyQesitm"`
	Precautions   string `json:"atpnQesitm"`
	StorageMethod string `json:"depositMethodQesitm"`
	Manufacturer  string `json:"entpName"`
}

// DrugInfoResponse is discriminated by Type: "success" or "no_results".
type DrugInfoResponse struct {
	Type    string       `json:"type"`
	Message string       `json:"message,omitempty"`
	Data    []DrugRecord `json:"data"`
}
