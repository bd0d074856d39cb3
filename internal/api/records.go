package api

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// HospitalRecord is the uniform shape every hospital entry is normalized to
// before it enters application state, whichever endpoint produced it.
type HospitalRecord struct {
	Name        string
	Category    string // hospital_type label, e.g. "소아과"
	Address     string
	Phone       string
	OpeningTime int // HHMM, 0 when unknown
	ClosingTime int // HHMM, 0 when unknown
	Distance    string
	State       string // operating-state label, e.g. "영업중"
}

// PharmacyRecord is the uniform pharmacy shape. The backend serves two source
// schemas: the unified chat endpoint and the dedicated list endpoint both key
// pharmacy fields in Korean, with the chat variant adding numeric HHMM times.
type PharmacyRecord struct {
	Name        string
	Address     string
	Phone       string
	Hours       string // display-ready "09:00 ~ 18:00" or "정보없음"
	OpeningTime int    // HHMM when the chat endpoint supplied it, else 0
	ClosingTime int
	Distance    string
	State       string
}

// Korean field names used by the pharmacy payloads.
const (
	pharmacyKeyName     = "약국명"
	pharmacyKeyAddress  = "주소"
	pharmacyKeyHours    = "영업 시간"
	pharmacyKeyPhone    = "전화"
	pharmacyKeyDistance = "거리"
	pharmacyKeyState    = "영업 상태"
)

// FormatClock renders an HHMM integer as "HH:MM". Zero or negative values
// mean "unknown" and render empty, matching the original display rule.
func FormatClock(hhmm int) string {
	if hhmm <= 0 {
		return ""
	}
	return fmt.Sprintf("%02d:%02d", hhmm/100, hhmm%100)
}

// CoerceClock folds the JSON encodings the backend emits for HHMM times
// (number, numeric string, json.Number) into a plain int. Anything
// unparseable collapses to 0, the "unknown" value.
func CoerceClock(v any) int {
	switch t := v.(type) {
	case nil:
		return 0
	case int:
		return t
	case int64:
		return int(t)
	case float64:
		return int(t)
	case json.Number:
		n, err := t.Int64()
		if err != nil {
			return 0
		}
		return int(n)
	case string:
		s := strings.TrimSpace(strings.ReplaceAll(t, ":", ""))
		if s == "" {
			return 0
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

func stringField(m map[string]any, key string) string {
	v, ok := m[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// HospitalFromMap normalizes one hospital entry.
func HospitalFromMap(m map[string]any) HospitalRecord {
	return HospitalRecord{
		Name:        stringField(m, "name"),
		Category:    stringField(m, "hospital_type"),
		Address:     stringField(m, "address"),
		Phone:       stringField(m, "phone"),
		OpeningTime: CoerceClock(m["opening_time"]),
		ClosingTime: CoerceClock(m["closing_time"]),
		Distance:    stringField(m, "distance"),
		State:       stringField(m, "state"),
	}
}

// PharmacyFromMap normalizes one Korean-keyed pharmacy entry.
func PharmacyFromMap(m map[string]any) PharmacyRecord {
	return PharmacyRecord{
		Name:        stringField(m, pharmacyKeyName),
		Address:     stringField(m, pharmacyKeyAddress),
		Phone:       stringField(m, pharmacyKeyPhone),
		Hours:       stringField(m, pharmacyKeyHours),
		OpeningTime: CoerceClock(m["opening_time"]),
		ClosingTime: CoerceClock(m["closing_time"]),
		Distance:    stringField(m, pharmacyKeyDistance),
		State:       stringField(m, pharmacyKeyState),
	}
}

// Hospitals normalizes a whole data array.
func Hospitals(data []map[string]any) []HospitalRecord {
	out := make([]HospitalRecord, 0, len(data))
	for _, m := range data {
		out = append(out, HospitalFromMap(m))
	}
	return out
}

// Pharmacies normalizes a whole data array.
func Pharmacies(data []map[string]any) []PharmacyRecord {
	out := make([]PharmacyRecord, 0, len(data))
	for _, m := range data {
		out = append(out, PharmacyFromMap(m))
	}
	return out
}

// HoursRange renders a hospital's opening/closing pair for display,
// "09:00 ~ 17:30", or empty when both ends are unknown.
func (h HospitalRecord) HoursRange() string {
	open, close := FormatClock(h.OpeningTime), FormatClock(h.ClosingTime)
	if open == "" && close == "" {
		return ""
	}
	return open + " ~ " + close
}
