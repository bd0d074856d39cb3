package api

import (
	"encoding/json"
	"testing"
)

func TestFormatClock(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{900, "09:00"},
		{1730, "17:30"},
		{0, ""},
		{-1, ""},
		{5, "00:05"},
		{2359, "23:59"},
	}
	for _, tt := range tests {
		if got := FormatClock(tt.in); got != tt.want {
			t.Errorf("FormatClock(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCoerceClock(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want int
	}{
		{"nil", nil, 0},
		{"int", 900, 900},
		{"float64", float64(1730), 1730},
		{"json number", json.Number("930"), 930},
		{"numeric string", "900", 900},
		{"colon string", "09:00", 900},
		{"blank string", "  ", 0},
		{"garbage", "정보없음", 0},
		{"bool", true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CoerceClock(tt.in); got != tt.want {
				t.Fatalf("CoerceClock(%v) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestPharmacyFromMapKoreanKeys(t *testing.T) {
	m := map[string]any{
		"약국명":   "온누리약국",
		"주소":    "서울시 강북구",
		"전화":    "02-111-2222",
		"영업 시간": "09:00 ~ 21:00",
		"거리":    "0.8km",
		"영업 상태": "영업중",
	}
	got := PharmacyFromMap(m)
	if got.Name != "온누리약국" || got.Hours != "09:00 ~ 21:00" || got.State != "영업중" {
		t.Fatalf("PharmacyFromMap = %+v", got)
	}
	if got.OpeningTime != 0 || got.ClosingTime != 0 {
		t.Fatalf("dedicated-endpoint record should pass through without times: %+v", got)
	}
}

func TestHospitalFromMapMissingFields(t *testing.T) {
	got := HospitalFromMap(map[string]any{"name": "아이병원"})
	if got.Name != "아이병원" {
		t.Fatalf("Name = %q", got.Name)
	}
	if got.HoursRange() != "" {
		t.Fatalf("HoursRange with no times = %q, want empty", got.HoursRange())
	}
}
