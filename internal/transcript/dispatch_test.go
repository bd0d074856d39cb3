package transcript

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"icare/internal/api"
)

func TestDispatchBlankMessagesProduceNoEntries(t *testing.T) {
	tests := []struct {
		name string
		env  api.Envelope
	}{
		{name: "chat all blank", env: api.Envelope{Type: api.TypeChat}},
		{name: "chat whitespace only", env: api.Envelope{Type: api.TypeChat, StartMessage: "  ", EndMessage: "\n"}},
		{name: "no_results blank", env: api.Envelope{Type: api.TypeNoResults, StartMessage: "", EndMessage: "   "}},
		{name: "list without data or messages", env: api.Envelope{Type: api.TypeHospitalList}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Dispatch(tt.env); len(got) != 0 {
				t.Fatalf("Dispatch produced %d entries, want 0: %+v", len(got), got)
			}
		})
	}
}

func TestDispatchPlainChat(t *testing.T) {
	env := api.Envelope{
		Type:         api.TypeChat,
		StartMessage: "네, 알겠습니다! 😊",
		EndMessage:   "근처를 검색해볼게요.",
	}

	want := []Entry{
		BotText("네, 알겠습니다! 😊"),
		BotText("근처를 검색해볼게요."),
	}
	if diff := cmp.Diff(want, Dispatch(env)); diff != "" {
		t.Fatalf("Dispatch mismatch (-want +got):\n%s", diff)
	}
}

func TestDispatchNoResults(t *testing.T) {
	env := api.Envelope{
		Type:         api.TypeNoResults,
		StartMessage: "죄송합니다. 현재 영업 중인 약국을 찾을 수 없습니다.",
		EndMessage:   "다른 시간대를 확인해보시거나, 직접 전화로 문의해보세요.",
		Data:         []map[string]any{},
	}

	got := Dispatch(env)
	if len(got) != 2 {
		t.Fatalf("Dispatch produced %d entries, want 2", len(got))
	}
	for _, e := range got {
		if e.Kind != KindBotText {
			t.Fatalf("no_results produced non-text entry %v", e.Kind)
		}
	}
}

func TestDispatchPharmacyList(t *testing.T) {
	env := api.Envelope{
		Type:         api.TypePharmacyList,
		StartMessage: "현재 영업 중인 약국들입니다:",
		EndMessage:   "방문하시기 전에 전화로 확인하시는 것이 좋습니다.",
		Data: []map[string]any{
			{
				"약국명":   "창동메디컬약국",
				"주소":    "서울시 도봉구 마들로13길61",
				"전화":    "02-123-4567",
				"영업 시간": "09:00 ~ 18:00",
				"거리":    "0.4km",
				"영업 상태": "영업중",
			},
		},
	}

	got := Dispatch(env)
	if len(got) != 3 {
		t.Fatalf("Dispatch produced %d entries, want 3", len(got))
	}
	if got[0].Kind != KindBotText || got[2].Kind != KindBotText {
		t.Fatalf("list entry not bracketed by bot text: %+v", got)
	}
	list := got[1]
	if list.Kind != KindPharmacyList || len(list.Pharmacies) != 1 {
		t.Fatalf("middle entry = %+v, want one-pharmacy list", list)
	}

	want := api.PharmacyRecord{
		Name:     "창동메디컬약국",
		Address:  "서울시 도봉구 마들로13길61",
		Phone:    "02-123-4567",
		Hours:    "09:00 ~ 18:00",
		Distance: "0.4km",
		State:    "영업중",
	}
	if diff := cmp.Diff(want, list.Pharmacies[0]); diff != "" {
		t.Fatalf("pharmacy record mismatch (-want +got):\n%s", diff)
	}
}

func TestDispatchHospitalListCoercesStringTimes(t *testing.T) {
	env := api.Envelope{
		Type: api.TypeHospitalList,
		Data: []map[string]any{
			{
				"name":          "서울아이소아과",
				"hospital_type": "소아과",
				"address":       "서울시 노원구",
				"phone":         "02-987-6543",
				"opening_time":  "900",
				"closing_time":  "1730",
				"distance":      "1.2km",
				"state":         "영업중",
			},
		},
	}

	got := Dispatch(env)
	if len(got) != 1 {
		t.Fatalf("Dispatch produced %d entries, want 1", len(got))
	}
	h := got[0].Hospitals[0]
	if h.OpeningTime != 900 || h.ClosingTime != 1730 {
		t.Fatalf("times = %d/%d, want 900/1730", h.OpeningTime, h.ClosingTime)
	}
	if h.HoursRange() != "09:00 ~ 17:30" {
		t.Fatalf("HoursRange = %q, want %q", h.HoursRange(), "09:00 ~ 17:30")
	}
}

func TestDispatchMultiPreservesOrderAndCount(t *testing.T) {
	env := api.Envelope{
		Type: api.TypeMulti,
		Responses: []api.Envelope{
			{
				// "chat" inside multi contributes no message entries.
				Type:         api.TypeChat,
				StartMessage: "네, 알겠습니다! 😊",
				EndMessage:   "근처를 검색해볼게요.",
			},
			{
				Type:         api.TypePharmacyList,
				StartMessage: "현재 영업 중인 약국들입니다:",
				EndMessage:   "방문하시기 전에 전화로 확인하시는 것이 좋습니다.",
				Data: []map[string]any{
					{"약국명": "A약국"},
					{"약국명": "B약국"},
				},
			},
			{
				Type:         api.TypeNoResults,
				StartMessage: "죄송합니다. 병원을 찾을 수 없습니다.",
				EndMessage:   "",
			},
		},
	}

	got := Dispatch(env)

	// Sum of non-blank messages and list entries across nested envelopes,
	// in their original order: 0 (guarded chat) + 3 (start, list, end) + 1.
	if len(got) != 4 {
		t.Fatalf("Dispatch produced %d entries, want 4: %+v", len(got), got)
	}
	if got[0].Text != "현재 영업 중인 약국들입니다:" {
		t.Fatalf("first entry = %q, want pharmacy start message", got[0].Text)
	}
	if got[1].Kind != KindPharmacyList || len(got[1].Pharmacies) != 2 {
		t.Fatalf("second entry = %+v, want two-pharmacy list", got[1])
	}
	if got[3].Text != "죄송합니다. 병원을 찾을 수 없습니다." {
		t.Fatalf("last entry = %q, want no_results start message", got[3].Text)
	}
}

func TestDispatchMultiDoesNotRecurse(t *testing.T) {
	env := api.Envelope{
		Type: api.TypeMulti,
		Responses: []api.Envelope{
			{
				Type: api.TypeMulti,
				Responses: []api.Envelope{
					{Type: api.TypeHospitalList, StartMessage: "안쪽"},
				},
			},
		},
	}

	if got := Dispatch(env); len(got) != 0 {
		t.Fatalf("nested multi was recursed into: %+v", got)
	}
}

func TestDispatchChatGuardAsymmetry(t *testing.T) {
	chat := api.Envelope{
		Type:         api.TypeChat,
		StartMessage: "안녕하세요!",
		EndMessage:   "무엇을 도와드릴까요?",
	}

	direct := Dispatch(chat)
	if len(direct) != 2 {
		t.Fatalf("direct chat produced %d entries, want 2", len(direct))
	}

	wrapped := Dispatch(api.Envelope{Type: api.TypeMulti, Responses: []api.Envelope{chat}})
	if len(wrapped) != 0 {
		t.Fatalf("chat inside multi produced %d entries, want 0", len(wrapped))
	}
}
