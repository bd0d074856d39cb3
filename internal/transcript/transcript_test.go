package transcript

import "testing"

func TestAppendPreservesOrder(t *testing.T) {
	tr := New(BotText("인사"))
	tr.Append(UserText("근처 약국 찾아줘"))
	tr.Append(BotText("검색해볼게요"))

	entries := tr.Entries()
	if len(entries) != 3 {
		t.Fatalf("Len = %d, want 3", len(entries))
	}
	if entries[0].Kind != KindBotText || entries[1].Kind != KindUserText {
		t.Fatalf("order not preserved: %+v", entries)
	}
}

func TestReplaceLastKeepsLength(t *testing.T) {
	tr := New()
	tr.Append(UserText("🎤 음성 메시지 녹음 중..."))
	tr.Append(UserText("음성 메시지 변환 중..."))

	before := tr.Len()
	if err := tr.ReplaceLast(UserText("근처 병원 찾아줘")); err != nil {
		t.Fatalf("ReplaceLast: %v", err)
	}
	if tr.Len() != before {
		t.Fatalf("Len changed: %d -> %d", before, tr.Len())
	}

	last, ok := tr.Last()
	if !ok || last.Text != "근처 병원 찾아줘" {
		t.Fatalf("Last = %+v, want replaced text", last)
	}
}

func TestReplaceLastOnEmpty(t *testing.T) {
	tr := New()
	if err := tr.ReplaceLast(UserText("x")); err != ErrEmpty {
		t.Fatalf("ReplaceLast on empty = %v, want ErrEmpty", err)
	}
}

func TestEntriesReturnsCopy(t *testing.T) {
	tr := New(BotText("a"))
	entries := tr.Entries()
	entries[0].Text = "mutated"

	got, _ := tr.Last()
	if got.Text != "a" {
		t.Fatalf("Entries leaked internal slice: %q", got.Text)
	}
}
