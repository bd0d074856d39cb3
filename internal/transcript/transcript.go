// Package transcript holds the conversation state for one chat session: an
// ordered, append-only sequence of heterogeneous entries, and the dispatcher
// that turns server response envelopes into entries. The animated "generating"
// indicator is transient UI state and never enters the sequence.
package transcript

import (
	"errors"

	"icare/internal/api"
)

// EntryKind tags a transcript entry so the renderer can dispatch without
// re-inspecting content shape.
type EntryKind int

const (
	KindUserText EntryKind = iota
	KindBotText
	KindHospitalList
	KindPharmacyList
)

// Entry is one displayed line (or card list) of the conversation.
type Entry struct {
	Kind       EntryKind
	Text       string
	Hospitals  []api.HospitalRecord
	Pharmacies []api.PharmacyRecord
}

// UserText builds a user-authored text entry.
func UserText(text string) Entry { return Entry{Kind: KindUserText, Text: text} }

// BotText builds a bot text entry.
func BotText(text string) Entry { return Entry{Kind: KindBotText, Text: text} }

// HospitalList builds a hospital card-list entry.
func HospitalList(items []api.HospitalRecord) Entry {
	return Entry{Kind: KindHospitalList, Hospitals: items}
}

// PharmacyList builds a pharmacy card-list entry.
func PharmacyList(items []api.PharmacyRecord) Entry {
	return Entry{Kind: KindPharmacyList, Pharmacies: items}
}

// ErrEmpty is returned by in-place operations on an empty transcript.
var ErrEmpty = errors.New("transcript: empty")

// Transcript is the ordered entry sequence for one session. Entries are only
// ever appended; the single exception is ReplaceLast, which the voice flow
// uses to swap its placeholder for the transcribed text without changing the
// sequence length.
type Transcript struct {
	entries []Entry
}

// New returns a transcript seeded with the given entries (typically the
// greeting message).
func New(seed ...Entry) *Transcript {
	t := &Transcript{}
	t.Append(seed...)
	return t
}

// Append adds entries at the end, preserving order.
func (t *Transcript) Append(entries ...Entry) {
	t.entries = append(t.entries, entries...)
}

// ReplaceLast swaps the final entry in place. Sequence length is unchanged.
func (t *Transcript) ReplaceLast(e Entry) error {
	if len(t.entries) == 0 {
		return ErrEmpty
	}
	t.entries[len(t.entries)-1] = e
	return nil
}

// Len reports the number of entries.
func (t *Transcript) Len() int { return len(t.entries) }

// Entries returns a copy of the sequence in display order.
func (t *Transcript) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Last returns the final entry, if any.
func (t *Transcript) Last() (Entry, bool) {
	if len(t.entries) == 0 {
		return Entry{}, false
	}
	return t.entries[len(t.entries)-1], true
}
