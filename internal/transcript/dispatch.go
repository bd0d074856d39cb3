package transcript

import (
	"strings"

	"icare/internal/api"
)

// nonBlank is the single normalization rule for optional message fields:
// present and not whitespace-only.
func nonBlank(s string) bool { return strings.TrimSpace(s) != "" }

// Dispatch interprets a response envelope and produces the transcript entries
// it implies, in display order. The decision tree is fixed:
//
//   - "multi": each nested envelope is processed in order with the guarded
//     rules below; nested "multi" values are not recursed into.
//   - "no_results": start and end messages (non-blank only), no list.
//   - list types: start message, normalized card list, end message.
//   - plain "chat" reached directly: start and end messages, each appended
//     independently when non-blank.
//
// Note the asymmetry: inside "multi", envelopes of type "chat" contribute no
// messages (the type != "chat" guard), while a directly received "chat"
// envelope contributes both. That matches the shipped app's behavior and is
// kept for compatibility; see DESIGN.md before changing it.
func Dispatch(env api.Envelope) []Entry {
	if env.Type == api.TypeMulti {
		var entries []Entry
		for _, nested := range env.Responses {
			if nested.Type == api.TypeMulti {
				continue
			}
			entries = append(entries, dispatchNested(nested)...)
		}
		return entries
	}

	if env.Type == api.TypeNoResults {
		return messagesOnly(env)
	}

	if env.Type == api.TypeChat || env.Type == api.TypeError {
		// Error envelopes carry their apology in the message fields and are
		// rendered exactly like plain chat.
		return messagesOnly(env)
	}

	var entries []Entry
	if nonBlank(env.StartMessage) {
		entries = append(entries, BotText(env.StartMessage))
	}
	if list, ok := listEntry(env); ok {
		entries = append(entries, list)
	}
	if nonBlank(env.EndMessage) {
		entries = append(entries, BotText(env.EndMessage))
	}
	return entries
}

// dispatchNested applies the guarded per-envelope rules used inside "multi".
func dispatchNested(env api.Envelope) []Entry {
	if env.Type == api.TypeNoResults {
		return messagesOnly(env)
	}

	var entries []Entry
	if env.Type != api.TypeChat && nonBlank(env.StartMessage) {
		entries = append(entries, BotText(env.StartMessage))
	}
	if list, ok := listEntry(env); ok {
		entries = append(entries, list)
	}
	if env.Type != api.TypeChat && nonBlank(env.EndMessage) {
		entries = append(entries, BotText(env.EndMessage))
	}
	return entries
}

func messagesOnly(env api.Envelope) []Entry {
	var entries []Entry
	if nonBlank(env.StartMessage) {
		entries = append(entries, BotText(env.StartMessage))
	}
	if nonBlank(env.EndMessage) {
		entries = append(entries, BotText(env.EndMessage))
	}
	return entries
}

// listEntry normalizes the data array of a list envelope. Times coming from
// the unified chat endpoint may be JSON strings and are coerced to HHMM ints
// at this boundary; the dedicated endpoints already send display-ready
// values, which pass through untouched.
func listEntry(env api.Envelope) (Entry, bool) {
	if len(env.Data) == 0 {
		return Entry{}, false
	}
	switch env.Type {
	case api.TypeHospitalList:
		return HospitalList(api.Hospitals(env.Data)), true
	case api.TypePharmacyList:
		return PharmacyList(api.Pharmacies(env.Data)), true
	default:
		return Entry{}, false
	}
}
