package chatdown

import "strings"

// BreakMarker is the out-of-band line break emitted by the upstream text
// stream. It never appears in ordinary prose.
const BreakMarker = '\u2028'

// Normalize canonicalizes line endings and break markers to "\n".
//
// Rules are applied in order: CRLF, lone CR, a colon followed by a break
// marker, then any remaining break marker. Normalize is idempotent.
func Normalize(raw string) string {
	if !strings.ContainsRune(raw, '\r') && !strings.ContainsRune(raw, BreakMarker) {
		return raw
	}
	s := strings.ReplaceAll(raw, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = strings.ReplaceAll(s, ":"+string(BreakMarker), ":\n")
	return strings.ReplaceAll(s, string(BreakMarker), "\n")
}
