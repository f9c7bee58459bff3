package ticket

import (
	"fmt"
	"strings"
)

// ChannelName builds a ticket channel name of the form
// {prefix}-{opener-handle}-{4-digit-disambiguator}. The handle is truncated
// to 20 characters, everything lowercased, the sequence taken mod 10000 and
// zero padded.
func ChannelName(prefix, handle string, seq uint64) string {
	// Truncate by runes so a multi-byte handle is never cut mid-character.
	if runes := []rune(handle); len(runes) > 20 {
		handle = string(runes[:20])
	}
	return fmt.Sprintf("%s-%s-%04d", strings.ToLower(prefix), strings.ToLower(handle), seq%10000)
}

// IsTicketChannel reports whether a channel name carries the ticket prefix.
// Guarded commands invoked elsewhere are rejected before any side effect.
func IsTicketChannel(name, prefix string) bool {
	return strings.HasPrefix(name, strings.ToLower(prefix))
}
