// Package email parses raw inbound payment notifications into the
// canonical form the platform parsers work against.
package email

import (
	"strings"
	"time"
)

// Email is the normalized view of one inbound message. To and From hold a
// single address each, resolved from possibly multi-value headers by taking
// the first address. HTML may be empty, in which case Text substitutes;
// Text is derived from HTML when only an HTML part arrived.
type Email struct {
	To        string
	From      string
	Subject   string
	HTML      string
	Text      string
	MessageID string
	Date      *time.Time
}

// Part is one decoded MIME part of an inbound message.
type Part struct {
	ContentType string
	Body        []byte
	Parts       []Part
}

// FirstAddress extracts the first bare address from an address header such
// as `"Venmo" <venmo@venmo.com>, ops@example.com`.
func FirstAddress(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return ""
	}

	first := header
	if idx := strings.Index(first, ","); idx != -1 {
		first = first[:idx]
	}

	if startIdx := strings.Index(first, "<"); startIdx != -1 {
		if endIdx := strings.Index(first[startIdx:], ">"); endIdx != -1 {
			return strings.ToLower(strings.TrimSpace(first[startIdx+1 : startIdx+endIdx]))
		}
	}

	return strings.ToLower(strings.TrimSpace(first))
}

// LocalPart returns the part of an address before the @.
func LocalPart(address string) string {
	if idx := strings.Index(address, "@"); idx != -1 {
		return address[:idx]
	}
	return address
}

// ParseDate parses an RFC 5322 date string from email headers.
// Common format: "Mon, 02 Jan 2006 15:04:05 -0700"
func ParseDate(dateStr string) *time.Time {
	if dateStr == "" {
		return nil
	}

	formats := []string{
		time.RFC1123Z,                           // "Mon, 02 Jan 2006 15:04:05 -0700"
		time.RFC1123,                            // "Mon, 02 Jan 2006 15:04:05 MST"
		"Mon, 2 Jan 2006 15:04:05 -0700",        // Single digit day
		"Mon, 2 Jan 2006 15:04:05 MST",          // Single digit day with zone name
		"2 Jan 2006 15:04:05 -0700",             // No day of week
		"2 Jan 2006 15:04:05 MST",               // No day of week with zone name
		"Mon, 02 Jan 2006 15:04:05 -0700 (MST)", // With zone name in parens
		"Mon, 2 Jan 2006 15:04 -0700",           // No seconds
		"2 Jan 2006 15:04 -0700",                // No day of week, no seconds
	}

	for _, format := range formats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return &t
		}
	}

	return nil
}
