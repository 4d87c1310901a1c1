// Package parsers holds the ordered platform rule table and the detection
// step that classifies a canonical email into one payment platform.
package parsers

import (
	"github.com/bedstuystrong/payment-parsers/parsers/amalgamated"
	"github.com/bedstuystrong/payment-parsers/parsers/base"
	"github.com/bedstuystrong/payment-parsers/parsers/cashapp"
	"github.com/bedstuystrong/payment-parsers/parsers/common"
	"github.com/bedstuystrong/payment-parsers/parsers/googlepay"
	"github.com/bedstuystrong/payment-parsers/parsers/paypal"
	"github.com/bedstuystrong/payment-parsers/parsers/venmo"
	"github.com/bedstuystrong/payment-parsers/parsers/zelle"
	"github.com/bedstuystrong/payment-parsers/pkg/email"
)

// AllParsers returns the platform parsers in evaluation order. The
// signatures are mutually exclusive by construction, but declaration order
// is the tie-break and must not be reshuffled: reordering changes the
// classification of ambiguous bodies.
func AllParsers() []base.Parser {
	return []base.Parser{
		venmo.NewParser(),
		zelle.NewParser(),
		amalgamated.NewParser(),
		paypal.NewParser(),
		googlepay.NewParser(),
		cashapp.NewParser(),
	}
}

// Detect classifies an email into one payment platform, first match wins.
// For auto-forwarded mail the original sender survives in the headers, so a
// rule with a fixed sender address matches on that alone; only senderless
// rules fall back to the body signature. Human-forwarded mail rewrites the
// From header, so every rule matches on the body signature.
func Detect(msg *email.Email, isAutoForwarded bool) (base.Parser, error) {
	for _, p := range AllParsers() {
		if isAutoForwarded && p.Sender() != "" {
			if p.Sender() == msg.From {
				return p, nil
			}
			continue
		}
		if p.Signature().MatchString(msg.Text) {
			return p, nil
		}
	}

	return nil, &common.UnrecognizedPlatformError{From: msg.From, Subject: msg.Subject}
}
