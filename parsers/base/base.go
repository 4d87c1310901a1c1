// Package base defines the interface every payment-platform parser
// implements.
package base

import (
	"regexp"

	"github.com/bedstuystrong/payment-parsers/ledger"
	"github.com/bedstuystrong/payment-parsers/pkg/email"
)

// Parser is one platform's detection and extraction rule. Detection uses
// either the fixed sender address (auto-forwarded mail, where the original
// sender survives in the headers) or the body-text signature
// (human-forwarded mail, where the From header is rewritten).
type Parser interface {
	// Platform returns the label transactions from this parser are booked
	// under.
	Platform() ledger.Platform

	// Sender returns the platform's fixed notification address, or "" when
	// the platform has none (the bank-relay Zelle variant).
	Sender() string

	// Signature returns the body-text pattern identifying this platform.
	Signature() *regexp.Regexp

	// Extract applies the platform's incoming/outgoing patterns to the
	// email and returns the captured details. Direction, amount, and name
	// are left unset when neither pattern matches; assembly rejects such
	// records before persistence.
	Extract(msg *email.Email) (*ledger.TransactionDetails, error)
}
