// Package venmo parses Venmo payment notification emails.
package venmo

import (
	"regexp"

	"github.com/bedstuystrong/payment-parsers/ledger"
	"github.com/bedstuystrong/payment-parsers/parsers/common"
	"github.com/bedstuystrong/payment-parsers/pkg/email"
)

var (
	signature = regexp.MustCompile(`From: Venmo <venmo@venmo\.com>`)
	incoming  = regexp.MustCompile(`(?:Fwd:\s)?(.+) paid you (\$[\d.,]+)`)
	outgoing  = regexp.MustCompile(`You paid (.+) (\$[\d.,]+)`)
	// Venmo's template always renders the payment note in a dedicated
	// element after the note comment.
	notePattern = regexp.MustCompile(`<!-- note -->\s*<div>\s*<p>(.*)</p>`)
)

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Platform() ledger.Platform {
	return ledger.PlatformVenmo
}

func (p *Parser) Sender() string {
	return "venmo@venmo.com"
}

func (p *Parser) Signature() *regexp.Regexp {
	return signature
}

// Extract reads direction, counterparty, and amount from the subject line
// and the mandatory note from the HTML body. A missing note means the
// template changed and fails loudly.
func (p *Parser) Extract(msg *email.Email) (*ledger.TransactionDetails, error) {
	details := &ledger.TransactionDetails{Platform: ledger.PlatformVenmo}

	if m := incoming.FindStringSubmatch(msg.Subject); m != nil {
		details.Direction = ledger.DirectionIn
		details.Name = m[1]
		details.Amount = m[2]
	} else if m := outgoing.FindStringSubmatch(msg.Subject); m != nil {
		details.Direction = ledger.DirectionOut
		details.Name = m[1]
		details.Amount = "-" + m[2]
	}

	if m := notePattern.FindStringSubmatch(msg.HTML); m != nil {
		details.Note = m[1]
	} else {
		return nil, &common.MissingFieldError{Platform: string(ledger.PlatformVenmo), Field: "note"}
	}

	return details, nil
}
