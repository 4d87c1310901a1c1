// Package cashapp parses Cash App payment notification emails.
package cashapp

import (
	"regexp"

	"github.com/bedstuystrong/payment-parsers/ledger"
	"github.com/bedstuystrong/payment-parsers/pkg/email"
)

var (
	signature = regexp.MustCompile(`From: Cash App <cash@square\.com>`)
	incoming  = regexp.MustCompile(`(?:Fwd:\s)?(.+) sent you (\$[\d.,]+)(?: for (.*))?`)
	outgoing  = regexp.MustCompile(`You sent (\$[\d.,]+) to (.*)`)
	accepted  = regexp.MustCompile(`(?:Fwd: )?(.*) just accepted the (\$[\d.,]+) you sent(?: for (.*))`)
	// Outgoing subjects run counterparty and memo together; the first
	// " for " with trailing text separates them.
	forSplit = regexp.MustCompile(` for (.+)`)
)

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Platform() ledger.Platform {
	return ledger.PlatformCashApp
}

func (p *Parser) Sender() string {
	return "cash@square.com"
}

func (p *Parser) Signature() *regexp.Regexp {
	return signature
}

// Extract reads direction, counterparty, amount, and the inline memo from
// the subject line. Three subject shapes exist: payment received, payment
// sent, and a sent payment being accepted by the counterparty.
func (p *Parser) Extract(msg *email.Email) (*ledger.TransactionDetails, error) {
	details := &ledger.TransactionDetails{Platform: ledger.PlatformCashApp}

	if m := incoming.FindStringSubmatch(msg.Subject); m != nil {
		details.Direction = ledger.DirectionIn
		details.Name = m[1]
		details.Amount = m[2]
		details.Note = m[3]
	} else if m := outgoing.FindStringSubmatch(msg.Subject); m != nil {
		details.Direction = ledger.DirectionOut
		details.Amount = "-" + m[1]

		segment := m[2]
		if loc := forSplit.FindStringSubmatchIndex(segment); loc != nil {
			details.Name = segment[:loc[0]]
			details.Note = segment[loc[2]:loc[3]]
		} else {
			details.Name = segment
		}
	} else if m := accepted.FindStringSubmatch(msg.Subject); m != nil {
		details.Direction = ledger.DirectionOut
		details.Name = m[1]
		details.Amount = "-" + m[2]
		details.Note = m[3]
	}

	return details, nil
}
