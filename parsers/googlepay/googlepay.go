// Package googlepay parses Google Pay payment notification emails.
package googlepay

import (
	"regexp"

	"github.com/bedstuystrong/payment-parsers/ledger"
	"github.com/bedstuystrong/payment-parsers/pkg/email"
)

var (
	signature = regexp.MustCompile(`From: Google Pay <googlepay-noreply@google\.com>`)
	incoming  = regexp.MustCompile(`(.*) sent you ([$\d.,]+)`)
	outgoing  = regexp.MustCompile(`You sent ([^$]+) ([$\d.,]+)`)
)

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Platform() ledger.Platform {
	return ledger.PlatformGooglePay
}

func (p *Parser) Sender() string {
	return "googlepay-noreply@google.com"
}

func (p *Parser) Signature() *regexp.Regexp {
	return signature
}

// Extract reads direction, counterparty, and amount from the subject line.
// Google Pay notifications carry no memo.
func (p *Parser) Extract(msg *email.Email) (*ledger.TransactionDetails, error) {
	details := &ledger.TransactionDetails{Platform: ledger.PlatformGooglePay}

	if m := incoming.FindStringSubmatch(msg.Subject); m != nil {
		details.Direction = ledger.DirectionIn
		details.Name = m[1]
		details.Amount = m[2]
	} else if m := outgoing.FindStringSubmatch(msg.Subject); m != nil {
		details.Direction = ledger.DirectionOut
		details.Name = m[1]
		details.Amount = "-" + m[2]
	}

	return details, nil
}
