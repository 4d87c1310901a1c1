// Package zelle parses Zelle payment notifications delivered directly by
// the sending bank (USAA style). These have no fixed sender address, so
// detection always goes through the body signature.
package zelle

import (
	"regexp"

	"github.com/bedstuystrong/payment-parsers/ledger"
	"github.com/bedstuystrong/payment-parsers/pkg/email"
)

var (
	signature = regexp.MustCompile(`USAA Confirmation ID: [\d\n\r]+Zelle ID:`)
	incoming  = regexp.MustCompile(`tell you that (.*) sent ([$\d.,]+) with`)
	outgoing  = regexp.MustCompile(`that you sent (\$[\d.,]+) to (.*) on`)
)

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Platform() ledger.Platform {
	return ledger.PlatformZelle
}

func (p *Parser) Sender() string {
	return ""
}

func (p *Parser) Signature() *regexp.Regexp {
	return signature
}

// Extract reads direction, counterparty, and amount from the text body.
// Zelle notifications carry no memo.
func (p *Parser) Extract(msg *email.Email) (*ledger.TransactionDetails, error) {
	details := &ledger.TransactionDetails{Platform: ledger.PlatformZelle}

	if m := incoming.FindStringSubmatch(msg.Text); m != nil {
		details.Direction = ledger.DirectionIn
		details.Name = m[1]
		details.Amount = m[2]
	} else if m := outgoing.FindStringSubmatch(msg.Text); m != nil {
		details.Direction = ledger.DirectionOut
		details.Name = m[2]
		details.Amount = "-" + m[1]
	}

	return details, nil
}
