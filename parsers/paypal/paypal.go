// Package paypal parses PayPal payment notification emails.
package paypal

import (
	"regexp"

	"github.com/bedstuystrong/payment-parsers/ledger"
	"github.com/bedstuystrong/payment-parsers/parsers/common"
	"github.com/bedstuystrong/payment-parsers/pkg/email"
)

var (
	signature = regexp.MustCompile(`From: service@paypal\.com <service@paypal\.com>`)
	incoming  = regexp.MustCompile(`(.*) sent you ([$\d.,]+)`)
	outgoing  = regexp.MustCompile(`You sent ([$\d.,]+) USD to (.*)`)
	// PayPal renders the payment note between quote-image captions.
	notePattern = regexp.MustCompile(`\[image: quote\] (.*) \[image: quote\]`)
)

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Platform() ledger.Platform {
	return ledger.PlatformPaypal
}

func (p *Parser) Sender() string {
	return "service@paypal.com"
}

func (p *Parser) Signature() *regexp.Regexp {
	return signature
}

// Extract runs the patterns against the HTML body flattened to text, which
// is where PayPal's templates put the payment summary.
func (p *Parser) Extract(msg *email.Email) (*ledger.TransactionDetails, error) {
	details := &ledger.TransactionDetails{Platform: ledger.PlatformPaypal}
	text := common.StripTags(msg.HTML)

	if m := incoming.FindStringSubmatch(text); m != nil {
		details.Direction = ledger.DirectionIn
		details.Name = m[1]
		details.Amount = m[2]
	} else if m := outgoing.FindStringSubmatch(text); m != nil {
		details.Direction = ledger.DirectionOut
		details.Name = m[2]
		details.Amount = "-" + m[1]
	}

	if m := notePattern.FindStringSubmatch(text); m != nil {
		details.Note = m[1]
	}

	return details, nil
}
