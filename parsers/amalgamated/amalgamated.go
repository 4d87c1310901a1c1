// Package amalgamated parses Zelle payment notifications relayed through
// Amalgamated Bank. Transactions are booked under the Zelle label; only the
// delivery path differs from the direct variant.
package amalgamated

import (
	"regexp"

	"github.com/bedstuystrong/payment-parsers/ledger"
	"github.com/bedstuystrong/payment-parsers/parsers/common"
	"github.com/bedstuystrong/payment-parsers/pkg/email"
)

var (
	signature   = regexp.MustCompile(`From: Amalgamated Bank <noreply@online\.amalgamatedbank\.com>`)
	incoming    = regexp.MustCompile(`Notification - (.*) sent you (\$[\d.,]+)`)
	outgoing    = regexp.MustCompile(`Notification - Your \s?(\$[\d.,]+) to (.*) was sent`)
	memoPattern = regexp.MustCompile(`<p class="memo" [^>]+>(.*)</p>`)
)

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Platform() ledger.Platform {
	return ledger.PlatformZelle
}

func (p *Parser) Sender() string {
	return "noreply@online.amalgamatedbank.com"
}

func (p *Parser) Signature() *regexp.Regexp {
	return signature
}

// Extract reads direction, counterparty, and amount from the subject line
// and an optional memo from the HTML body.
func (p *Parser) Extract(msg *email.Email) (*ledger.TransactionDetails, error) {
	details := &ledger.TransactionDetails{Platform: ledger.PlatformZelle}

	if m := incoming.FindStringSubmatch(msg.Subject); m != nil {
		details.Direction = ledger.DirectionIn
		details.Name = m[1]
		details.Amount = m[2]
	} else if m := outgoing.FindStringSubmatch(msg.Subject); m != nil {
		details.Direction = ledger.DirectionOut
		details.Name = m[2]
		details.Amount = "-" + m[1]
	}

	if m := memoPattern.FindStringSubmatch(msg.HTML); m != nil {
		details.Note = m[1]
	} else if memo := common.TextByClass(msg.HTML, "memo"); memo != "" {
		// Template revisions have dropped the attributes the pattern
		// expects; the class itself has been stable.
		details.Note = memo
	}

	return details, nil
}
