// Package ingress gates inbound mail before it reaches the parsers. Only
// mail addressed to the fund's mailbox, or forwarded from it, is allowed
// through; everything else is rejected silently so unrelated inbound mail
// and forged senders never pollute the ledger.
package ingress

import (
	"github.com/bedstuystrong/payment-parsers/parsers/common"
	"github.com/bedstuystrong/payment-parsers/pkg/email"
)

const (
	DefaultFundAddress    = "fund@bedstuystrong.com"
	DefaultAliasLocalPart = "funds"
)

// Gate decides whether an inbound message is in scope.
type Gate struct {
	// FundAddress is the fund's primary receiving address; mail delivered
	// here was auto-forwarded by the payment platform's mailbox.
	FundAddress string

	// AliasLocalPart is the local part of the inbound-routing alias that
	// human-forwarded mail arrives on.
	AliasLocalPart string
}

// NewGate builds a gate with the fund's production addresses.
func NewGate() *Gate {
	return &Gate{
		FundAddress:    DefaultFundAddress,
		AliasLocalPart: DefaultAliasLocalPart,
	}
}

// Check validates the recipient and sender of a canonical email and
// reports whether it was auto-forwarded. An OutOfScopeError means the
// message should be acknowledged upstream and dropped without alerting.
func (g *Gate) Check(msg *email.Email) (isAutoForwarded bool, err error) {
	if email.LocalPart(msg.To) != g.AliasLocalPart && msg.To != g.FundAddress {
		return false, &common.OutOfScopeError{Reason: "recipient is not the fund mailbox"}
	}

	isAutoForwarded = msg.To == g.FundAddress

	// Human-forwarded mail must originate from the fund's own mailbox;
	// anything else is an unauthorized forwarder.
	if !isAutoForwarded && msg.From != g.FundAddress {
		return false, &common.OutOfScopeError{Reason: "sender is not an authorized forwarder"}
	}

	return isAutoForwarded, nil
}
