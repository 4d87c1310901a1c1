// Package ledger defines the finance-transaction record produced by the
// extraction engine and the client that persists it.
package ledger

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Direction says whether money moved into or out of the fund.
type Direction string

const (
	DirectionIn  Direction = "In"
	DirectionOut Direction = "Out"
)

// Platform is the fixed label a payment service is booked under.
type Platform string

const (
	PlatformVenmo     Platform = "Venmo"
	PlatformZelle     Platform = "Zelle"
	PlatformPaypal    Platform = "Paypal"
	PlatformGooglePay Platform = "Google Pay"
	PlatformCashApp   Platform = "Cash App"
)

// directionRecordIDs maps a direction to its linked record in the ledger
// base. The direction field is a record link, not a plain string.
var directionRecordIDs = map[Direction]string{
	DirectionIn:  "recHqZivpo6j4T6On",
	DirectionOut: "reckW3l4mK8BCEBsd",
}

// TransactionDetails is the pre-validation result of extraction. Amount is
// still the literal captured string, currency symbol and sign included.
// Note is empty when the platform's memo pattern did not match.
type TransactionDetails struct {
	Platform  Platform  `json:"platform"`
	Direction Direction `json:"direction,omitempty"`
	Amount    string    `json:"amount,omitempty"`
	Name      string    `json:"name,omitempty"`
	Note      string    `json:"note,omitempty"`
}

// FinanceTransaction is the handoff shape persisted to the ledger. Built
// once per successfully extracted email, never mutated afterward.
type FinanceTransaction struct {
	Date      time.Time `json:"date"`
	Direction Direction `json:"direction"`
	Platform  Platform  `json:"platform"`
	Amount    float64   `json:"amount"`
	Name      string    `json:"name"`
	Note      string    `json:"note,omitempty"`
	MessageID string    `json:"message_id,omitempty"`
}

// MissingFieldError reports a transaction that cannot be booked because a
// required field never matched.
type MissingFieldError struct {
	Platform Platform
	Field    string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required %s field for %s transaction", e.Field, e.Platform)
}

// Finalize validates extracted details and assembles the record handed to
// the ledger. A record missing direction, amount, or name is refused here
// so a partial extraction can never be persisted.
func Finalize(details *TransactionDetails, date time.Time, messageID string) (*FinanceTransaction, error) {
	switch {
	case details.Direction == "":
		return nil, &MissingFieldError{Platform: details.Platform, Field: "direction"}
	case details.Amount == "":
		return nil, &MissingFieldError{Platform: details.Platform, Field: "amount"}
	case details.Name == "":
		return nil, &MissingFieldError{Platform: details.Platform, Field: "name"}
	}

	amount, err := ParseAmount(details.Amount)
	if err != nil {
		return nil, fmt.Errorf("finalize %s transaction: %w", details.Platform, err)
	}

	return &FinanceTransaction{
		Date:      date,
		Direction: details.Direction,
		Platform:  details.Platform,
		Amount:    amount,
		Name:      details.Name,
		Note:      details.Note,
		MessageID: messageID,
	}, nil
}

// ParseAmount converts a captured amount string such as "-$1,234.56" to its
// numeric value. Stripping the currency symbol and separators is a pure
// formatting step; the sign survives.
func ParseAmount(s string) (float64, error) {
	cleaned := strings.TrimSpace(s)
	cleaned = strings.ReplaceAll(cleaned, "$", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	if cleaned == "" {
		return 0, fmt.Errorf("empty amount %q", s)
	}

	amount, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}

	return amount, nil
}
