// Package pipeline runs one inbound email through the full engine:
// scope gate, platform detection, detail extraction, record assembly, and
// handoff to the ledger. One email in, one transaction or one terminal
// failure out; no retries and no state between invocations.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/bedstuystrong/payment-parsers/ingress"
	"github.com/bedstuystrong/payment-parsers/ledger"
	"github.com/bedstuystrong/payment-parsers/parsers"
	"github.com/bedstuystrong/payment-parsers/parsers/common"
	"github.com/bedstuystrong/payment-parsers/pkg/email"
)

// Ledger persists finalized transactions.
type Ledger interface {
	CreateTransaction(ctx context.Context, tx *ledger.FinanceTransaction) error
}

// Notifier alerts the operator channel about unclassifiable payment mail.
type Notifier interface {
	SendParseFailure(ctx context.Context, from, subject string, at time.Time) error
}

// Pipeline wires the engine's stages to its external collaborators.
type Pipeline struct {
	Gate     *ingress.Gate
	Ledger   Ledger
	Notifier Notifier
	Logger   *log.Logger

	// Now is the clock used for alert timestamps and for transactions
	// whose Date header is missing or unparsable.
	Now func() time.Time
}

// New builds a pipeline with the production gate and clock.
func New(l Ledger, n Notifier, logger *log.Logger) *Pipeline {
	return &Pipeline{
		Gate:     ingress.NewGate(),
		Ledger:   l,
		Notifier: n,
		Logger:   logger,
		Now:      time.Now,
	}
}

// Process runs one canonical email through the engine. An out-of-scope
// message returns an OutOfScopeError the caller is expected to absorb; an
// unrecognized platform raises an operator alert and propagates; every
// other failure propagates as is. On success the persisted transaction is
// returned.
func (p *Pipeline) Process(ctx context.Context, msg *email.Email) (*ledger.FinanceTransaction, error) {
	isAutoForwarded, err := p.Gate.Check(msg)
	if err != nil {
		var oos *common.OutOfScopeError
		if errors.As(err, &oos) {
			p.logf("dropping out-of-scope email from %s to %s: %s", msg.From, msg.To, oos.Reason)
		}
		return nil, err
	}

	parser, err := parsers.Detect(msg, isAutoForwarded)
	if err != nil {
		p.logf("detection failed: %v", err)
		if alertErr := p.Notifier.SendParseFailure(ctx, msg.From, msg.Subject, p.Now()); alertErr != nil {
			p.logf("operator alert failed: %v", alertErr)
		}
		return nil, err
	}

	details, err := parser.Extract(msg)
	if err != nil {
		var missing *common.MissingFieldError
		if errors.As(err, &missing) {
			// Log the body: a mandatory field disappearing means the
			// platform's template changed, and the raw HTML is the only
			// way to diagnose it.
			p.logf("%v; html body: %s", err, msg.HTML)
		}
		return nil, err
	}

	date := p.Now()
	if msg.Date != nil {
		date = *msg.Date
	}

	messageID := msg.MessageID
	if messageID == "" {
		messageID = uuid.NewString()
	}

	tx, err := ledger.Finalize(details, date, messageID)
	if err != nil {
		p.logf("finalize failed: %v; text body: %s", err, msg.Text)
		return nil, err
	}

	if err := p.Ledger.CreateTransaction(ctx, tx); err != nil {
		return nil, fmt.Errorf("persisting %s transaction: %w", tx.Platform, err)
	}

	p.logf("booked %s %s %s from %q", tx.Platform, tx.Direction, details.Amount, tx.Name)
	return tx, nil
}

func (p *Pipeline) logf(format string, args ...interface{}) {
	if p.Logger != nil {
		p.Logger.Printf(format, args...)
	}
}
