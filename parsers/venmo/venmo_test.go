package venmo

import (
	"errors"
	"testing"

	"github.com/bedstuystrong/payment-parsers/ledger"
	"github.com/bedstuystrong/payment-parsers/parsers/common"
	"github.com/bedstuystrong/payment-parsers/pkg/email"
)

const noteHTML = `<html><body>
<!-- note -->
<div>
<p>groceries for the pantry</p>
</div>
</body></html>`

func TestExtractIncoming(t *testing.T) {
	parser := NewParser()
	msg := &email.Email{
		Subject: "Jane Doe paid you $25.00",
		HTML:    noteHTML,
	}

	details, err := parser.Extract(msg)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if details.Direction != ledger.DirectionIn {
		t.Errorf("Direction = %q, want In", details.Direction)
	}
	if details.Name != "Jane Doe" {
		t.Errorf("Name = %q", details.Name)
	}
	if details.Amount != "$25.00" {
		t.Errorf("Amount = %q", details.Amount)
	}
	if details.Note != "groceries for the pantry" {
		t.Errorf("Note = %q", details.Note)
	}
}

func TestExtractIncomingForwardedSubject(t *testing.T) {
	parser := NewParser()
	msg := &email.Email{
		Subject: "Fwd: Jane Doe paid you $1,250.00",
		HTML:    noteHTML,
	}

	details, err := parser.Extract(msg)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if details.Name != "Jane Doe" {
		t.Errorf("Name = %q", details.Name)
	}
	if details.Amount != "$1,250.00" {
		t.Errorf("Amount = %q", details.Amount)
	}
}

func TestExtractOutgoing(t *testing.T) {
	parser := NewParser()
	msg := &email.Email{
		Subject: "You paid John Smith $40.00",
		HTML:    noteHTML,
	}

	details, err := parser.Extract(msg)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if details.Direction != ledger.DirectionOut {
		t.Errorf("Direction = %q, want Out", details.Direction)
	}
	if details.Name != "John Smith" {
		t.Errorf("Name = %q", details.Name)
	}
	if details.Amount != "-$40.00" {
		t.Errorf("Amount = %q", details.Amount)
	}
}

func TestExtractMissingNoteFails(t *testing.T) {
	parser := NewParser()
	msg := &email.Email{
		Subject: "Jane Doe paid you $25.00",
		HTML:    "<html><body><p>no note element here</p></body></html>",
	}

	_, err := parser.Extract(msg)
	var missing *common.MissingFieldError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingFieldError, got %v", err)
	}
	if missing.Field != "note" {
		t.Errorf("Field = %q, want note", missing.Field)
	}
}
