package ledger

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestCreateTransaction(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody struct {
		Fields   map[string]interface{} `json:"fields"`
		Typecast bool                   `json:"typecast"`
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		w.Write([]byte(`{"id":"recNew"}`))
	}))
	defer srv.Close()

	client := NewClient("key123", "appBase", "transactions",
		WithEndpoint(srv.URL),
		WithSchema(Schema{"notes": "fldNotes"}),
	)

	tx := &FinanceTransaction{
		Date:      time.Date(2026, 8, 3, 14, 22, 11, 0, time.UTC),
		Direction: DirectionIn,
		Platform:  PlatformVenmo,
		Amount:    25,
		Name:      "Jane Doe",
		Note:      "groceries",
		MessageID: "sample-001@venmo.com",
	}

	if err := client.CreateTransaction(context.Background(), tx); err != nil {
		t.Fatalf("CreateTransaction failed: %v", err)
	}

	if gotPath != "/appBase/transactions" {
		t.Errorf("path = %q", gotPath)
	}
	if gotAuth != "Bearer key123" {
		t.Errorf("auth = %q", gotAuth)
	}
	if !gotBody.Typecast {
		t.Error("typecast not set")
	}

	direction, ok := gotBody.Fields["direction"].([]interface{})
	if !ok || len(direction) != 1 || direction[0] != "recHqZivpo6j4T6On" {
		t.Errorf("direction field = %v", gotBody.Fields["direction"])
	}
	if gotBody.Fields["platform"] != "Venmo" {
		t.Errorf("platform field = %v", gotBody.Fields["platform"])
	}
	if gotBody.Fields["amount"] != float64(25) {
		t.Errorf("amount field = %v", gotBody.Fields["amount"])
	}
	if gotBody.Fields["fldNotes"] != "groceries" {
		t.Errorf("schema mapping not applied: %v", gotBody.Fields)
	}
	if _, present := gotBody.Fields["notes"]; present {
		t.Error("unmapped notes key present alongside mapped one")
	}
}

func TestCreateTransactionSurfacesAPIErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"INVALID_REQUEST"}`, http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	client := NewClient("key123", "appBase", "transactions", WithEndpoint(srv.URL))

	tx := &FinanceTransaction{
		Date:      time.Now(),
		Direction: DirectionOut,
		Platform:  PlatformZelle,
		Amount:    -50,
		Name:      "John Smith",
	}

	if err := client.CreateTransaction(context.Background(), tx); err == nil {
		t.Fatal("expected error from 422 response")
	}
}

func TestCreateTransactionRejectsUnknownDirection(t *testing.T) {
	client := NewClient("key", "base", "table")
	tx := &FinanceTransaction{Direction: "Sideways", Platform: PlatformVenmo}
	if err := client.CreateTransaction(context.Background(), tx); err == nil {
		t.Fatal("expected error for unknown direction")
	}
}
