package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultEndpoint = "https://api.airtable.com/v0"

// Schema maps the human field names used in code to the storage field
// identifiers of the ledger table. Unmapped names pass through unchanged.
type Schema map[string]string

// Client writes finance transactions to an Airtable-style ledger base.
type Client struct {
	endpoint   string
	apiKey     string
	baseID     string
	table      string
	schema     Schema
	httpClient *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithEndpoint overrides the API endpoint, used by tests.
func WithEndpoint(endpoint string) ClientOption {
	return func(c *Client) { c.endpoint = endpoint }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = httpClient }
}

// WithSchema sets the field-name mapping for the ledger table.
func WithSchema(schema Schema) ClientOption {
	return func(c *Client) { c.schema = schema }
}

// NewClient builds a ledger client for one base and table.
func NewClient(apiKey, baseID, table string, opts ...ClientOption) *Client {
	c := &Client{
		endpoint:   defaultEndpoint,
		apiKey:     apiKey,
		baseID:     baseID,
		table:      table,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type createRequest struct {
	Fields   map[string]interface{} `json:"fields"`
	Typecast bool                   `json:"typecast"`
}

// CreateTransaction persists one finance transaction. No retries: a failed
// write propagates to the caller.
func (c *Client) CreateTransaction(ctx context.Context, tx *FinanceTransaction) error {
	directionID, ok := directionRecordIDs[tx.Direction]
	if !ok {
		return fmt.Errorf("unknown transaction direction %q", tx.Direction)
	}

	fields := map[string]interface{}{
		c.fieldName("direction"): []string{directionID},
		c.fieldName("platform"):  string(tx.Platform),
		c.fieldName("amount"):    tx.Amount,
		c.fieldName("name"):      tx.Name,
		c.fieldName("date"):      tx.Date.Format(time.RFC3339),
	}
	if tx.Note != "" {
		fields[c.fieldName("notes")] = tx.Note
	}
	if tx.MessageID != "" {
		fields[c.fieldName("message_id")] = tx.MessageID
	}

	payload, err := json.Marshal(createRequest{Fields: fields, Typecast: true})
	if err != nil {
		return fmt.Errorf("encoding transaction: %w", err)
	}

	url := fmt.Sprintf("%s/%s/%s", c.endpoint, c.baseID, c.table)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("ledger write: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("ledger write failed: %s: %s", resp.Status, bytes.TrimSpace(body))
	}

	return nil
}

func (c *Client) fieldName(name string) string {
	if mapped, ok := c.schema[name]; ok {
		return mapped
	}
	return name
}
