// Package notify delivers operator alerts when a payment email cannot be
// classified.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultEndpoint = "https://api.sendgrid.com"

// Mailer sends alert mail through a Sendgrid-style transactional API.
type Mailer struct {
	endpoint   string
	apiKey     string
	from       string
	to         string
	httpClient *http.Client
}

// MailerOption configures a Mailer.
type MailerOption func(*Mailer)

// WithEndpoint overrides the API endpoint, used by tests.
func WithEndpoint(endpoint string) MailerOption {
	return func(m *Mailer) { m.endpoint = endpoint }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(httpClient *http.Client) MailerOption {
	return func(m *Mailer) { m.httpClient = httpClient }
}

// NewMailer builds a mailer that alerts the given operator address.
func NewMailer(apiKey, from, to string, opts ...MailerOption) *Mailer {
	m := &Mailer{
		endpoint:   defaultEndpoint,
		apiKey:     apiKey,
		from:       from,
		to:         to,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

type sendRequest struct {
	Personalizations []personalization `json:"personalizations"`
	From             address           `json:"from"`
	Subject          string            `json:"subject"`
	Content          []content         `json:"content"`
}

type personalization struct {
	To []address `json:"to"`
}

type address struct {
	Email string `json:"email"`
}

type content struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// SendParseFailure alerts the operator channel that a payment email could
// not be matched to any platform. The offending sender and subject go into
// the body so the message can be found and parsed by hand.
func (m *Mailer) SendParseFailure(ctx context.Context, from, subject string, at time.Time) error {
	body := fmt.Sprintf("Timestamp: %s\nFrom: %s\nSubject: %s", at.Format(time.RFC1123), from, subject)
	return m.send(ctx, "Error parsing payment email", body)
}

func (m *Mailer) send(ctx context.Context, subject, body string) error {
	payload, err := json.Marshal(sendRequest{
		Personalizations: []personalization{{To: []address{{Email: m.to}}}},
		From:             address{Email: m.from},
		Subject:          subject,
		Content:          []content{{Type: "text/plain", Value: body}},
	})
	if err != nil {
		return fmt.Errorf("encoding alert: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint+"/v3/mail/send", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending alert: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("alert send failed: %s: %s", resp.Status, bytes.TrimSpace(respBody))
	}

	return nil
}
