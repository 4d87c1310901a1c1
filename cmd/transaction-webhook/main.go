// The transaction-webhook binary is the thin HTTP shell around the
// payment-email engine. The mail provider's inbound-parse hook POSTs each
// received message here as multipart form data with the raw message in the
// "email" field.
package main

import (
	"errors"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/bedstuystrong/payment-parsers/config"
	"github.com/bedstuystrong/payment-parsers/ingress"
	"github.com/bedstuystrong/payment-parsers/ledger"
	"github.com/bedstuystrong/payment-parsers/notify"
	"github.com/bedstuystrong/payment-parsers/parsers/common"
	"github.com/bedstuystrong/payment-parsers/pipeline"
	"github.com/bedstuystrong/payment-parsers/pkg/email"
)

const maxFormSize = 25 << 20 // inbound-parse posts can carry large HTML bodies

func main() {
	logger := log.New(os.Stderr, "transaction-webhook: ", log.LstdFlags)

	ledgerConfigPath := os.Getenv("LEDGER_CONFIG_PATH")
	cfg, err := config.Load(ledgerConfigPath)
	if err != nil {
		logger.Fatalf("loading config: %v", err)
	}

	ledgerClient := ledger.NewClient(
		cfg.AirtableAPIKey,
		cfg.Ledger.BaseID,
		cfg.Ledger.Table,
		ledger.WithSchema(cfg.Ledger.Schema),
	)
	mailer := notify.NewMailer(cfg.SendgridAPIKey, cfg.AlertFrom, cfg.FundAddress)

	p := pipeline.New(ledgerClient, mailer, logger)
	p.Gate = &ingress.Gate{
		FundAddress:    cfg.FundAddress,
		AliasLocalPart: cfg.AliasLocalPart,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Post("/webhooks/transaction-email", handleTransactionEmail(p, logger))

	addr := ":" + cfg.Port
	logger.Printf("listening on %s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		logger.Fatalf("server: %v", err)
	}
}

func handleTransactionEmail(p *pipeline.Pipeline, logger *log.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(maxFormSize); err != nil {
			logger.Printf("bad multipart form: %v", err)
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}

		rawEmail := r.FormValue("email")
		if rawEmail == "" {
			// The provider occasionally posts delivery events without a
			// message; acknowledge so it does not retry.
			logger.Printf("request missing email field")
			w.Write([]byte("OK"))
			return
		}

		msg, err := email.Parse([]byte(rawEmail))
		if err != nil {
			logger.Printf("unparsable email: %v", err)
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}

		if _, err := p.Process(r.Context(), msg); err != nil {
			var oos *common.OutOfScopeError
			if errors.As(err, &oos) {
				// The sending platform only ever sees an acknowledgement.
				w.Write([]byte("OK"))
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.Write([]byte("OK"))
	}
}
