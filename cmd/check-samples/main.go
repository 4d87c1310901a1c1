// The check-samples binary runs detection and extraction over the sample
// mails in testdata and prints one JSON result per file. It exercises every
// stage except the ledger write, so a template drift shows up before it
// books a wrong figure.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bedstuystrong/payment-parsers/ingress"
	"github.com/bedstuystrong/payment-parsers/ledger"
	"github.com/bedstuystrong/payment-parsers/parsers"
	"github.com/bedstuystrong/payment-parsers/pkg/email"
)

type result struct {
	File          string                     `json:"file"`
	AutoForwarded bool                       `json:"auto_forwarded,omitempty"`
	Platform      string                     `json:"platform,omitempty"`
	Details       *ledger.TransactionDetails `json:"details,omitempty"`
	Rejected      bool                       `json:"rejected,omitempty"`
	Error         string                     `json:"error,omitempty"`
}

func main() {
	sampleDir := "testdata/sample_mails"
	if len(os.Args) > 1 {
		sampleDir = os.Args[1]
	}

	files, err := filepath.Glob(filepath.Join(sampleDir, "*.eml"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "reading sample directory: %v\n", err)
		os.Exit(1)
	}
	sort.Strings(files)

	gate := ingress.NewGate()
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	extracted := 0
	failed := 0

	for _, path := range files {
		res := result{File: filepath.Base(path)}

		raw, err := os.ReadFile(path)
		if err != nil {
			res.Error = err.Error()
			failed++
			enc.Encode(res)
			continue
		}

		msg, err := email.Parse(raw)
		if err != nil {
			res.Error = err.Error()
			failed++
			enc.Encode(res)
			continue
		}

		isAutoForwarded, err := gate.Check(msg)
		if err != nil {
			res.Rejected = true
			enc.Encode(res)
			continue
		}
		res.AutoForwarded = isAutoForwarded

		parser, err := parsers.Detect(msg, isAutoForwarded)
		if err != nil {
			res.Error = err.Error()
			failed++
			enc.Encode(res)
			continue
		}
		res.Platform = string(parser.Platform())

		details, err := parser.Extract(msg)
		if err != nil {
			res.Error = err.Error()
			failed++
			enc.Encode(res)
			continue
		}
		res.Details = details
		extracted++
		enc.Encode(res)
	}

	fmt.Fprintf(os.Stderr, "%d files, %d extracted, %d failed\n", len(files), extracted, failed)
	if failed > 0 {
		os.Exit(1)
	}
}
