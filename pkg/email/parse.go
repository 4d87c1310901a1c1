package email

import (
	"bytes"
	"encoding/base64"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/mail"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Parse parses a raw RFC 5322 message into an Email. The first text/plain
// and text/html parts found become Text and HTML; when only an HTML part is
// present, Text is derived from it so signature matching always has a text
// body to work against.
func Parse(rawEmail []byte) (*Email, error) {
	msg, err := mail.ReadMessage(bytes.NewReader(rawEmail))
	if err != nil {
		return nil, err
	}

	result := &Email{
		To:        FirstAddress(msg.Header.Get("To")),
		From:      FirstAddress(msg.Header.Get("From")),
		Subject:   decodeHeader(msg.Header.Get("Subject")),
		MessageID: strings.Trim(msg.Header.Get("Message-Id"), "<> "),
		Date:      ParseDate(msg.Header.Get("Date")),
	}

	contentType := msg.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "text/plain"
	}

	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = "text/plain"
		params = make(map[string]string)
	}

	var parts []Part
	if strings.HasPrefix(mediaType, "multipart/") {
		if boundary := params["boundary"]; boundary != "" {
			parts, _ = parseMultipart(msg.Body, boundary)
		}
	} else {
		body, err := io.ReadAll(msg.Body)
		if err == nil {
			parts = []Part{{
				ContentType: mediaType,
				Body:        decodeBody(body, msg.Header.Get("Content-Transfer-Encoding")),
			}}
		}
	}

	collectBodies(parts, result)

	if result.Text == "" && result.HTML != "" {
		result.Text = TextFromHTML(result.HTML)
	}

	return result, nil
}

// collectBodies walks the part tree and fills Text and HTML from the first
// matching parts.
func collectBodies(parts []Part, result *Email) {
	for _, part := range parts {
		switch {
		case part.ContentType == "text/plain" && result.Text == "":
			result.Text = string(part.Body)
		case part.ContentType == "text/html" && result.HTML == "":
			result.HTML = string(part.Body)
		}
		if len(part.Parts) > 0 {
			collectBodies(part.Parts, result)
		}
	}
}

// TextFromHTML renders an HTML body as plain text.
func TextFromHTML(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(doc.Text())
}

func parseMultipart(body io.Reader, boundary string) ([]Part, error) {
	var parts []Part
	mr := multipart.NewReader(body, boundary)

	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return parts, err
		}

		contentType := part.Header.Get("Content-Type")
		if contentType == "" {
			contentType = "text/plain"
		}

		mediaType, params, _ := mime.ParseMediaType(contentType)

		partBody, err := io.ReadAll(part)
		if err != nil {
			continue
		}

		decodedBody := decodeBody(partBody, part.Header.Get("Content-Transfer-Encoding"))

		emailPart := Part{
			ContentType: mediaType,
			Body:        decodedBody,
		}

		if strings.HasPrefix(mediaType, "multipart/") {
			if nestedBoundary := params["boundary"]; nestedBoundary != "" {
				nestedParts, err := parseMultipart(bytes.NewReader(decodedBody), nestedBoundary)
				if err == nil {
					emailPart.Parts = nestedParts
				}
			}
		}

		parts = append(parts, emailPart)
	}

	return parts, nil
}

func decodeBody(body []byte, encoding string) []byte {
	encoding = strings.ToLower(strings.TrimSpace(encoding))

	switch encoding {
	case "base64":
		decoded, err := base64.StdEncoding.DecodeString(string(body))
		if err == nil {
			return decoded
		}
	case "quoted-printable":
		decoded, err := io.ReadAll(quotedprintable.NewReader(bytes.NewReader(body)))
		if err == nil {
			return decoded
		}
	}

	return body
}

func decodeHeader(value string) string {
	dec := new(mime.WordDecoder)
	decoded, err := dec.DecodeHeader(value)
	if err != nil {
		return value
	}
	return decoded
}
