// Package ingestion turns uploaded resume payloads into clean analyzable
// text: base64 decoding, text extraction, normalization, and a minimum
// content check.
package ingestion

import (
	"encoding/base64"
	"strings"
)

// DecodeBase64 decodes an uploaded file payload. Browser clients often send
// data URLs ("data:application/pdf;base64,..."); the prefix is stripped
// before decoding.
func DecodeBase64(payload string) ([]byte, error) {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return nil, &InvalidInputError{Message: "empty file payload"}
	}

	if strings.HasPrefix(payload, "data:") {
		if idx := strings.Index(payload, ","); idx >= 0 {
			payload = payload[idx+1:]
		}
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, &InvalidInputError{Message: "file payload is not valid base64", Cause: err}
	}
	return data, nil
}
