// Package models holds the JSON request and response shapes of the API.
package models

import (
	"strconv"

	"github.com/tempizhere/qrgen/internal/scan"
)

// FlexString accepts both JSON strings and numbers, so callers may send
// "size": 500 as well as "size": "500".
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (s *FlexString) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		unquoted, err := strconv.Unquote(string(b))
		if err != nil {
			return err
		}
		*s = FlexString(unquoted)
		return nil
	}
	if string(b) == "null" {
		*s = ""
		return nil
	}
	*s = FlexString(b)
	return nil
}

// BulkItem is one entry of a bulk generation request.
type BulkItem struct {
	Type string         `json:"type"`
	Data map[string]any `json:"data"`
}

// BulkRequest is the bulk generation request body. Rendering options are
// shared across all items.
type BulkRequest struct {
	Items           []BulkItem `json:"items"`
	Size            FlexString `json:"size"`
	Format          string     `json:"format"`
	ErrorCorrection string     `json:"error_correction"`
}

// BulkItemResult is the outcome for one item, at the same index as the input.
type BulkItemResult struct {
	Index   int    `json:"index"`
	Success bool   `json:"success"`
	Type    string `json:"type,omitempty"`
	QRCode  string `json:"qr_code,omitempty"`
	Error   string `json:"error,omitempty"`
}

// BulkSummary aggregates per-item outcomes.
type BulkSummary struct {
	Total        int `json:"total"`
	SuccessCount int `json:"success_count"`
	FailedCount  int `json:"failed_count"`
}

// BulkResponse is the bulk generation response body. Results always has one
// entry per input item, in input order.
type BulkResponse struct {
	Success bool             `json:"success"`
	Summary BulkSummary      `json:"summary"`
	Results []BulkItemResult `json:"results"`
}

// QROptions echoes the normalized rendering options in responses.
type QROptions struct {
	Size            int    `json:"size"`
	Margin          int    `json:"margin"`
	Color           string `json:"color"`
	BgColor         string `json:"bg_color"`
	ErrorCorrection string `json:"error_correction"`
	Format          string `json:"format"`
}

// GeneratedData carries the payload string and the rendered image.
type GeneratedData struct {
	Payload string `json:"payload"`
	QRCode  string `json:"qr_code"`
}

// GenerateResponse is the JSON envelope for single-item generation.
type GenerateResponse struct {
	Success bool           `json:"success"`
	Type    string         `json:"type"`
	Input   map[string]any `json:"input"`
	Options QROptions      `json:"qr_options"`
	Data    GeneratedData  `json:"data"`
}

// DecodeBase64Request is the body of the base64 decode endpoint.
type DecodeBase64Request struct {
	Image string `json:"image"`
}

// DecodeResponse wraps a successful decode.
type DecodeResponse struct {
	Success bool         `json:"success"`
	Data    *scan.Result `json:"data"`
}

// ErrorResponse is the uniform failure envelope.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}
