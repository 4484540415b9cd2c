// Package payload builds QR payload strings from loosely-typed field sets.
package payload

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Kind identifies a semantic payload type.
type Kind string

const (
	KindURL      Kind = "url"
	KindText     Kind = "text"
	KindEmail    Kind = "email"
	KindSMS      Kind = "sms"
	KindPhone    Kind = "phone"
	KindWiFi     Kind = "wifi"
	KindVCard    Kind = "vcard"
	KindUPI      Kind = "upi"
	KindLocation Kind = "location"
	KindWhatsApp Kind = "whatsapp"
	KindEvent    Kind = "event"
)

// kept in declaration order for error messages and docs
var kinds = []Kind{
	KindURL, KindText, KindEmail, KindSMS, KindPhone, KindWiFi,
	KindVCard, KindUPI, KindLocation, KindWhatsApp, KindEvent,
}

// Kinds returns the valid payload types in stable order.
func Kinds() []string {
	out := make([]string, len(kinds))
	for i, k := range kinds {
		out[i] = string(k)
	}
	return out
}

// Payload is the text encoded into a QR symbol plus its semantic type.
type Payload struct {
	Kind Kind
	Text string
}

// ValidationError reports a missing or malformed request field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + " " + e.Reason
}

// InvalidKindError reports an unknown payload type.
type InvalidKindError struct {
	Kind string
}

func (e *InvalidKindError) Error() string {
	return "unknown payload type " + strconv.Quote(e.Kind) +
		", valid types: " + strings.Join(Kinds(), ", ")
}

// Fields is a loosely-typed field bag coming from query params or JSON.
type Fields map[string]any

// Get returns the field as a string, coercing scalar JSON values.
func (f Fields) Get(key string) string {
	v, ok := f[key]
	if !ok {
		return ""
	}
	return stringify(v)
}

// Bool reports whether the field parses as a true boolean.
func (f Fields) Bool(key string) bool {
	b, err := strconv.ParseBool(strings.ToLower(f.Get(key)))
	return err == nil && b
}

// stringify normalizes arbitrary JSON values into a string the builders can use.
func stringify(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case json.Number:
		return v.String()
	case nil:
		return ""
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

// Build resolves the builder for kind and produces the payload string.
func Build(kind string, fields Fields) (Payload, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(kind)))
	build, ok := builders[k]
	if !ok {
		return Payload{}, &InvalidKindError{Kind: kind}
	}
	text, err := build(fields)
	if err != nil {
		return Payload{}, err
	}
	return Payload{Kind: k, Text: text}, nil
}
