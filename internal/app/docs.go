package app

import (
	"net/http"

	"github.com/tempizhere/qrgen/internal/payload"
)

// endpointDoc describes one route for the documentation root.
type endpointDoc struct {
	Method   string   `json:"method"`
	Path     string   `json:"path"`
	Params   []string `json:"params,omitempty"`
	Required []string `json:"required,omitempty"`
	Body     string   `json:"body,omitempty"`
}

// sharedOptions are accepted by every generation endpoint.
var sharedOptions = []string{"size", "margin", "color", "bg_color", "error_correction", "format"}

var typeParams = map[string]struct {
	required []string
	optional []string
}{
	"url":      {required: []string{"url"}},
	"text":     {required: []string{"text"}},
	"email":    {required: []string{"to"}, optional: []string{"subject", "body"}},
	"sms":      {required: []string{"phone"}, optional: []string{"message"}},
	"phone":    {required: []string{"phone"}},
	"wifi":     {required: []string{"ssid"}, optional: []string{"password", "encryption", "hidden"}},
	"vcard":    {required: []string{"name"}, optional: []string{"phone", "email", "org", "title", "url", "address", "note"}},
	"upi":      {required: []string{"vpa"}, optional: []string{"name", "amount", "currency", "note"}},
	"location": {required: []string{"lat", "lng"}, optional: []string{"label"}},
	"whatsapp": {required: []string{"phone"}, optional: []string{"message"}},
	"event":    {required: []string{"title", "start"}, optional: []string{"end", "location", "description"}},
}

// HandleDocs handles GET requests to "/" and enumerates every route.
func (a *App) HandleDocs(w http.ResponseWriter, r *http.Request) {
	endpoints := make([]endpointDoc, 0, len(typeParams)+4)
	for _, kind := range payload.Kinds() {
		p := typeParams[kind]
		endpoints = append(endpoints, endpointDoc{
			Method:   http.MethodGet,
			Path:     "/api/qr/" + kind,
			Params:   append(append([]string{}, p.optional...), sharedOptions...),
			Required: p.required,
		})
	}
	endpoints = append(endpoints,
		endpointDoc{
			Method: http.MethodPost,
			Path:   "/api/qr/bulk",
			Body:   `{"items": [{"type": "...", "data": {...}}], "size": 300, "format": "png", "error_correction": "M"} (1..50 items)`,
		},
		endpointDoc{
			Method: http.MethodPost,
			Path:   "/api/qr/decode",
			Body:   `multipart form with an image file in the "image" field`,
		},
		endpointDoc{
			Method: http.MethodPost,
			Path:   "/api/qr/decode/base64",
			Body:   `{"image": "<base64 or data URL>"}`,
		},
		endpointDoc{Method: http.MethodGet, Path: "/ping"},
	)

	a.writeJSONResponse(w, http.StatusOK, map[string]any{
		"service":   "qrgen",
		"types":     payload.Kinds(),
		"endpoints": endpoints,
	})
}
