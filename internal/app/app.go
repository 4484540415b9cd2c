// Package app contains the HTTP handlers of the QR service.
package app

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/tempizhere/qrgen/internal/models"
	"github.com/tempizhere/qrgen/internal/payload"
	"github.com/tempizhere/qrgen/internal/render"
	"github.com/tempizhere/qrgen/internal/scan"
	"github.com/tempizhere/qrgen/internal/service"
	"go.uber.org/zap"
)

// optionKeys are the shared rendering parameters; everything else in the
// query string belongs to the payload field set.
var optionKeys = map[string]bool{
	"size":             true,
	"margin":           true,
	"color":            true,
	"bg_color":         true,
	"error_correction": true,
	"format":           true,
}

// App holds the handlers and their dependencies.
type App struct {
	svc          *service.Service
	logger       *zap.Logger
	maxImageSize int64
}

// NewApp creates the application.
func NewApp(svc *service.Service, logger *zap.Logger, maxImageSize int64) *App {
	return &App{svc: svc, logger: logger, maxImageSize: maxImageSize}
}

// HandleGenerate handles GET requests to "/api/qr/{type}".
func (a *App) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "type")
	q := r.URL.Query()

	fields := payload.Fields{}
	for key, vals := range q {
		if optionKeys[key] || len(vals) == 0 {
			continue
		}
		fields[key] = vals[0]
	}
	raw := render.RawOptions{
		Size:            q.Get("size"),
		Margin:          q.Get("margin"),
		Color:           q.Get("color"),
		BgColor:         q.Get("bg_color"),
		ErrorCorrection: q.Get("error_correction"),
		Format:          q.Get("format"),
	}

	gen, err := a.svc.Generate(r.Context(), kind, fields, raw)
	if err != nil {
		a.writeError(w, err)
		return
	}

	switch gen.Image.Format {
	case render.FormatPNG:
		w.Header().Set("Content-Type", "image/png")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(gen.Image.PNG); err != nil {
			a.logger.Error("failed to write png response", zap.Error(err))
		}
	case render.FormatSVG:
		w.Header().Set("Content-Type", "image/svg+xml")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(gen.Image.SVG)); err != nil {
			a.logger.Error("failed to write svg response", zap.Error(err))
		}
	default:
		a.writeJSONResponse(w, http.StatusOK, models.GenerateResponse{
			Success: true,
			Type:    string(gen.Payload.Kind),
			Input:   fields,
			Options: optionsEcho(gen.Options),
			Data: models.GeneratedData{
				Payload: gen.Payload.Text,
				QRCode:  gen.Image.DataURL(),
			},
		})
	}
}

// HandleBulkGenerate handles POST requests to "/api/qr/bulk".
func (a *App) HandleBulkGenerate(w http.ResponseWriter, r *http.Request) {
	if !strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		a.writeErrorMessage(w, http.StatusBadRequest, "Content-Type must be application/json")
		return
	}
	var req models.BulkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.writeErrorMessage(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	resp, err := a.svc.BulkGenerate(r.Context(), req)
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSONResponse(w, http.StatusOK, resp)
}

// HandleDecodeUpload handles POST requests to "/api/qr/decode" with a
// multipart image attachment in the "image" field.
func (a *App) HandleDecodeUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(a.maxImageSize); err != nil {
		a.writeErrorMessage(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		a.writeErrorMessage(w, http.StatusBadRequest, `an image file is required in the multipart field "image"`)
		return
	}
	defer file.Close()

	if ct := header.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "image/") {
		a.writeErrorMessage(w, http.StatusBadRequest, "uploaded file must be an image")
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, a.maxImageSize+1))
	if err != nil {
		a.writeErrorMessage(w, http.StatusBadRequest, "failed to read uploaded file")
		return
	}
	if int64(len(data)) > a.maxImageSize {
		a.writeErrorMessage(w, http.StatusBadRequest, "uploaded image exceeds the size limit")
		return
	}

	result, err := a.svc.Decode(r.Context(), data)
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSONResponse(w, http.StatusOK, models.DecodeResponse{Success: true, Data: result})
}

// HandleDecodeBase64 handles POST requests to "/api/qr/decode/base64".
func (a *App) HandleDecodeBase64(w http.ResponseWriter, r *http.Request) {
	if !strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		a.writeErrorMessage(w, http.StatusBadRequest, "Content-Type must be application/json")
		return
	}
	var req models.DecodeBase64Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.writeErrorMessage(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	result, err := a.svc.DecodeBase64(r.Context(), req.Image)
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSONResponse(w, http.StatusOK, models.DecodeResponse{Success: true, Data: result})
}

// HandlePing handles GET requests to "/ping".
func (a *App) HandlePing(w http.ResponseWriter, r *http.Request) {
	a.writeJSONResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// HandleNotFound answers unknown routes with the JSON failure envelope.
func (a *App) HandleNotFound(w http.ResponseWriter, r *http.Request) {
	a.writeErrorMessage(w, http.StatusNotFound, "route not found, see GET / for the list of endpoints")
}

// writeError maps pipeline errors onto the HTTP status taxonomy.
func (a *App) writeError(w http.ResponseWriter, err error) {
	var validationErr *payload.ValidationError
	var kindErr *payload.InvalidKindError
	switch {
	case errors.As(err, &validationErr),
		errors.As(err, &kindErr),
		errors.Is(err, service.ErrEmptyBatch),
		errors.Is(err, service.ErrBatchTooLarge):
		a.writeErrorMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, scan.ErrNotFound):
		a.writeErrorMessage(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, scan.ErrUnreadableImage):
		a.logger.Error("unreadable image", zap.Error(err))
		a.writeErrorMessage(w, http.StatusInternalServerError, scan.ErrUnreadableImage.Error())
	default:
		a.logger.Error("request failed", zap.Error(err))
		a.writeErrorMessage(w, http.StatusInternalServerError, "unexpected error while processing the request")
	}
}

func (a *App) writeErrorMessage(w http.ResponseWriter, status int, msg string) {
	a.writeJSONResponse(w, status, models.ErrorResponse{Success: false, Error: msg})
}

// writeJSONResponse writes a JSON response with error checking.
func (a *App) writeJSONResponse(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	data, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Failed to encode JSON", http.StatusInternalServerError)
		return
	}
	if _, err := w.Write(data); err != nil {
		a.logger.Error("failed to write response", zap.Error(err))
	}
}

func optionsEcho(opts render.Options) models.QROptions {
	return models.QROptions{
		Size:            opts.Width,
		Margin:          opts.Margin,
		Color:           opts.DarkColor,
		BgColor:         opts.LightColor,
		ErrorCorrection: opts.Level,
		Format:          string(opts.Format),
	}
}
