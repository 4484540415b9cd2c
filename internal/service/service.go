// Package service implements the QR generation and decoding pipelines.
package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/tempizhere/qrgen/internal/models"
	"github.com/tempizhere/qrgen/internal/payload"
	"github.com/tempizhere/qrgen/internal/render"
	"github.com/tempizhere/qrgen/internal/scan"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// MaxBatchSize limits bulk requests.
const MaxBatchSize = 50

// bulkWorkers bounds concurrent item encoding within one batch.
const bulkWorkers = 8

var (
	ErrEmptyBatch    = errors.New("batch must contain at least one item")
	ErrBatchTooLarge = fmt.Errorf("batch must contain at most %d items", MaxBatchSize)
)

// Service wires the payload builders to the encoder and decoder collaborators.
type Service struct {
	encoder render.Encoder
	decoder scan.Decoder
	logger  *zap.Logger
}

// NewService creates a new Service instance.
func NewService(encoder render.Encoder, decoder scan.Decoder, logger *zap.Logger) *Service {
	return &Service{
		encoder: encoder,
		decoder: decoder,
		logger:  logger,
	}
}

// Generated is the single-item pipeline result.
type Generated struct {
	Payload payload.Payload
	Options render.Options
	Image   *render.Rendered
}

// Generate builds the payload for kind, normalizes options and renders the
// image. Validation errors are returned before the encoder is invoked.
func (s *Service) Generate(ctx context.Context, kind string, fields payload.Fields, raw render.RawOptions) (*Generated, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p, err := payload.Build(kind, fields)
	if err != nil {
		return nil, err
	}
	opts := render.Normalize(raw)
	if p.Kind == payload.KindVCard {
		// dense contact payloads always get the strongest correction
		opts.Level = "H"
	}
	img, err := s.encoder.Render(p.Text, opts)
	if err != nil {
		return nil, fmt.Errorf("render qr image: %w", err)
	}
	return &Generated{Payload: p, Options: opts, Image: img}, nil
}

// BulkGenerate runs the single-item pipeline over every item with shared
// rendering options. One item's failure is recorded in its result slot and
// never aborts the batch; the results slice always matches the input length
// and order.
func (s *Service) BulkGenerate(ctx context.Context, req models.BulkRequest) (*models.BulkResponse, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyBatch
	}
	if len(req.Items) > MaxBatchSize {
		return nil, ErrBatchTooLarge
	}

	opts := render.Normalize(render.RawOptions{
		Size:            string(req.Size),
		ErrorCorrection: req.ErrorCorrection,
		Format:          req.Format,
	})

	results := make([]models.BulkItemResult, len(req.Items))
	g := new(errgroup.Group)
	g.SetLimit(bulkWorkers)
	for i, item := range req.Items {
		i, item := i, item
		g.Go(func() error {
			results[i] = s.bulkItem(ctx, i, item, opts)
			return nil
		})
	}
	// item errors are recorded per slot, never returned
	_ = g.Wait()

	summary := models.BulkSummary{Total: len(results)}
	for _, r := range results {
		if r.Success {
			summary.SuccessCount++
		}
	}
	summary.FailedCount = summary.Total - summary.SuccessCount

	return &models.BulkResponse{Success: true, Summary: summary, Results: results}, nil
}

// bulkItem processes one batch entry. opts is a copy, so the vCard level
// override cannot leak into sibling items.
func (s *Service) bulkItem(ctx context.Context, index int, item models.BulkItem, opts render.Options) models.BulkItemResult {
	if err := ctx.Err(); err != nil {
		return models.BulkItemResult{Index: index, Error: "request cancelled"}
	}
	p, err := payload.Build(item.Type, payload.Fields(item.Data))
	if err != nil {
		return models.BulkItemResult{Index: index, Error: err.Error()}
	}
	if p.Kind == payload.KindVCard {
		opts.Level = "H"
	}
	img, err := s.encoder.Render(p.Text, opts)
	if err != nil {
		s.logger.Error("bulk item encode failed",
			zap.Int("index", index),
			zap.String("type", string(p.Kind)),
			zap.Error(err),
		)
		return models.BulkItemResult{Index: index, Type: string(p.Kind), Error: "failed to render qr image"}
	}
	return models.BulkItemResult{
		Index:   index,
		Success: true,
		Type:    string(p.Kind),
		QRCode:  imageString(img),
	}
}

// imageString embeds the rendered image into a JSON-safe string.
func imageString(img *render.Rendered) string {
	if img.Format == render.FormatSVG {
		return img.SVG
	}
	return img.DataURL()
}

// Decode scans raw image bytes for a QR symbol.
func (s *Service) Decode(ctx context.Context, data []byte) (*scan.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, &payload.ValidationError{Field: "image", Reason: "is required"}
	}
	return s.decoder.Scan(data)
}

// DecodeBase64 decodes a base64 or data-URL encoded image and scans it.
func (s *Service) DecodeBase64(ctx context.Context, encoded string) (*scan.Result, error) {
	data, err := decodeBase64Image(encoded)
	if err != nil {
		return nil, err
	}
	return s.Decode(ctx, data)
}

// decodeBase64Image strips an optional data:...;base64, prefix and decodes
// the remainder, tolerating both padded and raw encodings.
func decodeBase64Image(s string) ([]byte, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil, &payload.ValidationError{Field: "image", Reason: "is required, e.g. a base64 PNG or a data URL"}
	}
	if strings.HasPrefix(trimmed, "data:") {
		if idx := strings.Index(trimmed, ","); idx >= 0 {
			trimmed = trimmed[idx+1:]
		}
	}
	trimmed = strings.ReplaceAll(trimmed, "\n", "")
	trimmed = strings.ReplaceAll(trimmed, "\r", "")
	data, err := base64.StdEncoding.DecodeString(trimmed)
	if err != nil {
		data, err = base64.RawStdEncoding.DecodeString(trimmed)
		if err != nil {
			return nil, &payload.ValidationError{Field: "image", Reason: "must be valid base64"}
		}
	}
	return data, nil
}
