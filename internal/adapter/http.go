package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-todo-sync/internal/config"
	"github.com/MKhiriev/go-todo-sync/internal/logger"
	"github.com/MKhiriev/go-todo-sync/internal/utils"
	"github.com/MKhiriev/go-todo-sync/models"
)

const (
	healthPath    = "/health"
	syncBatchPath = "/sync/batch"
)

type httpRemoteAdapter struct {
	client *utils.HTTPClient
	hasher *utils.Hasher

	logger *logger.Logger
}

// NewHTTPRemoteAdapter constructs an HTTP/REST implementation of
// [RemoteAdapter]. It normalises and validates the base URL from
// adapterCfg.RemoteURL and prepares the HMAC hasher used for the HashSHA256
// header when appCfg.HashKey is set.
//
// Returns an error if adapterCfg.RemoteURL is empty or cannot be parsed as a
// valid URL.
func NewHTTPRemoteAdapter(adapterCfg config.ClientAdapter, appCfg config.ClientApp, logger *logger.Logger) (RemoteAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.RemoteURL)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter remote url: %w", err)
	}

	return &httpRemoteAdapter{
		client: utils.NewHTTPClient(baseURL),
		hasher: utils.NewHasher(appCfg.HashKey),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// request starts a resty request bound to ctx, forwarding the trace id.
func (h *httpRemoteAdapter) request(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if traceID, ok := utils.GetTraceIDFromContext(ctx); ok {
		req.SetHeader(utils.TraceIDHeader, traceID)
	}

	return req
}

// Health implements [RemoteAdapter] with GET /health.
func (h *httpRemoteAdapter) Health(ctx context.Context) error {
	resp, err := h.request(ctx).Get(healthPath)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnreachable, err)
	}

	return mapHTTPError(resp)
}

// SendBatch implements [RemoteAdapter] with POST /sync/batch. The body is
// serialised up front so the HashSHA256 header covers exactly the bytes sent.
func (h *httpRemoteAdapter) SendBatch(ctx context.Context, batch models.BatchRequest) (models.BatchResponse, error) {
	log := logger.FromContext(ctx)

	body, err := json.Marshal(batch)
	if err != nil {
		return models.BatchResponse{}, fmt.Errorf("encode batch: %w", err)
	}

	req := h.request(ctx).SetBody(body)
	if h.hasher.Enabled() {
		req.SetHeader(utils.HashHeader, h.hasher.Sign(body))
	}

	resp, err := req.Post(syncBatchPath)
	if err != nil {
		log.Err(err).
			Str("func", "httpRemoteAdapter.SendBatch").
			Int("items", len(batch.Items)).
			Msg("batch request failed")
		return models.BatchResponse{}, fmt.Errorf("%w: %w", ErrUnreachable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		log.Warn().Err(err).
			Str("func", "httpRemoteAdapter.SendBatch").
			Int("status", resp.StatusCode()).
			Msg("batch rejected by remote authority")
		return models.BatchResponse{}, err
	}

	var decoded models.BatchResponse
	if err = json.Unmarshal(resp.Body(), &decoded); err != nil {
		return models.BatchResponse{}, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}

	return decoded, nil
}
