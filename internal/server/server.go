// Package server exposes the affordability calculator as a JSON HTTP API.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/iwvelando/house-affordability/internal/affordability"
	"github.com/iwvelando/house-affordability/internal/ledger"
	"github.com/iwvelando/house-affordability/pkg/constants"
	"github.com/iwvelando/house-affordability/pkg/output"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type handler struct {
	logger         *zap.Logger
	maxRequestSize int64
	version        string
	metrics        *metrics
}

// NewHandler constructs the HTTP handler that serves the affordability API.
func NewHandler(logger *zap.Logger, maxRequestSize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxRequestSize <= 0 {
		maxRequestSize = constants.DefaultMaxRequestSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	registry := prometheus.NewRegistry()
	h := &handler{
		logger:         logger,
		maxRequestSize: maxRequestSize,
		version:        trimmedVersion,
		metrics:        newMetrics(registry),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(h.metrics.middleware)
	r.Use(h.logRequests)

	r.Get("/healthz", h.handleHealthz)
	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Post("/affordability", h.handleAffordability)
		r.Get("/categories", h.handleCategories)
		r.Get("/version", h.handleVersion)
	})

	return r
}

// text accepts either a JSON string or a JSON number and keeps the literal
// as typed, so numeric inputs go through the same parsing as text fields.
type text string

func (t *text) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	switch {
	case bytes.Equal(trimmed, []byte("null")):
		*t = ""
	case len(trimmed) > 0 && trimmed[0] == '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*t = text(s)
	default:
		var n json.Number
		if err := json.Unmarshal(trimmed, &n); err != nil {
			return fmt.Errorf("expected string or number, got %s", trimmed)
		}
		*t = text(n.String())
	}
	return nil
}

type affordabilityRequest struct {
	Salary text          `json:"salary"`
	Debts  []debtRequest `json:"debts"`
}

type debtRequest struct {
	Category string `json:"category"`
	Amount   text   `json:"amount"`
}

func (req affordabilityRequest) drafts() ([]ledger.Draft, error) {
	drafts := make([]ledger.Draft, 0, len(req.Debts))
	for i, debt := range req.Debts {
		draft := ledger.Draft{AmountText: string(debt.Amount)}
		if strings.TrimSpace(debt.Category) != "" {
			category, ok := affordability.ParseCategory(debt.Category)
			if !ok {
				return nil, fmt.Errorf("debts[%d]: unknown category %q", i, debt.Category)
			}
			draft.Category = category
		}
		drafts = append(drafts, draft)
	}
	return drafts, nil
}

func (h *handler) handleAffordability(w http.ResponseWriter, r *http.Request) {
	op := "server.handleAffordability"
	r.Body = http.MaxBytesReader(w, r.Body, h.maxRequestSize)

	var req affordabilityRequest
	if err := decodeSingle(r.Body, &req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxRequestSize), op)
			return
		}
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
		return
	}

	drafts, err := req.drafts()
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	l := ledger.New(ledger.WithLogger(h.logger))
	l.SetSalary(string(req.Salary))
	for _, draft := range drafts {
		l.Append(draft)
	}

	snapshot := l.Snapshot()
	h.metrics.computations.WithLabelValues(snapshot.Result.Tier.String()).Inc()

	h.logger.Debug("affordability computed",
		zap.String("op", op),
		zap.Int("entries", len(snapshot.Entries)),
		zap.String("tier", snapshot.Result.Tier.String()),
	)

	h.writeJSON(w, http.StatusOK, output.Report{
		Snapshot: snapshot,
		Display:  output.NewDisplay(snapshot),
	})
}

var errTrailingData = errors.New("unexpected data after JSON object")

// decodeSingle decodes exactly one JSON value from r and rejects anything
// but whitespace after it.
func decodeSingle(r io.Reader, v interface{}) error {
	dec := json.NewDecoder(r)
	if err := dec.Decode(v); err != nil {
		return err
	}

	var extra json.RawMessage
	switch err := dec.Decode(&extra); {
	case errors.Is(err, io.EOF):
		return nil
	case err != nil:
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return err
		}
		return errTrailingData
	default:
		return errTrailingData
	}
}

func (h *handler) handleCategories(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"categories": affordability.Categories(),
		"default":    affordability.DefaultCategory,
	})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) handleHealthz(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		h.logger.Info("request served",
			zap.String("op", "server.logRequests"),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("requestId", middleware.GetReqID(r.Context())),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Warn("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response",
			zap.String("op", "server.writeJSON"),
			zap.Error(err),
		)
	}
}

// Run serves handler on address until ctx is cancelled, then shuts down
// gracefully within shutdownTimeout.
func Run(ctx context.Context, logger *zap.Logger, address string, handler http.Handler, shutdownTimeout time.Duration) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	srv := &http.Server{
		Addr:              address,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening",
			zap.String("op", "server.Run"),
			zap.String("address", address),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("failed to serve on %s: %w", address, err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logger.Info("shutting down",
		zap.String("op", "server.Run"),
	)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}
