// Package gateway exposes the coalescing layer over HTTP. Every request maps
// to one registered operation, so concurrent requests within a flush window
// share a single pipelined store batch.
package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/coalesced/batchkv/coalesce"
	"github.com/coalesced/batchkv/codec"
	"github.com/coalesced/batchkv/observability"
	"github.com/coalesced/batchkv/store"
)

// Option configures a Gateway after config-driven initialization.
type Option func(*Gateway)

// WithConn overrides the config-created store connection.
func WithConn(conn store.Conn) Option {
	return func(g *Gateway) { g.conn = conn }
}

// WithObserver overrides the default SlogObserver handed to the coalescer.
func WithObserver(o observability.Observer) Option {
	return func(g *Gateway) { g.observer = o }
}

// Gateway serves get/set/delete over HTTP, backed by a Coalescer. Values are
// arbitrary JSON documents.
type Gateway struct {
	conn     store.Conn
	observer observability.Observer
	cache    *coalesce.Coalescer[json.RawMessage]
	handler  http.Handler
}

// New creates a Gateway from configuration. The store connection is opened
// from the config's store section unless WithConn overrides it; the gateway
// owns the connection either way and releases it on Close.
func New(cfg *Config, opts ...Option) (*Gateway, error) {
	g := &Gateway{}
	for _, opt := range opts {
		opt(g)
	}

	if g.conn == nil {
		conn, err := store.Open(&cfg.Store)
		if err != nil {
			return nil, fmt.Errorf("failed to open store: %w", err)
		}
		g.conn = conn
	}

	var coalesceOpts []coalesce.Option[json.RawMessage]
	if g.observer != nil {
		coalesceOpts = append(coalesceOpts, coalesce.WithObserver[json.RawMessage](g.observer))
	}

	cache, err := coalesce.New(&cfg.Coalesce, g.conn, codec.JSON[json.RawMessage](), coalesceOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create coalescer: %w", err)
	}
	g.cache = cache

	r := chi.NewRouter()
	r.Get("/health", g.handleHealth)
	r.Get("/keys/{key}", g.handleGet)
	r.Put("/keys/{key}", g.handlePut)
	r.Delete("/keys/{key}", g.handleDelete)
	g.handler = r

	return g, nil
}

// Handler returns the gateway's HTTP handler.
func (g *Gateway) Handler() http.Handler {
	return g.handler
}

// Close releases the underlying store connection.
func (g *Gateway) Close() error {
	return g.conn.Close()
}

func (g *Gateway) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func (g *Gateway) handleGet(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	value, err := g.cache.GetWait(r.Context(), key)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, coalesce.ErrDecode) {
			status = http.StatusInternalServerError
		}
		writeError(w, status, err)
		return
	}
	if value == nil {
		writeError(w, http.StatusNotFound, errors.New("key not found"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(*value)
}

func (g *Gateway) handlePut(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if !json.Valid(body) {
		writeError(w, http.StatusBadRequest, errors.New("body must be valid JSON"))
		return
	}

	if err := g.cache.SetWait(r.Context(), key, json.RawMessage(body)); err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (g *Gateway) handleDelete(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	if err := g.cache.DeleteWait(r.Context(), key); err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
