// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package api

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mrjoshuak/cmx3600"
	"github.com/mrjoshuak/cmx3600/internal/catalog"
	"github.com/mrjoshuak/cmx3600/internal/scenelist"
)

func NewRouter(cfg ServerConfig) *chi.Mux {
	cfg = cfg.withDefaults()
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware())
	r.Use(RecoveryMiddleware(cfg.Logger))
	r.Use(LoggingMiddleware(cfg.Logger))

	r.Get("/health", healthHandler(cfg))
	r.Post("/parse", parseHandler(cfg))
	r.Post("/scenes", scenesHandler(cfg))

	r.Route("/lists", func(r chi.Router) {
		r.Use(requireCatalog(cfg))

		r.Post("/", saveListHandler(cfg))
		r.Get("/", listListsHandler(cfg))
		r.Get("/{id}", getListHandler(cfg))
		r.Delete("/{id}", deleteListHandler(cfg))
	})

	return r
}

func requireCatalog(cfg ServerConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.Catalog == nil {
				WriteError(w, http.StatusServiceUnavailable, "catalog is not configured", "CATALOG_UNAVAILABLE")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func healthHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, HealthResponse{
			Status:  "ok",
			Version: cfg.Version,
			UptimeS: int64(time.Since(cfg.StartTime).Seconds()),
			Catalog: cfg.Catalog != nil,
		})
	}
}

func parseHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		edl, ok := decodeEditList(cfg, w, r)
		if !ok {
			return
		}
		WriteJSON(w, http.StatusOK, EditListToResponse(edl))
	}
}

func scenesHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		pattern := cfg.ScenePattern
		if p := q.Get("pattern"); p != "" {
			pattern = p
		}
		x, err := scenelist.NewExtractor(pattern)
		if err != nil {
			WriteError(w, http.StatusBadRequest, err.Error(), "INVALID_PATTERN")
			return
		}

		var format scenelist.Format
		if f := q.Get("format"); f != "" {
			if format, err = scenelist.ParseFormat(f); err != nil {
				WriteError(w, http.StatusBadRequest, err.Error(), "INVALID_FORMAT")
				return
			}
		}

		edl, ok := decodeEditList(cfg, w, r)
		if !ok {
			return
		}
		scenes := scenelist.Build(edl, x)

		if format == "" {
			WriteJSON(w, http.StatusOK, ScenesToResponse(edl.Title(), scenes))
			return
		}

		var buf bytes.Buffer
		sw := scenelist.NewWriter(&buf)
		sw.SetFormat(format)
		if title := q.Get("title"); title != "" {
			sw.SetTitle(title)
		}
		if err := sw.Write(scenes); err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error(), "INTERNAL_ERROR")
			return
		}
		contentType := "text/plain; charset=utf-8"
		if format == scenelist.FormatYAML {
			contentType = "application/yaml"
		}
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(http.StatusOK)
		w.Write(buf.Bytes())
	}
}

func saveListHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		edl, ok := decodeEditList(cfg, w, r)
		if !ok {
			return
		}
		name := r.URL.Query().Get("name")
		if name == "" {
			name = edl.Title()
		}

		id, err := cfg.Catalog.SaveEditList(r.Context(), name, edl)
		if err != nil {
			cfg.Logger.Error("save edit list failed", "error", err, "request_id", RequestID(r.Context()))
			WriteError(w, http.StatusInternalServerError, "failed to store edit list", "INTERNAL_ERROR")
			return
		}
		WriteJSON(w, http.StatusCreated, SaveListResponse{ID: id})
	}
}

func listListsHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lists, err := cfg.Catalog.ListEditLists(r.Context())
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "failed to list edit lists", "INTERNAL_ERROR")
			return
		}
		if lists == nil {
			lists = []*catalog.EditList{}
		}
		WriteJSON(w, http.StatusOK, ListsResponse{Lists: lists})
	}
}

func getListHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := listID(w, r)
		if !ok {
			return
		}

		l, err := cfg.Catalog.GetEditList(r.Context(), id)
		if !catalogOK(w, err) {
			return
		}
		edits, err := cfg.Catalog.ListEdits(r.Context(), id)
		if !catalogOK(w, err) {
			return
		}
		if edits == nil {
			edits = []*catalog.Edit{}
		}
		WriteJSON(w, http.StatusOK, ListResponse{List: l, Edits: edits})
	}
}

func deleteListHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := listID(w, r)
		if !ok {
			return
		}
		if !catalogOK(w, cfg.Catalog.DeleteEditList(r.Context(), id)) {
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// decodeEditList parses the request body, writing the error response and
// returning false if it is not an edit list.
func decodeEditList(cfg ServerConfig, w http.ResponseWriter, r *http.Request) (*cmx3600.EditList, bool) {
	tolerant := cfg.Tolerant
	if v := r.URL.Query().Get("tolerant"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "tolerant must be a boolean", "BAD_REQUEST")
			return nil, false
		}
		tolerant = b
	}

	d := cmx3600.NewDecoder(http.MaxBytesReader(w, r.Body, cfg.MaxBodyBytes))
	d.SetTolerant(tolerant)
	d.SetLogger(cfg.Logger.With("request_id", RequestID(r.Context())))

	edl, err := d.Decode()
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			WriteError(w, http.StatusRequestEntityTooLarge, "edit list is too large", "TOO_LARGE")
		case errors.Is(err, cmx3600.ErrMissingTitle):
			WriteError(w, http.StatusBadRequest, err.Error(), "MISSING_TITLE")
		default:
			WriteError(w, http.StatusBadRequest, "failed to read edit list: "+err.Error(), "BAD_REQUEST")
		}
		return nil, false
	}
	return edl, true
}

func listID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		WriteError(w, http.StatusBadRequest, "invalid edit list id", "BAD_REQUEST")
		return 0, false
	}
	return id, true
}

func catalogOK(w http.ResponseWriter, err error) bool {
	switch {
	case err == nil:
		return true
	case errors.Is(err, catalog.ErrNotFound):
		WriteError(w, http.StatusNotFound, "edit list not found", "NOT_FOUND")
	default:
		WriteError(w, http.StatusInternalServerError, err.Error(), "INTERNAL_ERROR")
	}
	return false
}
