// internal/adapters/http_server/handlers.go
package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/husham35/AirBnB-clone/internal/app"
	"github.com/husham35/AirBnB-clone/internal/domain"
)

const maxBody = 1 << 20

type Handlers struct{ Objects *app.ObjectService }

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/v1/classes", h.listClasses)
	s.mux.Get("/v1/stats", h.stats)
	s.mux.Route("/v1/objects/{class}", func(r chi.Router) {
		r.Get("/", h.listObjects)
		r.Post("/", h.createObject)
		r.Get("/{id}", h.getObject)
		r.Put("/{id}", h.updateObject)
		r.Delete("/{id}", h.deleteObject)
	})
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeError maps domain errors onto problem responses.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrUnknownClass):
		writeProblem(w, http.StatusNotFound, "Unknown class", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, domain.ErrValidation):
		writeProblem(w, http.StatusBadRequest, "Invalid attributes", err.Error())
	default:
		log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// writeCached writes v as JSON with an ETag, answering 304 on a match.
func writeCached(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if body == nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	writeJSON(w, http.StatusOK, body)
}

func writeJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}

// readAttrs decodes an optional JSON object body, keeping numbers exact.
func readAttrs(w http.ResponseWriter, r *http.Request) (map[string]any, error) {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody))
	dec.UseNumber()
	var attrs map[string]any
	if err := dec.Decode(&attrs); err != nil {
		if errors.Is(err, io.EOF) {
			return map[string]any{}, nil
		}
		return nil, err
	}
	return attrs, nil
}

func (h *Handlers) listClasses(w http.ResponseWriter, r *http.Request) {
	writeCached(w, r, domain.Classes())
}

func (h *Handlers) stats(w http.ResponseWriter, r *http.Request) {
	writeCached(w, r, h.Objects.Stats(r.Context()))
}

func (h *Handlers) listObjects(w http.ResponseWriter, r *http.Request) {
	objs, err := h.Objects.List(r.Context(), chi.URLParam(r, "class"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeCached(w, r, objs)
}

func (h *Handlers) getObject(w http.ResponseWriter, r *http.Request) {
	obj, err := h.Objects.Get(r.Context(), chi.URLParam(r, "class"), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeCached(w, r, obj)
}

func (h *Handlers) createObject(w http.ResponseWriter, r *http.Request) {
	class := chi.URLParam(r, "class")
	if !domain.IsClass(class) {
		writeProblem(w, http.StatusNotFound, "Unknown class", class)
		return
	}
	attrs, err := readAttrs(w, r)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", "body must be a JSON object")
		return
	}
	obj, err := h.Objects.Create(r.Context(), class, attrs)
	if err != nil {
		writeError(w, r, err)
		return
	}
	_, body := calcETagAndBody(obj)
	w.Header().Set("Location", fmt.Sprintf("/v1/objects/%s/%v", class, obj["id"]))
	writeJSON(w, http.StatusCreated, body)
}

func (h *Handlers) updateObject(w http.ResponseWriter, r *http.Request) {
	class, id := chi.URLParam(r, "class"), chi.URLParam(r, "id")
	if !domain.IsClass(class) {
		writeProblem(w, http.StatusNotFound, "Unknown class", class)
		return
	}
	attrs, err := readAttrs(w, r)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", "body must be a JSON object")
		return
	}
	obj, err := h.Objects.Update(r.Context(), class, id, attrs)
	if err != nil {
		writeError(w, r, err)
		return
	}
	etag, body := calcETagAndBody(obj)
	w.Header().Set("ETag", etag)
	writeJSON(w, http.StatusOK, body)
}

func (h *Handlers) deleteObject(w http.ResponseWriter, r *http.Request) {
	if err := h.Objects.Delete(r.Context(), chi.URLParam(r, "class"), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
