package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync/atomic"

	"gopkg.in/yaml.v3"

	"machcat/internal/catalog"
	applog "machcat/internal/log"
	"machcat/models"
)

var shard atomic.Pointer[catalog.Shard]

// Configure installs the shard served by the catalog handlers. Passing nil
// makes them answer 503.
func Configure(s *catalog.Shard) {
	shard.Store(s)
}

func currentShard(w http.ResponseWriter, r *http.Request) (*catalog.Shard, bool) {
	s := shard.Load()
	if s == nil {
		applog.Debug(r.Context(), "catalog request without configured shard", "path", r.URL.Path)
		writeJSONError(w, http.StatusServiceUnavailable, "catalog not loaded")
		return nil, false
	}
	return s, true
}

// Representation tags appended to the shard digest, one per response body
// shape, so no two representations share a strong validator.
const (
	variantList     = "list"
	variantJSON     = "json"
	variantYAML     = "yaml"
	variantValidate = "validate"
)

// entityTag returns "" when the digest is unavailable; such responses carry
// no validator.
func entityTag(digest, variant string) string {
	if digest == "" {
		return ""
	}
	return `"` + digest + "-" + variant + `"`
}

// notModified sets the ETag of the given representation and answers 304 when
// the client already holds it.
func notModified(w http.ResponseWriter, r *http.Request, s *catalog.Shard, variant string) bool {
	etag := entityTag(s.Digest(), variant)
	if etag == "" {
		return false
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "no-cache")

	for _, candidate := range strings.Split(r.Header.Get("If-None-Match"), ",") {
		candidate = strings.TrimPrefix(strings.TrimSpace(candidate), "W/")
		if candidate == etag || candidate == "*" {
			w.WriteHeader(http.StatusNotModified)
			return true
		}
	}
	return false
}

type materialListResponse struct {
	Metadata models.ShardMetadata `json:"metadata"`
	IDs      []string             `json:"ids"`
	Digest   string               `json:"digest"`
}

// ListMaterials returns the shard header and every material id in authored
// order.
func ListMaterials(w http.ResponseWriter, r *http.Request) {
	s, ok := currentShard(w, r)
	if !ok || notModified(w, r, s, variantList) {
		return
	}

	applog.Debug(r.Context(), "listing materials", "count", s.Len())
	writeJSON(w, http.StatusOK, materialListResponse{
		Metadata: s.Metadata(),
		IDs:      s.IDs(),
		Digest:   s.Digest(),
	})
}

type notFoundResponse struct {
	Error       string   `json:"error"`
	ID          string   `json:"id"`
	Suggestions []string `json:"suggestions"`
}

// GetMaterial returns one record. ?format=yaml switches the body to YAML.
func GetMaterial(w http.ResponseWriter, r *http.Request) {
	s, ok := currentShard(w, r)
	if !ok {
		return
	}

	var variant string
	switch strings.ToLower(r.URL.Query().Get("format")) {
	case "", "json":
		variant = variantJSON
	case "yaml", "yml":
		variant = variantYAML
	default:
		writeJSONError(w, http.StatusBadRequest, "unsupported format")
		return
	}

	id := r.PathValue("id")
	if !s.Has(id) {
		_, err := s.Get(id)
		writeLookupError(w, r, id, err)
		return
	}
	if notModified(w, r, s, variant) {
		return
	}

	rec, err := s.Get(id)
	if err != nil {
		writeLookupError(w, r, id, err)
		return
	}
	if variant == variantYAML {
		writeYAML(r.Context(), w, http.StatusOK, rec)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func writeLookupError(w http.ResponseWriter, r *http.Request, id string, err error) {
	var nf *catalog.NotFoundError
	if errors.As(err, &nf) {
		applog.Debug(r.Context(), "material not found", "id", id, "suggestions", len(nf.Suggestions))
		suggestions := nf.Suggestions
		if suggestions == nil {
			suggestions = []string{}
		}
		writeJSON(w, http.StatusNotFound, notFoundResponse{
			Error:       "material not found",
			ID:          id,
			Suggestions: suggestions,
		})
		return
	}
	applog.Error(r.Context(), "material lookup failed", "id", id, "error", err)
	writeJSONError(w, http.StatusInternalServerError, "lookup failed")
}

type validateResponse struct {
	Valid  bool                      `json:"valid"`
	Count  int                       `json:"count"`
	Errors []catalog.ValidationError `json:"errors"`
}

// Validate runs every shard check and reports the problems found.
func Validate(w http.ResponseWriter, r *http.Request) {
	s, ok := currentShard(w, r)
	if !ok || notModified(w, r, s, variantValidate) {
		return
	}

	errs := s.Validate()
	if len(errs) > 0 {
		applog.Warn(r.Context(), "served shard has validation errors", "count", len(errs))
	}
	resp := validateResponse{
		Valid:  len(errs) == 0,
		Count:  len(errs),
		Errors: []catalog.ValidationError(errs),
	}
	if resp.Errors == nil {
		resp.Errors = []catalog.ValidationError{}
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		applog.Error(context.Background(), "failed to encode json response", "error", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeYAML(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	out, err := yaml.Marshal(payload)
	if err != nil {
		applog.Error(ctx, "failed to encode yaml response", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "encode failed")
		return
	}
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(status)
	if _, err := w.Write(out); err != nil {
		applog.Error(ctx, "failed to write yaml response", "error", err)
	}
}
