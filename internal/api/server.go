package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/kalambet/folio/internal/export"
	"github.com/kalambet/folio/internal/i18n"
	"github.com/kalambet/folio/internal/storage"
)

// ExportStore is the read side of the export log.
type ExportStore interface {
	ListExports(limit, offset int) ([]storage.Export, error)
	GetExport(id string) (storage.Export, error)
	CountExports() (int, error)
}

type Deps struct {
	Generator     *export.Generator
	Exports       ExportStore // optional
	DefaultLocale string
	// AdminToken guards the export history. The /exports routes are not
	// mounted when it is empty.
	AdminToken string
}

// LocaleList is the body of GET /locales and the resume://locales resource.
type LocaleList struct {
	Locales  []string `json:"locales"`
	Default  string   `json:"default"`
	Fallback string   `json:"fallback"`
}

func NewHandler(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Get("/health", handleHealth)
	r.Get("/locales", handleLocales(deps))
	r.Get("/resume.pdf", handleResumePDF(deps))
	r.Get("/resume.json", handleResumeJSON(deps))

	if deps.AdminToken != "" && deps.Exports != nil {
		r.Group(func(r chi.Router) {
			r.Use(BearerAuth(deps.AdminToken))
			r.Get("/exports", handleListExports(deps))
			r.Get("/exports/{id}", handleGetExport(deps))
		})
	}

	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func localeList(deps Deps) LocaleList {
	cat := deps.Generator.Catalog()
	return LocaleList{
		Locales:  cat.Locales(),
		Default:  deps.DefaultLocale,
		Fallback: cat.Fallback(),
	}
}

func handleLocales(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, localeList(deps))
	}
}

// requestLocale picks the locale from ?locale=, then Accept-Language, then
// the configured default.
func requestLocale(r *http.Request, deps Deps) string {
	if l := r.URL.Query().Get("locale"); l != "" {
		return l
	}
	if al := r.Header.Get("Accept-Language"); al != "" {
		return deps.Generator.Catalog().Negotiate(al)
	}
	return deps.DefaultLocale
}

func handleResumePDF(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := deps.Generator.Generate(r.Context(), requestLocale(r, deps))
		if err != nil {
			writeGenerateError(w, err)
			return
		}

		w.Header().Set("Content-Type", res.PDF.MIMEType())
		w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": res.Filename}))
		w.Header().Set("Content-Language", res.Locale)
		w.Header().Set("Content-Length", strconv.Itoa(res.PDF.Size()))
		w.Header().Set("X-Export-ID", res.ID)
		if _, err := res.PDF.WriteTo(w); err != nil {
			slog.Warn("writing pdf response failed", "export_id", res.ID, "error", err)
		}
	}
}

func handleResumeJSON(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, err := deps.Generator.Collect(r.Context(), requestLocale(r, deps))
		if err != nil {
			writeGenerateError(w, err)
			return
		}
		w.Header().Set("Content-Language", doc.Locale)
		writeJSON(w, doc)
	}
}

func writeGenerateError(w http.ResponseWriter, err error) {
	var genErr *export.GenerationError
	switch {
	case errors.Is(err, export.ErrGenerationInProgress):
		httpError(w, http.StatusConflict, "conflict_error", "%v", err)
	case errors.Is(err, i18n.ErrUnknownLocale):
		httpError(w, http.StatusBadRequest, "invalid_request_error", "%v", err)
	case errors.As(err, &genErr):
		httpError(w, http.StatusInternalServerError, "generation_error", "%s", genErr.Message)
	default:
		httpError(w, http.StatusInternalServerError, "api_error", "%v", err)
	}
}

func handleListExports(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := parseIntParam(r, "limit", 20, 100)
		offset := parseIntParam(r, "offset", 0, 0)

		exports, err := deps.Exports.ListExports(limit, offset)
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to list exports: %v", err)
			return
		}
		if exports == nil {
			exports = []storage.Export{}
		}

		if total, err := deps.Exports.CountExports(); err == nil {
			w.Header().Set("X-Total-Count", strconv.Itoa(total))
		}
		writeJSON(w, exports)
	}
}

func handleGetExport(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		e, err := deps.Exports.GetExport(id)
		if errors.Is(err, storage.ErrNotFound) {
			httpError(w, http.StatusNotFound, "not_found", "export not found")
			return
		}
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to get export: %v", err)
			return
		}
		writeJSON(w, e)
	}
}

func parseIntParam(r *http.Request, key string, defaultVal, maxVal int) int {
	s := r.URL.Query().Get(key)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return defaultVal
	}
	if maxVal > 0 && v > maxVal {
		return maxVal
	}
	return v
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func httpError(w http.ResponseWriter, code int, errType string, format string, args ...any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	msg := fmt.Sprintf(format, args...)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{
			"message": msg,
			"type":    errType,
		},
	})
}
