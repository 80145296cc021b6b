package http

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/headlines"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

// User-facing messages returned in {"error": ...} bodies.
const (
	noArticlesMessage    = "No articles found on this page. The link may not be an article or the website structure is not supported."
	timeoutMessage       = "Request timed out. Please try again later."
	fetchFailedMessage   = "Failed to fetch the webpage. Please ensure the URL is correct and accessible."
	unexpectedMessage    = "An unexpected error occurred. Please try again later."
	rateLimitMessage     = "Rate limit exceeded. Please try again later."
	itemNotFoundMessage  = "Item not found"
	deleteFailedMessage  = "Failed to delete item"
	noDataMessage        = "No data to export"
	invalidFormatMessage = "Invalid format"
	exportFailedMessage  = "Export failed"
)

//go:embed templates/index.html
var indexHTML string

//go:embed static
var staticFS embed.FS

var indexTemplate = template.Must(template.New("index").Parse(indexHTML))

type errorResponse struct {
	Error string `json:"error"`
}

type successResponse struct {
	Success bool `json:"success"`
}

// Server serves the web page and JSON API over the scraped article list.
type Server struct {
	server *http.Server

	Scraper   headlines.Scraper
	Store     headlines.ArticleStore
	Cache     headlines.ResultCache   // optional; cleared on refresh
	Limiter   headlines.ClientLimiter // optional; applied to POST /scrape
	Exporters []headlines.Exporter
	Logger    *slog.Logger

	// AllowedOrigins enables CORS for the listed origins when non-empty.
	AllowedOrigins []string

	// TrustProxy derives the client address from X-Forwarded-For and
	// X-Real-IP. Enable only behind a reverse proxy.
	TrustProxy bool

	// Now returns the current time. Used for export filenames.
	Now func() time.Time
}

// NewServer returns a Server with defaults. Callers set the services before
// calling Handler or Serve.
func NewServer() *Server {
	return &Server{
		server: &http.Server{ReadHeaderTimeout: 10 * time.Second},
		Logger: slog.Default(),
		Now:    time.Now,
	}
}

// Handler builds the routed handler from the server's current fields.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	if s.TrustProxy {
		r.Use(middleware.RealIP)
	}
	r.Use(RequestLogger(s.Logger))
	r.Use(middleware.Recoverer)
	if len(s.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Options{
			AllowedOrigins: s.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}).Handler)
	}

	r.Get("/", s.handleIndex)
	r.Get("/get-data", s.handleGetData)
	r.Group(func(r chi.Router) {
		if s.Limiter != nil {
			r.Use(RateLimit(s.Limiter))
		}
		r.Post("/scrape", s.handleScrape)
	})
	r.Post("/delete/{index}", s.handleDelete)
	r.Post("/refresh", s.handleRefresh)
	r.Get("/export/{format}", s.handleExport)
	r.Handle("/static/*", http.FileServerFS(staticFS))
	return r
}

// Serve accepts connections on ln until Shutdown is called.
func (s *Server) Serve(ln net.Listener) error {
	s.server.Handler = s.Handler()
	if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	articles, err := s.Store.List(r.Context())
	if err != nil {
		s.internalError(w, r, err, unexpectedMessage)
		return
	}

	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, struct{ Articles []*headlines.Article }{articles}); err != nil {
		s.internalError(w, r, err, unexpectedMessage)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// handleGetData returns the stored list. The ETag is a hash of the body so
// clients polling an unchanged list get 304.
func (s *Server) handleGetData(w http.ResponseWriter, r *http.Request) {
	articles, err := s.Store.List(r.Context())
	if err != nil {
		s.internalError(w, r, err, unexpectedMessage)
		return
	}

	body, err := encodeJSON(articles)
	if err != nil {
		s.internalError(w, r, err, unexpectedMessage)
		return
	}
	etag := fmt.Sprintf(`"%016x"`, xxhash.Sum64(body))
	w.Header().Set("ETag", etag)
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(body)
}

func (s *Server) handleScrape(w http.ResponseWriter, r *http.Request) {
	rawURL := strings.TrimSpace(r.FormValue("url"))

	articles, err := s.Scraper.Scrape(r.Context(), rawURL)
	if err != nil {
		s.scrapeError(w, r, rawURL, err)
		return
	}
	writeJSON(w, http.StatusOK, articles)
}

func (s *Server) scrapeError(w http.ResponseWriter, r *http.Request, rawURL string, err error) {
	switch headlines.ErrorCode(err) {
	case headlines.EINVALID:
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: headlines.ErrorMessage(err)})
	case headlines.ENOTFOUND:
		writeJSON(w, http.StatusNotFound, errorResponse{Error: noArticlesMessage})
	case headlines.ETIMEOUT:
		writeJSON(w, http.StatusRequestTimeout, errorResponse{Error: timeoutMessage})
	case headlines.EUNAVAILABLE:
		s.Logger.Warn("scrape failed", "url", rawURL, "err", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: fetchFailedMessage})
	default:
		s.internalError(w, r, err, unexpectedMessage)
	}
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: itemNotFoundMessage})
		return
	}

	if err := s.Store.Delete(r.Context(), index); err != nil {
		if headlines.ErrorCode(err) == headlines.ENOTFOUND {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: itemNotFoundMessage})
			return
		}
		s.internalError(w, r, err, deleteFailedMessage)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if err := s.Store.Clear(r.Context()); err != nil {
		s.internalError(w, r, err, unexpectedMessage)
		return
	}
	if s.Cache != nil {
		s.Cache.Clear()
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	articles, err := s.Store.List(r.Context())
	if err != nil {
		s.internalError(w, r, err, exportFailedMessage)
		return
	}
	if len(articles) == 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: noDataMessage})
		return
	}

	exporter := s.exporter(headlines.ExportFormat(chi.URLParam(r, "format")))
	if exporter == nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: invalidFormatMessage})
		return
	}

	var buf bytes.Buffer
	if err := exporter.Export(&buf, articles); err != nil {
		s.internalError(w, r, err, exportFailedMessage)
		return
	}
	filename := headlines.ExportFilename(exporter.Format(), s.Now())
	w.Header().Set("Content-Type", exporter.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	_, _ = buf.WriteTo(w)
}

func (s *Server) exporter(format headlines.ExportFormat) headlines.Exporter {
	for _, e := range s.Exporters {
		if e.Format() == format {
			return e
		}
	}
	return nil
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	s.Logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: msg})
}

// encodeJSON renders v without HTML escaping. A nil article list encodes
// as [] rather than null.
func encodeJSON(v any) ([]byte, error) {
	if a, ok := v.([]*headlines.Article); ok && a == nil {
		v = []*headlines.Article{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := encodeJSON(v)
	if err != nil {
		http.Error(w, unexpectedMessage, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
