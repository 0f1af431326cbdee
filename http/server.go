package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/aliikhatami94/infradocs"
	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
)

// ShutdownTimeout is how long Close waits for in-flight requests.
const ShutdownTimeout = 5 * time.Second

// RequestIDHeader carries the request id on requests and responses.
const RequestIDHeader = "X-Request-ID"

// Server serves the documentation site and its JSON API.
type Server struct {
	ln     net.Listener
	server *http.Server

	// Addr is the bind address. Set before calling Open().
	Addr string

	// Services used by the handlers.
	Catalog          *infradocs.Catalog
	SearchService    infradocs.SearchService
	StructureService infradocs.StructureService
	ContentService   infradocs.ContentService
	Renderer         infradocs.Renderer

	// Logger receives one record per request. Defaults to slog.Default().
	Logger *slog.Logger

	// Metrics serves GET /metrics when set.
	Metrics http.Handler

	// Middleware wraps the router, inside request logging. Optional.
	Middleware func(http.Handler) http.Handler
}

// NewServer returns a new Server over the default catalog.
func NewServer() *Server {
	return &Server{
		Catalog: infradocs.DefaultCatalog(),
	}
}

// Open binds Addr and begins serving in the background.
func (s *Server) Open() (err error) {
	if s.ln, err = net.Listen("tcp", s.Addr); err != nil {
		return err
	}

	s.server = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if err := s.server.Serve(s.ln); err != nil && err != http.ErrServerClosed {
			s.logger().Error("http server error", "err", err)
		}
	}()
	return nil
}

// Close gracefully shuts down the server.
func (s *Server) Close() error {
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// URL returns the base URL of the running server.
func (s *Server) URL() string {
	if s.ln == nil {
		return ""
	}
	return "http://" + s.ln.Addr().String()
}

// Handler returns the root handler with all routes registered.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	if s.Metrics != nil {
		mux.Handle("GET /metrics", s.Metrics)
	}
	mux.HandleFunc("GET /api/search", s.handleSearch)
	mux.HandleFunc("GET /api/structure", s.handleStructures)
	mux.HandleFunc("GET /api/structure/{package}", s.handleStructure)
	mux.HandleFunc("GET /{package}", s.handlePackage)
	mux.HandleFunc("GET /{package}/{slug...}", s.handleDocument)

	var h http.Handler = mux
	if s.Middleware != nil {
		h = s.Middleware(h)
	}
	return s.logRequests(h)
}

func (s *Server) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// statusWriter captures the status code written by a handler.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// logRequests assigns a request id and logs each request on completion.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		begin := time.Now()

		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)

		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		s.logger().Info("http request",
			"id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"duration", time.Since(begin),
		)
	})
}

// --- API handlers ---

type searchResponse struct {
	Results []*infradocs.SearchResult `json:"results"`
}

type structuresResponse struct {
	Structures []*infradocs.DocsStructure `json:"structures"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = fmt.Fprintln(w, "ok")
}

// handleSearch answers GET /api/search?q=. A missing or short query is a
// valid request with no results.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	results, err := s.SearchService.Search(r.Context(), query)
	if err != nil {
		s.apiError(w, r, err)
		return
	}
	if results == nil {
		results = []*infradocs.SearchResult{}
	}
	s.respondJSON(w, r, searchResponse{Results: results})
}

func (s *Server) handleStructures(w http.ResponseWriter, r *http.Request) {
	all, err := s.StructureService.BuildAllStructures(r.Context())
	if err != nil {
		s.apiError(w, r, err)
		return
	}
	if all == nil {
		all = []*infradocs.DocsStructure{}
	}
	s.respondJSON(w, r, structuresResponse{Structures: all})
}

func (s *Server) handleStructure(w http.ResponseWriter, r *http.Request) {
	src, err := s.lookup(r.PathValue("package"))
	if err != nil {
		s.apiError(w, r, err)
		return
	}
	st, err := s.StructureService.BuildStructure(r.Context(), src)
	if err != nil {
		s.apiError(w, r, err)
		return
	}
	s.respondJSON(w, r, st)
}

// lookup resolves a package path segment. Unknown packages are ENOTFOUND
// so that stray paths such as /favicon.ico become 404s.
func (s *Server) lookup(name string) (infradocs.Source, error) {
	p := infradocs.Package(name)
	if !p.Valid() {
		return infradocs.Source{}, infradocs.Errorf(infradocs.ENOTFOUND, "package %q not found", name)
	}
	return s.Catalog.Lookup(p)
}

func (s *Server) respondJSON(w http.ResponseWriter, r *http.Request, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		s.apiError(w, r, err)
		return
	}
	body = append(body, '\n')
	s.respond(w, r, "application/json", body)
}

// respond writes body with an ETag, or 304 when the client already has it.
func (s *Server) respond(w http.ResponseWriter, r *http.Request, contentType string, body []byte) {
	etag := fmt.Sprintf(`"%016x"`, xxhash.Sum64(body))
	w.Header().Set("ETag", etag)
	if match := r.Header.Get("If-None-Match"); match != "" && etagMatches(match, etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", contentType)
	_, _ = w.Write(body)
}

func etagMatches(header, etag string) bool {
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}

func (s *Server) apiError(w http.ResponseWriter, r *http.Request, err error) {
	status := ErrorStatusCode(infradocs.ErrorCode(err))
	s.logError(r, status, err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: infradocs.ErrorMessage(err)})
}

func (s *Server) logError(r *http.Request, status int, err error) {
	if status < http.StatusInternalServerError {
		return
	}
	s.logger().Error("http error",
		"method", r.Method,
		"path", r.URL.Path,
		"err", err,
	)
}

// codes maps application error codes to HTTP status codes.
var codes = map[string]int{
	infradocs.ECONFLICT:    http.StatusConflict,
	infradocs.EINVALID:     http.StatusBadRequest,
	infradocs.ENOTFOUND:    http.StatusNotFound,
	infradocs.EUNAVAILABLE: http.StatusServiceUnavailable,
	infradocs.EINTERNAL:    http.StatusInternalServerError,
}

// ErrorStatusCode returns the HTTP status code for an application error code.
func ErrorStatusCode(code string) int {
	if v, ok := codes[code]; ok {
		return v
	}
	return http.StatusInternalServerError
}
