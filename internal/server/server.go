// Package server exposes the statement sorter over HTTP: an upload form,
// the upload endpoint that runs the parse/categorize/render pipeline, and
// download of generated reports.
package server

import (
	"context"
	_ "embed"
	"net/http"
	"time"

	"fjacquet/stmt-sorter/internal/config"
	"fjacquet/stmt-sorter/internal/logging"
	"fjacquet/stmt-sorter/internal/ocr"
	"fjacquet/stmt-sorter/internal/process"
	"fjacquet/stmt-sorter/internal/workbook"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

//go:embed index.html
var indexHTML []byte

// Deps are the collaborators the server needs. OCREngine may be nil, which
// disables the scanned-PDF fallback.
type Deps struct {
	Config    *config.Config
	Logger    logging.Logger
	Processor *process.Processor
	Workbook  *workbook.Writer
	OCREngine ocr.Engine
}

// Server is the HTTP server for the statement sorter.
type Server struct {
	cfg       *config.Config
	logger    logging.Logger
	processor *process.Processor
	workbook  *workbook.Writer
	ocrEngine ocr.Engine
	router    *chi.Mux
	server    *http.Server
}

// New creates a Server with its routes and middleware configured.
func New(deps Deps) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}

	s := &Server{
		cfg:       deps.Config,
		logger:    logger,
		processor: deps.Processor,
		workbook:  deps.Workbook,
		ocrEngine: deps.OCREngine,
		router:    chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger(s.logger))
	s.router.Use(middleware.Recoverer)
	// OCR on a long scanned statement dominates the request budget.
	s.router.Use(middleware.Timeout(5 * time.Minute))
}

func (s *Server) setupRoutes() {
	s.router.Get("/", s.handleIndex)
	s.router.Post("/upload", s.handleUpload)
	s.router.Get("/download/{filename}", s.handleDownload)
	s.router.Get("/health", s.handleHealth)
}

// Router returns the handler, used directly by tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start begins listening for HTTP requests. It blocks until the server
// stops.
func (s *Server) Start() error {
	addr := s.cfg.Addr()
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	s.logger.Info("Starting HTTP server",
		logging.Field{Key: "addr", Value: addr})
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
