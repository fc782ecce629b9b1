package api

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"github.com/Roelanb/wacheck/internal/numbers"
)

type Logger interface {
	Infow(msg string, keysAndValues ...any)
	Errorw(msg string, keysAndValues ...any)
	Debugw(msg string, keysAndValues ...any)
}

const maxUpload = 10 << 20

// Server is a stand-in for the registration-check backend. It answers the
// same endpoints with deterministic results so the client can be exercised
// without a browser session.
type Server struct {
	log    Logger
	router *mux.Router
	jobs   *Jobs
	delay  time.Duration
	srv    *http.Server
	addr   string
	ln     net.Listener
	mu     sync.Mutex
	start  bool
}

// New builds the server. delay is spent on every number checked.
func New(log Logger, addr string, delay time.Duration) *Server {
	s := &Server{
		log:    log,
		router: mux.NewRouter(),
		jobs:   NewJobs(delay),
		delay:  delay,
		addr:   addr,
	}
	s.router.Use(s.logRequests)
	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	s.route("/api/session-status", s.handleSessionStatus, http.MethodGet)
	s.route("/api/initialize", s.handleInitialize, http.MethodPost)
	s.route("/api/check-single", s.handleCheckSingle, http.MethodPost)
	s.route("/api/check-batch", s.handleCheckBatch, http.MethodPost)
	s.route("/api/status", s.handleStatus, http.MethodGet)
	s.route("/api/upload-file", s.handleUpload, http.MethodPost)
	s.mountUI()
	return s
}

// route registers h for path with and without a trailing slash.
func (s *Server) route(path string, h http.HandlerFunc, methods ...string) {
	s.router.HandleFunc(path, h).Methods(methods...)
	s.router.HandleFunc(path+"/", h).Methods(methods...)
}

func (s *Server) Handler() http.Handler { return s.router }

// Jobs exposes the batch runner, mainly for tests.
func (s *Server) Jobs() *Jobs { return s.jobs }

func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.start {
		return nil
	}
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.ln = ln
	s.srv = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		s.log.Infow("mock backend listening", "addr", ln.Addr().String())
		if err := s.srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.log.Errorw("mock backend error", "error", err)
		}
	}()
	s.start = true
	go func() {
		<-ctx.Done()
		_ = s.Shutdown(context.Background())
	}()
	return nil
}

// Addr is the bound listen address once started.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return s.addr
	}
	return s.ln.Addr().String()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs.Close()
	if s.srv == nil {
		return nil
	}
	err := s.srv.Shutdown(ctx)
	s.srv = nil
	s.start = false
	return err
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debugw("request",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", r.Header.Get("X-Request-ID"),
			"duration", time.Since(start),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusOK, map[string]string{"error": msg})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

func (s *Server) handleSessionStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"initialized": true, "driver_active": true})
}

func (s *Server) handleInitialize(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Session ready"})
}

func (s *Server) handleCheckSingle(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Number string `json:"number"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}
	number := strings.TrimSpace(req.Number)
	if number == "" {
		writeError(w, "No number provided")
		return
	}
	if err := sleep(r.Context(), s.delay); err != nil {
		return
	}
	res := Check(number, time.Now())
	s.log.Infow("checked number", "number", number, "registered", res.Registered, "error", res.Error)
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleCheckBatch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Numbers []string `json:"numbers"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}
	if len(req.Numbers) == 0 {
		writeError(w, "No numbers provided")
		return
	}
	id := s.jobs.Start(req.Numbers)
	s.log.Infow("batch started", "job", id, "total", len(req.Numbers))
	writeJSON(w, http.StatusOK, map[string]any{"message": "Batch checking started", "total": len(req.Numbers)})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.jobs.Snapshot())
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUpload); err != nil {
		writeError(w, "No file uploaded")
		return
	}
	file, hdr, err := r.FormFile("file")
	if err != nil {
		writeError(w, "No file uploaded")
		return
	}
	defer file.Close()
	if hdr.Filename == "" {
		writeError(w, "No file selected")
		return
	}
	im, err := numbers.ImportReader(hdr.Filename, file)
	switch {
	case errors.Is(err, numbers.ErrUnsupportedFormat), errors.Is(err, numbers.ErrNoNumbers):
		writeError(w, err.Error())
		return
	case err != nil:
		writeError(w, "File processing error: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"numbers":     im.Numbers,
		"total_found": im.TotalFound,
	})
}
