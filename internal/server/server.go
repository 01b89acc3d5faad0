package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/sandeepkv93/taskapi/internal/scheduler"
	"github.com/sandeepkv93/taskapi/internal/storage"
)

const shutdownTimeout = 5 * time.Second

// ServerOptions configures a task server.
type ServerOptions struct {
	Repo    storage.Repository
	Watcher *scheduler.Engine
	Logger  *log.Logger
}

// Server serves the task API.
type Server struct {
	repo    storage.Repository
	watcher *scheduler.Engine
	logger  *log.Logger
}

// NewServer creates a task server. The watcher is optional; without it
// due notifications are disabled.
func NewServer(opts ServerOptions) (*Server, error) {
	if opts.Repo == nil {
		return nil, errors.New("server: repository is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(os.Stderr, "taskapi: ", log.LstdFlags)
	}
	return &Server{
		repo:    opts.Repo,
		watcher: opts.Watcher,
		logger:  logger,
	}, nil
}

// Handler returns the HTTP handler for the task API.
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()
	router.HandleFunc("/tasks", s.handleListTasks).Methods(http.MethodGet)
	router.HandleFunc("/tasks", s.handleCreateTask).Methods(http.MethodPost)
	router.HandleFunc("/tasks/{id}", s.handleGetTask).Methods(http.MethodGet)
	router.HandleFunc("/tasks/{id}", s.handleUpdateTask).Methods(http.MethodPut)
	router.HandleFunc("/tasks/{id}", s.handleDeleteTask).Methods(http.MethodDelete)
	return s.recoverHandler(s.requestLogger(router))
}

// Serve runs the server on the given address until it fails or receives
// an interrupt.
func (s *Server) Serve(addr string) error {
	server := &http.Server{
		Addr:     addr,
		Handler:  s.Handler(),
		ErrorLog: s.logger,
	}

	watchCtx, cancelWatch := context.WithCancel(context.Background())
	defer cancelWatch()
	if s.watcher != nil {
		s.watcher.Start()
		s.scheduleExisting(watchCtx)
		go s.watchDue(watchCtx)
	}

	listenErrs := make(chan error, 1)
	go func() {
		listenErrs <- server.ListenAndServe()
	}()

	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt)
	defer signal.Stop(interrupts)

	select {
	case err := <-listenErrs:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logf("server stopped: %v", err)
			return err
		}
		return nil
	case <-interrupts:
		s.logf("interrupt received, shutting down")
		s.stopWatcher()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		shutdownErr := server.Shutdown(shutdownCtx)
		cancel()
		listenErr := <-listenErrs
		if errors.Is(listenErr, http.ErrServerClosed) {
			listenErr = nil
		}
		if errors.Is(shutdownErr, http.ErrServerClosed) {
			shutdownErr = nil
		}
		if err := errors.Join(shutdownErr, listenErr); err != nil {
			return err
		}
		return nil
	}
}

func (s *Server) stopWatcher() {
	if s.watcher == nil {
		return
	}
	s.watcher.Stop()
	if dropped := s.watcher.Dropped(); dropped > 0 {
		s.logf("%d due notifications dropped", dropped)
	}
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.Must(uuid.NewV7()).String()
		w.Header().Set("X-Request-Id", requestID)
		tracker := &responseTracker{ResponseWriter: w}
		start := time.Now()
		next.ServeHTTP(tracker, r)
		s.logf("%s %s %d %s request_id=%s", r.Method, r.URL.Path, tracker.status(), time.Since(start).Round(time.Millisecond), requestID)
	})
}

func (s *Server) recoverHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writer := &responseTracker{ResponseWriter: w}
		defer func() {
			if recovered := recover(); recovered != nil {
				s.logf("panic handling request %s %s: %v\n%s", r.Method, r.URL.Path, recovered, debug.Stack())
				if writer.wroteHeader {
					return
				}
				writeJSON(writer, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
			}
		}()
		next.ServeHTTP(writer, r)
	})
}

func decodeJSON(r *http.Request, dest any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dest); err != nil {
		return err
	}
	if decoder.More() {
		return fmt.Errorf("unexpected extra JSON data")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	s.logRequestError(r, status, err)
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) logRequestError(r *http.Request, status int, err error) {
	if s == nil || s.logger == nil {
		return
	}
	s.logger.Printf("request %s %s failed (%d): %v", r.Method, r.URL.Path, status, err)
}

func (s *Server) logf(format string, args ...any) {
	if s == nil || s.logger == nil {
		return
	}
	s.logger.Printf(format, args...)
}

type responseTracker struct {
	http.ResponseWriter
	wroteHeader bool
	statusCode  int
}

func (w *responseTracker) WriteHeader(status int) {
	if !w.wroteHeader {
		w.wroteHeader = true
		w.statusCode = status
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *responseTracker) Write(data []byte) (int, error) {
	if !w.wroteHeader {
		w.wroteHeader = true
		w.statusCode = http.StatusOK
	}
	return w.ResponseWriter.Write(data)
}

func (w *responseTracker) status() int {
	if !w.wroteHeader {
		return http.StatusOK
	}
	return w.statusCode
}
