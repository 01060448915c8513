// Package http serves the expense tracker UI and its htmx partials.
package http

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"spendlog/internal/cache"
	"spendlog/internal/cloud"
	"spendlog/internal/core"
	applog "spendlog/internal/log"
	"spendlog/internal/store"
	appweb "spendlog/web"
)

type Server struct {
	http.Server
	templates   *template.Template
	store       *store.Store
	hub         *cloud.Hub
	dailyBudget core.Money
	rateLimiter *rateLimiter

	// Rendered partials keyed by route and query. Purged on every
	// expense or filter mutation.
	fragments    *cache.LRUCache[string]
	cacheManager *cache.Manager

	now func() time.Time

	shutdownOnce sync.Once
}

// NewServer configures routes and templates, returning a ready-to-run server.
func NewServer(addr string, st *store.Store, hub *cloud.Hub, dailyBudget core.Money) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		store:        st,
		hub:          hub,
		dailyBudget:  dailyBudget,
		rateLimiter:  newRateLimiter(),
		fragments:    cache.NewLRUCache[string](64, 5*time.Minute),
		cacheManager: cache.NewManager(),
		now:          time.Now,
	}

	s.cacheManager.Register(s.fragments)
	s.cacheManager.StartCleanup(10 * time.Minute)

	// Parse embedded templates at startup.
	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		slog.Warn("Failed parsing templates", "error", err)
	}
	s.templates = t

	// Static assets (served from embedded FS)
	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "public, max-age=3600, immutable")
			static.ServeHTTP(w, r)
		}))
	} else {
		slog.Warn("Failed to mount embedded static FS", "error", err)
	}

	mux.HandleFunc("/", s.withSecurityHeaders(s.handleIndex))
	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)

	// Expense mutations
	mux.HandleFunc("/expenses", s.withSecurityHeaders(s.handleCreateExpense))
	mux.HandleFunc("/expenses/edit", s.withSecurityHeaders(s.handleUpdateExpense))
	mux.HandleFunc("/expenses/delete", s.withSecurityHeaders(s.handleDeleteExpense))

	// Filters
	mux.HandleFunc("/filters", s.withSecurityHeaders(s.handleSetFilters))
	mux.HandleFunc("/filters/clear", s.withSecurityHeaders(s.handleClearFilters))

	// UI partials
	mux.HandleFunc("/ui/expense-list", s.withSecurityHeaders(s.handleExpenseList))
	mux.HandleFunc("/ui/summary", s.withSecurityHeaders(s.handleSummary))
	mux.HandleFunc("/ui/top-categories", s.withSecurityHeaders(s.handleTopCategories))
	mux.HandleFunc("/ui/top-vendors", s.withSecurityHeaders(s.handleTopVendors))
	mux.HandleFunc("/ui/trend", s.withSecurityHeaders(s.handleTrend))
	mux.HandleFunc("/ui/streak", s.withSecurityHeaders(s.handleStreak))

	// Exports
	mux.HandleFunc("/export/csv", s.withSecurityHeaders(s.handleExportCSV))
	mux.HandleFunc("/export/json", s.withSecurityHeaders(s.handleExportJSON))
	mux.HandleFunc("/export/report", s.withSecurityHeaders(s.handleExportReport))

	// Simulated cloud hub
	mux.HandleFunc("/ui/cloud-services", s.withSecurityHeaders(s.handleCloudServices))
	mux.HandleFunc("/ui/export-history", s.withSecurityHeaders(s.handleExportHistory))
	mux.HandleFunc("/ui/scheduled-exports", s.withSecurityHeaders(s.handleScheduledExports))
	mux.HandleFunc("/cloud/services/toggle", s.withSecurityHeaders(s.handleToggleService))
	mux.HandleFunc("/cloud/share-link", s.withSecurityHeaders(s.handleShareLink))
	mux.HandleFunc("/cloud/email", s.withSecurityHeaders(s.handleEmailExport))
	mux.HandleFunc("/cloud/schedules/toggle", s.withSecurityHeaders(s.handleToggleSchedule))

	return s
}

// Shutdown gracefully shuts down the server and its background routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		s.rateLimiter.stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// withSecurityHeaders adds security headers, rate limiting, and request
// logging to responses.
func (s *Server) withSecurityHeaders(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		clientIP := r.Header.Get("X-Forwarded-For")
		if clientIP == "" {
			clientIP = r.Header.Get("X-Real-IP")
		}
		if clientIP == "" {
			clientIP = r.RemoteAddr
		}

		requestID := generateRequestID()
		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		r = r.WithContext(ctx)

		slog.InfoContext(ctx, "Request started",
			applog.FieldRequestID, requestID,
			applog.FieldMethod, r.Method,
			applog.FieldPath, r.URL.Path,
			applog.FieldClientIP, clientIP,
			applog.FieldUserAgent, r.Header.Get("User-Agent"))

		// Rate limit mutations only; reads stay cheap.
		if isMutation(r.Method) && !s.rateLimiter.allow(clientIP) {
			slog.WarnContext(ctx, "Rate limit exceeded",
				applog.FieldClientIP, clientIP,
				applog.FieldMethod, r.Method,
				applog.FieldPath, r.URL.Path)
			w.Header().Set("Retry-After", "60")
			http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("Content-Security-Policy", "default-src 'self'; script-src 'self' https://unpkg.com 'unsafe-eval'; style-src 'self' 'unsafe-inline'; img-src 'self' data:; connect-src 'self'")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		duration := time.Since(start)
		slog.InfoContext(ctx, "Request completed",
			applog.FieldRequestID, requestID,
			applog.FieldMethod, r.Method,
			applog.FieldPath, r.URL.Path,
			applog.FieldStatusCode, rw.statusCode,
			applog.FieldDuration, duration.Milliseconds(),
			applog.FieldClientIP, clientIP)
	}
}

func isMutation(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodDelete:
		return true
	default:
		return false
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

type contextKey string

const requestIDKey contextKey = "request_id"

// generateRequestID creates a unique request ID for tracing.
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// handleReady reports ready once the initial collection load has finished.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.store.State() != store.Ready {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("loading"))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		NotFoundError("Page not found").Write(w)
		return
	}
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", "url", r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	data := struct {
		Today      string
		Categories []core.Category
		Templates  []string
	}{
		Today:      core.DateOf(s.now()).ISO(),
		Categories: core.Categories,
		Templates:  exportTemplateNames(),
	}

	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Index template execution failed", "error", err, "template", "index.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// renderPartial executes a template into the response, with the usual
// guards. Returns the rendered HTML for optional caching.
func (s *Server) renderPartial(w http.ResponseWriter, r *http.Request, name string, data any) {
	html, err := s.renderToString(name, data)
	if err != nil {
		slog.ErrorContext(r.Context(), "Partial template execution failed", "error", err, "template", name)
		InternalServerError("Rendering failed").Write(w)
		return
	}
	NewHTMXResponse().BodyHTML(html).Write(w)
}

func (s *Server) renderToString(name string, data any) (string, error) {
	if s.templates == nil {
		return "", fmt.Errorf("templates not loaded")
	}
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// invalidateFragments drops every cached partial after a mutation.
func (s *Server) invalidateFragments() {
	s.fragments.Purge()
}
