package callback

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"walletsegue/internal/domain"
)

// DefaultPath is served when no callback path is configured.
const DefaultPath = "/callback"

// Ingress is the part of the session client the server drives.
type Ingress interface {
	HandleResponseURL(raw string) error
	Outstanding() int
	State() domain.SessionState
}

// Server routes wallet callbacks into an Ingress.
type Server struct {
	ingress  Ingress
	path     string
	origin   string // scheme://host of the configured callback, if any
	gatherer prometheus.Gatherer
	afterFn  func() error
	limiter  *rate.Limiter
	log      zerolog.Logger
	appeared time.Time

	// mu serialises ingress and the after hook so persisted state matches
	// the order responses were handled in.
	mu sync.Mutex
}

// Option configures a Server.
type Option func(*Server)

// WithPath sets the callback route. Empty keeps DefaultPath.
func WithPath(p string) Option {
	return func(s *Server) {
		if p != "" {
			s.path = p
		}
	}
}

// WithCallbackURL serves the route of an http(s) callback URL and rebuilds
// incoming URLs with its scheme and host, which a request arriving over
// plain http or through a TLS-terminating proxy does not carry. Other
// schemes are ignored.
func WithCallbackURL(raw string) Option {
	return func(s *Server) {
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return
		}
		s.origin = u.Scheme + "://" + u.Host
		if u.Path != "" {
			s.path = u.Path
		}
	}
}

// WithGatherer exposes g on /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) { s.gatherer = g }
}

// WithAfter runs fn after every handled callback, e.g. to persist pending
// requests.
func WithAfter(fn func() error) Option {
	return func(s *Server) { s.afterFn = fn }
}

// WithRateLimit caps callbacks at rps with the given burst. Excess requests
// get 429 without reaching the client.
func WithRateLimit(rps float64, burst int) Option {
	return func(s *Server) {
		if rps > 0 && burst > 0 {
			s.limiter = rate.NewLimiter(rate.Limit(rps), burst)
		}
	}
}

// WithLogger sets the access logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Server) { s.log = l }
}

// New returns a Server over in.
func New(in Ingress, opts ...Option) *Server {
	s := &Server{
		ingress:  in,
		path:     DefaultPath,
		log:      zerolog.Nop(),
		appeared: time.Now(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Handler returns the routed, access-logged handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(s.path, s.handleCallback)
	mux.HandleFunc("/health", s.handleHealth)
	if s.gatherer != nil {
		mux.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	return s.accessLog(mux)
}

func (s *Server) handleCallback(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.limiter != nil && !s.limiter.Allow() {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
		return
	}

	s.mu.Lock()
	before := s.ingress.Outstanding()
	err := s.ingress.HandleResponseURL(s.requestURL(r))
	delivered := s.ingress.Outstanding() < before
	var afterErr error
	if s.afterFn != nil {
		afterErr = s.afterFn()
	}
	s.mu.Unlock()

	if afterErr != nil {
		s.log.Error().Err(afterErr).Msg("after-callback hook failed")
	}
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	case delivered:
		// The request's failure callback already has err.
		writeJSON(w, http.StatusOK, map[string]string{"status": "failed", "error": err.Error()})
	default:
		http.Error(w, err.Error(), statusFor(err))
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"session": s.ingress.State().String(),
		"uptime":  time.Since(s.appeared).Truncate(time.Second).String(),
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrUnknownRequest):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrNotSegueURL):
		return http.StatusForbidden
	default:
		return http.StatusBadRequest
	}
}

// requestURL rebuilds the absolute URL the wallet opened.
func (s *Server) requestURL(r *http.Request) string {
	if s.origin != "" {
		return s.origin + r.URL.RequestURI()
	}
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + r.Host + r.URL.RequestURI()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}

func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)
		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("remote", r.RemoteAddr).
			Int("status", rec.status).
			Int("bytes", rec.bytes).
			Dur("duration", time.Since(start)).
			Msg("http")
	})
}
