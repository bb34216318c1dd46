package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
)

// Login results recorded by Logins.
const (
	LoginSuccess = "success"
	LoginFailure = "failure"
)

var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "warbler_http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	Signups = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "warbler_signups_total",
		Help: "Total accounts created",
	})

	Logins = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "warbler_logins_total",
		Help: "Total login attempts by result",
	}, []string{"result"})

	MessagesPosted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "warbler_messages_posted_total",
		Help: "Total messages successfully posted",
	})

	Follows = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "warbler_follows_total",
		Help: "Total follow edges created",
	})

	Likes = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "warbler_likes_total",
		Help: "Total likes recorded",
	})
)

func init() {
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(Signups)
	prometheus.MustRegister(Logins)
	prometheus.MustRegister(MessagesPosted)
	prometheus.MustRegister(Follows)
	prometheus.MustRegister(Likes)
}

// unmatchedRoute labels requests that no route pattern matched.
const unmatchedRoute = "unmatched"

type statusRecordingWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *statusRecordingWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// InstrumentHandler observes request duration labelled by method, chi route
// pattern and status. Must be mounted on a chi router so the pattern is known.
func InstrumentHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &statusRecordingWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		route := unmatchedRoute
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}

		RequestDuration.
			WithLabelValues(r.Method, route, strconv.Itoa(rw.statusCode)).
			Observe(time.Since(start).Seconds())
	})
}
