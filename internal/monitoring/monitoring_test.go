package monitoring

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// observedSeries returns "method route status" for every recorded request series.
func observedSeries(t *testing.T) []string {
	t.Helper()

	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)

	var series []string
	for _, mf := range families {
		if mf.GetName() != "warbler_http_request_duration_seconds" {
			continue
		}
		for _, m := range mf.GetMetric() {
			labels := map[string]string{}
			for _, lp := range m.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			series = append(series, labels["method"]+" "+labels["route"]+" "+labels["status"])
		}
	}
	return series
}

func TestInstrumentHandler(t *testing.T) {
	r := chi.NewRouter()
	r.Use(InstrumentHandler)
	r.Get("/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Get("/ok", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "route pattern instead of path", path: "/users/42", want: "GET /users/{id} 404"},
		{name: "implicit 200", path: "/ok", want: "GET /ok 200"},
		{name: "no matching route", path: "/nowhere", want: "GET unmatched 404"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Contains(t, observedSeries(t), tt.want)
		})
	}

	assert.NotContains(t, observedSeries(t), "GET /users/42 404")
}

func TestCounters(t *testing.T) {
	before := testutil.ToFloat64(Logins.WithLabelValues(LoginFailure))
	Logins.WithLabelValues(LoginFailure).Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(Logins.WithLabelValues(LoginFailure)))

	signups := testutil.ToFloat64(Signups)
	Signups.Inc()
	assert.Equal(t, signups+1, testutil.ToFloat64(Signups))
}
