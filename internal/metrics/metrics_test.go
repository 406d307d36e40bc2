package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_ObserveAnswer(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveAnswer("all", true)
	m.ObserveAnswer("all", true)
	m.ObserveAnswer("all", false)
	m.ObserveAnswer("1", false)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.AnswersTotal.WithLabelValues("all", "correct")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AnswersTotal.WithLabelValues("all", "incorrect")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AnswersTotal.WithLabelValues("1", "incorrect")))
}

func TestMetrics_ObserveDictionaryLoad(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveDictionaryLoad("all", "ok", 120)
	m.ObserveDictionaryLoad("all", "error", 0)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.DictionaryLoadsTotal.WithLabelValues("all", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DictionaryLoadsTotal.WithLabelValues("all", "error")))
	assert.Equal(t, 120.0, testutil.ToFloat64(m.DictionaryEntries.WithLabelValues("all")))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveAnswer("all", true)
		m.ObserveDictionaryLoad("all", "ok", 1)
	})
}

func TestMetrics_Middleware(t *testing.T) {
	m := New(prometheus.NewRegistry())
	handler := m.Middleware(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))

	for _, path := range []string{"/", "/", "/missing"} {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/missing", "404")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.HTTPRequestsInFlight))
}

func TestMetrics_Handler(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.ObserveAnswer("all", true)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `palabra_answers_total{lesson="all",result="correct"} 1`))
}
