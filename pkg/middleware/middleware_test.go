package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	servertiming "github.com/mitchellh/go-server-timing"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/ai-goat-store/pkg/logger"
)

func TestMetricsRecordsStatus(t *testing.T) {
	handler := Metrics("/test/metrics", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	before := testutil.ToFloat64(requestCounter.WithLabelValues(http.MethodGet, "/test/metrics", "404"))
	handler(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/anything", nil))
	after := testutil.ToFloat64(requestCounter.WithLabelValues(http.MethodGet, "/test/metrics", "404"))

	assert.Equal(t, before+1, after)
}

func TestRegisterMiddlewaresAddsServerTiming(t *testing.T) {
	router := mux.NewRouter()
	RegisterMiddlewares(router, Config{EnableLogging: true, EnableServerTiming: true})
	router.HandleFunc("/timed", func(w http.ResponseWriter, r *http.Request) {
		timing := servertiming.FromContext(r.Context())
		require.NotNil(t, timing)
		timing.NewMetric("llm").Start().Stop()
		w.WriteHeader(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/timed", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get(servertiming.HeaderKey), "llm")
}

func TestLoggingMiddlewareLogsStatus(t *testing.T) {
	var buf bytes.Buffer
	logger.InitWithWriter("test", false, &buf)
	t.Cleanup(func() { logger.Init("test", false) })

	handler := LoggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/brew", nil))

	assert.Contains(t, buf.String(), `"status":418`)
	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.Contains(t, buf.String(), `"path":"/brew"`)
}
