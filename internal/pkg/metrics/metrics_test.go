package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ComplaintCreated("Hygiene", false)
	m.TransitionApplied("New", "Forwarded")
	m.EventDropped("status_changed")
	m.AssignmentsWritten("batch", 3)
}

func TestCounters(t *testing.T) {
	m := New()
	m.ComplaintCreated("Hygiene", false)
	m.ComplaintCreated("Hygiene", true)
	m.TransitionApplied("New", "Forwarded")
	m.AssignmentsWritten("batch", 3)
	m.AssignmentsWritten("batch", 0)
	m.EventDropped("complaint_created")

	if got := testutil.ToFloat64(m.ComplaintsCreated.WithLabelValues("Hygiene")); got != 2 {
		t.Errorf("complaints created = %v", got)
	}
	if got := testutil.ToFloat64(m.UnroutableCreated); got != 1 {
		t.Errorf("unroutable = %v", got)
	}
	if got := testutil.ToFloat64(m.Assignments.WithLabelValues("batch")); got != 3 {
		t.Errorf("assignments = %v", got)
	}
	if got := testutil.ToFloat64(m.EventsDropped.WithLabelValues("complaint_created")); got != 1 {
		t.Errorf("dropped = %v", got)
	}
}

func TestMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New()
	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/metrics", gin.WrapH(m.Handler()))

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ping", nil))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("metrics status %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `messdesk_http_requests_total{method="GET",route="/ping",status="200"} 1`) {
		t.Fatalf("request counter missing from exposition:\n%s", w.Body.String())
	}
}
