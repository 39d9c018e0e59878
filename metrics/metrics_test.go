package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"polyglot-blog-be/content"
)

func TestObserveRender(t *testing.T) {
	before := testutil.ToFloat64(RenderTotal.WithLabelValues("es", "true"))
	truncated := testutil.ToFloat64(ContentTruncatedTotal)

	ObserveRender(content.Rendered{Locale: content.Spanish, Fallback: true}, time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(RenderTotal.WithLabelValues("es", "true")))
	assert.Equal(t, truncated, testutil.ToFloat64(ContentTruncatedTotal))

	ObserveRender(content.Rendered{Locale: content.English, Truncated: true}, time.Millisecond)
	assert.Equal(t, truncated+1, testutil.ToFloat64(ContentTruncatedTotal))
}

func TestHandler(t *testing.T) {
	Register(nil)
	Register(nil)
	PreviewTotal.Inc()

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "blog_preview_total")
}
