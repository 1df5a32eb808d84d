package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordQuery(t *testing.T) {
	m := New()
	m.RecordQuery("GAMING", OutcomeOK, 2*time.Millisecond)
	m.RecordQuery("GAMING", OutcomeOK, time.Millisecond)
	m.RecordQuery("OFFICE", OutcomeInvalid, 0)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.QueriesTotal.WithLabelValues("GAMING", OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.QueriesTotal.WithLabelValues("OFFICE", OutcomeInvalid)))
	assert.Equal(t, 1, testutil.CollectAndCount(m.QueryDuration))
}

func TestRecordCacheAndReload(t *testing.T) {
	m := New()
	m.RecordCache(true)
	m.RecordCache(false)
	m.RecordCache(false)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheHits))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.CacheMisses))

	m.RecordReload(42, nil)
	m.RecordReload(0, errors.New("boom"))
	assert.Equal(t, 42.0, testutil.ToFloat64(m.CatalogProducts))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CatalogReloads.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CatalogReloads.WithLabelValues("failure")))
}

func TestInstancesAreIndependent(t *testing.T) {
	a, b := New(), New()
	a.RecordCache(true)
	assert.Equal(t, 0.0, testutil.ToFloat64(b.CacheHits))
}

func TestHandler(t *testing.T) {
	m := New()
	m.RecordHTTP("GET", "/api/v1/brands", 200, time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), `pakar_http_requests_total{method="GET",route="/api/v1/brands",status="200"} 1`))
}
