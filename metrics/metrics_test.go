package metrics_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/semka95/repositories/backend/metrics"
)

func TestMiddleware(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	mw, err := metrics.Middleware(metrics.WithMeterProvider(provider))
	require.NoError(t, err)

	e := echo.New()
	e.Use(mw)
	e.GET("/repositories", func(c echo.Context) error {
		return c.JSON(http.StatusOK, []string{})
	})

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(echo.GET, "/repositories", nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	require.Len(t, rm.ScopeMetrics, 1)

	got := make(map[string]metricdata.Metrics)
	for _, m := range rm.ScopeMetrics[0].Metrics {
		got[m.Name] = m
	}
	require.Contains(t, got, "requests_total")
	assert.Contains(t, got, "request_duration_milliseconds")
	assert.Contains(t, got, "response_size_bytes")
	assert.Contains(t, got, "request_size_bytes")

	sum, ok := got["requests_total"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, sum.DataPoints, 1)
	assert.Equal(t, int64(2), sum.DataPoints[0].Value)

	code, ok := sum.DataPoints[0].Attributes.Value("code")
	require.True(t, ok)
	assert.Equal(t, int64(http.StatusOK), code.AsInt64())
	url, ok := sum.DataPoints[0].Attributes.Value("url")
	require.True(t, ok)
	assert.Equal(t, "/repositories", url.AsString())
}
