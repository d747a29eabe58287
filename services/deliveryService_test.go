package services

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Kariqs/chapaquente-api/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newRoutingServer(t *testing.T, status int, body string, gotPath *string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if gotPath != nil {
			*gotPath = r.URL.Path + "?" + r.URL.RawQuery
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(server.Close)
	return server
}

func deliveryConfig(url string) config.DeliveryConfig {
	return config.DeliveryConfig{
		RoutingURL:    url,
		StoreLat:      -25.6478987,
		StoreLng:      -49.186565,
		RatePerKm:     2,
		MinFee:        5,
		MaxDistanceKm: 15,
		Timeout:       2 * time.Second,
	}
}

func routeBody(meters float64) string {
	return fmt.Sprintf(`{"code":"Ok","routes":[{"distance":%f,"duration":100}]}`, meters)
}

func TestDeliveryService_Quote(t *testing.T) {
	tests := []struct {
		name       string
		meters     float64
		distanceKm float64
		fee        float64
		outOfRange bool
	}{
		{"minimum fee applies to short trips", 1200, 1.2, 5.00, false},
		{"per-km rate above the minimum", 3456, 3.5, 6.91, false},
		{"exactly at the limit", 15000, 15.0, 30.00, false},
		{"beyond the limit", 16040, 16.0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newRoutingServer(t, http.StatusOK, routeBody(tt.meters), nil)
			svc := NewDeliveryService(deliveryConfig(server.URL), zap.NewNop())

			quote, err := svc.Quote(context.Background(), -25.44, -49.27)
			require.NoError(t, err)
			assert.Equal(t, tt.distanceKm, quote.DistanceKm)
			assert.Equal(t, tt.fee, quote.Fee)
			assert.Equal(t, tt.outOfRange, quote.OutOfRange)
			assert.False(t, quote.Fallback)
		})
	}
}

func TestDeliveryService_QueryShape(t *testing.T) {
	var got string
	server := newRoutingServer(t, http.StatusOK, routeBody(1000), &got)
	svc := NewDeliveryService(deliveryConfig(server.URL), zap.NewNop())

	_, err := svc.Quote(context.Background(), -25.5, -49.3)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(got, "/route/v1/driving/-49.186565,-25.6478987;-49.3,-25.5"), got)
	assert.Contains(t, got, "overview=false")
}

func TestDeliveryService_FallsBackToMinimumFee(t *testing.T) {
	for name, server := range map[string]*httptest.Server{
		"server error": newRoutingServer(t, http.StatusInternalServerError, `{"code":"Error"}`, nil),
		"no route":     newRoutingServer(t, http.StatusOK, `{"code":"NoRoute","routes":[]}`, nil),
	} {
		t.Run(name, func(t *testing.T) {
			svc := NewDeliveryService(deliveryConfig(server.URL), zap.NewNop())

			quote, err := svc.Quote(context.Background(), -25.44, -49.27)
			require.NoError(t, err)
			assert.True(t, quote.Fallback)
			assert.Equal(t, 5.0, quote.Fee)
			assert.False(t, quote.OutOfRange)
		})
	}
}

func TestDeliveryService_RejectsBadCoordinates(t *testing.T) {
	svc := NewDeliveryService(deliveryConfig("http://127.0.0.1:0"), zap.NewNop())

	_, err := svc.Quote(context.Background(), 91, 0)
	assert.ErrorIs(t, err, ErrInvalidCoordinates)
	_, err = svc.Quote(context.Background(), 0, -181)
	assert.ErrorIs(t, err, ErrInvalidCoordinates)
}
