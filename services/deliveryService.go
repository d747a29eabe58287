package services

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/Kariqs/chapaquente-api/config"
	"github.com/Kariqs/chapaquente-api/models"
	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type osrmResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance float64 `json:"distance"`
	} `json:"routes"`
}

// DeliveryService prices deliveries by driving distance from the store.
type DeliveryService struct {
	cfg    config.DeliveryConfig
	client *resty.Client
	log    *zap.Logger
}

func NewDeliveryService(cfg config.DeliveryConfig, log *zap.Logger) *DeliveryService {
	client := resty.New().
		SetBaseURL(cfg.RoutingURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json")
	return &DeliveryService{cfg: cfg, client: client, log: log.Named("delivery")}
}

// Quote returns the fee for a destination. Routing failures fall back to the
// minimum fee instead of failing the checkout.
func (s *DeliveryService) Quote(ctx context.Context, lat, lng float64) (*models.DeliveryQuote, error) {
	if math.IsNaN(lat) || math.IsNaN(lng) || lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return nil, ErrInvalidCoordinates
	}

	meters, err := s.routeDistance(ctx, lat, lng)
	if err != nil {
		s.log.Warn("Routing failed, applying minimum delivery fee", zap.Error(err))
		return &models.DeliveryQuote{Fee: s.cfg.MinFee, Fallback: true}, nil
	}

	return s.price(meters), nil
}

func (s *DeliveryService) price(meters float64) *models.DeliveryQuote {
	km := decimal.NewFromFloat(meters).Div(decimal.NewFromInt(1000))
	quote := &models.DeliveryQuote{DistanceKm: km.Round(1).InexactFloat64()}

	if km.GreaterThan(decimal.NewFromFloat(s.cfg.MaxDistanceKm)) {
		quote.OutOfRange = true
		return quote
	}

	fee := decimal.Max(decimal.NewFromFloat(s.cfg.MinFee), km.Mul(decimal.NewFromFloat(s.cfg.RatePerKm)))
	quote.Fee = fee.Round(2).InexactFloat64()
	return quote
}

func (s *DeliveryService) routeDistance(ctx context.Context, lat, lng float64) (float64, error) {
	path := fmt.Sprintf("/route/v1/driving/%s,%s;%s,%s",
		coord(s.cfg.StoreLng), coord(s.cfg.StoreLat), coord(lng), coord(lat))

	var body osrmResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParam("overview", "false").
		SetResult(&body).
		Get(path)
	if err != nil {
		return 0, err
	}
	if resp.StatusCode() != http.StatusOK {
		return 0, fmt.Errorf("routing request failed with status %d: %s", resp.StatusCode(), string(resp.Body()))
	}
	if body.Code != "Ok" || len(body.Routes) == 0 {
		return 0, fmt.Errorf("no route found (code %q)", body.Code)
	}
	return body.Routes[0].Distance, nil
}

func coord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
