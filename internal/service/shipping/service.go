package shipping

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/clinicore/clinic-api/internal/model"
	"github.com/clinicore/clinic-api/internal/repository"
	"github.com/clinicore/clinic-api/pkg/apperror"
	"github.com/clinicore/clinic-api/pkg/geocode"
)

// Shipment positions move, so rendered maps stay cached only briefly.
const mapImageCacheTTL = time.Minute

// Service covers the patient-facing delivery surface: the shipping
// address, order summaries, the status timeline and the tracking map.
// maps and cache may be nil; both degrade gracefully.
type Service struct {
	repo   repository.ShippingRepository
	maps   *geocode.Client
	cache  *redis.Client
	logger zerolog.Logger
}

func NewService(repo repository.ShippingRepository, maps *geocode.Client, cache *redis.Client, logger zerolog.Logger) *Service {
	return &Service{repo: repo, maps: maps, cache: cache, logger: logger}
}

func (s *Service) Address(ctx context.Context, patientID uuid.UUID) (*model.ShippingAddress, error) {
	return s.repo.Address(ctx, patientID)
}

func (s *Service) SaveAddress(ctx context.Context, patientID uuid.UUID, req *model.ShippingAddressRequest) error {
	s.fillCoordinates(ctx, req)
	return s.repo.UpsertAddress(ctx, patientID, req)
}

func (s *Service) UpdateAddress(ctx context.Context, patientID uuid.UUID, req *model.ShippingAddressRequest) error {
	s.fillCoordinates(ctx, req)
	updated, err := s.repo.UpdateAddress(ctx, patientID, req)
	if err != nil {
		return err
	}
	if !updated {
		return apperror.NotFound("shipping address")
	}
	return nil
}

// fillCoordinates geocodes the address text when the client did not
// supply coordinates. A failed lookup just leaves them empty.
func (s *Service) fillCoordinates(ctx context.Context, req *model.ShippingAddressRequest) {
	if s.maps == nil || (req.Lat != nil && req.Lon != nil) {
		return
	}
	lat, lon, err := s.maps.Geocode(ctx, req.Address+" "+req.PostalCode)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to geocode shipping address")
		return
	}
	req.Lat = &lat
	req.Lon = &lon
}

// ListOrders filters by the numeric status code: 0 means all, 1..4 map
// to the order statuses, anything else is BadRequest.
func (s *Service) ListOrders(ctx context.Context, patientID uuid.UUID, statusCode int) ([]model.ShippingOrderSummary, error) {
	var filter *model.OrderStatus
	if statusCode != 0 {
		status, ok := model.OrderStatusFromCode(statusCode)
		if !ok {
			return nil, apperror.BadRequest("unknown status filter")
		}
		filter = &status
	}
	return s.repo.ListOrders(ctx, patientID, filter)
}

func (s *Service) Timeline(ctx context.Context, patientID uuid.UUID, orderID int) (*model.ShippingStatusTimeline, error) {
	return s.repo.Timeline(ctx, patientID, orderID)
}

// MapImage returns a PNG of the shipment and destination. Provider
// outages and missing coordinates fall back to the placeholder so the
// tracking screen always renders.
func (s *Service) MapImage(ctx context.Context, patientID uuid.UUID, orderID int) ([]byte, error) {
	points, err := s.repo.MapPoints(ctx, patientID, orderID)
	if err != nil {
		return nil, err
	}

	if s.maps == nil {
		s.logger.Warn().Int("order_id", orderID).Msg("map provider not configured, serving placeholder")
		return geocode.PlaceholderPNG, nil
	}
	if !points.HasRequiredCoordinates() {
		s.logger.Warn().Int("order_id", orderID).Msg("missing coordinates, serving placeholder map")
		return geocode.PlaceholderPNG, nil
	}

	cacheKey := fmt.Sprintf("shipping:map:%d", orderID)
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Bytes(); err == nil {
			return cached, nil
		}
	}

	shipLat, shipLon, _ := points.ShipmentCoordinates()
	addrLat, addrLon, _ := points.AddressCoordinates()
	image, err := s.maps.StaticMap(ctx, shipLat, shipLon, addrLat, addrLon)
	if err != nil {
		s.logger.Warn().Err(err).Int("order_id", orderID).Msg("static map render failed, serving placeholder")
		return geocode.PlaceholderPNG, nil
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, image, mapImageCacheTTL).Err(); err != nil {
			s.logger.Warn().Err(err).Msg("failed to cache map image")
		}
	}
	return image, nil
}
