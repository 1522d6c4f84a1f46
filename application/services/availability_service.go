package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"travel-assistant/application/ports"
	"travel-assistant/domain/travel"
	apperrors "travel-assistant/pkg/errors"
	"travel-assistant/pkg/utils"
)

// AvailabilityRequest asks what can be booked.
type AvailabilityRequest struct {
	Type   string        `json:"type" validate:"required"`
	Params travel.Record `json:"params" validate:"required,min=1"`
	UserID string        `json:"user_id,omitempty"`
}

// AvailabilityResult wraps the inventory results with request metadata.
type AvailabilityResult struct {
	RequestID    string        `json:"request_id"`
	Timestamp    string        `json:"timestamp"`
	RequestType  string        `json:"request_type"`
	SearchParams travel.Record `json:"search_params"`
	Results      travel.Record `json:"results"`
	Loyalty      travel.Record `json:"loyalty"`
}

// AvailabilityService checks flights, hotels, activities and packages.
type AvailabilityService struct {
	external  ports.AvailabilitySystem
	loyalty   ports.LoyaltySystem
	inventory *Inventory
	logger    *zap.Logger
}

// NewAvailabilityService creates a new availability service. When external
// is nil, results come from the simulated inventory. loyalty may be nil.
func NewAvailabilityService(
	external ports.AvailabilitySystem,
	loyalty ports.LoyaltySystem,
	inventory *Inventory,
	logger *zap.Logger,
) *AvailabilityService {
	return &AvailabilityService{
		external:  external,
		loyalty:   loyalty,
		inventory: inventory,
		logger:    logger,
	}
}

// CheckAvailability runs one availability search
func (s *AvailabilityService) CheckAvailability(ctx context.Context, req AvailabilityRequest) (*AvailabilityResult, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	kind := strings.ToLower(req.Type)
	if !travel.Supported(kind) {
		return nil, apperrors.NewValidationError("Unsupported request type: " + req.Type)
	}

	results := s.check(ctx, kind, req.Params)

	loyalty := travel.Record{}
	if req.UserID != "" && s.loyalty != nil {
		loyalty = s.loyalty.Status(ctx, req.UserID)
		if loyalty == nil {
			loyalty = travel.Record{}
		}
	}

	s.logger.Info("Processed availability request", zap.String("type", req.Type))

	return &AvailabilityResult{
		RequestID:    uuid.NewString(),
		Timestamp:    utils.NowRFC3339(),
		RequestType:  req.Type,
		SearchParams: req.Params,
		Results:      results,
		Loyalty:      loyalty,
	}, nil
}

func (s *AvailabilityService) check(ctx context.Context, kind string, params travel.Record) travel.Record {
	switch kind {
	case travel.TypeFlight:
		return s.checkFlight(ctx, params)
	case travel.TypeHotel:
		return s.checkHotel(ctx, params)
	case travel.TypeActivity:
		return s.checkActivity(ctx, params)
	default:
		return s.checkPackage(ctx, params)
	}
}

func (s *AvailabilityService) checkFlight(ctx context.Context, params travel.Record) travel.Record {
	if !hasAll(params, "origin", "destination", "departure_date") {
		return travel.AvailabilityError("Missing required flight parameters")
	}
	if s.external != nil {
		return s.external.Check(ctx, travel.TypeFlight, params)
	}
	return s.inventory.Flights(params)
}

func (s *AvailabilityService) checkHotel(ctx context.Context, params travel.Record) travel.Record {
	if !hasAll(params, "location", "check_in", "check_out") {
		return travel.AvailabilityError("Missing required hotel parameters")
	}
	if s.external != nil {
		return s.external.Check(ctx, travel.TypeHotel, params)
	}
	return s.inventory.Hotels(params)
}

func (s *AvailabilityService) checkActivity(ctx context.Context, params travel.Record) travel.Record {
	if !hasAll(params, "location", "date") {
		return travel.AvailabilityError("Missing required activity parameters")
	}
	if s.external != nil {
		return s.external.Check(ctx, travel.TypeActivity, params)
	}
	return s.inventory.Activities(params)
}

// checkPackage checks each component present in params. With no activities
// the package counts as available regardless of its flight and hotel.
func (s *AvailabilityService) checkPackage(ctx context.Context, params travel.Record) travel.Record {
	flight := travel.Record{}
	if p := params.Record("flight"); len(p) > 0 {
		flight = s.checkFlight(ctx, p)
	}
	hotel := travel.Record{}
	if p := params.Record("hotel"); len(p) > 0 {
		hotel = s.checkHotel(ctx, p)
	}

	activities := make([]travel.Record, 0)
	for _, p := range params.Records("activities") {
		activities = append(activities, s.checkActivity(ctx, p))
	}

	available := true
	if len(activities) > 0 {
		available = flight.Available() && hotel.Available()
		for _, a := range activities {
			available = available && a.Available()
		}
	}

	return travel.Record{
		"flight":     flight,
		"hotel":      hotel,
		"activities": activities,
		"available":  available,
	}
}

func hasAll(r travel.Record, keys ...string) bool {
	for _, k := range keys {
		if r.String(k) == "" {
			return false
		}
	}
	return true
}
