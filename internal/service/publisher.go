package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"travelplanner/internal/keys"
	"travelplanner/internal/models"
)

type JSONPublisher interface {
	PublishJSON(ctx context.Context, key string, value any) error
}

// PlanPublisher announces generated plans.
type PlanPublisher struct {
	producer JSONPublisher
	now      func() time.Time
}

func NewPlanPublisher(producer JSONPublisher) *PlanPublisher {
	return &PlanPublisher{producer: producer, now: time.Now}
}

func (p *PlanPublisher) Publish(ctx context.Context, req models.PlanRequest, resp *models.PlanResponse) error {
	event := models.PlanEvent{
		ID:          uuid.NewString(),
		Destination: req.Destination,
		Duration:    req.Duration.String(),
		Latitude:    resp.LocationInfo.Latitude,
		Longitude:   resp.LocationInfo.Longitude,
		GeneratedAt: p.now().UTC(),
	}
	return p.producer.PublishJSON(ctx, keys.PlanEvent(req.Destination), event)
}
