// Package planner assembles a travel plan response from the weather,
// geocoding and language-model providers.
package planner

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"travelplanner/internal/enrich"
	"travelplanner/internal/models"
)

type WeatherClient interface {
	Forecast(ctx context.Context, city string) (json.RawMessage, error)
}

type Geocoder interface {
	Geocode(ctx context.Context, query string) (*models.Location, error)
}

// planItem accumulates the provider results for one request. Each step
// writes only its own field.
type planItem struct {
	req      models.PlanRequest
	weather  json.RawMessage
	location *models.Location
	plan     string
}

type Service struct {
	weather   WeatherClient
	geocoder  Geocoder
	generator *Generator
	pipeline  *enrich.Pipeline[planItem]
}

// NewService wires the three lookups. With parallel false they run one
// after another (weather, location, plan); with parallel true they share a
// single stage. Either way the first failure fails the whole request.
func NewService(weather WeatherClient, geocoder Geocoder, generator *Generator, parallel bool) *Service {
	s := &Service{weather: weather, geocoder: geocoder, generator: generator}

	if parallel {
		s.pipeline = enrich.NewPipeline(
			enrich.NewStage[planItem]("lookups", s.fetchWeather, s.fetchLocation, s.generatePlan),
		)
	} else {
		s.pipeline = enrich.NewPipeline(
			enrich.NewStage[planItem]("weather", s.fetchWeather),
			enrich.NewStage[planItem]("location", s.fetchLocation),
			enrich.NewStage[planItem]("plan", s.generatePlan),
		)
	}
	return s
}

func (s *Service) fetchWeather(ctx context.Context, item *planItem) error {
	body, err := s.weather.Forecast(ctx, item.req.Destination)
	if err != nil {
		return err
	}
	item.weather = body
	return nil
}

func (s *Service) fetchLocation(ctx context.Context, item *planItem) error {
	loc, err := s.geocoder.Geocode(ctx, item.req.Destination)
	if err != nil {
		return err
	}
	if loc == nil {
		log.Printf("No geocoding match for %q", item.req.Destination)
	}
	item.location = loc
	return nil
}

func (s *Service) generatePlan(ctx context.Context, item *planItem) error {
	text, err := s.generator.Generate(ctx, item.req)
	if err != nil {
		return err
	}
	item.plan = text
	return nil
}

// Plan runs the lookups for req and merges their results. Nothing partial is
// returned on error.
func (s *Service) Plan(ctx context.Context, req models.PlanRequest) (*models.PlanResponse, error) {
	start := time.Now()
	item := &planItem{req: req}
	if err := s.pipeline.Run(ctx, item); err != nil {
		return nil, err
	}
	log.Printf("Generated travel plan for %q in %s", req.Destination, time.Since(start))

	return &models.PlanResponse{
		TravelPlan:   item.plan,
		WeatherInfo:  item.weather,
		LocationInfo: models.NewLocationInfo(item.location),
	}, nil
}
