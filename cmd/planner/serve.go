package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"travelplanner/internal/env"
	"travelplanner/internal/planner"
	"travelplanner/internal/server"
	"travelplanner/internal/service"
	"travelplanner/internal/storage"
	"travelplanner/internal/web"
	"travelplanner/pkg/graceful"
	"travelplanner/pkg/kafkaclient"
	"travelplanner/pkg/llm"
	"travelplanner/pkg/location"
	"travelplanner/pkg/weather"
)

func newServeCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the landing page and POST /generate_plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := env.Load()
			cfg.WarnMissingKeys()
			if addr == "" {
				addr = ":" + cfg.Port
			}
			return serve(cmd.Context(), cfg, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default :$PORT)")
	return cmd
}

func serve(parent context.Context, cfg env.Config, addr string) error {
	ctx, cancel := graceful.Context(parent)
	defer cancel()

	svc := planner.NewService(
		weather.NewClient(cfg.WeatherAPIKey,
			weather.WithBaseURL(cfg.WeatherBaseURL),
			weather.WithUnits(cfg.WeatherUnits),
			weather.WithLang(cfg.WeatherLang),
		),
		location.NewClient(cfg.GeocoderBaseURL, cfg.GeocoderUserAgent),
		planner.NewGenerator(
			llm.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL),
			cfg.OpenAIModel,
			planner.WithSampling(cfg.OpenAITemperature, cfg.OpenAIMaxTokens),
		),
		cfg.ParallelLookups,
	)

	var src web.TemplateSource
	if cfg.PageBucket != "" {
		s3, err := storage.NewS3Service()
		if err != nil {
			return err
		}
		src = storage.ObjectSource{Service: s3, Bucket: cfg.PageBucket, Key: cfg.PageObjectKey}
	}
	page, err := web.NewPage(ctx, src)
	if err != nil {
		return err
	}

	var opts []server.Option
	if cfg.EventsEnabled() {
		producer := kafkaclient.NewKafkaProducer(cfg.KafkaTopic, cfg.KafkaBroker)
		defer func() {
			if err := producer.Close(); err != nil {
				log.Printf("warning: error closing kafka producer: %v", err)
			}
		}()
		opts = append(opts, server.WithEvents(service.NewPlanPublisher(producer)))
		log.Printf("Publishing plan events to topic %s on %s", cfg.KafkaTopic, cfg.KafkaBroker)
	}

	srv := server.NewServer(svc, page, opts...)
	s := &http.Server{
		Addr:              addr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server listening on %s", addr)
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	if err := s.Shutdown(shutdownCtx); err != nil {
		log.Printf("error during server.Shutdown: %v", err)
	}
	srv.Wait()
	log.Println("Shutdown complete")
	return nil
}
