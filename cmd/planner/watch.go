package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"travelplanner/internal/env"
	"travelplanner/internal/models"
	"travelplanner/internal/service"
	"travelplanner/pkg/graceful"
	"travelplanner/pkg/kafkaclient"
)

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Print plan events as they are published",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := graceful.Context(cmd.Context())
			defer cancel()

			broker := env.MustGetEnv("KAFKA_BROKER")
			topic := env.MustGetEnv("KAFKA_TOPIC")
			groupID := env.Load().KafkaGroupID

			log.Printf("Connecting to Kafka broker: %s on topic: %s with group ID: %s", broker, topic, groupID)
			consumer := kafkaclient.NewKafkaConsumer(topic, groupID, broker)
			consumer.StartConsuming(ctx)
			defer consumer.Stop()

			iterator := service.NewIterator(consumer, service.JSONDecoder[models.PlanEvent]())
			for obj := range iterator.Objects(ctx) {
				ev := obj.Data
				coords := "unknown location"
				if ev.Latitude != nil && ev.Longitude != nil {
					coords = fmt.Sprintf("%.4f,%.4f", *ev.Latitude, *ev.Longitude)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %-24s %4s days  %s  [%s]\n",
					ev.GeneratedAt.Format("2006-01-02 15:04:05"), ev.Destination, ev.Duration, coords, ev.ID)
			}
			return nil
		},
	}
}
