package main

import (
	"context"
	"log"
	"os"

	"github.com/spf13/cobra"

	"travelplanner/internal/env"
)

func main() {
	root := &cobra.Command{
		Use:   "planner",
		Short: "Travel planner backend: weather, geocoding and an LLM-written itinerary in one call",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			env.LoadEnv()
		},
		SilenceUsage: true,
	}
	root.AddCommand(newServeCmd(), newWatchCmd())

	if err := root.ExecuteContext(context.Background()); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}
