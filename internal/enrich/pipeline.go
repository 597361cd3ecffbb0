package enrich

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Pipeline applies its stages to one item in order. The first failing step
// cancels the rest of its stage and no later stage runs.
type Pipeline[T any] struct {
	stages []Stage[T]
}

func NewPipeline[T any](stages ...Stage[T]) *Pipeline[T] {
	return &Pipeline[T]{stages: stages}
}

func (p *Pipeline[T]) Stages() []Stage[T] { return p.stages }

// Run executes every stage against item and returns the first error.
func (p *Pipeline[T]) Run(ctx context.Context, item *T) error {
	for _, stage := range p.stages {
		g, gctx := errgroup.WithContext(ctx)
		for _, step := range stage.steps {
			g.Go(func() error { return step(gctx, item) })
		}
		if err := g.Wait(); err != nil {
			return fmt.Errorf("%s: %w", stage.name, err)
		}
	}
	return nil
}
