// Package enrich provides a small, generic pipeline abstraction that runs
// the steps of a stage in parallel while keeping stages strictly ordered.
package enrich

import (
	"context"
)

// Step fills in part of the item. Steps in the same stage run concurrently
// on the same item, so each must write to its own fields.
//
// Example:
//
//	func addWeather(ctx context.Context, p *Plan) error { p.Weather = ...; return nil }
type Step[T any] func(ctx context.Context, item *T) error

// Stage groups steps that may run in parallel. The pipeline waits for all
// of them before the next stage starts.
type Stage[T any] struct {
	name  string
	steps []Step[T]
}

func NewStage[T any](name string, steps ...Step[T]) Stage[T] {
	return Stage[T]{name: name, steps: steps}
}

func (s Stage[T]) Name() string { return s.name }
