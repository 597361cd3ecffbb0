package service

import (
	"context"

	"github.com/segmentio/kafka-go"
)

// MessageIterator is the consumer contract the Iterator relies on.
// Implementations own the lifecycle of the underlying connection.
type MessageIterator interface {
	// Messages is closed by the implementation when the consumer stops.
	Messages() <-chan kafka.Message

	// CommitOffset acknowledges a processed message.
	CommitOffset(ctx context.Context, msg kafka.Message) error
}

// DecodeFunc turns a raw message into a T.
type DecodeFunc[T any] func(msg kafka.Message) (T, error)

// FetchedObject pairs a decoded value with the message it came from.
type FetchedObject[T any] struct {
	Data      T
	Key       string
	Partition int
	Offset    int64
}
