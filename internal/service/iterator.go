// Package service contains the plan event plumbing: publishing an event
// after each generated plan and iterating over the event stream.
package service

import (
	"context"
	"encoding/json"
	"log"

	"github.com/segmentio/kafka-go"
)

// Iterator decodes messages from a MessageIterator and yields them on a
// channel, committing each offset once the value has been handed over.
type Iterator[T any] struct {
	msgIterator MessageIterator
	decode      DecodeFunc[T]
}

func NewIterator[T any](iterator MessageIterator, decode DecodeFunc[T]) *Iterator[T] {
	return &Iterator[T]{
		msgIterator: iterator,
		decode:      decode,
	}
}

// JSONDecoder decodes the message value as JSON.
func JSONDecoder[T any]() DecodeFunc[T] {
	return func(msg kafka.Message) (T, error) {
		var out T
		err := json.Unmarshal(msg.Value, &out)
		return out, err
	}
}

// Objects streams decoded values until the underlying Messages channel is
// closed or ctx is done. Undecodable messages are logged, committed and
// skipped so a poison message cannot block the group.
func (it *Iterator[T]) Objects(ctx context.Context) <-chan *FetchedObject[T] {
	out := make(chan *FetchedObject[T])
	go func() {
		defer close(out)

		for msg := range it.msgIterator.Messages() {
			data, err := it.decode(msg)
			if err != nil {
				log.Printf("Error decoding message at partition=%d offset=%d: %v", msg.Partition, msg.Offset, err)
				it.commit(ctx, msg)
				continue
			}

			select {
			case out <- &FetchedObject[T]{Data: data, Key: string(msg.Key), Partition: msg.Partition, Offset: msg.Offset}:
			case <-ctx.Done():
				return
			}
			it.commit(ctx, msg)
		}
	}()
	return out
}

func (it *Iterator[T]) commit(ctx context.Context, msg kafka.Message) {
	if err := it.msgIterator.CommitOffset(ctx, msg); err != nil {
		log.Printf("Failed to commit offset: %v", err)
	}
}
