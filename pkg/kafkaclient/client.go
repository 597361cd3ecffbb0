package kafkaclient

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
)

// KafkaReader defines the interface for a Kafka message reader.
// This allows for easy mocking in unit tests.
type KafkaReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaConsumer pumps messages from a reader onto a channel until stopped.
type KafkaConsumer struct {
	reader      KafkaReader
	doneChan    chan struct{}
	wg          sync.WaitGroup
	messageChan chan kafka.Message
	stopOnce    sync.Once
}

// NewKafkaConsumer creates a consumer-group reader with manual commits.
func NewKafkaConsumer(topic, groupID, broker string) *KafkaConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        []string{broker},
		Topic:          topic,
		GroupID:        groupID,
		CommitInterval: 0,
		MinBytes:       1,
		MaxBytes:       10e6,
	})
	return newConsumer(reader)
}

func newConsumer(reader KafkaReader) *KafkaConsumer {
	return &KafkaConsumer{
		reader:      reader,
		doneChan:    make(chan struct{}),
		messageChan: make(chan kafka.Message),
	}
}

func (kc *KafkaConsumer) Messages() <-chan kafka.Message {
	return kc.messageChan
}

func (kc *KafkaConsumer) CommitOffset(ctx context.Context, msg kafka.Message) error {
	log.Printf("Committing offset for topic=%s, partition=%d, offset=%d", msg.Topic, msg.Partition, msg.Offset)
	return kc.reader.CommitMessages(ctx, msg)
}

// StartConsuming begins the message loop in a separate goroutine. The
// Messages channel is closed when the loop exits.
func (kc *KafkaConsumer) StartConsuming(ctx context.Context) {
	kc.wg.Add(1)
	go func() {
		defer kc.wg.Done()
		defer close(kc.messageChan)

		log.Println("Starting Kafka consumer loop...")

		for {
			select {
			case <-ctx.Done():
				log.Println("Context canceled, stopping consumer loop.")
				return
			case <-kc.doneChan:
				log.Println("Shutdown signal received, stopping consumer loop.")
				return
			default:
			}

			msg, err := kc.reader.ReadMessage(ctx)
			if err != nil {
				if errors.Is(err, io.EOF) || ctx.Err() != nil {
					return
				}
				log.Printf("Error reading message: %v", err)
				// back off so a broken broker does not spin the loop
				select {
				case <-time.After(time.Second):
				case <-ctx.Done():
					return
				case <-kc.doneChan:
					return
				}
				continue
			}

			select {
			case kc.messageChan <- msg:
			case <-ctx.Done():
				log.Println("Context canceled, stopping consumer before sending message.")
				return
			case <-kc.doneChan:
				log.Println("Shutdown signal received, stopping consumer before sending message.")
				return
			}
		}
	}()
}

// Stop shuts down the consumer loop and closes the reader. Safe to call
// more than once.
func (kc *KafkaConsumer) Stop() {
	kc.stopOnce.Do(func() {
		log.Println("Attempting to stop Kafka consumer...")
		close(kc.doneChan)
		kc.wg.Wait()
		if err := kc.reader.Close(); err != nil {
			log.Printf("Failed to close Kafka reader: %v", err)
		}
		log.Println("Kafka consumer stopped gracefully.")
	})
}
