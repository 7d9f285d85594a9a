package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Dhoini/Customer-microservice/internal/domain"
	"github.com/Dhoini/Customer-microservice/pkg/logger"

	"github.com/segmentio/kafka-go"
)

// Топики событий жизненного цикла клиента
const (
	TopicCustomerCreated = "customer_created"
	TopicCustomerUpdated = "customer_updated"
	TopicCustomerDeleted = "customer_deleted"
)

// Producer определяет интерфейс для публикации событий жизненного цикла клиента.
// Ключ сообщения — id клиента: все события одного клиента попадают
// в одну партицию и сохраняют порядок.
type Producer interface {
	// PublishCustomerEvent отправляет событие в указанный топик
	PublishCustomerEvent(ctx context.Context, topic string, customer domain.Customer) error
	// Close закрывает соединение продюсера
	Close() error
}

// kafkaProducer реализует Producer поверх segmentio/kafka-go
type kafkaProducer struct {
	writer *kafka.Writer
	log    *logger.Logger
}

// NewKafkaProducer создает и настраивает новый продюсер Kafka
func NewKafkaProducer(brokers []string, log *logger.Logger) (Producer, error) {
	if len(brokers) == 0 {
		return nil, errors.New("kafka brokers are not configured")
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		BatchSize:    100,
		BatchTimeout: 10 * time.Millisecond,
		WriteTimeout: 10 * time.Second,
		ReadTimeout:  10 * time.Second,
	}

	log.Infow("Kafka producer initialized", "brokers", brokers)

	return &kafkaProducer{
		writer: writer,
		log:    log,
	}, nil
}

// PublishCustomerEvent преобразует клиента в JSON и отправляет в топик
func (k *kafkaProducer) PublishCustomerEvent(ctx context.Context, topic string, customer domain.Customer) error {
	value, err := json.Marshal(customer)
	if err != nil {
		return fmt.Errorf("kafka: failed to marshal message data: %w", err)
	}

	message := kafka.Message{
		Topic: topic,
		Key:   []byte(customer.ID.String()),
		Value: value,
		Time:  time.Now(),
	}

	writeCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	if err := k.writer.WriteMessages(writeCtx, message); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("kafka: write timeout: %w", err)
		}
		return fmt.Errorf("kafka: failed to write message: %w", err)
	}

	k.log.Debugw("Published customer event", "topic", topic, "customerID", customer.ID)
	return nil
}

// Close закрывает Kafka Writer. Вызывается при graceful shutdown.
func (k *kafkaProducer) Close() error {
	k.log.Infow("Closing Kafka producer writer...")
	return k.writer.Close()
}

// NoOpProducer заглушка, когда публикация событий выключена или брокеры недоступны
type NoOpProducer struct{}

// PublishCustomerEvent ничего не публикует
func (NoOpProducer) PublishCustomerEvent(ctx context.Context, topic string, customer domain.Customer) error {
	return nil
}

// Close ничего не закрывает
func (NoOpProducer) Close() error {
	return nil
}
