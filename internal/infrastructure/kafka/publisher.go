// Package kafka publica los eventos de cola en Kafka.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/IBM/sarama"

	"github.com/jhoicas/nextcut-api/internal/application/ports"
	"github.com/jhoicas/nextcut-api/pkg/logger"
)

var _ ports.QueueEventPublisher = (*Publisher)(nil)

// Publisher envía cada evento al tópico <prefijo><tipo en minúsculas>, con la clave
// del barbero para mantener el orden por cola dentro de una partición.
type Publisher struct {
	producer    sarama.SyncProducer
	topicPrefix string
	log         *logger.Logger
}

// Tiempos máximos del productor; Publish corre dentro de la petición HTTP.
const (
	netTimeout   = 2 * time.Second
	retryBackoff = 100 * time.Millisecond
)

// NewProducerConfig configuración del productor síncrono.
func NewProducerConfig() *sarama.Config {
	cfg := sarama.NewConfig()
	cfg.Net.DialTimeout = netTimeout
	cfg.Net.ReadTimeout = netTimeout
	cfg.Net.WriteTimeout = netTimeout
	cfg.Metadata.Retry.Max = 1
	cfg.Metadata.Retry.Backoff = retryBackoff
	cfg.Producer.Timeout = netTimeout
	cfg.Producer.RequiredAcks = sarama.WaitForLocal
	cfg.Producer.Retry.Max = 1
	cfg.Producer.Retry.Backoff = retryBackoff
	cfg.Producer.Return.Successes = true
	cfg.Producer.Return.Errors = true
	cfg.Producer.Compression = sarama.CompressionSnappy
	cfg.Producer.MaxMessageBytes = 1000000
	return cfg
}

// NewPublisher conecta con los brokers.
func NewPublisher(brokers []string, topicPrefix string, log *logger.Logger) (*Publisher, error) {
	producer, err := sarama.NewSyncProducer(brokers, NewProducerConfig())
	if err != nil {
		return nil, fmt.Errorf("crear productor kafka: %w", err)
	}
	log.Info().Strs("brokers", brokers).Msg("productor kafka inicializado")
	return NewPublisherWithProducer(producer, topicPrefix, log), nil
}

// NewPublisherWithProducer usa un productor ya construido (tests con sarama/mocks).
func NewPublisherWithProducer(producer sarama.SyncProducer, topicPrefix string, log *logger.Logger) *Publisher {
	if log == nil {
		log = logger.NewNop()
	}
	return &Publisher{producer: producer, topicPrefix: topicPrefix, log: log}
}

// Topic devuelve el tópico del tipo de evento.
func (p *Publisher) Topic(eventType string) string {
	return p.topicPrefix + strings.ToLower(eventType)
}

// Publish serializa el evento a JSON y lo envía de forma síncrona.
func (p *Publisher) Publish(ctx context.Context, ev ports.QueueEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}
	value, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("serializar evento: %w", err)
	}
	topic := p.Topic(ev.Type)
	msg := &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(strconv.FormatInt(ev.BarberID, 10)),
		Value: sarama.ByteEncoder(value),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_type"), Value: []byte(ev.Type)},
			{Key: []byte("timestamp"), Value: []byte(ev.OccurredAt.Format(time.RFC3339))},
		},
	}
	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("enviar mensaje kafka a %s: %w", topic, err)
	}
	p.log.Debug().Str("topic", topic).Int32("partition", partition).Int64("offset", offset).Msg("evento publicado")
	return nil
}

// Close cierra el productor.
func (p *Publisher) Close() error {
	if err := p.producer.Close(); err != nil {
		return fmt.Errorf("cerrar productor kafka: %w", err)
	}
	return nil
}
