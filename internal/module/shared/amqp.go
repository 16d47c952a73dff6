package shared

import (
	"errors"
	"sync"
	"time"

	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
	amqplib "github.com/streadway/amqp"
)

var errAmqpNotConnected = errors.New("amqp channel is not open")

type Amqp struct {
	Conn             *amqplib.Connection
	Channel          *amqplib.Channel
	Exchange         string
	ExchangeType     string
	enabled          bool
	url              string
	logger           zerolog.Logger
	keepliveInterval time.Duration
	retryCount       int
	mu               sync.Mutex
	quit             chan struct{}
}

func NewRabbitMQ(cfg *koanf.Koanf, logger zerolog.Logger) *Amqp {
	return &Amqp{
		Exchange:         cfg.String("amqp.exchange"),
		ExchangeType:     cfg.String("amqp.exchange-type"),
		enabled:          cfg.Bool("amqp.enable"),
		url:              cfg.String("amqp.url"),
		logger:           logger,
		retryCount:       cfg.Int("amqp.retry-count"),
		keepliveInterval: cfg.Duration("amqp.keeplive-interval"),
		quit:             make(chan struct{}),
	}
}

func (a *Amqp) Enabled() bool {
	return a != nil && a.enabled
}

// dial opens connection, channel and exchange; caller holds a.mu
func (a *Amqp) dial() error {
	conn, err := amqplib.Dial(a.url)
	if err != nil {
		return err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return err
	}

	if err := channel.ExchangeDeclare(
		a.Exchange,
		a.ExchangeType,
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		channel.Close()
		conn.Close()
		return err
	}

	a.Conn = conn
	a.Channel = channel
	return nil
}

func (a *Amqp) keeplive() {
	if a.keepliveInterval <= 0 {
		return
	}
	ticker := time.NewTicker(a.keepliveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-a.quit:
			return
		case <-ticker.C:
		}

		a.mu.Lock()
		for i := 1; i <= a.retryCount; i++ {
			if a.Conn != nil && !a.Conn.IsClosed() {
				break
			}
			if err := a.dial(); err != nil {
				a.logger.Warn().Err(err).Msgf("Failed to reconnect to Amqp (%d/%d)", i, a.retryCount)
				continue
			}
			a.logger.Info().Msg("Reconnected to Amqp succesfully!")
		}
		a.mu.Unlock()
	}
}

func (a *Amqp) Connect() error {
	if !a.Enabled() {
		return nil
	}

	a.mu.Lock()
	err := a.dial()
	a.mu.Unlock()
	if err != nil {
		return err
	}

	go a.keeplive()
	return nil
}

// Publish sends a persistent JSON message to the configured exchange
func (a *Amqp) Publish(routingKey string, body []byte) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.Channel == nil || a.Conn == nil || a.Conn.IsClosed() {
		return errAmqpNotConnected
	}

	return a.Channel.Publish(a.Exchange, routingKey, false, false, amqplib.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqplib.Persistent,
		Timestamp:    time.Now(),
		Body:         body,
	})
}

func (a *Amqp) Close() {
	if !a.Enabled() {
		return
	}
	close(a.quit)

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.Channel != nil {
		a.Channel.Close()
	}
	if a.Conn != nil {
		a.Conn.Close()
	}
}
