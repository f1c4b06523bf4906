package api

import (
	"context"
	"errors"
	"fmt"
	"syscall"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/eclipse/paho.mqtt.golang/packets"
	"github.com/rs/zerolog"

	"systemsensors/logger"
)

// RetryDelay is the fixed wait between refused connection attempts.
const RetryDelay = 120 * time.Second

// ErrAuthentication is returned when the broker rejects the credentials.
var ErrAuthentication = errors.New("authentication failed")

// ClientConfig contains the broker connection settings.
type ClientConfig struct {
	Host     string
	Port     int
	ClientID string
	User     string
	Password string
	// OnConnect runs after every successful (re)connect.
	OnConnect func()
	// OnHassOnline runs when Home Assistant announces it came online.
	OnHassOnline func()
}

// NewClient builds a paho client that announces "offline" as its last
// will and subscribes to the Home Assistant status topic on connect.
func NewClient(cfg ClientConfig, availabilityTopic string) mqtt.Client {
	log := logger.WithComponent("mqtt")

	opts := mqtt.NewClientOptions()
	opts.AddBroker(fmt.Sprintf("tcp://%s:%d", cfg.Host, cfg.Port))
	opts.SetClientID(cfg.ClientID)
	if cfg.User != "" {
		opts.SetUsername(cfg.User)
		opts.SetPassword(cfg.Password)
	}
	opts.SetWill(availabilityTopic, PayloadOffline, QoS, true)
	opts.SetAutoReconnect(true)
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		log.Warn().Err(err).Msg("connection to broker lost")
	})
	opts.SetOnConnectHandler(func(c mqtt.Client) {
		log.Info().Str("broker", cfg.Host).Msg("connected to broker")
		token := c.Subscribe(StatusTopic, QoS, statusHandler(cfg.OnHassOnline, log))
		if token.Wait() && token.Error() != nil {
			log.Error().Err(token.Error()).Str("topic", StatusTopic).Msg("failed to subscribe")
		}
		if cfg.OnConnect != nil {
			cfg.OnConnect()
		}
	})
	return mqtt.NewClient(opts)
}

// statusHandler calls onOnline when Home Assistant reports "online".
// paho delivers messages in order on its network goroutine, so the
// callback runs on its own goroutine: it publishes and waits for acks.
func statusHandler(onOnline func(), log zerolog.Logger) mqtt.MessageHandler {
	return func(_ mqtt.Client, msg mqtt.Message) {
		payload := string(msg.Payload())
		log.Info().Str("topic", msg.Topic()).Str("payload", payload).Msg("message received")
		if payload == PayloadOnline && onOnline != nil {
			go onOnline()
		}
	}
}

// Connect connects client, retrying every delay for as long as the
// broker refuses the connection. Authentication failures and other
// errors are returned immediately.
func Connect(ctx context.Context, client mqtt.Client, delay time.Duration) error {
	log := logger.WithComponent("mqtt")
	for {
		token := client.Connect()
		token.Wait()
		err := token.Error()
		switch {
		case err == nil:
			return nil
		case IsAuthError(err):
			return fmt.Errorf("%w: %w", ErrAuthentication, err)
		case !IsConnectionRefused(err):
			return fmt.Errorf("failed to connect to broker: %w", err)
		}
		log.Warn().Err(err).Dur("retry_in", delay).Msg("broker refused connection")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
}

func IsAuthError(err error) bool {
	return errors.Is(err, packets.ErrorRefusedNotAuthorised) ||
		errors.Is(err, packets.ErrorRefusedBadUsernameOrPassword)
}

func IsConnectionRefused(err error) bool {
	return errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, packets.ErrorRefusedServerUnavailable)
}
