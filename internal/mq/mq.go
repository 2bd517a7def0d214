// Package mq publishes graded-submission events to a message broker and
// lets workers consume them. Eventing is optional: when no driver is
// configured the service runs without it.
package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/skillmatch-io/apiserver/config"
)

// ChannelSubmissionGraded carries one event per graded submission.
const ChannelSubmissionGraded = "submission.graded"

// SubmissionGradedEvent is the payload published after the judge returns
// a verdict and the submission is persisted.
type SubmissionGradedEvent struct {
	// Kind is "challenge" or "task".
	Kind         string    `json:"kind"`
	SubmissionID int       `json:"submission_id"`
	UserID       int       `json:"user_id"`
	Score        int       `json:"score"`
	Verdict      string    `json:"verdict"`
	SkillAwarded string    `json:"skill_awarded,omitempty"`
	GradedAt     time.Time `json:"graded_at"`
}

// Message represents a broker-agnostic payload delivered to subscribers.
type Message struct {
	ID         string
	Data       []byte
	Attributes map[string]string
}

// Handler processes a message. Return an error to signal a retry/nack.
type Handler func(ctx context.Context, msg Message) error

// Backend defines the broker-agnostic operations used by the app.
type Backend interface {
	Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error)
	Subscribe(ctx context.Context, channel string, handler Handler) error
	Close() error
}

// MQ wraps a backend with a stable API.
type MQ struct {
	backend Backend
}

// New constructs an MQ wrapper for the provided backend.
func New(backend Backend) *MQ {
	return &MQ{backend: backend}
}

// NewFromConfig builds an MQ for the configured driver, or returns
// (nil, nil) when eventing is disabled.
func NewFromConfig(ctx context.Context, cfg config.MQConfig) (*MQ, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case "":
		return nil, nil
	case "rabbitmq":
		backend, err := NewRabbitMQClient(cfg.RabbitMQ)
		if err != nil {
			return nil, err
		}
		return New(backend), nil
	case "pubsub":
		backend, err := NewPubSubClient(ctx, cfg.PubSub)
		if err != nil {
			return nil, err
		}
		return New(backend), nil
	default:
		return nil, fmt.Errorf("unknown mq driver %q", cfg.Driver)
	}
}

// PublishSubmissionGraded serializes and publishes one graded event.
func (m *MQ) PublishSubmissionGraded(ctx context.Context, event SubmissionGradedEvent) (string, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return "", err
	}
	return m.backend.Publish(ctx, ChannelSubmissionGraded, data, map[string]string{
		"kind": event.Kind,
	})
}

// Publish sends a message to the named channel.
func (m *MQ) Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error) {
	return m.backend.Publish(ctx, channel, data, attrs)
}

// Subscribe consumes messages from the named channel.
func (m *MQ) Subscribe(ctx context.Context, channel string, handler Handler) error {
	return m.backend.Subscribe(ctx, channel, handler)
}

// Close closes the underlying backend.
func (m *MQ) Close() error {
	return m.backend.Close()
}
