package event

//go:generate go run go.uber.org/mock/mockgen -source=./event.go -destination=./mocks/event_mock.go -package=mocks

import (
	"context"
	"time"

	"innkeep/config"
	"innkeep/infras/kafka"
	"innkeep/infras/otel"
	"innkeep/shared/constant"

	"github.com/rs/zerolog/log"
)

const (
	ReasonHold          = "hold"
	ReasonRelease       = "release"
	ReasonReclaim       = "reclaim"
	ReasonBooked        = "booked"
	ReasonCheckIn       = "check_in"
	ReasonCheckout      = "checkout"
	ReasonPaymentOK     = "payment_confirmed"
	ReasonHousekeeping  = "housekeeping"
	ReasonAdministrator = "administrator"
)

// RoomEvent describes a committed room status change.
type RoomEvent struct {
	RoomID         string    `json:"room_id"`
	Status         string    `json:"status"`
	PreviousStatus string    `json:"previous_status,omitempty"`
	BookingID      string    `json:"booking_id,omitempty"`
	HolderID       string    `json:"holder_id,omitempty"`
	Reason         string    `json:"reason"`
	At             time.Time `json:"at"`
}

// Publisher delivers room events at most once. Delivery failures are logged
// and never surface to the caller, whose change is already committed.
type Publisher interface {
	Publish(ctx context.Context, events ...RoomEvent)
}

type kafkaPublisher struct {
	client kafka.Client
	topic  string
	otel   otel.Otel
}

func NewPublisher(client kafka.Client, cfg *config.Config, otel otel.Otel) Publisher {
	return &kafkaPublisher{
		client: client,
		topic:  cfg.Kafka.Topics.RoomEvents,
		otel:   otel,
	}
}

func (p *kafkaPublisher) Publish(ctx context.Context, events ...RoomEvent) {
	if len(events) == 0 || !p.client.Enabled() {
		return
	}

	ctx, scope := p.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".Publish")
	defer scope.End()

	messages := make([]kafka.Message, 0, len(events))
	for _, evt := range events {
		messages = append(messages, kafka.Message{Key: evt.RoomID, Value: evt})
	}

	if err := p.client.SendMessages(context.WithoutCancel(ctx), p.topic, messages...); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int("events", len(events)).Msg("failed to publish room events")
	}
}
