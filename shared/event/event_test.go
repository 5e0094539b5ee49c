package event_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"innkeep/config"
	"innkeep/infras/kafka"
	kafkaMocks "innkeep/infras/kafka/mocks"
	"innkeep/infras/otel/mocks"
	"innkeep/shared/event"

	"go.uber.org/mock/gomock"
)

func TestPublisher_Publish(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := kafkaMocks.NewMockClient(ctrl)

	cfg := &config.Config{}
	cfg.Kafka.Topics.RoomEvents = "room-events"

	publisher := event.NewPublisher(mockClient, cfg, mocks.NewOtel())

	evt := event.RoomEvent{
		RoomID:         "101",
		Status:         "TEMP_LOCKED",
		PreviousStatus: "AVAILABLE",
		HolderID:       "session-1",
		Reason:         event.ReasonHold,
		At:             time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name      string
		events    []event.RoomEvent
		setupMock func()
	}{
		{
			name:      "nothing to publish",
			events:    nil,
			setupMock: func() {},
		},
		{
			name:   "kafka disabled",
			events: []event.RoomEvent{evt},
			setupMock: func() {
				mockClient.EXPECT().Enabled().Return(false)
			},
		},
		{
			name:   "events keyed by room",
			events: []event.RoomEvent{evt},
			setupMock: func() {
				mockClient.EXPECT().Enabled().Return(true)
				mockClient.EXPECT().
					SendMessages(gomock.Any(), "room-events", kafka.Message{Key: "101", Value: evt}).
					Return(nil)
			},
		},
		{
			name:   "send failure is swallowed",
			events: []event.RoomEvent{evt},
			setupMock: func() {
				mockClient.EXPECT().Enabled().Return(true)
				mockClient.EXPECT().
					SendMessages(gomock.Any(), "room-events", gomock.Any()).
					Return(errors.New("broker down"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			publisher.Publish(context.Background(), tt.events...)
		})
	}
}
