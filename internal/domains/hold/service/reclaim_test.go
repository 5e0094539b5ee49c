package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"innkeep/internal/domains/hold/service"
	"innkeep/internal/domains/room/model"
)

func ptr[T any](v T) *T {
	return &v
}

func TestReclaimExpired(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		rooms         []model.Room
		wantReclaimed []string
		wantStatus    []model.Status
	}{
		{
			name: "lapsed hold is released",
			rooms: []model.Room{
				{ID: "101", Status: model.StatusTempLocked, LockedUntil: ptr(now.Add(-time.Second)), LockedBy: ptr("h1")},
			},
			wantReclaimed: []string{"101"},
			wantStatus:    []model.Status{model.StatusAvailable},
		},
		{
			name: "hold expiring exactly now is kept",
			rooms: []model.Room{
				{ID: "101", Status: model.StatusTempLocked, LockedUntil: ptr(now), LockedBy: ptr("h1")},
			},
			wantStatus: []model.Status{model.StatusTempLocked},
		},
		{
			name: "hold without expiry is released",
			rooms: []model.Room{
				{ID: "102", Status: model.StatusTempLocked, LockedBy: ptr("h1")},
			},
			wantReclaimed: []string{"102"},
			wantStatus:    []model.Status{model.StatusAvailable},
		},
		{
			name: "other statuses are untouched",
			rooms: []model.Room{
				{ID: "101", Status: model.StatusAvailable},
				{ID: "102", Status: model.StatusOccupied, CurrentBookingID: ptr("bk-1")},
				{ID: "103", Status: model.StatusTempLocked, LockedUntil: ptr(now.Add(time.Minute)), LockedBy: ptr("h2")},
				{ID: "104", Status: model.StatusTempLocked, LockedUntil: ptr(now.Add(-time.Hour)), LockedBy: ptr("h3")},
			},
			wantReclaimed: []string{"104"},
			wantStatus: []model.Status{
				model.StatusAvailable, model.StatusOccupied, model.StatusTempLocked, model.StatusAvailable,
			},
		},
		{
			name: "empty input",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			updated, reclaimed := service.ReclaimExpired(tt.rooms, now)

			assert.Equal(t, tt.wantReclaimed, reclaimed)
			assert.Len(t, updated, len(tt.rooms))

			for i, room := range updated {
				assert.Equal(t, tt.wantStatus[i], room.Status)

				if room.Status == model.StatusAvailable {
					assert.Nil(t, room.LockedUntil)
					assert.Nil(t, room.LockedBy)
				}
			}
		})
	}
}

func TestReclaimExpired_DoesNotMutateInput(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	rooms := []model.Room{
		{ID: "101", Status: model.StatusTempLocked, LockedUntil: ptr(now.Add(-time.Minute)), LockedBy: ptr("h1")},
	}

	updated, _ := service.ReclaimExpired(rooms, now)

	assert.Equal(t, model.StatusAvailable, updated[0].Status)
	assert.Equal(t, model.StatusTempLocked, rooms[0].Status)
	assert.NotNil(t, rooms[0].LockedBy)
}
