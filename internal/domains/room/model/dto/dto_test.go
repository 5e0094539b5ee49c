package dto_test

import (
	"testing"
	"time"

	"innkeep/internal/domains/room/model"
	"innkeep/internal/domains/room/model/dto"
	gModel "innkeep/shared/model"
	"innkeep/shared/timezone"

	"github.com/stretchr/testify/assert"
)

func TestCreateRoomRequest_ToModel(t *testing.T) {
	req := dto.CreateRoomRequest{
		ID:           "101",
		RoomTypeCode: "DLX",
		Area:         "north",
		Note:         "sea view",
	}

	room := req.ToModel("manager-1")

	assert.Equal(t, "101", room.ID)
	assert.Equal(t, "DLX", room.RoomTypeCode)
	assert.Equal(t, model.StatusAvailable, room.Status)
	assert.Nil(t, room.CurrentBookingID)
	assert.Nil(t, room.LockedUntil)
	assert.Equal(t, "manager-1", room.CreatedBy)
	assert.False(t, room.CreatedAt.IsZero())
}

func TestRoomResponse_FromModel(t *testing.T) {
	now := timezone.Now()
	until := now.Add(5 * time.Minute)
	holder := "session-1"

	room := model.Room{
		ID:          "101",
		Status:      model.StatusTempLocked,
		LockedUntil: &until,
		LockedBy:    &holder,
		Metadata:    gModel.NewMetadata("system", now),
	}

	var res dto.RoomResponse
	res.FromModel(room)

	assert.Equal(t, "101", res.ID)
	assert.Equal(t, model.StatusTempLocked, res.Status)
	assert.Equal(t, &until, res.LockedUntil)
	assert.Equal(t, &holder, res.LockedBy)
	assert.Nil(t, res.CurrentBookingID)
}

func TestGetRoomsResponse_FromModels(t *testing.T) {
	tests := []struct {
		name      string
		rooms     []model.Room
		total     int
		limit     int
		wantPages int
	}{
		{name: "single page without limit", rooms: []model.Room{{ID: "101"}, {ID: "102"}}, total: 2, limit: 0, wantPages: 1},
		{name: "paged", rooms: []model.Room{{ID: "101"}}, total: 7, limit: 3, wantPages: 3},
		{name: "empty", rooms: []model.Room{}, total: 0, limit: 10, wantPages: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var res dto.GetRoomsResponse
			res.FromModels(tt.rooms, tt.total, tt.limit)

			assert.Len(t, res.Rooms, len(tt.rooms))
			assert.Equal(t, tt.total, res.TotalData)
			assert.Equal(t, tt.wantPages, res.TotalPage)
		})
	}
}
