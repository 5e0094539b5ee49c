package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/v2/bson"

	"innkeep/internal/domains/room/model"
)

func TestRoom_DecodeDocument(t *testing.T) {
	tests := []struct {
		name     string
		document bson.D
		expected model.Status
		wantErr  error
	}{
		{
			name:     "known status",
			document: bson.D{{Key: "_id", Value: "101"}, {Key: "status", Value: "TEMP_LOCKED"}},
			expected: model.StatusTempLocked,
		},
		{
			name:     "unknown status",
			document: bson.D{{Key: "_id", Value: "101"}, {Key: "status", Value: "BOGUS"}},
			wantErr:  model.ErrUnknownStatus,
		},
		{
			name:     "status stored as a number",
			document: bson.D{{Key: "_id", Value: "101"}, {Key: "status", Value: int32(1)}},
			wantErr:  model.ErrUnknownStatus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := bson.Marshal(tt.document)
			assert.NoError(t, err)

			var room model.Room

			err = bson.Unmarshal(data, &room)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "101", room.ID)
			assert.Equal(t, tt.expected, room.Status)
		})
	}
}

func TestStatus_Scan(t *testing.T) {
	var status model.Status

	assert.NoError(t, status.Scan("DIRTY"))
	assert.Equal(t, model.StatusDirty, status)
	assert.ErrorIs(t, status.Scan([]byte("BOGUS")), model.ErrUnknownStatus)
}
