package dto

import (
	"time"

	"innkeep/internal/domains/room/model"
	"innkeep/shared"
	gDto "innkeep/shared/dto"
	gModel "innkeep/shared/model"
	"innkeep/shared/timezone"
)

type CreateRoomRequest struct {
	ID           string `json:"id"             validate:"required,max=20"`
	RoomTypeCode string `json:"room_type_code" validate:"required,max=20"`
	Area         string `json:"area"           validate:"omitempty,max=50"`
	Note         string `json:"note"           validate:"omitempty,max=255"`
}

func (c *CreateRoomRequest) ToModel(user string) model.Room {
	return model.Room{
		ID:           c.ID,
		RoomTypeCode: c.RoomTypeCode,
		Area:         c.Area,
		Status:       model.StatusAvailable,
		Note:         c.Note,
		Metadata:     gModel.NewMetadata(user, timezone.Now()),
	}
}

type UpdateRoomRequest struct {
	RoomTypeCode string `db:"room_type_code" json:"room_type_code" validate:"omitempty,max=20"`
	Area         string `db:"area"           json:"area"           validate:"omitempty,max=50"`
	Note         string `db:"note"           json:"note"           validate:"omitempty,max=255"`
}

type UpdateStatusRequest struct {
	Status model.Status `json:"status" validate:"required,enum"`
}

type HoldRequest struct {
	DurationMinutes int `json:"duration_minutes" validate:"omitempty,min=1,max=60"`
}

type HoldResponse struct {
	RoomID      string `json:"room_id"`
	LockedUntil string `json:"locked_until"`
}

type ReleaseResponse struct {
	RoomID   string `json:"room_id"`
	Released bool   `json:"released"`
}

type RoomResponse struct {
	ID               string       `json:"id"`
	RoomTypeCode     string       `json:"room_type_code"`
	Area             string       `json:"area"`
	Status           model.Status `json:"status"`
	Note             string       `json:"note"`
	CurrentBookingID *string      `json:"current_booking_id,omitempty"`
	LockedUntil      *time.Time   `json:"locked_until,omitempty"`
	LockedBy         *string      `json:"locked_by,omitempty"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(mod model.Room) {
	r.ID = mod.ID
	r.RoomTypeCode = mod.RoomTypeCode
	r.Area = mod.Area
	r.Status = mod.Status
	r.Note = mod.Note
	r.CurrentBookingID = mod.CurrentBookingID
	r.LockedUntil = mod.LockedUntil
	r.LockedBy = mod.LockedBy
	r.Metadata.FromModel(mod.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.TotalPages(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}
