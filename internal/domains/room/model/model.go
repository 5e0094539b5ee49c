package model

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"innkeep/shared/model"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID               = "id"
	FieldRoomTypeCode     = "room_type_code"
	FieldArea             = "area"
	FieldStatus           = "status"
	FieldNote             = "note"
	FieldCurrentBookingID = "current_booking_id"
	FieldLockedUntil      = "locked_until"
	FieldLockedBy         = "locked_by"
)

var ErrUnknownStatus = errors.New("unknown room status")

type Status string

const (
	StatusAvailable      Status = "AVAILABLE"
	StatusTempLocked     Status = "TEMP_LOCKED"
	StatusPendingPayment Status = "PENDING_PAYMENT"
	StatusReserved       Status = "RESERVED"
	StatusOccupied       Status = "OCCUPIED"
	StatusDirty          Status = "DIRTY"
	StatusMaintenance    Status = "MAINTENANCE"
)

// manualMoves lists the status changes staff may make by hand. Moves out of
// a booked status are further gated on the linked booking being finished.
var manualMoves = map[Status][]Status{ //nolint:gochecknoglobals
	StatusDirty:          {StatusAvailable, StatusMaintenance},
	StatusAvailable:      {StatusMaintenance, StatusDirty},
	StatusMaintenance:    {StatusAvailable, StatusDirty},
	StatusReserved:       {StatusAvailable, StatusDirty},
	StatusPendingPayment: {StatusAvailable, StatusDirty},
	StatusOccupied:       {StatusAvailable, StatusDirty},
}

func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusTempLocked, StatusPendingPayment, StatusReserved,
		StatusOccupied, StatusDirty, StatusMaintenance:
		return true
	default:
		return false
	}
}

func (s *Status) UnmarshalText(text []byte) error {
	value := Status(text)
	if !value.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownStatus, text)
	}

	*s = value

	return nil
}

func (s *Status) Scan(src any) error {
	switch v := src.(type) {
	case string:
		return s.UnmarshalText([]byte(v))
	case []byte:
		return s.UnmarshalText(v)
	default:
		return fmt.Errorf("%w: %T", ErrUnknownStatus, src)
	}
}

func (s *Status) UnmarshalBSONValue(typ byte, data []byte) error {
	text, err := model.BSONText(typ, data)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnknownStatus, err)
	}

	return s.UnmarshalText(text)
}

// Linked reports whether a room in this status carries a booking.
func (s Status) Linked() bool {
	return s == StatusPendingPayment || s == StatusReserved || s == StatusOccupied
}

// Managed reports whether only holds and bookings may move a room into s.
func (s Status) Managed() bool {
	return s == StatusTempLocked || s.Linked()
}

func (s Status) CanMoveTo(target Status) bool {
	return slices.Contains(manualMoves[s], target)
}

type Room struct {
	ID               string     `bson:"_id"                          db:"id"`
	RoomTypeCode     string     `bson:"room_type_code"               db:"room_type_code"`
	Area             string     `bson:"area"                         db:"area"`
	Status           Status     `bson:"status"                       db:"status"`
	Note             string     `bson:"note"                         db:"note"`
	CurrentBookingID *string    `bson:"current_booking_id,omitempty" db:"current_booking_id"`
	LockedUntil      *time.Time `bson:"locked_until,omitempty"       db:"locked_until"`
	LockedBy         *string    `bson:"locked_by,omitempty"          db:"locked_by"`
	model.Metadata   `bson:",inline"`
}

func (r Room) BookingID() string {
	if r.CurrentBookingID == nil {
		return ""
	}

	return *r.CurrentBookingID
}

func (r Room) Holder() string {
	if r.LockedBy == nil {
		return ""
	}

	return *r.LockedBy
}

func (r Room) HeldBy(holderID string) bool {
	return r.Status == StatusTempLocked && holderID != "" && r.Holder() == holderID
}

// LockExpired reports whether a hold has lapsed at now. A hold without an
// expiry is treated as lapsed.
func (r Room) LockExpired(now time.Time) bool {
	return r.Status == StatusTempLocked && (r.LockedUntil == nil || r.LockedUntil.Before(now))
}

// Claimable reports whether holderID may take the room for a new hold or
// booking: it is free, already held by holderID, or its hold has lapsed.
func (r Room) Claimable(holderID string, now time.Time) bool {
	return r.Status == StatusAvailable || r.HeldBy(holderID) || r.LockExpired(now)
}
