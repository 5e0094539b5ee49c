package model

import (
	"errors"
	"fmt"
	"time"

	pricing "innkeep/internal/domains/pricing/model"
	"innkeep/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID                  = "id"
	FieldRoomID              = "room_id"
	FieldCustomerName        = "customer_name"
	FieldCustomerPhone       = "customer_phone"
	FieldCustomerType        = "customer_type"
	FieldStatus              = "status"
	FieldCheckIn             = "check_in"
	FieldCheckInReserved     = "check_in_reserved"
	FieldCheckOutActual      = "check_out_actual"
	FieldTotalAmount         = "total_amount"
	FieldServiceFee          = "service_fee"
	FieldOrderServiceTotal   = "order_service_total"
	FieldPaymentMethod       = "payment_method"
	FieldNote                = "note"
	FieldIsOnline            = "is_online"
	FieldOnlinePaymentStatus = "online_payment_status"
	FieldPaymentProofURL     = "payment_proof_url"
	FieldPaymentProofName    = "payment_proof_name"
	FieldPaymentProofMime    = "payment_proof_mime"

	CustomerTypeOnline = "online"
)

var (
	ErrUnknownStatus        = errors.New("unknown booking status")
	ErrUnknownPaymentType   = errors.New("unknown online payment type")
	ErrUnknownPaymentStatus = errors.New("unknown online payment status")
)

type Status string

const (
	StatusConfirmed Status = "CONFIRMED"
	StatusCheckedIn Status = "CHECKED_IN"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusConfirmed, StatusCheckedIn, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// Active reports whether the booking still owns its room.
func (s Status) Active() bool {
	return s == StatusConfirmed || s == StatusCheckedIn
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
	text, err := scanText(src)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnknownStatus, err)
	}

	return s.UnmarshalText(text)
}

func (s *Status) UnmarshalBSONValue(typ byte, data []byte) error {
	text, err := model.BSONText(typ, data)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnknownStatus, err)
	}

	return s.UnmarshalText(text)
}

// PaymentType is empty on walk-in bookings.
type PaymentType string

const (
	PaymentTypeFull    PaymentType = "full"
	PaymentTypeDeposit PaymentType = "deposit"
)

func (t PaymentType) Valid() bool {
	return t == PaymentTypeFull || t == PaymentTypeDeposit
}

func (t *PaymentType) UnmarshalText(text []byte) error {
	value := PaymentType(text)
	if value != "" && !value.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownPaymentType, text)
	}

	*t = value

	return nil
}

func (t *PaymentType) Scan(src any) error {
	text, err := scanText(src)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnknownPaymentType, err)
	}

	return t.UnmarshalText(text)
}

func (t *PaymentType) UnmarshalBSONValue(typ byte, data []byte) error {
	text, err := model.BSONText(typ, data)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnknownPaymentType, err)
	}

	return t.UnmarshalText(text)
}

// PaymentStatus is empty on walk-in bookings.
type PaymentStatus string

const (
	PaymentStatusPending        PaymentStatus = "pending"
	PaymentStatusWaitingConfirm PaymentStatus = "waiting_confirm"
	PaymentStatusConfirmed      PaymentStatus = "confirmed"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusWaitingConfirm, PaymentStatusConfirmed:
		return true
	default:
		return false
	}
}

func (s *PaymentStatus) UnmarshalText(text []byte) error {
	value := PaymentStatus(text)
	if value != "" && !value.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownPaymentStatus, text)
	}

	*s = value

	return nil
}

func (s *PaymentStatus) Scan(src any) error {
	text, err := scanText(src)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnknownPaymentStatus, err)
	}

	return s.UnmarshalText(text)
}

func (s *PaymentStatus) UnmarshalBSONValue(typ byte, data []byte) error {
	text, err := model.BSONText(typ, data)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnknownPaymentStatus, err)
	}

	return s.UnmarshalText(text)
}

type Booking struct {
	ID                  string              `bson:"_id"                         db:"id"`
	RoomID              string              `bson:"room_id"                     db:"room_id"`
	CustomerName        string              `bson:"customer_name"               db:"customer_name"`
	CustomerPhone       string              `bson:"customer_phone"              db:"customer_phone"`
	CustomerType        string              `bson:"customer_type"               db:"customer_type"`
	BookingType         pricing.BookingType `bson:"booking_type"                db:"booking_type"`
	Status              Status              `bson:"status"                      db:"status"`
	CheckIn             time.Time           `bson:"check_in"                    db:"check_in"`
	CheckInReserved     *time.Time          `bson:"check_in_reserved,omitempty" db:"check_in_reserved"`
	CheckOutExpected    time.Time           `bson:"check_out_expected"          db:"check_out_expected"`
	CheckOutActual      *time.Time          `bson:"check_out_actual,omitempty"  db:"check_out_actual"`
	PriceOriginal       float64             `bson:"price_original"              db:"price_original"`
	Deposit             float64             `bson:"deposit"                     db:"deposit"`
	TotalAmount         float64             `bson:"total_amount"                db:"total_amount"`
	ServiceFee          float64             `bson:"service_fee"                 db:"service_fee"`
	OrderServiceTotal   float64             `bson:"order_service_total"         db:"order_service_total"`
	PaymentMethod       string              `bson:"payment_method"              db:"payment_method"`
	Note                string              `bson:"note"                        db:"note"`
	IsOnline            bool                `bson:"is_online"                   db:"is_online"`
	OnlinePaymentType   PaymentType         `bson:"online_payment_type"         db:"online_payment_type"`
	OnlinePaymentStatus PaymentStatus       `bson:"online_payment_status"       db:"online_payment_status"`
	PaymentProofURL     string              `bson:"payment_proof_url"           db:"payment_proof_url"`
	PaymentProofName    string              `bson:"payment_proof_name"          db:"payment_proof_name"`
	PaymentProofMime    string              `bson:"payment_proof_mime"          db:"payment_proof_mime"`
	HolderHash          string              `bson:"holder_hash"                 db:"holder_hash"           json:"-"`
	model.Metadata      `bson:",inline"`
}

func scanText(src any) ([]byte, error) {
	switch v := src.(type) {
	case string:
		return []byte(v), nil
	case []byte:
		return v, nil
	case nil:
		return nil, nil
	default:
		return nil, fmt.Errorf("unsupported source type %T", src) //nolint:err113
	}
}

// Draft is a booking request before it is priced and written. A nil
// PriceOriginal asks for the price to be computed from the room type.
type Draft struct {
	ID               string
	RoomID           string
	CustomerName     string
	CustomerPhone    string
	CustomerType     string
	BookingType      pricing.BookingType
	CheckIn          time.Time
	CheckOutExpected time.Time
	PriceOriginal    *float64
	Deposit          float64
	PaymentMethod    string
	Note             string
	IsOnline         bool
	PaymentType      PaymentType
	HolderID         string
}
