package dto

import (
	"time"

	"innkeep/internal/domains/booking/model"
	pricing "innkeep/internal/domains/pricing/model"
	"innkeep/shared"
	gDto "innkeep/shared/dto"
)

const DefaultConfirmedLimit = 20

type CreateBookingRequest struct {
	RoomID           string              `json:"room_id"            validate:"required,max=20"`
	CustomerName     string              `json:"customer_name"      validate:"required,max=100"`
	CustomerPhone    string              `json:"customer_phone"     validate:"required,max=20"`
	CustomerType     string              `json:"customer_type"      validate:"omitempty,max=50"`
	BookingType      pricing.BookingType `json:"booking_type"       validate:"required,enum"`
	CheckIn          time.Time           `json:"check_in"           validate:"required"`
	CheckOutExpected time.Time           `json:"check_out_expected" validate:"required,gtfield=CheckIn"`
	PriceOriginal    *float64            `json:"price_original"     validate:"omitempty,min=0"`
	Deposit          float64             `json:"deposit"            validate:"min=0"`
	PaymentMethod    string              `json:"payment_method"     validate:"omitempty,max=50"`
	Note             string              `json:"note"               validate:"omitempty,max=255"`
	CheckInNow       bool                `json:"check_in_now"`
}

func (c *CreateBookingRequest) ToDraft(holderID string) model.Draft {
	return model.Draft{
		RoomID:           c.RoomID,
		CustomerName:     c.CustomerName,
		CustomerPhone:    c.CustomerPhone,
		CustomerType:     c.CustomerType,
		BookingType:      c.BookingType,
		CheckIn:          c.CheckIn,
		CheckOutExpected: c.CheckOutExpected,
		PriceOriginal:    c.PriceOriginal,
		Deposit:          c.Deposit,
		PaymentMethod:    c.PaymentMethod,
		Note:             c.Note,
		HolderID:         holderID,
	}
}

type GroupBookingRequest struct {
	RoomIDs          []string            `json:"room_ids"           validate:"required,min=1,unique,dive,required,max=20"`
	CustomerName     string              `json:"customer_name"      validate:"required,max=100"`
	CustomerPhone    string              `json:"customer_phone"     validate:"required,max=20"`
	CustomerType     string              `json:"customer_type"      validate:"omitempty,max=50"`
	BookingType      pricing.BookingType `json:"booking_type"       validate:"required,enum"`
	CheckIn          time.Time           `json:"check_in"           validate:"required"`
	CheckOutExpected time.Time           `json:"check_out_expected" validate:"required,gtfield=CheckIn"`
	PaymentMethod    string              `json:"payment_method"     validate:"omitempty,max=50"`
	Note             string              `json:"note"               validate:"omitempty,max=255"`
	CheckInNow       bool                `json:"check_in_now"`
}

// ToDraft builds the shared draft; every room is priced from its own type.
func (g *GroupBookingRequest) ToDraft(holderID string) model.Draft {
	return model.Draft{
		CustomerName:     g.CustomerName,
		CustomerPhone:    g.CustomerPhone,
		CustomerType:     g.CustomerType,
		BookingType:      g.BookingType,
		CheckIn:          g.CheckIn,
		CheckOutExpected: g.CheckOutExpected,
		PaymentMethod:    g.PaymentMethod,
		Note:             g.Note,
		HolderID:         holderID,
	}
}

type OnlineBookingRequest struct {
	RoomID           string              `json:"room_id"            validate:"required,max=20"`
	CustomerName     string              `json:"customer_name"      validate:"required,max=100"`
	CustomerPhone    string              `json:"customer_phone"     validate:"required,max=20"`
	BookingType      pricing.BookingType `json:"booking_type"       validate:"required,enum"`
	CheckIn          time.Time           `json:"check_in"           validate:"required"`
	CheckOutExpected time.Time           `json:"check_out_expected" validate:"required,gtfield=CheckIn"`
	PaymentType      model.PaymentType   `json:"payment_type"       validate:"required,enum"`
	Note             string              `json:"note"               validate:"omitempty,max=255"`
}

func (o *OnlineBookingRequest) ToDraft(holderID string) model.Draft {
	return model.Draft{
		RoomID:           o.RoomID,
		CustomerName:     o.CustomerName,
		CustomerPhone:    o.CustomerPhone,
		CustomerType:     model.CustomerTypeOnline,
		BookingType:      o.BookingType,
		CheckIn:          o.CheckIn,
		CheckOutExpected: o.CheckOutExpected,
		Note:             o.Note,
		IsOnline:         true,
		PaymentType:      o.PaymentType,
		HolderID:         holderID,
	}
}

type CheckoutRequest struct {
	RoomID        string  `json:"room_id"        validate:"required,max=20"`
	FinalAmount   float64 `json:"final_amount"   validate:"min=0"`
	ServiceFee    float64 `json:"service_fee"    validate:"min=0"`
	PaymentMethod string  `json:"payment_method" validate:"required,max=50"`
	Note          string  `json:"note"           validate:"omitempty,max=255"`
}

type PaymentProofRequest struct {
	FileName string `json:"file_name" validate:"required,max=255"`
	File     string `json:"file"      validate:"required,datauri"`
}

type BookingResponse struct {
	ID                  string              `json:"id"`
	RoomID              string              `json:"room_id"`
	CustomerName        string              `json:"customer_name"`
	CustomerPhone       string              `json:"customer_phone"`
	CustomerType        string              `json:"customer_type"`
	BookingType         pricing.BookingType `json:"booking_type"`
	Status              model.Status        `json:"status"`
	CheckIn             time.Time           `json:"check_in"`
	CheckInReserved     *time.Time          `json:"check_in_reserved,omitempty"`
	CheckOutExpected    time.Time           `json:"check_out_expected"`
	CheckOutActual      *time.Time          `json:"check_out_actual,omitempty"`
	PriceOriginal       float64             `json:"price_original"`
	Deposit             float64             `json:"deposit"`
	TotalAmount         float64             `json:"total_amount"`
	ServiceFee          float64             `json:"service_fee"`
	OrderServiceTotal   float64             `json:"order_service_total"`
	PaymentMethod       string              `json:"payment_method"`
	Note                string              `json:"note"`
	IsOnline            bool                `json:"is_online"`
	OnlinePaymentType   model.PaymentType   `json:"online_payment_type,omitempty"`
	OnlinePaymentStatus model.PaymentStatus `json:"online_payment_status,omitempty"`
	PaymentProofURL     string              `json:"payment_proof_url,omitempty"`
	PaymentProofName    string              `json:"payment_proof_name,omitempty"`
	gDto.Metadata
}

func (b *BookingResponse) FromModel(mod model.Booking) {
	b.ID = mod.ID
	b.RoomID = mod.RoomID
	b.CustomerName = mod.CustomerName
	b.CustomerPhone = mod.CustomerPhone
	b.CustomerType = mod.CustomerType
	b.BookingType = mod.BookingType
	b.Status = mod.Status
	b.CheckIn = mod.CheckIn
	b.CheckInReserved = mod.CheckInReserved
	b.CheckOutExpected = mod.CheckOutExpected
	b.CheckOutActual = mod.CheckOutActual
	b.PriceOriginal = mod.PriceOriginal
	b.Deposit = mod.Deposit
	b.TotalAmount = mod.TotalAmount
	b.ServiceFee = mod.ServiceFee
	b.OrderServiceTotal = mod.OrderServiceTotal
	b.PaymentMethod = mod.PaymentMethod
	b.Note = mod.Note
	b.IsOnline = mod.IsOnline
	b.OnlinePaymentType = mod.OnlinePaymentType
	b.OnlinePaymentStatus = mod.OnlinePaymentStatus
	b.PaymentProofURL = mod.PaymentProofURL
	b.PaymentProofName = mod.PaymentProofName
	b.Metadata.FromModel(mod.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.TotalPages(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

type CustomerResponse struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Type  string `json:"type"`
}

// OutcomeResponse is the body of a successful lifecycle call.
type OutcomeResponse struct {
	ID  string   `json:"id,omitempty"`
	IDs []string `json:"ids,omitempty"`
}
