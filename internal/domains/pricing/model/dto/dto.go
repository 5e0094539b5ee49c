package dto

import (
	"net/http"
	"time"

	"innkeep/internal/domains/pricing/model"
	"innkeep/shared/constant"
	gDto "innkeep/shared/dto"
	gModel "innkeep/shared/model"
	"innkeep/shared/timezone"
)

const (
	queryRoomType    = "room_type"
	queryBookingType = "booking_type"
	queryCheckIn     = "check_in"
	queryCheckOut    = "check_out"
)

type UpsertRoomTypeRequest struct {
	Name            string           `json:"name"             validate:"required,max=100"`
	DefaultAdults   int              `json:"default_adults"   validate:"gte=0"`
	DefaultChildren int              `json:"default_children" validate:"gte=0"`
	Pricing         model.RateTable  `json:"pricing"`
	PricingWeekend  *model.RateTable `json:"pricing_weekend"  validate:"omitempty"`
	PricingHoliday  *model.RateTable `json:"pricing_holiday"  validate:"omitempty"`
}

func (r *UpsertRoomTypeRequest) ToModel(code, user string) model.RoomType {
	return model.RoomType{
		Code:            code,
		Name:            r.Name,
		DefaultAdults:   r.DefaultAdults,
		DefaultChildren: r.DefaultChildren,
		Pricing:         r.Pricing,
		PricingWeekend:  r.PricingWeekend,
		PricingHoliday:  r.PricingHoliday,
		Metadata:        gModel.NewMetadata(user, timezone.Now()),
	}
}

// ToFields lists the columns an upsert rewrites on an existing room type.
func (r *UpsertRoomTypeRequest) ToFields(user string) map[string]any {
	fields := map[string]any{
		model.FieldName:          r.Name,
		"default_adults":         r.DefaultAdults,
		"default_children":       r.DefaultChildren,
		"pricing":                r.Pricing,
		"pricing_weekend":        gModel.Unset,
		"pricing_holiday":        gModel.Unset,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if r.PricingWeekend != nil {
		fields["pricing_weekend"] = *r.PricingWeekend
	}

	if r.PricingHoliday != nil {
		fields["pricing_holiday"] = *r.PricingHoliday
	}

	return fields
}

type RoomTypeResponse struct {
	Code            string           `json:"code"`
	Name            string           `json:"name"`
	DefaultAdults   int              `json:"default_adults"`
	DefaultChildren int              `json:"default_children"`
	Pricing         model.RateTable  `json:"pricing"`
	PricingWeekend  *model.RateTable `json:"pricing_weekend,omitempty"`
	PricingHoliday  *model.RateTable `json:"pricing_holiday,omitempty"`
	gDto.Metadata
}

func (r *RoomTypeResponse) FromModel(mod model.RoomType) {
	r.Code = mod.Code
	r.Name = mod.Name
	r.DefaultAdults = mod.DefaultAdults
	r.DefaultChildren = mod.DefaultChildren
	r.Pricing = mod.Pricing
	r.PricingWeekend = mod.PricingWeekend
	r.PricingHoliday = mod.PricingHoliday
	r.Metadata.FromModel(mod.Metadata)
}

type GetRoomTypesResponse struct {
	RoomTypes []RoomTypeResponse `json:"room_types"`
}

func (r *GetRoomTypesResponse) FromModels(models []model.RoomType) {
	r.RoomTypes = make([]RoomTypeResponse, len(models))
	for i, mod := range models {
		r.RoomTypes[i].FromModel(mod)
	}
}

type CalendarRequest struct {
	Holidays        []string          `json:"holidays"         validate:"dive,datetime=2006-01-02"`
	HolidayNotes    map[string]string `json:"holiday_notes"    validate:"dive,keys,datetime=2006-01-02,endkeys,max=100"`
	WeekendWeekdays []time.Weekday    `json:"weekend_weekdays" validate:"dive,min=0,max=6"`
}

func (r *CalendarRequest) ToDays() model.CalendarDays {
	return model.CalendarDays{
		Holidays:        r.Holidays,
		HolidayNotes:    r.HolidayNotes,
		WeekendWeekdays: r.WeekendWeekdays,
	}
}

type CalendarResponse struct {
	Holidays        []string          `json:"holidays"`
	HolidayNotes    map[string]string `json:"holiday_notes"`
	WeekendWeekdays []time.Weekday    `json:"weekend_weekdays"`
}

func (r *CalendarResponse) FromModel(days model.CalendarDays) {
	r.Holidays = days.Holidays
	r.HolidayNotes = days.HolidayNotes
	r.WeekendWeekdays = days.WeekendWeekdays

	if r.Holidays == nil {
		r.Holidays = []string{}
	}

	if r.HolidayNotes == nil {
		r.HolidayNotes = map[string]string{}
	}

	if r.WeekendWeekdays == nil {
		r.WeekendWeekdays = []time.Weekday{}
	}
}

type QuoteRequest struct {
	RoomTypeCode string            `validate:"required"`
	BookingType  model.BookingType `validate:"required,enum"`
	CheckIn      time.Time         `validate:"required"`
	CheckOut     time.Time         `validate:"required,gtfield=CheckIn"`
}

// FromRequest reads the quote from the query string. Times are RFC 3339.
// Malformed values are left zero and rejected by validation.
func (q *QuoteRequest) FromRequest(r *http.Request) {
	query := r.URL.Query()

	q.RoomTypeCode = query.Get(queryRoomType)
	q.BookingType = model.BookingType(query.Get(queryBookingType))

	if checkIn, err := time.Parse(constant.DateFormat, query.Get(queryCheckIn)); err == nil {
		q.CheckIn = checkIn
	}

	if checkOut, err := time.Parse(constant.DateFormat, query.Get(queryCheckOut)); err == nil {
		q.CheckOut = checkOut
	}
}

type QuoteResponse struct {
	RoomTypeCode string            `json:"room_type_code"`
	BookingType  model.BookingType `json:"booking_type"`
	Tier         model.Tier        `json:"tier"`
	Price        float64           `json:"price"`
	Enabled      bool              `json:"enabled"`
}

type PaymentAccountRequest struct {
	BankName      string `json:"bank_name"      validate:"max=100"`
	BankID        string `json:"bank_id"        validate:"required_with=AccountNumber,max=50"`
	AccountName   string `json:"account_name"   validate:"max=100"`
	AccountNumber string `json:"account_number" validate:"required_with=BankID,max=50"`
	Note          string `json:"note"           validate:"max=200"`
}

func (r *PaymentAccountRequest) ToModel(user string) model.PaymentAccount {
	return model.PaymentAccount{
		ID:            model.PaymentAccountID,
		BankName:      r.BankName,
		BankID:        r.BankID,
		AccountName:   r.AccountName,
		AccountNumber: r.AccountNumber,
		Note:          r.Note,
		Metadata:      gModel.NewMetadata(user, timezone.Now()),
	}
}

func (r *PaymentAccountRequest) ToFields(user string) map[string]any {
	return map[string]any{
		"bank_name":              r.BankName,
		"bank_id":                r.BankID,
		"account_name":           r.AccountName,
		"account_number":         r.AccountNumber,
		"note":                   r.Note,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}
}

type PaymentAccountResponse struct {
	BankName      string `json:"bank_name"`
	BankID        string `json:"bank_id"`
	AccountName   string `json:"account_name"`
	AccountNumber string `json:"account_number"`
	Note          string `json:"note"`
	QRURL         string `json:"qr_url"`
}

// FromModel fills the response and renders the transfer QR for amount.
func (r *PaymentAccountResponse) FromModel(mod model.PaymentAccount, amount float64) {
	r.BankName = mod.BankName
	r.BankID = mod.BankID
	r.AccountName = mod.AccountName
	r.AccountNumber = mod.AccountNumber
	r.Note = mod.Note
	r.QRURL = mod.QRURL(amount)
}
