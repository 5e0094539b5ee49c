package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"time"

	"innkeep/shared/constant"
	"innkeep/shared/model"
)

const (
	RoomTypeTableName  = "room_types"
	RoomTypeEntityName = "room_type"
	CalendarTableName  = "special_days"
	CalendarEntityName = "calendar"

	PaymentAccountTableName  = "payment_accounts"
	PaymentAccountEntityName = "payment account"

	FieldCode = "code"
	FieldName = "name"
	FieldID   = "id"

	// CalendarID is the key of the single calendar document.
	CalendarID = "special_days"

	// PaymentAccountID is the key of the single payment account document.
	PaymentAccountID = "payment"

	vietQRBase          = "https://img.vietqr.io/image/"
	defaultTransferNote = "Thanh toan tien phong"
)

var (
	ErrUnknownBookingType = errors.New("unknown booking type")
	errUnsupportedSource  = errors.New("unsupported source type")
)

type BookingType string

const (
	BookingTypeHourly    BookingType = "HOURLY"
	BookingTypeOvernight BookingType = "OVERNIGHT"
	BookingTypeDaily     BookingType = "DAILY"
)

func (t BookingType) Valid() bool {
	switch t {
	case BookingTypeHourly, BookingTypeOvernight, BookingTypeDaily:
		return true
	default:
		return false
	}
}

func (t *BookingType) UnmarshalText(text []byte) error {
	value := BookingType(text)
	if !value.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownBookingType, text)
	}

	*t = value

	return nil
}

func (t *BookingType) Scan(src any) error {
	switch v := src.(type) {
	case string:
		return t.UnmarshalText([]byte(v))
	case []byte:
		return t.UnmarshalText(v)
	default:
		return fmt.Errorf("%w: %T", ErrUnknownBookingType, src)
	}
}

func (t *BookingType) UnmarshalBSONValue(typ byte, data []byte) error {
	text, err := model.BSONText(typ, data)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnknownBookingType, err)
	}

	return t.UnmarshalText(text)
}

type Tier string

const (
	TierRegular Tier = "regular"
	TierWeekend Tier = "weekend"
	TierHoliday Tier = "holiday"
)

// RateTable is stored as a jsonb column. HourlyBlocks maps a whole number of
// hours to the price of that block.
type RateTable struct {
	HourlyBlocks        map[int]float64 `bson:"hourly_blocks"         json:"hourly_blocks"`
	OvernightPrice      float64         `bson:"overnight_price"       json:"overnight_price"       validate:"gte=0"`
	DailyPrice          float64         `bson:"daily_price"           json:"daily_price"           validate:"gte=0"`
	ExtraAdultSurcharge float64         `bson:"extra_adult_surcharge" json:"extra_adult_surcharge" validate:"gte=0"`
	ExtraChildSurcharge float64         `bson:"extra_child_surcharge" json:"extra_child_surcharge" validate:"gte=0"`
	EnableHourly        bool            `bson:"enable_hourly"         json:"enable_hourly"`
	EnableOvernight     bool            `bson:"enable_overnight"      json:"enable_overnight"`
	EnableDaily         bool            `bson:"enable_daily"          json:"enable_daily"`
}

// Configured reports whether a tier table may override the regular one. A
// table with neither a daily nor an overnight price counts as absent.
func (r *RateTable) Configured() bool {
	return r != nil && (r.DailyPrice > 0 || r.OvernightPrice > 0)
}

func (r RateTable) Enabled(bookingType BookingType) bool {
	switch bookingType {
	case BookingTypeHourly:
		return r.EnableHourly
	case BookingTypeOvernight:
		return r.EnableOvernight
	case BookingTypeDaily:
		return r.EnableDaily
	default:
		return false
	}
}

func (r RateTable) Value() (driver.Value, error) {
	return marshalJSON(r)
}

func (r *RateTable) Scan(src any) error {
	return unmarshalJSON(src, r)
}

type RoomType struct {
	Code            string     `bson:"_id"                       db:"code"`
	Name            string     `bson:"name"                      db:"name"`
	DefaultAdults   int        `bson:"default_adults"            db:"default_adults"`
	DefaultChildren int        `bson:"default_children"          db:"default_children"`
	Pricing         RateTable  `bson:"pricing"                   db:"pricing"`
	PricingWeekend  *RateTable `bson:"pricing_weekend,omitempty" db:"pricing_weekend"`
	PricingHoliday  *RateTable `bson:"pricing_holiday,omitempty" db:"pricing_holiday"`
	model.Metadata  `bson:",inline"`
}

type Calendar struct {
	ID             string       `bson:"_id"  db:"id"`
	Days           CalendarDays `bson:"days" db:"days"`
	model.Metadata `bson:",inline"`
}

// CalendarDays lists holiday dates (YYYY-MM-DD) and the weekdays billed at
// the weekend tier.
type CalendarDays struct {
	Holidays        []string          `bson:"holidays"         json:"holidays"`
	HolidayNotes    map[string]string `bson:"holiday_notes"    json:"holiday_notes"`
	WeekendWeekdays []time.Weekday    `bson:"weekend_weekdays" json:"weekend_weekdays"`
}

func (d CalendarDays) IsHoliday(date time.Time) bool {
	return slices.Contains(d.Holidays, date.Format(constant.DayFormat))
}

func (d CalendarDays) IsWeekend(date time.Time) bool {
	return slices.Contains(d.WeekendWeekdays, date.Weekday())
}

func (d CalendarDays) Value() (driver.Value, error) {
	return marshalJSON(d)
}

func (d *CalendarDays) Scan(src any) error {
	return unmarshalJSON(src, d)
}

// PaymentAccount is the bank account guests transfer to, shown on counter
// bills and on the online booking QR.
type PaymentAccount struct {
	ID             string `bson:"_id"            db:"id"`
	BankName       string `bson:"bank_name"      db:"bank_name"`
	BankID         string `bson:"bank_id"        db:"bank_id"`
	AccountName    string `bson:"account_name"   db:"account_name"`
	AccountNumber  string `bson:"account_number" db:"account_number"`
	Note           string `bson:"note"           db:"note"`
	model.Metadata `bson:",inline"`
}

// QRURL renders the VietQR image link for a transfer of amount. It is empty
// until both the bank id and the account number are set.
func (a PaymentAccount) QRURL(amount float64) string {
	if a.BankID == "" || a.AccountNumber == "" {
		return ""
	}

	note := a.Note
	if note == "" {
		note = defaultTransferNote
	}

	query := url.Values{}
	query.Set("accountName", a.AccountName)
	query.Set("addInfo", note)
	query.Set("amount", strconv.FormatInt(int64(amount), 10))

	return vietQRBase + url.PathEscape(a.BankID) + "-" + url.PathEscape(a.AccountNumber) + "-compact2.png?" + query.Encode()
}

// Estimate is the price of a stay together with the tier it was billed at.
type Estimate struct {
	Price   float64
	Tier    Tier
	Enabled bool
}

func marshalJSON(value any) (driver.Value, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal jsonb value: %w", err)
	}

	return data, nil
}

func unmarshalJSON(src, dest any) error {
	var data []byte

	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("%w: %T", errUnsupportedSource, src)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to unmarshal jsonb value: %w", err)
	}

	return nil
}
