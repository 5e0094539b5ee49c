package dto_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"innkeep/internal/domains/pricing/model"
	"innkeep/internal/domains/pricing/model/dto"
	gModel "innkeep/shared/model"

	"github.com/stretchr/testify/assert"
)

func TestUpsertRoomTypeRequest_ToFields(t *testing.T) {
	weekend := model.RateTable{DailyPrice: 500000}

	tests := []struct {
		name         string
		req          dto.UpsertRoomTypeRequest
		wantWeekend  any
		unsetHoliday bool
	}{
		{
			name:         "missing tiers are cleared",
			req:          dto.UpsertRoomTypeRequest{Name: "Deluxe"},
			wantWeekend:  gModel.Unset,
			unsetHoliday: true,
		},
		{
			name:         "weekend tier is written",
			req:          dto.UpsertRoomTypeRequest{Name: "Deluxe", PricingWeekend: &weekend},
			wantWeekend:  weekend,
			unsetHoliday: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := tt.req.ToFields("manager-1")

			assert.Equal(t, "Deluxe", fields[model.FieldName])
			assert.Equal(t, tt.wantWeekend, fields["pricing_weekend"])
			assert.Equal(t, tt.unsetHoliday, gModel.IsUnset(fields["pricing_holiday"]))
		})
	}
}

func TestUpsertRoomTypeRequest_ToModel(t *testing.T) {
	req := dto.UpsertRoomTypeRequest{
		Name:          "Standard",
		DefaultAdults: 2,
		Pricing:       model.RateTable{DailyPrice: 300000},
	}

	roomType := req.ToModel("STD", "manager-1")

	assert.Equal(t, "STD", roomType.Code)
	assert.Equal(t, 2, roomType.DefaultAdults)
	assert.Equal(t, 300000.0, roomType.Pricing.DailyPrice)
	assert.Nil(t, roomType.PricingHoliday)
	assert.Equal(t, "manager-1", roomType.CreatedBy)
}

func TestCalendarResponse_FromModel(t *testing.T) {
	var empty dto.CalendarResponse
	empty.FromModel(model.CalendarDays{})

	assert.NotNil(t, empty.Holidays)
	assert.NotNil(t, empty.HolidayNotes)
	assert.NotNil(t, empty.WeekendWeekdays)

	var filled dto.CalendarResponse
	filled.FromModel(model.CalendarDays{
		Holidays:        []string{"2026-12-25"},
		WeekendWeekdays: []time.Weekday{time.Saturday, time.Sunday},
	})

	assert.Equal(t, []string{"2026-12-25"}, filled.Holidays)
	assert.Len(t, filled.WeekendWeekdays, 2)
}

func TestQuoteRequest_FromRequest(t *testing.T) {
	tests := []struct {
		name         string
		url          string
		wantCode     string
		wantCheckIn  time.Time
		wantCheckOut time.Time
	}{
		{
			name:         "complete query",
			url:          "/v1/pricing/quote?room_type=DLX&booking_type=DAILY&check_in=2026-03-06T14:00:00Z&check_out=2026-03-07T12:00:00Z",
			wantCode:     "DLX",
			wantCheckIn:  time.Date(2026, 3, 6, 14, 0, 0, 0, time.UTC),
			wantCheckOut: time.Date(2026, 3, 7, 12, 0, 0, 0, time.UTC),
		},
		{
			name:     "malformed times stay zero",
			url:      "/v1/pricing/quote?room_type=DLX&booking_type=DAILY&check_in=tomorrow",
			wantCode: "DLX",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req dto.QuoteRequest
			req.FromRequest(httptest.NewRequest("GET", tt.url, nil))

			assert.Equal(t, tt.wantCode, req.RoomTypeCode)
			assert.Equal(t, model.BookingTypeDaily, req.BookingType)
			assert.True(t, tt.wantCheckIn.Equal(req.CheckIn))
			assert.True(t, tt.wantCheckOut.Equal(req.CheckOut))
		})
	}
}
