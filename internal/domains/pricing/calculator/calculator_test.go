package calculator_test

import (
	"testing"
	"time"

	"innkeep/internal/domains/pricing/calculator"
	"innkeep/internal/domains/pricing/model"

	"github.com/stretchr/testify/assert"
)

func TestEstimatedPrice(t *testing.T) {
	rates := model.RateTable{
		HourlyBlocks:   map[int]float64{1: 100, 2: 150, 3: 180},
		OvernightPrice: 300,
		DailyPrice:     500,
	}

	checkIn := time.Date(2024, 5, 1, 14, 0, 0, 0, time.UTC)
	saigon := time.FixedZone("ICT", 7*60*60)

	tests := []struct {
		name        string
		checkIn     time.Time
		checkOut    time.Time
		bookingType model.BookingType
		rates       model.RateTable
		want        float64
	}{
		{
			name:        "hourly exact block",
			checkIn:     checkIn,
			checkOut:    checkIn.Add(2 * time.Hour),
			bookingType: model.BookingTypeHourly,
			rates:       rates,
			want:        150,
		},
		{
			name:        "hourly rounds partial hour up",
			checkIn:     checkIn,
			checkOut:    checkIn.Add(75 * time.Minute),
			bookingType: model.BookingTypeHourly,
			rates:       rates,
			want:        150,
		},
		{
			name:        "hourly minimum one hour",
			checkIn:     checkIn,
			checkOut:    checkIn.Add(10 * time.Minute),
			bookingType: model.BookingTypeHourly,
			rates:       rates,
			want:        100,
		},
		{
			name:        "hourly beyond largest block uses largest block price",
			checkIn:     checkIn,
			checkOut:    checkIn.Add(5 * time.Hour),
			bookingType: model.BookingTypeHourly,
			rates:       rates,
			want:        180,
		},
		{
			name:        "hourly without blocks",
			checkIn:     checkIn,
			checkOut:    checkIn.Add(5 * time.Hour),
			bookingType: model.BookingTypeHourly,
			rates:       model.RateTable{},
			want:        0,
		},
		{
			name:        "overnight ignores duration",
			checkIn:     checkIn,
			checkOut:    checkIn.Add(40 * time.Hour),
			bookingType: model.BookingTypeOvernight,
			rates:       rates,
			want:        300,
		},
		{
			name:        "daily rounds partial day up",
			checkIn:     checkIn,
			checkOut:    checkIn.Add(25 * time.Hour),
			bookingType: model.BookingTypeDaily,
			rates:       rates,
			want:        1000,
		},
		{
			name:        "daily minimum one day",
			checkIn:     checkIn,
			checkOut:    checkIn.Add(time.Hour),
			bookingType: model.BookingTypeDaily,
			rates:       rates,
			want:        500,
		},
		{
			name:        "daily with checkout before checkin still bills one day",
			checkIn:     checkIn,
			checkOut:    checkIn.Add(-3 * time.Hour),
			bookingType: model.BookingTypeDaily,
			rates:       rates,
			want:        500,
		},
		{
			name:        "offsets are dropped before comparing",
			checkIn:     checkIn,
			checkOut:    time.Date(2024, 5, 1, 16, 0, 0, 0, saigon),
			bookingType: model.BookingTypeHourly,
			rates:       rates,
			want:        150,
		},
		{
			name:        "unknown booking type",
			checkIn:     checkIn,
			checkOut:    checkIn.Add(time.Hour),
			bookingType: model.BookingType("WEEKLY"),
			rates:       rates,
			want:        0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calculator.EstimatedPrice(tt.checkIn, tt.checkOut, tt.bookingType, tt.rates)
			assert.InDelta(t, tt.want, got, 0.001)
		})
	}
}

func TestApplicableRateTable(t *testing.T) {
	regular := model.RateTable{DailyPrice: 500}
	weekend := model.RateTable{DailyPrice: 600}
	holiday := model.RateTable{OvernightPrice: 900}

	roomType := model.RoomType{
		Code:           "DLX",
		Pricing:        regular,
		PricingWeekend: &weekend,
		PricingHoliday: &holiday,
	}

	days := model.CalendarDays{
		Holidays:        []string{"2024-04-30", "2024-05-11"},
		WeekendWeekdays: []time.Weekday{time.Saturday, time.Sunday},
	}

	tests := []struct {
		name      string
		date      time.Time
		roomType  model.RoomType
		wantTable model.RateTable
		wantTier  model.Tier
	}{
		{
			name:      "weekday uses regular table",
			date:      time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
			roomType:  roomType,
			wantTable: regular,
			wantTier:  model.TierRegular,
		},
		{
			name:      "weekend uses weekend table",
			date:      time.Date(2024, 5, 4, 12, 0, 0, 0, time.UTC),
			roomType:  roomType,
			wantTable: weekend,
			wantTier:  model.TierWeekend,
		},
		{
			name:      "holiday wins over regular",
			date:      time.Date(2024, 4, 30, 12, 0, 0, 0, time.UTC),
			roomType:  roomType,
			wantTable: holiday,
			wantTier:  model.TierHoliday,
		},
		{
			name: "unconfigured holiday table falls back to regular",
			date: time.Date(2024, 4, 30, 12, 0, 0, 0, time.UTC),
			roomType: model.RoomType{
				Pricing:        regular,
				PricingHoliday: &model.RateTable{HourlyBlocks: map[int]float64{1: 50}},
			},
			wantTable: regular,
			wantTier:  model.TierRegular,
		},
		{
			name:      "holiday on a weekend beats the weekend table",
			date:      time.Date(2024, 5, 11, 12, 0, 0, 0, time.UTC),
			roomType:  roomType,
			wantTable: holiday,
			wantTier:  model.TierHoliday,
		},
		{
			name: "weekend table with every price at zero falls back to regular",
			date: time.Date(2024, 5, 4, 12, 0, 0, 0, time.UTC),
			roomType: model.RoomType{
				Pricing: regular,
				PricingWeekend: &model.RateTable{
					HourlyBlocks:   map[int]float64{1: 0, 3: 0},
					OvernightPrice: 0,
					DailyPrice:     0,
				},
			},
			wantTable: regular,
			wantTier:  model.TierRegular,
		},
		{
			name: "missing weekend table falls back to regular",
			date: time.Date(2024, 5, 4, 12, 0, 0, 0, time.UTC),
			roomType: model.RoomType{
				Pricing: regular,
			},
			wantTable: regular,
			wantTier:  model.TierRegular,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, tier := calculator.ApplicableRateTable(tt.date, tt.roomType, days)
			assert.Equal(t, tt.wantTable, table)
			assert.Equal(t, tt.wantTier, tier)
		})
	}
}
