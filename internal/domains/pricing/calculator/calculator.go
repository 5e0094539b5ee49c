// Package calculator prices a stay from a rate table. It performs no I/O.
package calculator

import (
	"maps"
	"math"
	"slices"
	"time"

	"innkeep/internal/domains/pricing/model"
	"innkeep/shared/constant"
)

const secondsPerHour = 3600

// EstimatedPrice returns the room charge for a stay. Offsets are dropped
// first, so two instants are compared by their wall-clock readings.
//
// An hourly stay longer than the largest configured block is billed at that
// block's price; no per-hour surcharge is added.
func EstimatedPrice(checkIn, checkOut time.Time, bookingType model.BookingType, rates model.RateTable) float64 {
	seconds := wallClock(checkOut).Sub(wallClock(checkIn)).Seconds()

	switch bookingType {
	case model.BookingTypeDaily:
		days := max(math.Ceil(seconds/constant.SecondsPerDay), 1)

		return days * rates.DailyPrice
	case model.BookingTypeOvernight:
		return rates.OvernightPrice
	case model.BookingTypeHourly:
		hours := max(int(math.Ceil(seconds/secondsPerHour)), 1)

		if price, ok := rates.HourlyBlocks[hours]; ok {
			return price
		}

		if len(rates.HourlyBlocks) == 0 {
			return 0
		}

		return rates.HourlyBlocks[slices.Max(slices.Collect(maps.Keys(rates.HourlyBlocks)))]
	default:
		return 0
	}
}

// ApplicableRateTable picks the table in force on date: holiday first, then
// weekend, then regular. A tier table only applies when it is configured.
func ApplicableRateTable(date time.Time, roomType model.RoomType, days model.CalendarDays) (model.RateTable, model.Tier) {
	if days.IsHoliday(date) && roomType.PricingHoliday.Configured() {
		return *roomType.PricingHoliday, model.TierHoliday
	}

	if days.IsWeekend(date) && roomType.PricingWeekend.Configured() {
		return *roomType.PricingWeekend, model.TierWeekend
	}

	return roomType.Pricing, model.TierRegular
}

func wallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}
