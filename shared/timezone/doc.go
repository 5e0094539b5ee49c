// Package timezone keeps every wall-clock decision in the hotel's own zone.
//
// Day boundaries decide pricing tiers (weekend and holiday tables), the
// completed-stay report range and hold expiry display, so they must not
// depend on where the process runs. The zone comes from APP_TIMEZONE and is
// loaded on first use; an unknown name falls back to UTC with an error log.
//
//	now := timezone.Now()
//	day, err := timezone.Parse("2006-01-02", "2026-12-25")
//	until := timezone.EndOfDay(day)
//
// Tests pin the clock with Freeze and the zone with SetLocation.
package timezone
