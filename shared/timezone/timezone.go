package timezone

import (
	"sync"
	"time"

	"innkeep/config"

	"github.com/rs/zerolog/log"
)

var (
	appLocation *time.Location
	loadOnce    sync.Once
	clockMu     sync.RWMutex
	clock       = time.Now
)

func location() *time.Location {
	loadOnce.Do(func() {
		name := config.Get().App.Timezone
		if name == "" {
			log.Warn().Msg("No timezone configured, using UTC")

			appLocation = time.UTC

			return
		}

		loc, err := time.LoadLocation(name)
		if err != nil {
			log.Error().Err(err).Str("timezone", name).Msg("Failed to load timezone, falling back to UTC")

			appLocation = time.UTC

			return
		}

		appLocation = loc

		log.Info().Str("timezone", loc.String()).Msg("Application timezone initialized")
	})

	return appLocation
}

// SetLocation overrides the configured zone. Meant for tests and tools that
// run without the environment.
func SetLocation(loc *time.Location) {
	location()

	appLocation = loc
}

// Freeze pins Now to at until the returned func is called.
func Freeze(at time.Time) func() {
	clockMu.Lock()
	defer clockMu.Unlock()

	previous := clock
	clock = func() time.Time { return at }

	return func() {
		clockMu.Lock()
		defer clockMu.Unlock()

		clock = previous
	}
}

// Now returns the current time in the hotel's zone.
func Now() time.Time {
	clockMu.RLock()
	defer clockMu.RUnlock()

	return clock().In(location())
}

func ToAppTime(t time.Time) time.Time {
	return t.In(location())
}

func GetLocation() *time.Location {
	return location()
}

// Parse reads value in the hotel's zone when layout carries no offset.
func Parse(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, location())
}

func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}

// StartOfDay is midnight of t's calendar day in the hotel's zone.
func StartOfDay(t time.Time) time.Time {
	local := ToAppTime(t)

	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, local.Location())
}

// EndOfDay is the last instant of t's calendar day in the hotel's zone.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}
