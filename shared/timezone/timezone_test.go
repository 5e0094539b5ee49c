package timezone_test

import (
	"testing"
	"time"

	"innkeep/shared/timezone"

	"github.com/stretchr/testify/assert"
)

func jakarta(t *testing.T) *time.Location {
	t.Helper()

	loc, err := time.LoadLocation("Asia/Jakarta")
	if err != nil {
		t.Skip("tzdata not available")
	}

	timezone.SetLocation(loc)
	t.Cleanup(func() { timezone.SetLocation(time.UTC) })

	return loc
}

func TestNow_Frozen(t *testing.T) {
	loc := jakarta(t)

	at := time.Date(2026, 3, 6, 20, 0, 0, 0, time.UTC)
	release := timezone.Freeze(at)
	defer release()

	now := timezone.Now()

	assert.True(t, at.Equal(now))
	assert.Equal(t, loc, now.Location())
	assert.Equal(t, 7, now.Day(), "20:00 UTC is already the next day in Jakarta")
}

func TestParse_UsesHotelZone(t *testing.T) {
	loc := jakarta(t)

	day, err := timezone.Parse("2006-01-02", "2026-12-25")

	assert.NoError(t, err)
	assert.Equal(t, time.Date(2026, 12, 25, 0, 0, 0, 0, loc), day)

	_, err = timezone.Parse("2006-01-02", "25/12/2026")
	assert.Error(t, err)
}

func TestDayBounds(t *testing.T) {
	loc := jakarta(t)

	tests := []struct {
		name      string
		at        time.Time
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "afternoon",
			at:        time.Date(2026, 3, 6, 15, 30, 0, 0, loc),
			wantStart: time.Date(2026, 3, 6, 0, 0, 0, 0, loc),
			wantEnd:   time.Date(2026, 3, 6, 23, 59, 59, int(time.Second-time.Nanosecond), loc),
		},
		{
			name:      "utc instant past local midnight",
			at:        time.Date(2026, 3, 6, 18, 0, 0, 0, time.UTC),
			wantStart: time.Date(2026, 3, 7, 0, 0, 0, 0, loc),
			wantEnd:   time.Date(2026, 3, 7, 23, 59, 59, int(time.Second-time.Nanosecond), loc),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.wantStart.Equal(timezone.StartOfDay(tt.at)))
			assert.True(t, tt.wantEnd.Equal(timezone.EndOfDay(tt.at)))
		})
	}
}

func TestFormat(t *testing.T) {
	jakarta(t)

	at := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "2026-01-01 07:00", timezone.Format(at, "2006-01-02 15:04"))
}
