package service

import (
	"time"

	"innkeep/internal/domains/room/model"
)

// ReclaimExpired returns a copy of rooms where every hold that lapsed before
// now is released, together with the ids of the released rooms. The input is
// left untouched.
func ReclaimExpired(rooms []model.Room, now time.Time) (updated []model.Room, reclaimed []string) {
	updated = make([]model.Room, len(rooms))

	for i, room := range rooms {
		if room.LockExpired(now) {
			room.Status = model.StatusAvailable
			room.LockedUntil = nil
			room.LockedBy = nil

			reclaimed = append(reclaimed, room.ID)
		}

		updated[i] = room
	}

	return updated, reclaimed
}
