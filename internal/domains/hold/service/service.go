// Package service keeps short-lived room holds. A hold reserves a room for
// one holder while they finish a booking; lapsed holds are reclaimed lazily
// on room listings and by the sweep command.
package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"innkeep/infras/otel"
	"innkeep/internal/domains/room/model"
	"innkeep/internal/domains/room/repository"
	"innkeep/shared"
	"innkeep/shared/constant"
	gDto "innkeep/shared/dto"
	"innkeep/shared/event"
	gModel "innkeep/shared/model"
	"innkeep/shared/outcome"
	"innkeep/shared/timezone"
	"innkeep/shared/transaction"

	"github.com/rs/zerolog/log"
)

const argReclaimBefore = "reclaim_before"

type Hold interface {
	Hold(ctx context.Context, roomID, holderID string, duration time.Duration) (outcome.Result, error)
	Release(ctx context.Context, roomID, holderID string) (bool, error)
	Reclaim(ctx context.Context, rooms []model.Room) ([]model.Room, error)
	Sweep(ctx context.Context) (int, error)
}

type serviceImpl struct {
	rooms      repository.Room
	transactor transaction.Transactor
	publisher  event.Publisher
	otel       otel.Otel
}

func New(rooms repository.Room, transactor transaction.Transactor, publisher event.Publisher, otel otel.Otel) Hold {
	return &serviceImpl{
		rooms:      rooms,
		transactor: transactor,
		publisher:  publisher,
		otel:       otel,
	}
}

// Hold takes or renews a hold on roomID. The payload of a successful result
// is the new expiry in RFC 3339.
func (s *serviceImpl) Hold(ctx context.Context, roomID, holderID string, duration time.Duration) (res outcome.Result, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Hold")
	defer scope.End()
	defer scope.TraceIfError(err)

	if duration <= 0 {
		return outcome.Invalid("hold duration must be positive"), nil
	}

	if holderID == constant.Empty {
		return outcome.Invalid("holder id is required"), nil
	}

	var published []event.RoomEvent

	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		published = nil

		room, err := s.rooms.GetForUpdate(ctx, shared.FilterByID(roomID, model.FieldID, model.TableName))
		if err != nil {
			return fmt.Errorf("failed to lock room: %w", err)
		}

		if room.ID == constant.Empty {
			res = outcome.NotFound("room %s not found", roomID)

			return nil
		}

		now := timezone.Now()

		switch {
		case room.Claimable(holderID, now):
		case room.Status == model.StatusTempLocked:
			res = outcome.Conflict("room %s is held by another session", roomID)

			return nil
		default:
			res = outcome.InvalidState("room %s is %s", roomID, room.Status)

			return nil
		}

		lockedUntil := now.Add(duration)

		fields := map[string]any{
			model.FieldStatus:        model.StatusTempLocked,
			model.FieldLockedUntil:   lockedUntil,
			model.FieldLockedBy:      holderID,
			constant.FieldModifiedAt: now,
			constant.FieldModifiedBy: shared.Actor(ctx),
		}

		if err := s.rooms.Update(ctx, fields, shared.FilterByID(roomID, model.FieldID, model.TableName)); err != nil {
			return fmt.Errorf("failed to hold room: %w", err)
		}

		res = outcome.OK(lockedUntil.Format(time.RFC3339))
		published = append(published, event.RoomEvent{
			RoomID:         roomID,
			Status:         string(model.StatusTempLocked),
			PreviousStatus: string(room.Status),
			HolderID:       holderID,
			Reason:         event.ReasonHold,
			At:             now,
		})

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("room", roomID).Msg("failed to hold room")

		return res, fmt.Errorf("failed to hold room: %w", err)
	}

	if !res.Success {
		log.Info().Str("room", roomID).Str("kind", string(res.Kind)).Msg(res.Reason)
	}

	if len(published) > 0 {
		s.publisher.Publish(ctx, published...)
	}

	return res, nil
}

// Release frees a room only for the holder that holds it.
func (s *serviceImpl) Release(ctx context.Context, roomID, holderID string) (released bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Release")
	defer scope.End()
	defer scope.TraceIfError(err)

	var published []event.RoomEvent

	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		released = false
		published = nil

		room, err := s.rooms.GetForUpdate(ctx, shared.FilterByID(roomID, model.FieldID, model.TableName))
		if err != nil {
			return fmt.Errorf("failed to lock room: %w", err)
		}

		if !room.HeldBy(holderID) {
			return nil
		}

		now := timezone.Now()

		if err := s.rooms.Update(ctx, freeFields(ctx, now), shared.FilterByID(roomID, model.FieldID, model.TableName)); err != nil {
			return fmt.Errorf("failed to release room: %w", err)
		}

		released = true
		published = append(published, event.RoomEvent{
			RoomID:         roomID,
			Status:         string(model.StatusAvailable),
			PreviousStatus: string(model.StatusTempLocked),
			HolderID:       holderID,
			Reason:         event.ReasonRelease,
			At:             now,
		})

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("room", roomID).Msg("failed to release room")

		return false, fmt.Errorf("failed to release room: %w", err)
	}

	if released {
		s.publisher.Publish(ctx, published...)
	}

	return released, nil
}

// Reclaim releases the lapsed holds among rooms and returns the rooms as
// they are after the write.
func (s *serviceImpl) Reclaim(ctx context.Context, rooms []model.Room) (res []model.Room, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Reclaim")
	defer scope.End()
	defer scope.TraceIfError(err)

	res, _, err = s.reclaim(ctx, rooms)

	return res, err
}

// Sweep reclaims every lapsed hold in the store.
func (s *serviceImpl) Sweep(ctx context.Context) (count int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Sweep")
	defer scope.End()
	defer scope.TraceIfError(err)

	held, err := s.rooms.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldStatus,
				Value:    model.StatusTempLocked,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to list held rooms")

		return 0, fmt.Errorf("failed to list held rooms: %w", err)
	}

	_, reclaimed, err := s.reclaim(ctx, held)
	if err != nil {
		return 0, err
	}

	if len(reclaimed) > 0 {
		log.Info().Strs("rooms", reclaimed).Msg("reclaimed lapsed holds")
	}

	return len(reclaimed), nil
}

// reclaim frees lapsed holds with one conditional update. Candidates are
// locked and re-read first, so a hold renewed after the caller's read is
// neither written nor reported.
func (s *serviceImpl) reclaim(ctx context.Context, rooms []model.Room) ([]model.Room, []string, error) {
	now := timezone.Now()

	candidates, lapsed := ReclaimExpired(rooms, now)
	if len(lapsed) == 0 {
		return candidates, nil, nil
	}

	var (
		reclaimed []string
		events    []event.RoomEvent
		current   map[string]model.Room
	)

	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		reclaimed, events = nil, nil
		current = make(map[string]model.Room, len(lapsed))

		for _, id := range lapsed {
			room, err := s.rooms.GetForUpdate(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
			if err != nil {
				return fmt.Errorf("failed to lock room %s: %w", id, err)
			}

			if room.ID == constant.Empty {
				continue
			}

			current[id] = room

			if !room.LockExpired(now) {
				continue
			}

			reclaimed = append(reclaimed, id)
			events = append(events, event.RoomEvent{
				RoomID:         id,
				Status:         string(model.StatusAvailable),
				PreviousStatus: string(model.StatusTempLocked),
				HolderID:       room.Holder(),
				Reason:         event.ReasonReclaim,
				At:             now,
			})
		}

		if len(reclaimed) == 0 {
			return nil
		}

		return s.rooms.Update(ctx, freeFields(ctx, now), reclaimFilter(reclaimed, now))
	})
	if err != nil {
		log.Error().Err(err).Strs("rooms", lapsed).Msg("failed to reclaim lapsed holds")

		return rooms, nil, fmt.Errorf("failed to reclaim lapsed holds: %w", err)
	}

	freed := make(map[string]bool, len(reclaimed))
	for _, id := range reclaimed {
		freed[id] = true
	}

	updated := make([]model.Room, len(candidates))

	for i, room := range candidates {
		if fresh, ok := current[room.ID]; ok && !freed[room.ID] {
			room = fresh
		}

		updated[i] = room
	}

	if len(events) > 0 {
		s.publisher.Publish(ctx, events...)
	}

	return updated, reclaimed, nil
}

func reclaimFilter(ids []string, now time.Time) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldID,
				Value:    ids,
				Operator: gDto.FilterOperatorIn,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldStatus,
				Value:    model.StatusTempLocked,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
			gDto.FilterGroup{
				Operator: gDto.FilterGroupOperatorOr,
				Filters: []any{
					gDto.Filter{
						ArgName:  argReclaimBefore,
						Field:    model.FieldLockedUntil,
						Value:    now,
						Operator: gDto.FilterOperatorLess,
						Table:    model.TableName,
					},
					gDto.Filter{
						Field:    model.FieldLockedUntil,
						Operator: gDto.FilterIsNull,
						Table:    model.TableName,
					},
				},
			},
		},
	}
}

func freeFields(ctx context.Context, now time.Time) map[string]any {
	return map[string]any{
		model.FieldStatus:        model.StatusAvailable,
		model.FieldLockedUntil:   gModel.Unset,
		model.FieldLockedBy:      gModel.Unset,
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: shared.Actor(ctx),
	}
}
