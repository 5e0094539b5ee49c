package service

import (
	"context"
	"fmt"
	"net/http"

	"innkeep/infras/otel"
	bookingModel "innkeep/internal/domains/booking/model"
	bookingRepo "innkeep/internal/domains/booking/repository"
	holdSvc "innkeep/internal/domains/hold/service"
	pricingSvc "innkeep/internal/domains/pricing/service"
	"innkeep/internal/domains/room/model"
	"innkeep/internal/domains/room/model/dto"
	"innkeep/internal/domains/room/repository"
	"innkeep/shared"
	"innkeep/shared/constant"
	gDto "innkeep/shared/dto"
	"innkeep/shared/event"
	"innkeep/shared/failure"
	gModel "innkeep/shared/model"
	"innkeep/shared/outcome"
	"innkeep/shared/timezone"
	"innkeep/shared/transaction"

	"github.com/rs/zerolog/log"
)

type Room interface {
	Create(ctx context.Context, req dto.CreateRoomRequest) error
	Get(ctx context.Context, id string) (dto.RoomResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetRoomsResponse, error)
	GetAvailable(ctx context.Context, holderID string) (dto.GetRoomsResponse, error)
	Update(ctx context.Context, req dto.UpdateRoomRequest, id string) error
	UpdateStatus(ctx context.Context, id string, status model.Status) (outcome.Result, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo       repository.Room
	bookings   bookingRepo.Booking
	hold       holdSvc.Hold
	pricing    pricingSvc.Pricing
	transactor transaction.Transactor
	publisher  event.Publisher
	otel       otel.Otel
}

func New(
	repo repository.Room,
	bookings bookingRepo.Booking,
	hold holdSvc.Hold,
	pricing pricingSvc.Pricing,
	transactor transaction.Transactor,
	publisher event.Publisher,
	otel otel.Otel,
) Room {
	return &serviceImpl{
		repo:       repo,
		bookings:   bookings,
		hold:       hold,
		pricing:    pricing,
		transactor: transactor,
		publisher:  publisher,
		otel:       otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateRoomRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	if _, err = s.pricing.GetRoomType(ctx, req.RoomTypeCode); err != nil {
		if failure.GetCode(err) == http.StatusNotFound {
			return failure.BadRequestFromString(fmt.Sprintf("unknown room type %s", req.RoomTypeCode)) // nolint:wrapcheck
		}

		return fmt.Errorf("failed to check room type: %w", err)
	}

	exist, err := s.repo.Exist(ctx, shared.FilterByID(req.ID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check room existence")

		return fmt.Errorf("failed to check room existence: %w", err)
	}

	if exist {
		return failure.Conflict(fmt.Sprintf("room %s already exists", req.ID)) // nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, req.ToModel(shared.Actor(ctx))); err != nil {
		log.Error().Err(err).Msg("failed to create room")

		return fmt.Errorf("failed to create room: %w", err)
	}

	return nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	room, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return res, failure.NotFound("room not found") // nolint:wrapcheck
	}

	res.FromModel(room)

	return res, nil
}

// GetAll reads through the store on every call and reclaims lapsed holds
// among the page it returns. A failed reclaim is logged and the page is
// served as read.
func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count rooms")

		return res, fmt.Errorf("failed to count rooms: %w", err)
	}

	rooms, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return res, fmt.Errorf("failed to get rooms: %w", err)
	}

	rooms = s.reclaim(ctx, rooms)

	res.FromModels(rooms, total, params.Limit)

	return res, nil
}

// GetAvailable lists the rooms a guest may pick: free rooms and the ones the
// guest already holds.
func (s *serviceImpl) GetAvailable(ctx context.Context, holderID string) (res dto.GetRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAvailable")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldStatus,
				Value:    []model.Status{model.StatusAvailable, model.StatusTempLocked},
				Operator: gDto.FilterOperatorIn,
				Table:    model.TableName,
			},
		},
	}

	rooms, err := s.repo.GetAll(ctx, gDto.QueryParams{SortBy: model.FieldID, SortDir: gDto.SortDirAsc}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get available rooms")

		return res, fmt.Errorf("failed to get available rooms: %w", err)
	}

	rooms = s.reclaim(ctx, rooms)

	open := make([]model.Room, 0, len(rooms))

	for _, room := range rooms {
		if room.Status == model.StatusAvailable || room.HeldBy(holderID) {
			open = append(open, room)
		}
	}

	res.FromModels(open, len(open), len(open))

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateRoomRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check room existence")

		return fmt.Errorf("failed to check room existence: %w", err)
	}

	if !exist {
		return failure.NotFound("room not found") // nolint:wrapcheck
	}

	if req.RoomTypeCode != constant.Empty {
		if _, err = s.pricing.GetRoomType(ctx, req.RoomTypeCode); err != nil {
			if failure.GetCode(err) == http.StatusNotFound {
				return failure.BadRequestFromString(fmt.Sprintf("unknown room type %s", req.RoomTypeCode)) // nolint:wrapcheck
			}

			return fmt.Errorf("failed to check room type: %w", err)
		}
	}

	if err = s.repo.Update(ctx, shared.ChangedFields(req, shared.Actor(ctx)), filter); err != nil {
		log.Error().Err(err).Msg("failed to update room")

		return fmt.Errorf("failed to update room: %w", err)
	}

	return nil
}

// UpdateStatus applies a manual status change. Moving a room out of a booked
// status is a recovery path and is only allowed once the linked booking is
// gone or finished; it also unlinks the booking.
func (s *serviceImpl) UpdateStatus(ctx context.Context, id string, status model.Status) (res outcome.Result, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !status.Valid() || status.Managed() {
		return outcome.Invalid("status %s cannot be set by hand", status), nil
	}

	var published []event.RoomEvent

	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		published = nil

		room, err := s.repo.GetForUpdate(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
		if err != nil {
			return fmt.Errorf("failed to lock room: %w", err)
		}

		if room.ID == constant.Empty {
			res = outcome.NotFound("room %s not found", id)

			return nil
		}

		if room.Status == status {
			res = outcome.OK(id)

			return nil
		}

		if !room.Status.CanMoveTo(status) {
			res = outcome.InvalidState("room %s cannot move from %s to %s", id, room.Status, status)

			return nil
		}

		now := timezone.Now()
		reason := event.ReasonHousekeeping
		fields := map[string]any{
			model.FieldStatus:        status,
			constant.FieldModifiedAt: now,
			constant.FieldModifiedBy: shared.Actor(ctx),
		}

		if room.Status.Linked() {
			active, err := s.hasActiveBooking(ctx, room.BookingID())
			if err != nil {
				return err
			}

			if active {
				res = outcome.InvalidState("room %s is linked to active booking %s", id, room.BookingID())

				return nil
			}

			reason = event.ReasonAdministrator
			fields[model.FieldCurrentBookingID] = gModel.Unset
		}

		if err := s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
			return fmt.Errorf("failed to update room status: %w", err)
		}

		res = outcome.OK(id)
		published = append(published, event.RoomEvent{
			RoomID:         id,
			Status:         string(status),
			PreviousStatus: string(room.Status),
			BookingID:      room.BookingID(),
			Reason:         reason,
			At:             now,
		})

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("room", id).Msg("failed to update room status")

		return res, fmt.Errorf("failed to update room status: %w", err)
	}

	if !res.Success {
		log.Warn().Str("room", id).Str("kind", string(res.Kind)).Msg(res.Reason)
	}

	if len(published) > 0 {
		s.publisher.Publish(ctx, published...)
	}

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	var rejected error

	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		rejected = nil

		room, err := s.repo.GetForUpdate(ctx, filter)
		if err != nil {
			return fmt.Errorf("failed to lock room: %w", err)
		}

		switch {
		case room.ID == constant.Empty:
			rejected = failure.NotFound("room not found")

			return nil
		case room.Status != model.StatusAvailable && room.Status != model.StatusMaintenance:
			rejected = failure.UnprocessableEntity(fmt.Sprintf("room %s is %s", id, room.Status))

			return nil
		}

		return s.repo.Delete(ctx, filter)
	})
	if err != nil {
		log.Error().Err(err).Str("room", id).Msg("failed to delete room")

		return fmt.Errorf("failed to delete room: %w", err)
	}

	return rejected
}

func (s *serviceImpl) reclaim(ctx context.Context, rooms []model.Room) []model.Room {
	reclaimed, err := s.hold.Reclaim(ctx, rooms)
	if err != nil {
		log.Warn().Err(err).Msg("serving rooms without reclaiming lapsed holds")

		return rooms
	}

	return reclaimed
}

func (s *serviceImpl) hasActiveBooking(ctx context.Context, bookingID string) (bool, error) {
	if bookingID == constant.Empty {
		return false, nil
	}

	booking, err := s.bookings.Get(ctx, shared.FilterByID(bookingID, bookingModel.FieldID, bookingModel.TableName))
	if err != nil {
		return false, fmt.Errorf("failed to get linked booking: %w", err)
	}

	return booking.ID != constant.Empty && booking.Status.Active(), nil
}
