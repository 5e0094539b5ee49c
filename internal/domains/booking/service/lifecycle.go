package service

import (
	"context"
	"fmt"
	"time"

	"innkeep/internal/domains/booking/model"
	"innkeep/internal/domains/booking/model/dto"
	roomModel "innkeep/internal/domains/room/model"
	orderModel "innkeep/internal/domains/serviceorder/model"
	"innkeep/shared"
	"innkeep/shared/constant"
	gDto "innkeep/shared/dto"
	"innkeep/shared/event"
	gModel "innkeep/shared/model"
	"innkeep/shared/outcome"
	"innkeep/shared/timezone"

	"github.com/rs/zerolog/log"
)

// CheckInReserved moves the guest of a reserved room in. The originally
// planned check-in is kept the first time only.
func (s *serviceImpl) CheckInReserved(ctx context.Context, roomID string) (res outcome.Result, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckInReserved")
	defer scope.End()
	defer scope.TraceIfError(err)

	var published []event.RoomEvent

	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		res = outcome.Result{}
		published = nil

		room, err := s.rooms.GetForUpdate(ctx, shared.FilterByID(roomID, roomModel.FieldID, roomModel.TableName))
		if err != nil {
			return fmt.Errorf("failed to lock room: %w", err)
		}

		switch {
		case room.ID == constant.Empty:
			res = outcome.NotFound("room %s not found", roomID)

			return nil
		case room.Status != roomModel.StatusReserved:
			res = outcome.InvalidState("room %s is %s", roomID, room.Status)

			return nil
		case room.BookingID() == constant.Empty:
			res = outcome.NotFound("room %s has no linked booking", roomID)

			return nil
		}

		booking, err := s.repo.GetForUpdate(ctx, shared.FilterByID(room.BookingID(), model.FieldID, model.TableName))
		if err != nil {
			return fmt.Errorf("failed to lock booking: %w", err)
		}

		switch {
		case booking.ID == constant.Empty:
			res = outcome.NotFound("booking %s not found", room.BookingID())

			return nil
		case booking.Status != model.StatusConfirmed:
			res = outcome.InvalidState("booking %s is %s", booking.ID, booking.Status)

			return nil
		}

		now := timezone.Now()
		actor := shared.Actor(ctx)

		fields := map[string]any{
			model.FieldStatus:        model.StatusCheckedIn,
			model.FieldCheckIn:       now,
			constant.FieldModifiedAt: now,
			constant.FieldModifiedBy: actor,
		}

		if booking.CheckInReserved == nil {
			fields[model.FieldCheckInReserved] = booking.CheckIn
		}

		if err := s.repo.Update(ctx, fields, shared.FilterByID(booking.ID, model.FieldID, model.TableName)); err != nil {
			return fmt.Errorf("failed to update booking: %w", err)
		}

		if err := s.moveRoom(ctx, roomID, roomModel.StatusOccupied, false, now); err != nil {
			return err
		}

		res = outcome.OK(booking.ID)
		published = append(published, event.RoomEvent{
			RoomID:         roomID,
			Status:         string(roomModel.StatusOccupied),
			PreviousStatus: string(room.Status),
			BookingID:      booking.ID,
			Reason:         event.ReasonCheckIn,
			At:             now,
		})

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("room", roomID).Msg("failed to check in reserved room")

		return res, fmt.Errorf("failed to check in reserved room: %w", err)
	}

	return s.finish(ctx, res, published), nil
}

// Checkout settles a stay. The final amount is stored as given; the service
// order total is recomputed from the orders on file.
func (s *serviceImpl) Checkout(ctx context.Context, bookingID string, req dto.CheckoutRequest) (res outcome.Result, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Checkout")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req.FinalAmount < 0 || req.ServiceFee < 0 {
		return outcome.Invalid("amounts must not be negative"), nil
	}

	var published []event.RoomEvent

	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		res = outcome.Result{}
		published = nil

		room, err := s.rooms.GetForUpdate(ctx, shared.FilterByID(req.RoomID, roomModel.FieldID, roomModel.TableName))
		if err != nil {
			return fmt.Errorf("failed to lock room: %w", err)
		}

		booking, err := s.repo.GetForUpdate(ctx, shared.FilterByID(bookingID, model.FieldID, model.TableName))
		if err != nil {
			return fmt.Errorf("failed to lock booking: %w", err)
		}

		switch {
		case booking.ID == constant.Empty:
			res = outcome.NotFound("booking %s not found", bookingID)

			return nil
		case room.ID == constant.Empty:
			res = outcome.NotFound("room %s not found", req.RoomID)

			return nil
		case booking.RoomID != req.RoomID:
			res = outcome.Invalid("booking %s belongs to room %s, not %s", bookingID, booking.RoomID, req.RoomID)

			return nil
		case booking.Status != model.StatusCheckedIn:
			res = outcome.InvalidState("booking %s is %s", bookingID, booking.Status)

			return nil
		case room.BookingID() != constant.Empty && room.BookingID() != bookingID:
			res = outcome.InvalidState("room %s is linked to booking %s", req.RoomID, room.BookingID())

			return nil
		}

		orders, err := s.orders.GetAll(ctx, gDto.QueryParams{}, shared.FilterByID(bookingID, orderModel.FieldBookingID, orderModel.TableName))
		if err != nil {
			return fmt.Errorf("failed to get service orders: %w", err)
		}

		now := timezone.Now()

		fields := map[string]any{
			model.FieldStatus:            model.StatusCompleted,
			model.FieldCheckOutActual:    now,
			model.FieldTotalAmount:       req.FinalAmount,
			model.FieldServiceFee:        req.ServiceFee,
			model.FieldOrderServiceTotal: orderModel.Total(orders),
			model.FieldPaymentMethod:     req.PaymentMethod,
			model.FieldNote:              req.Note,
			constant.FieldModifiedAt:     now,
			constant.FieldModifiedBy:     shared.Actor(ctx),
		}

		if err := s.repo.Update(ctx, fields, shared.FilterByID(bookingID, model.FieldID, model.TableName)); err != nil {
			return fmt.Errorf("failed to update booking: %w", err)
		}

		if err := s.moveRoom(ctx, req.RoomID, roomModel.StatusDirty, true, now); err != nil {
			return err
		}

		res = outcome.OK(bookingID)
		published = append(published, event.RoomEvent{
			RoomID:         req.RoomID,
			Status:         string(roomModel.StatusDirty),
			PreviousStatus: string(room.Status),
			BookingID:      bookingID,
			Reason:         event.ReasonCheckout,
			At:             now,
		})

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("booking", bookingID).Msg("failed to check out booking")

		return res, fmt.Errorf("failed to check out booking: %w", err)
	}

	return s.finish(ctx, res, published), nil
}

// ConfirmOnlinePayment marks the transfer of an online booking as received.
// The room only moves to RESERVED while it still waits on this booking.
func (s *serviceImpl) ConfirmOnlinePayment(ctx context.Context, bookingID string) (res outcome.Result, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ConfirmOnlinePayment")
	defer scope.End()
	defer scope.TraceIfError(err)

	var published []event.RoomEvent

	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		res = outcome.Result{}
		published = nil

		current, err := s.repo.Get(ctx, shared.FilterByID(bookingID, model.FieldID, model.TableName))
		if err != nil {
			return fmt.Errorf("failed to get booking: %w", err)
		}

		if current.ID == constant.Empty {
			res = outcome.NotFound("booking %s not found", bookingID)

			return nil
		}

		room, err := s.rooms.GetForUpdate(ctx, shared.FilterByID(current.RoomID, roomModel.FieldID, roomModel.TableName))
		if err != nil {
			return fmt.Errorf("failed to lock room: %w", err)
		}

		booking, err := s.repo.GetForUpdate(ctx, shared.FilterByID(bookingID, model.FieldID, model.TableName))
		if err != nil {
			return fmt.Errorf("failed to lock booking: %w", err)
		}

		switch {
		case !booking.IsOnline:
			res = outcome.InvalidState("booking %s is not an online booking", bookingID)

			return nil
		case booking.Status == model.StatusCancelled || booking.Status == model.StatusCompleted:
			res = outcome.InvalidState("booking %s is %s", bookingID, booking.Status)

			return nil
		}

		now := timezone.Now()

		if booking.OnlinePaymentStatus != model.PaymentStatusConfirmed {
			fields := map[string]any{
				model.FieldOnlinePaymentStatus: model.PaymentStatusConfirmed,
				constant.FieldModifiedAt:       now,
				constant.FieldModifiedBy:       shared.Actor(ctx),
			}

			if err := s.repo.Update(ctx, fields, shared.FilterByID(bookingID, model.FieldID, model.TableName)); err != nil {
				return fmt.Errorf("failed to update booking: %w", err)
			}
		}

		res = outcome.OK(bookingID)

		if room.Status != roomModel.StatusPendingPayment || room.BookingID() != bookingID {
			log.Warn().Str("booking", bookingID).Str("room", room.ID).Str("status", string(room.Status)).
				Msg("payment confirmed but room no longer waits on this booking, room left as is")

			return nil
		}

		if err := s.moveRoom(ctx, room.ID, roomModel.StatusReserved, false, now); err != nil {
			return err
		}

		published = append(published, event.RoomEvent{
			RoomID:         room.ID,
			Status:         string(roomModel.StatusReserved),
			PreviousStatus: string(room.Status),
			BookingID:      bookingID,
			Reason:         event.ReasonPaymentOK,
			At:             now,
		})

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("booking", bookingID).Msg("failed to confirm online payment")

		return res, fmt.Errorf("failed to confirm online payment: %w", err)
	}

	return s.finish(ctx, res, published), nil
}

// Cancel cancels a booking that has not started. The linked room keeps its
// status and link; staff free it through a manual status update.
func (s *serviceImpl) Cancel(ctx context.Context, bookingID string) (res outcome.Result, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	var roomID string

	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		res = outcome.Result{}
		roomID = constant.Empty

		booking, err := s.repo.GetForUpdate(ctx, shared.FilterByID(bookingID, model.FieldID, model.TableName))
		if err != nil {
			return fmt.Errorf("failed to lock booking: %w", err)
		}

		switch {
		case booking.ID == constant.Empty:
			res = outcome.NotFound("booking %s not found", bookingID)

			return nil
		case booking.Status == model.StatusCancelled:
			res = outcome.OK(bookingID)

			return nil
		case booking.Status == model.StatusCheckedIn || booking.Status == model.StatusCompleted:
			res = outcome.InvalidState("booking %s is %s", bookingID, booking.Status)

			return nil
		}

		fields := map[string]any{
			model.FieldStatus:        model.StatusCancelled,
			constant.FieldModifiedAt: timezone.Now(),
			constant.FieldModifiedBy: shared.Actor(ctx),
		}

		if err := s.repo.Update(ctx, fields, shared.FilterByID(bookingID, model.FieldID, model.TableName)); err != nil {
			return fmt.Errorf("failed to cancel booking: %w", err)
		}

		res = outcome.OK(bookingID)
		roomID = booking.RoomID

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("booking", bookingID).Msg("failed to cancel booking")

		return res, fmt.Errorf("failed to cancel booking: %w", err)
	}

	if roomID != constant.Empty {
		log.Warn().Str("booking", bookingID).Str("room", roomID).
			Msg("booking cancelled, room keeps its status until updated by staff")
	}

	return s.finish(ctx, res, nil), nil
}

func (s *serviceImpl) moveRoom(ctx context.Context, roomID string, status roomModel.Status, unlink bool, now time.Time) error {
	fields := map[string]any{
		roomModel.FieldStatus:    status,
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: shared.Actor(ctx),
	}

	if unlink {
		fields[roomModel.FieldCurrentBookingID] = gModel.Unset
	}

	if err := s.rooms.Update(ctx, fields, shared.FilterByID(roomID, roomModel.FieldID, roomModel.TableName)); err != nil {
		return fmt.Errorf("failed to update room: %w", err)
	}

	return nil
}
