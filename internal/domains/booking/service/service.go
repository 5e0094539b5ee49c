// Package service runs the booking lifecycle. Every operation that changes a
// booking also moves its room, and both writes share one transaction with
// the room row locked.
package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"innkeep/config"
	"innkeep/infras/otel"
	"innkeep/infras/s3"
	"innkeep/internal/domains/booking/model"
	"innkeep/internal/domains/booking/model/dto"
	"innkeep/internal/domains/booking/repository"
	pricingSvc "innkeep/internal/domains/pricing/service"
	roomModel "innkeep/internal/domains/room/model"
	roomRepo "innkeep/internal/domains/room/repository"
	orderRepo "innkeep/internal/domains/serviceorder/repository"
	"innkeep/shared"
	"innkeep/shared/constant"
	gDto "innkeep/shared/dto"
	"innkeep/shared/event"
	"innkeep/shared/failure"
	gModel "innkeep/shared/model"
	"innkeep/shared/outcome"
	"innkeep/shared/secret"
	"innkeep/shared/timezone"
	"innkeep/shared/transaction"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type Booking interface {
	Create(ctx context.Context, draft model.Draft, checkInNow bool) (outcome.Result, error)
	CreateGroup(ctx context.Context, draft model.Draft, roomIDs []string, checkInNow bool) (outcome.Result, error)
	CheckInReserved(ctx context.Context, roomID string) (outcome.Result, error)
	Checkout(ctx context.Context, bookingID string, req dto.CheckoutRequest) (outcome.Result, error)
	ConfirmOnlinePayment(ctx context.Context, bookingID string) (outcome.Result, error)
	SubmitPaymentProof(ctx context.Context, bookingID, holderID string, req dto.PaymentProofRequest) (outcome.Result, error)
	Cancel(ctx context.Context, bookingID string) (outcome.Result, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	PendingOnline(ctx context.Context) (dto.GetBookingsResponse, error)
	ConfirmedOnline(ctx context.Context, limit int) (dto.GetBookingsResponse, error)
	Completed(ctx context.Context, from, to time.Time) (dto.GetBookingsResponse, error)
	FindCustomerByPhone(ctx context.Context, phone string) (dto.CustomerResponse, error)
}

type serviceImpl struct {
	repo       repository.Booking
	rooms      roomRepo.Room
	orders     orderRepo.ServiceOrder
	pricing    pricingSvc.Pricing
	transactor transaction.Transactor
	publisher  event.Publisher
	store      s3.ObjectStore
	cfg        *config.Config
	otel       otel.Otel
}

func New(
	repo repository.Booking,
	rooms roomRepo.Room,
	orders orderRepo.ServiceOrder,
	pricing pricingSvc.Pricing,
	transactor transaction.Transactor,
	publisher event.Publisher,
	store s3.ObjectStore,
	cfg *config.Config,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:       repo,
		rooms:      rooms,
		orders:     orders,
		pricing:    pricing,
		transactor: transactor,
		publisher:  publisher,
		store:      store,
		cfg:        cfg,
		otel:       otel,
	}
}

// Create books one room. With checkInNow the guest moves in straight away,
// otherwise the room is reserved, or left pending payment for online drafts.
func (s *serviceImpl) Create(ctx context.Context, draft model.Draft, checkInNow bool) (res outcome.Result, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	if rejected := validateDraft(draft); !rejected.Success {
		return rejected, nil
	}

	bookingID := draft.ID
	if bookingID == constant.Empty {
		bookingID = uuid.NewString()
	}

	var holderHash string

	if draft.IsOnline {
		if holderHash, err = secret.Seal(draft.HolderID); err != nil {
			log.Error().Err(err).Msg("failed to hash holder id")

			return res, fmt.Errorf("failed to hash holder id: %w", err)
		}
	}

	var published []event.RoomEvent

	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		res = outcome.Result{}
		published = nil

		exist, err := s.repo.Exist(ctx, shared.FilterByID(bookingID, model.FieldID, model.TableName))
		if err != nil {
			return fmt.Errorf("failed to check booking existence: %w", err)
		}

		if exist {
			res = outcome.Conflict("booking %s already exists", bookingID)

			return nil
		}

		room, err := s.rooms.GetForUpdate(ctx, shared.FilterByID(draft.RoomID, roomModel.FieldID, roomModel.TableName))
		if err != nil {
			return fmt.Errorf("failed to lock room: %w", err)
		}

		now := timezone.Now()

		switch {
		case room.ID == constant.Empty:
			res = outcome.NotFound("room %s not found", draft.RoomID)

			return nil
		case room.Claimable(draft.HolderID, now):
		case room.Status == roomModel.StatusTempLocked:
			res = outcome.Conflict("room %s is held by another session", draft.RoomID)

			return nil
		default:
			res = outcome.InvalidState("room %s is %s", draft.RoomID, room.Status)

			return nil
		}

		price, rejected, err := s.price(ctx, draft, room.RoomTypeCode)
		if err != nil || !rejected.Success {
			res = rejected

			return err
		}

		booking := s.newBooking(ctx, draft, bookingID, price, holderHash, checkInNow, now)
		roomStatus := targetRoomStatus(draft.IsOnline, checkInNow)

		if err := s.repo.Insert(ctx, booking); err != nil {
			return fmt.Errorf("failed to insert booking: %w", err)
		}

		fields := map[string]any{
			roomModel.FieldStatus:           roomStatus,
			roomModel.FieldCurrentBookingID: bookingID,
			roomModel.FieldLockedUntil:      gModel.Unset,
			roomModel.FieldLockedBy:         gModel.Unset,
			constant.FieldModifiedAt:        now,
			constant.FieldModifiedBy:        shared.Actor(ctx),
		}

		if err := s.rooms.Update(ctx, fields, shared.FilterByID(room.ID, roomModel.FieldID, roomModel.TableName)); err != nil {
			return fmt.Errorf("failed to update room: %w", err)
		}

		reason := event.ReasonBooked
		if checkInNow {
			reason = event.ReasonCheckIn
		}

		res = outcome.OK(bookingID)
		published = append(published, event.RoomEvent{
			RoomID:         room.ID,
			Status:         string(roomStatus),
			PreviousStatus: string(room.Status),
			BookingID:      bookingID,
			HolderID:       draft.HolderID,
			Reason:         reason,
			At:             now,
		})

		return nil
	})
	if errors.Is(err, gModel.ErrDuplicate) {
		log.Warn().Str("booking", bookingID).Msg("booking id taken by a concurrent insert")

		return outcome.Conflict("booking %s already exists", bookingID), nil
	}

	if err != nil {
		log.Error().Err(err).Str("room", draft.RoomID).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	return s.finish(ctx, res, published), nil
}

// CreateGroup books every room independently. Rooms that fail do not undo
// the ones already booked.
func (s *serviceImpl) CreateGroup(ctx context.Context, draft model.Draft, roomIDs []string, checkInNow bool) (res outcome.Result, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateGroup")
	defer scope.End()
	defer scope.TraceIfError(err)

	if len(roomIDs) == 0 {
		return outcome.Invalid("at least one room is required"), nil
	}

	created := make([]string, 0, len(roomIDs))
	failures := make([]string, 0)

	for _, roomID := range roomIDs {
		single := draft
		single.ID = constant.Empty
		single.RoomID = roomID

		one, err := s.Create(ctx, single, checkInNow)

		switch {
		case err != nil:
			failures = append(failures, fmt.Sprintf("%s: %v", roomID, err))
		case !one.Success:
			failures = append(failures, fmt.Sprintf("%s: %s", roomID, one.Reason))
		default:
			created = append(created, one.Payload)
		}
	}

	payload := strings.Join(created, ",")

	if len(failures) == 0 {
		return outcome.OK(payload), nil
	}

	log.Warn().Int("created", len(created)).Int("failed", len(failures)).Msg("group booking partially failed")

	return outcome.Partial(payload, "booked %d of %d rooms; %s", len(created), len(roomIDs), strings.Join(failures, "; ")), nil
}

func validateDraft(draft model.Draft) outcome.Result {
	switch {
	case strings.TrimSpace(draft.CustomerName) == constant.Empty:
		return outcome.Invalid("customer name is required")
	case strings.TrimSpace(draft.CustomerPhone) == constant.Empty:
		return outcome.Invalid("customer phone is required")
	case !draft.BookingType.Valid():
		return outcome.Invalid("unknown booking type %q", draft.BookingType)
	case !draft.CheckOutExpected.After(draft.CheckIn):
		return outcome.Invalid("expected check-out must be after check-in")
	case draft.PriceOriginal != nil && *draft.PriceOriginal < 0:
		return outcome.Invalid("price must not be negative")
	case draft.Deposit < 0:
		return outcome.Invalid("deposit must not be negative")
	}

	if draft.IsOnline {
		if !draft.PaymentType.Valid() {
			return outcome.Invalid("unknown payment type %q", draft.PaymentType)
		}

		if draft.HolderID == constant.Empty {
			return outcome.Invalid("holder id is required for online bookings")
		}
	}

	return outcome.OK(constant.Empty)
}

// price returns the supplied price or, when absent, the estimate for the
// room type. Online drafts must use a billing mode the rate table enables.
func (s *serviceImpl) price(ctx context.Context, draft model.Draft, roomTypeCode string) (float64, outcome.Result, error) {
	if draft.PriceOriginal != nil && !draft.IsOnline {
		return *draft.PriceOriginal, outcome.OK(constant.Empty), nil
	}

	estimate, err := s.pricing.Estimate(ctx, roomTypeCode, draft.CheckIn, draft.CheckOutExpected, draft.BookingType)
	if err != nil {
		if failure.GetCode(err) == http.StatusNotFound {
			return 0, outcome.Invalid("room type %s has no pricing", roomTypeCode), nil
		}

		return 0, outcome.Result{}, fmt.Errorf("failed to estimate price: %w", err)
	}

	if draft.IsOnline && !estimate.Enabled {
		return 0, outcome.Invalid("%s booking is not offered for room type %s", draft.BookingType, roomTypeCode), nil
	}

	if estimate.Price < 0 {
		return 0, outcome.Invalid("price must not be negative"), nil
	}

	return estimate.Price, outcome.OK(constant.Empty), nil
}

func (s *serviceImpl) newBooking(ctx context.Context, draft model.Draft, id string, price float64, holderHash string, checkInNow bool, now time.Time) model.Booking {
	status := model.StatusConfirmed
	if checkInNow {
		status = model.StatusCheckedIn
	}

	booking := model.Booking{
		ID:               id,
		RoomID:           draft.RoomID,
		CustomerName:     strings.TrimSpace(draft.CustomerName),
		CustomerPhone:    strings.TrimSpace(draft.CustomerPhone),
		CustomerType:     draft.CustomerType,
		BookingType:      draft.BookingType,
		Status:           status,
		CheckIn:          draft.CheckIn,
		CheckOutExpected: draft.CheckOutExpected,
		PriceOriginal:    price,
		Deposit:          draft.Deposit,
		PaymentMethod:    draft.PaymentMethod,
		Note:             draft.Note,
		Metadata:         gModel.NewMetadata(shared.Actor(ctx), now),
	}

	if draft.IsOnline {
		booking.IsOnline = true
		booking.OnlinePaymentType = draft.PaymentType
		booking.OnlinePaymentStatus = model.PaymentStatusPending
		booking.Deposit = Deposit(price, draft.PaymentType, s.cfg.Booking.DepositPercent)
		booking.HolderHash = holderHash
	}

	return booking
}

// Deposit is the amount an online guest transfers up front.
func Deposit(price float64, paymentType model.PaymentType, percent int) float64 {
	if paymentType == model.PaymentTypeFull {
		return price
	}

	return math.Floor(price * float64(percent) / 100) //nolint:mnd
}

func targetRoomStatus(isOnline, checkInNow bool) roomModel.Status {
	switch {
	case checkInNow:
		return roomModel.StatusOccupied
	case isOnline:
		return roomModel.StatusPendingPayment
	default:
		return roomModel.StatusReserved
	}
}

// finish logs rejections and publishes the committed room events.
func (s *serviceImpl) finish(ctx context.Context, res outcome.Result, published []event.RoomEvent) outcome.Result {
	if !res.Success {
		log.Warn().Str("kind", string(res.Kind)).Msg(res.Reason)
	}

	if len(published) > 0 {
		s.publisher.Publish(ctx, published...)
	}

	return res
}
