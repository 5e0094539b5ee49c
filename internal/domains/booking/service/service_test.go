package service_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"innkeep/config"
	"innkeep/infras/otel/mocks"
	s3Mocks "innkeep/infras/s3/mocks"
	bookingMocks "innkeep/internal/domains/booking/mocks"
	"innkeep/internal/domains/booking/model"
	"innkeep/internal/domains/booking/model/dto"
	"innkeep/internal/domains/booking/service"
	pricingMocks "innkeep/internal/domains/pricing/mocks"
	pricingModel "innkeep/internal/domains/pricing/model"
	roomMocks "innkeep/internal/domains/room/mocks"
	roomModel "innkeep/internal/domains/room/model"
	orderMocks "innkeep/internal/domains/serviceorder/mocks"
	orderModel "innkeep/internal/domains/serviceorder/model"
	gDto "innkeep/shared/dto"
	"innkeep/shared/event"
	eventMocks "innkeep/shared/event/mocks"
	"innkeep/shared/failure"
	gModel "innkeep/shared/model"
	"innkeep/shared/outcome"
	"innkeep/shared/secret"
	"innkeep/shared/timezone"
	txMocks "innkeep/shared/transaction/mocks"
)

func runInline(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func ptr[T any](v T) *T {
	return &v
}

type bookingFixture struct {
	repo       *bookingMocks.MockBooking
	rooms      *roomMocks.MockRoom
	orders     *orderMocks.MockServiceOrder
	pricing    *pricingMocks.MockPricing
	transactor *txMocks.MockTransactor
	publisher  *eventMocks.MockPublisher
	store      *s3Mocks.MockObjectStore
	svc        service.Booking
}

func newBookingFixture(ctrl *gomock.Controller) bookingFixture {
	cfg := &config.Config{}
	cfg.Booking.DepositPercent = 50

	fixture := bookingFixture{
		repo:       bookingMocks.NewMockBooking(ctrl),
		rooms:      roomMocks.NewMockRoom(ctrl),
		orders:     orderMocks.NewMockServiceOrder(ctrl),
		pricing:    pricingMocks.NewMockPricing(ctrl),
		transactor: txMocks.NewMockTransactor(ctrl),
		publisher:  eventMocks.NewMockPublisher(ctrl),
		store:      s3Mocks.NewMockObjectStore(ctrl),
	}

	fixture.svc = service.New(fixture.repo, fixture.rooms, fixture.orders, fixture.pricing,
		fixture.transactor, fixture.publisher, fixture.store, cfg, mocks.NewOtel())

	return fixture
}

func walkInDraft(roomID string) model.Draft {
	checkIn := time.Date(2024, 5, 1, 14, 0, 0, 0, time.UTC)

	return model.Draft{
		RoomID:           roomID,
		CustomerName:     "Budi",
		CustomerPhone:    "08123456789",
		BookingType:      pricingModel.BookingTypeDaily,
		CheckIn:          checkIn,
		CheckOutExpected: checkIn.Add(24 * time.Hour),
		PriceOriginal:    ptr(350000.0),
	}
}

func TestDeposit(t *testing.T) {
	tests := []struct {
		name        string
		price       float64
		paymentType model.PaymentType
		percent     int
		want        float64
	}{
		{name: "full payment", price: 350000, paymentType: model.PaymentTypeFull, percent: 50, want: 350000},
		{name: "half deposit", price: 350000, paymentType: model.PaymentTypeDeposit, percent: 50, want: 175000},
		{name: "deposit rounds down", price: 99999, paymentType: model.PaymentTypeDeposit, percent: 50, want: 49999},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, service.Deposit(tt.price, tt.paymentType, tt.percent))
		})
	}
}

func TestBookingService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newBookingFixture(ctrl)

	tests := []struct {
		name       string
		draft      func() model.Draft
		checkInNow bool
		setupMock  func()
		wantKind   outcome.Kind
		wantErr    bool
	}{
		{
			name:  "walk-in reservation",
			draft: func() model.Draft { return walkInDraft("101") },
			setupMock: func() {
				f.transactor.EXPECT().WithinTransaction(gomock.Any(), gomock.Any()).DoAndReturn(runInline)
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.rooms.EXPECT().GetForUpdate(gomock.Any(), gomock.Any()).
					Return(roomModel.Room{ID: "101", RoomTypeCode: "DLX", Status: roomModel.StatusAvailable}, nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, booking model.Booking) error {
						assert.Equal(t, model.StatusConfirmed, booking.Status)
						assert.Equal(t, float64(350000), booking.PriceOriginal)
						assert.False(t, booking.IsOnline)

						return nil
					})
				f.rooms.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, roomModel.StatusReserved, fields[roomModel.FieldStatus])
						assert.True(t, gModel.IsUnset(fields[roomModel.FieldLockedBy]))

						return nil
					})
				f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).
					Do(func(_ context.Context, events ...event.RoomEvent) {
						assert.Equal(t, event.ReasonBooked, events[0].Reason)
					})
			},
		},
		{
			name:       "walk-in check in now",
			draft:      func() model.Draft { return walkInDraft("101") },
			checkInNow: true,
			setupMock: func() {
				f.transactor.EXPECT().WithinTransaction(gomock.Any(), gomock.Any()).DoAndReturn(runInline)
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.rooms.EXPECT().GetForUpdate(gomock.Any(), gomock.Any()).
					Return(roomModel.Room{ID: "101", Status: roomModel.StatusAvailable}, nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, booking model.Booking) error {
						assert.Equal(t, model.StatusCheckedIn, booking.Status)

						return nil
					})
				f.rooms.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, roomModel.StatusOccupied, fields[roomModel.FieldStatus])

						return nil
					})
				f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any())
			},
		},
		{
			name: "online booking priced from rate table",
			draft: func() model.Draft {
				draft := walkInDraft("101")
				draft.PriceOriginal = ptr(1.0)
				draft.IsOnline = true
				draft.PaymentType = model.PaymentTypeDeposit
				draft.HolderID = "guest-1"

				return draft
			},
			setupMock: func() {
				f.transactor.EXPECT().WithinTransaction(gomock.Any(), gomock.Any()).DoAndReturn(runInline)
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.rooms.EXPECT().GetForUpdate(gomock.Any(), gomock.Any()).Return(roomModel.Room{
					ID:           "101",
					RoomTypeCode: "DLX",
					Status:       roomModel.StatusTempLocked,
					LockedBy:     ptr("guest-1"),
					LockedUntil:  ptr(time.Now().Add(time.Hour)),
				}, nil)
				f.pricing.EXPECT().Estimate(gomock.Any(), "DLX", gomock.Any(), gomock.Any(), pricingModel.BookingTypeDaily).
					Return(pricingModel.Estimate{Price: 400000, Tier: pricingModel.TierRegular, Enabled: true}, nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, booking model.Booking) error {
						assert.Equal(t, float64(400000), booking.PriceOriginal)
						assert.Equal(t, float64(200000), booking.Deposit)
						assert.Equal(t, model.PaymentStatusPending, booking.OnlinePaymentStatus)
						assert.NoError(t, secret.Match("guest-1", booking.HolderHash))

						return nil
					})
				f.rooms.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, roomModel.StatusPendingPayment, fields[roomModel.FieldStatus])

						return nil
					})
				f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any())
			},
		},
		{
			name: "online booking with disabled mode",
			draft: func() model.Draft {
				draft := walkInDraft("101")
				draft.IsOnline = true
				draft.PaymentType = model.PaymentTypeFull
				draft.HolderID = "guest-1"

				return draft
			},
			setupMock: func() {
				f.transactor.EXPECT().WithinTransaction(gomock.Any(), gomock.Any()).DoAndReturn(runInline)
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.rooms.EXPECT().GetForUpdate(gomock.Any(), gomock.Any()).
					Return(roomModel.Room{ID: "101", RoomTypeCode: "STD", Status: roomModel.StatusAvailable}, nil)
				f.pricing.EXPECT().Estimate(gomock.Any(), "STD", gomock.Any(), gomock.Any(), gomock.Any()).
					Return(pricingModel.Estimate{Price: 300000, Enabled: false}, nil)
			},
			wantKind: outcome.KindValidationError,
		},
		{
			name: "missing price and unknown room type",
			draft: func() model.Draft {
				draft := walkInDraft("101")
				draft.PriceOriginal = nil

				return draft
			},
			setupMock: func() {
				f.transactor.EXPECT().WithinTransaction(gomock.Any(), gomock.Any()).DoAndReturn(runInline)
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.rooms.EXPECT().GetForUpdate(gomock.Any(), gomock.Any()).
					Return(roomModel.Room{ID: "101", RoomTypeCode: "GONE", Status: roomModel.StatusAvailable}, nil)
				f.pricing.EXPECT().Estimate(gomock.Any(), "GONE", gomock.Any(), gomock.Any(), gomock.Any()).
					Return(pricingModel.Estimate{}, failure.NotFound("room type GONE not found"))
			},
			wantKind: outcome.KindValidationError,
		},
		{
			name:  "room held by another session",
			draft: func() model.Draft { return walkInDraft("101") },
			setupMock: func() {
				f.transactor.EXPECT().WithinTransaction(gomock.Any(), gomock.Any()).DoAndReturn(runInline)
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.rooms.EXPECT().GetForUpdate(gomock.Any(), gomock.Any()).Return(roomModel.Room{
					ID:          "101",
					Status:      roomModel.StatusTempLocked,
					LockedBy:    ptr("guest-2"),
					LockedUntil: ptr(time.Now().Add(time.Hour)),
				}, nil)
			},
			wantKind: outcome.KindConflict,
		},
		{
			name:  "room occupied",
			draft: func() model.Draft { return walkInDraft("101") },
			setupMock: func() {
				f.transactor.EXPECT().WithinTransaction(gomock.Any(), gomock.Any()).DoAndReturn(runInline)
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.rooms.EXPECT().GetForUpdate(gomock.Any(), gomock.Any()).
					Return(roomModel.Room{ID: "101", Status: roomModel.StatusOccupied}, nil)
			},
			wantKind: outcome.KindInvalidState,
		},
		{
			name:  "room not found",
			draft: func() model.Draft { return walkInDraft("999") },
			setupMock: func() {
				f.transactor.EXPECT().WithinTransaction(gomock.Any(), gomock.Any()).DoAndReturn(runInline)
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.rooms.EXPECT().GetForUpdate(gomock.Any(), gomock.Any()).Return(roomModel.Room{}, nil)
			},
			wantKind: outcome.KindNotFound,
		},
		{
			name: "duplicate booking id",
			draft: func() model.Draft {
				draft := walkInDraft("101")
				draft.ID = "bk-1"

				return draft
			},
			setupMock: func() {
				f.transactor.EXPECT().WithinTransaction(gomock.Any(), gomock.Any()).DoAndReturn(runInline)
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantKind: outcome.KindConflict,
		},
		{
			name: "checkout before check-in",
			draft: func() model.Draft {
				draft := walkInDraft("101")
				draft.CheckOutExpected = draft.CheckIn.Add(-time.Hour)

				return draft
			},
			setupMock: func() {},
			wantKind:  outcome.KindValidationError,
		},
		{
			name:  "insert failure rolls back",
			draft: func() model.Draft { return walkInDraft("101") },
			setupMock: func() {
				f.transactor.EXPECT().WithinTransaction(gomock.Any(), gomock.Any()).DoAndReturn(runInline)
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.rooms.EXPECT().GetForUpdate(gomock.Any(), gomock.Any()).
					Return(roomModel.Room{ID: "101", Status: roomModel.StatusAvailable}, nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("db down"))
			},
			wantErr: true,
		},
		{
			name:  "concurrent insert with same id rolls back",
			draft: func() model.Draft { return walkInDraft("101") },
			setupMock: func() {
				f.transactor.EXPECT().WithinTransaction(gomock.Any(), gomock.Any()).
					DoAndReturn(func(ctx context.Context, fn func(ctx context.Context) error) error {
						err := fn(ctx)
						assert.ErrorIs(t, err, gModel.ErrDuplicate)

						return fmt.Errorf("transaction failed: %w", err)
					})
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.rooms.EXPECT().GetForUpdate(gomock.Any(), gomock.Any()).
					Return(roomModel.Room{ID: "101", Status: roomModel.StatusAvailable}, nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
					Return(fmt.Errorf("failed to insert data (booking): %w", gModel.ErrDuplicate))
			},
			wantKind: outcome.KindConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := f.svc.Create(context.Background(), tt.draft(), tt.checkInNow)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)

			if tt.wantKind != "" {
				assert.False(t, res.Success)
				assert.Equal(t, tt.wantKind, res.Kind)

				return
			}

			assert.True(t, res.Success)
			assert.NotEmpty(t, res.Payload)
		})
	}
}

func TestBookingService_CreateGroup(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newBookingFixture(ctrl)

	t.Run("one room fails", func(t *testing.T) {
		f.transactor.EXPECT().WithinTransaction(gomock.Any(), gomock.Any()).DoAndReturn(runInline).Times(2)
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil).Times(2)
		gomock.InOrder(
			f.rooms.EXPECT().GetForUpdate(gomock.Any(), gomock.Any()).
				Return(roomModel.Room{ID: "101", Status: roomModel.StatusAvailable}, nil),
			f.rooms.EXPECT().GetForUpdate(gomock.Any(), gomock.Any()).
				Return(roomModel.Room{ID: "102", Status: roomModel.StatusOccupied}, nil),
		)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
		f.rooms.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any())

		res, err := f.svc.CreateGroup(context.Background(), walkInDraft(""), []string{"101", "102"}, false)

		assert.NoError(t, err)
		assert.False(t, res.Success)
		assert.Equal(t, outcome.KindPartialFailure, res.Kind)
		assert.NotEmpty(t, res.Payload)
		assert.Contains(t, res.Reason, "102")
		assert.Equal(t, http.StatusMultiStatus, failure.GetCode(res.Err()))
	})

	t.Run("no rooms", func(t *testing.T) {
		res, err := f.svc.CreateGroup(context.Background(), walkInDraft(""), nil, false)

		assert.NoError(t, err)
		assert.Equal(t, outcome.KindValidationError, res.Kind)
	})
}

func TestBookingService_CheckInReserved(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newBookingFixture(ctrl)
	planned := time.Date(2024, 5, 1, 14, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		setupMock func()
		wantKind  outcome.Kind
	}{
		{
			name: "first check-in keeps the planned time",
			setupMock: func() {
				f.transactor.EXPECT().WithinTransaction(gomock.Any(), gomock.Any()).DoAndReturn(runInline)
				f.rooms.EXPECT().GetForUpdate(gomock.Any(), gomock.Any()).
					Return(roomModel.Room{ID: "101", Status: roomModel.StatusReserved, CurrentBookingID: ptr("bk-1")}, nil)
				f.repo.EXPECT().GetForUpdate(gomock.Any(), gomock.Any()).
					Return(model.Booking{ID: "bk-1", RoomID: "101", Status: model.StatusConfirmed, CheckIn: planned}, nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, model.StatusCheckedIn, fields[model.FieldStatus])
						assert.Equal(t, planned, fields[model.FieldCheckInReserved])

						return nil
					})
				f.rooms.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, roomModel.StatusOccupied, fields[roomModel.FieldStatus])
						assert.NotContains(t, fields, roomModel.FieldCurrentBookingID)

						return nil
					})
				f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any())
			},
		},
		{
			name: "reserved time already recorded",
			setupMock: func() {
				f.transactor.EXPECT().WithinTransaction(gomock.Any(), gomock.Any()).DoAndReturn(runInline)
				f.rooms.EXPECT().GetForUpdate(gomock.Any(), gomock.Any()).
					Return(roomModel.Room{ID: "101", Status: roomModel.StatusReserved, CurrentBookingID: ptr("bk-1")}, nil)
				f.repo.EXPECT().GetForUpdate(gomock.Any(), gomock.Any()).Return(model.Booking{
					ID: "bk-1", Status: model.StatusConfirmed, CheckIn: planned, CheckInReserved: ptr(planned.Add(-time.Hour)),
				}, nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.NotContains(t, fields, model.FieldCheckInReserved)

						return nil
					})
				f.rooms.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any())
			},
		},
		{
			name: "room not reserved",
			setupMock: func() {
				f.transactor.EXPECT().WithinTransaction(gomock.Any(), gomock.Any()).DoAndReturn(runInline)
				f.rooms.EXPECT().GetForUpdate(gomock.Any(), gomock.Any()).
					Return(roomModel.Room{ID: "101", Status: roomModel.StatusAvailable}, nil)
			},
			wantKind: outcome.KindInvalidState,
		},
		{
			name: "room without booking",
			setupMock: func() {
				f.transactor.EXPECT().WithinTransaction(gomock.Any(), gomock.Any()).DoAndReturn(runInline)
				f.rooms.EXPECT().GetForUpdate(gomock.Any(), gomock.Any()).
					Return(roomModel.Room{ID: "101", Status: roomModel.StatusReserved}, nil)
			},
			wantKind: outcome.KindNotFound,
		},
		{
			name: "booking cancelled",
			setupMock: func() {
				f.transactor.EXPECT().WithinTransaction(gomock.Any(), gomock.Any()).DoAndReturn(runInline)
				f.rooms.EXPECT().GetForUpdate(gomock.Any(), gomock.Any()).
					Return(roomModel.Room{ID: "101", Status: roomModel.StatusReserved, CurrentBookingID: ptr("bk-1")}, nil)
				f.repo.EXPECT().GetForUpdate(gomock.Any(), gomock.Any()).
					Return(model.Booking{ID: "bk-1", Status: model.StatusCancelled}, nil)
			},
			wantKind: outcome.KindInvalidState,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := f.svc.CheckInReserved(context.Background(), "101")

			assert.NoError(t, err)

			if tt.wantKind != "" {
				assert.Equal(t, tt.wantKind, res.Kind)

				return
			}

			assert.True(t, res.Success)
			assert.Equal(t, "bk-1", res.Payload)
		})
	}
}

func TestBookingService_CheckInReserved_AfterExpectedCheckout(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newBookingFixture(ctrl)
	planned := time.Date(2024, 5, 1, 14, 0, 0, 0, time.UTC)
	arrival := planned.Add(90 * time.Minute)

	defer timezone.Freeze(arrival)()

	f.transactor.EXPECT().WithinTransaction(gomock.Any(), gomock.Any()).DoAndReturn(runInline)
	f.rooms.EXPECT().GetForUpdate(gomock.Any(), gomock.Any()).
		Return(roomModel.Room{ID: "101", Status: roomModel.StatusReserved, CurrentBookingID: ptr("bk-1")}, nil)
	f.repo.EXPECT().GetForUpdate(gomock.Any(), gomock.Any()).Return(model.Booking{
		ID:               "bk-1",
		RoomID:           "101",
		Status:           model.StatusConfirmed,
		BookingType:      pricingModel.BookingTypeHourly,
		CheckIn:          planned,
		CheckOutExpected: planned.Add(time.Hour),
	}, nil)
	f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
			checkIn, ok := fields[model.FieldCheckIn].(time.Time)
			assert.True(t, ok)
			assert.True(t, checkIn.Equal(arrival))
			assert.Equal(t, planned, fields[model.FieldCheckInReserved])

			return nil
		})
	f.rooms.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any())

	res, err := f.svc.CheckInReserved(context.Background(), "101")

	assert.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "bk-1", res.Payload)
}

func TestBookingService_Checkout(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newBookingFixture(ctrl)

	req := dto.CheckoutRequest{RoomID: "101", FinalAmount: 420000, ServiceFee: 10000, PaymentMethod: "cash"}
	occupied := roomModel.Room{ID: "101", Status: roomModel.StatusOccupied, CurrentBookingID: ptr("bk-1")}

	tests := []struct {
		name      string
		req       dto.CheckoutRequest
		setupMock func()
		wantKind  outcome.Kind
		wantErr   bool
	}{
		{
			name: "settles the stay",
			req:  req,
			setupMock: func() {
				f.transactor.EXPECT().WithinTransaction(gomock.Any(), gomock.Any()).DoAndReturn(runInline)
				f.rooms.EXPECT().GetForUpdate(gomock.Any(), gomock.Any()).Return(occupied, nil)
				f.repo.EXPECT().GetForUpdate(gomock.Any(), gomock.Any()).
					Return(model.Booking{ID: "bk-1", RoomID: "101", Status: model.StatusCheckedIn}, nil)
				f.orders.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]orderModel.ServiceOrder{{TotalValue: 30000}, {TotalValue: 15000}}, nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, model.StatusCompleted, fields[model.FieldStatus])
						assert.Equal(t, float64(420000), fields[model.FieldTotalAmount])
						assert.Equal(t, float64(45000), fields[model.FieldOrderServiceTotal])
						assert.NotNil(t, fields[model.FieldCheckOutActual])

						return nil
					})
				f.rooms.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, roomModel.StatusDirty, fields[roomModel.FieldStatus])
						assert.True(t, gModel.IsUnset(fields[roomModel.FieldCurrentBookingID]))

						return nil
					})
				f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any())
			},
		},
		{
			name: "room mismatch",
			req:  dto.CheckoutRequest{RoomID: "102", PaymentMethod: "cash"},
			setupMock: func() {
				f.transactor.EXPECT().WithinTransaction(gomock.Any(), gomock.Any()).DoAndReturn(runInline)
				f.rooms.EXPECT().GetForUpdate(gomock.Any(), gomock.Any()).Return(roomModel.Room{ID: "102", Status: roomModel.StatusOccupied}, nil)
				f.repo.EXPECT().GetForUpdate(gomock.Any(), gomock.Any()).
					Return(model.Booking{ID: "bk-1", RoomID: "101", Status: model.StatusCheckedIn}, nil)
			},
			wantKind: outcome.KindValidationError,
		},
		{
			name: "not checked in",
			req:  req,
			setupMock: func() {
				f.transactor.EXPECT().WithinTransaction(gomock.Any(), gomock.Any()).DoAndReturn(runInline)
				f.rooms.EXPECT().GetForUpdate(gomock.Any(), gomock.Any()).Return(occupied, nil)
				f.repo.EXPECT().GetForUpdate(gomock.Any(), gomock.Any()).
					Return(model.Booking{ID: "bk-1", RoomID: "101", Status: model.StatusConfirmed}, nil)
			},
			wantKind: outcome.KindInvalidState,
		},
		{
			name: "room linked to another booking",
			req:  req,
			setupMock: func() {
				f.transactor.EXPECT().WithinTransaction(gomock.Any(), gomock.Any()).DoAndReturn(runInline)
				f.rooms.EXPECT().GetForUpdate(gomock.Any(), gomock.Any()).
					Return(roomModel.Room{ID: "101", Status: roomModel.StatusOccupied, CurrentBookingID: ptr("bk-9")}, nil)
				f.repo.EXPECT().GetForUpdate(gomock.Any(), gomock.Any()).
					Return(model.Booking{ID: "bk-1", RoomID: "101", Status: model.StatusCheckedIn}, nil)
			},
			wantKind: outcome.KindInvalidState,
		},
		{
			name: "booking not found",
			req:  req,
			setupMock: func() {
				f.transactor.EXPECT().WithinTransaction(gomock.Any(), gomock.Any()).DoAndReturn(runInline)
				f.rooms.EXPECT().GetForUpdate(gomock.Any(), gomock.Any()).Return(occupied, nil)
				f.repo.EXPECT().GetForUpdate(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)
			},
			wantKind: outcome.KindNotFound,
		},
		{
			name:      "negative amount",
			req:       dto.CheckoutRequest{RoomID: "101", FinalAmount: -1, PaymentMethod: "cash"},
			setupMock: func() {},
			wantKind:  outcome.KindValidationError,
		},
		{
			name: "orders lookup failure",
			req:  req,
			setupMock: func() {
				f.transactor.EXPECT().WithinTransaction(gomock.Any(), gomock.Any()).DoAndReturn(runInline)
				f.rooms.EXPECT().GetForUpdate(gomock.Any(), gomock.Any()).Return(occupied, nil)
				f.repo.EXPECT().GetForUpdate(gomock.Any(), gomock.Any()).
					Return(model.Booking{ID: "bk-1", RoomID: "101", Status: model.StatusCheckedIn}, nil)
				f.orders.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := f.svc.Checkout(context.Background(), "bk-1", tt.req)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)

			if tt.wantKind != "" {
				assert.Equal(t, tt.wantKind, res.Kind)

				return
			}

			assert.True(t, res.Success)
		})
	}
}

func TestBookingService_ConfirmOnlinePayment(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newBookingFixture(ctrl)

	online := model.Booking{
		ID:                  "bk-1",
		RoomID:              "101",
		Status:              model.StatusConfirmed,
		IsOnline:            true,
		OnlinePaymentStatus: model.PaymentStatusWaitingConfirm,
	}

	tests := []struct {
		name      string
		setupMock func()
		wantKind  outcome.Kind
	}{
		{
			name: "room moves to reserved",
			setupMock: func() {
				f.transactor.EXPECT().WithinTransaction(gomock.Any(), gomock.Any()).DoAndReturn(runInline)
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(online, nil)
				f.rooms.EXPECT().GetForUpdate(gomock.Any(), gomock.Any()).
					Return(roomModel.Room{ID: "101", Status: roomModel.StatusPendingPayment, CurrentBookingID: ptr("bk-1")}, nil)
				f.repo.EXPECT().GetForUpdate(gomock.Any(), gomock.Any()).Return(online, nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, model.PaymentStatusConfirmed, fields[model.FieldOnlinePaymentStatus])

						return nil
					})
				f.rooms.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, roomModel.StatusReserved, fields[roomModel.FieldStatus])

						return nil
					})
				f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).
					Do(func(_ context.Context, events ...event.RoomEvent) {
						assert.Equal(t, event.ReasonPaymentOK, events[0].Reason)
					})
			},
		},
		{
			name: "room moved on, payment still confirmed",
			setupMock: func() {
				f.transactor.EXPECT().WithinTransaction(gomock.Any(), gomock.Any()).DoAndReturn(runInline)
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(online, nil)
				f.rooms.EXPECT().GetForUpdate(gomock.Any(), gomock.Any()).
					Return(roomModel.Room{ID: "101", Status: roomModel.StatusAvailable}, nil)
				f.repo.EXPECT().GetForUpdate(gomock.Any(), gomock.Any()).Return(online, nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "walk-in booking",
			setupMock: func() {
				walkIn := model.Booking{ID: "bk-1", RoomID: "101", Status: model.StatusConfirmed}

				f.transactor.EXPECT().WithinTransaction(gomock.Any(), gomock.Any()).DoAndReturn(runInline)
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(walkIn, nil)
				f.rooms.EXPECT().GetForUpdate(gomock.Any(), gomock.Any()).Return(roomModel.Room{ID: "101"}, nil)
				f.repo.EXPECT().GetForUpdate(gomock.Any(), gomock.Any()).Return(walkIn, nil)
			},
			wantKind: outcome.KindInvalidState,
		},
		{
			name: "cancelled booking",
			setupMock: func() {
				cancelled := online
				cancelled.Status = model.StatusCancelled

				f.transactor.EXPECT().WithinTransaction(gomock.Any(), gomock.Any()).DoAndReturn(runInline)
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(cancelled, nil)
				f.rooms.EXPECT().GetForUpdate(gomock.Any(), gomock.Any()).Return(roomModel.Room{ID: "101"}, nil)
				f.repo.EXPECT().GetForUpdate(gomock.Any(), gomock.Any()).Return(cancelled, nil)
			},
			wantKind: outcome.KindInvalidState,
		},
		{
			name: "unknown booking",
			setupMock: func() {
				f.transactor.EXPECT().WithinTransaction(gomock.Any(), gomock.Any()).DoAndReturn(runInline)
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)
			},
			wantKind: outcome.KindNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := f.svc.ConfirmOnlinePayment(context.Background(), "bk-1")

			assert.NoError(t, err)

			if tt.wantKind != "" {
				assert.Equal(t, tt.wantKind, res.Kind)

				return
			}

			assert.True(t, res.Success)
		})
	}
}

func TestBookingService_Cancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newBookingFixture(ctrl)

	tests := []struct {
		name      string
		booking   model.Booking
		wantWrite bool
		wantKind  outcome.Kind
	}{
		{name: "confirmed booking", booking: model.Booking{ID: "bk-1", RoomID: "101", Status: model.StatusConfirmed}, wantWrite: true},
		{name: "already cancelled", booking: model.Booking{ID: "bk-1", Status: model.StatusCancelled}},
		{name: "checked in", booking: model.Booking{ID: "bk-1", Status: model.StatusCheckedIn}, wantKind: outcome.KindInvalidState},
		{name: "completed", booking: model.Booking{ID: "bk-1", Status: model.StatusCompleted}, wantKind: outcome.KindInvalidState},
		{name: "missing", booking: model.Booking{}, wantKind: outcome.KindNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f.transactor.EXPECT().WithinTransaction(gomock.Any(), gomock.Any()).DoAndReturn(runInline)
			f.repo.EXPECT().GetForUpdate(gomock.Any(), gomock.Any()).Return(tt.booking, nil)

			if tt.wantWrite {
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, model.StatusCancelled, fields[model.FieldStatus])

						return nil
					})
			}

			res, err := f.svc.Cancel(context.Background(), "bk-1")

			assert.NoError(t, err)

			if tt.wantKind != "" {
				assert.Equal(t, tt.wantKind, res.Kind)

				return
			}

			assert.True(t, res.Success)
		})
	}
}

func TestBookingService_SubmitPaymentProof(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newBookingFixture(ctrl)

	hash, err := secret.Seal("guest-1")
	assert.NoError(t, err)

	online := model.Booking{
		ID:                  "bk-1",
		Status:              model.StatusConfirmed,
		IsOnline:            true,
		OnlinePaymentStatus: model.PaymentStatusPending,
		HolderHash:          hash,
	}

	image := dto.PaymentProofRequest{FileName: "transfer.png", File: "data:image/png;base64,iVBORw0KGgo="}
	const uploaded = "https://bucket.example.com/payment-proofs/bk-1/x.png"

	tests := []struct {
		name      string
		holderID  string
		req       dto.PaymentProofRequest
		setupMock func()
		wantKind  outcome.Kind
		wantCode  int
	}{
		{
			name:     "stored and waiting for review",
			holderID: "guest-1",
			req:      image,
			setupMock: func() {
				previous := online
				previous.PaymentProofURL = "https://bucket.example.com/payment-proofs/bk-1/old.png"

				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(online, nil)
				f.store.EXPECT().Put(gomock.Any(), gomock.Any(), "image/png", gomock.Any()).Return(uploaded, nil)
				f.transactor.EXPECT().WithinTransaction(gomock.Any(), gomock.Any()).DoAndReturn(runInline)
				f.repo.EXPECT().GetForUpdate(gomock.Any(), gomock.Any()).Return(previous, nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, model.PaymentStatusWaitingConfirm, fields[model.FieldOnlinePaymentStatus])
						assert.Equal(t, uploaded, fields[model.FieldPaymentProofURL])

						return nil
					})
				f.store.EXPECT().KeyFromURL(previous.PaymentProofURL).Return("payment-proofs/bk-1/old.png")
				f.store.EXPECT().Delete(gomock.Any(), "payment-proofs/bk-1/old.png").Return(nil)
			},
		},
		{
			name:      "not an image",
			holderID:  "guest-1",
			req:       dto.PaymentProofRequest{FileName: "note.txt", File: "data:text/plain;base64,aGVsbG8="},
			setupMock: func() {},
			wantKind:  outcome.KindValidationError,
		},
		{
			name:     "other session",
			holderID: "guest-2",
			req:      image,
			setupMock: func() {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(online, nil)
			},
			wantKind: outcome.KindForbidden,
		},
		{
			name:     "already confirmed",
			holderID: "guest-1",
			req:      image,
			setupMock: func() {
				confirmed := online
				confirmed.OnlinePaymentStatus = model.PaymentStatusConfirmed

				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(confirmed, nil)
			},
			wantKind: outcome.KindInvalidState,
		},
		{
			name:     "cancelled while uploading",
			holderID: "guest-1",
			req:      image,
			setupMock: func() {
				cancelled := online
				cancelled.Status = model.StatusCancelled

				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(online, nil)
				f.store.EXPECT().Put(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(uploaded, nil)
				f.transactor.EXPECT().WithinTransaction(gomock.Any(), gomock.Any()).DoAndReturn(runInline)
				f.repo.EXPECT().GetForUpdate(gomock.Any(), gomock.Any()).Return(cancelled, nil)
				f.store.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantKind: outcome.KindInvalidState,
		},
		{
			name:     "write failure removes upload",
			holderID: "guest-1",
			req:      image,
			setupMock: func() {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(online, nil)
				f.store.EXPECT().Put(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(uploaded, nil)
				f.transactor.EXPECT().WithinTransaction(gomock.Any(), gomock.Any()).DoAndReturn(runInline)
				f.repo.EXPECT().GetForUpdate(gomock.Any(), gomock.Any()).Return(online, nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("db down"))
				f.store.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := f.svc.SubmitPaymentProof(context.Background(), "bk-1", tt.holderID, tt.req)
			if tt.wantCode != 0 {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)

			if tt.wantKind != "" {
				assert.Equal(t, tt.wantKind, res.Kind)

				return
			}

			assert.True(t, res.Success)
			assert.Equal(t, uploaded, res.Payload)
		})
	}
}

func TestBookingService_FindCustomerByPhone(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newBookingFixture(ctrl)

	tests := []struct {
		name      string
		phone     string
		setupMock func()
		wantCode  int
	}{
		{
			name:  "latest booking",
			phone: "0812",
			setupMock: func() {
				f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.Booking, error) {
						assert.Equal(t, 1, params.Limit)
						assert.Equal(t, gDto.SortDirDesc, params.SortDir)

						return []model.Booking{{CustomerName: "Budi", CustomerPhone: "0812", CustomerType: "regular"}}, nil
					})
			},
		},
		{
			name:      "phone too short",
			phone:     "08",
			setupMock: func() {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:  "unknown phone",
			phone: "0899",
			setupMock: func() {
				f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, nil)
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := f.svc.FindCustomerByPhone(context.Background(), tt.phone)
			if tt.wantCode != 0 {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "Budi", res.Name)
		})
	}
}

func TestBookingService_Queries(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newBookingFixture(ctrl)

	t.Run("confirmed online defaults the limit", func(t *testing.T) {
		f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(2, nil)
		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.Booking, error) {
				assert.Equal(t, dto.DefaultConfirmedLimit, params.Limit)
				assert.Equal(t, model.FieldCheckIn, params.SortBy)

				return []model.Booking{{ID: "bk-1"}, {ID: "bk-2"}}, nil
			})

		res, err := f.svc.ConfirmedOnline(context.Background(), 0)

		assert.NoError(t, err)
		assert.Len(t, res.Bookings, 2)
	})

	t.Run("pending online", func(t *testing.T) {
		f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Booking{{ID: "bk-1", IsOnline: true}}, nil)

		res, err := f.svc.PendingOnline(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, 1, res.TotalData)
		assert.Equal(t, 1, res.TotalPage)
	})

	t.Run("completed rejects inverted range", func(t *testing.T) {
		now := time.Now()

		_, err := f.svc.Completed(context.Background(), now, now.Add(-time.Hour))

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("get unknown booking", func(t *testing.T) {
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)

		_, err := f.svc.Get(context.Background(), "bk-404")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}
