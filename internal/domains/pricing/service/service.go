package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"innkeep/config"
	"innkeep/infras/otel"
	"innkeep/internal/domains/pricing/calculator"
	"innkeep/internal/domains/pricing/model"
	"innkeep/internal/domains/pricing/model/dto"
	"innkeep/internal/domains/pricing/repository"
	roomModel "innkeep/internal/domains/room/model"
	roomRepository "innkeep/internal/domains/room/repository"
	"innkeep/shared"
	"innkeep/shared/cache"
	"innkeep/shared/constant"
	gDto "innkeep/shared/dto"
	"innkeep/shared/failure"
	gModel "innkeep/shared/model"
	"innkeep/shared/timezone"
	"innkeep/shared/transaction"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetRoomType    = "pricing:room-type"
	cacheGetAllRoomType = "pricing:room-types"
	cacheGetCalendar    = "pricing:calendar"
	cacheGetPayment     = "pricing:payment-account"

	fieldDays = "days"
)

var (
	errRoomTypeNotFound = errors.New("room type not found")
	errRoomTypeInUse    = errors.New("room type is assigned to rooms")
)

type Pricing interface {
	Quote(ctx context.Context, req dto.QuoteRequest) (dto.QuoteResponse, error)
	Estimate(ctx context.Context, roomTypeCode string, checkIn, checkOut time.Time, bookingType model.BookingType) (model.Estimate, error)
	UpsertRoomType(ctx context.Context, code string, req dto.UpsertRoomTypeRequest) error
	GetRoomType(ctx context.Context, code string) (dto.RoomTypeResponse, error)
	GetRoomTypes(ctx context.Context) (dto.GetRoomTypesResponse, error)
	GetCalendar(ctx context.Context) (dto.CalendarResponse, error)
	SaveCalendar(ctx context.Context, req dto.CalendarRequest) error
	// DeleteRoomType refuses while any room still carries the type.
	DeleteRoomType(ctx context.Context, code string) error
	// GetPaymentAccount returns the transfer account with a QR for amount.
	GetPaymentAccount(ctx context.Context, amount float64) (dto.PaymentAccountResponse, error)
	SavePaymentAccount(ctx context.Context, req dto.PaymentAccountRequest) error
}

type serviceImpl struct {
	roomTypes       repository.RoomType
	calendar        repository.Calendar
	paymentAccounts repository.PaymentAccount
	rooms           roomRepository.Room
	transactor      transaction.Transactor
	cfg             *config.Config
	cache           cache.RedisCache
	otel            otel.Otel
}

func New(
	roomTypes repository.RoomType,
	calendar repository.Calendar,
	paymentAccounts repository.PaymentAccount,
	rooms roomRepository.Room,
	transactor transaction.Transactor,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Pricing {
	return &serviceImpl{
		roomTypes:       roomTypes,
		calendar:        calendar,
		paymentAccounts: paymentAccounts,
		rooms:           rooms,
		transactor:      transactor,
		cfg:             cfg,
		cache:           cache,
		otel:            otel,
	}
}

func (s *serviceImpl) Quote(ctx context.Context, req dto.QuoteRequest) (res dto.QuoteResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Quote")
	defer scope.End()
	defer scope.TraceIfError(err)

	estimate, err := s.Estimate(ctx, req.RoomTypeCode, req.CheckIn, req.CheckOut, req.BookingType)
	if err != nil {
		return res, err
	}

	return dto.QuoteResponse{
		RoomTypeCode: req.RoomTypeCode,
		BookingType:  req.BookingType,
		Tier:         estimate.Tier,
		Price:        estimate.Price,
		Enabled:      estimate.Enabled,
	}, nil
}

// Estimate prices a stay with the table in force on the check-in day of the
// application timezone.
func (s *serviceImpl) Estimate(ctx context.Context, roomTypeCode string, checkIn, checkOut time.Time, bookingType model.BookingType) (res model.Estimate, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Estimate")
	defer scope.End()
	defer scope.TraceIfError(err)

	roomType, err := s.loadRoomType(ctx, roomTypeCode)
	if err != nil {
		return res, err
	}

	if roomType.Code == constant.Empty {
		return res, failure.NotFound("room type not found") // nolint:wrapcheck
	}

	days, err := s.loadCalendar(ctx)
	if err != nil {
		return res, err
	}

	localCheckIn := timezone.ToAppTime(checkIn)
	rates, tier := calculator.ApplicableRateTable(localCheckIn, roomType, days)

	return model.Estimate{
		Price:   calculator.EstimatedPrice(localCheckIn, timezone.ToAppTime(checkOut), bookingType, rates),
		Tier:    tier,
		Enabled: rates.Enabled(bookingType),
	}, nil
}

func (s *serviceImpl) UpsertRoomType(ctx context.Context, code string, req dto.UpsertRoomTypeRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpsertRoomType")
	defer scope.End()
	defer scope.TraceIfError(err)

	user := shared.Actor(ctx)
	filter := shared.FilterByID(code, model.FieldCode, model.RoomTypeTableName)

	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		current, err := s.roomTypes.GetForUpdate(ctx, filter)
		if err != nil {
			return fmt.Errorf("failed to lock room type: %w", err)
		}

		if current.Code == constant.Empty {
			return s.roomTypes.Insert(ctx, req.ToModel(code, user))
		}

		return s.roomTypes.Update(ctx, req.ToFields(user), filter)
	})
	if err != nil {
		log.Error().Err(err).Str("code", code).Msg("failed to upsert room type")

		return fmt.Errorf("failed to upsert room type: %w", err)
	}

	if err := s.cache.Delete(ctx, shared.CacheKey(cacheGetRoomType, code)); err != nil {
		log.Error().Err(err).Msg("failed to delete room type cache")
	}

	shared.InvalidateCaches(ctx, s.cache, cacheGetAllRoomType)

	return nil
}

func (s *serviceImpl) GetRoomType(ctx context.Context, code string) (res dto.RoomTypeResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetRoomType")
	defer scope.End()
	defer scope.TraceIfError(err)

	roomType, err := s.loadRoomType(ctx, code)
	if err != nil {
		return res, err
	}

	if roomType.Code == constant.Empty {
		return res, failure.NotFound("room type not found") // nolint:wrapcheck
	}

	res.FromModel(roomType)

	return res, nil
}

func (s *serviceImpl) GetRoomTypes(ctx context.Context) (res dto.GetRoomTypesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetRoomTypes")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.cache.Get(ctx, cacheGetAllRoomType, &res); err == nil {
		log.Debug().Str("cacheKey", cacheGetAllRoomType).Msg("cache hit for room types")

		return res, nil
	}

	params := gDto.QueryParams{SortBy: model.FieldCode, SortDir: gDto.SortDirAsc}

	models, err := s.roomTypes.GetAll(ctx, params, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get room types")

		return res, fmt.Errorf("failed to get room types: %w", err)
	}

	res.FromModels(models)

	if err := s.cache.Save(ctx, cacheGetAllRoomType, res, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save room types to cache")
	}

	return res, nil
}

func (s *serviceImpl) GetCalendar(ctx context.Context) (res dto.CalendarResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetCalendar")
	defer scope.End()
	defer scope.TraceIfError(err)

	days, err := s.loadCalendar(ctx)
	if err != nil {
		return res, err
	}

	res.FromModel(days)

	return res, nil
}

func (s *serviceImpl) SaveCalendar(ctx context.Context, req dto.CalendarRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SaveCalendar")
	defer scope.End()
	defer scope.TraceIfError(err)

	user := shared.Actor(ctx)
	filter := shared.FilterByID(model.CalendarID, model.FieldID, model.CalendarTableName)

	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		current, err := s.calendar.GetForUpdate(ctx, filter)
		if err != nil {
			return fmt.Errorf("failed to lock calendar: %w", err)
		}

		if current.ID == constant.Empty {
			return s.calendar.Insert(ctx, model.Calendar{
				ID:       model.CalendarID,
				Days:     req.ToDays(),
				Metadata: gModel.NewMetadata(user, timezone.Now()),
			})
		}

		return s.calendar.Update(ctx, map[string]any{
			fieldDays:                req.ToDays(),
			constant.FieldModifiedAt: timezone.Now(),
			constant.FieldModifiedBy: user,
		}, filter)
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to save calendar")

		return fmt.Errorf("failed to save calendar: %w", err)
	}

	if err := s.cache.Delete(ctx, cacheGetCalendar); err != nil {
		log.Error().Err(err).Msg("failed to delete calendar cache")
	}

	return nil
}

func (s *serviceImpl) DeleteRoomType(ctx context.Context, code string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeleteRoomType")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(code, model.FieldCode, model.RoomTypeTableName)

	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		current, err := s.roomTypes.GetForUpdate(ctx, filter)
		if err != nil {
			return fmt.Errorf("failed to lock room type: %w", err)
		}

		if current.Code == constant.Empty {
			return errRoomTypeNotFound
		}

		inUse, err := s.rooms.Exist(ctx, shared.FilterByID(code, roomModel.FieldRoomTypeCode, roomModel.TableName))
		if err != nil {
			return fmt.Errorf("failed to check rooms of type: %w", err)
		}

		if inUse {
			return errRoomTypeInUse
		}

		return s.roomTypes.Delete(ctx, filter)
	})

	switch {
	case errors.Is(err, errRoomTypeNotFound):
		return failure.NotFound("room type not found") // nolint:wrapcheck
	case errors.Is(err, errRoomTypeInUse), errors.Is(err, gModel.ErrReferenced):
		return failure.Conflict("room type is still assigned to rooms") // nolint:wrapcheck
	case err != nil:
		log.Error().Err(err).Str("code", code).Msg("failed to delete room type")

		return fmt.Errorf("failed to delete room type: %w", err)
	}

	if err := s.cache.Delete(ctx, shared.CacheKey(cacheGetRoomType, code)); err != nil {
		log.Error().Err(err).Msg("failed to delete room type cache")
	}

	shared.InvalidateCaches(ctx, s.cache, cacheGetAllRoomType)

	return nil
}

// GetPaymentAccount returns an empty account, and no QR, until one is saved.
func (s *serviceImpl) GetPaymentAccount(ctx context.Context, amount float64) (res dto.PaymentAccountResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetPaymentAccount")
	defer scope.End()
	defer scope.TraceIfError(err)

	var account model.PaymentAccount

	if err = s.cache.Get(ctx, cacheGetPayment, &account); err != nil {
		account, err = s.paymentAccounts.Get(ctx, shared.FilterByID(model.PaymentAccountID, model.FieldID, model.PaymentAccountTableName))
		if err != nil {
			log.Error().Err(err).Msg("failed to get payment account")

			return res, fmt.Errorf("failed to get payment account: %w", err)
		}

		if err := s.cache.Save(ctx, cacheGetPayment, account, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save payment account to cache")
		}
	}

	res.FromModel(account, amount)

	return res, nil
}

func (s *serviceImpl) SavePaymentAccount(ctx context.Context, req dto.PaymentAccountRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SavePaymentAccount")
	defer scope.End()
	defer scope.TraceIfError(err)

	user := shared.Actor(ctx)
	filter := shared.FilterByID(model.PaymentAccountID, model.FieldID, model.PaymentAccountTableName)

	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		current, err := s.paymentAccounts.GetForUpdate(ctx, filter)
		if err != nil {
			return fmt.Errorf("failed to lock payment account: %w", err)
		}

		if current.ID == constant.Empty {
			return s.paymentAccounts.Insert(ctx, req.ToModel(user))
		}

		return s.paymentAccounts.Update(ctx, req.ToFields(user), filter)
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to save payment account")

		return fmt.Errorf("failed to save payment account: %w", err)
	}

	if err := s.cache.Delete(ctx, cacheGetPayment); err != nil {
		log.Error().Err(err).Msg("failed to delete payment account cache")
	}

	return nil
}

func (s *serviceImpl) loadRoomType(ctx context.Context, code string) (res model.RoomType, err error) {
	cacheKey := shared.CacheKey(cacheGetRoomType, code)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for room type")

		return res, nil
	}

	res, err = s.roomTypes.Get(ctx, shared.FilterByID(code, model.FieldCode, model.RoomTypeTableName))
	if err != nil {
		log.Error().Err(err).Str("code", code).Msg("failed to get room type")

		return res, fmt.Errorf("failed to get room type: %w", err)
	}

	if res.Code == constant.Empty {
		return res, nil
	}

	if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save room type to cache")
	}

	return res, nil
}

// loadCalendar returns empty calendar days when none have been saved yet.
func (s *serviceImpl) loadCalendar(ctx context.Context) (res model.CalendarDays, err error) {
	if err = s.cache.Get(ctx, cacheGetCalendar, &res); err == nil {
		log.Debug().Str("cacheKey", cacheGetCalendar).Msg("cache hit for calendar")

		return res, nil
	}

	calendar, err := s.calendar.Get(ctx, shared.FilterByID(model.CalendarID, model.FieldID, model.CalendarTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get calendar")

		return res, fmt.Errorf("failed to get calendar: %w", err)
	}

	res = calendar.Days

	if err := s.cache.Save(ctx, cacheGetCalendar, res, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save calendar to cache")
	}

	return res, nil
}
