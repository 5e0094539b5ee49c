package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"innkeep/internal/domains/booking/model"
	"innkeep/internal/domains/booking/model/dto"
	"innkeep/shared"
	"innkeep/shared/constant"
	gDto "innkeep/shared/dto"
	"innkeep/shared/failure"

	"github.com/rs/zerolog/log"
)

const minPhoneLength = 3

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound(fmt.Sprintf("booking %s not found", id))
	}

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.list(ctx, params, filter)
}

// PendingOnline is the staff queue of online bookings awaiting payment review.
func (s *serviceImpl) PendingOnline(ctx context.Context) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".PendingOnline")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldIsOnline, Value: true, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldStatus, Value: model.StatusConfirmed, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{
				Field:    model.FieldOnlinePaymentStatus,
				Value:    model.PaymentStatusConfirmed,
				Operator: gDto.FilterOperatorNotEq,
				Table:    model.TableName,
			},
		},
	}

	return s.list(ctx, gDto.QueryParams{SortBy: model.FieldCheckIn, SortDir: gDto.SortDirAsc}, filter)
}

func (s *serviceImpl) ConfirmedOnline(ctx context.Context, limit int) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ConfirmedOnline")
	defer scope.End()
	defer scope.TraceIfError(err)

	if limit <= 0 {
		limit = dto.DefaultConfirmedLimit
	}

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldIsOnline, Value: true, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{
				Field:    model.FieldOnlinePaymentStatus,
				Value:    model.PaymentStatusConfirmed,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	}

	return s.list(ctx, gDto.QueryParams{Page: 1, Limit: limit, SortBy: model.FieldCheckIn, SortDir: gDto.SortDirDesc}, filter)
}

// Completed lists stays that checked out within [from, to].
func (s *serviceImpl) Completed(ctx context.Context, from, to time.Time) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Completed")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		return res, failure.BadRequestFromString("from must not be after to")
	}

	filters := []any{
		gDto.Filter{Field: model.FieldStatus, Value: model.StatusCompleted, Operator: gDto.FilterOperatorEq, Table: model.TableName},
	}

	if !from.IsZero() {
		filters = append(filters, gDto.Filter{
			ArgName:  "completed_from",
			Field:    model.FieldCheckOutActual,
			Value:    from,
			Operator: gDto.FilterOperatorGreaterEq,
			Table:    model.TableName,
		})
	}

	if !to.IsZero() {
		filters = append(filters, gDto.Filter{
			ArgName:  "completed_to",
			Field:    model.FieldCheckOutActual,
			Value:    to,
			Operator: gDto.FilterOperatorLessEq,
			Table:    model.TableName,
		})
	}

	params := gDto.QueryParams{SortBy: model.FieldCheckOutActual, SortDir: gDto.SortDirDesc}

	return s.list(ctx, params, gDto.FilterGroup{Filters: filters})
}

// FindCustomerByPhone returns the guest details of the latest booking made
// with the phone number, for prefilling a returning customer.
func (s *serviceImpl) FindCustomerByPhone(ctx context.Context, phone string) (res dto.CustomerResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".FindCustomerByPhone")
	defer scope.End()
	defer scope.TraceIfError(err)

	phone = strings.TrimSpace(phone)
	if len(phone) < minPhoneLength {
		return res, failure.BadRequestFromString(fmt.Sprintf("phone must be at least %d characters", minPhoneLength))
	}

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldCustomerPhone, Value: phone, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
	}

	params := gDto.QueryParams{Page: 1, Limit: 1, SortBy: constant.FieldCreatedAt, SortDir: gDto.SortDirDesc}

	bookings, err := s.repo.GetAll(ctx, params, filter,
		model.FieldCustomerName, model.FieldCustomerPhone, model.FieldCustomerType)
	if err != nil {
		log.Error().Err(err).Msg("failed to find customer")

		return res, fmt.Errorf("failed to find customer: %w", err)
	}

	if len(bookings) == 0 {
		return res, failure.NotFound(fmt.Sprintf("no customer with phone %s", phone))
	}

	res = dto.CustomerResponse{
		Name:  bookings[0].CustomerName,
		Phone: bookings[0].CustomerPhone,
		Type:  bookings[0].CustomerType,
	}

	return res, nil
}

func (s *serviceImpl) list(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	bookings, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	limit := params.Limit
	if limit == 0 {
		limit = total
	}

	res.FromModels(bookings, total, limit)

	return res, nil
}
