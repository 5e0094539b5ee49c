package booking

import (
	"net/http"
	"time"

	"innkeep/internal/domains/booking/model/dto"
	orderDto "innkeep/internal/domains/serviceorder/model/dto"
	"innkeep/shared"
	"innkeep/shared/constant"
	"innkeep/shared/failure"
	"innkeep/shared/timezone"
	"innkeep/shared/validator"
	"innkeep/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// @Summary Online bookings awaiting payment review
// @Tags Booking
// @Produce json
// @Success 200 {object} dto.GetBookingsResponse
// @Router /v1/bookings/online/pending [get]
// @Security BearerAuth
func (handler *Handler) GetPendingOnline(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPendingOnline")
	defer scope.End()

	bookings, err := handler.service.PendingOnline(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get pending online bookings")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, bookings)
}

// @Summary Online bookings with confirmed payment
// @Tags Booking
// @Produce json
// @Param limit query int false "Maximum rows, default 20"
// @Success 200 {object} dto.GetBookingsResponse
// @Router /v1/bookings/online/confirmed [get]
// @Security BearerAuth
func (handler *Handler) GetConfirmedOnline(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetConfirmedOnline")
	defer scope.End()

	limit := dto.DefaultConfirmedLimit
	if raw := request.URL.Query().Get(constant.RequestParamLimit); raw != constant.Empty {
		value, err := shared.ParseInt(raw)
		if err != nil || value <= 0 {
			response.WithError(writer, failure.BadRequestFromString("limit must be a positive number"))

			return
		}

		limit = value
	}

	bookings, err := handler.service.ConfirmedOnline(ctx, limit)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get confirmed online bookings")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, bookings)
}

// GetCompleted lists checked-out stays. from and to accept RFC 3339 times or
// plain dates; a plain to date covers the whole day.
// @Summary Completed bookings
// @Tags Booking
// @Produce json
// @Param from query string false "Start of range"
// @Param to query string false "End of range"
// @Success 200 {object} dto.GetBookingsResponse
// @Failure 400 {object} response.Error
// @Router /v1/bookings/completed [get]
// @Security BearerAuth
func (handler *Handler) GetCompleted(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCompleted")
	defer scope.End()

	query := request.URL.Query()

	from, err := parseBound(query.Get(constant.RequestParamFrom), false)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	to, err := parseBound(query.Get(constant.RequestParamTo), true)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	bookings, err := handler.service.Completed(ctx, from, to)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get completed bookings")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, bookings)
}

func parseBound(value string, endOfDay bool) (time.Time, error) {
	if value == constant.Empty {
		return time.Time{}, nil
	}

	if parsed, err := time.Parse(constant.DateFormat, value); err == nil {
		return parsed, nil
	}

	day, err := timezone.Parse(constant.DayFormat, value)
	if err != nil {
		return time.Time{}, failure.BadRequestFromString("invalid date " + value)
	}

	if endOfDay {
		return timezone.EndOfDay(day), nil
	}

	return day, nil
}

// @Summary Find a returning customer
// @Tags Booking
// @Produce json
// @Param phone path string true "Phone number, at least 3 characters"
// @Success 200 {object} dto.CustomerResponse
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/bookings/customers/{phone} [get]
// @Security BearerAuth
func (handler *Handler) FindCustomer(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".FindCustomer")
	defer scope.End()

	customer, err := handler.service.FindCustomerByPhone(ctx, chi.URLParam(request, constant.RequestParamPhone))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to find customer")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, customer)
}

func (handler *Handler) GetOrders(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOrders")
	defer scope.End()

	orders, err := handler.orders.ListByBooking(ctx, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get service orders")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, orders)
}

// CreateOrder records room service for a checked-in stay.
// @Summary Add a service order
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body orderDto.CreateServiceOrderRequest true "Ordered items"
// @Success 201 {object} orderDto.CreateServiceOrderResponse
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 422 {object} response.Error
// @Router /v1/bookings/{id}/orders [post]
// @Security BearerAuth
func (handler *Handler) CreateOrder(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateOrder")
	defer scope.End()

	req := orderDto.CreateServiceOrderRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	order, err := handler.orders.Create(ctx, chi.URLParam(request, constant.RequestParamID), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create service order")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Service order created by user " + shared.Actor(ctx))

	response.WithJSON(writer, http.StatusCreated, order)
}
