package pricing

import (
	"net/http"
	"strconv"

	"innkeep/infras/otel"
	"innkeep/internal/domains/pricing/model/dto"
	"innkeep/internal/domains/pricing/service"
	"innkeep/shared"
	"innkeep/shared/constant"
	"innkeep/shared/failure"
	"innkeep/shared/validator"
	"innkeep/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const queryAmount = "amount"

type Handler struct {
	service service.Pricing
	otel    otel.Otel
}

func New(service service.Pricing, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/room-types", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetRoomTypes)
		routerGroup.Get("/{code}", handler.GetRoomType)
		routerGroup.Put("/{code}", handler.UpsertRoomType)
		routerGroup.Delete("/{code}", handler.DeleteRoomType)
	})

	router.Route("/pricing", func(routerGroup chi.Router) {
		routerGroup.Get("/quote", handler.Quote)
		routerGroup.Get("/calendar", handler.GetCalendar)
		routerGroup.Put("/calendar", handler.SaveCalendar)
		routerGroup.Get("/payment-account", handler.GetPaymentAccount)
		routerGroup.Put("/payment-account", handler.SavePaymentAccount)
	})
}

// @Summary List room types
// @Tags Pricing
// @Produce json
// @Success 200 {object} dto.GetRoomTypesResponse
// @Router /v1/room-types [get]
func (handler *Handler) GetRoomTypes(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomTypes")
	defer scope.End()

	roomTypes, err := handler.service.GetRoomTypes(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get room types")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, roomTypes)
}

// @Summary Get a room type
// @Tags Pricing
// @Produce json
// @Param code path string true "Room type code"
// @Success 200 {object} dto.RoomTypeResponse
// @Failure 404 {object} response.Error
// @Router /v1/room-types/{code} [get]
func (handler *Handler) GetRoomType(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomType")
	defer scope.End()

	roomType, err := handler.service.GetRoomType(ctx, chi.URLParam(request, constant.RequestParamCode))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get room type")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, roomType)
}

// UpsertRoomType creates the room type or replaces its rate tables.
// @Summary Create or replace a room type
// @Tags Pricing
// @Accept json
// @Produce json
// @Param code path string true "Room type code"
// @Param request body dto.UpsertRoomTypeRequest true "Room type"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Router /v1/room-types/{code} [put]
// @Security BearerAuth
func (handler *Handler) UpsertRoomType(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpsertRoomType")
	defer scope.End()

	req := dto.UpsertRoomTypeRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.UpsertRoomType(ctx, chi.URLParam(request, constant.RequestParamCode), req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to save room type")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Room type saved by user " + shared.Actor(ctx))

	response.WithMessage(writer, http.StatusOK, "Room type saved successfully")
}

// @Summary Delete a room type
// @Tags Pricing
// @Param code path string true "Room type code"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/room-types/{code} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteRoomType(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteRoomType")
	defer scope.End()

	if err := handler.service.DeleteRoomType(ctx, chi.URLParam(request, constant.RequestParamCode)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete room type")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Room type deleted by user " + shared.Actor(ctx))

	response.WithMessage(writer, http.StatusOK, "Room type deleted successfully")
}

// Quote prices a prospective stay without creating anything.
// @Summary Quote a stay
// @Tags Pricing
// @Produce json
// @Param room_type query string true "Room type code"
// @Param booking_type query string true "HOURLY, OVERNIGHT or DAILY"
// @Param check_in query string true "RFC 3339 check-in"
// @Param check_out query string true "RFC 3339 check-out"
// @Success 200 {object} dto.QuoteResponse
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/pricing/quote [get]
func (handler *Handler) Quote(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Quote")
	defer scope.End()

	req := dto.QuoteRequest{}
	req.FromRequest(request)

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	quote, err := handler.service.Quote(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to quote stay")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, quote)
}

func (handler *Handler) GetCalendar(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCalendar")
	defer scope.End()

	calendar, err := handler.service.GetCalendar(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get calendar")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, calendar)
}

// @Summary Replace holidays and weekend days
// @Tags Pricing
// @Accept json
// @Param request body dto.CalendarRequest true "Calendar"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Router /v1/pricing/calendar [put]
// @Security BearerAuth
func (handler *Handler) SaveCalendar(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SaveCalendar")
	defer scope.End()

	req := dto.CalendarRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.SaveCalendar(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to save calendar")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Calendar saved successfully")
}

// GetPaymentAccount returns the transfer account. With an amount it also
// renders the VietQR link for that amount.
// @Summary Get the payment account
// @Tags Pricing
// @Produce json
// @Param amount query number false "Transfer amount"
// @Success 200 {object} dto.PaymentAccountResponse
// @Failure 400 {object} response.Error
// @Router /v1/pricing/payment-account [get]
func (handler *Handler) GetPaymentAccount(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPaymentAccount")
	defer scope.End()

	var amount float64

	if raw := request.URL.Query().Get(queryAmount); raw != constant.Empty {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed < 0 {
			response.WithError(writer, failure.BadRequestFromString("amount must be a non-negative number"))

			return
		}

		amount = parsed
	}

	account, err := handler.service.GetPaymentAccount(ctx, amount)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get payment account")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, account)
}

// @Summary Save the payment account
// @Tags Pricing
// @Accept json
// @Param request body dto.PaymentAccountRequest true "Payment account"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Router /v1/pricing/payment-account [put]
// @Security BearerAuth
func (handler *Handler) SavePaymentAccount(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SavePaymentAccount")
	defer scope.End()

	req := dto.PaymentAccountRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.SavePaymentAccount(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to save payment account")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Payment account saved successfully")
}
