package booking

import (
	"net/http"
	"strings"

	"innkeep/infras/otel"
	"innkeep/internal/domains/booking/model"
	"innkeep/internal/domains/booking/model/dto"
	"innkeep/internal/domains/booking/service"
	orderSvc "innkeep/internal/domains/serviceorder/service"
	"innkeep/shared"
	"innkeep/shared/constant"
	gDto "innkeep/shared/dto"
	"innkeep/shared/failure"
	"innkeep/shared/outcome"
	"innkeep/shared/validator"
	"innkeep/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	queryStatus = "status"
	queryRoomID = "room_id"
	queryOnline = "is_online"
	idSeparator = ","
)

var errMissingHolder = failure.BadRequestFromString("X-Holder-ID header is required")

type Handler struct {
	service service.Booking
	orders  orderSvc.ServiceOrder
	otel    otel.Otel
}

func New(service service.Booking, orders orderSvc.ServiceOrder, otel otel.Otel) Handler {
	return Handler{
		service: service,
		orders:  orders,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateBooking)
		routerGroup.Post("/group", handler.CreateGroupBooking)
		routerGroup.Post("/online", handler.CreateOnlineBooking)
		routerGroup.Get("/", handler.GetBookings)
		routerGroup.Get("/online/pending", handler.GetPendingOnline)
		routerGroup.Get("/online/confirmed", handler.GetConfirmedOnline)
		routerGroup.Get("/completed", handler.GetCompleted)
		routerGroup.Get("/customers/{phone}", handler.FindCustomer)
		routerGroup.Get("/{id}", handler.GetBookingByID)
		routerGroup.Post("/{id}/checkout", handler.Checkout)
		routerGroup.Post("/{id}/confirm-payment", handler.ConfirmPayment)
		routerGroup.Post("/{id}/cancel", handler.Cancel)
		routerGroup.Post("/{id}/payment-proof", handler.SubmitPaymentProof)
		routerGroup.Get("/{id}/orders", handler.GetOrders)
		routerGroup.Post("/{id}/orders", handler.CreateOrder)
	})
}

// CreateBooking books one room at the front desk.
// @Summary Create a walk-in booking
// @Description Reserves the room, or checks the guest in at once with check_in_now. The price is estimated from the room type when omitted.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Create Booking Request"
// @Success 201 {object} dto.OutcomeResponse
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 422 {object} response.Error
// @Router /v1/bookings [post]
// @Security BearerAuth
func (handler *Handler) CreateBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	req := dto.CreateBookingRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, req.ToDraft(shared.HolderID(ctx)), req.CheckInNow)
	handler.respond(writer, scope, http.StatusCreated, res, err, "failed to create booking")
}

// CreateGroupBooking books several rooms for one party. Rooms that cannot be
// booked are reported without undoing the others.
// @Summary Create a group booking
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.GroupBookingRequest true "Group Booking Request"
// @Success 201 {object} dto.OutcomeResponse
// @Success 207 {object} response.Partial[dto.OutcomeResponse]
// @Failure 400 {object} response.Error
// @Router /v1/bookings/group [post]
// @Security BearerAuth
func (handler *Handler) CreateGroupBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateGroupBooking")
	defer scope.End()

	req := dto.GroupBookingRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.CreateGroup(ctx, req.ToDraft(shared.HolderID(ctx)), req.RoomIDs, req.CheckInNow)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create group booking")

		response.WithError(writer, err)

		return
	}

	ids := []string{}
	if res.Payload != constant.Empty {
		ids = strings.Split(res.Payload, idSeparator)
	}

	response.WithOutcome(writer, http.StatusCreated, res, dto.OutcomeResponse{IDs: ids})
}

// CreateOnlineBooking books the room the guest is holding. The room waits in
// PENDING_PAYMENT until staff confirm the transfer.
// @Summary Create an online booking
// @Tags Booking
// @Accept json
// @Produce json
// @Param X-Holder-ID header string true "Guest session id"
// @Param request body dto.OnlineBookingRequest true "Online Booking Request"
// @Success 201 {object} dto.OutcomeResponse
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/bookings/online [post]
func (handler *Handler) CreateOnlineBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateOnlineBooking")
	defer scope.End()

	holderID := shared.HolderID(ctx)
	if holderID == constant.Empty {
		scope.TraceError(errMissingHolder)
		response.WithError(writer, errMissingHolder)

		return
	}

	req := dto.OnlineBookingRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, req.ToDraft(holderID), false)
	handler.respond(writer, scope, http.StatusCreated, res, err, "failed to create online booking")
}

// @Summary Get all bookings
// @Tags Booking
// @Produce json
// @Param status query string false "Filter by status"
// @Param room_id query string false "Filter by room"
// @Param is_online query boolean false "Filter online bookings"
// @Success 200 {object} dto.GetBookingsResponse
// @Router /v1/bookings [get]
// @Security BearerAuth
func (handler *Handler) GetBookings(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)
	queryParams.AllowSort(model.FieldCheckIn, model.FieldCheckOutActual, model.FieldStatus, constant.FieldCreatedAt)

	query := request.URL.Query()
	filterGroup := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if status := model.Status(query.Get(queryStatus)); status.Valid() {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    status,
			Table:    model.TableName,
		})
	}

	if roomID := query.Get(queryRoomID); roomID != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldRoomID,
			Operator: gDto.FilterOperatorEq,
			Value:    roomID,
			Table:    model.TableName,
		})
	}

	online, err := shared.ParseOptionalBool(query.Get(queryOnline))
	if err != nil {
		response.WithError(writer, failure.BadRequestFromString("online must be true or false"))

		return
	}

	if online != nil {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldIsOnline,
			Operator: gDto.FilterOperatorEq,
			Value:    *online,
			Table:    model.TableName,
		})
	}

	bookings, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bookings")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, bookings)
}

func (handler *Handler) GetBookingByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingByID")
	defer scope.End()

	booking, err := handler.service.Get(ctx, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking by ID")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, booking)
}

// @Summary Check out a booking
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.CheckoutRequest true "Checkout Request"
// @Success 200 {object} dto.OutcomeResponse
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 422 {object} response.Error
// @Router /v1/bookings/{id}/checkout [post]
// @Security BearerAuth
func (handler *Handler) Checkout(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Checkout")
	defer scope.End()

	req := dto.CheckoutRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Checkout(ctx, chi.URLParam(request, constant.RequestParamID), req)
	handler.respond(writer, scope, http.StatusOK, res, err, "failed to check out booking")
}

// ConfirmPayment marks the transfer of an online booking as received.
// @Summary Confirm an online payment
// @Tags Booking
// @Param id path string true "Booking ID"
// @Success 200 {object} dto.OutcomeResponse
// @Failure 404 {object} response.Error
// @Failure 422 {object} response.Error
// @Router /v1/bookings/{id}/confirm-payment [post]
// @Security BearerAuth
func (handler *Handler) ConfirmPayment(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ConfirmPayment")
	defer scope.End()

	res, err := handler.service.ConfirmOnlinePayment(ctx, chi.URLParam(request, constant.RequestParamID))
	handler.respond(writer, scope, http.StatusOK, res, err, "failed to confirm payment")
}

// @Summary Cancel a booking
// @Tags Booking
// @Param id path string true "Booking ID"
// @Success 200 {object} dto.OutcomeResponse
// @Failure 404 {object} response.Error
// @Failure 422 {object} response.Error
// @Router /v1/bookings/{id}/cancel [post]
// @Security BearerAuth
func (handler *Handler) Cancel(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Cancel")
	defer scope.End()

	res, err := handler.service.Cancel(ctx, chi.URLParam(request, constant.RequestParamID))
	handler.respond(writer, scope, http.StatusOK, res, err, "failed to cancel booking")
}

// SubmitPaymentProof uploads the transfer screenshot of an online booking.
// @Summary Upload a payment proof
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param X-Holder-ID header string true "Guest session id that placed the booking"
// @Param request body dto.PaymentProofRequest true "Base64 data URL of the image"
// @Success 200 {object} response.Data[map[string]string]
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 422 {object} response.Error
// @Router /v1/bookings/{id}/payment-proof [post]
func (handler *Handler) SubmitPaymentProof(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SubmitPaymentProof")
	defer scope.End()

	holderID, _ := ctx.Value(constant.ContextKeyHolderID).(string)
	if holderID == constant.Empty {
		scope.TraceError(errMissingHolder)
		response.WithError(writer, errMissingHolder)

		return
	}

	req := dto.PaymentProofRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.SubmitPaymentProof(ctx, chi.URLParam(request, constant.RequestParamID), holderID, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to submit payment proof")

		response.WithError(writer, err)

		return
	}

	response.WithOutcome(writer, http.StatusOK, res, map[string]string{"payment_proof_url": res.Payload})
}

// respond renders a single-booking lifecycle result.
func (handler *Handler) respond(writer http.ResponseWriter, scope otel.Scope, code int, res outcome.Result, err error, message string) {
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg(message)

		response.WithError(writer, err)

		return
	}

	if !res.Success {
		scope.AddEvent(string(res.Kind) + ": " + res.Reason)
	}

	response.WithOutcome(writer, code, res, dto.OutcomeResponse{ID: res.Payload})
}
