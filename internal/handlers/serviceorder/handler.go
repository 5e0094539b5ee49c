package serviceorder

import (
	"net/http"
	"strconv"

	"innkeep/infras/otel"
	"innkeep/internal/domains/serviceorder/model/dto"
	"innkeep/internal/domains/serviceorder/service"
	"innkeep/shared"
	"innkeep/shared/constant"
	"innkeep/shared/failure"
	"innkeep/shared/validator"
	"innkeep/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const queryIncludeInactive = "include_inactive"

// Handler serves the menu catalog and the order feed. Orders placed against a
// stay live under the booking routes.
type Handler struct {
	service service.ServiceOrder
	otel    otel.Otel
}

func New(service service.ServiceOrder, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/service-items", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.ListMenu)
		routerGroup.Post("/", handler.CreateMenuItem)
		routerGroup.Put("/{id}", handler.UpdateMenuItem)
		routerGroup.Delete("/{id}", handler.DeleteMenuItem)
	})

	router.Get("/service-orders/recent", handler.Recent)
}

// @Summary List the menu
// @Tags ServiceOrder
// @Produce json
// @Param include_inactive query bool false "Include retired items"
// @Success 200 {object} dto.GetMenuResponse
// @Router /v1/service-items [get]
// @Security BearerAuth
func (handler *Handler) ListMenu(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ListMenu")
	defer scope.End()

	includeInactive := false

	if raw := request.URL.Query().Get(queryIncludeInactive); raw != constant.Empty {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			response.WithError(writer, failure.BadRequestFromString("include_inactive must be true or false"))

			return
		}

		includeInactive = parsed
	}

	menu, err := handler.service.ListMenu(ctx, includeInactive)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to list menu")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, menu)
}

// @Summary Add a menu item
// @Tags ServiceOrder
// @Accept json
// @Produce json
// @Param request body dto.MenuItemRequest true "Menu item"
// @Success 201 {object} dto.SaveMenuItemResponse
// @Failure 400 {object} response.Error
// @Router /v1/service-items [post]
// @Security BearerAuth
func (handler *Handler) CreateMenuItem(writer http.ResponseWriter, request *http.Request) {
	handler.saveMenuItem(writer, request, constant.Empty, http.StatusCreated)
}

// @Summary Replace a menu item
// @Tags ServiceOrder
// @Accept json
// @Produce json
// @Param id path string true "Menu item ID"
// @Param request body dto.MenuItemRequest true "Menu item"
// @Success 200 {object} dto.SaveMenuItemResponse
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/service-items/{id} [put]
// @Security BearerAuth
func (handler *Handler) UpdateMenuItem(writer http.ResponseWriter, request *http.Request) {
	handler.saveMenuItem(writer, request, chi.URLParam(request, constant.RequestParamID), http.StatusOK)
}

func (handler *Handler) saveMenuItem(writer http.ResponseWriter, request *http.Request, id string, code int) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SaveMenuItem")
	defer scope.End()

	req := dto.MenuItemRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.SaveMenuItem(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to save menu item")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Menu item " + res.ID + " saved by user " + shared.Actor(ctx))

	response.WithJSON(writer, code, res)
}

// @Summary Delete a menu item
// @Tags ServiceOrder
// @Param id path string true "Menu item ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Router /v1/service-items/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteMenuItem(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteMenuItem")
	defer scope.End()

	if err := handler.service.DeleteMenuItem(ctx, chi.URLParam(request, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete menu item")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Menu item deleted successfully")
}

// Recent is the order feed for the kitchen and the front desk.
// @Summary Latest service orders
// @Tags ServiceOrder
// @Produce json
// @Param limit query int false "Maximum rows, default 50, at most 100"
// @Success 200 {object} dto.GetServiceOrdersResponse
// @Failure 400 {object} response.Error
// @Router /v1/service-orders/recent [get]
// @Security BearerAuth
func (handler *Handler) Recent(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Recent")
	defer scope.End()

	var limit int

	if raw := request.URL.Query().Get(constant.RequestParamLimit); raw != constant.Empty {
		value, err := shared.ParseInt(raw)
		if err != nil || value <= 0 {
			response.WithError(writer, failure.BadRequestFromString("limit must be a positive number"))

			return
		}

		limit = value
	}

	orders, err := handler.service.Recent(ctx, limit)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get recent service orders")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, orders)
}
