package service

import (
	"context"
	"fmt"

	"innkeep/infras/otel"
	bookingModel "innkeep/internal/domains/booking/model"
	bookingRepo "innkeep/internal/domains/booking/repository"
	"innkeep/internal/domains/serviceorder/model"
	"innkeep/internal/domains/serviceorder/model/dto"
	"innkeep/internal/domains/serviceorder/repository"
	"innkeep/shared"
	"innkeep/shared/constant"
	gDto "innkeep/shared/dto"
	"innkeep/shared/failure"

	"github.com/rs/zerolog/log"
)

const defaultRecentLimit = 50

type ServiceOrder interface {
	Create(ctx context.Context, bookingID string, req dto.CreateServiceOrderRequest) (dto.CreateServiceOrderResponse, error)
	ListByBooking(ctx context.Context, bookingID string) (dto.GetServiceOrdersResponse, error)
	Total(ctx context.Context, bookingID string) (float64, error)
	// Recent lists the newest orders across all stays, newest first.
	Recent(ctx context.Context, limit int) (dto.GetServiceOrdersResponse, error)
	ListMenu(ctx context.Context, includeInactive bool) (dto.GetMenuResponse, error)
	// SaveMenuItem creates the item when id is empty and replaces it otherwise.
	SaveMenuItem(ctx context.Context, id string, req dto.MenuItemRequest) (dto.SaveMenuItemResponse, error)
	DeleteMenuItem(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo     repository.ServiceOrder
	menu     repository.Menu
	bookings bookingRepo.Booking
	otel     otel.Otel
}

func New(repo repository.ServiceOrder, menu repository.Menu, bookings bookingRepo.Booking, otel otel.Otel) ServiceOrder {
	return &serviceImpl{
		repo:     repo,
		menu:     menu,
		bookings: bookings,
		otel:     otel,
	}
}

// Create records an order against a checked-in stay.
func (s *serviceImpl) Create(ctx context.Context, bookingID string, req dto.CreateServiceOrderRequest) (res dto.CreateServiceOrderResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.bookings.Get(ctx, shared.FilterByID(bookingID, bookingModel.FieldID, bookingModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if booking.Status != bookingModel.StatusCheckedIn {
		return res, failure.UnprocessableEntity(fmt.Sprintf("booking %s is %s", bookingID, booking.Status)) // nolint:wrapcheck
	}

	menu, err := s.orderableItems(ctx, req.MenuItemIDs())
	if err != nil {
		return res, err
	}

	order := req.ToModel(booking.ID, booking.RoomID, shared.Actor(ctx), menu)

	if err = s.repo.Insert(ctx, order); err != nil {
		log.Error().Err(err).Str("booking", bookingID).Msg("failed to create service order")

		return res, fmt.Errorf("failed to create service order: %w", err)
	}

	return dto.CreateServiceOrderResponse{ID: order.ID, TotalValue: order.TotalValue}, nil
}

func (s *serviceImpl) ListByBooking(ctx context.Context, bookingID string) (res dto.GetServiceOrdersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListByBooking")
	defer scope.End()
	defer scope.TraceIfError(err)

	orders, err := s.byBooking(ctx, bookingID)
	if err != nil {
		return res, err
	}

	res.FromModels(orders)

	return res, nil
}

func (s *serviceImpl) Total(ctx context.Context, bookingID string) (total float64, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Total")
	defer scope.End()
	defer scope.TraceIfError(err)

	orders, err := s.byBooking(ctx, bookingID)
	if err != nil {
		return 0, err
	}

	return model.Total(orders), nil
}

func (s *serviceImpl) Recent(ctx context.Context, limit int) (res dto.GetServiceOrdersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Recent")
	defer scope.End()
	defer scope.TraceIfError(err)

	if limit <= 0 {
		limit = defaultRecentLimit
	}

	params := gDto.QueryParams{
		Limit:   min(limit, gDto.MaxLimit),
		SortBy:  constant.FieldCreatedAt,
		SortDir: gDto.SortDirDesc,
	}

	orders, err := s.repo.GetAll(ctx, params, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get recent service orders")

		return res, fmt.Errorf("failed to get recent service orders: %w", err)
	}

	res.FromModels(orders)

	return res, nil
}

func (s *serviceImpl) ListMenu(ctx context.Context, includeInactive bool) (res dto.GetMenuResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListMenu")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := gDto.FilterGroup{}
	if !includeInactive {
		filter = activeFilter()
	}

	params := gDto.QueryParams{SortBy: model.FieldName, SortDir: gDto.SortDirAsc}

	items, err := s.menu.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get menu")

		return res, fmt.Errorf("failed to get menu: %w", err)
	}

	res.FromModels(items)

	return res, nil
}

func (s *serviceImpl) SaveMenuItem(ctx context.Context, id string, req dto.MenuItemRequest) (res dto.SaveMenuItemResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SaveMenuItem")
	defer scope.End()
	defer scope.TraceIfError(err)

	user := shared.Actor(ctx)

	if id == constant.Empty {
		item := req.ToModel(user)

		if err = s.menu.Insert(ctx, item); err != nil {
			log.Error().Err(err).Msg("failed to create menu item")

			return res, fmt.Errorf("failed to create menu item: %w", err)
		}

		return dto.SaveMenuItemResponse{ID: item.ID}, nil
	}

	filter := shared.FilterByID(id, model.FieldID, model.MenuTableName)

	if err = s.existingMenuItem(ctx, filter); err != nil {
		return res, err
	}

	if err = s.menu.Update(ctx, req.ToFields(user), filter); err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to update menu item")

		return res, fmt.Errorf("failed to update menu item: %w", err)
	}

	return dto.SaveMenuItemResponse{ID: id}, nil
}

// DeleteMenuItem removes the item from the catalog. Orders keep the name and
// price they were billed at.
func (s *serviceImpl) DeleteMenuItem(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeleteMenuItem")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.MenuTableName)

	if err = s.existingMenuItem(ctx, filter); err != nil {
		return err
	}

	if err = s.menu.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to delete menu item")

		return fmt.Errorf("failed to delete menu item: %w", err)
	}

	return nil
}

func (s *serviceImpl) existingMenuItem(ctx context.Context, filter gDto.FilterGroup) error {
	item, err := s.menu.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get menu item")

		return fmt.Errorf("failed to get menu item: %w", err)
	}

	if item.ID == constant.Empty {
		return failure.NotFound("menu item not found") // nolint:wrapcheck
	}

	return nil
}

// orderableItems loads the active menu items named by ids and fails when any
// of them is missing or retired.
func (s *serviceImpl) orderableItems(ctx context.Context, ids []string) (model.Menu, error) {
	if len(ids) == 0 {
		return model.Menu{}, nil
	}

	filter := activeFilter()
	filter.Filters = append(filter.Filters, gDto.Filter{
		Field:    model.FieldID,
		Value:    ids,
		Operator: gDto.FilterOperatorIn,
		Table:    model.MenuTableName,
	})

	items, err := s.menu.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get menu items")

		return nil, fmt.Errorf("failed to get menu items: %w", err)
	}

	menu := model.NewMenu(items)

	for _, id := range ids {
		if _, ok := menu[id]; !ok {
			return nil, failure.UnprocessableEntity(fmt.Sprintf("menu item %s is not available", id)) // nolint:wrapcheck
		}
	}

	return menu, nil
}

func activeFilter() gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldIsActive,
				Value:    true,
				Operator: gDto.FilterOperatorEq,
				Table:    model.MenuTableName,
			},
		},
	}
}

func (s *serviceImpl) byBooking(ctx context.Context, bookingID string) ([]model.ServiceOrder, error) {
	params := gDto.QueryParams{SortBy: constant.FieldCreatedAt, SortDir: gDto.SortDirAsc}

	orders, err := s.repo.GetAll(ctx, params, shared.FilterByID(bookingID, model.FieldBookingID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("booking", bookingID).Msg("failed to get service orders")

		return nil, fmt.Errorf("failed to get service orders: %w", err)
	}

	return orders, nil
}
