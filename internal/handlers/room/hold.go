package room

import (
	"net/http"
	"time"

	"innkeep/internal/domains/room/model/dto"
	"innkeep/shared"
	"innkeep/shared/constant"
	"innkeep/shared/failure"
	"innkeep/shared/validator"
	"innkeep/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

var errMissingHolder = failure.BadRequestFromString("X-Holder-ID header or a staff token is required")

// HoldRoom places or renews a temporary hold for the caller. The body is
// optional; without it the configured hold duration applies.
// @Summary Hold a room
// @Tags Hold
// @Accept json
// @Produce json
// @Param id path string true "Room ID"
// @Param X-Holder-ID header string false "Guest session id"
// @Param request body dto.HoldRequest false "Hold duration"
// @Success 200 {object} dto.HoldResponse
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 422 {object} response.Error
// @Router /v1/rooms/{id}/hold [post]
func (handler *Handler) HoldRoom(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".HoldRoom")
	defer scope.End()

	holderID := shared.HolderID(ctx)
	if holderID == constant.Empty {
		scope.TraceError(errMissingHolder)
		response.WithError(writer, errMissingHolder)

		return
	}

	req := dto.HoldRequest{}

	if request.ContentLength != 0 {
		if err := validator.Validate(request.Body, &req); err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Msg("failed to validate request body")

			response.WithError(writer, err)

			return
		}
	}

	minutes := req.DurationMinutes
	if minutes == 0 {
		minutes = handler.cfg.Hold.DurationMinutes
	}

	roomID := chi.URLParam(request, constant.RequestParamID)

	res, err := handler.hold.Hold(ctx, roomID, holderID, time.Duration(minutes)*time.Minute)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to hold room")

		response.WithError(writer, err)

		return
	}

	response.WithOutcome(writer, http.StatusOK, res, dto.HoldResponse{RoomID: roomID, LockedUntil: res.Payload})
}

// ReleaseRoom drops the caller's hold. Releasing a room the caller does not
// hold is not an error; released reports whether anything changed.
// @Summary Release a held room
// @Tags Hold
// @Produce json
// @Param id path string true "Room ID"
// @Param X-Holder-ID header string false "Guest session id"
// @Success 200 {object} dto.ReleaseResponse
// @Router /v1/rooms/{id}/hold [delete]
func (handler *Handler) ReleaseRoom(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ReleaseRoom")
	defer scope.End()

	holderID := shared.HolderID(ctx)
	if holderID == constant.Empty {
		scope.TraceError(errMissingHolder)
		response.WithError(writer, errMissingHolder)

		return
	}

	roomID := chi.URLParam(request, constant.RequestParamID)

	released, err := handler.hold.Release(ctx, roomID, holderID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to release room")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, dto.ReleaseResponse{RoomID: roomID, Released: released})
}
