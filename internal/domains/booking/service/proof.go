package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"innkeep/internal/domains/booking/model"
	"innkeep/internal/domains/booking/model/dto"
	"innkeep/shared"
	"innkeep/shared/base64"
	"innkeep/shared/constant"
	"innkeep/shared/outcome"
	"innkeep/shared/secret"
	"innkeep/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	proofFolder  = "payment-proofs"
	imagePrefix  = "image/"
	bytesPerMega = 1 << 20
)

// SubmitPaymentProof stores the transfer screenshot of an online booking.
// Only the session that placed the booking may upload it.
func (s *serviceImpl) SubmitPaymentProof(ctx context.Context, bookingID, holderID string, req dto.PaymentProofRequest) (res outcome.Result, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SubmitPaymentProof")
	defer scope.End()
	defer scope.TraceIfError(err)

	contentType, data, err := base64.Decode(req.File)
	if err != nil {
		return outcome.Invalid("payment proof is not a valid data url"), nil
	}

	switch {
	case !strings.HasPrefix(contentType, imagePrefix):
		return outcome.Invalid("payment proof must be an image, got %s", contentType), nil
	case len(data) > constant.RequestMaxProofSize*bytesPerMega:
		return outcome.Invalid("payment proof exceeds %d MB", constant.RequestMaxProofSize), nil
	}

	booking, err := s.repo.Get(ctx, shared.FilterByID(bookingID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if rejected := proofAccepted(booking, bookingID); !rejected.Success {
		return s.finish(ctx, rejected, nil), nil
	}

	if err = secret.Match(holderID, booking.HolderHash); err != nil {
		if errors.Is(err, secret.ErrMismatch) {
			return s.finish(ctx, outcome.Forbidden("booking %s was not placed by this session", bookingID), nil), nil
		}

		return res, fmt.Errorf("failed to verify holder: %w", err)
	}

	key := fmt.Sprintf("%s/%s/%s.%s", proofFolder, bookingID, uuid.NewString(), base64.Extension(contentType))

	url, err := s.store.Put(ctx, key, contentType, data)
	if err != nil {
		log.Error().Err(err).Str("booking", bookingID).Msg("failed to upload payment proof")

		return res, fmt.Errorf("failed to upload payment proof: %w", err)
	}

	var previous string

	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		res = outcome.Result{}

		locked, err := s.repo.GetForUpdate(ctx, shared.FilterByID(bookingID, model.FieldID, model.TableName))
		if err != nil {
			return fmt.Errorf("failed to lock booking: %w", err)
		}

		if res = proofAccepted(locked, bookingID); !res.Success {
			return nil
		}

		fields := map[string]any{
			model.FieldPaymentProofURL:     url,
			model.FieldPaymentProofName:    req.FileName,
			model.FieldPaymentProofMime:    contentType,
			model.FieldOnlinePaymentStatus: model.PaymentStatusWaitingConfirm,
			constant.FieldModifiedAt:       timezone.Now(),
			constant.FieldModifiedBy:       shared.Actor(ctx),
		}

		if err := s.repo.Update(ctx, fields, shared.FilterByID(bookingID, model.FieldID, model.TableName)); err != nil {
			return fmt.Errorf("failed to update booking: %w", err)
		}

		previous = locked.PaymentProofURL
		res = outcome.OK(url)

		return nil
	})

	switch {
	case err != nil:
		s.discard(ctx, key)
		log.Error().Err(err).Str("booking", bookingID).Msg("failed to save payment proof")

		return res, fmt.Errorf("failed to save payment proof: %w", err)
	case !res.Success:
		s.discard(ctx, key)
	case previous != constant.Empty:
		s.discard(ctx, s.store.KeyFromURL(previous))
	}

	return s.finish(ctx, res, nil), nil
}

func proofAccepted(booking model.Booking, bookingID string) outcome.Result {
	switch {
	case booking.ID == constant.Empty:
		return outcome.NotFound("booking %s not found", bookingID)
	case !booking.IsOnline:
		return outcome.InvalidState("booking %s is not an online booking", bookingID)
	case booking.Status != model.StatusConfirmed:
		return outcome.InvalidState("booking %s is %s", bookingID, booking.Status)
	case booking.OnlinePaymentStatus == model.PaymentStatusConfirmed:
		return outcome.InvalidState("payment of booking %s is already confirmed", bookingID)
	default:
		return outcome.OK(constant.Empty)
	}
}

func (s *serviceImpl) discard(ctx context.Context, key string) {
	if key == constant.Empty {
		return
	}

	if err := s.store.Delete(ctx, key); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to delete payment proof")
	}
}
