package usecase

import (
	"context"

	"go-portfolio-forms/internal/domain"
	"go-portfolio-forms/pkg/apperror"
	"go-portfolio-forms/pkg/idempotency"
	"go-portfolio-forms/pkg/logger"
	"go-portfolio-forms/pkg/metrics"
	"go-portfolio-forms/pkg/validation"
)

type contactUsecase struct {
	repo      domain.ContactRepository
	validator *validation.Validator[domain.ContactSubmission]
	guard     idempotency.Guard
}

// NewContactUsecase creates a new contact usecase. guard may be nil, in
// which case idempotency keys are ignored.
func NewContactUsecase(
	repo domain.ContactRepository,
	validator *validation.Validator[domain.ContactSubmission],
	guard idempotency.Guard,
) domain.ContactUsecase {
	return &contactUsecase{
		repo:      repo,
		validator: validator,
		guard:     guard,
	}
}

func (uc *contactUsecase) LoadForm() validation.Form {
	return uc.validator.Empty()
}

// Submit validates the form and appends one contact message.
func (uc *contactUsecase) Submit(ctx context.Context, values validation.Values, idempotencyKey string) (*domain.ContactOutcome, error) {
	res := uc.validator.Validate(values)
	if !res.Valid {
		metrics.FormSubmissions.WithLabelValues(domain.ContactFormID, metrics.OutcomeInvalid).Inc()
		return &domain.ContactOutcome{Form: uc.validator.Redisplay(values, res.Errors)}, nil
	}

	claimed := false
	if idempotencyKey != "" && uc.guard != nil {
		ok, err := uc.guard.Claim(ctx, "contact:"+idempotencyKey)
		switch {
		case err != nil:
			// Guard backend down: accept the submission rather than lose it.
			logger.Log.Warnw("idempotency guard unavailable", "error", err)
		case !ok:
			metrics.FormSubmissions.WithLabelValues(domain.ContactFormID, metrics.OutcomeDuplicate).Inc()
			return &domain.ContactOutcome{Form: uc.validator.Accepted(values), Duplicate: true}, nil
		default:
			claimed = true
		}
	}

	if err := uc.repo.InsertContactMessage(ctx, res.Data.Username, res.Data.Message); err != nil {
		if claimed {
			if relErr := uc.guard.Release(ctx, "contact:"+idempotencyKey); relErr != nil {
				logger.Log.Warnw("failed to release idempotency key", "error", relErr)
			}
		}
		metrics.FormSubmissions.WithLabelValues(domain.ContactFormID, metrics.OutcomeFailed).Inc()
		logger.Log.Errorw("contact message not stored", "error", err)
		return nil, apperror.Persistence(err).WithDetails(uc.validator.Redisplay(values, nil))
	}

	metrics.FormSubmissions.WithLabelValues(domain.ContactFormID, metrics.OutcomeAccepted).Inc()
	logger.Log.Infow("contact message stored", "username", res.Data.Username)
	return &domain.ContactOutcome{Form: uc.validator.Accepted(values)}, nil
}
