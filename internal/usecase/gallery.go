package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-portfolio-forms/internal/domain"
	"go-portfolio-forms/pkg/apperror"
	"go-portfolio-forms/pkg/logger"
	"go-portfolio-forms/pkg/metrics"
	"go-portfolio-forms/pkg/security"
	"go-portfolio-forms/pkg/validation"
)

// GalleryOptions tunes the upload action.
type GalleryOptions struct {
	// Overwrite replaces an existing artifact with the same name. When
	// false such an upload fails with a conflict.
	Overwrite bool
	// Recorder, when set, persists metadata for every stored artifact.
	Recorder domain.UploadRecorder
}

type galleryUsecase struct {
	validator *validation.Validator[domain.ImageUploadSubmission]
	processor domain.ImageProcessor
	store     domain.ImageStore
	opts      GalleryOptions
}

func NewGalleryUsecase(
	validator *validation.Validator[domain.ImageUploadSubmission],
	processor domain.ImageProcessor,
	store domain.ImageStore,
	opts GalleryOptions,
) domain.GalleryUsecase {
	return &galleryUsecase{
		validator: validator,
		processor: processor,
		store:     store,
		opts:      opts,
	}
}

func (uc *galleryUsecase) LoadForm() validation.Form {
	return uc.validator.Empty()
}

// Upload validates the form, then resizes the image and stores one
// thumbnail named after the title.
func (uc *galleryUsecase) Upload(ctx context.Context, values validation.Values) (*domain.UploadOutcome, error) {
	res := uc.validator.Validate(values)
	if !res.Valid {
		metrics.FormSubmissions.WithLabelValues(domain.GalleryFormID, metrics.OutcomeInvalid).Inc()
		return &domain.UploadOutcome{Form: uc.validator.Redisplay(values, res.Errors)}, nil
	}
	sub := res.Data
	redisplay := uc.validator.Redisplay(values, nil)

	name, err := security.ArtifactName(sub.Title, ".webp")
	if err != nil {
		uc.fail()
		return nil, apperror.InputIntegrity("Please use letters or digits in the title.").WithDetails(redisplay)
	}

	check := security.ValidateContent(sub.Image.Data, domain.AcceptedImageTypes)
	if !check.Valid {
		uc.fail()
		logger.Log.Warnw("upload content rejected",
			"declared", sub.Image.ContentType, "detected", check.DetectedMIME, "reason", check.Error)
		return nil, apperror.InputIntegrity("The file content is not a supported image.").WithDetails(redisplay)
	}

	if !uc.opts.Overwrite {
		exists, err := uc.store.Exists(ctx, name)
		if err != nil {
			uc.fail()
			return nil, apperror.Processing(err).WithDetails(redisplay)
		}
		if exists {
			uc.fail()
			return nil, apperror.Conflict("An image with this title already exists.").WithDetails(redisplay)
		}
	}

	start := time.Now()
	out, err := uc.processor.FitWebP(sub.Image.Data)
	metrics.ImageResizeSeconds.Observe(time.Since(start).Seconds())
	if errors.Is(err, domain.ErrImageDimensions) {
		uc.fail()
		logger.Log.Warnw("upload rejected for its dimensions", "title", sub.Title, "error", err)
		return nil, apperror.InputIntegrity("The image dimensions are too large.").WithDetails(redisplay)
	}
	if err != nil {
		uc.fail()
		logger.Log.Errorw("image processing failed", "title", sub.Title, "error", err)
		return nil, apperror.Processing(err).WithDetails(redisplay)
	}

	location, err := uc.store.Put(ctx, name, out.Data, out.ContentType)
	if err != nil {
		uc.fail()
		logger.Log.Errorw("artifact write failed", "name", name, "error", err)
		return nil, apperror.Processing(err).WithDetails(redisplay)
	}

	rec := domain.UploadRecord{
		Title:       sub.Title,
		Description: sub.Description,
		Name:        name,
		Location:    location,
		Width:       out.Width,
		Height:      out.Height,
	}
	if uc.opts.Recorder != nil {
		if err := uc.opts.Recorder.RecordUpload(ctx, rec); err != nil {
			uc.fail()
			return nil, apperror.Persistence(fmt.Errorf("record upload: %w", err)).WithDetails(redisplay)
		}
	}

	metrics.FormSubmissions.WithLabelValues(domain.GalleryFormID, metrics.OutcomeAccepted).Inc()
	logger.Log.Infow("thumbnail stored", "name", name, "width", out.Width, "height", out.Height)
	return &domain.UploadOutcome{Form: uc.validator.Accepted(values), Artifact: &rec}, nil
}

func (uc *galleryUsecase) fail() {
	metrics.FormSubmissions.WithLabelValues(domain.GalleryFormID, metrics.OutcomeFailed).Inc()
}
