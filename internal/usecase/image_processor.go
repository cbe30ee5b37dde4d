package usecase

import (
	"errors"
	"fmt"

	"go-portfolio-forms/internal/domain"
	"go-portfolio-forms/pkg/imaging"
)

type webpProcessor struct {
	processor *imaging.Processor
}

// NewWebPProcessor exposes an imaging.Processor as the gallery's
// domain.ImageProcessor.
func NewWebPProcessor(p *imaging.Processor) domain.ImageProcessor {
	return &webpProcessor{processor: p}
}

func (w *webpProcessor) FitWebP(data []byte) (*domain.ProcessedImage, error) {
	thumb, err := w.processor.Fit(data)
	if errors.Is(err, imaging.ErrTooManyPixels) {
		return nil, fmt.Errorf("%w: %w", domain.ErrImageDimensions, err)
	}
	if err != nil {
		return nil, err
	}
	return &domain.ProcessedImage{
		Data:        thumb.Data,
		Width:       thumb.Width,
		Height:      thumb.Height,
		ContentType: imaging.ContentType,
		Extension:   imaging.Extension,
	}, nil
}
