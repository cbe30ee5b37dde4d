package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go-portfolio-forms/pkg/validation"
)

const (
	GalleryFormID = "gallery_upload"

	MaxImageBytes   = 5_000_000
	ThumbnailWidth  = 300
	ThumbnailHeight = 300
)

// AcceptedImageTypes are the declared media types the upload form takes.
var AcceptedImageTypes = []string{"image/jpeg", "image/jpg", "image/png", "image/webp"}

// ImageUploadSubmission is a validated gallery upload.
type ImageUploadSubmission struct {
	Title       string
	Description string
	Image       *validation.File
}

// GallerySchema is the rule set of the gallery upload form.
func GallerySchema() validation.Schema[ImageUploadSubmission] {
	return validation.Schema[ImageUploadSubmission]{
		ID: GalleryFormID,
		Fields: []validation.Field{
			{Name: "title", Kind: validation.KindText, Rules: []validation.Rule{
				{Tag: "min=2"},
				{Tag: "max=20"},
			}},
			{Name: "description", Kind: validation.KindText, Rules: []validation.Rule{
				{Tag: "min=5"},
				{Tag: "max=500"},
			}},
			{Name: "image", Kind: validation.KindFile, Rules: []validation.Rule{
				{
					Tag:     fmt.Sprintf("lte=%d", MaxImageBytes),
					Of:      validation.FileSize,
					Message: "Images may be at most 5MB.",
				},
				{
					Tag:     "media_type=" + strings.Join(AcceptedImageTypes, " "),
					Of:      validation.FileType,
					Message: "Only .jpg, .jpeg, .png and .webp formats are supported.",
				},
			}},
		},
		Bind: func(v validation.Values) ImageUploadSubmission {
			return ImageUploadSubmission{
				Title:       v.String("title"),
				Description: v.String("description"),
				Image:       v.File("image"),
			}
		},
	}
}

// ProcessedImage is an encoded thumbnail.
type ProcessedImage struct {
	Data        []byte
	Width       int
	Height      int
	ContentType string
	Extension   string // with leading dot
}

// ErrImageDimensions is returned by an ImageProcessor when the source image
// is too large to decode safely.
var ErrImageDimensions = errors.New("image dimensions too large")

// ImageProcessor decodes an upload and returns it fitted inside the
// thumbnail box, re-encoded as WebP.
type ImageProcessor interface {
	FitWebP(data []byte) (*ProcessedImage, error)
}

// ImageStore writes derived artifacts.
type ImageStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Exists(ctx context.Context, key string) (bool, error)
}

// UploadRecord describes a stored artifact.
type UploadRecord struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Name        string `json:"name"`
	Location    string `json:"location"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
}

// UploadRecorder is an optional hook that persists upload metadata. No
// record is written when it is nil.
type UploadRecorder interface {
	RecordUpload(ctx context.Context, rec UploadRecord) error
}

type UploadOutcome struct {
	Form     validation.Form `json:"form"`
	Artifact *UploadRecord   `json:"artifact,omitempty"`
}

type GalleryUsecase interface {
	LoadForm() validation.Form
	Upload(ctx context.Context, values validation.Values) (*UploadOutcome, error)
}
