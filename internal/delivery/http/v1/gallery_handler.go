package v1

import (
	"net/http"

	"go-portfolio-forms/internal/delivery/http/response"
	"go-portfolio-forms/internal/domain"
	"go-portfolio-forms/pkg/apperror"
	"go-portfolio-forms/pkg/validation"

	"github.com/gin-gonic/gin"
)

type GalleryHandler struct {
	galleryUC domain.GalleryUsecase
	fields    []validation.Field
}

func NewGalleryHandler(public *gin.RouterGroup, galleryUC domain.GalleryUsecase, limiter gin.HandlerFunc) {
	handler := &GalleryHandler{
		galleryUC: galleryUC,
		fields:    domain.GallerySchema().Fields,
	}

	gallery := public.Group("/gallery")
	{
		gallery.GET("/upload", handler.GetUploadForm)
		gallery.POST("/upload", limiter, handler.Upload)
	}
}

// GetUploadForm godoc
// @Summary      Upload form model
// @Description  Returns the empty gallery upload form with its field constraints.
// @Tags         gallery
// @Produce      json
// @Success      200  {object}  response.Response{data=validation.Form}
// @Router       /gallery/upload [get]
func (h *GalleryHandler) GetUploadForm(c *gin.Context) {
	response.Success(c, http.StatusOK, "OK", h.galleryUC.LoadForm())
}

// Upload godoc
// @Summary      Upload a gallery image
// @Description  Validates the form, fits the image inside 300x300 and stores it as <title>_small.webp.
// @Tags         gallery
// @Accept       mpfd
// @Produce      json
// @Param        title        formData  string  true  "Title (2-20 characters)"
// @Param        description  formData  string  true  "Description (5-500 characters)"
// @Param        image        formData  file    true  "JPEG, PNG or WebP, at most 5MB"
// @Success      201  {object}  response.Response{data=domain.UploadOutcome}
// @Failure      400  {object}  response.Response{error=response.ErrorBody}
// @Failure      409  {object}  response.Response{error=response.ErrorBody}
// @Failure      413  {object}  response.Response
// @Failure      422  {object}  response.Response{error=response.ErrorBody}
// @Failure      500  {object}  response.Response{error=response.ErrorBody}
// @Router       /gallery/upload [post]
func (h *GalleryHandler) Upload(c *gin.Context) {
	values, err := bindValues(c, h.fields, domain.MaxImageBytes)
	if err != nil {
		c.Error(bindError(err))
		return
	}

	outcome, err := h.galleryUC.Upload(c.Request.Context(), values)
	if err != nil {
		c.Error(err)
		return
	}

	if !outcome.Form.Valid {
		c.Error(apperror.BadRequest("Please correct the highlighted fields.").WithDetails(outcome.Form))
		return
	}
	response.Success(c, http.StatusCreated, "Image uploaded.", outcome)
}
