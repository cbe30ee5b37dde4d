package v1

import (
	"net/http"

	"go-portfolio-forms/internal/delivery/http/response"
	"go-portfolio-forms/internal/domain"
	"go-portfolio-forms/pkg/apperror"
	"go-portfolio-forms/pkg/validation"

	"github.com/gin-gonic/gin"
)

// IdempotencyKeyHeader lets a client mark retries of one submission.
const IdempotencyKeyHeader = "Idempotency-Key"

const maxIdempotencyKeyLen = 128

type ContactHandler struct {
	contactUC domain.ContactUsecase
	fields    []validation.Field
}

// NewContactHandler registers the contact routes (public, no auth required)
func NewContactHandler(public *gin.RouterGroup, contactUC domain.ContactUsecase, limiter gin.HandlerFunc) {
	handler := &ContactHandler{
		contactUC: contactUC,
		fields:    domain.ContactSchema().Fields,
	}

	public.GET("/contact", handler.GetContactForm)
	public.POST("/contact", limiter, handler.SubmitContact)
}

// GetContactForm godoc
// @Summary      Contact form model
// @Description  Returns the empty contact form with its field constraints.
// @Tags         contact
// @Produce      json
// @Success      200  {object}  response.Response{data=validation.Form}
// @Router       /contact [get]
func (h *ContactHandler) GetContactForm(c *gin.Context) {
	response.Success(c, http.StatusOK, "OK", h.contactUC.LoadForm())
}

// SubmitContact godoc
// @Summary      Submit Contact Form
// @Description  Stores one contact message. Repeats carrying the same Idempotency-Key are accepted without storing again.
// @Tags         contact
// @Accept       json,x-www-form-urlencoded,mpfd
// @Produce      json
// @Param        Idempotency-Key  header    string  false  "Client retry key"
// @Param        username         formData  string  true   "Name (2-20 characters)"
// @Param        message          formData  string  true   "Message (5-500 characters)"
// @Success      201  {object}  response.Response{data=domain.ContactOutcome}
// @Success      200  {object}  response.Response{data=domain.ContactOutcome}
// @Failure      400  {object}  response.Response{error=response.ErrorBody}
// @Failure      413  {object}  response.Response
// @Failure      429  {object}  response.Response
// @Failure      503  {object}  response.Response{error=response.ErrorBody}
// @Router       /contact [post]
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	key := c.GetHeader(IdempotencyKeyHeader)
	if len(key) > maxIdempotencyKeyLen {
		c.Error(apperror.BadRequest("Idempotency-Key is too long."))
		return
	}

	values, err := bindValues(c, h.fields, 0)
	if err != nil {
		c.Error(bindError(err))
		return
	}

	outcome, err := h.contactUC.Submit(c.Request.Context(), values, key)
	if err != nil {
		c.Error(err)
		return
	}

	if !outcome.Form.Valid {
		c.Error(apperror.BadRequest("Please correct the highlighted fields.").WithDetails(outcome.Form))
		return
	}
	if outcome.Duplicate {
		response.Success(c, http.StatusOK, "Your message was already received.", outcome)
		return
	}
	response.Success(c, http.StatusCreated, "Your message has been sent successfully!", outcome)
}
