package domain

import (
	"context"
	"time"

	"go-portfolio-forms/pkg/validation"
)

const ContactFormID = "contact"

// ContactSubmission is a validated contact form post.
type ContactSubmission struct {
	Username string `json:"username"`
	Message  string `json:"message"`
}

// ContactMessage is the stored, append-only record of a submission.
type ContactMessage struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// ContactSchema is the rule set of the contact form.
func ContactSchema() validation.Schema[ContactSubmission] {
	return validation.Schema[ContactSubmission]{
		ID: ContactFormID,
		Fields: []validation.Field{
			{Name: "username", Kind: validation.KindText, Rules: []validation.Rule{
				{Tag: "min=2"},
				{Tag: "max=20"},
			}},
			{Name: "message", Kind: validation.KindText, Rules: []validation.Rule{
				{Tag: "min=5"},
				{Tag: "max=500"},
			}},
		},
		Bind: func(v validation.Values) ContactSubmission {
			return ContactSubmission{
				Username: v.String("username"),
				Message:  v.String("message"),
			}
		},
	}
}

// ContactOutcome is what a contact submission produced. An invalid form is
// an outcome, not an error.
type ContactOutcome struct {
	Form      validation.Form `json:"form"`
	Duplicate bool            `json:"duplicate,omitempty"`
}

// ContactRepository appends contact messages. Implementations must use
// parameterized statements.
type ContactRepository interface {
	InsertContactMessage(ctx context.Context, name, message string) error
}

// ContactUsecase defines the interface for contact form operations
type ContactUsecase interface {
	LoadForm() validation.Form
	// Submit validates values and stores one message. A non-empty
	// idempotencyKey makes repeats within the guard TTL a no-op.
	Submit(ctx context.Context, values validation.Values, idempotencyKey string) (*ContactOutcome, error)
}
