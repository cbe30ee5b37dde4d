package validation

import (
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Values is a submission as it arrives at the boundary: field name to raw
// value. Text fields hold strings, file fields hold *File.
type Values map[string]any

// String returns the text value of field, or "" when absent or not text.
func (v Values) String(field string) string {
	s, _ := v[field].(string)
	return s
}

// File returns the file value of field, or nil.
func (v Values) File(field string) *File {
	f, _ := v[field].(*File)
	return f
}

// File is an uploaded file whose bytes have been read completely.
type File struct {
	Filename    string
	ContentType string // as declared by the client
	Size        int64
	Data        []byte
}

// FileSize projects a *File to its byte length.
func FileSize(v any) any {
	if f, ok := v.(*File); ok {
		return f.Size
	}
	return int64(-1)
}

// FileType projects a *File to its declared media type.
func FileType(v any) any {
	if f, ok := v.(*File); ok {
		return f.ContentType
	}
	return ""
}

type Kind int

const (
	KindText Kind = iota
	KindFile
)

func (k Kind) accepts(v any) bool {
	switch k {
	case KindFile:
		f, ok := v.(*File)
		return ok && f != nil
	default:
		_, ok := v.(string)
		return ok
	}
}

// Rule is one constraint on a field, expressed as a validator tag.
type Rule struct {
	Tag     string        // e.g. "min=2" or "lte=5000000"
	Message string        // overrides the generated message
	Of      func(any) any // optional projection of the raw value
}

// Field declares a form field and its constraints.
type Field struct {
	Name  string
	Kind  Kind
	Rules []Rule
}

// Schema is the rule set for one form. Bind converts values that passed
// every rule into the typed submission.
type Schema[T any] struct {
	ID     string
	Fields []Field
	Bind   func(Values) T
}

// Result is the outcome of one validation attempt. Exactly one of Data or
// Errors is meaningful, selected by Valid.
type Result[T any] struct {
	Valid  bool
	Data   T
	Errors FieldErrors
}

type Validator[T any] struct {
	validate *validator.Validate
	schema   Schema[T]
}

// New binds a schema to a validator instance. A nil validate gets a fresh
// instance with the custom tags registered.
func New[T any](validate *validator.Validate, schema Schema[T]) *Validator[T] {
	if validate == nil {
		validate = NewValidate()
	}
	return &Validator[T]{validate: validate, schema: schema}
}

// Schema returns the rule set this validator enforces.
func (x *Validator[T]) Schema() Schema[T] {
	return x.schema
}

// Validate applies every rule of every field. It does not stop at the first
// failure, so one submission can report several errors per field.
func (x *Validator[T]) Validate(values Values) Result[T] {
	errs := FieldErrors{}
	clean := make(Values, len(x.schema.Fields))

	for _, f := range x.schema.Fields {
		raw, present := values[f.Name]
		if !present || raw == nil {
			errs.Add(f.Name, msgRequired)
			continue
		}
		if !f.Kind.accepts(raw) {
			errs.Add(f.Name, kindMessage(f.Kind))
			continue
		}

		for _, r := range f.Rules {
			target := raw
			if r.Of != nil {
				target = r.Of(raw)
			}
			err := x.validate.Var(target, r.Tag)
			if err == nil {
				continue
			}
			if r.Message != "" {
				errs.Add(f.Name, r.Message)
				continue
			}
			for _, msg := range FormatValidationErrors(f.Name, err) {
				errs.Add(f.Name, msg)
			}
		}
		clean[f.Name] = raw
	}

	if len(errs) > 0 {
		return Result[T]{Errors: errs}
	}
	return Result[T]{Valid: true, Data: x.schema.Bind(clean)}
}

func kindMessage(k Kind) string {
	if k == KindFile {
		return msgExpectedFile
	}
	return msgExpectedText
}

// Constraint is the client-side view of a field's rules.
type Constraint struct {
	Required  bool     `json:"required"`
	MinLength int      `json:"minlength,omitempty"`
	MaxLength int      `json:"maxlength,omitempty"`
	MaxSize   int64    `json:"maxsize,omitempty"`
	Accept    []string `json:"accept,omitempty"`
}

// constraints derives Constraint values from the rule tags it understands.
func (s Schema[T]) constraints() map[string]Constraint {
	out := make(map[string]Constraint, len(s.Fields))
	for _, f := range s.Fields {
		c := Constraint{Required: true}
		for _, r := range f.Rules {
			for _, part := range strings.Split(r.Tag, ",") {
				name, param, _ := strings.Cut(part, "=")
				switch {
				case f.Kind == KindText && (name == "min" || name == "gte"):
					c.MinLength, _ = strconv.Atoi(param)
				case f.Kind == KindText && (name == "max" || name == "lte"):
					c.MaxLength, _ = strconv.Atoi(param)
				case f.Kind == KindFile && (name == "max" || name == "lte"):
					c.MaxSize, _ = strconv.ParseInt(param, 10, 64)
				case name == "media_type" || name == "oneof":
					c.Accept = strings.Fields(param)
				}
			}
		}
		out[f.Name] = c
	}
	return out
}
