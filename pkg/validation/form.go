package validation

// Form is the page model a frontend renders: the current values, the
// per-field messages and the constraints to mirror client-side.
type Form struct {
	ID          string                `json:"id"`
	Valid       bool                  `json:"valid"`
	Posted      bool                  `json:"posted"`
	Data        map[string]any        `json:"data"`
	Errors      FieldErrors           `json:"errors"`
	Constraints map[string]Constraint `json:"constraints"`
}

// Empty returns the initial, unposted form.
func (x *Validator[T]) Empty() Form {
	return x.form(nil, FieldErrors{}, false, false)
}

// Redisplay returns the posted values with their field errors so the user
// does not have to type them again. The form is never valid: it is only
// shown for a submission that was not accepted, with or without field
// errors.
func (x *Validator[T]) Redisplay(values Values, errs FieldErrors) Form {
	if errs == nil {
		errs = FieldErrors{}
	}
	return x.form(values, errs, true, false)
}

// Accepted returns the posted form after a successful submission.
func (x *Validator[T]) Accepted(values Values) Form {
	return x.form(values, FieldErrors{}, true, true)
}

func (x *Validator[T]) form(values Values, errs FieldErrors, posted, valid bool) Form {
	data := make(map[string]any, len(x.schema.Fields))
	for _, f := range x.schema.Fields {
		// Files are never echoed back.
		if f.Kind == KindFile {
			data[f.Name] = nil
			continue
		}
		data[f.Name] = values.String(f.Name)
	}
	return Form{
		ID:          x.schema.ID,
		Valid:       valid,
		Posted:      posted,
		Data:        data,
		Errors:      errs,
		Constraints: x.schema.constraints(),
	}
}
