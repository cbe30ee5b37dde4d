package v1

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"go-portfolio-forms/pkg/apperror"
	"go-portfolio-forms/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// maxMultipartMemory is how much of a multipart body is kept in memory
// before parts spill to temp files.
const maxMultipartMemory = 8 << 20

// bindValues collects the schema's fields from a JSON, urlencoded or
// multipart body. Absent fields stay absent so the validator can report
// them as required. File parts are read completely, except when they are
// already larger than maxFileBytes: those carry only their size, which the
// size rule rejects.
func bindValues(c *gin.Context, fields []validation.Field, maxFileBytes int64) (validation.Values, error) {
	values := validation.Values{}

	if c.ContentType() == binding.MIMEJSON {
		var body map[string]any
		if err := c.ShouldBindJSON(&body); err != nil {
			return nil, err
		}
		for _, f := range fields {
			if v, ok := body[f.Name]; ok && v != nil {
				values[f.Name] = v
			}
		}
		return values, nil
	}

	var err error
	if c.ContentType() == binding.MIMEMultipartPOSTForm {
		err = c.Request.ParseMultipartForm(maxMultipartMemory)
	} else {
		err = c.Request.ParseForm()
	}
	if err != nil {
		return nil, err
	}

	for _, f := range fields {
		if f.Kind == validation.KindFile {
			file, err := readFilePart(c.Request, f.Name, maxFileBytes)
			if err != nil {
				return nil, err
			}
			if file != nil {
				values[f.Name] = file
				continue
			}
		}

		vs, ok := c.Request.PostForm[f.Name]
		if !ok || len(vs) == 0 {
			continue
		}
		// A file input left empty arrives as an empty text part.
		if f.Kind == validation.KindFile && vs[0] == "" {
			continue
		}
		values[f.Name] = vs[0]
	}
	return values, nil
}

func readFilePart(r *http.Request, name string, maxBytes int64) (*validation.File, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	headers := r.MultipartForm.File[name]
	if len(headers) == 0 {
		return nil, nil
	}
	fh := headers[0]

	file := &validation.File{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
	}
	if maxBytes > 0 && fh.Size > maxBytes {
		return file, nil
	}

	src, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}
	file.Data = data
	file.Size = int64(len(data))
	return file, nil
}

// bindError maps a body parsing failure to an AppError.
func bindError(err error) *apperror.AppError {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) || strings.Contains(err.Error(), "request body too large") {
		return apperror.TooLarge("Request body too large.")
	}
	return apperror.BadRequest("The submission could not be read.")
}
