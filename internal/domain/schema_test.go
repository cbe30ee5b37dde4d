package domain_test

import (
	"strings"
	"testing"

	"go-portfolio-forms/internal/domain"
	"go-portfolio-forms/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactSchemaLengths(t *testing.T) {
	v := validation.New(nil, domain.ContactSchema())

	for n := 0; n <= 25; n++ {
		res := v.Validate(validation.Values{"username": strings.Repeat("u", n), "message": "Hello there!"})
		if n >= 2 && n <= 20 {
			assert.False(t, res.Errors.Has("username"), "username length %d", n)
		} else {
			assert.True(t, res.Errors.Has("username"), "username length %d", n)
		}
	}

	for _, n := range []int{0, 4, 5, 6, 250, 499, 500, 501, 1000} {
		res := v.Validate(validation.Values{"username": "Alice", "message": strings.Repeat("m", n)})
		assert.Equal(t, n < 5 || n > 500, res.Errors.Has("message"), "message length %d", n)
	}
}

func TestContactSchemaRoundTrip(t *testing.T) {
	v := validation.New(nil, domain.ContactSchema())

	res := v.Validate(validation.Values{"username": "Alice", "message": "Hello there!"})
	require.True(t, res.Valid)
	assert.Nil(t, res.Errors)
	assert.Equal(t, domain.ContactSubmission{Username: "Alice", Message: "Hello there!"}, res.Data)
}

func TestContactSchemaReportsBothFields(t *testing.T) {
	v := validation.New(nil, domain.ContactSchema())

	res := v.Validate(validation.Values{"username": "A", "message": "hey"})
	require.False(t, res.Valid)
	assert.Len(t, res.Errors, 2)
	assert.True(t, res.Errors.Has("username"))
	assert.True(t, res.Errors.Has("message"))
}

func TestGallerySchemaImage(t *testing.T) {
	v := validation.New(nil, domain.GallerySchema())
	values := func(f *validation.File) validation.Values {
		return validation.Values{"title": "sunset", "description": "Evening sky", "image": f}
	}

	t.Run("Oversized images fail regardless of type", func(t *testing.T) {
		for _, ct := range []string{"image/png", "image/gif", "IMAGE/WEBP"} {
			res := v.Validate(values(&validation.File{ContentType: ct, Size: domain.MaxImageBytes + 1}))
			require.False(t, res.Valid)
			assert.Contains(t, res.Errors["image"], "Images may be at most 5MB.", ct)
		}
	})

	t.Run("Exactly the limit passes the size check", func(t *testing.T) {
		res := v.Validate(values(&validation.File{ContentType: "image/png", Size: domain.MaxImageBytes}))
		assert.True(t, res.Valid)
	})

	t.Run("Unaccepted types fail regardless of size", func(t *testing.T) {
		for _, size := range []int64{1, domain.MaxImageBytes + 1} {
			res := v.Validate(values(&validation.File{ContentType: "image/gif", Size: size}))
			require.False(t, res.Valid)
			assert.Contains(t, res.Errors["image"], "Only .jpg, .jpeg, .png and .webp formats are supported.")
		}
	})

	t.Run("Accepted types are case-insensitive", func(t *testing.T) {
		for _, ct := range []string{"image/jpeg", "IMAGE/JPG", "Image/Png", "image/WEBP"} {
			res := v.Validate(values(&validation.File{ContentType: ct, Size: 2_000_000}))
			assert.True(t, res.Valid, ct)
		}
	})

	t.Run("Both image errors are reported together", func(t *testing.T) {
		res := v.Validate(values(&validation.File{ContentType: "application/pdf", Size: domain.MaxImageBytes + 1}))
		assert.Len(t, res.Errors["image"], 2)
	})
}
