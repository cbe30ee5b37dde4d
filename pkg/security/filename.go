package security

import (
	"errors"
	"strings"
)

// ArtifactSuffix is appended to the slug of every derived thumbnail.
const ArtifactSuffix = "_small"

var ErrEmptySlug = errors.New("title contains no usable filename characters")

// Slug reduces untrusted text to an allow-listed filename stem. Spaces
// become underscores; everything outside [A-Za-z0-9_-] is dropped, so path
// separators and dot sequences can never survive.
func Slug(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, " ", "_")

	var result strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' || r == '-' {
			result.WriteRune(r)
		}
	}
	return strings.Trim(result.String(), "_-")
}

// ArtifactName derives the stored file name for a title, e.g.
// "sunset" and ".webp" give "sunset_small.webp".
func ArtifactName(title, ext string) (string, error) {
	slug := Slug(title)
	if slug == "" {
		return "", ErrEmptySlug
	}
	return slug + ArtifactSuffix + ext, nil
}
