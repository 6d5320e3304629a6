package enums

import (
	"fmt"
	"strings"
)

type ContentType string

const (
	ContentTypePhoto ContentType = "photo"
	ContentTypeVideo ContentType = "video"
	ContentTypeText  ContentType = "text"
)

// RequiresMedia reports whether the wizard must collect an attachment
// before the confirmation step.
func (c ContentType) RequiresMedia() bool {
	return c == ContentTypePhoto || c == ContentTypeVideo
}

func ParseContentType(raw string) (ContentType, error) {
	switch ContentType(strings.ToLower(strings.TrimSpace(raw))) {
	case ContentTypePhoto:
		return ContentTypePhoto, nil
	case ContentTypeVideo:
		return ContentTypeVideo, nil
	case ContentTypeText:
		return ContentTypeText, nil
	default:
		return "", fmt.Errorf("unknown content type %q", raw)
	}
}
