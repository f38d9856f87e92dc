// Package assets resolves surprise content paths and fetches hint and
// answer resources.
package assets

import (
	"fmt"

	"github.com/surprise-calendar/backend/internal/event"
)

// PresentationMode tells the frontend how to display a content asset.
type PresentationMode string

const (
	// ModeImage renders the asset as an inline image.
	ModeImage PresentationMode = "image"

	// ModeDocument renders the asset in an embedded document viewer.
	ModeDocument PresentationMode = "document"
)

// ContentRef points at a concrete content asset and how to present it.
type ContentRef struct {
	Path string           `json:"path"`
	Mode PresentationMode `json:"mode"`
}

// Resolve maps a day and content type to the asset path and presentation
// mode. Letters and reasons are PDF documents, haikus and pictures are PNG
// images. The day is zero-padded to three digits (day 1 -> 001). Pure;
// missing files only surface when the frontend loads the path.
func Resolve(day int, contentType event.ContentType) ContentRef {
	ext := "png"
	mode := ModeImage
	if contentType == event.ContentLetter || contentType == event.ContentReason {
		ext = "pdf"
		mode = ModeDocument
	}

	return ContentRef{
		Path: fmt.Sprintf("assets/content/%s/%03d.%s", contentType, day, ext),
		Mode: mode,
	}
}

// HintPath returns the relative path of the hint resource for a surprise.
func HintPath(id string) string {
	return fmt.Sprintf("assets/hints/%s.txt", id)
}

// AnswerPath returns the relative path of the answer resource for a surprise.
func AnswerPath(id string) string {
	return fmt.Sprintf("assets/answers/%s.txt", id)
}
