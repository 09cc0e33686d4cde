// Package render turns a report payload into one of the supported export
// formats. Renderers are pure with respect to session state: they consume a
// built payload and produce bytes plus a content type.
package render

import (
	"context"
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"

	"github.com/fintech-ethics/themis/pkg/report"
)

// Format identifies a report export format
type Format string

const (
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

var (
	ErrUnknownFormat = goerr.New("unknown report format")
	ErrRenderFailed  = goerr.New("failed to render report")
)

// Normalize returns the format, treating empty as FormatJSON
func (f Format) Normalize() Format {
	if f == "" {
		return FormatJSON
	}
	return f
}

// IsValid checks if the format is a supported export format
func (f Format) IsValid() bool {
	switch f {
	case FormatJSON, FormatMarkdown, FormatHTML:
		return true
	default:
		return false
	}
}

// String returns the string representation of the format
func (f Format) String() string {
	return string(f)
}

// Renderer produces the serialized form of a report payload
type Renderer interface {
	Render(ctx context.Context, payload *report.Payload) ([]byte, error)
	ContentType() string
}

// New returns the renderer for the given format
func New(format Format) (Renderer, error) {
	switch format.Normalize() {
	case FormatJSON:
		return &jsonRenderer{}, nil
	case FormatMarkdown:
		return &markdownRenderer{}, nil
	case FormatHTML:
		return &htmlRenderer{}, nil
	default:
		return nil, goerr.Wrap(ErrUnknownFormat, "unsupported format", goerr.V("format", format))
	}
}

type jsonRenderer struct{}

func (r *jsonRenderer) Render(_ context.Context, payload *report.Payload) ([]byte, error) {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, goerr.Wrap(ErrRenderFailed, "failed to marshal report", goerr.V("cause", err.Error()))
	}
	return data, nil
}

func (r *jsonRenderer) ContentType() string {
	return "application/json"
}
