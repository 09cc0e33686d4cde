package render

import (
	"bytes"
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/fintech-ethics/themis/pkg/report"
)

type htmlRenderer struct{}

// Render converts the markdown rendition of the report into a standalone
// HTML page. The GFM extension is required for the score tables.
func (r *htmlRenderer) Render(ctx context.Context, payload *report.Payload) ([]byte, error) {
	md, err := (&markdownRenderer{}).Render(ctx, payload)
	if err != nil {
		return nil, err
	}

	var body bytes.Buffer
	converter := goldmark.New(goldmark.WithExtensions(extension.GFM))
	if err := converter.Convert(md, &body); err != nil {
		return nil, goerr.Wrap(ErrRenderFailed, "failed to convert report to HTML", goerr.V("cause", err.Error()))
	}

	var page bytes.Buffer
	page.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	page.WriteString("<meta charset=\"utf-8\">\n<title>AI Governance Report</title>\n")
	page.WriteString("<style>body{font-family:sans-serif;max-width:60em;margin:2em auto;padding:0 1em}table{border-collapse:collapse}td,th{border:1px solid #ccc;padding:0.3em 0.8em}</style>\n")
	page.WriteString("</head>\n<body>\n")
	page.Write(body.Bytes())
	page.WriteString("</body>\n</html>\n")

	return page.Bytes(), nil
}

func (r *htmlRenderer) ContentType() string {
	return "text/html; charset=utf-8"
}
