// Package page wraps a rendered map in a self-contained HTML document.
package page

import (
	"bytes"
	"embed"
	"html/template"
	"io"
	"os"

	"github.com/rotisserie/eris"

	"github.com/sells-group/edu-choropleth/internal/render"
)

//go:embed templates/page.html.tmpl
var templateFS embed.FS

var pageTmpl = template.Must(template.ParseFS(templateFS, "templates/page.html.tmpl"))

// Page is the data behind the HTML document.
type Page struct {
	Title       string
	Description string
	SVG         template.HTML
	OffsetX     int
	OffsetY     int
}

// FromResult serializes the rendered surface and carries over the tooltip
// offsets.
func FromResult(res *render.Result, title, description string) (Page, error) {
	var buf bytes.Buffer
	if _, err := res.Surface.WriteTo(&buf); err != nil {
		return Page{}, eris.Wrap(err, "page: serialize map")
	}
	return Page{
		Title:       title,
		Description: description,
		// The surface escapes every attribute and text node itself.
		SVG:     template.HTML(buf.String()), //nolint:gosec
		OffsetX: res.Tooltip.OffsetX,
		OffsetY: res.Tooltip.OffsetY,
	}, nil
}

// Render writes the document to w.
func Render(w io.Writer, p Page) error {
	if err := pageTmpl.Execute(w, p); err != nil {
		return eris.Wrap(err, "page: execute template")
	}
	return nil
}

// Write renders the document to path. The output goes to a temporary file
// first and is renamed into place, so readers never see a partial page.
func Write(path string, p Page) error {
	var buf bytes.Buffer
	if err := Render(&buf, p); err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return eris.Wrapf(err, "page: write %s", tmp)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return eris.Wrapf(err, "page: rename %s", tmp)
	}
	return nil
}
