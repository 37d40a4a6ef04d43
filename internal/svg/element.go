// Package svg is a small in-memory SVG document that renderers append to
// before it is serialized.
package svg

import (
	"bufio"
	"encoding/xml"
	"io"
	"strconv"

	"github.com/rotisserie/eris"
)

// Attr is a single attribute. Attribute order is preserved on output.
type Attr struct {
	Name  string
	Value string
}

// Element is a node in the drawing surface.
type Element struct {
	Name     string
	Attrs    []Attr
	Children []*Element
	Text     string
}

// New returns an element with the given tag name.
func New(name string) *Element {
	return &Element{Name: name}
}

// NewDocument returns a root <svg> element sized width x height.
func NewDocument(width, height int) *Element {
	return New("svg").
		SetAttr("xmlns", "http://www.w3.org/2000/svg").
		SetAttr("width", strconv.Itoa(width)).
		SetAttr("height", strconv.Itoa(height))
}

// Append adds a child with the given tag name and returns it.
func (e *Element) Append(name string) *Element {
	child := New(name)
	e.Children = append(e.Children, child)
	return child
}

// SetAttr sets an attribute, replacing an existing value. It returns e so
// calls can be chained.
func (e *Element) SetAttr(name, value string) *Element {
	for i := range e.Attrs {
		if e.Attrs[i].Name == name {
			e.Attrs[i].Value = value
			return e
		}
	}
	e.Attrs = append(e.Attrs, Attr{Name: name, Value: value})
	return e
}

// SetAttrInt is SetAttr for integer values.
func (e *Element) SetAttrInt(name string, value int) *Element {
	return e.SetAttr(name, strconv.Itoa(value))
}

// SetText sets the element's character data.
func (e *Element) SetText(text string) *Element {
	e.Text = text
	return e
}

// Attr returns the value of the named attribute.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Find returns the first element in document order whose id is id.
func (e *Element) Find(id string) *Element {
	if v, ok := e.Attr("id"); ok && v == id {
		return e
	}
	for _, c := range e.Children {
		if found := c.Find(id); found != nil {
			return found
		}
	}
	return nil
}

// FindAll returns every descendant of e (not e itself) with the tag name.
func (e *Element) FindAll(name string) []*Element {
	var out []*Element
	for _, c := range e.Children {
		if c.Name == name {
			out = append(out, c)
		}
		out = append(out, c.FindAll(name)...)
	}
	return out
}

// Count returns how many elements with the given id exist under e, including e.
func (e *Element) Count(id string) int {
	n := 0
	if v, ok := e.Attr("id"); ok && v == id {
		n++
	}
	for _, c := range e.Children {
		n += c.Count(id)
	}
	return n
}

// WriteTo serializes e and its descendants as XML.
func (e *Element) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	bw := bufio.NewWriter(cw)
	if err := e.write(bw); err != nil {
		return cw.n, eris.Wrap(err, "svg: write")
	}
	if err := bw.Flush(); err != nil {
		return cw.n, eris.Wrap(err, "svg: flush")
	}
	return cw.n, nil
}

func (e *Element) write(w *bufio.Writer) error {
	w.WriteByte('<')
	w.WriteString(e.Name)
	for _, a := range e.Attrs {
		w.WriteByte(' ')
		w.WriteString(a.Name)
		w.WriteString(`="`)
		if err := xml.EscapeText(w, []byte(a.Value)); err != nil {
			return err
		}
		w.WriteByte('"')
	}
	if len(e.Children) == 0 && e.Text == "" {
		_, err := w.WriteString("/>")
		return err
	}
	w.WriteByte('>')
	if e.Text != "" {
		if err := xml.EscapeText(w, []byte(e.Text)); err != nil {
			return err
		}
	}
	for _, c := range e.Children {
		if err := c.write(w); err != nil {
			return err
		}
	}
	w.WriteString("</")
	w.WriteString(e.Name)
	_, err := w.WriteString(">")
	return err
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
