package feedermap

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
)

// SVG is a Surface that records drawing operations as SVG elements.
type SVG struct {
	width  float64
	height float64
	body   bytes.Buffer
}

// NewSVG creates an SVG surface of the given pixel size.
func NewSVG(width, height float64) *SVG {
	return &SVG{width: width, height: height}
}

func (s *SVG) Size() (float64, float64) {
	return s.width, s.height
}

func (s *SVG) Clear() {
	s.body.Reset()
}

func (s *SVG) Line(x1, y1, x2, y2 float64, color string, width float64) {
	fmt.Fprintf(&s.body, `<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="%s"/>`+"\n",
		num(x1), num(y1), num(x2), num(y2), color, num(width))
}

func (s *SVG) Circle(cx, cy, r float64, color string) {
	fmt.Fprintf(&s.body, `<circle cx="%s" cy="%s" r="%s" fill="%s"/>`+"\n",
		num(cx), num(cy), num(r), color)
}

func (s *SVG) Text(x, y float64, text, color string, size float64) {
	fmt.Fprintf(&s.body, `<text x="%s" y="%s" fill="%s" font-size="%spx" font-family="Inter, sans-serif" text-anchor="middle" dominant-baseline="middle">`,
		num(x), num(y), color, num(size))
	xml.EscapeText(&s.body, []byte(text))
	s.body.WriteString("</text>\n")
}

// WriteTo writes the complete SVG document.
func (s *SVG) WriteTo(w io.Writer) (int64, error) {
	var doc bytes.Buffer
	fmt.Fprintf(&doc, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">`+"\n",
		num(s.width), num(s.height), num(s.width), num(s.height))
	doc.Write(s.body.Bytes())
	doc.WriteString("</svg>\n")
	return doc.WriteTo(w)
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
