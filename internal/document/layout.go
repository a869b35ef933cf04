package document

import (
	"strings"

	"github.com/go-pdf/fpdf"
)

// Page geometry in millimetres.
const (
	PageWidth    = 210.0
	PageHeight   = 297.0
	Margin       = 20.0
	ContentWidth = PageWidth - 2*Margin
	LineHeight   = 6.0

	bodyFont = "Helvetica"
	bodySize = 11.0
)

// Layout draws absolutely positioned text with a running vertical cursor.
type Layout struct {
	pdf *fpdf.Fpdf
	y   float64
}

func newLayout(compress bool) *Layout {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(Margin, Margin, Margin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCompression(compress)
	pdf.SetFont(bodyFont, "", bodySize)
	pdf.AddPage()
	return &Layout{pdf: pdf, y: Margin}
}

// Y returns the cursor position.
func (l *Layout) Y() float64 {
	return l.y
}

// Pages returns the number of pages started so far.
func (l *Layout) Pages() int {
	return l.pdf.PageCount()
}

// Reserve starts a new page when h more millimetres would cross the bottom margin.
func (l *Layout) Reserve(h float64) {
	if l.y+h > PageHeight-Margin {
		l.pdf.AddPage()
		l.y = Margin
	}
}

// Font switches the current font style and size.
func (l *Layout) Font(style string, size float64) {
	l.pdf.SetFont(bodyFont, style, size)
}

// Line draws one line of text at the left margin and advances the cursor.
func (l *Layout) Line(text string) {
	l.LineAt(Margin, text)
}

// LineAt draws one line of text at x and advances the cursor.
func (l *Layout) LineAt(x float64, text string) {
	l.Reserve(LineHeight)
	l.pdf.Text(x, l.y, strings.ReplaceAll(sanitize(text), "\n", " "))
	l.y += LineHeight
}

// Field draws "label: value" on one line, wrapping the value when needed.
func (l *Layout) Field(label, value string) {
	l.Paragraph(label + ": " + value)
}

// Paragraph wraps text to the content width and draws each line.
func (l *Layout) Paragraph(text string) {
	for _, line := range l.Wrap(text, ContentWidth) {
		l.Line(line)
	}
}

// Wrap splits text into lines that fit width using the current font metrics.
func (l *Layout) Wrap(text string, width float64) []string {
	return l.pdf.SplitText(sanitize(text), width)
}

// Gap advances the cursor without drawing.
func (l *Layout) Gap(h float64) {
	l.y += h
}

// Rule draws a horizontal line across the content width.
func (l *Layout) Rule() {
	l.Reserve(LineHeight)
	l.pdf.Line(Margin, l.y, PageWidth-Margin, l.y)
	l.y += LineHeight / 2
}

// TextWidth measures text in the current font.
func (l *Layout) TextWidth(text string) float64 {
	return l.pdf.GetStringWidth(sanitize(text))
}
