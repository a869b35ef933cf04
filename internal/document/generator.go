// Package document renders enquiry letters and purchase orders as A4 PDFs.
package document

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

var (
	// ErrGenerate wraps every drawing or encoding failure.
	ErrGenerate = errors.New("failed to generate PDF")
	// ErrNoVendorsSelected is returned when an enquiry has no addressees.
	ErrNoVendorsSelected = errors.New("select at least one vendor")
)

// Settings carries the organisation-wide document options.
type Settings struct {
	OrgName        string
	CurrencySymbol string
	Locale         string
}

// Document is a rendered file ready to be downloaded.
type Document struct {
	Filename string
	Content  []byte
	Pages    int
}

// Generator renders procurement documents.
type Generator struct {
	org      string
	money    *MoneyFormatter
	compress bool
	logger   *zap.Logger
}

// Option customises a Generator.
type Option func(*Generator)

// WithoutCompression leaves content streams readable.
func WithoutCompression() Option {
	return func(g *Generator) { g.compress = false }
}

// NewGenerator validates settings and builds a generator.
func NewGenerator(settings Settings, logger *zap.Logger, opts ...Option) (*Generator, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	money, err := NewMoneyFormatter(settings.CurrencySymbol, settings.Locale)
	if err != nil {
		return nil, err
	}

	g := &Generator{
		org:      settings.OrgName,
		money:    money,
		compress: true,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Money exposes the formatter used on documents.
func (g *Generator) Money() *MoneyFormatter {
	return g.money
}

// render draws into memory so nothing is returned unless every step succeeded.
func (g *Generator) render(filename string, draw func(*Layout)) (doc Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			g.logger.Error("document drawing panicked", zap.String("filename", filename), zap.Any("panic", r))
			doc, err = Document{}, fmt.Errorf("%w: %v", ErrGenerate, r)
		}
	}()

	layout := newLayout(g.compress)
	draw(layout)

	var buf bytes.Buffer
	if err := layout.pdf.Output(&buf); err != nil {
		g.logger.Error("document output failed", zap.String("filename", filename), zap.Error(err))
		return Document{}, fmt.Errorf("%w: %v", ErrGenerate, err)
	}

	g.logger.Debug("document rendered",
		zap.String("filename", filename),
		zap.Int("pages", layout.Pages()),
		zap.Int("bytes", buf.Len()),
	)
	return Document{Filename: filename, Content: buf.Bytes(), Pages: layout.Pages()}, nil
}

func (g *Generator) letterhead(l *Layout, heading string, date time.Time) {
	l.Font("B", 16)
	l.Line(g.orgName())
	l.Font("B", 13)
	l.Line(heading)
	l.Font("", bodySize)
	l.Line("Date: " + FormatDate(date))
	l.Rule()
}

func (g *Generator) orgName() string {
	if g.org == "" {
		return "University"
	}
	return g.org
}
