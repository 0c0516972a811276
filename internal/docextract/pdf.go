package docextract

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

// lineTolerance is the baseline distance, in text-space units, under which
// glyphs are considered to sit on the same line.
const lineTolerance = 2.0

func extractPDF(ctx context.Context, data []byte, logger *zap.Logger) (doc *Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			doc, err = nil, unreadable(FormatPDF, fmt.Errorf("parser panic: %v", r))
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, unreadable(FormatPDF, err)
	}

	numPages := reader.NumPage()
	doc = &Document{Format: FormatPDF, Pages: numPages}

	var out strings.Builder
	for i := 1; i <= numPages; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		text, perr := pageText(reader, i)
		if perr != nil {
			logger.Warn("skipping unreadable pdf page", zap.Int("page", i), zap.Error(perr))
			doc.Warnings = append(doc.Warnings, fmt.Sprintf("page %d could not be read: %v", i, perr))
			continue
		}
		if text == "" {
			continue
		}
		out.WriteString(text)
		out.WriteByte('\n')
	}

	doc.Text = out.String()
	return doc, nil
}

type pdfLine struct {
	y    float64
	text strings.Builder
}

// pageText groups the page's glyph runs into lines by baseline, keeping the
// content-stream order inside a line, then orders lines top to bottom.
func pageText(reader *pdf.Reader, num int) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("malformed content: %v", r)
		}
	}()

	page := reader.Page(num)
	if page.V.IsNull() {
		return "", nil
	}

	var lines []*pdfLine
	var cur *pdfLine
	for _, glyph := range page.Content().Text {
		if cur == nil || math.Abs(glyph.Y-cur.y) > lineTolerance {
			cur = &pdfLine{y: glyph.Y}
			lines = append(lines, cur)
		}
		cur.text.WriteString(glyph.S)
	}

	sort.SliceStable(lines, func(i, j int) bool {
		return lines[i].y > lines[j].y
	})

	parts := make([]string, 0, len(lines))
	for _, l := range lines {
		parts = append(parts, l.text.String())
	}
	return strings.Join(parts, "\n"), nil
}
