package docextract

import (
	"context"
	"fmt"

	docextracterrors "github.com/Vietanh2703/BASMS-BE-sub000/internal/docextract/errors"

	"go.uber.org/zap"
)

type Extractor struct {
	logger *zap.Logger
}

func NewExtractor(logger ...*zap.Logger) *Extractor {
	l := zap.L().Named("docextract")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("docextract")
	}
	return &Extractor{logger: l}
}

// Extract converts a .docx or .pdf payload into normalised plain text.
func (e *Extractor) Extract(ctx context.Context, data []byte, fileName string) (*Document, error) {
	format, err := DetectFormat(fileName)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, docextracterrors.ErrEmptyDocument
	}

	var doc *Document
	switch format {
	case FormatDocx:
		doc, err = extractDocx(data)
	case FormatPDF:
		doc, err = extractPDF(ctx, data, e.logger)
	}
	if err != nil {
		return nil, err
	}

	doc.Text = Normalize(doc.Text)
	if doc.Text == "" {
		return nil, docextracterrors.ErrEmptyDocument
	}

	e.logger.Debug("document extracted",
		zap.String("file_name", fileName),
		zap.String("format", string(format)),
		zap.Int("pages", doc.Pages),
		zap.Int("chars", len(doc.Text)),
		zap.Int("warnings", len(doc.Warnings)),
	)
	return doc, nil
}

func unreadable(format Format, err error) error {
	return fmt.Errorf("%w: %s: %w", docextracterrors.ErrDocumentUnreadable, format, err)
}
