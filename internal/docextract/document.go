package docextract

import (
	"path/filepath"
	"strings"

	docextracterrors "github.com/Vietanh2703/BASMS-BE-sub000/internal/docextract/errors"
)

type Format string

const (
	FormatDocx Format = "docx"
	FormatPDF  Format = "pdf"
)

// Document is the plain-text rendition of an uploaded contract.
type Document struct {
	Text     string
	Format   Format
	Pages    int // zero for docx, which carries no pagination
	Warnings []string
}

// DetectFormat dispatches on the file extension only; content sniffing is not attempted.
func DetectFormat(fileName string) (Format, error) {
	switch strings.ToLower(filepath.Ext(strings.TrimSpace(fileName))) {
	case ".docx":
		return FormatDocx, nil
	case ".pdf":
		return FormatPDF, nil
	default:
		return "", docextracterrors.ErrUnsupportedFileType
	}
}
