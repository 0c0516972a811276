package docextract_test

import (
	"context"
	"strings"
	"testing"

	"github.com/Vietanh2703/BASMS-BE-sub000/internal/docextract"
	docextracterrors "github.com/Vietanh2703/BASMS-BE-sub000/internal/docextract/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newExtractor() *docextract.Extractor {
	return docextract.NewExtractor(zap.NewNop())
}

func TestExtract_UnsupportedExtension(t *testing.T) {
	for _, name := range []string{"contract.doc", "contract.txt", "contract", "scan.png"} {
		_, err := newExtractor().Extract(context.Background(), []byte("x"), name)
		assert.ErrorIs(t, err, docextracterrors.ErrUnsupportedFileType, name)
	}
}

func TestExtract_DocxParagraphsAndTables(t *testing.T) {
	body := para("HỢP ĐỒNG DỊCH VỤ BẢO VỆ") +
		`<w:p><w:pPr><w:tabs><w:tab w:val="left" w:pos="720"/></w:tabs></w:pPr>` +
		`<w:r><w:t>Số:</w:t></w:r><w:r><w:tab/><w:t>01062025/HĐDV-BV</w:t></w:r></w:p>` +
		`<w:tbl><w:tr>` +
		`<w:tc>` + para("Ca sáng") + `</w:tc>` +
		`<w:tc>` + para("06h00") + para("14h00") + `</w:tc>` +
		`</w:tr></w:tbl>` +
		`<w:p><w:r><w:t>dòng một</w:t><w:br/><w:t>dòng hai</w:t></w:r></w:p>`

	doc, err := newExtractor().Extract(context.Background(), buildDocx(t, body), "HopDong.DOCX")
	require.NoError(t, err)

	assert.Equal(t, docextract.FormatDocx, doc.Format)
	assert.Equal(t,
		"HỢP ĐỒNG DỊCH VỤ BẢO VỆ\nSố:\t01062025/HĐDV-BV\nCa sáng | 06h00 14h00\ndòng một\ndòng hai",
		doc.Text,
	)
}

func TestExtract_DocxWithoutText(t *testing.T) {
	_, err := newExtractor().Extract(context.Background(), buildDocx(t, para("   ")), "empty.docx")
	assert.ErrorIs(t, err, docextracterrors.ErrEmptyDocument)
}

func TestExtract_CorruptDocx(t *testing.T) {
	_, err := newExtractor().Extract(context.Background(), []byte("not a zip archive"), "broken.docx")
	assert.ErrorIs(t, err, docextracterrors.ErrDocumentUnreadable)
}

func TestExtract_PDF(t *testing.T) {
	data := buildPDF([]string{"HOP DONG DICH VU BAO VE", "DIEU 1: NOI DUNG", "Tong so: 2 bao ve"})

	doc, err := newExtractor().Extract(context.Background(), data, "contract.pdf")
	require.NoError(t, err)

	assert.Equal(t, docextract.FormatPDF, doc.Format)
	assert.Equal(t, 1, doc.Pages)
	assert.Contains(t, doc.Text, "HOP DONG DICH VU BAO VE")
	assert.Contains(t, doc.Text, "DIEU 1: NOI DUNG")
	assert.Less(t, strings.Index(doc.Text, "HOP DONG"), strings.Index(doc.Text, "DIEU 1"))
}

func TestExtract_CorruptPDF(t *testing.T) {
	_, err := newExtractor().Extract(context.Background(), []byte("%PDF-1.4 garbage"), "broken.pdf")
	assert.ErrorIs(t, err, docextracterrors.ErrDocumentUnreadable)
}

func TestNormalize(t *testing.T) {
	// decomposed "ệ" (e, combining dot below, combining circumflex) must compose
	in := "B\u1ea3o\u00a0ve\u0323\u0302\r\nline two   \r\n\r\n\r\n\r\nend"
	assert.Equal(t, "B\u1ea3o v\u1ec7\nline two\n\nend", docextract.Normalize(in))
}
