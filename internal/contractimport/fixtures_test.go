package contractimport_test

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleContract = `HỢP ĐỒNG DỊCH VỤ BẢO VỆ
Số: 01062025/HĐDV-BV/ABC

BÊN A (BÊN CUNG CẤP DỊCH VỤ): CÔNG TY TNHH DỊCH VỤ BẢO VỆ BASMS
Địa chỉ: 1 Nguyễn Huệ, Quận 1, TP. Hồ Chí Minh
Điện thoại: 0281234567

Bên B: Công ty ABC
Địa chỉ: 12 Lê Lợi, Phường Bến Nghé, Quận 1, TP. Hồ Chí Minh
Điện thoại: 0901234567
Email: abc@company.vn
Đại diện: Ông Nguyễn Văn An – Giám đốc

ĐIỀU 1: NỘI DUNG DỊCH VỤ
Bên A cung cấp 5 bảo vệ làm việc 24/7 tại mục tiêu.
Mục tiêu bảo vệ: Nhà máy ABC
Địa chỉ mục tiêu: Lô A1, KCN Tân Bình, TP. Hồ Chí Minh

ĐIỀU 2: THỜI HẠN HỢP ĐỒNG
Từ ngày 01/06/2025 đến ngày 31/05/2026.

ĐIỀU 3: CA LÀM VIỆC VÀ NGÀY NGHỈ
3.1 Ca làm việc:
- Ca sáng: 06h00 – 14h00
3.3 Cuối tuần: Thứ Bảy và Chủ nhật duy trì ca trực như ngày làm việc bình thường.

ĐIỀU 4: GIÁ TRỊ HỢP ĐỒNG VÀ THANH TOÁN
Giá trị hợp đồng được thanh toán hàng tháng.
`

// buildDocx renders every line of text as its own paragraph.
func buildDocx(t *testing.T, text string) []byte {
	t.Helper()

	var body strings.Builder
	for _, line := range strings.Split(text, "\n") {
		var esc bytes.Buffer
		require.NoError(t, xml.EscapeText(&esc, []byte(line)))
		body.WriteString(`<w:p><w:r><w:t xml:space="preserve">` + esc.String() + `</w:t></w:r></w:p>`)
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	w, err := zw.Create("[Content_Types].xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"></Types>`))
	require.NoError(t, err)

	w, err = zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = fmt.Fprintf(w,
		`<?xml version="1.0" encoding="UTF-8"?><w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>%s</w:body></w:document>`,
		body.String())
	require.NoError(t, err)

	require.NoError(t, zw.Close())
	return buf.Bytes()
}
