package contractparse_test

const sampleContract = `CỘNG HÒA XÃ HỘI CHỦ NGHĨA VIỆT NAM
Độc lập - Tự do - Hạnh phúc

HỢP ĐỒNG DỊCH VỤ BẢO VỆ
Số: 01062025/HĐDV-BV/ABC

BÊN A (BÊN CUNG CẤP DỊCH VỤ): CÔNG TY TNHH DỊCH VỤ BẢO VỆ BASMS
Địa chỉ: 1 Nguyễn Huệ, Quận 1, TP. Hồ Chí Minh
Điện thoại: 0281234567
Đại diện: Bà Trần Thị Lan – Giám đốc

Bên B: Công ty ABC
Địa chỉ: 12 Lê Lợi, Phường Bến Nghé, Quận 1, TP. Hồ Chí Minh
Điện thoại: 0901234567
Email: abc@company.vn
Đại diện: Ông Nguyễn Văn An – Giám đốc
CCCD: 079085001234

ĐIỀU 1: NỘI DUNG DỊCH VỤ
Bên A cung cấp 5 bảo vệ làm việc 24/7 tại mục tiêu.
Mục tiêu bảo vệ: Nhà máy ABC
Địa chỉ mục tiêu: Lô A1, KCN Tân Bình, TP. Hồ Chí Minh

ĐIỀU 2: THỜI HẠN HỢP ĐỒNG
Từ ngày 01/06/2025 đến ngày 31/05/2026.

ĐIỀU 3: CA LÀM VIỆC VÀ NGÀY NGHỈ
3.1 Ca làm việc:
- Ca sáng: 06h00 – 14h00
3.2 Ngày lễ: Bảo vệ vẫn làm việc vào các ngày lễ.
3.3 Cuối tuần: Thứ Bảy và Chủ nhật duy trì ca trực như ngày làm việc bình thường.
3.4 Các ngày nghỉ lễ:
- Tết Dương lịch: 01/01/2026
- Tết Nguyên Đán: từ 14/02/2026 đến 22/02/2026
- Giỗ Tổ Hùng Vương: 26/04/2026
- Ngày Giải phóng miền Nam 30/04 và Quốc tế Lao động 01/05
- Quốc khánh: 02/09 và 01/09
- Nghỉ bù: 04/05/2026

ĐIỀU 4: GIÁ TRỊ HỢP ĐỒNG VÀ THANH TOÁN
Giá trị hợp đồng được thanh toán hàng tháng.
`
