package advisor

import (
	"fmt"
	"strings"

	"itooklib/pkg/models"
)

const identifyPrompt = "Look at this anime character. Tell me ONLY their full canonical name. If not sure, return 'Unknown'."

func profilePrompt(char *models.Character) string {
	about := strings.TrimSpace(char.About)
	if about == "" {
		about = "Không có tiểu sử chi tiết."
	}

	return fmt.Sprintf(`Dựa vào thông tin tiếng Anh: %q.
Hãy đóng vai một Otaku chuyên nghiệp, viết hồ sơ phân tích nhân vật %s bằng tiếng Việt:

1. **Tiểu sử vắn tắt**: (Kể lại quá khứ hoặc xuất thân một cách lôi cuốn).
2. **Phim tham gia**: (Giới thiệu bộ Anime gốc và vai trò của nhân vật trong đó).
3. **Sức mạnh & Kỹ năng**: (Phân tích điểm mạnh, chiêu thức đặc biệt).
4. **Đánh giá cá nhân**: (Tại sao nhân vật này lại được yêu thích/hoặc bị ghét).
`, about, char.Name)
}

func recommendPrompt(p models.RecommendationProfile) string {
	return fmt.Sprintf(`Bạn là chuyên gia tư vấn sách và anime. Dựa trên thông tin sau:
- Độ tuổi: %d
- Sở thích: %s
- Tâm trạng: %s
- Phong cách: %s

Hãy đề xuất 5 %s phù hợp. Trả về ĐÚNG format JSON này (không thêm text nào khác):
[
  {
    "title": "Tên tác phẩm",
    "reason": "Lý do phù hợp với người dùng (2-3 câu)",
    "genre": "Thể loại",
    "search_keyword": "từ khóa search"
  }
]

CHỈ trả về JSON array, không giải thích gì thêm.
`, p.Age, p.Interests, p.Mood, p.ReadingStyle, p.ContentType)
}
