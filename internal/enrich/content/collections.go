package content

import "github.com/darkkaiser/product-enricher/internal/domain"

const sterlingSilverCollection = "Sterling Silver Jewelry"

// Collections 상품을 추가할 고정 컬렉션 제목 목록을 반환합니다.
// 컬렉션은 미리 만들어져 있어야 하며, 파이프라인은 컬렉션을 새로 만들지 않습니다.
func Collections(attrs domain.InferredAttributes) []string {
	var titles []string
	if attrs.HasGemstone() {
		titles = append(titles, attrs.Gemstone+" Jewelry")
	}
	if attrs.Material.IsSilver() {
		titles = append(titles, sterlingSilverCollection)
	}
	if label := attrs.Type.CollectionLabel(); label != "" {
		titles = append(titles, label)
	}
	return titles
}
