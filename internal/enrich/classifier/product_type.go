package classifier

import (
	"regexp"

	"github.com/darkkaiser/product-enricher/internal/domain"
)

var productTypeRules = []struct {
	productType domain.ProductType
	pattern     *regexp.Regexp
}{
	{domain.TypeBracelet, regexp.MustCompile(`\b(bracelets?|bangles?)\b`)},
	{domain.TypeEarrings, regexp.MustCompile(`\b(earrings?|ear studs?|huggies)\b`)},
	{domain.TypeRing, regexp.MustCompile(`\brings?\b`)},
	{domain.TypeAnklet, regexp.MustCompile(`\banklets?\b`)},
	{domain.TypeChoker, regexp.MustCompile(`\bchokers?\b`)},
	{domain.TypeTennisNecklace, regexp.MustCompile(`\btennis (necklaces?|chains?)\b`)},
	{domain.TypePendantNecklace, regexp.MustCompile(`\bpendants?\b`)},
	{domain.TypeChainNecklace, regexp.MustCompile(`\bchains?\b`)},
	{domain.TypeNecklace, regexp.MustCompile(`\bnecklaces?\b`)},
}

// InferProductType 정규화된 텍스트에서 상품 유형을 추론합니다. 일치하는 키워드가 없으면 TypeGeneric입니다.
func InferProductType(text string) domain.ProductType {
	for _, r := range productTypeRules {
		if r.pattern.MatchString(text) {
			return r.productType
		}
	}
	return domain.TypeGeneric
}
