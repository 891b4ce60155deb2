// Package classifier 상품의 자유 텍스트(제목, 설명, 태그)에서 소재, 보석, 상품 유형, 태그,
// variant 길이를 추론합니다.
//
// 모든 함수는 순수 함수이며 에러를 반환하지 않습니다. 신호가 없으면 정해진 기본값을 사용합니다.
package classifier

import (
	"strings"

	"github.com/darkkaiser/product-enricher/internal/domain"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Input 분류에 사용되는 상품 텍스트입니다.
type Input struct {
	Title string

	// Description HTML이 제거된 설명 텍스트
	Description string

	// ExistingTags 쉼표로 구분된 기존 태그
	ExistingTags string

	// ProductType 플랫폼에 등록된 상품 유형 (비어있을 수 있음)
	ProductType string

	Variants []domain.VariantRef
}

// Classify 상품 텍스트에서 속성을 추론합니다.
func Classify(in Input) domain.InferredAttributes {
	// 제목과 상품 유형 필드는 설명보다 신뢰도가 높으므로 유형 추론에서 먼저 검사합니다.
	head := normalize(in.Title + " " + in.ProductType)
	full := normalize(strings.Join([]string{in.Title, in.Description, in.ExistingTags, in.ProductType}, " "))

	gemstone := InferGemstone(full)
	material := InferMaterial(full)

	productType := InferProductType(head)
	if productType == domain.TypeGeneric {
		productType = InferProductType(full)
	}

	styleTags := inferStyleTags(full)

	lengths := make(map[string]int)
	for _, v := range in.Variants {
		if mm, ok := InferLengthMM(v.SizeStrings()...); ok && v.GraphQLID != "" {
			lengths[v.GraphQLID] = mm
		}
	}

	return domain.InferredAttributes{
		Material:  material,
		Gemstone:  gemstone,
		Type:      productType,
		StyleTags: styleTags,
		Tags:      MergeTags(in.ExistingTags, inferTags(material, gemstone, productType, styleTags)),
		LengthsMM: lengths,
		Vintage:   vintagePattern.MatchString(full),
	}
}

// normalize 매칭 전에 텍스트를 NFKC 정규화하고 소문자로 변환합니다.
// 둥근 따옴표는 일반 작은따옴표로 바꿉니다.
func normalize(s string) string {
	s = norm.NFKC.String(s)
	s = cases.Lower(language.Und).String(s)
	return strings.NewReplacer("’", "'", "‘", "'", "`", "'").Replace(s)
}
