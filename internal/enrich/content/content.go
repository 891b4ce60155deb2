// Package content 추론된 상품 속성으로 SEO 제목/설명, 상품 상세 HTML, 이미지 대체 텍스트를 생성합니다.
package content

import (
	"regexp"
	"strings"

	"github.com/darkkaiser/product-enricher/internal/domain"
	"github.com/darkkaiser/product-enricher/pkg/strutil"
)

const (
	hookSparkle    = "Brilliant sparkle that catches the light from every angle."
	hookVintage    = "Timeless vintage-inspired design with heirloom charm."
	hookDurability = "Designed for everyday wear with lasting shine."
)

// titleSuffixPattern 공급처가 제목 뒤에 붙이는 " | 무료배송" 류의 접미사
var titleSuffixPattern = regexp.MustCompile(`\s*\|.*$`)

// Synthesizer 상품 콘텐츠 생성기입니다. 상태가 없으므로 여러 고루틴에서 공유해도 안전합니다.
type Synthesizer struct {
	brand string
}

// NewSynthesizer 브랜드 이름으로 콘텐츠 생성기를 생성합니다.
func NewSynthesizer(brand string) *Synthesizer {
	return &Synthesizer{brand: strutil.NormalizeSpaces(brand)}
}

// Brand 생성기에 설정된 브랜드 이름을 반환합니다.
func (s *Synthesizer) Brand() string {
	return s.brand
}

// CleanTitle 제목에서 '|' 뒤의 접미사를 제거하고 공백을 정리합니다.
//
//	CleanTitle("Opal Ring  | Free Shipping") // "Opal Ring"
func CleanTitle(title string) string {
	return strutil.NormalizeSpaces(titleSuffixPattern.ReplaceAllString(title, ""))
}

// SEO 검색엔진 노출용 제목(60자 이하)과 설명(160자 이하)을 생성합니다.
func (s *Synthesizer) SEO(cleanTitle string, material domain.Material, productType domain.ProductType, gemstone string, vintage bool) domain.SeoContent {
	if cleanTitle = strutil.NormalizeSpaces(cleanTitle); cleanTitle == "" {
		cleanTitle = productType.Label()
	}

	crafted := withGemstone(gemstone, material.Label())

	// 완성된 제목 전체를 길이 제한에 맞춰 자르므로 긴 제목에서는 브랜드가 일부 또는 전부 잘릴 수 있습니다.
	title := cleanTitle + " | " + crafted + " " + productType.Label()
	if s.brand != "" {
		title += " by " + s.brand
	}

	hook := hookDurability
	switch {
	case gemstone != "":
		hook = hookSparkle
	case vintage:
		hook = hookVintage
	}
	description := cleanTitle + " — " + productType.Label() + " crafted in " + crafted + ". " + hook

	return domain.SeoContent{
		Title:       strutil.Truncate(title, domain.MaxSEOTitleLength),
		Description: strutil.Truncate(description, domain.MaxSEODescriptionLength),
	}
}

// AltText 이미지 대체 텍스트를 생성합니다.
func (s *Synthesizer) AltText(seoTitle string) string {
	if s.brand == "" || strings.HasSuffix(seoTitle, s.brand) {
		return seoTitle
	}
	return seoTitle + " | " + s.brand
}

func withGemstone(gemstone, label string) string {
	if gemstone == "" {
		return label
	}
	return gemstone + " " + label
}
