package content

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/darkkaiser/product-enricher/internal/domain"
	"github.com/stretchr/testify/assert"
)

const testBrand = "Lumière Atelier"

func TestCleanTitle(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Opal Ring | Free Shipping", "Opal Ring"},
		{"  Opal   Ring  ", "Opal Ring"},
		{"Opal Ring|Sale|2024", "Opal Ring"},
		{"| only suffix", ""},
		{"", ""},
		{"Ring\twith\ntabs", "Ring with tabs"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanTitle(tt.input))
		})
	}
}

func TestSynthesizer_SEO(t *testing.T) {
	s := NewSynthesizer(testBrand)

	t.Run("짧은 제목은 브랜드 포함", func(t *testing.T) {
		seo := s.SEO("Opal Ring", domain.MaterialAlloyWithStone, domain.TypeRing, "Opal", false)

		assert.Equal(t, "Opal Ring | Opal Alloy Ring by Lumière Atelier", seo.Title)
		assert.Equal(t, "Opal Ring — Ring crafted in Opal Alloy. "+hookSparkle, seo.Description)
	})

	t.Run("길면 브랜드를 포함한 전체 제목을 단어 경계에서 자름", func(t *testing.T) {
		seo := s.SEO("Opal Drop Ring Set", domain.MaterialPlainSilver, domain.TypeRing, "", false)

		assert.Equal(t, "Opal Drop Ring Set | 925 Sterling Silver Ring by Lumière", seo.Title)
		assert.LessOrEqual(t, utf8.RuneCountInString(seo.Title), domain.MaxSEOTitleLength)
		assert.True(t, strings.HasSuffix(seo.Description, hookDurability))
	})

	t.Run("브랜드가 없으면 by 구문 생략", func(t *testing.T) {
		seo := NewSynthesizer("").SEO("Opal Ring", domain.MaterialAlloyWithStone, domain.TypeRing, "Opal", false)

		assert.Equal(t, "Opal Ring | Opal Alloy Ring", seo.Title)
	})

	t.Run("그래도 길면 단어 경계에서 자름", func(t *testing.T) {
		seo := s.SEO("Moissanite Tennis Necklace S925", domain.MaterialSilverWithGemstone, domain.TypeTennisNecklace, "Moissanite", false)

		assert.Equal(t, "Moissanite Tennis Necklace S925 | Moissanite 925 Sterling", seo.Title)
	})

	t.Run("빈티지 훅", func(t *testing.T) {
		seo := s.SEO("Palace Medallion", domain.MaterialGoldTone, domain.TypePendantNecklace, "", true)
		assert.True(t, strings.HasSuffix(seo.Description, hookVintage))
	})

	t.Run("보석 훅이 빈티지 훅보다 우선", func(t *testing.T) {
		seo := s.SEO("Retro Garnet", domain.MaterialAlloyWithStone, domain.TypeRing, "Garnet", true)
		assert.True(t, strings.HasSuffix(seo.Description, hookSparkle))
	})

	t.Run("빈 제목은 유형 이름 사용", func(t *testing.T) {
		seo := s.SEO("", domain.MaterialAlloyWithStone, domain.TypeGeneric, "", false)
		assert.True(t, strings.HasPrefix(seo.Title, "Jewelry | Alloy Jewelry"))
	})
}

func TestSynthesizer_SEO_LengthInvariant(t *testing.T) {
	s := NewSynthesizer(testBrand)

	titles := []string{
		"",
		"A",
		strings.Repeat("Word ", 50),
		strings.Repeat("Supercalifragilisticexpialidocious", 5),
		"Très Élégant Collier Fantaisie En Argent Sterling Avec Pierres Précieuses Naturelles",
		"한글로 된 아주 긴 상품명 " + strings.Repeat("목걸이 ", 40),
	}
	gems := []string{"", "Cubic Zirconia", "Tiger's Eye"}

	for _, title := range titles {
		for _, gem := range gems {
			seo := s.SEO(CleanTitle(title), domain.MaterialSilverWithGemstone, domain.TypePendantNecklace, gem, true)

			assert.LessOrEqual(t, utf8.RuneCountInString(seo.Title), domain.MaxSEOTitleLength, "title=%q", seo.Title)
			assert.LessOrEqual(t, utf8.RuneCountInString(seo.Description), domain.MaxSEODescriptionLength, "description=%q", seo.Description)
			assert.NotEmpty(t, seo.Title)
		}
	}
}

func TestSynthesizer_AltText(t *testing.T) {
	s := NewSynthesizer(testBrand)

	assert.Equal(t, "Opal Ring | Lumière Atelier", s.AltText("Opal Ring"))
	assert.Equal(t, "Opal Ring by Lumière Atelier", s.AltText("Opal Ring by Lumière Atelier"))
	assert.Equal(t, "Opal Ring", NewSynthesizer("").AltText("Opal Ring"))
}

func TestCollections(t *testing.T) {
	tests := []struct {
		name     string
		attrs    domain.InferredAttributes
		expected []string
	}{
		{
			name:     "보석+순은+목걸이",
			attrs:    domain.InferredAttributes{Material: domain.MaterialSilverWithGemstone, Gemstone: "Moissanite", Type: domain.TypeTennisNecklace},
			expected: []string{"Moissanite Jewelry", "Sterling Silver Jewelry", "Necklaces"},
		},
		{
			name:     "스틸 팔찌",
			attrs:    domain.InferredAttributes{Material: domain.MaterialSteel, Type: domain.TypeBracelet},
			expected: []string{"Bracelets"},
		},
		{
			name:     "분류되지 않은 합금",
			attrs:    domain.InferredAttributes{Material: domain.MaterialAlloyWithStone, Type: domain.TypeGeneric},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Collections(tt.attrs))
		})
	}
}
