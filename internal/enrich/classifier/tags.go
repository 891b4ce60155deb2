package classifier

import (
	"regexp"
	"sort"

	"github.com/darkkaiser/product-enricher/internal/domain"
	"github.com/darkkaiser/product-enricher/pkg/strutil"
)

var baseTags = []string{"Jewelry", "Gift"}

var categoryTags = map[domain.ProductType][]string{
	domain.TypeNecklace:        {"Necklace"},
	domain.TypePendantNecklace: {"Necklace", "Pendant"},
	domain.TypeChainNecklace:   {"Necklace", "Chain"},
	domain.TypeTennisNecklace:  {"Necklace", "Tennis Necklace"},
	domain.TypeChoker:          {"Necklace", "Choker"},
	domain.TypeBracelet:        {"Bracelet"},
	domain.TypeRing:            {"Ring"},
	domain.TypeEarrings:        {"Earrings"},
	domain.TypeAnklet:          {"Anklet"},
}

var materialTags = map[domain.Material][]string{
	domain.MaterialPlainSilver:        {"Sterling Silver", "925 Silver"},
	domain.MaterialSilverWithGemstone: {"Sterling Silver", "925 Silver"},
	domain.MaterialSteel:              {"Stainless Steel"},
	domain.MaterialAlloyWithStone:     {"Fashion Jewelry"},
	domain.MaterialGoldTone:           {"Gold Tone"},
}

var styleRules = []struct {
	tag     string
	pattern *regexp.Regexp
}{
	{"Vintage", regexp.MustCompile(`\b(vintage|retro)\b`)},
	{"Palace Style", regexp.MustCompile(`\bpalace\b`)},
	{"European Style", regexp.MustCompile(`\beuropean\b`)},
	{"Italian Style", regexp.MustCompile(`\bitalian\b`)},
	{"Medallion", regexp.MustCompile(`\bmedallions?\b`)},
	{"Floral", regexp.MustCompile(`\b(floral|flowers?)\b`)},
	{"Sunburst", regexp.MustCompile(`\bsunburst\b`)},
	{"For Her", regexp.MustCompile(`\b(women'?s?|ladies|her)\b`)},
	{"For Him", regexp.MustCompile(`\b(men'?s?|him)\b`)},
	{"Unisex", regexp.MustCompile(`\bunisex\b`)},
}

var vintagePattern = regexp.MustCompile(`\b(vintage|retro|palace)\b`)

func inferStyleTags(text string) []string {
	var tags []string
	for _, r := range styleRules {
		if r.pattern.MatchString(text) {
			tags = append(tags, r.tag)
		}
	}
	return tags
}

func inferTags(material domain.Material, gemstone string, productType domain.ProductType, styleTags []string) []string {
	tags := make([]string, 0, 16)
	tags = append(tags, baseTags...)
	tags = append(tags, categoryTags[productType]...)
	tags = append(tags, materialTags[material]...)
	if gemstone != "" {
		tags = append(tags, "Gemstone", gemstone)
	}
	return append(tags, styleTags...)
}

// MergeTags 쉼표로 구분된 기존 태그와 추론 태그를 대소문자를 구분하는 합집합으로 병합하고 정렬하여 반환합니다.
func MergeTags(existing string, inferred []string) []string {
	seen := make(map[string]struct{})
	merged := make([]string, 0, len(inferred))

	add := func(tag string) {
		tag = strutil.NormalizeSpaces(tag)
		if tag == "" {
			return
		}
		if _, ok := seen[tag]; ok {
			return
		}
		seen[tag] = struct{}{}
		merged = append(merged, tag)
	}

	for _, t := range strutil.SplitAndTrim(existing, ",") {
		add(t)
	}
	for _, t := range inferred {
		add(t)
	}

	sort.Strings(merged)
	return merged
}
