package classifier

import (
	"regexp"

	"github.com/darkkaiser/product-enricher/internal/domain"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	purityPattern         = regexp.MustCompile(`\b(s?925|fine silver)\b`)
	sterlingPattern       = regexp.MustCompile(`\bsterling\b`)
	sterlingSilverPattern = regexp.MustCompile(`\bsterling silver\b`)
	stainlessPattern      = regexp.MustCompile(`\bstainless\b`)
	alloyPattern          = regexp.MustCompile(`\b(crystals?|rhinestones?|alloy|zinc|copper|brass|plated|plating)\b`)
	goldTonePattern       = regexp.MustCompile(`\bgold[ -]?tone\b`)
)

type gemstone struct {
	name    string
	pattern *regexp.Regexp
}

// gemstoneVocabulary 보석 어휘입니다. 순서대로 검사하며 처음 일치한 보석을 사용합니다.
var gemstoneVocabulary = []gemstone{
	{"moissanite", regexp.MustCompile(`\bmoissanite\b`)},
	{"amethyst", regexp.MustCompile(`\bamethysts?\b`)},
	{"opal", regexp.MustCompile(`\bopals?\b`)},
	{"agate", regexp.MustCompile(`\bagates?\b`)},
	{"carnelian", regexp.MustCompile(`\bcarnelian\b`)},
	{"rose quartz", regexp.MustCompile(`\brose[ -]quartz\b`)},
	{"quartz", regexp.MustCompile(`\bquartz\b`)},
	{"tiger's eye", regexp.MustCompile(`\btiger'?s?[ -]eye\b`)},
	{"onyx", regexp.MustCompile(`\bonyx\b`)},
	{"malachite", regexp.MustCompile(`\bmalachite\b`)},
	{"turquoise", regexp.MustCompile(`\bturquoise\b`)},
	{"zircon", regexp.MustCompile(`\bzircons?\b`)},
	{"cubic zirconia", regexp.MustCompile(`\b(cubic[ -]zirconia|cz)\b`)},
	{"crystal", regexp.MustCompile(`\bcrystals?\b`)},
	{"garnet", regexp.MustCompile(`\bgarnets?\b`)},
	{"ruby", regexp.MustCompile(`\b(ruby|rubies)\b`)},
	{"sapphire", regexp.MustCompile(`\bsapphires?\b`)},
	{"emerald", regexp.MustCompile(`\bemeralds?\b`)},
}

// InferGemstone 정규화된 텍스트에서 보석 이름을 추론합니다. 일치하는 보석이 없으면 빈 문자열을 반환합니다.
//
//	InferGemstone("s925 cz stud earrings") // "Cubic Zirconia"
func InferGemstone(text string) string {
	for _, g := range gemstoneVocabulary {
		if g.pattern.MatchString(text) {
			return cases.Title(language.English).String(g.name)
		}
	}
	return ""
}

// InferMaterial 정규화된 텍스트에서 소재를 추론합니다. 항상 정의된 소재 중 하나를 반환합니다.
func InferMaterial(text string) domain.Material {
	hasGemstone := InferGemstone(text) != ""
	hasPurity := purityPattern.MatchString(text)

	switch {
	case hasGemstone && (hasPurity || sterlingPattern.MatchString(text)):
		return domain.MaterialSilverWithGemstone
	case hasPurity || sterlingSilverPattern.MatchString(text):
		return domain.MaterialPlainSilver
	case stainlessPattern.MatchString(text):
		return domain.MaterialSteel
	case hasGemstone || alloyPattern.MatchString(text):
		return domain.MaterialAlloyWithStone
	case goldTonePattern.MatchString(text):
		return domain.MaterialGoldTone
	default:
		return domain.MaterialAlloyWithStone
	}
}
