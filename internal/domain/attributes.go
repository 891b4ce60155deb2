package domain

// Material 상품 소재 분류입니다. 분류기는 항상 이 중 하나를 반환합니다.
type Material string

const (
	MaterialPlainSilver        Material = "plain-silver"
	MaterialSilverWithGemstone Material = "silver-with-gemstone"
	MaterialSteel              Material = "steel"
	MaterialAlloyWithStone     Material = "alloy-with-stone"
	MaterialGoldTone           Material = "gold-tone"
)

// Label 콘텐츠와 메타필드에 사용되는 소재 표시 이름을 반환합니다.
func (m Material) Label() string {
	switch m {
	case MaterialPlainSilver, MaterialSilverWithGemstone:
		return "925 Sterling Silver"
	case MaterialSteel:
		return "Stainless Steel"
	case MaterialGoldTone:
		return "Gold-Tone Alloy"
	default:
		return "Alloy"
	}
}

// IsSilver 순은(925) 계열 소재인지 반환합니다.
func (m Material) IsSilver() bool {
	return m == MaterialPlainSilver || m == MaterialSilverWithGemstone
}

// ProductType 상품 유형 분류입니다.
type ProductType string

const (
	TypeNecklace        ProductType = "necklace"
	TypeBracelet        ProductType = "bracelet"
	TypeRing            ProductType = "ring"
	TypeEarrings        ProductType = "earrings"
	TypePendantNecklace ProductType = "pendant-necklace"
	TypeChainNecklace   ProductType = "chain-necklace"
	TypeTennisNecklace  ProductType = "tennis-necklace"
	TypeAnklet          ProductType = "anklet"
	TypeChoker          ProductType = "choker"
	TypeGeneric         ProductType = "generic"
)

var productTypeLabels = map[ProductType][2]string{
	TypeNecklace:        {"Necklace", "Necklaces"},
	TypeBracelet:        {"Bracelet", "Bracelets"},
	TypeRing:            {"Ring", "Rings"},
	TypeEarrings:        {"Earrings", "Earrings"},
	TypePendantNecklace: {"Pendant Necklace", "Necklaces"},
	TypeChainNecklace:   {"Chain Necklace", "Necklaces"},
	TypeTennisNecklace:  {"Tennis Necklace", "Necklaces"},
	TypeAnklet:          {"Anklet", "Anklets"},
	TypeChoker:          {"Choker", "Necklaces"},
}

// Label 상품 유형의 표시 이름을 반환합니다. 분류되지 않은 유형은 "Jewelry"입니다.
func (t ProductType) Label() string {
	if l, ok := productTypeLabels[t]; ok {
		return l[0]
	}
	return "Jewelry"
}

// CollectionLabel 상품 유형에 대응하는 컬렉션 이름을 반환합니다. 분류되지 않은 유형은 빈 문자열입니다.
func (t ProductType) CollectionLabel() string {
	if l, ok := productTypeLabels[t]; ok {
		return l[1]
	}
	return ""
}

// IsNecklaceFamily 목걸이 계열(레이어드 연출이 가능한) 유형인지 반환합니다.
func (t ProductType) IsNecklaceFamily() bool {
	switch t {
	case TypeNecklace, TypePendantNecklace, TypeChainNecklace, TypeTennisNecklace, TypeChoker:
		return true
	}
	return false
}

// InferredAttributes 상품 텍스트에서 추론한 속성입니다. 저장되지 않으며 한 번의 실행에서만 사용됩니다.
type InferredAttributes struct {
	Material Material
	Gemstone string // 빈 문자열이면 보석 없음
	Type     ProductType

	// StyleTags 스타일, 지역, 모티프 태그
	StyleTags []string

	// Tags 기존 태그와 추론 태그를 합친 최종 태그 목록 (정렬됨)
	Tags []string

	// LengthsMM variant GraphQL ID별 추론 길이(mm). 키가 없으면 길이를 알 수 없는 variant입니다.
	LengthsMM map[string]int

	// Vintage 빈티지/레트로/팰리스 키워드가 있는지 여부
	Vintage bool
}

// HasGemstone 보석이 추론되었는지 반환합니다.
func (a InferredAttributes) HasGemstone() bool {
	return a.Gemstone != ""
}

// LengthOf 지정된 variant의 추론 길이를 반환합니다. 알 수 없으면 nil입니다.
func (a InferredAttributes) LengthOf(variantGID string) *int {
	if mm, ok := a.LengthsMM[variantGID]; ok {
		return &mm
	}
	return nil
}

// SeoContent 검색엔진 노출용 제목(최대 60자)과 설명(최대 160자)입니다.
type SeoContent struct {
	Title       string
	Description string
}

const (
	// MaxSEOTitleLength SEO 제목 최대 길이 (문자 수)
	MaxSEOTitleLength = 60

	// MaxSEODescriptionLength SEO 설명 최대 길이 (문자 수)
	MaxSEODescriptionLength = 160
)
