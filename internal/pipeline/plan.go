package pipeline

import (
	"github.com/darkkaiser/product-enricher/internal/domain"
)

// StepKind 갱신 단계의 종류입니다.
type StepKind string

const (
	StepSEO                  StepKind = "seo"
	StepDescription          StepKind = "description"
	StepTags                 StepKind = "tags"
	StepVariantPrice         StepKind = "variant-price"
	StepMetafield            StepKind = "metafield"
	StepCollectionMembership StepKind = "collection-membership"
	StepImageAlt             StepKind = "image-alt"
)

// PlannedStep 실행할 갱신 단계 하나입니다. Target은 단계가 다루는 대상(상품, variant, 컬렉션 제목)입니다.
type PlannedStep struct {
	Kind     StepKind
	Target   string
	Required bool
}

// UpdatePlan 이벤트 하나에 대해 순서대로 실행할 갱신 단계 목록입니다. 이벤트마다 새로 만들어집니다.
type UpdatePlan struct {
	Steps []PlannedStep
}

// buildPlan 실행 순서를 결정합니다.
//
// SEO(필수) → 설명 → 태그 → variant별 가격 → 메타필드 → 컬렉션별 등록 → 이미지 대체 텍스트
//
// 가격 갱신은 콘텐츠 갱신 뒤에 두어 콘텐츠 실패가 가격 보정을 막지 않도록 합니다.
func buildPlan(event *domain.ProductEvent, prices map[string]float64, collections []string) UpdatePlan {
	productGID := event.GraphQLID

	steps := []PlannedStep{
		{Kind: StepSEO, Target: productGID, Required: true},
		{Kind: StepDescription, Target: productGID},
		{Kind: StepTags, Target: productGID},
	}

	for _, v := range event.Variants {
		if _, ok := prices[v.GraphQLID]; ok {
			steps = append(steps, PlannedStep{Kind: StepVariantPrice, Target: v.GraphQLID})
		}
	}

	steps = append(steps, PlannedStep{Kind: StepMetafield, Target: productGID})

	for _, title := range collections {
		steps = append(steps, PlannedStep{Kind: StepCollectionMembership, Target: title})
	}

	steps = append(steps, PlannedStep{Kind: StepImageAlt, Target: productGID})

	return UpdatePlan{Steps: steps}
}
