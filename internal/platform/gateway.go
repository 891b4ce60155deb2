// Package platform 상품 정보를 저장하는 커머스 플랫폼과의 쓰기 경계를 정의합니다.
package platform

import (
	"context"

	"github.com/darkkaiser/product-enricher/internal/domain"
)

// Collection 상품을 묶어서 보여주는 컬렉션입니다.
type Collection struct {
	// GraphQLID gid://shopify/Collection/{id} 형식의 식별자
	GraphQLID string
	Title     string
}

// Image 상품 이미지입니다. Alt가 비어있으면 대체 텍스트가 없는 이미지입니다.
type Image struct {
	ID  int64
	Alt string
	Src string
}

// Metafield 상품에 기록할 메타필드 값입니다.
type Metafield struct {
	Namespace string
	Key       string
	Value     string
}

// Gateway 보강 결과를 플랫폼에 기록하는 연산의 집합입니다.
//
// 모든 메서드는 실패 시 AppError를 반환합니다. 대상 리소스가 없으면 NotFound,
// 플랫폼에 연결할 수 없으면 System, 호출 한도 초과나 일시 장애는 Unavailable,
// 플랫폼이 요청을 거부하면 ExecutionFailed로 분류됩니다.
type Gateway interface {
	// UpdateProductSEO 상품의 검색 엔진용 제목과 설명을 갱신합니다. (GraphQL)
	UpdateProductSEO(ctx context.Context, productGID string, seo domain.SeoContent) error

	// UpdateProductDescription 상품 설명 HTML을 교체합니다. (REST)
	UpdateProductDescription(ctx context.Context, productID int64, html string) error

	// UpdateProductTags 상품 태그 전체를 교체합니다. (REST)
	UpdateProductTags(ctx context.Context, productID int64, tags []string) error

	// UpdateVariantPrice 옵션 상품의 가격을 갱신합니다. (REST)
	UpdateVariantPrice(ctx context.Context, variantID int64, price float64) error

	// UpdateVariantPriceGraphQL REST 경로에서 옵션 상품을 찾지 못했을 때 사용하는 GraphQL 경로입니다.
	UpdateVariantPriceGraphQL(ctx context.Context, productGID, variantGID string, price float64) error

	SetMetafield(ctx context.Context, productGID string, mf Metafield) error

	// FindCollectionByTitle 제목이 정확히 일치하는 컬렉션을 찾습니다. 없으면 nil, nil을 반환합니다.
	FindCollectionByTitle(ctx context.Context, title string) (*Collection, error)

	// AddProductToCollection 상품을 컬렉션에 추가합니다. 이미 포함되어 있으면 성공으로 간주합니다.
	AddProductToCollection(ctx context.Context, collectionGID, productGID string) error

	ListProductImages(ctx context.Context, productID int64) ([]Image, error)
	SetImageAltText(ctx context.Context, productID, imageID int64, alt string) error
}
