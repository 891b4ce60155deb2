package domain

import (
	"slices"
	"strconv"
	"strings"
	"sync"

	apperrors "github.com/darkkaiser/product-enricher/internal/pkg/errors"
	"github.com/go-playground/validator/v10"
)

const (
	productGIDPrefix = "gid://shopify/Product/"
	variantGIDPrefix = "gid://shopify/ProductVariant/"
	imageGIDPrefix   = "gid://shopify/ProductImage/"
)

// ProductEvent 상품 생성 웹훅(products/create)으로 전달되는 상품 정보입니다.
//
// 한 번의 파이프라인 실행 동안에만 사용되며 실행 중에는 변경되지 않습니다.
type ProductEvent struct {
	ID          int64        `json:"id" validate:"gte=0"`
	GraphQLID   string       `json:"admin_graphql_api_id" validate:"omitempty,startswith=gid://shopify/Product/"`
	Title       string       `json:"title"`
	BodyHTML    string       `json:"body_html"`
	Tags        string       `json:"tags"`
	ProductType string       `json:"product_type"`
	Vendor      string       `json:"vendor"`
	Variants    []VariantRef `json:"variants" validate:"dive"`
	Images      []ImageRef   `json:"images" validate:"dive"`
}

// VariantRef 상품에 속한 variant 정보입니다.
type VariantRef struct {
	ID        int64   `json:"id" validate:"gte=0"`
	GraphQLID string  `json:"admin_graphql_api_id" validate:"omitempty,startswith=gid://shopify/ProductVariant/"`
	Title     string  `json:"title"`
	Option1   *string `json:"option1"`
	Option2   *string `json:"option2"`
	Option3   *string `json:"option3"`
	Price     string  `json:"price"`
}

// ImageRef 상품 이미지 정보입니다. Alt가 nil이거나 빈 문자열이면 대체 텍스트가 없는 이미지입니다.
type ImageRef struct {
	ID  int64   `json:"id" validate:"gte=0"`
	Alt *string `json:"alt"`
	Src string  `json:"src"`
}

// HasAlt 이미지에 대체 텍스트가 설정되어 있는지 반환합니다.
func (i ImageRef) HasAlt() bool {
	return i.Alt != nil && strings.TrimSpace(*i.Alt) != ""
}

// SizeStrings 길이 추론에 사용할 variant의 문자열(제목, 옵션)을 반환합니다.
func (v VariantRef) SizeStrings() []string {
	var out []string
	if s := strings.TrimSpace(v.Title); s != "" {
		out = append(out, s)
	}
	for _, opt := range []*string{v.Option1, v.Option2, v.Option3} {
		if opt != nil {
			if s := strings.TrimSpace(*opt); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

// ProductGID 숫자 상품 ID를 GraphQL 전역 ID로 변환합니다.
func ProductGID(id int64) string {
	return productGIDPrefix + strconv.FormatInt(id, 10)
}

// VariantGID 숫자 variant ID를 GraphQL 전역 ID로 변환합니다.
func VariantGID(id int64) string {
	return variantGIDPrefix + strconv.FormatInt(id, 10)
}

// ImageGID 숫자 이미지 ID를 GraphQL 전역 ID로 변환합니다.
func ImageGID(id int64) string {
	return imageGIDPrefix + strconv.FormatInt(id, 10)
}

// ParseGID GraphQL 전역 ID의 마지막 숫자 부분을 반환합니다.
//
//	ParseGID("gid://shopify/Product/123") // 123, true
func ParseGID(gid string) (int64, bool) {
	if !strings.HasPrefix(gid, "gid://") {
		return 0, false
	}

	idx := strings.LastIndexByte(gid, '/')
	if idx == -1 || idx == len(gid)-1 {
		return 0, false
	}

	id, err := strconv.ParseInt(gid[idx+1:], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// Normalize 누락된 식별자 형식(숫자 ID ⇄ GraphQL ID)을 서로 보완합니다.
// 웹훅 발신처에 따라 둘 중 하나만 전달되는 경우가 있습니다.
func (e *ProductEvent) Normalize() {
	e.ID, e.GraphQLID = complementID(e.ID, e.GraphQLID, ProductGID)

	for i := range e.Variants {
		v := &e.Variants[i]
		v.ID, v.GraphQLID = complementID(v.ID, v.GraphQLID, VariantGID)
	}
}

// Normalized 식별자를 보완한 사본을 반환합니다. 원본 이벤트는 변경하지 않습니다.
func (e *ProductEvent) Normalized() *ProductEvent {
	ev := *e
	ev.Variants = slices.Clone(e.Variants)
	ev.Images = slices.Clone(e.Images)
	ev.Normalize()
	return &ev
}

func complementID(id int64, gid string, toGID func(int64) string) (int64, string) {
	gid = strings.TrimSpace(gid)
	if id <= 0 {
		if parsed, ok := ParseGID(gid); ok {
			id = parsed
		}
	}
	if gid == "" && id > 0 {
		gid = toGID(id)
	}
	return id, gid
}

var (
	payloadValidator     *validator.Validate
	payloadValidatorOnce sync.Once
)

// Validate 이벤트가 파이프라인에 진입할 수 있는지 검사합니다.
//
// 상품 식별자가 없는 경우만 실패로 처리합니다. 제목 등 나머지 필드가 비어있으면
// 이후 단계에서 기본값을 사용합니다.
func (e *ProductEvent) Validate() error {
	payloadValidatorOnce.Do(func() {
		payloadValidator = validator.New()
	})

	if err := payloadValidator.Struct(e); err != nil {
		return apperrors.Wrap(err, apperrors.InvalidInput, "상품 이벤트 형식이 올바르지 않습니다")
	}

	if e.ID <= 0 || e.GraphQLID == "" {
		return apperrors.New(apperrors.InvalidInput, "상품 식별자(id, admin_graphql_api_id)가 없습니다")
	}
	if parsed, ok := ParseGID(e.GraphQLID); !ok || parsed != e.ID {
		return apperrors.Newf(apperrors.InvalidInput, "상품 식별자가 서로 일치하지 않습니다 (id=%d, gid=%s)", e.ID, e.GraphQLID)
	}

	return nil
}
