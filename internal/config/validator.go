package config

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strings"

	apperrors "github.com/darkkaiser/product-enricher/internal/pkg/errors"
	"github.com/darkkaiser/product-enricher/pkg/validation"
	"github.com/go-playground/validator/v10"
)

var telegramBotTokenRegex = regexp.MustCompile(`^\d{3,20}:[a-zA-Z0-9_-]{30,50}$`)

// fieldMessages 검증 실패 시 사용자에게 보여줄 필드별 안내 메시지입니다. (키: json 네임스페이스)
var fieldMessages = map[string]string{
	"shopify.shop_domain":         "Shopify 상점 도메인(shopify.shop_domain)이 없거나 형식이 올바르지 않습니다 (예: my-shop.myshopify.com)",
	"shopify.access_token":        "Shopify Admin API 접근 토큰(shopify.access_token)은 필수입니다",
	"shopify.api_version":         "Shopify API 버전(shopify.api_version) 형식이 올바르지 않습니다 (예: 2024-10)",
	"shopify.request_timeout":     "Shopify API 호출 타임아웃(shopify.request_timeout)은 0보다 커야 합니다",
	"competitor.endpoint":         "경쟁사 가격 검색 API 주소(competitor.endpoint)가 올바른 URL이 아닙니다",
	"competitor.price_path":       "경쟁사 가격 추출 경로(competitor.price_path)는 필수입니다",
	"pricing.max_price":           "최대 가격(pricing.max_price)은 최소 가격(pricing.min_price)보다 커야 합니다",
	"pricing.sample_max":          "표본 상한(pricing.sample_max)은 표본 하한(pricing.sample_min)보다 커야 합니다",
	"pricing.currency_rate":       "통화 환산 비율(pricing.currency_rate)은 0보다 커야 합니다",
	"http.listen_port":            "웹훅 수신 포트(http.listen_port)는 1에서 65535 사이의 값이어야 합니다",
	"alert.telegram.bot_token":    "텔레그램 봇 토큰(alert.telegram.bot_token) 형식이 올바르지 않습니다",
	"alert.telegram.chat_id":      "텔레그램 봇 토큰이 설정된 경우 채팅방 ID(alert.telegram.chat_id)는 필수입니다",
	"pipeline.event_timeout":      "이벤트 처리 타임아웃(pipeline.event_timeout)은 0보다 커야 합니다",
	"store.brand":                 "브랜드 이름(store.brand)은 필수입니다",
	"store.metafield_namespace":   "메타필드 네임스페이스(store.metafield_namespace)는 필수입니다",
	"store.metafield_key":         "메타필드 키(store.metafield_key)는 필수입니다",
	"http.rate_limit.burst":       "요청 속도 제한 버스트(http.rate_limit.burst)는 1 이상이어야 합니다",
	"shopify.requests_per_second": "Shopify API 초당 호출 수(shopify.requests_per_second)는 0보다 커야 합니다",
}

func newValidator() *validator.Validate {
	v := validator.New()

	// 에러 메시지에 Go 필드명 대신 설정 파일의 json 키가 나오도록 합니다.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("초기화 치명적 오류: '%s' 커스텀 유효성 검사 함수 등록에 실패했습니다: %v", tag, err))
		}
	}
	mustRegister("cors_origin", func(fl validator.FieldLevel) bool {
		return validation.ValidateCORSOrigin(fl.Field().String()) == nil
	})
	mustRegister("shop_domain", func(fl validator.FieldLevel) bool {
		return validation.ValidateShopDomain(fl.Field().String()) == nil
	})
	mustRegister("api_version", func(fl validator.FieldLevel) bool {
		return validation.ValidateAPIVersion(fl.Field().String()) == nil
	})
	mustRegister("telegram_bot_token", func(fl validator.FieldLevel) bool {
		return telegramBotTokenRegex.MatchString(fl.Field().String())
	})

	return v
}

// checkStruct 구조체를 검증하고 첫 번째 위반 항목을 InvalidInput 에러로 변환합니다.
func checkStruct(v *validator.Validate, s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return apperrors.Wrap(err, apperrors.InvalidInput, "설정 검증 중 알 수 없는 오류가 발생했습니다")
	}

	first := validationErrors[0]

	// 네임스페이스의 첫 요소는 최상위 구조체 이름(AppConfig)이므로 제거합니다.
	namespace := first.Namespace()
	if _, rest, found := strings.Cut(namespace, "."); found {
		namespace = rest
	}
	if idx := strings.IndexByte(namespace, '['); idx != -1 {
		if first.Tag() == "cors_origin" {
			return apperrors.Newf(apperrors.InvalidInput, "CORS Origin 형식이 올바르지 않습니다: '%v' (형식: Scheme://Host[:Port])", first.Value())
		}
		namespace = namespace[:idx]
	}

	if msg, ok := fieldMessages[namespace]; ok {
		return apperrors.New(apperrors.InvalidInput, msg)
	}

	return apperrors.Newf(apperrors.InvalidInput, "설정값이 올바르지 않습니다: %s (조건: %s)", namespace, first.Tag())
}

// checkPriceWindow 가격 범위 안에 소수부가 .99인 가격이 하나 이상 존재하는지 확인합니다.
func checkPriceWindow(p PricingConfig) error {
	highest := math.Floor(p.MaxPrice-0.99) + 0.99
	if highest < p.MinPrice {
		return apperrors.Newf(apperrors.InvalidInput, "가격 범위(pricing.min_price=%.2f, pricing.max_price=%.2f) 안에 .99로 끝나는 가격이 존재하지 않습니다", p.MinPrice, p.MaxPrice)
	}
	return nil
}
