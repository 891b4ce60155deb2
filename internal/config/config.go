// Package config 애플리케이션 설정을 로드하고 검증합니다.
//
// 설정은 다음 순서로 병합되며 뒤의 값이 앞의 값을 덮어씁니다.
//
//  1. 코드에 정의된 기본값 (newDefaultConfig)
//  2. JSON 설정 파일 (기본값: product-enricher.json, 없으면 건너뜀)
//  3. ENRICHER_ 접두사 환경 변수 (중첩 키는 "__"로 구분, 예: ENRICHER_SHOPIFY__ACCESS_TOKEN)
package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	apperrors "github.com/darkkaiser/product-enricher/internal/pkg/errors"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

const (
	// AppName 애플리케이션 이름
	AppName = "product-enricher"

	// DefaultFilename 기본 설정 파일 이름
	DefaultFilename = AppName + ".json"

	// EnvPrefix 설정을 덮어쓰는 환경 변수의 접두사
	EnvPrefix = "ENRICHER_"
)

func newDefaultConfig() AppConfig {
	return AppConfig{
		Debug: false,
		Shopify: ShopifyConfig{
			APIVersion:        "2024-10",
			RequestTimeout:    10 * time.Second,
			RequestsPerSecond: 2,
			Burst:             4,
			MaxRetries:        0,
		},
		Competitor: CompetitorConfig{
			Endpoint:       "https://serpapi.com/search.json",
			Engine:         "google_shopping",
			PricePath:      "shopping_results.#.extracted_price",
			RequestTimeout: 8 * time.Second,
			MaxRetries:     2,
		},
		Pricing: PricingConfig{
			MinPrice:     6.99,
			MaxPrice:     499.99,
			SampleMin:    2,
			SampleMax:    2000,
			Markup:       1.10,
			CurrencyRate: 1,
		},
		Store: StoreConfig{
			Brand:              "Lumière Atelier",
			MetafieldNamespace: "custom",
			MetafieldKey:       "material",
		},
		Pipeline: PipelineConfig{
			EventTimeout: 25 * time.Second,
		},
		HTTP: HTTPConfig{
			ListenPort:     8080,
			AllowOrigins:   []string{"*"},
			RequestTimeout: 30 * time.Second,
			BodyLimit:      "2M",
			RateLimit: RateLimitConfig{
				RequestsPerSecond: 10,
				Burst:             20,
			},
		},
	}
}

// Load 기본 설정 파일로 설정을 로드합니다.
func Load() (*AppConfig, error) {
	return LoadWithFile(DefaultFilename)
}

// LoadWithFile 지정된 설정 파일로 설정을 로드합니다.
//
// 설정 파일이 없으면 기본값과 환경 변수만으로 구성합니다. 컨테이너 환경에서는
// 모든 값을 환경 변수로 주입하는 경우가 많기 때문입니다.
func LoadWithFile(filename string) (*AppConfig, error) {
	k := koanf.New(".")

	// 1. 기본값
	if err := k.Load(structs.Provider(newDefaultConfig(), "json"), nil); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "애플리케이션 기본 설정 로드에 실패했습니다")
	}

	// 2. 설정 파일
	if err := k.Load(file.Provider(filename), json.Parser()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, apperrors.Wrapf(err, apperrors.InvalidInput, "설정 파일 로드 중 오류가 발생했습니다: '%s'", filename)
	}

	// 3. 환경 변수
	if err := k.Load(env.Provider(EnvPrefix, ".", normalizeEnvKey), nil); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "환경 변수 로드에 실패했습니다")
	}

	var appConfig AppConfig
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "json",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
			ErrorUnused:      true, // 구조체에 없는 키(오타 등)가 있으면 에러
			WeaklyTypedInput: true, // 환경 변수 문자열 "8080" → int
			Result:           &appConfig,
			TagName:          "json",
		},
	}
	if err := k.UnmarshalWithConf("", &appConfig, unmarshalConf); err != nil {
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, "설정 데이터를 애플리케이션 구조체로 변환하는데 실패했습니다")
	}

	if err := appConfig.validate(); err != nil {
		return nil, apperrors.Wrapf(err, apperrors.InvalidInput, "설정('%s')의 유효성 검증에 실패했습니다", filename)
	}

	return &appConfig, nil
}

// normalizeEnvKey 환경 변수 이름을 koanf 키 경로로 변환합니다.
//
//	ENRICHER_SHOPIFY__ACCESS_TOKEN → shopify.access_token
func normalizeEnvKey(s string) string {
	s = strings.TrimPrefix(s, EnvPrefix)
	s = strings.ToLower(s)
	return strings.ReplaceAll(s, "__", ".")
}

func (c *AppConfig) validate() error {
	v := newValidator()

	if err := checkStruct(v, c); err != nil {
		return err
	}

	if err := checkPriceWindow(c.Pricing); err != nil {
		return err
	}

	for _, origin := range c.HTTP.AllowOrigins {
		if origin == "*" && len(c.HTTP.AllowOrigins) > 1 {
			return apperrors.New(apperrors.InvalidInput, "와일드카드(*)는 다른 CORS Origin과 함께 사용할 수 없습니다")
		}
	}

	return nil
}

// VerifyRecommendations 실행은 가능하지만 운영상 주의가 필요한 설정에 대한 경고 목록을 반환합니다.
func (c *AppConfig) VerifyRecommendations() []string {
	var warnings []string

	if strings.TrimSpace(c.HTTP.WebhookSecret) == "" {
		warnings = append(warnings, "웹훅 서명 검증 키(http.webhook_secret)가 설정되지 않아 서명 없는 요청도 처리됩니다")
	}
	if !c.Competitor.Enabled() {
		warnings = append(warnings, "경쟁사 가격 검색 API 키(competitor.api_key)가 없어 기본 가격표만 사용합니다")
	}
	if c.Pipeline.EventTimeout > c.HTTP.RequestTimeout {
		warnings = append(warnings, "이벤트 처리 타임아웃(pipeline.event_timeout)이 HTTP 요청 타임아웃(http.request_timeout)보다 깁니다")
	}
	if c.HTTP.ListenPort < 1024 {
		warnings = append(warnings, "시스템 예약 포트(1-1023)를 사용하도록 설정되었습니다. 서버 구동 시 관리자 권한이 필요할 수 있습니다")
	}

	return warnings
}
