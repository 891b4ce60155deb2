package config

import (
	"strings"
	"time"
)

// AppConfig 애플리케이션 전체 설정입니다.
type AppConfig struct {
	Debug      bool             `json:"debug"`
	Shopify    ShopifyConfig    `json:"shopify"`
	Competitor CompetitorConfig `json:"competitor"`
	Pricing    PricingConfig    `json:"pricing"`
	Store      StoreConfig      `json:"store"`
	Pipeline   PipelineConfig   `json:"pipeline"`
	HTTP       HTTPConfig       `json:"http"`
	Alert      AlertConfig      `json:"alert"`
}

// ShopifyConfig 상품 정보를 갱신할 Shopify Admin API 접속 설정입니다.
type ShopifyConfig struct {
	// ShopDomain 상점 도메인 (예: my-shop.myshopify.com)
	ShopDomain string `json:"shop_domain" validate:"required,shop_domain"`

	// AccessToken Admin API 접근 토큰 (X-Shopify-Access-Token)
	AccessToken string `json:"access_token" validate:"required"`

	APIVersion string `json:"api_version" validate:"required,api_version"`

	// RequestTimeout API 호출 1회에 허용되는 최대 시간
	RequestTimeout time.Duration `json:"request_timeout" validate:"gt=0"`

	// RequestsPerSecond, Burst Admin API 호출 속도 제한 (REST 기본 제한: 초당 2회)
	RequestsPerSecond float64 `json:"requests_per_second" validate:"gt=0"`
	Burst             int     `json:"burst" validate:"min=1"`

	// MaxRetries 429/5xx 응답에 대한 재시도 횟수 (멱등 요청에만 적용, 기본값 0)
	MaxRetries int `json:"max_retries" validate:"min=0,max=10"`
}

// CompetitorConfig 경쟁사 가격 검색 API 설정입니다. APIKey가 비어있으면 기능이 비활성화됩니다.
type CompetitorConfig struct {
	APIKey   string `json:"api_key"`
	Endpoint string `json:"endpoint" validate:"required,url"`

	// Engine 검색 엔진 파라미터 (예: google_shopping)
	Engine string `json:"engine"`

	// PricePath 응답 JSON에서 가격 목록을 추출할 gjson 경로
	PricePath string `json:"price_path" validate:"required"`

	RequestTimeout time.Duration `json:"request_timeout" validate:"gt=0"`
	MaxRetries     int           `json:"max_retries" validate:"min=0,max=10"`
}

// Enabled 경쟁사 가격 조회가 활성화되어 있는지 반환합니다.
func (c CompetitorConfig) Enabled() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

// PricingConfig 가격 산정 정책 설정입니다.
type PricingConfig struct {
	// MinPrice, MaxPrice 최종 가격이 놓일 수 있는 범위
	MinPrice float64 `json:"min_price" validate:"gt=0"`
	MaxPrice float64 `json:"max_price" validate:"gtfield=MinPrice"`

	// SampleMin, SampleMax 경쟁사 가격 표본에서 이상치를 걸러내는 범위
	SampleMin float64 `json:"sample_min" validate:"gte=0"`
	SampleMax float64 `json:"sample_max" validate:"gtfield=SampleMin"`

	// Markup 경쟁사 가격 중앙값에 곱하는 배수
	Markup float64 `json:"markup" validate:"gt=0"`

	// CurrencyRate 통화 환산 비율입니다. 현재 어떤 가격 계산에도 사용되지 않습니다.
	CurrencyRate float64 `json:"currency_rate" validate:"gt=0"`
}

// StoreConfig 생성되는 콘텐츠와 메타필드에 사용되는 상점 정보입니다.
type StoreConfig struct {
	Brand              string `json:"brand" validate:"required"`
	MetafieldNamespace string `json:"metafield_namespace" validate:"required"`
	MetafieldKey       string `json:"metafield_key" validate:"required"`
}

// PipelineConfig 웹훅 이벤트 처리 설정입니다.
type PipelineConfig struct {
	// EventTimeout 이벤트 하나를 처리하는 데 허용되는 전체 시간
	EventTimeout time.Duration `json:"event_timeout" validate:"gt=0"`
}

// HTTPConfig 웹훅 수신 서버 설정입니다.
type HTTPConfig struct {
	ListenPort int `json:"listen_port" validate:"min=1,max=65535"`

	// WebhookSecret 웹훅 서명(X-Shopify-Hmac-Sha256) 검증 키입니다. 비어있으면 검증하지 않습니다.
	WebhookSecret string `json:"webhook_secret"`

	AllowOrigins   []string        `json:"allow_origins" validate:"dive,cors_origin"`
	RequestTimeout time.Duration   `json:"request_timeout" validate:"gt=0"`
	BodyLimit      string          `json:"body_limit" validate:"required"`
	RateLimit      RateLimitConfig `json:"rate_limit"`
}

// RateLimitConfig IP별 요청 속도 제한 설정입니다.
type RateLimitConfig struct {
	RequestsPerSecond float64 `json:"requests_per_second" validate:"gt=0"`
	Burst             int     `json:"burst" validate:"min=1"`
}

// AlertConfig 처리 실패 알림 설정입니다.
type AlertConfig struct {
	Telegram TelegramConfig `json:"telegram"`
}

// TelegramConfig 텔레그램 알림 설정입니다. BotToken이 비어있으면 알림을 보내지 않습니다.
type TelegramConfig struct {
	BotToken string `json:"bot_token" validate:"omitempty,telegram_bot_token"`
	ChatID   int64  `json:"chat_id" validate:"required_with=BotToken"`
}

// Enabled 텔레그램 알림이 활성화되어 있는지 반환합니다.
func (c TelegramConfig) Enabled() bool {
	return strings.TrimSpace(c.BotToken) != ""
}
