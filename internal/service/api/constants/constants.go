// Package constants API 서비스 전반에서 사용하는 상수를 정의합니다.
package constants

import "time"

// 로깅용 컴포넌트 이름
const (
	ComponentService      = "api.service"
	ComponentHandler      = "api.handler"
	ComponentErrorHandler = "api.error_handler"
	ComponentMiddleware   = "api.middleware"
	ComponentRateLimit    = "api.middleware.rate_limit"
	ComponentContentType  = "api.middleware.content_type"
	ComponentSignature    = "api.middleware.webhook_signature"
)

// HTTP 헤더
const (
	// HeaderShopifyHmac 웹훅 본문의 HMAC-SHA256 서명(Base64)
	HeaderShopifyHmac = "X-Shopify-Hmac-Sha256"

	// HeaderShopifyTopic 웹훅 토픽 (예: products/create)
	HeaderShopifyTopic = "X-Shopify-Topic"

	HeaderShopifyShopDomain = "X-Shopify-Shop-Domain"
	HeaderShopifyWebhookID  = "X-Shopify-Webhook-Id"

	HeaderRetryAfter = "Retry-After"
)

// 서버 기본값
const (
	DefaultReadTimeout       = 30 * time.Second
	DefaultReadHeaderTimeout = 10 * time.Second
	DefaultWriteTimeout      = 60 * time.Second
	DefaultIdleTimeout       = 120 * time.Second

	// DefaultRequestTimeout 요청 하나의 최대 처리 시간
	DefaultRequestTimeout = 60 * time.Second

	DefaultBodyLimit = "2M"

	DefaultRateLimitPerSecond = 20
	DefaultRateLimitBurst     = 40

	// ShutdownTimeout Graceful Shutdown 시 최대 대기 시간
	ShutdownTimeout = 5 * time.Second
)

// 헬스체크 상태
const (
	HealthStatusHealthy   = "healthy"
	HealthStatusUnhealthy = "unhealthy"
	HealthStatusDisabled  = "disabled"

	DependencyShopify    = "shopify"
	DependencyCompetitor = "competitor_source"
	DependencyAlert      = "telegram_alert"
)

// 응답 메시지
const (
	MsgWebhookProcessed = "상품 보강이 완료되었습니다"

	ErrMsgInternalServer       = "내부 서버 오류가 발생했습니다"
	ErrMsgNotFound             = "요청한 리소스를 찾을 수 없습니다"
	ErrMsgInvalidPayload       = "잘못된 상품 이벤트 형식입니다"
	ErrMsgInvalidSignature     = "웹훅 서명이 올바르지 않습니다"
	ErrMsgMissingSignature     = "웹훅 서명 헤더가 없습니다"
	ErrMsgBodyReadFailed       = "요청 본문을 읽을 수 없습니다"
	ErrMsgEnrichmentFailed     = "상품 보강에 실패했습니다"
	ErrMsgUnsupportedMediaType = "지원하지 않는 Content-Type 형식입니다"
	ErrMsgRateLimitExceeded    = "요청이 너무 많습니다. 잠시 후 다시 시도해주세요"
)

// 로그 메시지
const (
	LogMsgServiceStarting              = "웹훅 API 서비스 시작중..."
	LogMsgServiceStarted               = "웹훅 API 서비스 시작됨"
	LogMsgServiceAlreadyStarted        = "웹훅 API 서비스가 이미 시작됨!!!"
	LogMsgServiceStopping              = "웹훅 API 서비스 중지중..."
	LogMsgServiceStopped               = "웹훅 API 서비스 중지됨"
	LogMsgServiceUnexpectedExit        = "HTTP 서버가 예기치 않게 종료되었습니다"
	LogMsgServiceHTTPServerStarting    = "HTTP 서버 시작"
	LogMsgServiceHTTPServerStopped     = "HTTP 서버 중지됨"
	LogMsgServiceHTTPServerFatalError  = "HTTP 서버를 구성하는 중에 치명적인 오류가 발생하였습니다"
	LogMsgServiceHTTPServerShutdownErr = "HTTP 서버를 중지하는 중에 오류가 발생하였습니다"

	LogMsgHTTP4xxClientError = "HTTP 4xx: 클라이언트 요청 오류"
	LogMsgHTTP5xxServerError = "HTTP 5xx: 서버 내부 오류"
)
