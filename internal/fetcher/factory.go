package fetcher

import (
	"net/http"
	"time"
)

// Config Fetcher 체인 구성 설정입니다.
type Config struct {
	// Name 로그에 남는 호출 대상 이름 (예: shopify, competitor)
	Name string

	Timeout   time.Duration
	UserAgent string
	Header    http.Header

	// RateLimit 초당 허용 요청 수 (0 이하이면 제한 없음)
	RateLimit float64
	Burst     int

	MaxRetries    int
	MinRetryDelay time.Duration
	MaxRetryDelay time.Duration

	// AllowedStatuses 비어있으면 2xx만 성공으로 간주합니다.
	AllowedStatuses []int
}

// New 설정에 따라 Fetcher 체인을 조립합니다.
//
//	Logging → Retry → StatusCode → RateLimit → HTTP
func New(cfg Config) Fetcher {
	header := cfg.Header.Clone()
	if header == nil {
		header = make(http.Header)
	}
	if cfg.UserAgent != "" {
		header.Set("User-Agent", cfg.UserAgent)
	}

	return wrap(NewHTTPFetcher(cfg.Timeout, header), cfg)
}

// wrap base 위에 미들웨어를 순서대로 감쌉니다.
func wrap(base Fetcher, cfg Config) Fetcher {
	var f = base

	// 1단계: 호출 한도 (재시도 요청에도 적용)
	f = NewRateLimitFetcher(f, cfg.RateLimit, cfg.Burst)

	// 2단계: 상태 코드를 에러 타입으로 분류
	f = NewStatusCodeFetcher(f, cfg.AllowedStatuses...)

	// 3단계: 일시적인 실패 재시도
	f = NewRetryFetcher(f, cfg.MaxRetries, cfg.MinRetryDelay, cfg.MaxRetryDelay)

	// 4단계: 최종 결과 로깅
	return NewLoggingFetcher(f, cfg.Name)
}
