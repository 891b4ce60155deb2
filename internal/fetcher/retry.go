package fetcher

import (
	"context"
	"errors"
	"math/rand/v2"
	"net/http"
	"strconv"
	"time"

	apperrors "github.com/darkkaiser/product-enricher/internal/pkg/errors"
	applog "github.com/darkkaiser/product-enricher/pkg/log"
)

const (
	// maxAllowedRetries 설정 실수로 과도한 재시도가 발생하지 않도록 막는 상한입니다.
	maxAllowedRetries = 10

	minRetryDelay        = 100 * time.Millisecond
	defaultMaxRetryDelay = 30 * time.Second
)

// RetryFetcher 일시적인 실패(Unavailable, Timeout)에 대해 지수 백오프로 재시도하는 미들웨어입니다.
//
// 멱등성이 보장되는 메서드(GET, HEAD, OPTIONS, PUT, DELETE)만 재시도합니다.
// POST는 상품 변경이 중복 적용될 수 있으므로 한 번만 시도합니다.
// 429/503 응답의 Retry-After 헤더가 있으면 계산된 대기 시간 대신 그 값을 따릅니다.
type RetryFetcher struct {
	delegate      Fetcher
	maxRetries    int
	minRetryDelay time.Duration
	maxRetryDelay time.Duration
}

var _ Fetcher = (*RetryFetcher)(nil)

// NewRetryFetcher RetryFetcher를 생성합니다.
func NewRetryFetcher(delegate Fetcher, maxRetries int, minDelay, maxDelay time.Duration) *RetryFetcher {
	minDelay, maxDelay = normalizeRetryDelays(minDelay, maxDelay)

	return &RetryFetcher{
		delegate:      delegate,
		maxRetries:    normalizeMaxRetries(maxRetries),
		minRetryDelay: minDelay,
		maxRetryDelay: maxDelay,
	}
}

// Do HTTP 요청을 수행하고 재시도 가능한 실패이면 다시 시도합니다.
func (f *RetryFetcher) Do(req *http.Request) (*http.Response, error) {
	if f.maxRetries == 0 || !isIdempotentMethod(req.Method) {
		return f.delegate.Do(req)
	}

	// 본문이 있는 요청은 재시도 때마다 본문을 다시 만들 수 있어야 합니다.
	if req.Body != nil && req.Body != http.NoBody && req.GetBody == nil {
		return f.delegate.Do(req)
	}

	ctx := req.Context()

	var lastErr error
	for attempt := 0; attempt <= f.maxRetries; attempt++ {
		if attempt > 0 {
			delay := f.backoff(attempt, lastErr)

			applog.WithComponentAndFields(component, applog.Fields{
				"method":  req.Method,
				"url":     RedactURL(req.URL),
				"attempt": attempt,
				"delay":   delay.String(),
				"error":   lastErr.Error(),
			}).Warn("일시적인 오류로 요청을 재시도합니다")

			if err := sleepContext(ctx, delay); err != nil {
				return nil, apperrors.FromContext(err, "재시도 대기 중 작업이 중단되었습니다")
			}

			if req.GetBody != nil {
				body, err := req.GetBody()
				if err != nil {
					return nil, apperrors.Wrap(err, apperrors.Internal, "재시도 요청 본문을 생성하지 못했습니다")
				}
				req.Body = body
			}
		}

		resp, err := f.delegate.Do(req)
		if err == nil {
			return resp, nil
		}
		if resp != nil {
			drainAndCloseBody(resp.Body)
		}

		lastErr = err
		if !isRetriable(err) || ctx.Err() != nil {
			return nil, err
		}
	}

	return nil, lastErr
}

// backoff attempt번째 재시도 전에 기다릴 시간을 계산합니다. (Full Jitter)
func (f *RetryFetcher) backoff(attempt int, lastErr error) time.Duration {
	if d, ok := retryAfter(lastErr); ok {
		return min(d, f.maxRetryDelay)
	}

	ceiling := f.minRetryDelay << (attempt - 1)
	if ceiling <= 0 || ceiling > f.maxRetryDelay {
		ceiling = f.maxRetryDelay
	}

	return f.minRetryDelay + rand.N(ceiling-f.minRetryDelay+1)
}

// retryAfter 상태 코드 에러의 Retry-After 헤더(초 단위)를 해석합니다.
func retryAfter(err error) (time.Duration, bool) {
	var statusErr *HTTPStatusError
	if !errors.As(err, &statusErr) || statusErr.Header == nil {
		return 0, false
	}

	seconds, convErr := strconv.Atoi(statusErr.Header.Get("Retry-After"))
	if convErr != nil || seconds < 0 {
		return 0, false
	}
	return time.Duration(seconds) * time.Second, true
}

func isRetriable(err error) bool {
	return apperrors.Is(err, apperrors.Unavailable) || apperrors.Is(err, apperrors.Timeout)
}

func isIdempotentMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodPut, http.MethodDelete:
		return true
	}
	return false
}

func normalizeMaxRetries(n int) int {
	if n < 0 {
		return 0
	}
	return min(n, maxAllowedRetries)
}

func normalizeRetryDelays(minDelay, maxDelay time.Duration) (time.Duration, time.Duration) {
	if minDelay < minRetryDelay {
		minDelay = minRetryDelay
	}
	if maxDelay <= 0 {
		maxDelay = defaultMaxRetryDelay
	}
	if maxDelay < minDelay {
		maxDelay = minDelay
	}
	return minDelay, maxDelay
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
