package fetcher

import (
	"net/http"

	"golang.org/x/time/rate"

	apperrors "github.com/darkkaiser/product-enricher/internal/pkg/errors"
)

// RateLimitFetcher 외부 API의 호출 한도를 넘지 않도록 토큰 버킷으로 요청 속도를 제한하는 미들웨어입니다.
//
// Shopify Admin API는 스토어당 초당 2회(버스트 40회 버킷)의 REST 호출 한도를 가지므로,
// 여러 웹훅이 동시에 들어오더라도 이 Fetcher를 공유하여 한도 안에서 호출합니다.
type RateLimitFetcher struct {
	delegate Fetcher
	limiter  *rate.Limiter
}

var _ Fetcher = (*RateLimitFetcher)(nil)

// NewRateLimitFetcher 초당 rps회, 최대 burst회까지 허용하는 RateLimitFetcher를 생성합니다.
// rps가 0 이하이면 제한하지 않습니다.
func NewRateLimitFetcher(delegate Fetcher, rps float64, burst int) *RateLimitFetcher {
	limit := rate.Limit(rps)
	if rps <= 0 {
		limit = rate.Inf
	}
	if burst < 1 {
		burst = 1
	}

	return &RateLimitFetcher{
		delegate: delegate,
		limiter:  rate.NewLimiter(limit, burst),
	}
}

// Do 토큰을 얻을 때까지 대기한 후 요청을 수행합니다.
func (f *RateLimitFetcher) Do(req *http.Request) (*http.Response, error) {
	if err := f.limiter.Wait(req.Context()); err != nil {
		if appErr := apperrors.FromContext(req.Context().Err(), "호출 한도 대기 중 작업이 중단되었습니다"); appErr != nil {
			return nil, appErr
		}
		// 남은 데드라인 안에 토큰을 얻을 수 없는 경우
		return nil, apperrors.Wrap(err, apperrors.Timeout, "호출 한도 대기 시간이 요청 제한 시간을 초과합니다")
	}

	return f.delegate.Do(req)
}
