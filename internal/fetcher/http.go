package fetcher

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	apperrors "github.com/darkkaiser/product-enricher/internal/pkg/errors"
)

const (
	defaultTimeout             = 30 * time.Second
	defaultTLSHandshakeTimeout = 10 * time.Second
	defaultIdleConnTimeout     = 90 * time.Second
	defaultMaxIdleConnsPerHost = 8
)

// HTTPFetcher net/http 클라이언트로 실제 요청을 수행하는 Fetcher입니다.
//
// 전송 계층 에러는 다음과 같이 분류합니다.
//   - Context 데드라인 초과 → Timeout
//   - Context 취소 → Unavailable
//   - 그 밖의 연결 실패(DNS, 연결 거부 등) → System
type HTTPFetcher struct {
	client  *http.Client
	headers http.Header
}

var _ Fetcher = (*HTTPFetcher)(nil)

// NewHTTPFetcher 요청 1회당 timeout이 적용되는 HTTPFetcher를 생성합니다.
// headers는 모든 요청에 기본으로 추가되며, 요청에 같은 헤더가 있으면 요청의 값이 우선합니다.
func NewHTTPFetcher(timeout time.Duration, headers http.Header) *HTTPFetcher {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSHandshakeTimeout = defaultTLSHandshakeTimeout
	transport.IdleConnTimeout = defaultIdleConnTimeout
	transport.MaxIdleConnsPerHost = defaultMaxIdleConnsPerHost

	return &HTTPFetcher{
		client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		headers: headers.Clone(),
	}
}

// newHTTPFetcherWithClient 테스트 등에서 클라이언트를 직접 지정할 때 사용합니다.
func newHTTPFetcherWithClient(client *http.Client, headers http.Header) *HTTPFetcher {
	return &HTTPFetcher{client: client, headers: headers.Clone()}
}

// Do HTTP 요청을 수행합니다.
func (f *HTTPFetcher) Do(req *http.Request) (*http.Response, error) {
	for key, values := range f.headers {
		if req.Header.Get(key) == "" {
			for _, v := range values {
				req.Header.Add(key, v)
			}
		}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, classifyTransportError(req.Context(), err)
	}

	return resp, nil
}

func classifyTransportError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return apperrors.FromContext(ctxErr, "요청 처리 중 작업이 중단되었습니다")
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return apperrors.Wrap(err, apperrors.Timeout, "외부 API 응답 대기 시간이 초과되었습니다")
	}

	return apperrors.Wrap(err, apperrors.System, "외부 API에 연결할 수 없습니다")
}
