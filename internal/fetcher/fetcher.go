// Package fetcher 외부 HTTP API 호출에 사용하는 Fetcher와 미들웨어 체인을 제공합니다.
//
// 각 미들웨어는 Fetcher 인터페이스를 구현하며 데코레이터 패턴으로 조합됩니다.
//
//	Logging → Retry → StatusCode → RateLimit → HTTP
//
// 상태 코드 검사가 재시도 안쪽에 있으므로 429/5xx 응답은 에러(Unavailable)로 변환된 뒤
// 재시도 여부가 판단됩니다. 속도 제한은 재시도를 포함한 모든 실제 요청에 적용됩니다.
package fetcher

import (
	"context"
	"io"
	"net/http"
)

// component Fetcher 로깅용 컴포넌트 이름
const component = "fetcher"

// Fetcher HTTP 요청을 수행하는 인터페이스입니다.
//
// 반환된 응답의 Body는 호출자가 닫아야 합니다. Context가 취소되면 즉시 중단해야 합니다.
type Fetcher interface {
	Do(req *http.Request) (*http.Response, error)
}

// Get 지정된 URL로 GET 요청을 전송합니다.
func Get(ctx context.Context, f Fetcher, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.Do(req)
	if err != nil {
		if resp != nil {
			drainAndCloseBody(resp.Body)
		}
		return nil, err
	}

	return resp, nil
}

// drainAndCloseBody 커넥션 재사용을 위해 남은 본문을 일정량까지 읽어 버리고 닫습니다.
func drainAndCloseBody(body io.ReadCloser) {
	if body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(body, 64*1024))
	_ = body.Close()
}
