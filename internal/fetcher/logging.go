package fetcher

import (
	"net/http"
	"time"

	applog "github.com/darkkaiser/product-enricher/pkg/log"
)

// LoggingFetcher 요청 메서드, URL(마스킹), 상태 코드, 소요 시간을 기록하는 미들웨어입니다.
type LoggingFetcher struct {
	delegate Fetcher
	name     string
}

var _ Fetcher = (*LoggingFetcher)(nil)

// NewLoggingFetcher LoggingFetcher를 생성합니다. name은 로그에 남는 호출 대상 이름입니다. (예: shopify)
func NewLoggingFetcher(delegate Fetcher, name string) *LoggingFetcher {
	return &LoggingFetcher{delegate: delegate, name: name}
}

// Do HTTP 요청을 수행하고 결과를 로그로 남깁니다.
func (f *LoggingFetcher) Do(req *http.Request) (*http.Response, error) {
	start := time.Now()

	resp, err := f.delegate.Do(req)

	fields := applog.Fields{
		"target":   f.name,
		"method":   req.Method,
		"url":      RedactURL(req.URL),
		"duration": time.Since(start).String(),
	}
	if resp != nil {
		fields["status_code"] = resp.StatusCode
	}

	if err != nil {
		fields["error"] = err.Error()
		applog.WithComponentAndFields(component, fields).WithContext(req.Context()).Warn("HTTP 요청 실패")
		return resp, err
	}

	applog.WithComponentAndFields(component, fields).WithContext(req.Context()).Debug("HTTP 요청 성공")

	return resp, nil
}
