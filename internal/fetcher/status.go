package fetcher

import (
	"fmt"
	"io"
	"net/http"
	"slices"

	apperrors "github.com/darkkaiser/product-enricher/internal/pkg/errors"
)

const maxBodySnippetBytes = 4096

// HTTPStatusError 허용되지 않은 상태 코드 응답에 대한 에러입니다.
// Cause에는 상태 코드로 분류된 AppError가 들어있습니다.
type HTTPStatusError struct {
	StatusCode  int
	Status      string
	URL         string
	Header      http.Header
	BodySnippet string
	Cause       error
}

func (e *HTTPStatusError) Error() string {
	msg := fmt.Sprintf("HTTP %s (URL: %s)", e.Status, e.URL)
	if e.BodySnippet != "" {
		msg += ", Body: " + e.BodySnippet
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *HTTPStatusError) Unwrap() error {
	return e.Cause
}

// ErrorTypeForStatus HTTP 상태 코드에 대응하는 에러 타입을 반환합니다.
func ErrorTypeForStatus(statusCode int) apperrors.ErrorType {
	switch {
	case statusCode == http.StatusNotFound:
		return apperrors.NotFound
	case statusCode == http.StatusUnauthorized:
		return apperrors.Unauthorized
	case statusCode == http.StatusForbidden:
		return apperrors.Forbidden
	case statusCode == http.StatusTooManyRequests, statusCode == http.StatusRequestTimeout:
		return apperrors.Unavailable
	case statusCode == http.StatusBadRequest, statusCode == http.StatusUnprocessableEntity:
		return apperrors.InvalidInput
	case statusCode >= 500:
		return apperrors.Unavailable
	default:
		return apperrors.ExecutionFailed
	}
}

// StatusCodeFetcher 허용되지 않은 상태 코드의 응답을 HTTPStatusError로 변환하는 미들웨어입니다.
// 허용 목록이 비어있으면 2xx 응답만 허용합니다.
type StatusCodeFetcher struct {
	delegate        Fetcher
	allowedStatuses []int
}

var _ Fetcher = (*StatusCodeFetcher)(nil)

// NewStatusCodeFetcher StatusCodeFetcher를 생성합니다.
func NewStatusCodeFetcher(delegate Fetcher, allowedStatuses ...int) *StatusCodeFetcher {
	return &StatusCodeFetcher{delegate: delegate, allowedStatuses: allowedStatuses}
}

// Do HTTP 요청을 수행하고 응답 상태 코드를 검사합니다.
func (f *StatusCodeFetcher) Do(req *http.Request) (*http.Response, error) {
	resp, err := f.delegate.Do(req)
	if err != nil {
		return resp, err
	}

	if f.isAllowed(resp.StatusCode) {
		return resp, nil
	}

	var snippet string
	if resp.Body != nil {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodySnippetBytes))
		snippet = string(b)
	}
	drainAndCloseBody(resp.Body)

	return nil, &HTTPStatusError{
		StatusCode:  resp.StatusCode,
		Status:      resp.Status,
		URL:         RedactURL(req.URL),
		Header:      redactHeaders(resp.Header),
		BodySnippet: snippet,
		Cause:       apperrors.Newf(ErrorTypeForStatus(resp.StatusCode), "HTTP 요청이 실패했습니다. 상태 코드: %s", resp.Status),
	}
}

func (f *StatusCodeFetcher) isAllowed(statusCode int) bool {
	if len(f.allowedStatuses) == 0 {
		return statusCode >= 200 && statusCode < 300
	}
	return slices.Contains(f.allowedStatuses, statusCode)
}
