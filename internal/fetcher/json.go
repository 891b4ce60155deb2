package fetcher

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"golang.org/x/net/html/charset"

	apperrors "github.com/darkkaiser/product-enricher/internal/pkg/errors"
)

// maxResponseBodyBytes 응답 본문을 메모리로 읽을 때의 상한입니다.
const maxResponseBodyBytes = 8 << 20

// DoJSON method/url로 요청을 보내고 응답 본문 전체를 반환합니다.
//
// payload가 nil이 아니면 JSON으로 직렬화하여 본문으로 보냅니다. 응답은 Content-Type의
// charset을 따라 UTF-8로 변환됩니다. 재시도가 가능하도록 GetBody를 설정합니다.
func DoJSON(ctx context.Context, f Fetcher, method, url string, header http.Header, payload any) ([]byte, error) {
	var body []byte
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.Internal, "요청 본문을 JSON으로 변환하지 못했습니다")
		}
		body = b
	}

	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.Internal, "HTTP 요청을 생성하지 못했습니다")
	}
	for key, values := range header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	req.Header.Set("Accept", "application/json")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
		req.ContentLength = int64(len(body))
		req.GetBody = func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(body)), nil
		}
		req.Body, _ = req.GetBody()
	}

	resp, err := f.Do(req)
	if err != nil {
		return nil, err
	}
	defer drainAndCloseBody(resp.Body)

	return readUTF8Body(resp)
}

// FetchJSON url을 GET으로 요청하여 응답 JSON을 v에 디코딩합니다.
func FetchJSON(ctx context.Context, f Fetcher, url string, header http.Header, v any) error {
	b, err := DoJSON(ctx, f, http.MethodGet, url, header, nil)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(b, v); err != nil {
		return apperrors.Wrap(err, apperrors.ParsingFailed, "응답 JSON을 해석하지 못했습니다")
	}
	return nil
}

func readUTF8Body(resp *http.Response) ([]byte, error) {
	reader, err := charset.NewReader(io.LimitReader(resp.Body, maxResponseBodyBytes), resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ParsingFailed, "응답 본문의 문자 인코딩을 판별하지 못했습니다")
	}

	b, err := io.ReadAll(reader)
	if err != nil {
		if appErr := apperrors.FromContext(resp.Request.Context().Err(), "응답 본문을 읽는 중 작업이 중단되었습니다"); appErr != nil {
			return nil, appErr
		}
		return nil, apperrors.Wrap(err, apperrors.Unavailable, "응답 본문을 읽지 못했습니다")
	}
	return b, nil
}
