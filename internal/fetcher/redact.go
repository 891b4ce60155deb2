package fetcher

import (
	"net/http"
	"net/url"
	"slices"
	"strings"
)

var (
	// sensitiveExactKeys 전체 이름이 일치할 때만 마스킹하는 쿼리 파라미터 키 ("monkey" 같은 오탐 방지)
	sensitiveExactKeys = []string{
		"token", "auth", "key", "secret", "pass", "password", "signature",
		"access_token", "api_key", "client_secret", "refresh_token", "client_id",
	}

	// sensitiveSuffixes 이 접미사로 끝나는 쿼리 파라미터 키는 모두 마스킹합니다.
	sensitiveSuffixes = []string{"_token", "_secret", "_key", "_password", "_sig"}

	sensitiveHeaders = []string{
		"Authorization", "Proxy-Authorization", "Cookie", "Set-Cookie", "X-Shopify-Access-Token",
	}
)

func isSensitiveKey(key string) bool {
	key = strings.ToLower(key)
	if slices.Contains(sensitiveExactKeys, key) {
		return true
	}
	for _, suffix := range sensitiveSuffixes {
		if strings.HasSuffix(key, suffix) {
			return true
		}
	}
	return false
}

// RedactURL 로그나 에러 메시지에 남길 수 있도록 URL의 사용자 정보와 민감한 쿼리 값을 가립니다.
//
//	https://serpapi.com/search.json?q=ring&api_key=abc → https://serpapi.com/search.json?api_key=xxxxx&q=ring
func RedactURL(u *url.URL) string {
	if u == nil {
		return ""
	}

	redacted := *u
	if redacted.User != nil {
		redacted.User = url.User("xxxxx")
	}

	if redacted.RawQuery != "" {
		query := redacted.Query()
		for key := range query {
			if isSensitiveKey(key) {
				query.Set(key, "xxxxx")
			}
		}
		redacted.RawQuery = query.Encode()
	}

	return redacted.String()
}

// redactHeaders 민감한 헤더 값을 가린 복사본을 반환합니다.
func redactHeaders(h http.Header) http.Header {
	if h == nil {
		return nil
	}

	masked := h.Clone()
	for _, key := range sensitiveHeaders {
		if masked.Get(key) != "" {
			masked.Set(key, "***")
		}
	}
	return masked
}
