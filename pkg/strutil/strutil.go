// Package strutil 문자열 정규화와 길이 제한 등 공통 문자열 처리 기능을 제공합니다.
package strutil

import (
	"strings"
	"unicode/utf8"
)

// NormalizeSpaces 앞뒤 공백을 제거하고 연속된 공백(탭, 줄바꿈 포함)을 하나의 공백으로 합칩니다.
func NormalizeSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// SplitAndTrim 구분자로 분리한 뒤 각 토큰의 앞뒤 공백을 제거하고 빈 토큰은 버립니다.
// 유효한 토큰이 없으면 nil을 반환합니다.
func SplitAndTrim(s, sep string) []string {
	var result []string
	for _, token := range strings.Split(s, sep) {
		if token = strings.TrimSpace(token); token != "" {
			result = append(result, token)
		}
	}
	return result
}

// Truncate 공백을 정규화한 뒤 문자열을 최대 limit 글자(rune)로 자릅니다.
//
// 가능하면 limit 이내의 마지막 공백에서 자르되, 그 결과가 limit의 절반보다 짧아지면
// 단어 중간이라도 limit 위치에서 자릅니다. 잘린 끝에 남는 구분 기호(| , - —)와 공백은 제거합니다.
func Truncate(s string, limit int) string {
	s = NormalizeSpaces(s)
	if limit <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= limit {
		return s
	}

	runes := []rune(s)
	cut := string(runes[:limit])

	// 다음 글자가 공백이면 limit 위치가 곧 단어 경계입니다.
	if runes[limit] != ' ' {
		if idx := strings.LastIndexByte(cut, ' '); idx > 0 && utf8.RuneCountInString(cut[:idx]) >= limit/2 {
			cut = cut[:idx]
		}
	}

	return strings.TrimRight(cut, " |,-—:;")
}

// Mask 토큰이나 비밀 키처럼 민감한 값을 로그에 남길 수 있도록 가립니다.
func Mask(s string) string {
	switch n := len(s); {
	case n == 0:
		return ""
	case n <= 4:
		return "***"
	case n <= 12:
		return s[:2] + "***"
	default:
		return s[:4] + "***" + s[n-4:]
	}
}
