package classifier

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

type lengthRule struct {
	pattern  *regexp.Regexp
	min, max float64
	toMM     float64
}

// lengthRules 우선순위 순서의 길이 표기 규칙입니다. 범위를 벗어난 값은 길이가 아닌 것으로 간주합니다.
var lengthRules = []lengthRule{
	{regexp.MustCompile(`\b(\d{3})\s*mm\b`), 400, 599, 1},
	{regexp.MustCompile(`\b(\d{2}(?:\.\d+)?)\s*cm\b`), 40, 59, 10},
	{regexp.MustCompile(`\b(\d{2}(?:\.\d+)?)\s*(?:inches\b|inch\b|in\b|"|″|”|'')`), 16, 22, 25.4},
}

// InferLengthMM variant의 제목, 옵션 문자열에서 체인 길이(mm)를 추론합니다.
//
// 규칙을 우선순위 순서로 적용하며, 어느 문자열에서든 처음 일치한 규칙의 값을 사용합니다.
//
//	InferLengthMM("18 inch")  // 457, true
//	InferLengthMM("45cm")     // 450, true
func InferLengthMM(values ...string) (int, bool) {
	for _, rule := range lengthRules {
		for _, v := range values {
			v = strings.ToLower(v)
			for _, m := range rule.pattern.FindAllStringSubmatch(v, -1) {
				n, err := strconv.ParseFloat(m[1], 64)
				if err != nil || n < rule.min || n > rule.max {
					continue
				}
				return int(math.Round(n * rule.toMM)), true
			}
		}
	}
	return 0, false
}
