package content

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/darkkaiser/product-enricher/pkg/strutil"
	"golang.org/x/net/html"
)

// strippedElements 공급처 설명을 재사용하기 전에 제거하는 요소입니다.
// 이미지류(img, figure, picture 등) 외에 내용이 원문 그대로 출력되는 요소도 함께 제거합니다.
const strippedElements = "img, figure, picture, source, svg, video, audio, canvas, iframe, object, embed, " +
	"script, style, noscript, template, textarea, title, xmp, noembed, noframes, plaintext"

// StripImages HTML에서 이미지 및 임베드 요소와 주석을 제거한 본문 HTML을 반환합니다.
// 파싱할 수 없는 입력이면 빈 문자열을 반환합니다.
func StripImages(source string) string {
	if strings.TrimSpace(source) == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(source))
	if err != nil {
		return ""
	}

	doc.Find(strippedElements).Remove()
	removeComments(doc.Selection)

	body, err := doc.Find("body").Html()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(body)
}

func removeComments(sel *goquery.Selection) {
	sel.Contents().Each(func(_ int, s *goquery.Selection) {
		if s.Nodes[0].Type == html.CommentNode {
			s.Remove()
			return
		}
		removeComments(s)
	})
}

// PlainText HTML에서 텍스트만 추출하고 공백을 정리합니다.
func PlainText(source string) string {
	if strings.TrimSpace(source) == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(source))
	if err != nil {
		return ""
	}

	doc.Find("script, style, noscript, template").Remove()

	// 블록 요소 사이의 단어가 붙지 않도록 요소마다 공백을 덧붙입니다.
	doc.Find("body *").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml(" ")
	})

	return strutil.NormalizeSpaces(doc.Find("body").Text())
}

// ContainsImageMarkup HTML에 이미지/figure 태그가 포함되어 있는지 검사합니다.
func ContainsImageMarkup(s string) bool {
	lower := strings.ToLower(s)
	return strings.Contains(lower, "<img") || strings.Contains(lower, "<figure")
}
