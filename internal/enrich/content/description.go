package content

import (
	"bytes"
	"html/template"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/darkkaiser/product-enricher/internal/domain"
	"github.com/darkkaiser/product-enricher/pkg/strutil"
)

const careInstructions = "To keep your piece shining, store it in a dry pouch away from moisture, " +
	"remove it before swimming or showering, and gently wipe it with a soft polishing cloth after wear."

var descriptionTemplate = template.Must(template.New("description").Parse(`<div class="product-description">
<p>{{.Lead}}</p>
<h3>Why You'll Love It</h3>
<ul>
{{- range .Bullets}}
<li>{{.}}</li>
{{- end}}
</ul>
<h3>Details</h3>
<ul>
<li><strong>Material:</strong> {{.Material}}</li>
{{- if .Stone}}
<li><strong>Stone:</strong> {{.Stone}}</li>
{{- end}}
{{- if .Lengths}}
<li><strong>Available Lengths:</strong> {{.Lengths}}</li>
{{- end}}
</ul>
{{- if .About}}
<h3>About This Piece</h3>
{{.About}}
{{- end}}
<h3>Care Instructions</h3>
<p>{{.Care}}</p>
</div>`))

type descriptionData struct {
	Lead     string
	Bullets  []string
	Material string
	Stone    string
	Lengths  string
	About    template.HTML
	Care     string
}

// Description 상품 상세 HTML을 생성합니다.
//
// sourceHTML은 공급처가 등록한 원래 설명이며, 이미지와 임베드 요소를 제거한 뒤
// "About This Piece" 섹션으로 재사용합니다. 결과에는 이미지/figure 태그가 포함되지 않습니다.
func (s *Synthesizer) Description(cleanTitle string, attrs domain.InferredAttributes, sourceHTML string) string {
	data := descriptionData{
		Lead:     s.lead(cleanTitle, attrs),
		Bullets:  bullets(attrs),
		Material: attrs.Material.Label(),
		Stone:    attrs.Gemstone,
		Lengths:  FormatLengths(attrs.LengthsMM),
		Care:     careInstructions,
	}

	// 재사용하는 원문은 goquery로 정리된 마크업이므로 이스케이프하지 않습니다.
	if about := StripImages(sourceHTML); about != "" && PlainText(about) != "" {
		data.About = template.HTML(about)
	}

	var buf bytes.Buffer
	if err := descriptionTemplate.Execute(&buf, data); err != nil {
		// 템플릿과 데이터가 모두 코드에 고정되어 있으므로 실패하지 않습니다.
		return "<p>" + template.HTMLEscapeString(data.Lead) + "</p>"
	}
	return buf.String()
}

func (s *Synthesizer) lead(cleanTitle string, attrs domain.InferredAttributes) string {
	name := strutil.NormalizeSpaces(cleanTitle)
	if name == "" {
		name = "This piece"
	}

	var b strings.Builder
	b.WriteString(name)
	b.WriteString(" is a ")
	b.WriteString(strings.ToLower(attrs.Type.Label()))
	b.WriteString(" crafted in ")
	b.WriteString(attrs.Material.Label())
	if attrs.HasGemstone() {
		b.WriteString(", set with ")
		b.WriteString(attrs.Gemstone)
		b.WriteString(" stones chosen for their clarity and color")
	}
	b.WriteString(".")
	if s.brand != "" {
		b.WriteString(" Designed by ")
		b.WriteString(s.brand)
		b.WriteString(".")
	}
	return b.String()
}

// bullets 우선순위 순서로 장점 목록을 만듭니다. 마지막 항목은 항상 선물 포장 안내입니다.
func bullets(attrs domain.InferredAttributes) []string {
	var out []string
	if attrs.HasGemstone() {
		out = append(out, "Genuine-look "+attrs.Gemstone+" with brilliant, eye-catching sparkle")
	}
	if attrs.Material.IsSilver() {
		out = append(out, "Hypoallergenic 925 sterling silver, gentle on sensitive skin")
	}
	if attrs.Type.IsNecklaceFamily() {
		out = append(out, "Easy to layer with your favorite chains and pendants")
	}
	if len(out) == 0 {
		out = append(out, "Lightweight and comfortable for all-day wear")
	}
	return append(out, "Arrives gift-ready in an elegant box")
}

// FormatLengths variant 길이 목록을 "Nmm (X″)" 형식으로 중복 없이 오름차순 정렬하여 반환합니다.
//
//	FormatLengths(map[string]int{"a": 457, "b": 508}) // "457mm (18″), 508mm (20″)"
func FormatLengths(lengths map[string]int) string {
	if len(lengths) == 0 {
		return ""
	}

	seen := make(map[int]struct{}, len(lengths))
	distinct := make([]int, 0, len(lengths))
	for _, mm := range lengths {
		if _, ok := seen[mm]; ok {
			continue
		}
		seen[mm] = struct{}{}
		distinct = append(distinct, mm)
	}
	sort.Ints(distinct)

	parts := make([]string, 0, len(distinct))
	for _, mm := range distinct {
		inches := math.Round(float64(mm)/25.4*10) / 10
		parts = append(parts, strconv.Itoa(mm)+"mm ("+strconv.FormatFloat(inches, 'f', -1, 64)+"″)")
	}
	return strings.Join(parts, ", ")
}
