package content

import (
	"strings"
	"testing"

	"github.com/darkkaiser/product-enricher/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestSynthesizer_Description_Sections(t *testing.T) {
	s := NewSynthesizer(testBrand)

	attrs := domain.InferredAttributes{
		Material: domain.MaterialSilverWithGemstone,
		Gemstone: "Moissanite",
		Type:     domain.TypeTennisNecklace,
		LengthsMM: map[string]int{
			"gid://shopify/ProductVariant/1": 508,
			"gid://shopify/ProductVariant/2": 457,
			"gid://shopify/ProductVariant/3": 457,
		},
	}

	html := s.Description("Moissanite Tennis Necklace S925", attrs, "<p>Hand-set stones.</p>")

	assert.Contains(t, html, "<p>Moissanite Tennis Necklace S925 is a tennis necklace crafted in 925 Sterling Silver, set with Moissanite stones")
	assert.Contains(t, html, "<h3>Why You'll Love It</h3>")
	assert.Contains(t, html, "<li>Genuine-look Moissanite with brilliant, eye-catching sparkle</li>")
	assert.Contains(t, html, "<li>Hypoallergenic 925 sterling silver, gentle on sensitive skin</li>")
	assert.Contains(t, html, "<li>Easy to layer with your favorite chains and pendants</li>")
	assert.NotContains(t, html, "Lightweight and comfortable")
	assert.Contains(t, html, "<li><strong>Stone:</strong> Moissanite</li>")
	assert.Contains(t, html, "<li><strong>Available Lengths:</strong> 457mm (18″), 508mm (20″)</li>")
	assert.Contains(t, html, "<h3>About This Piece</h3>\n<p>Hand-set stones.</p>")
	assert.Contains(t, html, "<h3>Care Instructions</h3>")

	// 선물 포장 안내는 항상 마지막 장점 항목
	bulletsEnd := strings.Index(html, "</ul>")
	lastBullet := strings.LastIndex(html[:bulletsEnd], "<li>")
	assert.Equal(t, "<li>Arrives gift-ready in an elegant box</li>\n", html[lastBullet:bulletsEnd])
}

func TestSynthesizer_Description_GenericBullet(t *testing.T) {
	s := NewSynthesizer(testBrand)

	html := s.Description("Steel Cuff", domain.InferredAttributes{Material: domain.MaterialSteel, Type: domain.TypeBracelet}, "")

	assert.Contains(t, html, "<li>Lightweight and comfortable for all-day wear</li>")
	assert.NotContains(t, html, "Stone:")
	assert.NotContains(t, html, "Available Lengths")
	assert.NotContains(t, html, "About This Piece")
}

func TestSynthesizer_Description_EscapesText(t *testing.T) {
	s := NewSynthesizer(testBrand)

	html := s.Description(`<script>alert(1)</script> Ring`, domain.InferredAttributes{Material: domain.MaterialSteel, Type: domain.TypeRing}, "")
	assert.NotContains(t, html, "<script>")
}

func TestSynthesizer_Description_NeverContainsImages(t *testing.T) {
	s := NewSynthesizer(testBrand)
	attrs := domain.InferredAttributes{Material: domain.MaterialAlloyWithStone, Type: domain.TypeNecklace}

	sources := []string{
		`<p>Pretty</p><img src="https://supplier.example/a.jpg">`,
		`<IMG SRC="x.jpg"><p>Upper</p>`,
		`<figure><img src="a.jpg"><figcaption>Look</figcaption></figure><p>Text</p>`,
		`<div><picture><source srcset="a.webp"><img src="a.jpg"></picture></div>`,
		`<p>Commented <!-- <img src="hidden.jpg"> --> out</p>`,
		`<noscript><img src="tracking.gif"></noscript><p>Body</p>`,
		`<textarea><img src="raw.jpg"></textarea><p>Body</p>`,
		`<svg><image href="a.png"/></svg><p>Vector</p>`,
		`<p>Broken <img src="x.jpg"`,
		`<img src="only.jpg">`,
	}

	for _, src := range sources {
		html := s.Description("Layered Necklace", attrs, src)

		assert.False(t, ContainsImageMarkup(html), "source=%q\noutput=%s", src, html)
	}
}

func TestStripImages(t *testing.T) {
	assert.Equal(t, "<p>Pretty</p>", StripImages(`<p>Pretty</p><img src="a.jpg">`))
	assert.Equal(t, "<p>Text</p>", StripImages(`<figure><img src="a.jpg"></figure><p>Text</p>`))
	assert.Equal(t, "<p>a  b</p>", StripImages(`<p>a <!-- c --> b</p>`))
	assert.Empty(t, StripImages(""))
	assert.Empty(t, StripImages(`<img src="a.jpg">`))
}

func TestPlainText(t *testing.T) {
	assert.Equal(t, "Hello world Second", PlainText(`<p>Hello <b>world</b></p><p>Second</p>`))
	assert.Equal(t, "Visible", PlainText(`<style>p{}</style><p>Visible</p><script>x()</script>`))
	assert.Equal(t, "", PlainText(""))
	assert.Equal(t, "plain", PlainText("plain"))
}

func TestFormatLengths(t *testing.T) {
	assert.Equal(t, "", FormatLengths(nil))
	assert.Equal(t, "450mm (17.7″)", FormatLengths(map[string]int{"a": 450}))
	assert.Equal(t, "406mm (16″), 457mm (18″)", FormatLengths(map[string]int{"a": 457, "b": 406, "c": 457}))
}

func TestContainsImageMarkup(t *testing.T) {
	assert.True(t, ContainsImageMarkup(`<IMG src="a">`))
	assert.True(t, ContainsImageMarkup(`<figure>`))
	assert.False(t, ContainsImageMarkup(`&lt;img&gt;`))
}
