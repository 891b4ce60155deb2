package pipeline

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darkkaiser/product-enricher/internal/domain"
	"github.com/darkkaiser/product-enricher/internal/enrich/content"
	"github.com/darkkaiser/product-enricher/internal/enrich/pricing"
	"github.com/darkkaiser/product-enricher/internal/metrics"
	apperrors "github.com/darkkaiser/product-enricher/internal/pkg/errors"
	"github.com/darkkaiser/product-enricher/internal/platform"
)

// fakeGateway 쓰기 결과를 메모리에 보관하는 결정적인 플랫폼 구현입니다.
type fakeGateway struct {
	mu sync.Mutex

	seo         domain.SeoContent
	description string
	tags        []string
	prices      map[int64]float64
	metafields  map[string]string
	collections map[string]*platform.Collection
	members     map[string]map[string]bool
	images      []platform.Image

	// missingRESTVariants REST 경로에서 NotFound를 반환할 variant ID
	missingRESTVariants map[int64]bool
	graphQLPriceCalls   int
}

var _ platform.Gateway = (*fakeGateway)(nil)

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		prices:     make(map[int64]float64),
		metafields: make(map[string]string),
		collections: map[string]*platform.Collection{
			"Amethyst Jewelry":        {GraphQLID: "gid://shopify/Collection/1", Title: "Amethyst Jewelry"},
			"Sterling Silver Jewelry": {GraphQLID: "gid://shopify/Collection/2", Title: "Sterling Silver Jewelry"},
		},
		members:             make(map[string]map[string]bool),
		images:              []platform.Image{{ID: 11}, {ID: 12, Alt: "Model shot"}},
		missingRESTVariants: make(map[int64]bool),
	}
}

func (g *fakeGateway) UpdateProductSEO(_ context.Context, _ string, seo domain.SeoContent) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seo = seo
	return nil
}

func (g *fakeGateway) UpdateProductDescription(_ context.Context, _ int64, html string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.description = html
	return nil
}

func (g *fakeGateway) UpdateProductTags(_ context.Context, _ int64, tags []string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.tags = append([]string(nil), tags...)
	return nil
}

func (g *fakeGateway) UpdateVariantPrice(_ context.Context, variantID int64, price float64) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.missingRESTVariants[variantID] {
		return apperrors.New(apperrors.NotFound, "variant 없음")
	}
	g.prices[variantID] = price
	return nil
}

func (g *fakeGateway) UpdateVariantPriceGraphQL(_ context.Context, _ string, variantGID string, price float64) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.graphQLPriceCalls++
	id, _ := domain.ParseGID(variantGID)
	g.prices[id] = price
	return nil
}

func (g *fakeGateway) SetMetafield(_ context.Context, _ string, mf platform.Metafield) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.metafields[mf.Namespace+"."+mf.Key] = mf.Value
	return nil
}

func (g *fakeGateway) FindCollectionByTitle(_ context.Context, title string) (*platform.Collection, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.collections[title], nil
}

func (g *fakeGateway) AddProductToCollection(_ context.Context, collectionGID, productGID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.members[collectionGID] == nil {
		g.members[collectionGID] = make(map[string]bool)
	}
	g.members[collectionGID][productGID] = true
	return nil
}

func (g *fakeGateway) ListProductImages(context.Context, int64) ([]platform.Image, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]platform.Image(nil), g.images...), nil
}

func (g *fakeGateway) SetImageAltText(_ context.Context, _ int64, imageID int64, alt string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	for i := range g.images {
		if g.images[i].ID == imageID {
			g.images[i].Alt = alt
		}
	}
	return nil
}

// snapshot 비교 가능한 형태로 현재 상태를 반환합니다.
func (g *fakeGateway) snapshot() map[string]any {
	g.mu.Lock()
	defer g.mu.Unlock()

	var members []string
	for c, products := range g.members {
		for p := range products {
			members = append(members, c+"="+p)
		}
	}
	sort.Strings(members)

	prices := make(map[int64]float64, len(g.prices))
	for k, v := range g.prices {
		prices[k] = v
	}
	metafields := make(map[string]string, len(g.metafields))
	for k, v := range g.metafields {
		metafields[k] = v
	}

	return map[string]any{
		"seo":         g.seo,
		"description": g.description,
		"tags":        append([]string(nil), g.tags...),
		"prices":      prices,
		"metafields":  metafields,
		"members":     members,
		"images":      append([]platform.Image(nil), g.images...),
	}
}

type stubCompetitor struct {
	prices []float64
	err    error
	query  string
}

func (s *stubCompetitor) SearchPrices(_ context.Context, query string) ([]float64, error) {
	s.query = query
	return s.prices, s.err
}

type recordingNotifier struct {
	messages []string
}

func (n *recordingNotifier) Notify(message string) {
	n.messages = append(n.messages, message)
}

func newTestPipeline(gw platform.Gateway, src *stubCompetitor, notifier Notifier) *Pipeline {
	synth := content.NewSynthesizer("Lumière Atelier")
	opts := Options{
		Engine: pricing.NewEngine(pricing.Options{
			MinPrice: 6.99, MaxPrice: 499.99,
			SampleMin: 2, SampleMax: 2000,
			Markup: 1.10,
		}),
		Synthesizer:  synth,
		Orchestrator: NewOrchestrator(gw, synth, "custom", "material", metrics.NewRegistry()),
		Notifier:     notifier,
		Metrics:      metrics.NewRegistry(),
		EventTimeout: 5 * time.Second,
	}
	if src != nil {
		opts.Competitor = src
	}
	return New(opts)
}

func amethystEvent() *domain.ProductEvent {
	opt := "20 inch"
	return &domain.ProductEvent{
		GraphQLID: "gid://shopify/Product/100",
		Title:     "925 Sterling Silver Amethyst Pendant Necklace | Free Shipping",
		BodyHTML:  `<p>Hand set stone.</p><img src="a.jpg"><figure><img src="b.jpg"></figure>`,
		Tags:      "New Arrival",
		Variants: []domain.VariantRef{
			{ID: 1, Title: "45cm"},
			{ID: 2, Title: "Long", Option1: &opt},
		},
	}
}

func TestPipeline_Process_EndToEnd(t *testing.T) {
	gw := newFakeGateway()

	report, err := newTestPipeline(gw, nil, nil).Process(context.Background(), amethystEvent())
	require.NoError(t, err)
	require.True(t, report.Succeeded(), "%v", report.Diagnostics())

	state := gw.snapshot()

	// 순은+보석이고 길이를 알면 길이별 가격 단계가 적용됩니다. (450mm → A, 508mm → B)
	assert.Equal(t, map[int64]float64{1: 49.99, 2: 59.99}, state["prices"])

	seo := state["seo"].(domain.SeoContent)
	assert.True(t, strings.HasPrefix(seo.Title, "925 Sterling Silver Amethyst Pendant Necklace"))
	assert.LessOrEqual(t, len([]rune(seo.Title)), domain.MaxSEOTitleLength)
	assert.LessOrEqual(t, len([]rune(seo.Description)), domain.MaxSEODescriptionLength)

	description := state["description"].(string)
	assert.NotContains(t, description, "<img")
	assert.NotContains(t, description, "<figure")
	assert.Contains(t, description, "Hand set stone.")

	tags := state["tags"].([]string)
	assert.Contains(t, tags, "New Arrival")
	assert.Contains(t, tags, "Amethyst")
	assert.True(t, sort.StringsAreSorted(tags))

	assert.Equal(t, map[string]string{"custom.material": "925 Sterling Silver"}, state["metafields"])
	assert.Equal(t, []string{
		"gid://shopify/Collection/1=gid://shopify/Product/100",
		"gid://shopify/Collection/2=gid://shopify/Product/100",
	}, state["members"])

	images := state["images"].([]platform.Image)
	assert.Equal(t, seo.Title+" | Lumière Atelier", images[0].Alt)
	assert.Equal(t, "Model shot", images[1].Alt)

	// Necklaces 컬렉션은 없으므로 생략됩니다.
	necklaces, _ := report.Find(StepCollectionMembership, "Necklaces")
	assert.Equal(t, StatusSkipped, necklaces.Status)
}

func TestPipeline_Process_Idempotent(t *testing.T) {
	gw := newFakeGateway()
	p := newTestPipeline(gw, nil, nil)

	_, err := p.Process(context.Background(), amethystEvent())
	require.NoError(t, err)
	first := gw.snapshot()

	_, err = p.Process(context.Background(), amethystEvent())
	require.NoError(t, err)
	second := gw.snapshot()

	assert.Equal(t, first, second)
}

func TestPipeline_Process_SteelWithoutCompetitor(t *testing.T) {
	gw := newFakeGateway()

	event := &domain.ProductEvent{
		ID:       200,
		Title:    "Stainless Steel Chain Bracelet",
		Variants: []domain.VariantRef{{ID: 5, Title: "Default Title"}},
	}

	report, err := newTestPipeline(gw, nil, nil).Process(context.Background(), event)
	require.NoError(t, err)
	assert.True(t, report.Succeeded())
	assert.Equal(t, map[int64]float64{5: 19.99}, gw.snapshot()["prices"])
}

func TestPipeline_Process_Benchmark(t *testing.T) {
	event := func() *domain.ProductEvent {
		return &domain.ProductEvent{
			ID:       300,
			Title:    "Rhinestone Floral Brooch | Sale",
			Variants: []domain.VariantRef{{ID: 7}},
		}
	}

	t.Run("벤치마크 사용", func(t *testing.T) {
		gw := newFakeGateway()
		src := &stubCompetitor{prices: []float64{1, 50, 60, 70, 5000}}

		_, err := newTestPipeline(gw, src, nil).Process(context.Background(), event())
		require.NoError(t, err)
		assert.Equal(t, "Rhinestone Floral Brooch", src.query)
		assert.Equal(t, map[int64]float64{7: 66.99}, gw.snapshot()["prices"])
	})

	t.Run("조회 실패 시 고정 가격", func(t *testing.T) {
		gw := newFakeGateway()
		src := &stubCompetitor{err: errors.New("boom")}

		report, err := newTestPipeline(gw, src, nil).Process(context.Background(), event())
		require.NoError(t, err)
		assert.True(t, report.Succeeded())
		assert.Equal(t, map[int64]float64{7: 14.99}, gw.snapshot()["prices"])
	})

	t.Run("유효 표본 없음", func(t *testing.T) {
		gw := newFakeGateway()
		src := &stubCompetitor{prices: []float64{0.5, 9000}}

		_, err := newTestPipeline(gw, src, nil).Process(context.Background(), event())
		require.NoError(t, err)
		assert.Equal(t, map[int64]float64{7: 14.99}, gw.snapshot()["prices"])
	})
}

func TestPipeline_Process_PriceFallbackPath(t *testing.T) {
	gw := newFakeGateway()
	gw.missingRESTVariants[2] = true

	report, err := newTestPipeline(gw, nil, nil).Process(context.Background(), amethystEvent())
	require.NoError(t, err)

	assert.Equal(t, 1, gw.graphQLPriceCalls)
	assert.Equal(t, map[int64]float64{1: 49.99, 2: 59.99}, gw.snapshot()["prices"])

	step, _ := report.Find(StepVariantPrice, "gid://shopify/ProductVariant/2")
	assert.True(t, step.Fallback)
	assert.Equal(t, StatusSucceeded, step.Status)
}

func TestPipeline_Process_InvalidEvent(t *testing.T) {
	notifier := &recordingNotifier{}

	tests := []struct {
		name  string
		event *domain.ProductEvent
	}{
		{"식별자 없음", &domain.ProductEvent{Title: "Ring"}},
		{"식별자 불일치", &domain.ProductEvent{ID: 1, GraphQLID: "gid://shopify/Product/2"}},
		{"형식 오류", &domain.ProductEvent{GraphQLID: "gid://shopify/Product/abc"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := newTestPipeline(newFakeGateway(), nil, notifier).Process(context.Background(), tt.event)
			assert.Nil(t, report)
			assert.True(t, apperrors.Is(err, apperrors.InvalidInput))
		})
	}
	assert.Empty(t, notifier.messages)
}

// failingSEOGateway SEO 갱신만 실패하는 게이트웨이
type failingSEOGateway struct {
	*fakeGateway
}

func (g failingSEOGateway) UpdateProductSEO(context.Context, string, domain.SeoContent) error {
	return apperrors.New(apperrors.ExecutionFailed, "seo rejected")
}

func TestPipeline_Process_NotifiesOnFailure(t *testing.T) {
	notifier := &recordingNotifier{}

	report, err := newTestPipeline(failingSEOGateway{newFakeGateway()}, nil, notifier).Process(context.Background(), amethystEvent())
	require.NoError(t, err)
	assert.False(t, report.Succeeded())

	require.Len(t, notifier.messages, 1)
	assert.Contains(t, notifier.messages[0], "gid://shopify/Product/100")
	assert.Contains(t, notifier.messages[0], "seo rejected")
}

func TestPipeline_Process_NoTitleUsesDefaults(t *testing.T) {
	gw := newFakeGateway()

	report, err := newTestPipeline(gw, nil, nil).Process(context.Background(), &domain.ProductEvent{ID: 400})
	require.NoError(t, err)
	assert.True(t, report.Succeeded())

	seo := gw.snapshot()["seo"].(domain.SeoContent)
	assert.NotEmpty(t, seo.Title)
	assert.NotEmpty(t, seo.Description)
}

// cancelAfterSEOGateway SEO 갱신이 성공한 직후 호출자의 컨텍스트를 취소합니다.
type cancelAfterSEOGateway struct {
	*fakeGateway
	cancel context.CancelFunc
}

func (g cancelAfterSEOGateway) UpdateProductSEO(ctx context.Context, productGID string, seo domain.SeoContent) error {
	err := g.fakeGateway.UpdateProductSEO(ctx, productGID, seo)
	g.cancel()
	return err
}

func TestPipeline_Process_CallerCancellationDoesNotAbort(t *testing.T) {
	gw := newFakeGateway()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	report, err := newTestPipeline(cancelAfterSEOGateway{gw, cancel}, nil, nil).Process(ctx, amethystEvent())
	require.NoError(t, err)
	require.Error(t, ctx.Err())

	assert.False(t, report.Aborted)
	assert.True(t, report.Succeeded(), "%v", report.Diagnostics())
	assert.Zero(t, report.Count(StatusFailed))
	assert.Equal(t, map[int64]float64{1: 49.99, 2: 59.99}, gw.snapshot()["prices"])
}

// blockingSEOGateway SEO 갱신이 컨텍스트가 끝날 때까지 응답하지 않습니다.
type blockingSEOGateway struct {
	*fakeGateway
}

func (g blockingSEOGateway) UpdateProductSEO(ctx context.Context, _ string, _ domain.SeoContent) error {
	<-ctx.Done()
	return apperrors.FromContext(ctx.Err(), "응답 대기 중 중단")
}

func TestPipeline_Process_EventDeadlineAborts(t *testing.T) {
	gw := newFakeGateway()
	p := newTestPipeline(blockingSEOGateway{gw}, nil, nil)
	p.eventTimeout = 50 * time.Millisecond

	report, err := p.Process(context.Background(), amethystEvent())
	require.NoError(t, err)

	assert.True(t, report.Aborted)
	assert.True(t, apperrors.Is(report.AbortReason, apperrors.Timeout))
	assert.False(t, report.Succeeded())
	assert.Empty(t, gw.snapshot()["prices"])
}

func TestPipeline_Process_DoesNotMutateEvent(t *testing.T) {
	event := &domain.ProductEvent{
		ID:       500,
		Title:    "Opal Ring",
		Variants: []domain.VariantRef{{ID: 9, Title: "Default Title"}},
	}

	_, err := newTestPipeline(newFakeGateway(), nil, nil).Process(context.Background(), event)
	require.NoError(t, err)

	assert.Empty(t, event.GraphQLID)
	assert.Empty(t, event.Variants[0].GraphQLID)
}
