package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	apperrors "github.com/darkkaiser/product-enricher/internal/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeConfigFile 임시 디렉토리에 설정 파일을 만들고 경로를 반환합니다.
func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), DefaultFilename)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

const minimalConfig = `{
	"shopify": {
		"shop_domain": "my-shop.myshopify.com",
		"access_token": "shpat_0123456789abcdef"
	}
}`

func TestNormalizeEnvKey(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"ENRICHER_DEBUG", "debug"},
		{"ENRICHER_SHOPIFY__ACCESS_TOKEN", "shopify.access_token"},
		{"ENRICHER_HTTP__RATE_LIMIT__BURST", "http.rate_limit.burst"},
		{"ENRICHER_ALERT__TELEGRAM__CHAT_ID", "alert.telegram.chat_id"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, normalizeEnvKey(tt.input))
		})
	}
}

func TestNewDefaultConfig(t *testing.T) {
	c := newDefaultConfig()

	assert.Equal(t, "2024-10", c.Shopify.APIVersion)
	assert.Equal(t, 10*time.Second, c.Shopify.RequestTimeout)
	assert.Equal(t, 0, c.Shopify.MaxRetries)
	assert.Equal(t, 6.99, c.Pricing.MinPrice)
	assert.Equal(t, 499.99, c.Pricing.MaxPrice)
	assert.Equal(t, 1.10, c.Pricing.Markup)
	assert.Equal(t, "Lumière Atelier", c.Store.Brand)
	assert.Equal(t, 25*time.Second, c.Pipeline.EventTimeout)
	assert.Equal(t, 8080, c.HTTP.ListenPort)
	assert.False(t, c.Competitor.Enabled())
	assert.False(t, c.Alert.Telegram.Enabled())
}

func TestLoadWithFile_MinimalFileUsesDefaults(t *testing.T) {
	path := writeConfigFile(t, minimalConfig)

	c, err := LoadWithFile(path)
	require.NoError(t, err)

	assert.Equal(t, "my-shop.myshopify.com", c.Shopify.ShopDomain)
	assert.Equal(t, "shpat_0123456789abcdef", c.Shopify.AccessToken)
	assert.Equal(t, "2024-10", c.Shopify.APIVersion)
	assert.Equal(t, 10*time.Second, c.Shopify.RequestTimeout)
	assert.Equal(t, "shopping_results.#.extracted_price", c.Competitor.PricePath)
	assert.Equal(t, 1.0, c.Pricing.CurrencyRate)
	assert.Equal(t, "custom", c.Store.MetafieldNamespace)
	assert.Equal(t, []string{"*"}, c.HTTP.AllowOrigins)
}

func TestLoadWithFile_FileOverridesDefaults(t *testing.T) {
	path := writeConfigFile(t, `{
		"debug": true,
		"shopify": {
			"shop_domain": "https://other.myshopify.com",
			"access_token": "token",
			"request_timeout": "3s"
		},
		"pricing": { "min_price": 9.99, "max_price": 199.99 },
		"store": { "brand": "Maison Test" },
		"http": { "listen_port": 9090, "allow_origins": ["https://admin.shopify.com"] }
	}`)

	c, err := LoadWithFile(path)
	require.NoError(t, err)

	assert.True(t, c.Debug)
	assert.Equal(t, 3*time.Second, c.Shopify.RequestTimeout)
	assert.Equal(t, 9.99, c.Pricing.MinPrice)
	assert.Equal(t, 199.99, c.Pricing.MaxPrice)
	assert.Equal(t, 2000.0, c.Pricing.SampleMax, "지정하지 않은 값은 기본값 유지")
	assert.Equal(t, "Maison Test", c.Store.Brand)
	assert.Equal(t, 9090, c.HTTP.ListenPort)
	assert.Equal(t, []string{"https://admin.shopify.com"}, c.HTTP.AllowOrigins)
}

func TestLoadWithFile_EnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, minimalConfig)

	t.Setenv("ENRICHER_SHOPIFY__ACCESS_TOKEN", "from-env")
	t.Setenv("ENRICHER_HTTP__LISTEN_PORT", "8181")
	t.Setenv("ENRICHER_PIPELINE__EVENT_TIMEOUT", "40s")
	t.Setenv("ENRICHER_COMPETITOR__API_KEY", "serp-key")

	c, err := LoadWithFile(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", c.Shopify.AccessToken)
	assert.Equal(t, 8181, c.HTTP.ListenPort)
	assert.Equal(t, 40*time.Second, c.Pipeline.EventTimeout)
	assert.True(t, c.Competitor.Enabled())
}

func TestLoadWithFile_MissingFileUsesEnvOnly(t *testing.T) {
	t.Setenv("ENRICHER_SHOPIFY__SHOP_DOMAIN", "env-shop.myshopify.com")
	t.Setenv("ENRICHER_SHOPIFY__ACCESS_TOKEN", "env-token")

	c, err := LoadWithFile(filepath.Join(t.TempDir(), "not-exists.json"))
	require.NoError(t, err)
	assert.Equal(t, "env-shop.myshopify.com", c.Shopify.ShopDomain)
}

func TestLoadWithFile_Errors(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		errContains string
	}{
		{
			name:        "필수값 누락",
			content:     `{"shopify": {"shop_domain": "my-shop.myshopify.com"}}`,
			errContains: "shopify.access_token",
		},
		{
			name:        "잘못된 상점 도메인",
			content:     `{"shopify": {"shop_domain": "my shop", "access_token": "t"}}`,
			errContains: "shopify.shop_domain",
		},
		{
			name:        "알 수 없는 키",
			content:     `{"shopify": {"shop_domain": "my-shop.myshopify.com", "access_token": "t", "unknown_key": 1}}`,
			errContains: "구조체로 변환",
		},
		{
			name:        "잘못된 JSON",
			content:     `{"shopify": `,
			errContains: "설정 파일 로드",
		},
		{
			name: "최대 가격이 최소 가격보다 작음",
			content: `{"shopify": {"shop_domain": "my-shop.myshopify.com", "access_token": "t"},
				"pricing": {"min_price": 50, "max_price": 10}}`,
			errContains: "pricing.max_price",
		},
		{
			name: ".99 가격이 존재하지 않는 범위",
			content: `{"shopify": {"shop_domain": "my-shop.myshopify.com", "access_token": "t"},
				"pricing": {"min_price": 10.10, "max_price": 10.50}}`,
			errContains: ".99로 끝나는 가격",
		},
		{
			name: "통화 환산 비율이 0",
			content: `{"shopify": {"shop_domain": "my-shop.myshopify.com", "access_token": "t"},
				"pricing": {"currency_rate": 0}}`,
			errContains: "pricing.currency_rate",
		},
		{
			name: "잘못된 텔레그램 토큰",
			content: `{"shopify": {"shop_domain": "my-shop.myshopify.com", "access_token": "t"},
				"alert": {"telegram": {"bot_token": "invalid", "chat_id": 1}}}`,
			errContains: "alert.telegram.bot_token",
		},
		{
			name: "텔레그램 채팅방 ID 누락",
			content: `{"shopify": {"shop_domain": "my-shop.myshopify.com", "access_token": "t"},
				"alert": {"telegram": {"bot_token": "123456789:ABCdefGHIjklMNOpqrSTUvwxYZ0123456789"}}}`,
			errContains: "alert.telegram.chat_id",
		},
		{
			name: "잘못된 CORS Origin",
			content: `{"shopify": {"shop_domain": "my-shop.myshopify.com", "access_token": "t"},
				"http": {"allow_origins": ["admin.shopify.com"]}}`,
			errContains: "CORS Origin",
		},
		{
			name: "와일드카드와 다른 Origin 혼용",
			content: `{"shopify": {"shop_domain": "my-shop.myshopify.com", "access_token": "t"},
				"http": {"allow_origins": ["*", "https://admin.shopify.com"]}}`,
			errContains: "와일드카드",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfigFile(t, tt.content)

			c, err := LoadWithFile(path)
			require.Error(t, err)
			assert.Nil(t, c)
			assert.True(t, apperrors.Is(err, apperrors.InvalidInput))
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestCheckPriceWindow(t *testing.T) {
	assert.NoError(t, checkPriceWindow(PricingConfig{MinPrice: 6.99, MaxPrice: 499.99}))
	assert.NoError(t, checkPriceWindow(PricingConfig{MinPrice: 10, MaxPrice: 11}), "10.99가 범위 안에 존재")
	assert.Error(t, checkPriceWindow(PricingConfig{MinPrice: 10.10, MaxPrice: 10.50}))
}

func TestVerifyRecommendations(t *testing.T) {
	c := newDefaultConfig()
	warnings := c.VerifyRecommendations()
	assert.Len(t, warnings, 2, "웹훅 서명 키, 경쟁사 API 키 누락")

	c.HTTP.WebhookSecret = "secret"
	c.Competitor.APIKey = "key"
	assert.Empty(t, c.VerifyRecommendations())

	c.HTTP.ListenPort = 80
	assert.Len(t, c.VerifyRecommendations(), 1)
}
