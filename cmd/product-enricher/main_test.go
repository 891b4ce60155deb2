package main

import (
	"testing"
	"time"

	"github.com/darkkaiser/product-enricher/internal/config"
	"github.com/darkkaiser/product-enricher/internal/pkg/version"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppMetadata(t *testing.T) {
	assert.Equal(t, "product-enricher", config.AppName)
	assert.Equal(t, "product-enricher.json", config.DefaultFilename)
	assert.NotEmpty(t, version.Get().GoVersion)
}

func TestNewApp_WiresServices(t *testing.T) {
	appConfig := &config.AppConfig{
		Shopify: config.ShopifyConfig{
			ShopDomain:        "test.myshopify.com",
			AccessToken:       "shpat_test",
			APIVersion:        "2024-10",
			RequestTimeout:    time.Second,
			RequestsPerSecond: 2,
			Burst:             4,
		},
		Pricing: config.PricingConfig{MinPrice: 9.99, MaxPrice: 199.99, SampleMin: 5, SampleMax: 500, Markup: 1.1, CurrencyRate: 1},
		Store:   config.StoreConfig{Brand: "Test Atelier", MetafieldNamespace: "custom", MetafieldKey: "material"},
		Pipeline: config.PipelineConfig{EventTimeout: 10 * time.Second},
		HTTP: config.HTTPConfig{
			ListenPort:     8080,
			RequestTimeout: 30 * time.Second,
			BodyLimit:      "2M",
			RateLimit:      config.RateLimitConfig{RequestsPerSecond: 10, Burst: 20},
		},
	}

	a, err := newApp(appConfig, version.Info{Version: "test"})
	require.NoError(t, err)

	assert.NotNil(t, a.pipeline)
	assert.Len(t, a.services, 2)
}
