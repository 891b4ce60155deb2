// Package mocks platform.Gateway의 testify 기반 모의 구현을 제공합니다.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/darkkaiser/product-enricher/internal/domain"
	"github.com/darkkaiser/product-enricher/internal/platform"
)

// Gateway platform.Gateway 모의 객체입니다.
type Gateway struct {
	mock.Mock
}

var _ platform.Gateway = (*Gateway)(nil)

func (m *Gateway) UpdateProductSEO(ctx context.Context, productGID string, seo domain.SeoContent) error {
	return m.Called(ctx, productGID, seo).Error(0)
}

func (m *Gateway) UpdateProductDescription(ctx context.Context, productID int64, html string) error {
	return m.Called(ctx, productID, html).Error(0)
}

func (m *Gateway) UpdateProductTags(ctx context.Context, productID int64, tags []string) error {
	return m.Called(ctx, productID, tags).Error(0)
}

func (m *Gateway) UpdateVariantPrice(ctx context.Context, variantID int64, price float64) error {
	return m.Called(ctx, variantID, price).Error(0)
}

func (m *Gateway) UpdateVariantPriceGraphQL(ctx context.Context, productGID, variantGID string, price float64) error {
	return m.Called(ctx, productGID, variantGID, price).Error(0)
}

func (m *Gateway) SetMetafield(ctx context.Context, productGID string, mf platform.Metafield) error {
	return m.Called(ctx, productGID, mf).Error(0)
}

func (m *Gateway) FindCollectionByTitle(ctx context.Context, title string) (*platform.Collection, error) {
	args := m.Called(ctx, title)
	c, _ := args.Get(0).(*platform.Collection)
	return c, args.Error(1)
}

func (m *Gateway) AddProductToCollection(ctx context.Context, collectionGID, productGID string) error {
	return m.Called(ctx, collectionGID, productGID).Error(0)
}

func (m *Gateway) ListProductImages(ctx context.Context, productID int64) ([]platform.Image, error) {
	args := m.Called(ctx, productID)
	images, _ := args.Get(0).([]platform.Image)
	return images, args.Error(1)
}

func (m *Gateway) SetImageAltText(ctx context.Context, productID, imageID int64, alt string) error {
	return m.Called(ctx, productID, imageID, alt).Error(0)
}
