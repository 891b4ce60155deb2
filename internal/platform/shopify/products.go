package shopify

import (
	"context"
	"net/http"
	"strings"

	"github.com/darkkaiser/product-enricher/internal/domain"
	"github.com/darkkaiser/product-enricher/internal/platform"
	applog "github.com/darkkaiser/product-enricher/pkg/log"
)

const productUpdateMutation = `
mutation productUpdate($input: ProductInput!) {
	productUpdate(input: $input) {
		product { id }
		userErrors { field message }
	}
}`

// UpdateProductSEO 상품의 SEO 제목과 설명을 갱신합니다.
func (c *Client) UpdateProductSEO(ctx context.Context, productGID string, seo domain.SeoContent) error {
	var data struct {
		ProductUpdate struct {
			UserErrors []userError `json:"userErrors"`
		} `json:"productUpdate"`
	}

	err := c.graphql(ctx, productUpdateMutation, map[string]any{
		"input": map[string]any{
			"id": productGID,
			"seo": map[string]any{
				"title":       seo.Title,
				"description": seo.Description,
			},
		},
	}, &data)
	if err != nil {
		return err
	}

	return userErrorsToError("productUpdate", data.ProductUpdate.UserErrors)
}

// UpdateProductDescription 상품 설명(body_html)을 교체합니다.
func (c *Client) UpdateProductDescription(ctx context.Context, productID int64, html string) error {
	return c.updateProduct(ctx, productID, map[string]any{"body_html": html})
}

// UpdateProductTags 상품 태그 전체를 교체합니다.
func (c *Client) UpdateProductTags(ctx context.Context, productID int64, tags []string) error {
	return c.updateProduct(ctx, productID, map[string]any{"tags": strings.Join(tags, ", ")})
}

func (c *Client) updateProduct(ctx context.Context, productID int64, fields map[string]any) error {
	fields["id"] = productID
	return c.rest(ctx, http.MethodPut, productPath(productID, ".json"), map[string]any{"product": fields}, nil)
}

// UpdateVariantPrice REST로 옵션 상품 가격을 갱신합니다.
func (c *Client) UpdateVariantPrice(ctx context.Context, variantID int64, price float64) error {
	payload := map[string]any{
		"variant": map[string]any{
			"id":    variantID,
			"price": formatMoney(price),
		},
	}
	return c.rest(ctx, http.MethodPut, "/variants/"+itoa(variantID)+".json", payload, nil)
}

const variantsBulkUpdateMutation = `
mutation productVariantsBulkUpdate($productId: ID!, $variants: [ProductVariantsBulkInput!]!) {
	productVariantsBulkUpdate(productId: $productId, variants: $variants) {
		productVariants { id }
		userErrors { field message }
	}
}`

// UpdateVariantPriceGraphQL GraphQL productVariantsBulkUpdate로 옵션 상품 가격을 갱신합니다.
func (c *Client) UpdateVariantPriceGraphQL(ctx context.Context, productGID, variantGID string, price float64) error {
	var data struct {
		ProductVariantsBulkUpdate struct {
			UserErrors []userError `json:"userErrors"`
		} `json:"productVariantsBulkUpdate"`
	}

	err := c.graphql(ctx, variantsBulkUpdateMutation, map[string]any{
		"productId": productGID,
		"variants": []map[string]any{
			{"id": variantGID, "price": formatMoney(price)},
		},
	}, &data)
	if err != nil {
		return err
	}

	if err := userErrorsToError("productVariantsBulkUpdate", data.ProductVariantsBulkUpdate.UserErrors); err != nil {
		return err
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"variant_id": variantGID,
		"price":      formatMoney(price),
	}).Debug("GraphQL 경로로 가격 갱신 완료")

	return nil
}

type restImage struct {
	ID  int64   `json:"id"`
	Alt *string `json:"alt"`
	Src string  `json:"src"`
}

// ListProductImages 상품 이미지 목록을 조회합니다.
func (c *Client) ListProductImages(ctx context.Context, productID int64) ([]platform.Image, error) {
	var resp struct {
		Images []restImage `json:"images"`
	}
	if err := c.rest(ctx, http.MethodGet, productPath(productID, "/images.json"), nil, &resp); err != nil {
		return nil, err
	}

	images := make([]platform.Image, 0, len(resp.Images))
	for _, img := range resp.Images {
		var alt string
		if img.Alt != nil {
			alt = *img.Alt
		}
		images = append(images, platform.Image{ID: img.ID, Alt: alt, Src: img.Src})
	}
	return images, nil
}

// SetImageAltText 이미지의 대체 텍스트를 설정합니다.
func (c *Client) SetImageAltText(ctx context.Context, productID, imageID int64, alt string) error {
	payload := map[string]any{
		"image": map[string]any{
			"id":  imageID,
			"alt": alt,
		},
	}
	return c.rest(ctx, http.MethodPut, productPath(productID, "/images/"+itoa(imageID)+".json"), payload, nil)
}
