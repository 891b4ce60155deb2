package shopify

import (
	"context"
	"strconv"
	"strings"

	"github.com/iancoleman/strcase"

	"github.com/darkkaiser/product-enricher/internal/platform"
)

const (
	metafieldsSetMutation = `
mutation metafieldsSet($metafields: [MetafieldsSetInput!]!) {
	metafieldsSet(metafields: $metafields) {
		metafields { id }
		userErrors { field message }
	}
}`

	metafieldTypeText = "single_line_text_field"
)

// SetMetafield 상품 메타필드를 설정합니다. 키는 snake_case로 정규화됩니다. (예: "Material Type" → material_type)
func (c *Client) SetMetafield(ctx context.Context, productGID string, mf platform.Metafield) error {
	var data struct {
		MetafieldsSet struct {
			UserErrors []userError `json:"userErrors"`
		} `json:"metafieldsSet"`
	}

	err := c.graphql(ctx, metafieldsSetMutation, map[string]any{
		"metafields": []map[string]any{{
			"ownerId":   productGID,
			"namespace": strings.TrimSpace(mf.Namespace),
			"key":       strcase.ToSnake(strings.TrimSpace(mf.Key)),
			"type":      metafieldTypeText,
			"value":     mf.Value,
		}},
	}, &data)
	if err != nil {
		return err
	}

	return userErrorsToError("metafieldsSet", data.MetafieldsSet.UserErrors)
}

const collectionsByTitleQuery = `
query collectionsByTitle($query: String!) {
	collections(first: 10, query: $query) {
		nodes { id title }
	}
}`

// FindCollectionByTitle 제목이 정확히 일치하는 컬렉션을 찾습니다.
// 검색 API는 부분 일치 결과도 돌려주므로 제목을 다시 비교합니다.
func (c *Client) FindCollectionByTitle(ctx context.Context, title string) (*platform.Collection, error) {
	var data struct {
		Collections struct {
			Nodes []struct {
				ID    string `json:"id"`
				Title string `json:"title"`
			} `json:"nodes"`
		} `json:"collections"`
	}

	query := "title:" + strconv.Quote(title)
	if err := c.graphql(ctx, collectionsByTitleQuery, map[string]any{"query": query}, &data); err != nil {
		return nil, err
	}

	for _, n := range data.Collections.Nodes {
		if n.Title == title {
			return &platform.Collection{GraphQLID: n.ID, Title: n.Title}, nil
		}
	}
	return nil, nil
}

const collectionAddProductsMutation = `
mutation collectionAddProducts($id: ID!, $productIds: [ID!]!) {
	collectionAddProducts(id: $id, productIds: $productIds) {
		collection { id }
		userErrors { field message }
	}
}`

// AddProductToCollection 상품을 컬렉션에 추가합니다. 이미 포함된 상품이면 성공으로 처리합니다.
func (c *Client) AddProductToCollection(ctx context.Context, collectionGID, productGID string) error {
	var data struct {
		CollectionAddProducts struct {
			UserErrors []userError `json:"userErrors"`
		} `json:"collectionAddProducts"`
	}

	err := c.graphql(ctx, collectionAddProductsMutation, map[string]any{
		"id":         collectionGID,
		"productIds": []string{productGID},
	}, &data)
	if err != nil {
		return err
	}

	var remaining []userError
	for _, e := range data.CollectionAddProducts.UserErrors {
		if !strings.Contains(strings.ToLower(e.Message), "already") {
			remaining = append(remaining, e)
		}
	}
	return userErrorsToError("collectionAddProducts", remaining)
}
