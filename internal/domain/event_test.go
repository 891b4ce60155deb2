package domain

import (
	"encoding/json"
	"testing"

	apperrors "github.com/darkkaiser/product-enricher/internal/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestParseGID(t *testing.T) {
	tests := []struct {
		input  string
		wantID int64
		wantOK bool
	}{
		{"gid://shopify/Product/123", 123, true},
		{"gid://shopify/ProductVariant/9876543210", 9876543210, true},
		{"gid://shopify/Product/", 0, false},
		{"gid://shopify/Product/abc", 0, false},
		{"gid://shopify/Product/-5", 0, false},
		{"123", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			id, ok := ParseGID(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestProductEvent_Normalize(t *testing.T) {
	t.Run("숫자 ID만 있는 경우", func(t *testing.T) {
		e := ProductEvent{ID: 42, Variants: []VariantRef{{ID: 7}}}
		e.Normalize()

		assert.Equal(t, "gid://shopify/Product/42", e.GraphQLID)
		assert.Equal(t, "gid://shopify/ProductVariant/7", e.Variants[0].GraphQLID)
	})

	t.Run("GraphQL ID만 있는 경우", func(t *testing.T) {
		e := ProductEvent{
			GraphQLID: "gid://shopify/Product/42",
			Variants:  []VariantRef{{GraphQLID: "gid://shopify/ProductVariant/7"}},
		}
		e.Normalize()

		assert.Equal(t, int64(42), e.ID)
		assert.Equal(t, int64(7), e.Variants[0].ID)
	})

	t.Run("둘 다 없는 경우", func(t *testing.T) {
		e := ProductEvent{Title: "no id"}
		e.Normalize()

		assert.Zero(t, e.ID)
		assert.Empty(t, e.GraphQLID)
	})
}

func TestProductEvent_Validate(t *testing.T) {
	tests := []struct {
		name    string
		event   ProductEvent
		wantErr bool
	}{
		{"정상", ProductEvent{ID: 1, GraphQLID: "gid://shopify/Product/1"}, false},
		{"제목 없음도 정상", ProductEvent{ID: 1, GraphQLID: "gid://shopify/Product/1", Title: ""}, false},
		{"식별자 없음", ProductEvent{Title: "Ring"}, true},
		{"식별자 불일치", ProductEvent{ID: 1, GraphQLID: "gid://shopify/Product/2"}, true},
		{"잘못된 GID 형식", ProductEvent{ID: 1, GraphQLID: "gid://shopify/Order/1"}, true},
		{"잘못된 variant GID", ProductEvent{ID: 1, GraphQLID: "gid://shopify/Product/1", Variants: []VariantRef{{GraphQLID: "x"}}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.event.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperrors.Is(err, apperrors.InvalidInput))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProductEvent_UnmarshalWebhookPayload(t *testing.T) {
	payload := `{
		"id": 788032119674292922,
		"admin_graphql_api_id": "gid://shopify/Product/788032119674292922",
		"title": "Moissanite Tennis Necklace S925 | Free Shipping",
		"body_html": "<p>Sparkling</p><img src=\"x.jpg\">",
		"tags": "new, sale",
		"product_type": "",
		"vendor": "Supplier",
		"variants": [
			{"id": 1, "admin_graphql_api_id": "gid://shopify/ProductVariant/1", "title": "18 inch", "option1": "18 inch", "option2": null, "option3": null, "price": "10.00"}
		],
		"images": [{"id": 5, "alt": null, "src": "https://cdn/x.jpg"}]
	}`

	var e ProductEvent
	require.NoError(t, json.Unmarshal([]byte(payload), &e))
	e.Normalize()
	require.NoError(t, e.Validate())

	assert.Equal(t, int64(788032119674292922), e.ID)
	require.Len(t, e.Variants, 1)
	assert.Equal(t, []string{"18 inch", "18 inch"}, e.Variants[0].SizeStrings())
	require.Len(t, e.Images, 1)
	assert.False(t, e.Images[0].HasAlt())
}

func TestImageRef_HasAlt(t *testing.T) {
	assert.False(t, ImageRef{}.HasAlt())
	assert.False(t, ImageRef{Alt: strPtr("  ")}.HasAlt())
	assert.True(t, ImageRef{Alt: strPtr("Front view")}.HasAlt())
}

func TestVariantRef_SizeStrings(t *testing.T) {
	v := VariantRef{Title: " ", Option1: strPtr("45cm"), Option2: strPtr(""), Option3: strPtr("Gold")}
	assert.Equal(t, []string{"45cm", "Gold"}, v.SizeStrings())
}
