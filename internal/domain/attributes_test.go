package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaterial_Label(t *testing.T) {
	assert.Equal(t, "925 Sterling Silver", MaterialPlainSilver.Label())
	assert.Equal(t, "925 Sterling Silver", MaterialSilverWithGemstone.Label())
	assert.Equal(t, "Stainless Steel", MaterialSteel.Label())
	assert.Equal(t, "Alloy", MaterialAlloyWithStone.Label())
	assert.Equal(t, "Gold-Tone Alloy", MaterialGoldTone.Label())

	assert.True(t, MaterialSilverWithGemstone.IsSilver())
	assert.False(t, MaterialSteel.IsSilver())
}

func TestProductType_Labels(t *testing.T) {
	assert.Equal(t, "Tennis Necklace", TypeTennisNecklace.Label())
	assert.Equal(t, "Necklaces", TypeTennisNecklace.CollectionLabel())
	assert.Equal(t, "Jewelry", TypeGeneric.Label())
	assert.Empty(t, TypeGeneric.CollectionLabel())

	assert.True(t, TypeChoker.IsNecklaceFamily())
	assert.False(t, TypeBracelet.IsNecklaceFamily())
}

func TestInferredAttributes_LengthOf(t *testing.T) {
	a := InferredAttributes{LengthsMM: map[string]int{"gid://shopify/ProductVariant/1": 457}}

	if l := a.LengthOf("gid://shopify/ProductVariant/1"); assert.NotNil(t, l) {
		assert.Equal(t, 457, *l)
	}
	assert.Nil(t, a.LengthOf("gid://shopify/ProductVariant/2"))
	assert.Nil(t, InferredAttributes{}.LengthOf("any"))
}
