package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMainCategory(t *testing.T) {
	category, err := NewMainCategory("  Brake Systems ", "Pads, discs, calipers")

	require.NoError(t, err)
	assert.Equal(t, "Brake Systems", category.Name)
	assert.Equal(t, "brake-systems", category.Slug)
	assert.Equal(t, "Pads, discs, calipers", category.Description)
}

func TestNewMainCategoryValidation(t *testing.T) {
	_, err := NewMainCategory("   ", "")
	assert.Error(t, err)

	long := make([]byte, 101)
	for i := range long {
		long[i] = 'x'
	}
	_, err = NewMainCategory(string(long), "")
	assert.Error(t, err)
}

func TestMainCategoryUpdateRegeneratesSlug(t *testing.T) {
	category, err := NewMainCategory("Brake Systems", "")
	require.NoError(t, err)
	version := category.Version

	require.NoError(t, category.Update("Engine Parts", "Filters and belts"))

	assert.Equal(t, "engine-parts", category.Slug)
	assert.Equal(t, "Filters and belts", category.Description)
	assert.Equal(t, version+1, category.Version)

	assert.Error(t, category.Update("", ""))
}

func TestNewSubCategory(t *testing.T) {
	mainID := uuid.New()
	subCategory, err := NewSubCategory(mainID, "Brake Pads", "")

	require.NoError(t, err)
	assert.Equal(t, mainID, subCategory.MainCategoryID)
	assert.Equal(t, "brake-pads", subCategory.Slug)
}

func TestNewSubCategoryRequiresMainCategory(t *testing.T) {
	_, err := NewSubCategory(uuid.Nil, "Brake Pads", "")
	assert.Error(t, err)
}

func TestSubCategoryUpdateMovesParent(t *testing.T) {
	subCategory, err := NewSubCategory(uuid.New(), "Brake Pads", "")
	require.NoError(t, err)
	version := subCategory.Version

	newParent := uuid.New()
	require.NoError(t, subCategory.Update(newParent, "Ceramic Brake Pads", ""))

	assert.Equal(t, newParent, subCategory.MainCategoryID)
	assert.Equal(t, "ceramic-brake-pads", subCategory.Slug)
	assert.Equal(t, version+1, subCategory.Version)

	assert.Error(t, subCategory.Update(uuid.Nil, "Name", ""))
}
