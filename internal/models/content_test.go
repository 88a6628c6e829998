package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryRoundTrip(t *testing.T) {
	var item ContentItem

	item.SetCategories([]string{"a", "b"})
	assert.Equal(t, "a,b", item.Categories)
	assert.Equal(t, []string{"a", "b"}, item.CategoryList())

	item.SetCategories([]string{})
	assert.Equal(t, "", item.Categories)
	assert.Equal(t, []string{}, item.CategoryList())

	item.SetCategories(nil)
	assert.Equal(t, []string{}, item.CategoryList())
}
