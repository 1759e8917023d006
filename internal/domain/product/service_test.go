package product

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildOrderClause(t *testing.T) {
	assert.Equal(t, "price ASC", buildOrderClause(SortPriceAsc))
	assert.Equal(t, "price DESC", buildOrderClause(SortPriceDesc))
	assert.Equal(t, "rating DESC, rating_count DESC", buildOrderClause(SortRating))
	assert.Equal(t, "sold DESC", buildOrderClause(SortPopular))
	assert.Equal(t, "created_at DESC", buildOrderClause(SortNewest))

	// Anything outside the whitelist falls back to newest
	assert.Equal(t, "created_at DESC", buildOrderClause(""))
	assert.Equal(t, "created_at DESC", buildOrderClause("price; DROP TABLE products"))
}

func TestDiscountPercent(t *testing.T) {
	assert.Equal(t, 50, (&Product{Price: 100, MRP: 200}).DiscountPercent())
	assert.Equal(t, 25, (&Product{Price: 150, MRP: 200}).DiscountPercent())
	assert.Equal(t, 0, (&Product{Price: 200, MRP: 200}).DiscountPercent())
	assert.Equal(t, 0, (&Product{Price: 100, MRP: 0}).DiscountPercent())
	assert.Equal(t, 33, (&Product{Price: 199, MRP: 299}).DiscountPercent())
}

func TestIsInStock(t *testing.T) {
	assert.True(t, (&Product{Stock: 1}).IsInStock())
	assert.False(t, (&Product{Stock: 0}).IsInStock())
}
