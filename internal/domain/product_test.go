package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProduct_Margin(t *testing.T) {
	p := Product{BuyPrice: 7000, SellPrice: 12000}
	assert.Equal(t, 5000.0, p.Margin())
}

func TestProduct_Margin_Negative(t *testing.T) {
	// Selling below cost is allowed; margin just goes negative.
	p := Product{BuyPrice: 10000, SellPrice: 8000}
	assert.Equal(t, -2000.0, p.Margin())
}

func TestProduct_InStock(t *testing.T) {
	assert.True(t, Product{Stock: 1}.InStock())
	assert.False(t, Product{Stock: 0}.InStock())
}
