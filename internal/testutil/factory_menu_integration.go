//go:build integration

package testutil

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/Gunvolt24/foodorder/internal/domain"
)

func randHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func UniqSuffix() string { return randHex(6) }

// Мини-генератор доступной позиции меню
func MakeMenuItem(opts ...func(*domain.MenuItem)) domain.MenuItem {
	item := domain.MenuItem{
		ID:           "item-" + UniqSuffix(),
		Name:         "Soup " + UniqSuffix(),
		Category:     "main",
		Price:        7.5,
		Availability: true,
	}
	for _, opt := range opts {
		opt(&item)
	}
	return item
}
