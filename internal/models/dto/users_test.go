package dto

import (
	"testing"

	"github.com/fintrack-ai/fintrack-be/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestPermissionsRoundTrip(t *testing.T) {
	wire := Permissions{
		Assets: true, Liabilities: false, Transactions: true,
		Investments: false, CreditScore: true, EPFBalance: false,
	}

	set := wire.ToSet()
	assert.True(t, set.Allows(models.CategoryAssets))
	assert.False(t, set.Allows(models.CategoryLiabilities))
	assert.True(t, set.Allows(models.CategoryCreditScore))
	assert.False(t, set.Allows(models.CategoryEPFBalance))

	assert.Equal(t, wire, PermissionsFromSet(set))
}

func TestAllDeniedProducesEmptySet(t *testing.T) {
	set := Permissions{}.ToSet()
	assert.True(t, set.Empty())
}
