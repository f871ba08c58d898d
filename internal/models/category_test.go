package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllowAllCoversEveryCategory(t *testing.T) {
	ps := AllowAll()
	for _, c := range AllCategories {
		assert.True(t, ps.Allows(c), "category %s", c)
	}
	assert.False(t, ps.Empty())
}

func TestRevokeAndGrant(t *testing.T) {
	ps := AllowAll()
	ps.Revoke(CategoryAssets)
	assert.False(t, ps.Allows(CategoryAssets))
	assert.True(t, ps.Allows(CategoryLiabilities))

	ps.Grant(CategoryAssets)
	assert.True(t, ps.Allows(CategoryAssets))
}

func TestEmptySet(t *testing.T) {
	ps := make(PermissionSet)
	assert.True(t, ps.Empty())
	for _, c := range AllCategories {
		assert.False(t, ps.Allows(c))
	}
}
