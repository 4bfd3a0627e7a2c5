package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCategory(t *testing.T) {
	c, err := NewCategory("Ground Masalas", "Powdered blends")
	require.NoError(t, err)
	assert.True(t, c.Active)

	_, err = NewCategory("  ", "")
	assert.Error(t, err)
}

func TestCategory_Update(t *testing.T) {
	c, err := NewCategory("Whole Spices", "")
	require.NoError(t, err)

	require.NoError(t, c.Update("Whole Spices & Seeds", "Unground"))
	assert.Equal(t, "Whole Spices & Seeds", c.Name)
	assert.Error(t, c.Update("", ""))
}

func TestCategory_ActivateDeactivate(t *testing.T) {
	c, err := NewCategory("Blends", "")
	require.NoError(t, err)

	c.Deactivate()
	assert.False(t, c.Active)
	c.Activate()
	assert.True(t, c.Active)
}
