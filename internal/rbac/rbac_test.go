package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockdesk/stockdesk/internal/models"
)

func TestDefaultPolicy(t *testing.T) {
	p, err := NewPolicy(nil)
	require.NoError(t, err)

	assert.Equal(t, Permissions{Create: true, Edit: true, Delete: true}, p.For(models.RoleAdmin, Users))
	assert.Equal(t, Permissions{Create: true, Edit: true, Delete: true}, p.For(models.RoleAdmin, Categories))

	assert.Equal(t, Permissions{Create: true, Edit: true}, p.For(models.RoleManager, Categories))
	assert.Equal(t, Permissions{Create: true, Edit: true}, p.For(models.RoleManager, Orders))
	assert.Equal(t, Permissions{}, p.For(models.RoleManager, Users))

	assert.Equal(t, Permissions{Create: true}, p.For(models.RoleEmployee, Stock))
	assert.Equal(t, Permissions{}, p.For(models.RoleEmployee, Products))
}

func TestRequire(t *testing.T) {
	p, err := NewPolicy(nil)
	require.NoError(t, err)

	assert.NoError(t, p.Require(models.RoleAdmin, Products, ActionDelete))
	assert.Error(t, p.Require(models.RoleManager, Products, ActionDelete))
	assert.Error(t, p.Require(models.Role("GUEST"), Stock, ActionCreate))
}

func TestEmptyPolicyDeniesEverything(t *testing.T) {
	p, err := NewPolicy([][]string{})
	require.NoError(t, err)
	assert.Equal(t, Permissions{}, p.For(models.RoleAdmin, Products))
}
