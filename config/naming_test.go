package config

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestDefaultNamingToColumnID(t *testing.T) {
	nc := NewDefaultNaming()
	assert.NotNil(t, nc)
	assert.Equal(t, "notes", nc.ToColumnID("Notes"))
	assert.Equal(t, "my_column", nc.ToColumnID("My Column"))
	assert.Equal(t, "my_column", nc.ToColumnID("  My   Column  "))
	assert.Equal(t, "a_b_c", nc.ToColumnID("a\tb\nc"))

	// Only case and whitespace are normalized
	assert.Equal(t, "userid", nc.ToColumnID("UserID"))
	assert.Equal(t, "price_($)", nc.ToColumnID("Price ($)"))
}

func TestSnakeNamingToColumnID(t *testing.T) {
	nc := NewSnakeNaming()
	assert.NotNil(t, nc)
	assert.Equal(t, "notes", nc.ToColumnID("Notes"))
	assert.Equal(t, "my_column", nc.ToColumnID("My Column"))
	assert.Equal(t, "user_id", nc.ToColumnID("UserID"))
}

func TestNamingToColumnIDUnique(t *testing.T) {
	nc := NewDefaultNaming()
	taken := map[string]bool{}
	exists := func(id string) bool { return taken[id] }

	assert.Equal(t, "notes", nc.ToColumnIDUnique("Notes", exists))
	taken["notes"] = true
	assert.Equal(t, "notes2", nc.ToColumnIDUnique("Notes", exists))
	taken["notes2"] = true
	assert.Equal(t, "notes3", nc.ToColumnIDUnique(" NOTES ", exists))
}

func TestNamingFor(t *testing.T) {
	nc, err := NamingFor("default")
	assert.NoError(t, err)
	assert.IsType(t, &defaultNaming{}, nc)

	nc, err = NamingFor("")
	assert.NoError(t, err)
	assert.IsType(t, &defaultNaming{}, nc)

	nc, err = NamingFor("snake")
	assert.NoError(t, err)
	assert.IsType(t, &snakeNaming{}, nc)

	_, err = NamingFor("camel")
	assert.Error(t, err)
}
