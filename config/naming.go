package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/iancoleman/strcase"
)

// NamingConvention derives stable column identifiers from display names.
// Identifiers key the row value maps and survive renames, so the
// derivation only runs once, at column creation time.
type NamingConvention interface {
	ToColumnID(name string) string

	// ToColumnIDUnique derives an identifier that does not collide with
	// any id for which exists returns true, appending a numeric suffix
	// ("notes", "notes2", "notes3", ...) when needed.
	ToColumnIDUnique(name string, exists func(id string) bool) string
}

type defaultNaming struct {
}

func NewDefaultNaming() *defaultNaming {
	return &defaultNaming{}
}

func (n *defaultNaming) ToColumnID(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "_")
}

func (n *defaultNaming) ToColumnIDUnique(name string, exists func(id string) bool) string {
	return uniqueID(n.ToColumnID(name), exists)
}

type snakeNaming struct {
}

func NewSnakeNaming() *snakeNaming {
	return &snakeNaming{}
}

func (n *snakeNaming) ToColumnID(name string) string {
	return strcase.ToSnake(strings.TrimSpace(name))
}

func (n *snakeNaming) ToColumnIDUnique(name string, exists func(id string) bool) string {
	return uniqueID(n.ToColumnID(name), exists)
}

func uniqueID(base string, exists func(id string) bool) string {
	if !exists(base) {
		return base
	}
	for i := 2; ; i++ {
		candidate := base + strconv.Itoa(i)
		if !exists(candidate) {
			return candidate
		}
	}
}

// NamingFor maps a convention name from the configuration surface to an
// implementation.
func NamingFor(name string) (NamingConvention, error) {
	switch name {
	case "", "default":
		return NewDefaultNaming(), nil
	case "snake":
		return NewSnakeNaming(), nil
	default:
		return nil, fmt.Errorf("unknown naming convention %q", name)
	}
}
