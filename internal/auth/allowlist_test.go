package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllowlist_Contains(t *testing.T) {
	al := NewAllowlist([]string{"admin@example.com", "Mod@Example.COM"})

	assert.True(t, al.Contains("admin@example.com"))
	assert.True(t, al.Contains("ADMIN@EXAMPLE.COM"))
	assert.True(t, al.Contains(" mod@example.com "))
	assert.False(t, al.Contains("stranger@example.com"))
	assert.False(t, al.Contains(""))
}

func TestAllowlist_DropsEmptyEntries(t *testing.T) {
	al := NewAllowlist([]string{"", "  ", "mod@example.com"})

	assert.False(t, al.Empty())
	assert.True(t, al.Contains("mod@example.com"))
	assert.False(t, al.Contains(""))
}

func TestAllowlist_EmptyDeniesEveryone(t *testing.T) {
	al := NewAllowlist(nil)

	assert.True(t, al.Empty())
	assert.False(t, al.Contains("admin@example.com"))
}
