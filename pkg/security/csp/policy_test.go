package csp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuilderStableOrder(t *testing.T) {
	policy := NewBuilder().
		Directive("script-src", "'self'", "https://cdn.example.com").
		DefaultSrc("'self'").
		Build()

	assert.Equal(t, "default-src 'self'; script-src 'self' https://cdn.example.com", policy)
}

func TestBuilderDirectiveWithoutSources(t *testing.T) {
	policy := NewBuilder().Directive("upgrade-insecure-requests").Build()
	assert.Equal(t, "upgrade-insecure-requests", policy)
}

func TestAPIPolicy(t *testing.T) {
	assert.Equal(t, "default-src 'none'; frame-ancestors 'none'", APIPolicy())
}
