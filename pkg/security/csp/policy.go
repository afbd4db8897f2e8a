// Package csp builds Content-Security-Policy header values.
package csp

import (
	"sort"
	"strings"
)

// Builder assembles a Content-Security-Policy value directive by
// directive. It is not safe for concurrent use.
type Builder struct {
	directives map[string][]string
}

func NewBuilder() *Builder {
	return &Builder{directives: make(map[string][]string)}
}

// Directive sets the sources for a directive, replacing earlier values.
func (b *Builder) Directive(name string, sources ...string) *Builder {
	b.directives[name] = sources
	return b
}

// DefaultSrc sets the default-src fallback directive.
func (b *Builder) DefaultSrc(sources ...string) *Builder {
	return b.Directive("default-src", sources...)
}

// FrameAncestors sets the frame-ancestors directive, which controls
// embedding and replaces the X-Frame-Options header.
func (b *Builder) FrameAncestors(sources ...string) *Builder {
	return b.Directive("frame-ancestors", sources...)
}

// Build renders the policy with directives in a stable order.
func (b *Builder) Build() string {
	names := make([]string, 0, len(b.directives))
	for name := range b.directives {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		sources := b.directives[name]
		if len(sources) == 0 {
			parts = append(parts, name)
			continue
		}
		parts = append(parts, name+" "+strings.Join(sources, " "))
	}
	return strings.Join(parts, "; ")
}

// APIPolicy is a restrictive policy for a JSON-only service: nothing may
// be loaded and responses may not be framed.
func APIPolicy() string {
	return NewBuilder().
		DefaultSrc("'none'").
		FrameAncestors("'none'").
		Build()
}
