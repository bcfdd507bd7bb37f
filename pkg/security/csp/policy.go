// Package csp builds Content-Security-Policy header values.
package csp

import (
	"sort"
	"strings"
)

// directiveOrder fixes the output order of known directives.
var directiveOrder = []string{
	"default-src",
	"script-src",
	"style-src",
	"img-src",
	"font-src",
	"connect-src",
	"frame-ancestors",
	"form-action",
	"base-uri",
	"object-src",
	"report-uri",
}

// Builder provides a fluent interface for constructing a policy.
//
//	policy := csp.NewBuilder().
//	    DefaultSrc("'none'").
//	    StyleSrc("'self'", "'unsafe-inline'").
//	    Build()
//	// "default-src 'none'; style-src 'self' 'unsafe-inline'"
//
// A Builder is not safe for concurrent mutation; Build may be called concurrently once configured.
type Builder struct {
	directives map[string][]string
	reportOnly bool
}

// NewBuilder creates an empty policy.
func NewBuilder() *Builder {
	return &Builder{directives: make(map[string][]string)}
}

// Directive sets name to sources, replacing any previous value.
func (b *Builder) Directive(name string, sources ...string) *Builder {
	b.directives[name] = sources
	return b
}

// DefaultSrc sets default-src.
func (b *Builder) DefaultSrc(sources ...string) *Builder {
	return b.Directive("default-src", sources...)
}

// ScriptSrc sets script-src.
func (b *Builder) ScriptSrc(sources ...string) *Builder {
	return b.Directive("script-src", sources...)
}

// StyleSrc sets style-src.
func (b *Builder) StyleSrc(sources ...string) *Builder {
	return b.Directive("style-src", sources...)
}

// ImgSrc sets img-src.
func (b *Builder) ImgSrc(sources ...string) *Builder {
	return b.Directive("img-src", sources...)
}

// FrameAncestors sets frame-ancestors.
func (b *Builder) FrameAncestors(sources ...string) *Builder {
	return b.Directive("frame-ancestors", sources...)
}

// FormAction sets form-action.
func (b *Builder) FormAction(sources ...string) *Builder {
	return b.Directive("form-action", sources...)
}

// BaseURI sets base-uri.
func (b *Builder) BaseURI(sources ...string) *Builder {
	return b.Directive("base-uri", sources...)
}

// ReportOnly selects the Content-Security-Policy-Report-Only header.
func (b *Builder) ReportOnly(enabled bool) *Builder {
	b.reportOnly = enabled
	return b
}

// Build renders the policy. Known directives come first in a fixed order,
// followed by any others in name order. Directives without sources are skipped.
func (b *Builder) Build() string {
	parts := make([]string, 0, len(b.directives))
	seen := make(map[string]bool, len(directiveOrder))
	for _, name := range directiveOrder {
		seen[name] = true
		if sources := b.directives[name]; len(sources) > 0 {
			parts = append(parts, name+" "+strings.Join(sources, " "))
		}
	}

	var extra []string
	for name := range b.directives {
		if !seen[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	for _, name := range extra {
		if sources := b.directives[name]; len(sources) > 0 {
			parts = append(parts, name+" "+strings.Join(sources, " "))
		}
	}

	return strings.Join(parts, "; ")
}

// HeaderName returns the header the policy is sent in.
func (b *Builder) HeaderName() string {
	if b.reportOnly {
		return "Content-Security-Policy-Report-Only"
	}
	return "Content-Security-Policy"
}

// ReaderPagePolicy is the policy for the server-rendered reader page:
// no scripts, inline styles only, forms posting back to the same origin.
func ReaderPagePolicy() *Builder {
	return NewBuilder().
		DefaultSrc("'none'").
		StyleSrc("'unsafe-inline'").
		ImgSrc("'self'", "data:").
		FormAction("'self'").
		FrameAncestors("'none'").
		BaseURI("'none'")
}

// APIPolicy is the policy for JSON endpoints, which never load subresources.
func APIPolicy() *Builder {
	return NewBuilder().
		DefaultSrc("'none'").
		FrameAncestors("'none'")
}
