// Package csp builds Content-Security-Policy header values.
package csp

import (
	"strings"
)

// directiveOrder fixes the order directives appear in the header value.
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

// CSPBuilder assembles a policy directive by directive.
//
//	policy := NewCSPBuilder().
//	    DefaultSrc("'none'").
//	    FrameAncestors("'none'").
//	    Build()
//	// "default-src 'none'; frame-ancestors 'none'"
//
// A builder is not safe for concurrent mutation. Build it once at startup.
type CSPBuilder struct {
	directives map[string][]string
	reportOnly bool
}

// NewCSPBuilder creates an empty builder.
func NewCSPBuilder() *CSPBuilder {
	return &CSPBuilder{directives: make(map[string][]string)}
}

// DefaultSrc sets default-src, the fallback for every fetch directive.
func (b *CSPBuilder) DefaultSrc(sources ...string) *CSPBuilder {
	return b.set("default-src", sources)
}

// ScriptSrc sets script-src.
func (b *CSPBuilder) ScriptSrc(sources ...string) *CSPBuilder {
	return b.set("script-src", sources)
}

// StyleSrc sets style-src.
func (b *CSPBuilder) StyleSrc(sources ...string) *CSPBuilder {
	return b.set("style-src", sources)
}

// FontSrc sets font-src.
func (b *CSPBuilder) FontSrc(sources ...string) *CSPBuilder {
	return b.set("font-src", sources)
}

// ConnectSrc sets connect-src.
func (b *CSPBuilder) ConnectSrc(sources ...string) *CSPBuilder {
	return b.set("connect-src", sources)
}

// ImgSrc sets img-src.
func (b *CSPBuilder) ImgSrc(sources ...string) *CSPBuilder {
	return b.set("img-src", sources)
}

// FrameAncestors sets frame-ancestors. 'none' forbids embedding in frames.
func (b *CSPBuilder) FrameAncestors(sources ...string) *CSPBuilder {
	return b.set("frame-ancestors", sources)
}

// FormAction sets form-action.
func (b *CSPBuilder) FormAction(sources ...string) *CSPBuilder {
	return b.set("form-action", sources)
}

// BaseUri sets base-uri.
func (b *CSPBuilder) BaseUri(sources ...string) *CSPBuilder {
	return b.set("base-uri", sources)
}

// ObjectSrc sets object-src.
func (b *CSPBuilder) ObjectSrc(sources ...string) *CSPBuilder {
	return b.set("object-src", sources)
}

// ReportUri sets where browsers send violation reports.
func (b *CSPBuilder) ReportUri(uri string) *CSPBuilder {
	return b.set("report-uri", []string{uri})
}

// ReportOnly switches the header to Content-Security-Policy-Report-Only.
func (b *CSPBuilder) ReportOnly(enabled bool) *CSPBuilder {
	b.reportOnly = enabled
	return b
}

func (b *CSPBuilder) set(directive string, sources []string) *CSPBuilder {
	b.directives[directive] = sources
	return b
}

// Build returns the header value. Directives without sources are omitted.
func (b *CSPBuilder) Build() string {
	var parts []string
	for _, directive := range directiveOrder {
		if sources := b.directives[directive]; len(sources) > 0 {
			parts = append(parts, directive+" "+strings.Join(sources, " "))
		}
	}
	return strings.Join(parts, "; ")
}

// HeaderName returns the header the policy belongs in.
func (b *CSPBuilder) HeaderName() string {
	if b.reportOnly {
		return "Content-Security-Policy-Report-Only"
	}
	return "Content-Security-Policy"
}

// APIPolicy is the policy for JSON responses: nothing may load, nothing may
// frame the response.
func APIPolicy() *CSPBuilder {
	return NewCSPBuilder().
		DefaultSrc("'none'").
		FrameAncestors("'none'").
		BaseUri("'none'").
		FormAction("'none'")
}

// SwaggerUIPolicy lets the Swagger UI under /swagger/ run its inline
// bootstrap script and styles and fetch doc.json from this origin.
func SwaggerUIPolicy() *CSPBuilder {
	return NewCSPBuilder().
		DefaultSrc("'self'").
		ScriptSrc("'self'", "'unsafe-inline'").
		StyleSrc("'self'", "'unsafe-inline'").
		ImgSrc("'self'", "data:").
		FontSrc("'self'", "data:").
		ConnectSrc("'self'").
		FrameAncestors("'none'").
		BaseUri("'self'").
		FormAction("'self'").
		ObjectSrc("'none'")
}
