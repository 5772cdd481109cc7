package csp

import "testing"

func TestCSPBuilder_Build(t *testing.T) {
	tests := []struct {
		name    string
		builder *CSPBuilder
		want    string
	}{
		{name: "empty", builder: NewCSPBuilder(), want: ""},
		{name: "single directive", builder: NewCSPBuilder().DefaultSrc("'self'"), want: "default-src 'self'"},
		{
			name: "fixed order regardless of call order",
			builder: NewCSPBuilder().
				ReportUri("/csp-report").
				ObjectSrc("'none'").
				ImgSrc("'self'", "data:").
				DefaultSrc("'none'"),
			want: "default-src 'none'; img-src 'self' data:; object-src 'none'; report-uri /csp-report",
		},
		{name: "empty sources omitted", builder: NewCSPBuilder().DefaultSrc("'none'").ConnectSrc(), want: "default-src 'none'"},
		{name: "later call replaces", builder: NewCSPBuilder().DefaultSrc("'self'").DefaultSrc("'none'"), want: "default-src 'none'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.builder.Build(); got != tt.want {
				t.Errorf("Build() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCSPBuilder_HeaderName(t *testing.T) {
	if got := NewCSPBuilder().HeaderName(); got != "Content-Security-Policy" {
		t.Errorf("HeaderName() = %q", got)
	}
	if got := NewCSPBuilder().ReportOnly(true).HeaderName(); got != "Content-Security-Policy-Report-Only" {
		t.Errorf("HeaderName() = %q in report-only mode", got)
	}
}

func TestAPIPolicy(t *testing.T) {
	want := "default-src 'none'; frame-ancestors 'none'; form-action 'none'; base-uri 'none'"
	if got := APIPolicy().Build(); got != want {
		t.Errorf("APIPolicy() = %q, want %q", got, want)
	}
}

func TestSwaggerUIPolicy(t *testing.T) {
	want := "default-src 'self'; script-src 'self' 'unsafe-inline'; style-src 'self' 'unsafe-inline'; " +
		"img-src 'self' data:; font-src 'self' data:; connect-src 'self'; frame-ancestors 'none'; " +
		"form-action 'self'; base-uri 'self'; object-src 'none'"
	if got := SwaggerUIPolicy().Build(); got != want {
		t.Errorf("SwaggerUIPolicy() = %q, want %q", got, want)
	}
}
