package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  int
	}{
		{name: "unset", value: "", want: 7},
		{name: "valid", value: "42", want: 42},
		{name: "padded", value: " 42 ", want: 42},
		{name: "invalid", value: "forty-two", want: 7},
		{name: "trailing garbage", value: "42abc", want: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("QUIRKIT_TEST_INT", tt.value)
			if got := GetEnvInt("QUIRKIT_TEST_INT", 7); got != tt.want {
				t.Errorf("GetEnvInt() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		value string
		def   bool
		want  bool
	}{
		{value: "", def: true, want: true},
		{value: "false", def: true, want: false},
		{value: "1", def: false, want: true},
		{value: "yes", def: false, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("QUIRKIT_TEST_BOOL", tt.value)
			if got := GetEnvBool("QUIRKIT_TEST_BOOL", tt.def); got != tt.want {
				t.Errorf("GetEnvBool(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("QUIRKIT_TEST_DURATION", "1m30s")
	if got := GetEnvDuration("QUIRKIT_TEST_DURATION", time.Second); got != 90*time.Second {
		t.Errorf("GetEnvDuration() = %v, want 1m30s", got)
	}

	t.Setenv("QUIRKIT_TEST_DURATION", "soon")
	if got := GetEnvDuration("QUIRKIT_TEST_DURATION", time.Second); got != time.Second {
		t.Errorf("GetEnvDuration() = %v, want default 1s", got)
	}
}

func TestGetEnvStringList(t *testing.T) {
	t.Setenv("QUIRKIT_TEST_LIST", " https://a.example , ,https://b.example ")
	got := GetEnvStringList("QUIRKIT_TEST_LIST", nil)
	want := []string{"https://a.example", "https://b.example"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("GetEnvStringList() mismatch (-want +got):\n%s", diff)
	}

	t.Setenv("QUIRKIT_TEST_LIST", " , ")
	got = GetEnvStringList("QUIRKIT_TEST_LIST", []string{"*"})
	if diff := cmp.Diff([]string{"*"}, got); diff != "" {
		t.Errorf("GetEnvStringList() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadRateLimitConfig(t *testing.T) {
	t.Setenv("RATELIMIT_LIMIT", "250")
	t.Setenv("RATELIMIT_WINDOW", "500ms")
	t.Setenv("COMPLIMENT_RATELIMIT_LIMIT", "-3")

	cfg := LoadRateLimitConfig()

	if cfg.Limit != 250 {
		t.Errorf("Limit = %d, want 250", cfg.Limit)
	}
	if cfg.Window != time.Minute {
		t.Errorf("Window = %v, want default 1m for a sub-second value", cfg.Window)
	}
	if cfg.ComplimentLimit != 5 {
		t.Errorf("ComplimentLimit = %d, want default 5", cfg.ComplimentLimit)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}
