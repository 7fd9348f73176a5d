package messageprovider

import (
	"slices"
	"testing"
)

const sampleYAML = `
simple: "hello"
nested:
  key: "nested value"
  deep:
    key: "deep value"
template: "Hello {name}, count is {count}"
numeric: 123
words:
  ice cream: "frozen"
  a.b: "dotted"
list:
  - item1
  - item2
`

func TestNewFromYAML(t *testing.T) {
	tests := []struct {
		name        string
		yamlContent string
		wantErr     bool
	}{
		{"valid", "key: value", false},
		{"valid nested", "section:\n  key: value", false},
		{"invalid yaml", "key: : value", true},
		{"not a map", "- list item", true},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFromYAML(tt.yamlContent)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewFromYAML() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestProvider_Get(t *testing.T) {
	provider, err := NewFromYAML(sampleYAML)
	if err != nil {
		t.Fatalf("failed to create provider: %v", err)
	}

	tests := []struct {
		name   string
		key    string
		params []Param
		want   string
	}{
		{"simple key", "simple", nil, "hello"},
		{"nested key", "nested.key", nil, "nested value"},
		{"deep nested key", "nested.deep.key", nil, "deep value"},
		{"template substitution", "template", []Param{P("name", "Alice"), P("count", 42)}, "Hello Alice, count is 42"},
		{"missing param", "template", []Param{P("name", "Bob")}, "Hello Bob, count is {count}"},
		{"numeric value", "numeric", nil, "123"},
		{"unknown key", "unknown", nil, "unknown"},
		{"unknown nested key", "nested.unknown", nil, "nested.unknown"},
		{"empty key", "", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := provider.Get(tt.key, tt.params...); got != tt.want {
				t.Errorf("Get(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestProvider_Lookup(t *testing.T) {
	provider, err := NewFromYAML(sampleYAML)
	if err != nil {
		t.Fatalf("failed to create provider: %v", err)
	}

	if got, ok := provider.Lookup("words", "ice cream"); !ok || got != "frozen" {
		t.Errorf("expected frozen, got %q ok=%v", got, ok)
	}
	if got, ok := provider.Lookup("words", "a.b"); !ok || got != "dotted" {
		t.Errorf("expected dotted, got %q ok=%v", got, ok)
	}
	if _, ok := provider.Lookup("words", "Ice Cream"); ok {
		t.Error("lookup must be case-sensitive")
	}
	if _, ok := provider.Lookup("nested"); ok {
		t.Error("object value must not be returned as string")
	}
	if _, ok := provider.Lookup(); ok {
		t.Error("empty path must miss")
	}
}

func TestProvider_SubAndKeys(t *testing.T) {
	provider, err := NewFromYAML(sampleYAML)
	if err != nil {
		t.Fatalf("failed to create provider: %v", err)
	}

	sub, ok := provider.Sub("nested")
	if !ok {
		t.Fatal("expected nested sub provider")
	}
	if got := sub.Get("deep.key"); got != "deep value" {
		t.Errorf("expected deep value, got %q", got)
	}
	if _, ok := provider.Sub("simple"); ok {
		t.Error("string value must not become a sub provider")
	}

	if got := provider.Keys("words"); !slices.Equal(got, []string{"a.b", "ice cream"}) {
		t.Errorf("unexpected keys: %v", got)
	}
	if got := provider.Keys("missing"); got != nil {
		t.Errorf("expected nil keys, got %v", got)
	}
}

func TestProvider_NilReceiver(t *testing.T) {
	var p *Provider
	if got := p.Get("key"); got != "key" {
		t.Errorf("expected 'key', got '%s'", got)
	}
	if _, ok := p.Lookup("key"); ok {
		t.Error("nil provider must miss")
	}
}

func TestNormalizeYAMLValue(t *testing.T) {
	input := map[any]any{
		"key": "value",
		123:   "numeric key",
		"nested": map[any]any{
			"inner": "val",
		},
	}

	m, ok := normalizeYAMLValue(input).(map[string]any)
	if !ok {
		t.Fatalf("expected map[string]any")
	}
	if m["123"] != "numeric key" {
		t.Errorf("expected numeric key, got %v", m["123"])
	}
	nested, ok := m["nested"].(map[string]any)
	if !ok || nested["inner"] != "val" {
		t.Errorf("unexpected nested value: %v", m["nested"])
	}
}
