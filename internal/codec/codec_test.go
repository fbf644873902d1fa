package codec

import (
	"errors"
	"strings"
	"testing"

	"github.com/keelworks/treeline/internal/types"
)

func TestMarshalString_Struct(t *testing.T) {
	type algo struct {
		Type  string            `yaml:"type"`
		Props map[string]string `yaml:"props,omitempty"`
	}

	out, err := MarshalString(&algo{Type: "MOD", Props: map[string]string{"sharding-count": "4"}})
	if err != nil {
		t.Fatalf("MarshalString() error = %v, want nil", err)
	}
	if !strings.Contains(out, "type: MOD") {
		t.Errorf("output missing type field: %q", out)
	}
	if !strings.Contains(out, "sharding-count: \"4\"") {
		t.Errorf("output missing props entry: %q", out)
	}
}

func TestUnmarshalString_RoundTrip(t *testing.T) {
	type algo struct {
		Type  string            `yaml:"type"`
		Props map[string]string `yaml:"props,omitempty"`
	}

	in := algo{Type: "HASH_MOD", Props: map[string]string{"sharding-count": "8"}}
	text, err := MarshalString(in)
	if err != nil {
		t.Fatalf("MarshalString() error = %v, want nil", err)
	}

	var out algo
	if err := UnmarshalString(text, &out); err != nil {
		t.Fatalf("UnmarshalString() error = %v, want nil", err)
	}
	if out.Type != in.Type {
		t.Errorf("Type = %q, want %q", out.Type, in.Type)
	}
	if out.Props["sharding-count"] != "8" {
		t.Errorf("Props[sharding-count] = %q, want %q", out.Props["sharding-count"], "8")
	}
}

func TestUnmarshalString_Malformed(t *testing.T) {
	var out map[string]string
	err := UnmarshalString("{unclosed: [", &out)
	if !errors.Is(err, types.ErrValueFormat) {
		t.Errorf("UnmarshalString() error = %v, want ErrValueFormat", err)
	}
}
