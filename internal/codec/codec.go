// Package codec wraps the YAML structured-text codec used for tuple values.
//
// The tuple engine never touches yaml.v3 directly; all structured values go
// through MarshalString/UnmarshalString so the payload format stays in one
// place. Values are UTF-8 text only, no binary payloads.
package codec

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/keelworks/treeline/internal/types"
)

// MarshalString serializes v to its YAML text form.
// Assumed total for well-formed configuration values.
func MarshalString(v any) (string, error) {
	out, err := yaml.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshal tuple value: %w", err)
	}
	return string(out), nil
}

// UnmarshalString deserializes YAML text into out, which must be a pointer.
// Malformed text reports ErrValueFormat so callers can treat it as a
// corrupted-snapshot condition rather than a wiring defect.
func UnmarshalString(text string, out any) error {
	if err := yaml.Unmarshal([]byte(text), out); err != nil {
		return fmt.Errorf("%w: %v", types.ErrValueFormat, err)
	}
	return nil
}
