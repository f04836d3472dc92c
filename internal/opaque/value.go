// Package opaque models the arbitrary-shape values exchanged with frontend
// components. The bridge never interprets them; it only needs a lossless
// JSON round trip and an equality check, which cty provides.
package opaque

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// Value is an immutable envelope around a cty.Value. The zero Value is null.
type Value struct {
	v cty.Value
}

// Null returns the explicit "no value" marker.
func Null() Value {
	return Value{v: cty.NullVal(cty.DynamicPseudoType)}
}

// FromJSON decodes raw JSON into a Value, inferring the cty type from the
// document shape. Empty input and the null literal decode to null.
func FromJSON(raw json.RawMessage) (Value, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return Null(), nil
	}
	raw = trimmed
	ty, err := ctyjson.ImpliedType(raw)
	if err != nil {
		return Value{}, fmt.Errorf("opaque: cannot imply type from JSON: %w", err)
	}
	v, err := ctyjson.Unmarshal(raw, ty)
	if err != nil {
		return Value{}, fmt.Errorf("opaque: decode JSON: %w", err)
	}
	return Value{v: v}, nil
}

// FromGo converts a native Go value through its JSON representation.
// A nil input becomes null.
func FromGo(val any) (Value, error) {
	if val == nil {
		return Null(), nil
	}
	raw, err := json.Marshal(val)
	if err != nil {
		return Value{}, fmt.Errorf("opaque: encode Go value: %w", err)
	}
	return FromJSON(raw)
}

// cty normalizes the zero Value to an explicit null.
func (v Value) cty() cty.Value {
	if v.v == cty.NilVal {
		return cty.NullVal(cty.DynamicPseudoType)
	}
	return v.v
}

// IsNull reports whether the envelope carries no value.
func (v Value) IsNull() bool {
	return v.cty().IsNull()
}

// Equal compares two values structurally, including their types.
func (v Value) Equal(other Value) bool {
	return v.cty().RawEquals(other.cty())
}

// MarshalJSON renders the value back to the exact JSON shape it was built
// from. Null marshals as the JSON literal null.
func (v Value) MarshalJSON() ([]byte, error) {
	cv := v.cty()
	if cv.IsNull() {
		return []byte("null"), nil
	}
	raw, err := ctyjson.Marshal(cv, cv.Type())
	if err != nil {
		return nil, fmt.Errorf("opaque: encode value: %w", err)
	}
	return raw, nil
}

// UnmarshalJSON makes Value usable inside decoded payload structs.
func (v *Value) UnmarshalJSON(raw []byte) error {
	decoded, err := FromJSON(raw)
	if err != nil {
		return err
	}
	*v = decoded
	return nil
}

// Interface converts the value back to plain Go data (map[string]any,
// []any, float64, string, bool or nil), the shape encoding/json produces.
func (v Value) Interface() (any, error) {
	if v.IsNull() {
		return nil, nil
	}
	raw, err := v.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("opaque: decode to Go value: %w", err)
	}
	return out, nil
}

// String implements fmt.Stringer for log output.
func (v Value) String() string {
	raw, err := v.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("opaque(error: %v)", err)
	}
	return string(raw)
}
