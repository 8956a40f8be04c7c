package value

import (
	"encoding/json"
	"fmt"
)

// envelope is the stable tagged-JSON shape every Value round-trips
// through, grounded on the teacher's internal/jsonvalue package (built
// specifically to give DWScript runtime values a stable JSON envelope).
type envelope struct {
	Kind string          `json:"kind"`
	Bool *bool           `json:"bool,omitempty"`
	Int  *int64          `json:"int,omitempty"`
	Real *float64        `json:"real,omitempty"`
	Imag *float64        `json:"imag,omitempty"`
	Vec  []json.RawMessage `json:"vec,omitempty"`
}

// Marshal renders v as its stable JSON envelope.
func Marshal(v Value) ([]byte, error) {
	switch t := v.(type) {
	case Bool:
		return json.Marshal(envelope{Kind: "Bool", Bool: &t.V})
	case Int:
		return json.Marshal(envelope{Kind: "Int", Int: &t.V})
	case Float:
		return json.Marshal(envelope{Kind: "Float", Real: &t.V})
	case Complex:
		re, im := real(t.V), imag(t.V)
		return json.Marshal(envelope{Kind: "Complex", Real: &re, Imag: &im})
	case Vector:
		raws := make([]json.RawMessage, len(t.V))
		for i, e := range t.V {
			b, err := Marshal(e)
			if err != nil {
				return nil, err
			}
			raws[i] = b
		}
		return json.Marshal(envelope{Kind: "Vector", Vec: raws})
	default:
		return nil, fmt.Errorf("value: unknown variant %T", v)
	}
}

// Unmarshal parses a Value from its stable JSON envelope.
func Unmarshal(data []byte) (Value, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, err
	}
	switch env.Kind {
	case "Bool":
		if env.Bool == nil {
			return nil, fmt.Errorf("value: Bool envelope missing bool field")
		}
		return Bool{V: *env.Bool}, nil
	case "Int":
		if env.Int == nil {
			return nil, fmt.Errorf("value: Int envelope missing int field")
		}
		return Int{V: *env.Int}, nil
	case "Float":
		if env.Real == nil {
			return nil, fmt.Errorf("value: Float envelope missing real field")
		}
		return Float{V: *env.Real}, nil
	case "Complex":
		if env.Real == nil || env.Imag == nil {
			return nil, fmt.Errorf("value: Complex envelope missing real/imag field")
		}
		return Complex{V: complex(*env.Real, *env.Imag)}, nil
	case "Vector":
		elems := make([]Value, len(env.Vec))
		for i, raw := range env.Vec {
			e, err := Unmarshal(raw)
			if err != nil {
				return nil, err
			}
			elems[i] = e
		}
		return Vector{V: elems}, nil
	default:
		return nil, fmt.Errorf("value: unknown kind %q", env.Kind)
	}
}
