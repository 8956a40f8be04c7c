package value

import "testing"

func TestAsIntRoundTrip(t *testing.T) {
	if i, err := AsInt(Float{V: 3.0}); err != nil || i != 3 {
		t.Errorf("AsInt(3.0) = %d, %v", i, err)
	}
	if _, err := AsInt(Float{V: 3.5}); err == nil {
		t.Error("AsInt(3.5) should fail: non-zero fractional part")
	}
}

func TestAsBoolFromInt(t *testing.T) {
	cases := []struct {
		in   Int
		want bool
		ok   bool
	}{
		{Int{V: 0}, false, true},
		{Int{V: 1}, true, true},
		{Int{V: 2}, false, false},
	}
	for _, c := range cases {
		b, err := AsBool(c.in)
		if c.ok && (err != nil || b != c.want) {
			t.Errorf("AsBool(%v) = %v, %v; want %v, nil", c.in, b, err, c.want)
		}
		if !c.ok && err == nil {
			t.Errorf("AsBool(%v) should fail", c.in)
		}
	}
}

func TestAsFloatComplexWithZeroImaginary(t *testing.T) {
	f, err := AsFloat(Complex{V: complex(2, 0)})
	if err != nil || f != 2 {
		t.Errorf("AsFloat(2+0i) = %v, %v", f, err)
	}
	if _, err := AsFloat(Complex{V: complex(2, 1)}); err == nil {
		t.Error("AsFloat(2+1i) should fail: non-zero imaginary part")
	}
}

func TestAsVectorWrapsScalar(t *testing.T) {
	v := AsVector(Int{V: 5})
	if len(v.V) != 1 || v.V[0] != (Int{V: 5}) {
		t.Errorf("AsVector(5) = %v", v)
	}
	// Vector stays unchanged.
	orig := Vector{V: []Value{Int{V: 1}, Int{V: 2}}}
	if got := AsVector(orig); len(got.V) != 2 {
		t.Errorf("AsVector(Vector) changed length: %v", got)
	}
}

func TestDemoteLosslessOnly(t *testing.T) {
	if got := demote(Float{V: 4}, complexityInt); got != (Int{V: 4}) {
		t.Errorf("demote(4.0) = %v, want Int(4)", got)
	}
	if got := demote(Float{V: 4.5}, complexityInt); got != (Float{V: 4.5}) {
		t.Errorf("demote(4.5) = %v, want unchanged Float(4.5)", got)
	}
	if got := demote(Complex{V: complex(3, 0)}, complexityInt); got != (Int{V: 3}) {
		t.Errorf("demote(3+0i) = %v, want Int(3)", got)
	}
}

func TestComplexityOrder(t *testing.T) {
	vals := []Value{Bool{}, Int{}, Float{}, Complex{}, Vector{}}
	for i := 1; i < len(vals); i++ {
		if vals[i].complexity() <= vals[i-1].complexity() {
			t.Errorf("complexity not strictly increasing at index %d", i)
		}
	}
}
