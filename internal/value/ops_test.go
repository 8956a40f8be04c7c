package value

import "testing"

func TestAddPromotesToFloat(t *testing.T) {
	got, err := Add(Int{V: 1}, Float{V: 2.5})
	if err != nil {
		t.Fatal(err)
	}
	if got != (Float{V: 3.5}) {
		t.Errorf("Add(1, 2.5) = %v, want 3.5", got)
	}
}

func TestAddDemotesBackToInt(t *testing.T) {
	got, err := Add(Int{V: 1}, Int{V: 2})
	if err != nil {
		t.Fatal(err)
	}
	if got != (Int{V: 3}) {
		t.Errorf("Add(1, 2) = %v, want Int(3)", got)
	}
}

func TestAddBroadcastsScalarOverVector(t *testing.T) {
	vec := Vector{V: []Value{Int{V: 1}, Int{V: 2}, Int{V: 3}}}
	got, err := Add(vec, Int{V: 10})
	if err != nil {
		t.Fatal(err)
	}
	want := Vector{V: []Value{Int{V: 11}, Int{V: 12}, Int{V: 13}}}
	gotVec, ok := got.(Vector)
	if !ok || len(gotVec.V) != len(want.V) {
		t.Fatalf("Add(vec, 10) = %v", got)
	}
	for i := range want.V {
		if gotVec.V[i] != want.V[i] {
			t.Errorf("element %d: got %v want %v", i, gotVec.V[i], want.V[i])
		}
	}
}

func TestAddMismatchedVectorLengths(t *testing.T) {
	lv := Vector{V: []Value{Int{V: 1}, Int{V: 2}}}
	rv := Vector{V: []Value{Int{V: 1}, Int{V: 2}, Int{V: 3}}}
	if _, err := Add(lv, rv); err == nil {
		t.Error("Add with mismatched vector lengths should fail")
	}
}

func TestDivByZero(t *testing.T) {
	if _, err := Div(Int{V: 1}, Int{V: 0}); err == nil {
		t.Error("Div by zero should fail")
	}
}

func TestPowEulerIdentityDemotesToInt(t *testing.T) {
	// e^(pi*i) == -1, per spec.md's worked example.
	piI := Complex{V: complex(0, 3.141592653589793)}
	e := Float{V: 2.718281828459045}
	got, err := Pow(e, piI)
	if err != nil {
		t.Fatal(err)
	}
	if got != (Int{V: -1}) {
		t.Errorf("e^(pi*i) = %v, want Int(-1)", got)
	}
}

func TestPowIntSquare(t *testing.T) {
	got, err := Pow(Int{V: 3}, Int{V: 2})
	if err != nil {
		t.Fatal(err)
	}
	if got != (Int{V: 9}) {
		t.Errorf("3^2 = %v, want Int(9)", got)
	}
}

func TestEqVectorPointwise(t *testing.T) {
	a := Vector{V: []Value{Int{V: 1}, Int{V: 2}}}
	b := Vector{V: []Value{Int{V: 1}, Float{V: 2}}}
	eq, err := Eq(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if eq != (Bool{V: true}) {
		t.Errorf("Eq(%v, %v) = %v, want true", a, b, eq)
	}
}

func TestFromStringVariants(t *testing.T) {
	cases := map[string]Value{
		"true":  Bool{V: true},
		"false": Bool{V: false},
		"3":     Int{V: 3},
		"3.5":   Float{V: 3.5},
		"2i":    Complex{V: complex(0, 2)},
		"i":     Complex{V: complex(0, 1)},
	}
	for in, want := range cases {
		got, err := FromString(in)
		if err != nil {
			t.Errorf("FromString(%q): %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("FromString(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestFromStringTwoDotsFails(t *testing.T) {
	if _, err := FromString("1.2.3"); err == nil {
		t.Error("FromString with two dots should fail")
	}
}

func TestRoundClampsPrecision(t *testing.T) {
	got := Round(Float{V: 1.0 / 3.0}, 20) // clamps to 12
	f := got.(Float).V
	if f == 1.0/3.0 {
		t.Error("Round should have truncated precision even when p is out of range")
	}
}
