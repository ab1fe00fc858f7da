package primitives

import "testing"

func TestPositiveConstruction(t *testing.T) {
	t.Run("rejects negative", func(t *testing.T) {
		_, err := NewPositive(NewDecimal(-1))
		if err == nil {
			t.Error("expected error for negative value")
		}
	})

	t.Run("accepts zero", func(t *testing.T) {
		p, err := NewPositive(DecimalZero())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !p.IsZero() {
			t.Error("expected zero value")
		}
	})

	t.Run("parses infinity literal", func(t *testing.T) {
		p, err := NewPositiveFromString("infinity")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !p.IsInfinite() {
			t.Error("expected infinite value")
		}
	})
}

func TestPositiveArithmetic(t *testing.T) {
	a := MustPositive(NewDecimal(10))
	b := MustPositive(NewDecimal(3))

	if got := a.Add(b); got.String() != "13" {
		t.Errorf("Add: expected 13, got %s", got.String())
	}

	sub, err := a.Sub(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sub.String() != "7" {
		t.Errorf("Sub: expected 7, got %s", sub.String())
	}

	if _, err := b.Sub(a); err == nil {
		t.Error("expected error subtracting a larger value")
	}
}

func TestPositiveMustSubPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected MustSub to panic on underflow")
		}
	}()
	small := MustPositive(NewDecimal(1))
	large := MustPositive(NewDecimal(2))
	small.MustSub(large)
}

func TestPositiveInfinityArithmetic(t *testing.T) {
	inf := PositiveInfinity()
	five := MustPositive(NewDecimal(5))

	if !inf.Add(five).IsInfinite() {
		t.Error("expected infinity + finite to stay infinite")
	}
	if !five.Max(inf).IsInfinite() {
		t.Error("expected Max with infinity to be infinite")
	}
	if got := inf.Min(five); !got.Equal(five) {
		t.Errorf("expected Min(infinity, 5) == 5, got %s", got.String())
	}
}

func TestPositiveTranscendentals(t *testing.T) {
	four := MustPositive(NewDecimal(4))
	if got := four.Sqrt(); got.Round(6).String() != "2" {
		t.Errorf("Sqrt(4): expected 2, got %s", got.String())
	}

	one := One()
	if got := one.Exp().Round(4).Float64(); got < 2.71 || got > 2.72 {
		t.Errorf("Exp(1): expected ~e, got %f", got)
	}
}

func TestPositiveJSONRoundTrip(t *testing.T) {
	cases := []string{"0", "5", "5.25", "1000000"}
	for _, c := range cases {
		p, err := NewPositiveFromString(c)
		if err != nil {
			t.Fatalf("unexpected error parsing %s: %v", c, err)
		}
		data, err := p.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected marshal error: %v", err)
		}
		var round Positive
		if err := round.UnmarshalJSON(data); err != nil {
			t.Fatalf("unexpected unmarshal error: %v", err)
		}
		if !round.Equal(p) {
			t.Errorf("round trip mismatch for %s: got %s", c, round.String())
		}
	}

	inf := PositiveInfinity()
	data, _ := inf.MarshalJSON()
	var roundInf Positive
	if err := roundInf.UnmarshalJSON(data); err != nil {
		t.Fatalf("unexpected unmarshal error: %v", err)
	}
	if !roundInf.IsInfinite() {
		t.Error("expected infinity to round-trip")
	}

	var rejected Positive
	if err := rejected.UnmarshalJSON([]byte("-5")); err == nil {
		t.Error("expected negative JSON number to be rejected")
	}
}
