package token

import "testing"

func TestPositionString(t *testing.T) {
	cases := []struct {
		pos  Position
		want string
	}{
		{Position{}, "-"},
		{Position{Line: 1, Col: 1}, "1:1"},
		{Position{Line: 42, Col: 7}, "42:7"},
	}
	for _, c := range cases {
		if got := c.pos.String(); got != c.want {
			t.Errorf("Position{%d,%d}.String() = %q, want %q", c.pos.Line, c.pos.Col, got, c.want)
		}
	}
}

func TestPositionIsValid(t *testing.T) {
	if (Position{}).IsValid() {
		t.Error("zero Position should not be valid")
	}
	if !(Position{Line: 1, Col: 1}).IsValid() {
		t.Error("Position{1,1} should be valid")
	}
}

func TestErrorListError(t *testing.T) {
	var el ErrorList
	if el.Err() != nil {
		t.Fatal("empty ErrorList should have nil Err()")
	}

	el.Add(Position{Line: 3, Col: 1}, "second")
	el.Add(Position{Line: 1, Col: 1}, "first")
	el.Sort()
	if el[0].Msg != "first" {
		t.Errorf("expected sorted order, got %+v", el)
	}
	if el.Err() == nil {
		t.Fatal("non-empty ErrorList should have non-nil Err()")
	}
}
