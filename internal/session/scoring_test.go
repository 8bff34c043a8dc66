package session

import "testing"

func TestRatioPolicy(t *testing.T) {
	cases := []struct {
		name                    string
		attempted, solved, hint int
		want                    int
	}{
		{"zero attempts", 0, 0, 0, 0},
		{"perfect single", 1, 1, 0, 100},
		{"accuracy and hint discount", 4, 3, 2, 168},
		{"hints floor at zero", 2, 1, 10, 0},
		{"no solves", 5, 0, 1, 0},
		{"all solved no hints", 3, 3, 0, 300},
	}
	p := RatioPolicy{}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := p.Score(c.attempted, c.solved, c.hint); got != c.want {
				t.Errorf("Score(%d, %d, %d) = %d, want %d", c.attempted, c.solved, c.hint, got, c.want)
			}
		})
	}
}

func TestFlatPolicy(t *testing.T) {
	p := FlatPolicy{}
	if got := p.Score(7, 4, 9); got != 40 {
		t.Errorf("Score = %d, want 40", got)
	}
}

func TestPolicyFromName(t *testing.T) {
	p, err := PolicyFromName("")
	if err != nil || p.Name() != "ratio" {
		t.Errorf("empty name should default to ratio, got %v, %v", p, err)
	}
	if _, err := PolicyFromName("flat"); err != nil {
		t.Errorf("flat rejected: %v", err)
	}
	if _, err := PolicyFromName("golf"); err == nil {
		t.Error("expected error for unknown policy")
	}
}
