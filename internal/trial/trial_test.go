package trial

import "testing"

func TestDisplayedDirection(t *testing.T) {
	tests := []struct {
		trial Trial
		want  Direction
	}{
		{Trial{CongruentGo, Left}, Left},
		{Trial{CongruentGo, Right}, Right},
		{Trial{IncongruentGo, Left}, Right},
		{Trial{IncongruentGo, Right}, Left},
		{Trial{NoGo, Left}, Left},
		{Trial{NoGo, Right}, Right},
		{Trial{Stop, Left}, Left},
		{Trial{Stop, Right}, Right},
	}

	for _, tt := range tests {
		t.Run(string(tt.trial.Type)+"/"+string(tt.trial.Direction), func(t *testing.T) {
			if got := tt.trial.DisplayedDirection(); got != tt.want {
				t.Errorf("DisplayedDirection() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTypeIsGo(t *testing.T) {
	want := map[Type]bool{CongruentGo: true, IncongruentGo: true, NoGo: false, Stop: false}
	for typ, isGo := range want {
		if typ.IsGo() != isGo {
			t.Errorf("%s.IsGo() = %v, want %v", typ, typ.IsGo(), isGo)
		}
	}
}

func TestDirectionGlyph(t *testing.T) {
	if Left.Glyph() != "←" || Right.Glyph() != "→" {
		t.Errorf("glyphs = %q %q", Left.Glyph(), Right.Glyph())
	}
	if Left.Opposite() != Right || Right.Opposite() != Left {
		t.Error("Opposite() is not an involution")
	}
}
