package units

import (
	"errors"
	"math"
	"testing"
)

func TestInches(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    float64
		wantErr bool
	}{
		{name: "inches", input: "1in", want: 1},
		{name: "millimeters", input: "25.4mm", want: 1},
		{name: "centimeters", input: "2.54cm", want: 1},
		{name: "points", input: "72pt", want: 1},
		{name: "pixels", input: "96px", want: 1},
		{name: "bare number is pixels", input: "48", want: 0.5},
		{name: "spaces and upper case", input: " 10 MM ", want: 10 / 25.4},
		{name: "unknown unit", input: "3furlong", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Inches(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidLength) {
					t.Fatalf("Inches(%q) error = %v, want ErrInvalidLength", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Inches(%q) unexpected error: %v", tt.input, err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Inches(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestPaper(t *testing.T) {
	t.Parallel()

	p, ok := Paper("a4")
	if !ok {
		t.Fatal("Paper(a4) not found")
	}
	if p.Width != 8.27 || p.Height != 11.69 {
		t.Errorf("Paper(a4) = %+v", p)
	}

	if _, ok := Paper("B12"); ok {
		t.Error("Paper(B12) should not be found")
	}
}
