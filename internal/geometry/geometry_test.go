package geometry

import (
	"image"
	"math"
	"testing"
)

func TestFitWithin(t *testing.T) {
	tests := []struct {
		name           string
		sw, sh, budget int
		want           Fit
	}{
		{"landscape 2:1", 1000, 500, 100, Fit{100, 50}},
		{"portrait 1:2", 500, 1000, 100, Fit{50, 100}},
		{"square", 640, 640, 126, Fit{126, 126}},
		{"upscale", 10, 5, 200, Fit{200, 100}},
		{"extreme aspect clamps to one pixel", 10000, 1, 50, Fit{50, 1}},
		{"budget one", 3, 7, 1, Fit{1, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FitWithin(tt.sw, tt.sh, tt.budget)
			if err != nil {
				t.Fatalf("FitWithin: %v", err)
			}
			if got != tt.want {
				t.Errorf("FitWithin(%d, %d, %d) = %v, want %v", tt.sw, tt.sh, tt.budget, got, tt.want)
			}
		})
	}
}

func TestFitWithin_RejectsNonPositive(t *testing.T) {
	for _, in := range [][3]int{{0, 10, 10}, {10, -1, 10}, {10, 10, 0}} {
		if _, err := FitWithin(in[0], in[1], in[2]); err == nil {
			t.Errorf("FitWithin%v: expected error", in)
		}
	}
}

func TestFitWithin_Properties(t *testing.T) {
	sizes := []int{1, 2, 3, 7, 48, 99, 100, 101, 333, 500, 1000, 1024, 1920, 4097}
	budgets := []int{1, 2, 13, 40, 66, 126, 163, 264, 435}
	for _, sw := range sizes {
		for _, sh := range sizes {
			for _, budget := range budgets {
				fit, err := FitWithin(sw, sh, budget)
				if err != nil {
					t.Fatalf("FitWithin(%d, %d, %d): %v", sw, sh, budget, err)
				}
				if fit.Width < 1 || fit.Height < 1 {
					t.Fatalf("FitWithin(%d, %d, %d) = %v: below one pixel", sw, sh, budget, fit)
				}
				if max(fit.Width, fit.Height) > budget {
					t.Fatalf("FitWithin(%d, %d, %d) = %v: exceeds budget", sw, sh, budget, fit)
				}
				if max(fit.Width, fit.Height) != budget {
					t.Fatalf("FitWithin(%d, %d, %d) = %v: long side should use the whole budget", sw, sh, budget, fit)
				}

				// Each side is the ideal scaled size rounded, unless clamped up to 1.
				scale := math.Min(float64(budget)/float64(sw), float64(budget)/float64(sh))
				if idealW := float64(sw) * scale; fit.Width > 1 && math.Abs(float64(fit.Width)-idealW) > 0.5+1e-9 {
					t.Fatalf("FitWithin(%d, %d, %d) width %d too far from %.3f", sw, sh, budget, fit.Width, idealW)
				}
				if idealH := float64(sh) * scale; fit.Height > 1 && math.Abs(float64(fit.Height)-idealH) > 0.5+1e-9 {
					t.Fatalf("FitWithin(%d, %d, %d) height %d too far from %.3f", sw, sh, budget, fit.Height, idealH)
				}

				// Ratio error bounded by one pixel of the short side, for
				// aspect ratios up to 2:1.
				srcRatio := float64(sw) / float64(sh)
				if srcRatio >= 0.5 && srcRatio <= 2 {
					got := float64(fit.Width) / float64(fit.Height)
					tol := 1/float64(min(fit.Width, fit.Height)) + 1e-9
					if math.Abs(got-srcRatio) > tol {
						t.Fatalf("FitWithin(%d, %d, %d) = %v: ratio %.4f vs %.4f exceeds %.4f", sw, sh, budget, fit, got, srcRatio, tol)
					}
				}
			}
		}
	}
}

func TestSafeBudget(t *testing.T) {
	tests := []struct {
		size  int
		ratio float64
		want  int
	}{
		{192, 0.66, 126},
		{108, 66.0 / 108.0, 66},
		{432, 66.0 / 108.0, 264},
		{48, 0.85, 40},
		{512, 0.85, 435},
		{512, 1, 512},
		{1, 0.5, 0},
	}
	for _, tt := range tests {
		if got := SafeBudget(tt.size, tt.ratio); got != tt.want {
			t.Errorf("SafeBudget(%d, %v) = %d, want %d", tt.size, tt.ratio, got, tt.want)
		}
	}
}

func TestCenterOffset(t *testing.T) {
	if got := CenterOffset(192, 192, Fit{126, 126}); got != image.Pt(33, 33) {
		t.Errorf("CenterOffset = %v, want (33,33)", got)
	}
	// Odd remainder: extra pixel goes right/bottom, offset floors.
	if got := CenterOffset(48, 48, Fit{40, 19}); got != image.Pt(4, 14) {
		t.Errorf("CenterOffset odd = %v, want (4,14)", got)
	}
}

func TestNewPlan_SquareSourceOnXXXHDPI(t *testing.T) {
	plan, err := NewPlan(500, 500, 192, 192, 0.66)
	if err != nil {
		t.Fatalf("NewPlan: %v", err)
	}
	if plan.Fit != (Fit{126, 126}) {
		t.Errorf("fit = %v, want 126x126", plan.Fit)
	}
	if plan.Offset != image.Pt(33, 33) {
		t.Errorf("offset = %v, want (33,33)", plan.Offset)
	}
	if plan.Rect() != image.Rect(33, 33, 159, 159) {
		t.Errorf("rect = %v", plan.Rect())
	}
}

func TestNewPlan_StaysInsideSafeZone(t *testing.T) {
	canvases := [][2]int{{48, 48}, {72, 72}, {108, 108}, {162, 162}, {1024, 500}, {1080, 1920}}
	sources := [][2]int{{1, 1}, {1000, 500}, {500, 1000}, {333, 777}, {4000, 3}}
	for _, ratio := range []float64{0.61, 66.0 / 108.0, 0.66, 0.72, 0.8, 0.85, 1} {
		for _, c := range canvases {
			zone := SafeZone(c[0], c[1], ratio)
			for _, s := range sources {
				plan, err := NewPlan(s[0], s[1], c[0], c[1], ratio)
				if err != nil {
					t.Fatalf("NewPlan(%v, %v, %v): %v", s, c, ratio, err)
				}
				if !plan.Rect().In(zone) {
					t.Fatalf("NewPlan(%v, %v, %v): rect %v outside safe zone %v", s, c, ratio, plan.Rect(), zone)
				}
			}
		}
	}
}

func TestNewPlan_Errors(t *testing.T) {
	if _, err := NewPlan(10, 10, 0, 10, 0.5); err == nil {
		t.Error("expected error for empty canvas")
	}
	if _, err := NewPlan(10, 10, 10, 10, 0); err == nil {
		t.Error("expected error for zero ratio")
	}
	if _, err := NewPlan(10, 10, 1, 1, 0.5); err == nil {
		t.Error("expected error when the safe zone is empty")
	}
}
