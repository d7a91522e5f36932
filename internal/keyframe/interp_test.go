package keyframe

import "testing"

func TestCurvatureFromRaw(t *testing.T) {
	cases := []struct {
		raw  uint32
		want Curvature
	}{
		{0, CurvatureLinear},
		{65536, CurvatureNormal},
		{131072, CurvatureExtreme},
	}
	for _, c := range cases {
		if got := CurvatureFromRaw(c.raw); got != c.want {
			t.Errorf("CurvatureFromRaw(%d) = %v, want %v", c.raw, got, c.want)
		}
	}
}

func TestApplyEasingIdentityWhenNotSmooth(t *testing.T) {
	if got := ApplyEasing(0.37, 20, 20, false); got != 0.37 {
		t.Fatalf("got %v", got)
	}
}

func TestApplyEasingEndpointsUnchanged(t *testing.T) {
	if got := ApplyEasing(0.0, 25, 25, true); got != 0.0 {
		t.Fatalf("t=0 should map to 0, got %v", got)
	}
	if got := ApplyEasing(1.0, 25, 25, true); got != 1.0 {
		t.Fatalf("t=1 should map to 1, got %v", got)
	}
}

func TestApplyEasingMiddlePassesThroughUnchanged(t *testing.T) {
	// With 25% ease-in and 25% ease-out, t=0.5 lies strictly between the
	// two eased regions and passes through unmodified.
	if got := ApplyEasing(0.5, 25, 25, true); got != 0.5 {
		t.Fatalf("got %v", got)
	}
}

func TestApplyCurvatureLinearIsIdentity(t *testing.T) {
	for _, t64 := range []float64{0, 0.25, 0.5, 0.75, 1.0} {
		if got := ApplyCurvature(t64, CurvatureLinear); got != t64 {
			t.Fatalf("ApplyCurvature(%v, Linear) = %v, want %v", t64, got, t64)
		}
	}
}

func TestApplyCurvatureEndpoints(t *testing.T) {
	for _, c := range []Curvature{CurvatureLinear, CurvatureNormal, CurvatureExtreme} {
		if got := ApplyCurvature(0.0, c); got != 0.0 {
			t.Errorf("curvature %v: ApplyCurvature(0) = %v, want 0", c, got)
		}
		if got := ApplyCurvature(1.0, c); got != 1.0 {
			t.Errorf("curvature %v: ApplyCurvature(1) = %v, want 1", c, got)
		}
	}
}

func TestApplyCurvatureNormalMidpoint(t *testing.T) {
	if got := ApplyCurvature(0.5, CurvatureNormal); got != 0.5 {
		t.Fatalf("Normal curvature should pass through the midpoint, got %v", got)
	}
}
