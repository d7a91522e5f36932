package keyframe

// Curvature selects the shape of a path (position) tween between two
// keyframes.
type Curvature int

const (
	CurvatureLinear Curvature = iota
	CurvatureNormal
	CurvatureExtreme
)

// CurvatureFromRaw decodes TweenInfo's fixed-point curvature field: the
// wire value is a 16.16 fixed-point number where 1.0 (0x10000) steps
// between Linear/Normal/Extreme.
func CurvatureFromRaw(raw uint32) Curvature {
	normalized := raw / 65536
	if normalized > 2 {
		normalized = 1
	}
	switch normalized {
	case 0:
		return CurvatureLinear
	case 2:
		return CurvatureExtreme
	default:
		return CurvatureNormal
	}
}

// ApplyEasing reshapes a linear progress value t (0..1) according to
// Director's ease-in/ease-out percentages, active only when smoothSpeed is
// set on the governing TweenInfo.
func ApplyEasing(t float64, easeIn, easeOut uint32, smoothSpeed bool) float64 {
	if !smoothSpeed {
		return t
	}

	easeInPct := float64(easeIn) / 100.0
	easeOutPct := float64(easeOut) / 100.0

	total := easeInPct + easeOutPct
	if total > 1.0 {
		easeInPct /= total
		easeOutPct /= total
	}

	switch {
	case t < easeInPct:
		localT := t / easeInPct
		return easeInPct * localT * localT
	case t > 1.0-easeOutPct:
		localT := (t - (1.0 - easeOutPct)) / easeOutPct
		return 1.0 - easeOutPct + easeOutPct*(1.0-(1.0-localT)*(1.0-localT))
	default:
		return t
	}
}

// ApplyCurvature reshapes t (0..1) according to a path's curvature type,
// producing the S-curve Director applies to "curved" motion paths.
func ApplyCurvature(t float64, c Curvature) float64 {
	switch c {
	case CurvatureLinear:
		return t
	case CurvatureExtreme:
		t2 := t * t
		return 3.0*t2 - 2.0*t2*t
	default: // CurvatureNormal
		if t < 0.5 {
			return 4.0 * t * t * t
		}
		x := -2.0*t + 2.0
		return 1.0 - (x*x*x)/2.0
	}
}
