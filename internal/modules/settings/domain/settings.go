package domain

const (
	MinFontSize     = 14
	MaxFontSize     = 20
	DefaultFontSize = 16

	MinHapticIntensity     = 0
	MaxHapticIntensity     = 2
	DefaultHapticIntensity = 1
)

// AccessibilitySettings are global display preferences shared by every view.
type AccessibilitySettings struct {
	FontSize        int  `json:"fontSize"`
	HighContrast    bool `json:"highContrast"`
	HapticIntensity int  `json:"hapticIntensity"`
}

func Default() AccessibilitySettings {
	return AccessibilitySettings{FontSize: DefaultFontSize, HapticIntensity: DefaultHapticIntensity}
}

// Normalize pins every numeric field into its allowed range.
func (s AccessibilitySettings) Normalize() AccessibilitySettings {
	s.FontSize = clamp(s.FontSize, MinFontSize, MaxFontSize)
	s.HapticIntensity = clamp(s.HapticIntensity, MinHapticIntensity, MaxHapticIntensity)
	return s
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
