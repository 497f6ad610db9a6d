package dto

type SettingsOutput struct {
	FontSize        int
	HighContrast    bool
	HapticIntensity int
}

// UpdateInput changes only the fields that are set.
type UpdateInput struct {
	FontSize        *int
	HighContrast    *bool
	HapticIntensity *int
}
