package out

import (
	"context"

	"vlx/internal/modules/settings/domain"
)

type SettingsStore interface {
	Load(ctx context.Context) (domain.AccessibilitySettings, bool, error)
	Save(ctx context.Context, settings domain.AccessibilitySettings) error
}
