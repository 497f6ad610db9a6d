package usecase

import (
	"context"
	"sync"

	"vlx/internal/modules/settings/domain"
	"vlx/internal/modules/settings/dto"
	settingsin "vlx/internal/modules/settings/port/in"
	"vlx/internal/modules/settings/service"
)

type Interactor struct {
	svc *service.SettingsService

	mu          sync.Mutex
	nextID      int
	subscribers map[int]func(dto.SettingsOutput)
}

func NewInteractor(svc *service.SettingsService) settingsin.Usecase {
	return &Interactor{svc: svc, subscribers: map[int]func(dto.SettingsOutput){}}
}

func (i *Interactor) Get(ctx context.Context) (dto.SettingsOutput, error) {
	settings, err := i.svc.Load(ctx)
	if err != nil {
		return dto.SettingsOutput{}, err
	}
	return toOutput(settings), nil
}

// Update saves the merged settings and notifies subscribers after the write.
func (i *Interactor) Update(ctx context.Context, input dto.UpdateInput) (dto.SettingsOutput, error) {
	i.mu.Lock()
	current, err := i.svc.Load(ctx)
	if err != nil {
		i.mu.Unlock()
		return dto.SettingsOutput{}, err
	}
	if input.FontSize != nil {
		current.FontSize = *input.FontSize
	}
	if input.HighContrast != nil {
		current.HighContrast = *input.HighContrast
	}
	if input.HapticIntensity != nil {
		current.HapticIntensity = *input.HapticIntensity
	}
	saved, err := i.svc.Save(ctx, current)
	if err != nil {
		i.mu.Unlock()
		return dto.SettingsOutput{}, err
	}
	out := toOutput(saved)
	subs := make([]func(dto.SettingsOutput), 0, len(i.subscribers))
	for id := 0; id < i.nextID; id++ {
		if fn, ok := i.subscribers[id]; ok {
			subs = append(subs, fn)
		}
	}
	i.mu.Unlock()

	for _, fn := range subs {
		fn(out)
	}
	return out, nil
}

func (i *Interactor) Subscribe(fn func(dto.SettingsOutput)) func() {
	i.mu.Lock()
	defer i.mu.Unlock()
	id := i.nextID
	i.nextID++
	i.subscribers[id] = fn
	var once sync.Once
	return func() {
		once.Do(func() {
			i.mu.Lock()
			defer i.mu.Unlock()
			delete(i.subscribers, id)
		})
	}
}

func toOutput(s domain.AccessibilitySettings) dto.SettingsOutput {
	return dto.SettingsOutput{FontSize: s.FontSize, HighContrast: s.HighContrast, HapticIntensity: s.HapticIntensity}
}
