package service

import (
	"context"

	"snapurl_admin/internal/common"
	"snapurl_admin/internal/domain/repository"
)

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// ThemeService keeps the per-user light/dark preference. Absent a stored
// value it falls back to the configured default, the gateway's analogue of
// the system preference.
type ThemeService struct {
	state        repository.ClientStateStore
	defaultTheme string
}

func NewThemeService(state repository.ClientStateStore, defaultTheme string) *ThemeService {
	if defaultTheme != ThemeLight && defaultTheme != ThemeDark {
		defaultTheme = ThemeLight
	}
	return &ThemeService{state: state, defaultTheme: defaultTheme}
}

func (s *ThemeService) Get(ctx context.Context, userID string) (string, error) {
	if userID == "" {
		return s.defaultTheme, nil
	}
	theme, err := s.state.LoadTheme(ctx, userID)
	if err != nil {
		return "", err
	}
	if theme != ThemeLight && theme != ThemeDark {
		return s.defaultTheme, nil
	}
	return theme, nil
}

func (s *ThemeService) Set(ctx context.Context, userID, theme string) error {
	if userID == "" {
		return common.ErrUnauthorized
	}
	if theme != ThemeLight && theme != ThemeDark {
		return common.Errorf("theme must be %q or %q: %w", ThemeLight, ThemeDark, common.ErrValidation)
	}
	return s.state.SaveTheme(ctx, userID, theme)
}
