package services

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/bobby-s-dev/skyline/internal/metrics"
	"github.com/bobby-s-dev/skyline/internal/models"
)

// ThemeKey is the preference key the theme is persisted under.
const ThemeKey = "skyline-theme"

type PreferenceStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Document carries the page-wide presentation flag.
type Document interface {
	SetLightTheme(light bool)
	LightTheme() bool
}

// ThemeManager reads and applies the light/dark preference. It is independent
// of the weather pipeline.
type ThemeManager struct {
	store    PreferenceStore
	document Document
	metrics  *metrics.Collector
	logger   *zap.Logger

	// serialises toggles so read-flip-write is atomic
	mu sync.Mutex
}

func NewThemeManager(store PreferenceStore, document Document, collector *metrics.Collector, logger *zap.Logger) *ThemeManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ThemeManager{
		store:    store,
		document: document,
		metrics:  collector,
		logger:   logger,
	}
}

// Current returns the stored theme when it is valid, otherwise light if the
// platform prefers light and dark if not.
func (m *ThemeManager) Current(ctx context.Context, prefersLight bool) models.Theme {
	stored, ok, err := m.store.Get(ctx, ThemeKey)
	if err != nil {
		m.logger.Warn("Failed to read theme preference", zap.Error(err))
	}
	if ok {
		if theme, valid := models.ParseTheme(stored); valid {
			return theme
		}
		m.logger.Debug("Ignoring invalid stored theme", zap.String("value", stored))
	}
	if prefersLight {
		return models.ThemeLight
	}
	return models.ThemeDark
}

// Apply sets the document flag and persists theme.
func (m *ThemeManager) Apply(ctx context.Context, theme models.Theme) error {
	if _, ok := models.ParseTheme(string(theme)); !ok {
		return fmt.Errorf("invalid theme %q", theme)
	}

	m.document.SetLightTheme(theme == models.ThemeLight)
	if m.metrics != nil {
		m.metrics.RecordThemeChange(string(theme))
	}

	if err := m.store.Set(ctx, ThemeKey, string(theme)); err != nil {
		return fmt.Errorf("persist theme: %w", err)
	}
	m.logger.Debug("Theme applied", zap.String("theme", string(theme)))
	return nil
}

// Toggle applies the opposite of the theme currently shown by the document.
func (m *ThemeManager) Toggle(ctx context.Context) (models.Theme, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	shown := models.ThemeDark
	if m.document.LightTheme() {
		shown = models.ThemeLight
	}
	next := shown.Opposite()
	return next, m.Apply(ctx, next)
}

// Init applies the current theme once at startup.
func (m *ThemeManager) Init(ctx context.Context, prefersLight bool) (models.Theme, error) {
	theme := m.Current(ctx, prefersLight)
	return theme, m.Apply(ctx, theme)
}
