package domain

// Theme is the UI color scheme preference.
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

func (t Theme) String() string { return string(t) }

func (t Theme) IsValid() bool {
	switch t {
	case ThemeLight, ThemeDark, ThemeSystem:
		return true
	}
	return false
}

// Settings holds per-identity preferences. Updates always replace the whole value.
type Settings struct {
	Theme            Theme `json:"theme"`
	EnableAIInsights bool  `json:"enableAiInsights"`
}

// DefaultSettings returns the settings used when none were persisted.
func DefaultSettings() Settings {
	return Settings{
		Theme:            ThemeSystem,
		EnableAIInsights: true,
	}
}

// Validate checks that every recognized field holds an allowed value.
func (s Settings) Validate() error {
	if !s.Theme.IsValid() {
		return NewValidationError("theme", "must be one of light, dark, system")
	}
	return nil
}
