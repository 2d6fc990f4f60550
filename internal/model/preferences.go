package model

// Theme is the dashboard colour scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"

	// DefaultTheme applies when no preference has been stored.
	DefaultTheme = ThemeLight

	// ThemePreferenceKey is the storage key of the theme preference.
	ThemePreferenceKey = "themeMode"
)

// Valid reports whether t is one of the supported themes.
func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

// Preferences holds the user's persisted dashboard settings.
type Preferences struct {
	Theme Theme `json:"theme"`
}

// DefaultPreferences returns the settings used before anything is stored.
func DefaultPreferences() Preferences {
	return Preferences{Theme: DefaultTheme}
}

// PreferencesUpdate is a partial settings change. Nil fields are left as is.
type PreferencesUpdate struct {
	Theme *string `json:"theme" validate:"omitempty,oneof=light dark"`
}

// SearchRequest sets the dashboard search term.
type SearchRequest struct {
	Term string `json:"term" validate:"max=200"`
}

// PageRequest selects a page of the orders table.
type PageRequest struct {
	Page int `json:"page" validate:"required,min=1"`
}
