package models

// DisplayState is the mutually exclusive mode of the widget panel.
// The zero value is the pre-init idle state.
type DisplayState string

const (
	StateIdle    DisplayState = ""
	StateLoading DisplayState = "loading"
	StateError   DisplayState = "error"
	StateReady   DisplayState = "ready"
)

func (s DisplayState) String() string {
	if s == StateIdle {
		return "idle"
	}
	return string(s)
}

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme accepts only the two persisted values.
func ParseTheme(s string) (Theme, bool) {
	switch Theme(s) {
	case ThemeLight, ThemeDark:
		return Theme(s), true
	}
	return "", false
}

func (t Theme) Opposite() Theme {
	if t == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}
