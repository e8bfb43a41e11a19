package tui

// Theme captures the prefixes the session prints before guide and error
// messages.
type Theme struct {
	GuidePrefix string
	ErrorPrefix string
}

// DefaultMaxAttempts bounds how often an invalid field is prompted again.
const DefaultMaxAttempts = 3

// Option configures a Session.
type Option func(*Session)

// WithPromptDriver overrides the prompt driver used by the session.
func WithPromptDriver(driver PromptDriver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithMaxAttempts sets how many prompts an invalid field gets.
func WithMaxAttempts(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

// WithTheme applies message prefixes.
func WithTheme(theme Theme) Option {
	return func(s *Session) {
		s.theme = theme
	}
}
