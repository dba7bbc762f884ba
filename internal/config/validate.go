package config

import (
	"fmt"
	"strings"
	"time"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if err := validHour("phases.midday_unlock_hour", c.Phases.MiddayUnlockHour); err != nil {
		return err
	}
	if err := validHour("phases.evening_unlock_hour", c.Phases.EveningUnlockHour); err != nil {
		return err
	}
	if c.Phases.EveningUnlockHour < c.Phases.MiddayUnlockHour {
		return fmt.Errorf("phases.evening_unlock_hour (%d) must not precede phases.midday_unlock_hour (%d)",
			c.Phases.EveningUnlockHour, c.Phases.MiddayUnlockHour)
	}

	if _, err := time.LoadLocation(c.Phases.Timezone); err != nil {
		return fmt.Errorf("phases.timezone: %w", err)
	}

	if !strings.HasPrefix(c.Insight.BaseURL, "http://") && !strings.HasPrefix(c.Insight.BaseURL, "https://") {
		return fmt.Errorf("insight.base_url must be an http(s) URL (got %q)", c.Insight.BaseURL)
	}
	if c.Insight.Timeout <= 0 {
		return fmt.Errorf("insight.timeout must be > 0 (got %v)", c.Insight.Timeout)
	}

	return nil
}

func validHour(name string, h int) error {
	if h < 0 || h > 23 {
		return fmt.Errorf("%s must be between 0 and 23 (got %d)", name, h)
	}
	return nil
}
