package sim

import (
	"errors"
	"fmt"
)

// Config holds the run settings shared by the windowed, headless and terminal
// front ends.
type Config struct {
	Scene       string
	UPS         int    // fixed simulation updates per second
	MaxSubSteps int    // cap on catch-up steps per rendered frame
	Audio       bool   // engine hum through the system speaker
	PostProcess bool   // force the offscreen pass even if the scene does not ask for it
	Camera      string // "follow" or "free"; empty uses the scene's default
	Width       int
	Height      int
}

func DefaultConfig() Config {
	return Config{
		Scene:       "airport",
		UPS:         60,
		MaxSubSteps: 5,
		Audio:       false,
		Width:       1280,
		Height:      720,
	}
}

func (c Config) Validate() error {
	var errs []error
	if _, ok := scenes[c.Scene]; !ok {
		errs = append(errs, fmt.Errorf("scene %q: %w", c.Scene, ErrUnknownScene))
	}
	if c.Camera != "" {
		if _, err := ParseCameraMode(c.Camera); err != nil {
			errs = append(errs, err)
		}
	}
	if c.UPS <= 0 || c.UPS > 1000 {
		errs = append(errs, fmt.Errorf("ups must be in 1..1000, got %d", c.UPS))
	}
	if c.MaxSubSteps <= 0 {
		errs = append(errs, fmt.Errorf("max sub-steps must be > 0, got %d", c.MaxSubSteps))
	}
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Width, c.Height))
	}
	return errors.Join(errs...)
}
