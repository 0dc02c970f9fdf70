package tactile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the recognizer's tuning thresholds. Times are in seconds,
// distances in the same units as sample positions (typically pixels).
// All values must be positive; zero-value fields are rejected by
// Validate, so start from DefaultConfig and override.
type Config struct {
	// DragStartupTime is how long a lone finger must have been dragging
	// before single-drag events start flowing.
	DragStartupTime float64 `yaml:"drag_startup_time"`

	// FingerSize scales the per-finger consistency radius for
	// multi-finger taps, swipes, and long presses.
	FingerSize float64 `yaml:"finger_size"`

	// MultiFingerReleaseThreshold is the window within which all fingers
	// of a multi-tap or multi-swipe must release.
	MultiFingerReleaseThreshold float64 `yaml:"multi_finger_release_threshold"`

	// TapTimeLimit and TapDistanceLimit bound a tap: released sooner than
	// the limit, having moved no farther than the distance.
	TapTimeLimit     float64 `yaml:"tap_time_limit"`
	TapDistanceLimit float64 `yaml:"tap_distance_limit"`

	// LongPressTimeThreshold is how long a press must be held;
	// LongPressDistanceLimit is how far it may wander while held.
	LongPressTimeThreshold float64 `yaml:"long_press_time_threshold"`
	LongPressDistanceLimit float64 `yaml:"long_press_distance_limit"`

	// SwipeTimeLimit and SwipeDistanceThreshold bound a swipe: released
	// within the limit, having moved farther than the threshold.
	SwipeTimeLimit         float64 `yaml:"swipe_time_limit"`
	SwipeDistanceThreshold float64 `yaml:"swipe_distance_threshold"`
}

// DefaultConfig returns the stock thresholds.
func DefaultConfig() Config {
	return Config{
		DragStartupTime:             0.02,
		FingerSize:                  100,
		MultiFingerReleaseThreshold: 0.1,
		TapTimeLimit:                0.2,
		TapDistanceLimit:            25,
		LongPressTimeThreshold:      0.75,
		LongPressDistanceLimit:      25,
		SwipeTimeLimit:              0.5,
		SwipeDistanceThreshold:      200,
	}
}

// Validate rejects malformed threshold values with a descriptive error.
func (c Config) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"drag_startup_time", c.DragStartupTime},
		{"finger_size", c.FingerSize},
		{"multi_finger_release_threshold", c.MultiFingerReleaseThreshold},
		{"tap_time_limit", c.TapTimeLimit},
		{"tap_distance_limit", c.TapDistanceLimit},
		{"long_press_time_threshold", c.LongPressTimeThreshold},
		{"long_press_distance_limit", c.LongPressDistanceLimit},
		{"swipe_time_limit", c.SwipeTimeLimit},
		{"swipe_distance_threshold", c.SwipeDistanceThreshold},
	}
	for _, f := range fields {
		if f.value <= 0 {
			return fmt.Errorf("tactile: config %s must be positive, got %v", f.name, f.value)
		}
	}
	return nil
}

// LoadConfig reads threshold overrides from a YAML file. Fields absent
// from the file keep their defaults. The merged result is validated.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	return ParseConfig(data)
}

// ParseConfig parses YAML threshold overrides on top of DefaultConfig.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("tactile: parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
