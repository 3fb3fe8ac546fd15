// Package config provides YAML-based game configuration with embedded
// defaults and named difficulty presets.
package config

import "fmt"

// KiteConfig is the full tuning surface of the kite game. All gameplay
// values live in simulation units, not screen cells; the renderer projects
// them onto whatever terminal is attached.
type KiteConfig struct {
	Field    KiteField    `yaml:"field"`
	Avatar   KiteAvatar   `yaml:"avatar"`
	Walls    KiteWalls    `yaml:"walls"`
	Profiles KiteProfiles `yaml:"profiles"`
}

// KiteField defines the fixed simulation field size.
type KiteField struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// KiteAvatar defines the avatar's fixed horizontal position and box size.
type KiteAvatar struct {
	X      float64 `yaml:"x"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// KiteWalls defines wall geometry and spawn behavior shared by all
// difficulty profiles.
type KiteWalls struct {
	Width          float64 `yaml:"width"`
	SpawnThreshold float64 `yaml:"spawn_threshold"`
	MarginTop      float64 `yaml:"margin_top"`
	MarginBottom   float64 `yaml:"margin_bottom"`
}

// KiteProfile bundles the per-difficulty physics coefficients.
type KiteProfile struct {
	Gravity     float64 `yaml:"gravity"`
	JumpImpulse float64 `yaml:"jump_impulse"`
	WallSpeed   float64 `yaml:"wall_speed"`
	GapSize     float64 `yaml:"gap_size"`
}

// KiteProfiles holds the three named difficulty profiles. The set is
// fixed; there is no runtime progression between them.
type KiteProfiles struct {
	Easy   KiteProfile `yaml:"easy"`
	Medium KiteProfile `yaml:"medium"`
	Hard   KiteProfile `yaml:"hard"`
}

// DifficultyPreset names one of the fixed difficulty profiles.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyMedium DifficultyPreset = "medium"
	DifficultyHard   DifficultyPreset = "hard"
)

// DefaultPreset is used when no difficulty is selected.
const DefaultPreset = DifficultyMedium

// ParsePreset validates a difficulty name from a flag or config value.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return DifficultyPreset(s), nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, medium or hard)", s)
	}
}

// Profile returns the profile for a preset. Unknown presets fall back to
// the medium profile.
func (p KiteProfiles) Profile(preset DifficultyPreset) KiteProfile {
	switch preset {
	case DifficultyEasy:
		return p.Easy
	case DifficultyHard:
		return p.Hard
	default:
		return p.Medium
	}
}

// Validate checks that a loaded config describes a playable field.
func (c KiteConfig) Validate() error {
	if c.Field.Width <= 0 || c.Field.Height <= 0 {
		return fmt.Errorf("config: field must have positive size, got %gx%g", c.Field.Width, c.Field.Height)
	}
	if c.Avatar.Width <= 0 || c.Avatar.Height <= 0 {
		return fmt.Errorf("config: avatar must have positive size")
	}
	if c.Avatar.X < 0 || c.Avatar.X+c.Avatar.Width > c.Field.Width {
		return fmt.Errorf("config: avatar x %g does not fit the field", c.Avatar.X)
	}
	if c.Walls.Width <= 0 {
		return fmt.Errorf("config: wall width must be positive")
	}
	if c.Walls.SpawnThreshold <= 0 || c.Walls.SpawnThreshold >= c.Field.Width {
		return fmt.Errorf("config: spawn threshold %g must be between 0 and the field width", c.Walls.SpawnThreshold)
	}
	if c.Walls.MarginTop < 0 || c.Walls.MarginBottom < 0 {
		return fmt.Errorf("config: wall margins must not be negative")
	}

	for _, pp := range []struct {
		name    DifficultyPreset
		profile KiteProfile
	}{
		{DifficultyEasy, c.Profiles.Easy},
		{DifficultyMedium, c.Profiles.Medium},
		{DifficultyHard, c.Profiles.Hard},
	} {
		if err := validateProfile(pp.name, pp.profile, c); err != nil {
			return err
		}
	}
	return nil
}

func validateProfile(name DifficultyPreset, p KiteProfile, c KiteConfig) error {
	if p.Gravity <= 0 {
		return fmt.Errorf("config: %s gravity must be positive, got %g", name, p.Gravity)
	}
	if p.JumpImpulse >= 0 {
		return fmt.Errorf("config: %s jump impulse must be negative, got %g", name, p.JumpImpulse)
	}
	if p.WallSpeed <= 0 {
		return fmt.Errorf("config: %s wall speed must be positive, got %g", name, p.WallSpeed)
	}
	if p.GapSize <= 0 {
		return fmt.Errorf("config: %s gap size must be positive, got %g", name, p.GapSize)
	}
	if p.GapSize+c.Walls.MarginTop+c.Walls.MarginBottom > c.Field.Height {
		return fmt.Errorf("config: %s gap %g plus margins does not fit a field of height %g", name, p.GapSize, c.Field.Height)
	}
	return nil
}
