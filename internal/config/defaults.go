package config

import (
	_ "embed"
)

//go:embed defaults/kite.yaml
var defaultKiteYAML []byte

// DefaultKiteConfig returns the built-in kite configuration. It mirrors
// defaults/kite.yaml and is the fallback of last resort when the embedded
// file cannot be parsed.
func DefaultKiteConfig() KiteConfig {
	return KiteConfig{
		Field: KiteField{
			Width:  800,
			Height: 600,
		},
		Avatar: KiteAvatar{
			X:      100,
			Width:  40,
			Height: 30,
		},
		Walls: KiteWalls{
			Width:          60,
			SpawnThreshold: 300,
			MarginTop:      50,
			MarginBottom:   50,
		},
		Profiles: KiteProfiles{
			Easy: KiteProfile{
				Gravity:     0.3,
				JumpImpulse: -6,
				WallSpeed:   2,
				GapSize:     200,
			},
			Medium: KiteProfile{
				Gravity:     0.4,
				JumpImpulse: -7,
				WallSpeed:   3,
				GapSize:     160,
			},
			Hard: KiteProfile{
				Gravity:     0.5,
				JumpImpulse: -8,
				WallSpeed:   4,
				GapSize:     120,
			},
		},
	}
}

// DefaultYAML returns the embedded default config, for printing or for
// seeding a user config file.
func DefaultYAML() []byte {
	return defaultKiteYAML
}
