package config

import (
	_ "embed"
)

//go:embed defaults/sandfall.yaml
var defaultSandfallYAML []byte

// DefaultSandfallConfig returns the built-in configuration. It matches the
// embedded defaults/sandfall.yaml.
func DefaultSandfallConfig() SandfallConfig {
	presets := make(map[DifficultyPreset]DifficultyTuning, len(Difficulties))
	for _, p := range Difficulties {
		presets[p] = DefaultTuning(p)
	}
	return SandfallConfig{
		Playfield: PlayfieldConfig{
			Width:  10,
			Height: 24,
		},
		Mode: ModeConfig{
			Kind:       ModeEndless,
			TimeLimit:  180,
			ClearLines: 40,
		},
		Difficulty: DifficultyMedium,
		Presets:    presets,
		Timing: TimingConfig{
			TickRate:     60,
			FrameRate:    60,
			SpawnDelayMS: 0,
			LockDelayMS:  120,
		},
		Progression: ProgressionConfig{
			LinesPerLevel:        10,
			SpeedStep:            0.1,
			MinGravityIntervalMS: 4,
		},
		Gameplay: GameplayConfig{
			InitialLevel:        1,
			SandSettle:          true,
			HighColor:           true,
			Palette:             PaletteNormal,
			SettlePassesPerTick: 2,
		},
		Autoplay: AutoplayConfig{
			ThinkTicks: 4,
		},
	}
}
