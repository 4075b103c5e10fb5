package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the root of the game configuration file.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	World   WorldConfig   `yaml:"world"`
	Stream  StreamConfig  `yaml:"stream"`
	Physics PhysicsConfig `yaml:"physics"`
	Player  PlayerConfig  `yaml:"player"`
}

type WindowConfig struct {
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
	Title  string  `yaml:"title"`
	FOV    float32 `yaml:"fov"`
}

type WorldConfig struct {
	Seed int64 `yaml:"seed"`
}

type StreamConfig struct {
	LoadRadius    int   `yaml:"load_radius"`
	EvictRadius   int   `yaml:"evict_radius"`
	ColumnMinY    int32 `yaml:"column_min_y"`
	ColumnMaxY    int32 `yaml:"column_max_y"`
	GenBudget     int   `yaml:"gen_budget"`
	MeshBudget    int   `yaml:"mesh_budget"`
	Workers       int   `yaml:"workers"`
	MaxPending    int   `yaml:"max_pending"`
	JobsPerUpdate int   `yaml:"jobs_per_update"`
}

type PhysicsConfig struct {
	TickRate      int     `yaml:"tick_rate"`
	Gravity       float32 `yaml:"gravity"`
	GroundDamping float32 `yaml:"ground_damping"`
	AirDamping    float32 `yaml:"air_damping"`
}

type PlayerConfig struct {
	MoveAccel       float32 `yaml:"move_accel"`
	SprintMul       float32 `yaml:"sprint_mul"`
	JumpImpulse     float32 `yaml:"jump_impulse"`
	Reach           float32 `yaml:"reach"`
	LookSensitivity float32 `yaml:"look_sensitivity"`
	Width           float32 `yaml:"width"`
	Height          float32 `yaml:"height"`
	EyeHeight       float32 `yaml:"eye_height"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Window: WindowConfig{Width: 1280, Height: 720, Title: "Minecrust", FOV: 70},
		World:  WorldConfig{Seed: 12},
		Stream: StreamConfig{
			LoadRadius:    6,
			EvictRadius:   8,
			ColumnMinY:    -2,
			ColumnMaxY:    4,
			GenBudget:     8,
			MeshBudget:    8,
			Workers:       4,
			MaxPending:    256,
			JobsPerUpdate: 64,
		},
		Physics: PhysicsConfig{
			TickRate:      20,
			Gravity:       0.02,
			GroundDamping: 0.6,
			AirDamping:    0.98,
		},
		Player: PlayerConfig{
			MoveAccel:       0.1,
			SprintMul:       2,
			JumpImpulse:     0.3,
			Reach:           5,
			LookSensitivity: 0.3,
			Width:           0.6,
			Height:          1.8,
			EyeHeight:       1.5,
		},
	}
}

// Load reads a YAML config over the defaults. An empty path checks the
// MINECRUST_CONFIG env var; if neither names a file, defaults are
// returned.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv("MINECRUST_CONFIG")
	}
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
