// Package config defines the search session's configuration surface and
// loads it with koanf, the same env > file > defaults precedence the wider
// stack uses everywhere else.
package config

// Config is the complete search session configuration.
type Config struct {
	Search  SearchConfig  `yaml:"search" koanf:"search"`
	Action  ActionConfig  `yaml:"action" koanf:"action"`
	Reward  RewardConfig  `yaml:"reward" koanf:"reward"`
	Logging LoggingConfig `yaml:"logging" koanf:"logging"`
}

// SearchConfig controls the MCTS driver's exploration constants and
// concurrency.
type SearchConfig struct {
	Workers        int     `yaml:"workers" koanf:"workers" validate:"gte=1"`
	Simulations    int     `yaml:"simulations" koanf:"simulations" validate:"gte=1"`
	PuctC          float64 `yaml:"puct_c" koanf:"puct_c" validate:"gte=0"`
	HeurC          float64 `yaml:"heur_c" koanf:"heur_c" validate:"gte=0"`
	VirtualLoss    float64 `yaml:"virtual_loss" koanf:"virtual_loss" validate:"gte=0"`
	NoiseRatio     float64 `yaml:"noise_ratio" koanf:"noise_ratio" validate:"gte=0,lte=1"`
	DirichletAlpha float64 `yaml:"dirichlet_alpha" koanf:"dirichlet_alpha" validate:"gt=0"`
	MaxDepth       int     `yaml:"max_depth" koanf:"max_depth" validate:"gte=1"`
	ContextWindow  int     `yaml:"context_window" koanf:"context_window" validate:"gte=1"`
}

// ActionConfig controls the action space's alphabet.
type ActionConfig struct {
	AlphabetSize int `yaml:"alphabet_size" koanf:"alphabet_size" validate:"gte=1"`
}

// RewardConfig controls the environment's edge reward shaping.
type RewardConfig struct {
	StepPenalty float64 `yaml:"step_penalty" koanf:"step_penalty"`
	DistReward  float64 `yaml:"dist_reward" koanf:"dist_reward" validate:"gte=0"`
	FinalReward float64 `yaml:"final_reward" koanf:"final_reward" validate:"gte=0"`
}

// LoggingConfig controls the process-wide structured logger.
type LoggingConfig struct {
	Level  string `yaml:"level" koanf:"level" validate:"omitempty,oneof=debug info warn error"`
	Format string `yaml:"format" koanf:"format" validate:"omitempty,oneof=json text"`
}

// Default returns a Config populated with sane defaults for local runs.
func Default() Config {
	return Config{
		Search: SearchConfig{
			Workers:        8,
			Simulations:    800,
			PuctC:          1.5,
			HeurC:          0.1,
			VirtualLoss:    1.0,
			NoiseRatio:     0.25,
			DirichletAlpha: 0.3,
			MaxDepth:       64,
			ContextWindow:  2,
		},
		Action: ActionConfig{
			AlphabetSize: 64,
		},
		Reward: RewardConfig{
			StepPenalty: -0.01,
			DistReward:  1.0,
			FinalReward: 10.0,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
