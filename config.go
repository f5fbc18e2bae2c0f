package studyquiz

import (
	"math/rand"
	"time"
)

// Strategy selects how questions are produced.
type Strategy string

const (
	// StrategyTemplated emits placeholder sample questions only.
	StrategyTemplated Strategy = "templated"
	// StrategyLocal builds fill-in-the-blank questions from the material.
	StrategyLocal Strategy = "local"
	// StrategyRemote asks the generation service, falling back to local
	// questions on any failure.
	StrategyRemote Strategy = "remote"
)

// Config is the engine's explicit configuration. It is passed in at
// construction; the engine reads no ambient globals.
type Config struct {
	Strategy Strategy `mapstructure:"strategy"`

	// Remote generation settings, used only with StrategyRemote.
	APIKey        string        `mapstructure:"api_key"`
	Model         string        `mapstructure:"model"`
	RemoteTimeout time.Duration `mapstructure:"remote_timeout"`

	// MaxMaterialChars bounds the material prefix sent to the remote
	// service.
	MaxMaterialChars int `mapstructure:"max_material_chars"`

	// Seed, when nonzero, makes choice shuffling and sentence selection
	// deterministic. Tests rely on this.
	Seed int64 `mapstructure:"seed"`

	// TranscriptDir, when set, enables per-quiz transcript files of
	// remote requests and responses.
	TranscriptDir string `mapstructure:"transcript_dir"`
}

const (
	defaultModel            = "gpt-4o"
	defaultRemoteTimeout    = 20 * time.Second
	defaultMaxMaterialChars = 8000
)

func (c Config) withDefaults() Config {
	if c.Strategy == "" {
		c.Strategy = StrategyLocal
	}
	if c.Model == "" {
		c.Model = defaultModel
	}
	if c.RemoteTimeout <= 0 {
		c.RemoteTimeout = defaultRemoteTimeout
	}
	if c.MaxMaterialChars <= 0 {
		c.MaxMaterialChars = defaultMaxMaterialChars
	}
	return c
}

func (c Config) newRand() *rand.Rand {
	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
