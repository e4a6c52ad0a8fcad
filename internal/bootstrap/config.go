package bootstrap

import (
	"errors"
	"io/fs"

	"github.com/spf13/viper"

	"mnk_engine/internal/engine/eval"
	"mnk_engine/internal/engine/search"
	"mnk_engine/internal/usecase/ai"
)

type Config struct {
	ServerPort     string `mapstructure:"SERVER_PORT"`
	GrpcPort       string `mapstructure:"GRPC_PORT"`
	EngineGrpcAddr string `mapstructure:"ENGINE_GRPC_ADDR"`
	IsLocalCors    bool   `mapstructure:"LOCAL_CORS"`
	AIMaxDepth     int    `mapstructure:"AI_MAX_DEPTH"`
	AIMaxTimeMs    int    `mapstructure:"AI_MAX_TIME_MS"`
	AIEvaluator    string `mapstructure:"AI_EVALUATOR"`
	AISearcher     string `mapstructure:"AI_SEARCHER"`
	AILogPV        bool   `mapstructure:"AI_LOG_PV"`
	AILogMove      bool   `mapstructure:"AI_LOG_MOVE"`
}

var defaults = map[string]any{
	"SERVER_PORT":      "8080",
	"GRPC_PORT":        "8082",
	"ENGINE_GRPC_ADDR": "",
	"LOCAL_CORS":       false,
	"AI_MAX_DEPTH":     ai.MaxDepth,
	"AI_MAX_TIME_MS":   1000,
	"AI_EVALUATOR":     eval.DefaultName,
	"AI_SEARCHER":      search.NameOrdered,
	"AI_LOG_PV":        true,
	"AI_LOG_MOVE":      true,
}

// Setup reads cfgPath in .env format. Environment variables override the
// file and a missing file leaves the defaults in place.
func Setup(cfgPath string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()
	v.SetConfigFile(cfgPath)
	v.SetConfigType("env")

	err := v.ReadInConfig()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	var cfg Config

	err = v.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}

	if err = cfg.AI().Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// AI is the engine configuration used when a request does not override it.
func (c Config) AI() ai.Config {
	return ai.Config{
		MaxDepth:  c.AIMaxDepth,
		MaxTimeMs: c.AIMaxTimeMs,
		Evaluator: c.AIEvaluator,
		Searcher:  c.AISearcher,
		LogPV:     c.AILogPV,
		LogMove:   c.AILogMove,
	}
}
