package config

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/pageza/pantrymatch/backend/internal/matching"
)

// ObjectFetcher downloads a configuration object from remote storage
type ObjectFetcher interface {
	FetchObject(ctx context.Context, key string) ([]byte, error)
}

// matchingFile mirrors the layout of configs/matching.yaml
type matchingFile struct {
	Engine        matching.Config         `mapstructure:"engine"`
	Rules         []matching.CategoryRule `mapstructure:"rules"`
	Substitutions map[string][]string     `mapstructure:"substitutions"`
}

// LoadMatching reads the engine configuration and lookup tables. The YAML
// document comes from S3 when cfg.MatchingConfigS3Key is set, otherwise from
// cfg.MatchingConfigPath; a missing local file leaves the built-in tables in
// place. Engine knobs can be overridden with PANTRYMATCH_ENGINE_* variables.
func LoadMatching(ctx context.Context, cfg *Config, fetcher ObjectFetcher) (matching.Config, matching.Tables, error) {
	v := newMatchingViper()

	switch {
	case cfg.MatchingConfigS3Key != "":
		if fetcher == nil {
			return matching.Config{}, matching.Tables{}, fmt.Errorf("matching config key %q set but no object store configured", cfg.MatchingConfigS3Key)
		}
		data, err := fetcher.FetchObject(ctx, cfg.MatchingConfigS3Key)
		if err != nil {
			return matching.Config{}, matching.Tables{}, fmt.Errorf("failed to fetch matching config: %w", err)
		}
		if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
			return matching.Config{}, matching.Tables{}, fmt.Errorf("failed to parse matching config: %w", err)
		}
	case cfg.MatchingConfigPath != "":
		if _, err := os.Stat(cfg.MatchingConfigPath); err == nil {
			v.SetConfigFile(cfg.MatchingConfigPath)
			if err := v.ReadInConfig(); err != nil {
				return matching.Config{}, matching.Tables{}, fmt.Errorf("failed to read matching config %s: %w", cfg.MatchingConfigPath, err)
			}
		}
	}

	return decodeMatching(v)
}

// ParseMatching decodes a YAML matching document without touching the environment
func ParseMatching(data []byte) (matching.Config, matching.Tables, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	setMatchingDefaults(v)
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return matching.Config{}, matching.Tables{}, fmt.Errorf("failed to parse matching config: %w", err)
	}
	return decodeMatching(v)
}

func newMatchingViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	setMatchingDefaults(v)

	v.SetEnvPrefix("PANTRYMATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func setMatchingDefaults(v *viper.Viper) {
	d := matching.DefaultConfig()
	v.SetDefault("engine.weights.key", d.Weights.Key)
	v.SetDefault("engine.weights.important", d.Weights.Important)
	v.SetDefault("engine.weights.flavor", d.Weights.Flavor)
	v.SetDefault("engine.multipliers.exact", d.Multipliers.Exact)
	v.SetDefault("engine.multipliers.substitute", d.Multipliers.Substitute)
	v.SetDefault("engine.min_score", d.MinScore)
	v.SetDefault("engine.require_key_ingredient", d.RequireKeyIngredient)
	v.SetDefault("engine.all_keys_bonus", d.AllKeysBonus)
	v.SetDefault("engine.tie_margin", d.TieMargin)
	v.SetDefault("engine.default_min_results", d.DefaultMinResults)
	v.SetDefault("engine.max_suggestions", d.MaxSuggestions)
	v.SetDefault("engine.pool_limit", d.PoolLimit)
}

func decodeMatching(v *viper.Viper) (matching.Config, matching.Tables, error) {
	var file matchingFile
	if err := v.Unmarshal(&file); err != nil {
		return matching.Config{}, matching.Tables{}, fmt.Errorf("failed to decode matching config: %w", err)
	}
	if err := file.Engine.Validate(); err != nil {
		return matching.Config{}, matching.Tables{}, fmt.Errorf("invalid engine settings: %w", err)
	}

	rules := file.Rules
	if len(rules) == 0 {
		rules = matching.DefaultRules()
	}
	table, err := matching.NewRuleTable(rules)
	if err != nil {
		return matching.Config{}, matching.Tables{}, fmt.Errorf("invalid category rules: %w", err)
	}

	subs := file.Substitutions
	if len(subs) == 0 {
		subs = matching.DefaultSubstitutions()
	}

	return file.Engine, matching.Tables{
		Rules:         table,
		Substitutions: matching.NewSubstitutionIndex(subs),
	}, nil
}
