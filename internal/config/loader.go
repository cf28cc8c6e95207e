package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/okian/lineup/internal/domain/model"
	"github.com/okian/lineup/internal/domain/scoring"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "LINEUP_"

// FileEnv names the variable holding an optional config file path.
const FileEnv = EnvPrefix + "CONFIG"

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML, or JSON by extension) if LINEUP_CONFIG is set
//  3. env (prefix LINEUP_)
func Load(_ context.Context) (*Config, error) {
	k := koanf.New(".")

	if path := os.Getenv(FileEnv); path != "" {
		if err := k.Load(file.Provider(path), ParserFor(path)); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// LINEUP_SWAP_FLOOR -> swap_floor. Underscores are kept to match the koanf tags.
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, strings.ToLower(EnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}

	cfg := New()
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}
	fillTableDefaults(&cfg.Fitness)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ParserFor picks the koanf parser for a file by its extension.
func ParserFor(path string) koanf.Parser {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return json.Parser()
	}
	return yaml.Parser()
}

// fillTableDefaults restores the default entries of nested fitness tables.
// Unmarshalling merges the outer keys but replaces an overridden inner map
// whole, so a file setting category_compat.defender.midfielder would
// otherwise drop category_compat.defender.defender.
func fillTableDefaults(t *scoring.Tables) {
	def := scoring.DefaultTables()
	fillInner(t.CategoryCompat, def.CategoryCompat)
	fillInner(t.AttributeWeights, def.AttributeWeights)
}

func fillInner[K comparable](dst, def map[model.Category]map[K]float64) {
	if dst == nil {
		return
	}
	for cat, inner := range def {
		cur, ok := dst[cat]
		if !ok {
			continue
		}
		if cur == nil {
			cur = make(map[K]float64, len(inner))
			dst[cat] = cur
		}
		for k, v := range inner {
			if _, set := cur[k]; !set {
				cur[k] = v
			}
		}
	}
}
