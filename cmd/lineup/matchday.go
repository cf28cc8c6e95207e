package main

import (
	"errors"
	"fmt"

	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/okian/lineup/internal/config"
	"github.com/okian/lineup/internal/domain/model"
)

// matchday is the input file of the one-shot commands.
type matchday struct {
	Team      string          `json:"team"`
	Roster    []model.Player  `json:"roster"`
	Formation model.Formation `json:"formation"`
}

// loadMatchday reads a YAML or JSON matchday file. Field names follow the
// JSON API.
func loadMatchday(path string) (matchday, error) {
	if path == "" {
		return matchday{}, errors.New("missing matchday file (-f)")
	}
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), config.ParserFor(path)); err != nil {
		return matchday{}, fmt.Errorf("read %s: %w", path, err)
	}
	var md matchday
	if err := k.UnmarshalWithConf("", &md, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return matchday{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return md, nil
}
