package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// sectionAppliers decode one top-level YAML section over a fresh copy of
// its defaults and install it on the target.
//
//nolint:gochecknoglobals // lookup table
var sectionAppliers = map[string]func(target *Config, node *yaml.Node) error{
	"logging": func(c *Config, n *yaml.Node) error {
		return replaceSection(&c.Logging, New().Logging, n)
	},
	"engine": func(c *Config, n *yaml.Node) error {
		return replaceSection(&c.Engine, New().Engine, n)
	},
	"factors": func(c *Config, n *yaml.Node) error {
		return replaceSection(&c.Factors, New().Factors, n)
	},
	"valuation": func(c *Config, n *yaml.Node) error {
		return replaceSection(&c.Valuation, New().Valuation, n)
	},
	"output": func(c *Config, n *yaml.Node) error {
		return replaceSection(&c.Output, New().Output, n)
	},
}

func replaceSection[T any](dst *T, defaults T, node *yaml.Node) error {
	if err := node.Decode(&defaults); err != nil {
		return err
	}
	*dst = defaults
	return nil
}

// ShallowMergeYAML overlays the YAML file at path onto target one
// top-level section at a time. A section present in the file replaces
// the whole target section; fields it omits take built-in defaults, not
// the target's previous values. Sections absent from the file and
// unknown keys are ignored.
func ShallowMergeYAML(target *Config, path string) error {
	if target == nil {
		return errors.New("ShallowMergeYAML: nil target")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config overlay %s: %w", path, err)
	}

	var sections map[string]yaml.Node
	if err = yaml.Unmarshal(data, &sections); err != nil {
		return fmt.Errorf("parsing config overlay %s: %w", path, err)
	}

	for name, node := range sections {
		apply, ok := sectionAppliers[name]
		if !ok {
			continue
		}
		if err = apply(target, &node); err != nil {
			return fmt.Errorf("config overlay section %q: %w", name, err)
		}
	}
	return nil
}
