// Package config provides configuration helpers and TOML parsing.
package config

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Counter CounterConfig `toml:"counter"`
	History HistoryConfig `toml:"history"`
	Log     LogConfig     `toml:"log"`
}

// CounterConfig maps counter settings.
type CounterConfig struct {
	Unit     *string `toml:"unit"`
	Encoding *string `toml:"encoding"`
	Glob     *bool   `toml:"glob"`
}

// HistoryConfig maps run history settings.
type HistoryConfig struct {
	Enabled *bool   `toml:"enabled"`
	Path    *string `toml:"path"`
}

// LogConfig maps diagnostic logging settings.
type LogConfig struct {
	Level  *string `toml:"level"`
	Format *string `toml:"format"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}

// StringOr returns *value, or fallback when value is unset.
func StringOr(value *string, fallback string) string {
	if value == nil {
		return fallback
	}
	return *value
}

// BoolOr returns *value, or fallback when value is unset.
func BoolOr(value *bool, fallback bool) bool {
	if value == nil {
		return fallback
	}
	return *value
}

// GridFile is a matrix operand stored as TOML.
type GridFile struct {
	Grid [][]float64 `toml:"grid"`
}

// LoadGrid reads the grid array from a TOML operand file.
func LoadGrid(path string) ([][]float64, error) {
	var gf GridFile
	if _, err := toml.DecodeFile(path, &gf); err != nil {
		return nil, fmt.Errorf("failed to decode matrix %s: %w", path, err)
	}
	if len(gf.Grid) == 0 {
		return nil, fmt.Errorf("matrix %s has no grid", path)
	}
	return gf.Grid, nil
}

// EncodeGrid writes grid to w in the operand file format.
func EncodeGrid(w io.Writer, grid [][]float64) error {
	if err := toml.NewEncoder(w).Encode(GridFile{Grid: grid}); err != nil {
		return fmt.Errorf("failed to encode matrix: %w", err)
	}
	return nil
}

// SaveGrid writes grid to path as a TOML operand file.
func SaveGrid(path string, grid [][]float64) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create matrix file: %w", err)
	}
	writer := bufio.NewWriter(file)
	if err := EncodeGrid(writer, grid); err != nil {
		_ = file.Close()
		return err
	}
	if err := writer.Flush(); err != nil {
		_ = file.Close()
		return fmt.Errorf("failed to flush matrix file: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close matrix file: %w", err)
	}
	return nil
}
