// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/nikstur/bootspec-1/cmd/bootspec/cli"
	"github.com/nikstur/bootspec-1/lib/bootspec"
	"github.com/nikstur/bootspec-1/lib/bootspec/generation"
	v1 "github.com/nikstur/bootspec-1/lib/bootspec/v1"
	"github.com/nikstur/bootspec-1/lib/codec"
	"github.com/nikstur/bootspec-1/lib/config"
)

// configParams is embedded by every command that reads a config file.
type configParams struct {
	ConfigPath string `json:"config" flag:"config" desc:"path to bootspec.yaml (default: $BOOTSPEC_CONFIG)"`
}

// documentParams is embedded by every command that reads a bootspec
// document.
type documentParams struct {
	configParams
	CBORInput bool `json:"cbor" flag:"cbor" desc:"input is CBOR instead of JSON"`
	HexInput  bool `json:"hex"  flag:"hex,x" desc:"input is hex-encoded (implies --cbor)"`
}

// record is the resolved current-schema record every command works
// on. Extensions are kept as a generic map so unknown tool data is
// shown and re-encoded rather than dropped.
type record = bootspec.BootJSON[v1.Extensions]

// environment carries what a command needs after flag parsing.
type environment struct {
	config *config.Config
	logger *slog.Logger
	stdin  io.Reader
	stdout io.Writer
}

// loadConfig selects the config file: --config wins, then
// BOOTSPEC_CONFIG, then built-in defaults.
func loadConfig(path string) (*config.Config, error) {
	var cfg *config.Config
	var err error
	switch {
	case path != "":
		cfg, err = config.LoadFile(path)
	case os.Getenv(config.EnvironmentVariable) != "":
		cfg, err = config.Load()
	default:
		cfg = config.Default()
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// newEnvironment loads config and builds the command logger for the
// process's standard streams.
func newEnvironment(params configParams, command string) (*environment, error) {
	cfg, err := loadConfig(params.ConfigPath)
	if err != nil {
		return nil, err
	}
	return &environment{
		config: cfg,
		logger: cli.NewCommandLogger(cfg.LogLevel()).With("command", command),
		stdin:  os.Stdin,
		stdout: os.Stdout,
	}, nil
}

// readGeneration reads and decodes the input document into its
// generation envelope.
func (e *environment) readGeneration(args []string, params documentParams) (generation.Generation[v1.Extensions], error) {
	data, err := readInput(args, e.stdin, params.HexInput)
	if err != nil {
		return nil, err
	}
	return e.decodeDocument(data, params.CBORInput || params.HexInput)
}

// decodeDocument decodes JSON or CBOR bytes into the generation
// envelope.
func (e *environment) decodeDocument(data []byte, cborInput bool) (generation.Generation[v1.Extensions], error) {
	var decoded generation.Generation[v1.Extensions]
	var err error
	if cborInput {
		data, err = codec.Decompress(data)
		if err != nil {
			return nil, err
		}
		decoded, err = generation.DecodeCBOR[v1.Extensions](data)
	} else {
		decoded, err = generation.Decode[v1.Extensions](data)
	}
	if err != nil {
		return nil, err
	}

	e.logger.Debug("decoded bootspec document",
		"schema_version", decoded.SchemaVersion(),
		"known", generation.Known(decoded.SchemaVersion()),
		"bytes", len(data),
	)
	return decoded, nil
}

// readRecord reads the input document and resolves it to the current
// schema.
func (e *environment) readRecord(args []string, params documentParams) (record, error) {
	decoded, err := e.readGeneration(args, params)
	if err != nil {
		return record{}, err
	}
	return e.resolve(decoded)
}

// resolve converts the envelope to the current record, logging
// unsupported generations.
func (e *environment) resolve(decoded generation.Generation[v1.Extensions]) (record, error) {
	resolved, err := bootspec.Resolve[v1.Extensions](decoded)
	if err != nil {
		e.logger.Warn("unsupported bootspec generation",
			"schema_version", decoded.SchemaVersion(),
			"supported_version", bootspec.SchemaVersion,
		)
		return record{}, err
	}
	return resolved, nil
}
