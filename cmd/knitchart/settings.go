package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"knitchart/internal/driver"
	"knitchart/internal/project"
)

// settings are the persistent flags resolved against knitchart.toml.
type settings struct {
	color          uiMode
	quiet          bool
	timings        bool
	maxDiagnostics int
	manifest       *project.Manifest // nil when no knitchart.toml was found
	opts           driver.Options
}

// colorFor reports whether output written to w should be colorized.
func (s *settings) colorFor(w io.Writer) bool {
	return s.color.enabledFor(w)
}

// loadSettings reads the persistent flags and the manifest that applies to
// target (a pattern file or directory, or "" for the working directory).
func loadSettings(cmd *cobra.Command, target string) (*settings, error) {
	flags := cmd.Root().PersistentFlags()

	colorFlag, err := flags.GetString("color")
	if err != nil {
		return nil, fmt.Errorf("failed to get color flag: %w", err)
	}
	mode, err := readUIMode("color", colorFlag)
	if err != nil {
		return nil, err
	}
	quiet, err := flags.GetBool("quiet")
	if err != nil {
		return nil, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	timings, err := flags.GetBool("timings")
	if err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}
	maxDiagnostics, err := flags.GetInt("max-diagnostics")
	if err != nil {
		return nil, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	maxTokens, err := flags.GetInt("max-tokens")
	if err != nil {
		return nil, fmt.Errorf("failed to get max-tokens flag: %w", err)
	}
	if maxTokens < 0 {
		return nil, fmt.Errorf("--max-tokens must not be negative, got %d", maxTokens)
	}
	configPath, err := flags.GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}

	manifest, err := findManifest(configPath, target)
	if err != nil {
		return nil, err
	}
	vocab, err := manifest.Vocabulary()
	if err != nil {
		return nil, err
	}
	if maxTokens == 0 {
		maxTokens = manifest.MaxTokens()
	}

	return &settings{
		color:          mode,
		quiet:          quiet,
		timings:        timings,
		maxDiagnostics: maxDiagnostics,
		manifest:       manifest,
		opts: driver.Options{
			Vocabulary:     vocab,
			MaxTokens:      maxTokens,
			MaxDiagnostics: maxDiagnostics,
		},
	}, nil
}

// findManifest loads configPath when set, otherwise searches upwards from
// target. A missing manifest is not an error.
func findManifest(configPath, target string) (*project.Manifest, error) {
	if configPath != "" {
		return project.LoadManifestFile(configPath)
	}
	start, err := manifestSearchDir(target)
	if err != nil {
		return nil, err
	}
	manifest, ok, err := project.LoadManifest(start)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return manifest, nil
}

func manifestSearchDir(target string) (string, error) {
	if target == "" || target == "-" {
		return os.Getwd()
	}
	info, err := os.Stat(target)
	if err != nil {
		// the driver reports unreadable files itself
		return filepath.Dir(target), nil //nolint:nilerr
	}
	if info.IsDir() {
		return target, nil
	}
	return filepath.Dir(target), nil
}
