package workflowconfig

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"montage_service/internal/domain/workflow"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

// Decode reads a workflow definition payload without validating it. Unknown
// keys are rejected.
func Decode(data []byte) (workflow.Definition, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return workflow.Definition{}, fmt.Errorf("workflowconfig: definition payload is empty")
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var def workflow.Definition
	if err := dec.Decode(&def); err != nil {
		return workflow.Definition{}, fmt.Errorf("workflowconfig: decode definition: %w", err)
	}
	return def, nil
}

// Parse decodes and validates a workflow definition payload.
func Parse(data []byte) (*workflow.Config, error) {
	def, err := Decode(data)
	if err != nil {
		return nil, err
	}
	cfg, err := workflow.New(def)
	if err != nil {
		return nil, fmt.Errorf("workflowconfig: %w", err)
	}
	return cfg, nil
}

// Default returns the embedded workflow configuration.
func Default() (*workflow.Config, error) {
	return Parse(defaultYAML)
}

// DefaultDefinition returns a fresh copy of the embedded definition, for
// callers that derive a variant of the default workflow.
func DefaultDefinition() (workflow.Definition, error) {
	return Decode(defaultYAML)
}

// Load reads the workflow definition from path. An empty path or a missing
// file falls back to the embedded default.
func Load(path string) (*workflow.Config, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		log.Printf("[workflow][config] no WORKFLOW_CONFIG_PATH set; using embedded default")
		return Default()
	}
	data, err := os.ReadFile(trimmed)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Printf("[workflow][config] %s not found; using embedded default", trimmed)
			return Default()
		}
		return nil, fmt.Errorf("workflowconfig: read %s: %w", trimmed, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("workflowconfig: %s: %w", filepath.Clean(trimmed), err)
	}
	log.Printf("[workflow][config] loaded %s statuses=%d", filepath.Clean(trimmed), len(cfg.Statuses()))
	return cfg, nil
}
