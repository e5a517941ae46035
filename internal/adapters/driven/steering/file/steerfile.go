package file

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/plato/internal/core/domain"
)

// document is the decoded steer file.
type document struct {
	App        string
	Stop       bool
	Parameters map[string]float64
}

// readDocument decodes the steer file at path.
func readDocument(path string) (document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return document{}, err
	}
	return parseDocument(data)
}

// parseDocument decodes steer file contents. Parameter values may be
// integers, floats or booleans.
func parseDocument(data []byte) (document, error) {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return document{}, err
	}

	doc := document{Parameters: make(map[string]float64)}
	if app, ok := raw["app"].(string); ok {
		doc.App = app
	}
	if stop, ok := raw["stop"]; ok {
		b, ok := stop.(bool)
		if !ok {
			return document{}, fmt.Errorf("stop: expected boolean, got %T", stop)
		}
		doc.Stop = b
	}

	params, ok := raw["parameters"]
	if !ok {
		return doc, nil
	}
	table, ok := params.(map[string]any)
	if !ok {
		return document{}, fmt.Errorf("parameters: expected table, got %T", params)
	}
	for name, v := range table {
		f, err := toFloat(v)
		if err != nil {
			return document{}, fmt.Errorf("parameters.%q: %w", name, err)
		}
		doc.Parameters[name] = f
	}
	return doc, nil
}

func toFloat(v any) (float64, error) {
	switch x := v.(type) {
	case int64:
		return float64(x), nil
	case float64:
		return x, nil
	case bool:
		if x {
			return 1, nil
		}
		return 0, nil
	default:
		return 0, fmt.Errorf("expected number, got %T", v)
	}
}

// encodeValue stores int parameters as TOML integers.
func encodeValue(kind domain.ParameterKind, v float64) any {
	if kind == domain.ParameterInt && v == math.Trunc(v) {
		return int64(v)
	}
	return v
}

// writeDocument writes the file atomically so the watcher never sees a
// partially written document.
func writeDocument(path string, doc map[string]any) error {
	data, err := toml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding steer file: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".steer-*.toml")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Chmod(tmp.Name(), 0600); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// readRaw returns the file as a generic map, or an empty one if it does
// not exist yet.
func readRaw(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return map[string]any{}, nil
	}
	if err != nil {
		return nil, err
	}
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if raw == nil {
		raw = map[string]any{}
	}
	return raw, nil
}

// WriteValue sets one parameter in the steer file, keeping the rest.
func WriteValue(path, name string, value float64) error {
	raw, err := readRaw(path)
	if err != nil {
		return err
	}
	params, _ := raw["parameters"].(map[string]any)
	if params == nil {
		params = map[string]any{}
	}
	if value == math.Trunc(value) && math.Abs(value) < 1<<53 {
		params[name] = int64(value)
	} else {
		params[name] = value
	}
	raw["parameters"] = params
	return writeDocument(path, raw)
}

// RequestStop sets stop = true in the steer file.
func RequestStop(path string) error {
	raw, err := readRaw(path)
	if err != nil {
		return err
	}
	raw["stop"] = true
	return writeDocument(path, raw)
}

// ReadParameters returns the parameter values currently in the file.
func ReadParameters(path string) (map[string]float64, error) {
	doc, err := readDocument(path)
	if err != nil {
		return nil, err
	}
	return doc.Parameters, nil
}
