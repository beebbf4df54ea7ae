package batch

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
)

// Format is a job file encoding
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// FormatOf picks the format from a file extension
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("batch: unsupported job file %q (want .yaml, .yml, .toml or .json)", path)
	}
}

// Arg is a polynomial argument kept as the text it was written in, so
// decimal inputs are read at full precision rather than through float64.
// Job files may give it as a string or a bare number.
type Arg string

// UnmarshalJSON accepts a JSON string or number literal.
func (a *Arg) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := sonic.Unmarshal(b, &s); err != nil {
			return err
		}
		*a = Arg(s)
		return nil
	}
	if _, err := strconv.ParseFloat(string(b), 64); err != nil {
		return fmt.Errorf("x must be a string or a number, got %s", b)
	}
	*a = Arg(b)
	return nil
}

// UnmarshalYAML accepts a YAML string or number.
func (a *Arg) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var v interface{}
	if err := unmarshal(&v); err != nil {
		return err
	}
	switch x := v.(type) {
	case string:
		*a = Arg(x)
	case int64:
		*a = Arg(strconv.FormatInt(x, 10))
	case uint64:
		*a = Arg(strconv.FormatUint(x, 10))
	case float64:
		*a = Arg(strconv.FormatFloat(x, 'g', -1, 64))
	default:
		return fmt.Errorf("x must be a string or a number, got %T", v)
	}
	return nil
}

// UnmarshalText takes the raw TOML value, string or number.
func (a *Arg) UnmarshalText(b []byte) error {
	*a = Arg(b)
	return nil
}

// Job is one evaluation request
type Job struct {
	ID         string `json:"id,omitempty" yaml:"id" toml:"id"`
	Family     string `json:"family" yaml:"family" toml:"family"`
	N          int    `json:"n" yaml:"n" toml:"n"`
	X          Arg    `json:"x" yaml:"x" toml:"x"`
	Precision  uint   `json:"precision,omitempty" yaml:"precision" toml:"precision"`
	XPrecision uint   `json:"x_precision,omitempty" yaml:"x_precision" toml:"x_precision"`
	Rounding   string `json:"rounding,omitempty" yaml:"rounding" toml:"rounding"`
}

// File is the top level of a job file
type File struct {
	Jobs []Job `json:"jobs" yaml:"jobs" toml:"jobs"`
}

// Decode reads a job file in format f
func Decode(r io.Reader, f Format) ([]Job, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("batch: read jobs: %w", err)
	}

	var file File
	switch f {
	case FormatYAML:
		err = yaml.Unmarshal(data, &file)
	case FormatTOML:
		err = toml.Unmarshal(data, &file)
	case FormatJSON:
		err = sonic.Unmarshal(data, &file)
	default:
		return nil, fmt.Errorf("batch: unknown format %q", f)
	}
	if err != nil {
		return nil, fmt.Errorf("batch: decode %s jobs: %w", f, err)
	}
	if len(file.Jobs) == 0 {
		return nil, fmt.Errorf("batch: no jobs")
	}
	return file.Jobs, nil
}

// Load reads the job file at path, choosing the format by extension
func Load(path string) ([]Job, error) {
	f, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("batch: %w", err)
	}
	defer file.Close()
	return Decode(file, f)
}
