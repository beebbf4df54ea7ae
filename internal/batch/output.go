package batch

import (
	"fmt"
	"io"
	"os"

	"github.com/bytedance/sonic"
	"github.com/klauspost/compress/gzip"
)

// Write encodes rep as indented JSON, gzip-compressed when compress is set
func Write(w io.Writer, rep *Report, compress bool) error {
	if compress {
		gz := gzip.NewWriter(w)
		if err := encode(gz, rep); err != nil {
			gz.Close()
			return err
		}
		return gz.Close()
	}
	return encode(w, rep)
}

func encode(w io.Writer, rep *Report) error {
	enc := sonic.ConfigStd.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		return fmt.Errorf("batch: encode report: %w", err)
	}
	return nil
}

// WriteFile writes rep to path
func WriteFile(path string, rep *Report, compress bool) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("batch: %w", err)
	}
	if err := Write(f, rep, compress); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Read decodes a report written by Write
func Read(r io.Reader, compressed bool) (*Report, error) {
	if compressed {
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("batch: %w", err)
		}
		defer gz.Close()
		r = gz
	}
	var rep Report
	if err := sonic.ConfigStd.NewDecoder(r).Decode(&rep); err != nil {
		return nil, fmt.Errorf("batch: decode report: %w", err)
	}
	return &rep, nil
}
