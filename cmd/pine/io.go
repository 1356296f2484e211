package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fxamacker/cbor/v2"
	"github.com/klauspost/compress/zstd"
	"github.com/tidwall/jsonc"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Dentosal/pinecone/schema"
)

func loadSchema(path string) (*schema.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema: %w", err)
	}
	s, err := schema.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse schema %s: %w", path, err)
	}
	return s, nil
}

// readInput reads a file, or stdin when path is empty or "-".
func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

// writeOutput writes to a file, or stdout when path is empty or "-".
func writeOutput(path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func zstdCompress(data []byte) ([]byte, error) {
	w, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	defer w.Close()
	return w.EncodeAll(data, nil), nil
}

func zstdDecompress(data []byte) ([]byte, error) {
	r, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	out, err := r.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd: %w", err)
	}
	logger.Debug("decompressed input",
		zap.Int("compressed", len(data)),
		zap.Int("raw", len(out)))
	return out, nil
}

// renderValue marshals a decoded value in the requested output format.
func renderValue(v any, format string) ([]byte, error) {
	switch format {
	case "json":
		out, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(out, '\n'), nil
	case "yaml":
		return yaml.Marshal(v)
	case "cbor":
		return cbor.Marshal(v)
	default:
		return nil, fmt.Errorf("unknown output format %q (want json, yaml or cbor)", format)
	}
}

// parseValueDoc reads a value document as YAML, JSON or JSONC.
func parseValueDoc(data []byte) (any, error) {
	trimmed := 0
	for trimmed < len(data) && (data[trimmed] == ' ' || data[trimmed] == '\t' || data[trimmed] == '\n' || data[trimmed] == '\r') {
		trimmed++
	}
	if trimmed < len(data) && (data[trimmed] == '{' || data[trimmed] == '[' || data[trimmed] == '/') {
		data = jsonc.ToJSON(data)
	}
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("parse value document: %w", err)
	}
	return v, nil
}
