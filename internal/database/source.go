package database

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/locvowork/employee_directory/internal/domain"
)

//go:embed seed/employees.yaml
var embeddedSeed []byte

// Source supplies the records a directory session starts from. Sources are read once.
type Source interface {
	Load(ctx context.Context) ([]domain.Employee, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context) ([]domain.Employee, error)

func (f SourceFunc) Load(ctx context.Context) ([]domain.Employee, error) {
	return f(ctx)
}

type seedDocument struct {
	Employees []domain.Employee `yaml:"employees"`
}

// DecodeSeed reads a YAML seed document with a top-level "employees" list.
func DecodeSeed(r io.Reader) ([]domain.Employee, error) {
	var doc seedDocument
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("decode seed: %w", err)
	}
	return doc.Employees, nil
}

// EncodeSeed writes records in the format DecodeSeed reads.
func EncodeSeed(w io.Writer, records []domain.Employee) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(seedDocument{Employees: records}); err != nil {
		return fmt.Errorf("encode seed: %w", err)
	}
	return enc.Close()
}

// EmbeddedSource returns the sample directory compiled into the binary.
func EmbeddedSource() Source {
	return SourceFunc(func(context.Context) ([]domain.Employee, error) {
		return DecodeSeed(bytes.NewReader(embeddedSeed))
	})
}

// FileSource reads a YAML seed document from disk.
type FileSource struct {
	Path string
}

func (s FileSource) Load(_ context.Context) ([]domain.Employee, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	records, err := DecodeSeed(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Path, err)
	}
	return records, nil
}
