package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var defaultSeed []byte

type seedFile struct {
	Books []seedBook `yaml:"books"`
}

// seedBook distinguishes an omitted reviews key from an explicit empty list.
type seedBook struct {
	ISBN    string    `yaml:"isbn"`
	Title   string    `yaml:"title"`
	Author  string    `yaml:"author"`
	Reviews *[]Review `yaml:"reviews"`
}

func DefaultSeed() ([]Book, error) {
	return LoadSeed(bytes.NewReader(defaultSeed))
}

func LoadSeedFile(path string) ([]Book, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed: %w", err)
	}
	defer f.Close()

	books, err := LoadSeed(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return books, nil
}

// LoadSeed decodes a YAML catalog. Books without a reviews key start with
// no review list at all.
func LoadSeed(r io.Reader) ([]Book, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f seedFile
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("decode seed: empty document")
		}
		return nil, fmt.Errorf("decode seed: %w", err)
	}

	out := make([]Book, 0, len(f.Books))
	for i, sb := range f.Books {
		if sb.ISBN == "" || sb.Title == "" || sb.Author == "" {
			return nil, fmt.Errorf("seed book #%d: isbn, title and author are required", i)
		}
		b := Book{ISBN: sb.ISBN, Title: sb.Title, Author: sb.Author}
		if sb.Reviews != nil {
			b.Reviews = append([]Review{}, *sb.Reviews...)
		}
		out = append(out, b)
	}
	return out, nil
}
