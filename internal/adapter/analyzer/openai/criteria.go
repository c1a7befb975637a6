package openai

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bnema/clipr/internal/domain"
	"github.com/bnema/clipr/internal/infrastructure/logger"
)

//go:embed criteria/*.txt
var defaultCriteria embed.FS

// LoadCriteria reads each named criterion from dir/<name>.txt, falling back
// to the built-in text. Unknown names with no file are skipped.
func LoadCriteria(dir string, names []string) ([]domain.Criterion, error) {
	var out []domain.Criterion
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" || strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
			continue
		}
		content, err := readCriterion(dir, name)
		if err != nil {
			return nil, err
		}
		if content == "" {
			logger.Warn.Printf("criterion %q has no content, skipping", name)
			continue
		}
		out = append(out, domain.Criterion{Name: name, Content: content})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no criteria loaded from %v", domain.ErrNotConfigured, names)
	}
	return out, nil
}

func readCriterion(dir, name string) (string, error) {
	if dir != "" {
		data, err := os.ReadFile(filepath.Join(dir, name+".txt"))
		switch {
		case err == nil:
			return strings.TrimSpace(string(data)), nil
		case !errors.Is(err, fs.ErrNotExist):
			return "", fmt.Errorf("read criterion %s: %w", name, err)
		}
	}
	data, err := defaultCriteria.ReadFile("criteria/" + name + ".txt")
	if err != nil {
		return "", nil
	}
	return strings.TrimSpace(string(data)), nil
}
