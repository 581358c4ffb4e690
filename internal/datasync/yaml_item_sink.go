package datasync

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/retention/internal/srs"
)

type exportItem struct {
	ItemID       string  `yaml:"item_id"`
	ContentRef   string  `yaml:"content_ref"`
	Easiness     float64 `yaml:"easiness"`
	IntervalDays int     `yaml:"interval_days"`
	Repetitions  int     `yaml:"repetitions"`
	NextDue      string  `yaml:"next_due"`
	LastReviewed string  `yaml:"last_reviewed,omitempty"`
}

// YAMLItemSink writes an owner's items to <outputDir>/<owner>.yml.
type YAMLItemSink struct {
	outputDir string
}

// NewYAMLItemSink creates a new YAMLItemSink.
func NewYAMLItemSink(outputDir string) *YAMLItemSink {
	return &YAMLItemSink{outputDir: outputDir}
}

// WriteAll writes items and returns the written path.
func (s *YAMLItemSink) WriteAll(ownerID string, items []srs.Item) (string, error) {
	if !isPlainFileName(ownerID) {
		return "", fmt.Errorf("%w: owner %q cannot be used as a file name", srs.ErrInvalidArgument, ownerID)
	}
	if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	out := make([]exportItem, len(items))
	for i, it := range items {
		out[i] = exportItem{
			ItemID:       it.ID,
			ContentRef:   it.ContentRef,
			Easiness:     it.Easiness,
			IntervalDays: it.Interval,
			Repetitions:  it.Repetitions,
			NextDue:      it.NextDue.UTC().Format(time.RFC3339Nano),
		}
		if it.LastReviewed != nil {
			out[i].LastReviewed = it.LastReviewed.UTC().Format(time.RFC3339Nano)
		}
	}

	fileName := ownerID + ".yml"
	path := filepath.Join(s.outputDir, fileName)
	if err := writeYAML(path, out); err != nil {
		return "", fmt.Errorf("write %s: %w", fileName, err)
	}
	return path, nil
}

// isPlainFileName reports whether name stays inside the output directory.
func isPlainFileName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`) && filepath.Base(name) == name
}

func writeYAML(path string, data interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	enc := yaml.NewEncoder(f)
	defer func() { _ = enc.Close() }()
	return enc.Encode(data)
}
