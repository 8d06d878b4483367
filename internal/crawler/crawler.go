package crawler

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"chartspec/internal/options"

	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return tracing.Select("chartspec.crawler")
}

// Suffix marks the files ScanDir picks up.
const Suffix = ".chart.yaml"

// Crawler scans a directory for chart option files.
type Crawler struct {
	ignored []string
}

// NewCrawler creates a new crawler instance.
func NewCrawler() *Crawler {
	return &Crawler{
		ignored: []string{".git", "vendor", "node_modules", "testdata"},
	}
}

// ScanDir walks root and decodes every chart file found. It uses a callback
// to stream charts, preventing large memory buildup. Files that fail to
// decode are reported to onError (if set) and skipped.
func (c *Crawler) ScanDir(root string, onChart func(path string, chart options.ChartOptions), onError func(path string, err error)) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		// Skip ignored directories
		if d.IsDir() {
			for _, ign := range c.ignored {
				if d.Name() == ign && path != root {
					return filepath.SkipDir
				}
			}
			return nil
		}

		if !strings.HasSuffix(d.Name(), Suffix) {
			return nil
		}

		raw, err := os.ReadFile(path)
		if err == nil {
			var chart options.ChartOptions
			if chart, err = options.Decode(raw); err == nil {
				onChart(path, chart)
				return nil
			}
		}

		// Log and continue instead of failing the whole scan
		tracer().Errorf("skipping %s: %v", path, err)
		if onError != nil {
			onError(path, err)
		}
		return nil
	})
}
