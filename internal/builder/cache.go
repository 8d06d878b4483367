package builder

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"chartspec/internal/ir"
	"chartspec/internal/options"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Cache memoizes builds by a digest of the chart options. It is safe for
// concurrent use.
type Cache struct {
	entries *lru.Cache[string, Result]
}

// NewCache creates a cache holding up to size builds.
func NewCache(size int) (*Cache, error) {
	entries, err := lru.New[string, Result](size)
	if err != nil {
		return nil, fmt.Errorf("builder cache: %w", err)
	}
	return &Cache{entries: entries}, nil
}

// Build returns the cached build of chart, compiling it on a miss. The
// returned spec is a copy the caller may modify.
func (c *Cache) Build(chart options.ChartOptions) (Result, string, error) {
	key, err := Digest(chart)
	if err != nil {
		return Result{}, "", err
	}
	if r, ok := c.entries.Get(key); ok {
		tracer().Debugf("cache hit %s", key[:12])
		return r.copy(), key, nil
	}
	r := Build(chart)
	c.entries.Add(key, r)
	return r.copy(), key, nil
}

// Len is the number of cached builds.
func (c *Cache) Len() int {
	return c.entries.Len()
}

func (r Result) copy() Result {
	return Result{Spec: ir.Clone(r.Spec), Skipped: append([]error(nil), r.Skipped...)}
}

// Digest is the hex SHA-256 of the serialized chart options. Every mark is
// serialized with its type so that two mark types with equal fields differ.
func Digest(chart options.ChartOptions) (string, error) {
	h := sha256.New()
	marks := chart.Marks
	chart.Marks = nil
	raw, err := ir.Marshal(chart, false)
	if err != nil {
		return "", fmt.Errorf("digest chart options: %w", err)
	}
	h.Write(raw)
	for i, m := range marks {
		raw, err := ir.Marshal(m, false)
		if err != nil {
			return "", fmt.Errorf("digest marks[%d]: %w", i, err)
		}
		fmt.Fprintf(h, "\n%s:", m.MarkType())
		h.Write(raw)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
