package nomis

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/nomiskit/pkg/observability"
)

// Mapper rewrites human-readable dimension values into service codes.
type Mapper struct {
	metadata *MetadataCache
	logger   *log.Logger
}

func newMapper(md *MetadataCache, logger *log.Logger) *Mapper {
	return &Mapper{metadata: md, logger: logger}
}

// Resolve maps raw through the codelist of dimension in datasetID.
// An empty dimension returns raw unchanged. Text that matches no description
// passes through, so already-valid codes are accepted as is.
func (m *Mapper) Resolve(ctx context.Context, datasetID, dimension, raw string) (string, error) {
	if dimension == "" {
		return raw, nil
	}
	table, err := m.metadata.dimension(ctx, datasetID, dimension)
	if err != nil {
		return "", err
	}
	out := ResolveWith(table, raw)
	observability.Resolver().OnDimensionMapped(ctx, datasetID, dimension, out != raw)
	if out != raw {
		m.logger.Debug("mapped dimension value", "dataset", datasetID, "dimension", dimension, "from", raw, "to", out)
	}
	return out, nil
}

// ResolveWith replaces every occurrence of a description in raw with its code.
//
// Matching is literal and case-insensitive. raw is scanned once, left to
// right; at each position the longest matching description wins (equal
// lengths fall back to lexical order) and scanning resumes after the matched
// text, so substituted codes are never matched again.
func ResolveWith(table *CodeTable, raw string) string {
	subs := substitutions(table)
	if len(subs) == 0 || raw == "" {
		return raw
	}

	var b strings.Builder
	rest := raw
	for rest != "" {
		if n, code, ok := matchAt(rest, subs); ok {
			b.WriteString(code)
			rest = rest[n:]
			continue
		}
		_, size := utf8.DecodeRuneInString(rest)
		b.WriteString(rest[:size])
		rest = rest[size:]
	}
	return b.String()
}

type substitution struct {
	desc  string
	code  string
	runes int
}

// substitutions returns the table's non-empty descriptions, longest first.
func substitutions(table *CodeTable) []substitution {
	if table.Len() == 0 {
		return nil
	}
	subs := make([]substitution, 0, len(table.Rows))
	for _, r := range table.Rows {
		if r.Description == "" {
			continue
		}
		subs = append(subs, substitution{desc: r.Description, code: r.Value, runes: utf8.RuneCountInString(r.Description)})
	}
	slices.SortStableFunc(subs, func(a, b substitution) int {
		if c := cmp.Compare(b.runes, a.runes); c != 0 {
			return c
		}
		return strings.Compare(a.desc, b.desc)
	})
	return subs
}

// matchAt reports the first substitution whose description prefixes s,
// ignoring case, and how many bytes of s it consumed.
func matchAt(s string, subs []substitution) (int, string, bool) {
	for _, sub := range subs {
		if n, ok := foldPrefix(s, sub.desc); ok {
			return n, sub.code, true
		}
	}
	return 0, "", false
}

// foldPrefix compares prefix against the start of s rune by rune under
// Unicode case folding and returns the byte length of the matched part of s.
func foldPrefix(s, prefix string) (int, bool) {
	i := 0
	for _, pr := range prefix {
		if i >= len(s) {
			return 0, false
		}
		sr, size := utf8.DecodeRuneInString(s[i:])
		if !strings.EqualFold(string(sr), string(pr)) {
			return 0, false
		}
		i += size
	}
	return i, true
}
