package model

import (
	"path/filepath"
	"regexp"
	"strings"
)

var indexSuffix = regexp.MustCompile(`\.\d+\.ht[12]$`)

// IndexPrefix reduces a concrete aligner index file such as genome.1.ht2
// to the prefix the aligner expects. Paths that do not look like an index
// file only lose their extension, and a bare prefix passes through
// unchanged.
func IndexPrefix(path string) string {
	base := filepath.Base(path)

	if loc := indexSuffix.FindStringIndex(base); loc != nil {
		return filepath.Join(filepath.Dir(path), base[:loc[0]])
	}

	return strings.TrimSuffix(path, filepath.Ext(path))
}
