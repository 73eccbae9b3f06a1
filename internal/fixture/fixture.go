// Package fixture loads the on-disk lockfile corpora used by the
// benchmark CLI, the way the teacher's lockfile_test.go
// getFixture helper loads testdata for its own package tests.
package fixture

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Corpus is one loaded fixture: its name (relative to the testdata
// root) and its raw bytes.
type Corpus struct {
	Name    string
	Content []byte
}

// Load reads every *.lock file directly under dir, sorted by name so
// repeated runs are directly comparable.
func Load(dir string) ([]Corpus, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to list fixtures in %s", dir)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lock" {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	corpora := make([]Corpus, 0, len(names))
	for _, name := range names {
		content, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, errors.Wrapf(err, "unable to read fixture %s", name)
		}
		corpora = append(corpora, Corpus{Name: name, Content: content})
	}
	return corpora, nil
}

// NewRunID tags one benchmark invocation so repeated runs are
// distinguishable in a JSON report.
func NewRunID() string {
	return uuid.New().String()
}
