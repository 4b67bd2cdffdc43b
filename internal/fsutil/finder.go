// Package fsutil provides file system helpers for catalog discovery.
package fsutil

import (
	"os"
	"sort"
	"strings"
)

// ListNamespace inspects a single directory level and returns the manifest
// files it contains plus the names of its subdirectories, both sorted. Names
// starting with "." or "_" are skipped on both sides, so editor droppings and
// deliberately private subtrees never enter a scan.
func ListNamespace(dir, extension string) (units, packages []string, err error) {
	if extension == "" {
		panic("fsutil: extension must not be empty")
	}

	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, err
	}

	for _, entry := range dirEntries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") {
			continue
		}
		if entry.IsDir() {
			packages = append(packages, name)
			continue
		}
		if strings.HasSuffix(name, extension) {
			units = append(units, name)
		}
	}

	sort.Strings(units)
	sort.Strings(packages)
	return units, packages, nil
}
