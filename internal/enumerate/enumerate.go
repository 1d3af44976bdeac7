// Package enumerate implements the file-enumeration collaborator:
// enumerate(paths, exclusions) -> ordered (relative_name, mode, bytes).
//
// Traversal order is deterministic: lexicographic within each directory
// level, directories visited depth-first in source order.
package enumerate

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Result is one enumerated regular file.
type Result struct {
	Name  string // forward-slash relative path from the enumeration root
	Mode  uint32
	Bytes []byte
}

// Exclusions filters paths out of enumeration by glob pattern, matched
// against the relative name.
type Exclusions []string

// Matches reports whether relName matches any exclusion pattern.
func (ex Exclusions) Matches(relName string) bool {
	base := filepath.Base(relName)
	for _, pattern := range ex {
		if ok, _ := filepath.Match(pattern, relName); ok {
			return true
		}
		if ok, _ := filepath.Match(pattern, base); ok {
			return true
		}
	}
	return false
}

// Enumerate walks paths (files or directories) and returns every regular
// file found, in deterministic lexicographic-depth-first order, skipping
// anything matched by exclusions.
func Enumerate(paths []string, exclusions Exclusions) ([]Result, error) {
	var results []Result

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("enumerate: stat %s: %w", root, err)
		}

		if !info.IsDir() {
			relName := filepath.Base(root)
			if exclusions.Matches(relName) {
				continue
			}
			data, err := os.ReadFile(root)
			if err != nil {
				return nil, fmt.Errorf("enumerate: read %s: %w", root, err)
			}
			results = append(results, Result{Name: toForwardSlash(relName), Mode: uint32(info.Mode().Perm()), Bytes: data})
			continue
		}

		walked, err := walkDir(root, root, exclusions)
		if err != nil {
			return nil, err
		}
		results = append(results, walked...)
	}

	return results, nil
}

func walkDir(dir, base string, exclusions Exclusions) ([]Result, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("enumerate: readdir %s: %w", dir, err)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	var results []Result
	for _, entry := range entries {
		full := filepath.Join(dir, entry.Name())
		rel, err := filepath.Rel(base, full)
		if err != nil {
			return nil, fmt.Errorf("enumerate: relativize %s: %w", full, err)
		}
		relName := toForwardSlash(rel)

		if exclusions.Matches(relName) {
			continue
		}

		if entry.IsDir() {
			sub, err := walkDir(full, base, exclusions)
			if err != nil {
				return nil, err
			}
			results = append(results, sub...)
			continue
		}

		if !entry.Type().IsRegular() {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("enumerate: stat %s: %w", full, err)
		}
		data, err := os.ReadFile(full)
		if err != nil {
			return nil, fmt.Errorf("enumerate: read %s: %w", full, err)
		}

		results = append(results, Result{Name: relName, Mode: uint32(info.Mode().Perm()), Bytes: data})
	}

	return results, nil
}

func toForwardSlash(p string) string {
	return strings.ReplaceAll(p, string(filepath.Separator), "/")
}
