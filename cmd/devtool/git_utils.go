package main

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// getChangedPackages lists the Go packages touched by uncommitted work.
// stagedOnly restricts the diff to the index, for pre-commit style use.
// A change to go.mod or go.sum widens the answer to ./... since a dependency
// bump can break any package.
func getChangedPackages(stagedOnly bool) ([]string, error) {
	var out string
	var err error

	if stagedOnly {
		//nolint:forbidigo
		out, err = getCommandOutput("git", "diff", "--cached", "--name-only", "--diff-filter=ACMR")
	} else {
		//nolint:forbidigo
		out, err = getCommandOutput("git", "diff", "HEAD", "--name-only", "--diff-filter=ACMR")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get changed files: %w", err)
	}
	if out == "" {
		return []string{}, nil
	}

	packageSet := make(map[string]bool)
	for _, file := range strings.Split(out, "\n") {
		file = strings.TrimSpace(file)
		if file == "" {
			continue
		}

		if file == "go.mod" || file == "go.sum" {
			return []string{"./..."}, nil
		}

		if !strings.HasSuffix(file, ".go") {
			continue
		}

		dir := filepath.ToSlash(filepath.Dir(file))
		if dir == "." {
			dir = "./"
		} else if !strings.HasPrefix(dir, "./") {
			dir = "./" + dir
		}
		packageSet[dir] = true
	}

	packages := make([]string, 0, len(packageSet))
	for pkg := range packageSet {
		packages = append(packages, pkg)
	}
	sort.Strings(packages)

	return packages, nil
}
