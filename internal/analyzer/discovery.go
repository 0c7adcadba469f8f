package analyzer

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// skipDirs are directory names never descended into during discovery.
var skipDirs = map[string]bool{
	"vendor":       true,
	"node_modules": true,
	"testdata":     true,
	"docs":         true,
	"scripts":      true,
}

// gatewayDirs mark a module as a network-facing proxy.
var gatewayDirs = map[string]bool{
	"gateway":  true,
	"gateways": true,
	"slack":    true,
	"webhooks": true,
}

// configDirs mark a module as configuration code.
var configDirs = map[string]bool{
	"config":   true,
	"settings": true,
}

// DiscoveredModule is one candidate file found during traversal, before its
// content has been read.
type DiscoveredModule struct {
	Path    string
	RelPath string
	Role    Role
}

// Discover walks root and returns every candidate Go source module in
// lexical path order, classified by role. Hidden directories, vendored code,
// testdata, and test files are excluded. A missing or unreadable root is an
// error: the caller must distinguish "no violations" from "nothing analyzed".
func Discover(root string) ([]DiscoveredModule, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving analysis root: %w", err)
	}
	if _, err := os.Stat(absRoot); err != nil {
		return nil, fmt.Errorf("analysis root: %w", err)
	}

	var modules []DiscoveredModule
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip inaccessible entries
		}
		if d.IsDir() {
			if path != absRoot && strings.HasPrefix(d.Name(), ".") {
				return fs.SkipDir
			}
			if skipDirs[d.Name()] {
				return fs.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(d.Name(), ".go") || strings.HasSuffix(d.Name(), "_test.go") {
			return nil
		}

		rel, relErr := filepath.Rel(absRoot, path)
		if relErr != nil {
			rel = path
		}
		modules = append(modules, DiscoveredModule{
			Path:    path,
			RelPath: filepath.ToSlash(rel),
			Role:    classify(rel, d.Name()),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", absRoot, err)
	}

	return modules, nil
}

// classify derives a module's role from its location. WalkDir visits paths in
// lexical order, so discovery output is deterministic regardless of how the
// OS lists directories.
func classify(relPath, fileName string) Role {
	for _, seg := range strings.Split(filepath.ToSlash(filepath.Dir(relPath)), "/") {
		if gatewayDirs[seg] {
			return RoleGateway
		}
		if configDirs[seg] {
			return RoleConfig
		}
	}
	base := strings.TrimSuffix(fileName, ".go")
	if base == "config" || base == "settings" {
		return RoleConfig
	}
	return RoleAgent
}
