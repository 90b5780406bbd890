// Copyright 2025 Mamoun's Restaurants
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package scan

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔍 Scanner discovers eligible markup files under a root directory
type Scanner struct {
	// Root is the directory to walk
	Root string

	// ExtensionGlobs are base-name patterns a file must match (e.g. "*.html")
	ExtensionGlobs []string

	// ExcludeSubstrings skip any file whose full path contains one of them
	ExcludeSubstrings []string
}

// 🏭 New creates a Scanner
func New(root string, extensionGlobs, excludeSubstrings []string) *Scanner {
	return &Scanner{
		Root:              root,
		ExtensionGlobs:    extensionGlobs,
		ExcludeSubstrings: excludeSubstrings,
	}
}

// Scan walks the root and returns eligible file paths in walk order.
// Discovery is read-only: an unreadable entry is logged and skipped, and
// only a failure on the root itself fails the scan.
func (s *Scanner) Scan(ctx context.Context) ([]string, error) {
	logger := zerolog.Ctx(ctx)

	var files []string
	err := filepath.WalkDir(s.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == s.Root {
				return errors.Errorf("reading scan root %s: %w", path, err)
			}
			logger.Warn().Err(err).Str("path", path).Msg("skipping unreadable entry")
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !s.matchesExtension(filepath.Base(path)) {
			return nil
		}
		if s.isExcluded(path) {
			logger.Debug().Str("path", path).Msg("excluded by path filter")
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, errors.Errorf("walking %s: %w", s.Root, err)
	}

	logger.Debug().Int("count", len(files)).Str("root", s.Root).Msg("scan complete")
	return files, nil
}

func (s *Scanner) matchesExtension(base string) bool {
	for _, glob := range s.ExtensionGlobs {
		// Patterns are fixed at build time; a malformed one is a programmer
		// error and simply never matches.
		if ok, err := doublestar.Match(glob, base); err == nil && ok {
			return true
		}
	}
	return false
}

func (s *Scanner) isExcluded(path string) bool {
	for _, sub := range s.ExcludeSubstrings {
		if strings.Contains(path, sub) {
			return true
		}
	}
	return false
}
