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

package operation

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// Marker probe constants. Every file with this base name gets a dump of its
// first chunk plus the presence of the three marker substrings, a quick
// sanity check that the scan is looking at real page content.
const (
	probeFileName   = "index.html"
	probeSampleSize = 500
)

var probeMarkers = []string{"Nationwide", "NY, NJ, GA", "Middle Eastern"}

// 📦 NewRewriteOperation creates the batch rewrite operation
func NewRewriteOperation(opts Options) (Operation, error) {
	if err := opts.Validate(); err != nil {
		return nil, errors.Errorf("invalid options: %w", err)
	}
	return &rewriteOperation{
		BaseOperation: NewBaseOperation(opts),
	}, nil
}

// 📦 rewriteOperation implements the batch rewrite
type rewriteOperation struct {
	BaseOperation
}

// Name implements Operation.
func (op *rewriteOperation) Name() string {
	return "rewrite"
}

// 🏃 Execute walks the tree and rewrites each eligible file in turn. Files
// are processed strictly one at a time in discovery order; a failure on one
// file never aborts the batch.
func (op *rewriteOperation) Execute(ctx context.Context) error {
	files, err := op.Scanner.Scan(ctx)
	if err != nil {
		return errors.Errorf("discovering files: %w", err)
	}

	op.Reporter.Start(ctx, len(files))

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return errors.Errorf("batch cancelled: %w", err)
		}
		// Per-file errors are reported and swallowed; the run continues.
		if err := op.processFile(ctx, file); err != nil {
			op.Reporter.FileError(ctx, file, err)
		}
	}

	op.Reporter.Finish(ctx)
	return nil
}

// 📄 processFile runs one file's read → transform → conditional write cycle.
// The content is held in memory only for the duration of this call.
func (op *rewriteOperation) processFile(ctx context.Context, file string) error {
	content, err := os.ReadFile(file)
	if err != nil {
		return errors.Errorf("reading file: %w", err)
	}

	if filepath.Base(file) == probeFileName {
		op.probe(ctx, file, content)
	}

	result, err := op.Rewriter.Rewrite(ctx, content)
	if err != nil {
		return errors.Errorf("transforming content: %w", err)
	}

	if !result.Changed {
		// Untouched files are never opened for writing, so their
		// timestamps stay as found.
		zerolog.Ctx(ctx).Debug().Str("path", file).Msg("unchanged")
		return nil
	}

	if !op.Config.DryRun {
		if err := op.writeBack(file, result.ModifiedContent); err != nil {
			return errors.Errorf("writing file: %w", err)
		}
	}

	op.Reporter.FileChanged(ctx, file, result.Categories)
	return nil
}

// writeBack overwrites the file in place, keeping its existing mode.
func (op *rewriteOperation) writeBack(file string, content []byte) error {
	mode := os.FileMode(0644)
	if info, err := os.Stat(file); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(file, content, mode); err != nil {
		return errors.Errorf("overwriting %s: %w", file, err)
	}
	return nil
}

// probe emits the first-chunk marker dump for a well-known file.
func (op *rewriteOperation) probe(ctx context.Context, file string, content []byte) {
	sample := truncateUTF8(strings.ToValidUTF8(string(content), "�"), probeSampleSize)

	markers := make(map[string]bool, len(probeMarkers))
	for _, marker := range probeMarkers {
		markers[marker] = strings.Contains(sample, marker)
	}

	op.Reporter.MarkerProbe(ctx, file, sample, markers)
}

// truncateUTF8 cuts s to at most n bytes without splitting a rune.
func truncateUTF8(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
