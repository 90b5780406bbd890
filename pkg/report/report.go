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

package report

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"

	"github.com/mamouns/sitefix/pkg/rules"
)

func init() {
	// The marker probe prints through pterm.Debug unconditionally.
	pterm.EnableDebugMessages()
}

// 📄 ChangedFile records one rewritten file for the run summary
type ChangedFile struct {
	Path       string           // Path relative to the scan root
	Categories []rules.Category // Deduplicated categories that fired
}

// 📊 Summary is the cross-file state of a run
type Summary struct {
	FilesFound   int           // Eligible files discovered
	FilesChanged int           // Files whose content changed
	FileErrors   int           // Files skipped after a processing error
	Changed      []ChangedFile // One entry per changed file
}

// 📢 Reporter prints run progress and tracks the summary. It is the only
// cross-file state a run carries.
type Reporter struct {
	root      string
	dryRun    bool
	formatter Formatter

	mu      sync.Mutex
	summary Summary
}

// 🏭 NewReporter creates a Reporter for a run rooted at root
func NewReporter(root string, dryRun bool, formatter Formatter) *Reporter {
	return &Reporter{
		root:      root,
		dryRun:    dryRun,
		formatter: formatter,
	}
}

// Start announces the run and records the discovery count.
func (r *Reporter) Start(ctx context.Context, fileCount int) {
	r.mu.Lock()
	r.summary.FilesFound = fileCount
	r.mu.Unlock()

	pterm.Info.WithPrefix(pterm.Prefix{Text: "📦"}).Println(r.formatter.FormatStart(r.root, fileCount))
	zerolog.Ctx(ctx).Debug().Int("files", fileCount).Str("root", r.root).Msg("run started")
}

// FileChanged records and prints a changed file.
func (r *Reporter) FileChanged(ctx context.Context, path string, categories []rules.Category) {
	rel := r.relPath(path)

	r.mu.Lock()
	r.summary.FilesChanged++
	r.summary.Changed = append(r.summary.Changed, ChangedFile{Path: rel, Categories: categories})
	r.mu.Unlock()

	pterm.Success.WithPrefix(pterm.Prefix{Text: "📝"}).Println(r.formatter.FormatChanged(rel, categories, r.dryRun))
	zerolog.Ctx(ctx).Info().Str("path", rel).Msg("file changed")
}

// FileError records and prints a per-file failure. The run continues.
func (r *Reporter) FileError(ctx context.Context, path string, err error) {
	rel := r.relPath(path)

	r.mu.Lock()
	r.summary.FileErrors++
	r.mu.Unlock()

	pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"}).Println(r.formatter.FormatError(rel, err))
	zerolog.Ctx(ctx).Error().Err(err).Str("path", rel).Msg("file skipped")
}

// MarkerProbe prints the first-chunk marker dump for a well-known file.
func (r *Reporter) MarkerProbe(ctx context.Context, path, sample string, markers map[string]bool) {
	rel := r.relPath(path)
	pterm.Debug.WithPrefix(pterm.Prefix{Text: "🔍"}).Println(r.formatter.FormatProbe(rel, sample, markers))
	zerolog.Ctx(ctx).Debug().Str("path", rel).Msg("marker probe")
}

// Finish prints the end-of-run total.
func (r *Reporter) Finish(ctx context.Context) {
	r.mu.Lock()
	changed := r.summary.FilesChanged
	r.mu.Unlock()

	pterm.Info.WithPrefix(pterm.Prefix{Text: "✅"}).Println(r.formatter.FormatSummary(changed, r.dryRun))
	zerolog.Ctx(ctx).Info().Int("changed", changed).Msg("run finished")
}

// Summary returns a copy of the run summary so far.
func (r *Reporter) Summary() Summary {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := r.summary
	s.Changed = append([]ChangedFile(nil), r.summary.Changed...)
	return s
}

// relPath renders a path relative to the scan root for display; paths
// outside the root fall back to their absolute form.
func (r *Reporter) relPath(path string) string {
	rel, err := filepath.Rel(r.root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}
