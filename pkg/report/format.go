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
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/mamouns/sitefix/pkg/rules"
)

// Formatter renders run events as console lines. It is a pure function
// layer so output can be tested without capturing stdout.
type Formatter interface {
	// FormatStart formats the opening lines of a run
	FormatStart(root string, fileCount int) string

	// FormatChanged formats one changed-file line with its categories
	FormatChanged(relPath string, categories []rules.Category, dryRun bool) string

	// FormatError formats a per-file failure line
	FormatError(relPath string, err error) string

	// FormatProbe formats the marker dump for an index.html file
	FormatProbe(relPath, sample string, markers map[string]bool) string

	// FormatSummary formats the end-of-run total
	FormatSummary(changed int, dryRun bool) string
}

// DefaultFormatter provides the standard console formatting
type DefaultFormatter struct{}

// NewDefaultFormatter creates a DefaultFormatter
func NewDefaultFormatter() *DefaultFormatter {
	return &DefaultFormatter{}
}

// FormatStart formats the working directory and discovery count
func (f *DefaultFormatter) FormatStart(root string, fileCount int) string {
	return fmt.Sprintf("Working in: %s\nFound %d markup files", root, fileCount)
}

// FormatChanged formats a changed file with its sorted category set
func (f *DefaultFormatter) FormatChanged(relPath string, categories []rules.Category, dryRun bool) string {
	verb := "Processed"
	if dryRun {
		verb = "Would process"
	}
	line := fmt.Sprintf("%s %s", verb, relPath)
	if len(categories) > 0 {
		line += fmt.Sprintf("\n    Changes: %s", color.CyanString(joinCategories(categories)))
	}
	return line
}

// FormatError formats a per-file failure
func (f *DefaultFormatter) FormatError(relPath string, err error) string {
	return fmt.Sprintf("ERROR: %s: %v", relPath, err)
}

// FormatProbe formats the first-chunk marker dump for a well-known file
func (f *DefaultFormatter) FormatProbe(relPath, sample string, markers map[string]bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "DEBUG - first %d chars of %s:\n", len(sample), relPath)
	fmt.Fprintf(&b, "%q\n", sample)

	names := make([]string, 0, len(markers))
	for name := range markers {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&b, "Has %q: %t\n", name, markers[name])
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatSummary formats the changed-file total
func (f *DefaultFormatter) FormatSummary(changed int, dryRun bool) string {
	if dryRun {
		return fmt.Sprintf("Would process %d files with changes", changed)
	}
	return fmt.Sprintf("Processed %d files with changes", changed)
}

// joinCategories dedups, sorts and comma-joins category labels. The set is
// unordered by contract, so sorting keeps output stable.
func joinCategories(categories []rules.Category) string {
	seen := map[rules.Category]bool{}
	labels := make([]string, 0, len(categories))
	for _, c := range categories {
		if seen[c] {
			continue
		}
		seen[c] = true
		labels = append(labels, string(c))
	}
	sort.Strings(labels)
	return strings.Join(labels, ", ")
}
