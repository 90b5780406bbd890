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

package rewrite

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/mamouns/sitefix/pkg/rules"
)

// 📊 Result contains the outcome of rewriting one file's content
type Result struct {
	// OriginalContent is the raw content before any rewriting
	OriginalContent []byte

	// ModifiedContent is the content after all rules ran
	ModifiedContent []byte

	// Changed indicates the modified content differs from the (sanitized)
	// original and the file needs a write-back
	Changed bool

	// Categories is the deduplicated list of rule categories that fired,
	// in first-fired order
	Categories []rules.Category

	// ReplacementCount is the total number of individual substitutions
	ReplacementCount int
}

// 🔌 Rewriter applies an ordered rule list to file content
type Rewriter interface {
	// Rewrite applies the rules to content and reports what changed
	Rewrite(ctx context.Context, content []byte) (*Result, error)
}

// 📝 RuleRewriter implements Rewriter over a fixed rule list
type RuleRewriter struct {
	rules []rules.Rule
}

// 🏭 New creates a RuleRewriter, validating the rule list up front
func New(rs []rules.Rule) (*RuleRewriter, error) {
	if err := rules.Validate(rs); err != nil {
		return nil, errors.Errorf("validating rules: %w", err)
	}
	return &RuleRewriter{rules: rs}, nil
}

// Rewrite implements Rewriter. Undecodable byte sequences are replaced with
// U+FFFD before the rules run; change detection compares against the
// sanitized text, so a file whose only difference is invalid bytes is
// reported unchanged. Line-ending bytes pass through untouched.
func (r *RuleRewriter) Rewrite(ctx context.Context, content []byte) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Errorf("rewrite cancelled: %w", err)
	}

	original := strings.ToValidUTF8(string(content), "�")
	current := original

	result := &Result{
		OriginalContent: content,
	}
	fired := map[rules.Category]bool{}

	for _, rule := range r.rules {
		var next string
		var count int

		if rule.IsRegex() {
			count = len(rule.Pattern.FindAllStringIndex(current, -1))
			if count == 0 {
				continue
			}
			next = rule.Pattern.ReplaceAllString(current, rule.To)
		} else {
			count = strings.Count(current, rule.From)
			if count == 0 {
				continue
			}
			next = strings.ReplaceAll(current, rule.From, rule.To)
		}

		// A substitution that reproduces its input (e.g. replacing a string
		// with itself) still counts as a fired rule in the original script,
		// but it must not mark the file changed on its own.
		result.ReplacementCount += count
		if !fired[rule.Category] {
			fired[rule.Category] = true
			result.Categories = append(result.Categories, rule.Category)
		}
		current = next
	}

	result.ModifiedContent = []byte(current)
	result.Changed = current != original

	if result.Changed {
		zerolog.Ctx(ctx).Debug().
			Int("replacements", result.ReplacementCount).
			Int("categories", len(result.Categories)).
			Msg("content rewritten")
	}

	return result, nil
}
