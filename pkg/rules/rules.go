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

package rules

import (
	"regexp"

	"gitlab.com/tozd/go/errors"
)

// 🏷️ Category labels which class of substitution fired on a file. It is
// used only for reporting, never for control flow.
type Category string

const (
	CategoryShippingPhrase   Category = "removed Nationwide Shipping"
	CategoryStates           Category = "replaced states"
	CategoryCuisine          Category = "replaced Middle Eastern"
	CategoryShippingLinks    Category = "removed shipping links"
	CategoryShippingHeadings Category = "removed shipping headings"
	CategoryShippingCopy     Category = "updated shipping copy"
	CategoryLocationOptions  Category = "removed non-NJ options"
)

// 🔄 Rule is a single ordered substitution: either a literal substring
// replacement or a regular-expression substitution. Exactly one of From or
// Pattern is set.
type Rule struct {
	Category Category       // Reporting label
	From     string         // Literal substring to replace (literal rules)
	Pattern  *regexp.Regexp // Compiled pattern (regex rules)
	To       string         // Replacement text, may be empty
}

// IsRegex reports whether the rule is pattern-based.
func (r Rule) IsRegex() bool {
	return r.Pattern != nil
}

// 🔍 Validate checks that every rule has exactly one pattern form.
func Validate(rs []Rule) error {
	for i, r := range rs {
		if r.From == "" && r.Pattern == nil {
			return errors.Errorf("rule %d (%s): literal or pattern is required", i, r.Category)
		}
		if r.From != "" && r.Pattern != nil {
			return errors.Errorf("rule %d (%s): literal and pattern are mutually exclusive", i, r.Category)
		}
		if r.Category == "" {
			return errors.Errorf("rule %d: category is required", i)
		}
	}
	return nil
}

// Dash variants that may precede the shipping phrase.
const (
	emDash = "—"
	enDash = "–"
)

var (
	// Anchor elements whose aria-label is the shipping phrase, bare and
	// wrapped in a list item. The wrapped form must come first so the <li>
	// shell is removed along with the link.
	shippingLinkInItemRe = regexp.MustCompile(`(?is)<li[^>]*>\s*<a[^>]*aria-label=["']Nationwide Shipping["'][^>]*>Nationwide Shipping</a>\s*</li>`)
	shippingLinkRe       = regexp.MustCompile(`(?i)<a[^>]*aria-label=["']Nationwide Shipping["'][^>]*>Nationwide Shipping</a>`)

	// Top-level headings whose sole text is the shipping phrase, possibly
	// split across newlines.
	shippingHeadingRe = regexp.MustCompile(`(?i)<h[12][^>]*>\s*Nationwide\s+Shipping\s*</h[12]>`)

	// Dropdown options for the retired CT/NY/NYC/GA locations.
	locationOptionRe = regexp.MustCompile(`(?i)<option\s+value=["']mamouns-[^"']*-(?:ct|ny|nyc|ga)["'][^>]*>[^<]*</option>`)
)

// 🎯 Default returns the built-in rule list in application order. Order is
// load-bearing: specific phrasings must run before their generic catch-alls,
// and the dash-prefixed shipping variants before the bare phrase.
func Default() []Rule {
	return []Rule{
		// Shipping phrase, longest variant first.
		{Category: CategoryShippingPhrase, From: emDash + " Nationwide Shipping"},
		{Category: CategoryShippingPhrase, From: enDash + " Nationwide Shipping"},
		{Category: CategoryShippingPhrase, From: "- Nationwide Shipping"},
		{Category: CategoryShippingPhrase, From: "Nationwide Shipping"},

		// Service-area lists collapse to NJ. The bare variants subsume the
		// "in "-prefixed ones, but the full historical list is kept so every
		// phrasing seen on the site is covered explicitly.
		{Category: CategoryStates, From: "NY, NJ, GA, & CT", To: "NJ"},
		{Category: CategoryStates, From: "NY, NJ, GA & CT", To: "NJ"},
		{Category: CategoryStates, From: "NY, NJ, GA, CT", To: "NJ"},
		{Category: CategoryStates, From: "NY, NJ, GA", To: "NJ"},
		{Category: CategoryStates, From: "in NY, NJ, GA, & CT", To: "in NJ"},
		{Category: CategoryStates, From: "in NY, NJ, GA & CT", To: "in NJ"},
		{Category: CategoryStates, From: "in NY, NJ, GA, CT", To: "in NJ"},
		{Category: CategoryStates, From: "in NY, NJ, GA", To: "in NJ"},

		// Cuisine rename, most specific phrasing first so the bare catch-all
		// cannot pre-empt a compound label.
		{Category: CategoryCuisine, From: "Middle Eastern Restaurant", To: "Halal Restaurant"},
		{Category: CategoryCuisine, From: "Middle Eastern Cuisine", To: "Halal Cuisine"},
		{Category: CategoryCuisine, From: "Middle Eastern Food", To: "Halal Food"},
		{Category: CategoryCuisine, From: "Middle,Eastern,Restaurant", To: "Halal,Restaurant"},
		{Category: CategoryCuisine, From: "Middle,Eastern,Food", To: "Halal,Food"},
		{Category: CategoryCuisine, From: "Middle Eastern & Mediterranean", To: "Halal"},
		{Category: CategoryCuisine, From: "authentic Middle Eastern", To: "authentic Halal"},
		{Category: CategoryCuisine, From: "Middle Eastern", To: "Halal"},

		// Markup fragments.
		{Category: CategoryShippingLinks, Pattern: shippingLinkInItemRe},
		{Category: CategoryShippingLinks, Pattern: shippingLinkRe},
		{Category: CategoryShippingHeadings, Pattern: shippingHeadingRe},

		// Marketing copy. "Now Shipping" must run before the shorter phrase
		// or it would leave a stranded "Now ".
		{Category: CategoryShippingCopy, From: "Now Shipping Hot Sauce Nationwide", To: "Hot Sauce Available"},
		{Category: CategoryShippingCopy, From: "Shipping Hot Sauce Nationwide", To: "Hot Sauce Available"},

		{Category: CategoryLocationOptions, Pattern: locationOptionRe},
	}
}
