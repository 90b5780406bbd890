package rewrite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamouns/sitefix/pkg/rules"
)

func newDefaultRewriter(t *testing.T) *RuleRewriter {
	t.Helper()
	r, err := New(rules.Default())
	require.NoError(t, err)
	return r
}

func TestNew_InvalidRules(t *testing.T) {
	_, err := New([]rules.Rule{{Category: rules.CategoryStates}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validating rules")
}

func TestRewrite(t *testing.T) {
	tests := []struct {
		name           string
		content        string
		want           string
		wantChanged    bool
		wantCategories []rules.Category
	}{
		{
			name:           "em_dash_shipping_phrase",
			content:        "Open Daily — Nationwide Shipping",
			want:           "Open Daily ",
			wantChanged:    true,
			wantCategories: []rules.Category{rules.CategoryShippingPhrase},
		},
		{
			name:           "en_dash_shipping_phrase",
			content:        "Open Daily – Nationwide Shipping",
			want:           "Open Daily ",
			wantChanged:    true,
			wantCategories: []rules.Category{rules.CategoryShippingPhrase},
		},
		{
			name:           "hyphen_shipping_phrase",
			content:        "Open Daily - Nationwide Shipping",
			want:           "Open Daily ",
			wantChanged:    true,
			wantCategories: []rules.Category{rules.CategoryShippingPhrase},
		},
		{
			name:           "bare_shipping_phrase",
			content:        "Nationwide Shipping available now",
			want:           " available now",
			wantChanged:    true,
			wantCategories: []rules.Category{rules.CategoryShippingPhrase},
		},
		{
			name:           "state_list_with_oxford_comma",
			content:        "Serving NY, NJ, GA, & CT residents",
			want:           "Serving NJ residents",
			wantChanged:    true,
			wantCategories: []rules.Category{rules.CategoryStates},
		},
		{
			name:           "state_list_short",
			content:        "Delivering in NY, NJ, GA today",
			want:           "Delivering in NJ today",
			wantChanged:    true,
			wantCategories: []rules.Category{rules.CategoryStates},
		},
		{
			name:           "cuisine_specific_and_bare",
			content:        "Middle Eastern Restaurant with Middle Eastern flavor",
			want:           "Halal Restaurant with Halal flavor",
			wantChanged:    true,
			wantCategories: []rules.Category{rules.CategoryCuisine},
		},
		{
			name:           "cuisine_comma_joined_keywords",
			content:        "keywords: Middle,Eastern,Food",
			want:           "keywords: Halal,Food",
			wantChanged:    true,
			wantCategories: []rules.Category{rules.CategoryCuisine},
		},
		{
			name:           "cuisine_paired_label",
			content:        "Middle Eastern & Mediterranean",
			want:           "Halal",
			wantChanged:    true,
			wantCategories: []rules.Category{rules.CategoryCuisine},
		},
		{
			// The exact-case phrase is consumed by the literal rules first;
			// the link rules exist for case variants the literals miss.
			name:           "shipping_link_case_variant",
			content:        `<p>Visit <a href="/ship" aria-label="NATIONWIDE SHIPPING">NATIONWIDE SHIPPING</a> today</p>`,
			want:           `<p>Visit  today</p>`,
			wantChanged:    true,
			wantCategories: []rules.Category{rules.CategoryShippingLinks},
		},
		{
			name:           "shipping_link_in_list_item",
			content:        "<ul><li class=\"nav\">\n  <a href=\"/ship\" aria-label='NATIONWIDE SHIPPING'>NATIONWIDE SHIPPING</a>\n</li></ul>",
			want:           "<ul></ul>",
			wantChanged:    true,
			wantCategories: []rules.Category{rules.CategoryShippingLinks},
		},
		{
			name:           "shipping_link_exact_case_hits_literal_rule_first",
			content:        `<a href="/ship" aria-label="Nationwide Shipping">Nationwide Shipping</a>`,
			want:           `<a href="/ship" aria-label=""></a>`,
			wantChanged:    true,
			wantCategories: []rules.Category{rules.CategoryShippingPhrase},
		},
		{
			name:           "shipping_heading",
			content:        "<h2>\n  Nationwide\n  Shipping\n</h2><p>ok</p>",
			want:           "<p>ok</p>",
			wantChanged:    true,
			wantCategories: []rules.Category{rules.CategoryShippingHeadings},
		},
		{
			name:           "marketing_copy_now_variant",
			content:        "Now Shipping Hot Sauce Nationwide!",
			want:           "Hot Sauce Available!",
			wantChanged:    true,
			wantCategories: []rules.Category{rules.CategoryShippingCopy},
		},
		{
			name:           "marketing_copy_short_variant",
			content:        "We Are Shipping Hot Sauce Nationwide",
			want:           "We Are Hot Sauce Available",
			wantChanged:    true,
			wantCategories: []rules.Category{rules.CategoryShippingCopy},
		},
		{
			name:           "location_option_removed",
			content:        `<select><option value="mamouns-new-haven-ct">New Haven</option><option value="mamouns-hoboken-nj">Hoboken</option></select>`,
			want:           `<select><option value="mamouns-hoboken-nj">Hoboken</option></select>`,
			wantChanged:    true,
			wantCategories: []rules.Category{rules.CategoryLocationOptions},
		},
		{
			name:        "no_matches",
			content:     "<p>Falafel in NJ since 1971</p>",
			want:        "<p>Falafel in NJ since 1971</p>",
			wantChanged: false,
		},
		{
			name:        "empty_content",
			content:     "",
			want:        "",
			wantChanged: false,
		},
		{
			name:    "multiple_categories",
			content: "Middle Eastern Cuisine — Nationwide Shipping in NY, NJ, GA",
			want:    "Halal Cuisine  in NJ",
			// First-fired order follows rule order.
			wantChanged:    true,
			wantCategories: []rules.Category{rules.CategoryShippingPhrase, rules.CategoryStates, rules.CategoryCuisine},
		},
		{
			name:        "crlf_line_endings_preserved",
			content:     "Middle Eastern\r\nFalafel\r\n",
			want:        "Halal\r\nFalafel\r\n",
			wantChanged: true,
			wantCategories: []rules.Category{
				rules.CategoryCuisine,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rewriter := newDefaultRewriter(t)
			result, err := rewriter.Rewrite(context.Background(), []byte(tt.content))

			require.NoError(t, err)
			require.NotNil(t, result)
			assert.Equal(t, tt.content, string(result.OriginalContent))
			assert.Equal(t, tt.want, string(result.ModifiedContent))
			assert.Equal(t, tt.wantChanged, result.Changed)
			assert.Equal(t, tt.wantCategories, result.Categories)
		})
	}
}

func TestRewrite_Idempotent(t *testing.T) {
	rewriter := newDefaultRewriter(t)
	input := []byte("Middle Eastern Restaurant — Nationwide Shipping serving NY, NJ, GA, & CT")

	first, err := rewriter.Rewrite(context.Background(), input)
	require.NoError(t, err)
	require.True(t, first.Changed)

	second, err := rewriter.Rewrite(context.Background(), first.ModifiedContent)
	require.NoError(t, err)
	assert.False(t, second.Changed, "second pass must detect no further changes")
	assert.Equal(t, string(first.ModifiedContent), string(second.ModifiedContent))
}

func TestRewrite_InvalidUTF8(t *testing.T) {
	rewriter := newDefaultRewriter(t)

	t.Run("no_matches_reports_unchanged", func(t *testing.T) {
		input := []byte("Falafel\xff\xfein NJ")
		result, err := rewriter.Rewrite(context.Background(), input)
		require.NoError(t, err)
		assert.False(t, result.Changed, "invalid bytes alone must not trigger a rewrite")
	})

	t.Run("matches_substitute_replacement_char", func(t *testing.T) {
		input := []byte("Middle Eastern\xff menu")
		result, err := rewriter.Rewrite(context.Background(), input)
		require.NoError(t, err)
		assert.True(t, result.Changed)
		assert.Equal(t, "Halal� menu", string(result.ModifiedContent))
	})
}

func TestRewrite_CancelledContext(t *testing.T) {
	rewriter := newDefaultRewriter(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := rewriter.Rewrite(ctx, []byte("Nationwide Shipping"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cancelled")
}
