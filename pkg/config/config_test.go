package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, ".", cfg.Root)
	assert.Equal(t, []string{"*.html"}, cfg.Extensions)
	assert.Contains(t, cfg.Excludes, "signals")
	assert.Contains(t, cfg.Excludes, "schema.org")
	assert.Contains(t, cfg.Excludes, "fix_")
	assert.False(t, cfg.DryRun)
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		filename  string
		content   string
		want      *Config
		wantError string
	}{
		{
			name:     "yaml_full",
			filename: ".sitefix.yaml",
			content: `root: ./site
extensions:
  - "*.html"
  - "*.htm"
excludes:
  - signals
dry_run: true
`,
			want: &Config{
				Root:       "site",
				Extensions: []string{"*.html", "*.htm"},
				Excludes:   []string{"signals"},
				DryRun:     true,
			},
		},
		{
			name:     "yaml_defaults_fill_in",
			filename: ".sitefix.yml",
			content:  "root: ./site\n",
			want: &Config{
				Root:       "site",
				Extensions: []string{"*.html"},
				Excludes:   []string{"signals", "schema.org", "replace_", "update_", "fix_", "final_"},
			},
		},
		{
			name:      "yaml_unknown_field",
			filename:  ".sitefix.yaml",
			content:   "rules:\n  - nope\n",
			wantError: "parsing YAML",
		},
		{
			name:     "hcl_full",
			filename: ".sitefix.hcl",
			content: `root = "./site"
extensions = ["*.html"]
excludes = ["signals", "final_"]
dry_run = true
`,
			want: &Config{
				Root:       "site",
				Extensions: []string{"*.html"},
				Excludes:   []string{"signals", "final_"},
				DryRun:     true,
			},
		},
		{
			name:      "hcl_invalid_syntax",
			filename:  ".sitefix.hcl",
			content:   `root = `,
			wantError: "parsing HCL",
		},
		{
			name:      "yaml_empty_extension",
			filename:  ".sitefix.yaml",
			content:   "extensions:\n  - \" \"\n",
			wantError: "extensions[0] is empty",
		},
		{
			name:      "unsupported_format",
			filename:  ".sitefix.toml",
			content:   `root = "./site"`,
			wantError: "no parser found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, tt.filename)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			cfg, err := Load(context.Background(), path)

			if tt.wantError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantError)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), ".sitefix.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestConfig_String(t *testing.T) {
	cfg := Default()
	assert.Equal(t, ". [*.html] (rewrite)", cfg.String())

	cfg.DryRun = true
	assert.Contains(t, cfg.String(), "dry-run")
}
