package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"simple relative", "site/pages", false},
		{"single segment", "docs", false},
		{"dot", ".", false},
		{"redundant segments clean away", "site/./pages", false},
		{"empty", "", true},
		{"parent traversal", "../outside", true},
		{"embedded traversal", "site/../../outside", true},
		{"absolute", "/etc/passwd", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.path)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateTagName(t *testing.T) {
	tests := []struct {
		name    string
		tag     string
		wantErr bool
	}{
		{"two segments", "greeting-box", false},
		{"three segments", "site-nav-menu", false},
		{"digits allowed", "grid-2col", false},
		{"empty", "", true},
		{"no hyphen", "plain", true},
		{"uppercase", "Greeting-Box", true},
		{"leading hyphen", "-box", true},
		{"trailing hyphen", "box-", true},
		{"leading digit", "2col-grid", true},
		{"double hyphen", "a--b", true},
		{"underscore", "my_tag-x", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTagName(tt.tag)
			if tt.wantErr {
				assert.Error(t, err, "tag %q", tt.tag)
			} else {
				assert.NoError(t, err, "tag %q", tt.tag)
			}
		})
	}
}
