package errors

import (
	"strings"
	"testing"
)

func TestValidateProperty(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "gap", false},
		{"hyphenated", "grid-template-columns", false},
		{"vendor prefix", "-webkit-box-flex", false},
		{"custom property", "--xui-gap", false},
		{"custom mixed case", "--xuiGap", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 200), true},
		{"uppercase", "Gap", true},
		{"double hyphen inside", "grid--columns", true},
		{"trailing hyphen", "gap-", true},
		{"space", "grid columns", true},
		{"colon", "gap:", true},
		{"brace", "gap{", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateProperty(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateProperty(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidProperty) {
				t.Errorf("ValidateProperty(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidProperty)
			}
		})
	}
}

func TestValidateClass(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "xui", false},
		{"hyphenated", "xui-grid", false},
		{"underscore", "_hero", false},
		{"leading hyphen", "-x", false},

		{"empty", "", true},
		{"leading digit", "1col", true},
		{"dot", "a.b", true},
		{"space", "a b", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateClass(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateClass(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateValue(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"length", "16px", false},
		{"function", "repeat(3, minmax(0, 1fr))", false},
		{"quoted", `"a b"`, false},

		{"empty", "", true},
		{"blank", "   ", true},
		{"semicolon", "1px; color: red", true},
		{"closing brace", "1px }", true},
		{"opening brace", "{", true},
		{"style close", "</style>", true},
		{"newline", "1px\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateValue(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateValue(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateManifestFilename(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"toml", "xui.toml", false},
		{"yaml", "xui.yaml", false},
		{"yml", "xui.yml", false},

		{"empty", "", true},
		{"path", "dir/xui.toml", true},
		{"windows path", "dir\\xui.toml", true},
		{"json", "xui.json", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateManifestFilename(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateManifestFilename(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
