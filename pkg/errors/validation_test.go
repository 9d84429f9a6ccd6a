package errors

import (
	"strings"
	"testing"
)

func TestValidateKey(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		wantErr bool
	}{
		{"simple", "ics", false},
		{"with digits", "mp2", false},
		{"with dash", "north-america", false},
		{"with underscore", "sub_period", false},
		{"empty", "", true},
		{"uppercase", "NALMA", true},
		{"leading digit", "1ics", true},
		{"space", "na lma", true},
		{"slash", "a/b", true},
		{"too long", strings.Repeat("a", 65), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateKey(tt.key)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateKey(%q) error = %v, wantErr %v", tt.key, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("ValidateKey(%q) code = %v, want %v", tt.key, GetCode(err), ErrCodeInvalidInput)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"relative", "data/ics.json", false},
		{"absolute", "/srv/strata/ics.json", false},
		{"empty", "", true},
		{"null byte", "data/\x00ics.json", true},
		{"control char", "data/\nics.json", true},
		{"too long", strings.Repeat("a", 501), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

func TestValidateRelativePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"relative", "data/ics.json", false},
		{"absolute", "/etc/passwd", true},
		{"traversal", "data/../../secret", true},
		{"backslash", "data\\ics.json", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRelativePath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRelativePath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidateRelativePath(%q) code = %v, want %v", tt.path, GetCode(err), ErrCodeInvalidPath)
			}
		})
	}
}
