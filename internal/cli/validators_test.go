package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidateImagePath(t *testing.T) {
	dir := t.TempDir()
	png := filepath.Join(dir, "dish.PNG")
	txt := filepath.Join(dir, "notes.txt")
	for _, p := range []string{png, txt} {
		if err := os.WriteFile(p, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	allowed := []string{".png", ".jpg"}

	tests := []struct {
		name    string
		path    string
		allowed []string
		wantErr bool
	}{
		{"allowed extension, any case", png, allowed, false},
		{"disallowed extension", txt, allowed, true},
		{"no restriction", txt, nil, false},
		{"missing", filepath.Join(dir, "gone.png"), allowed, true},
		{"directory", dir, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateImagePath(tt.path, tt.allowed)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateImagePath() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateEndpoint(t *testing.T) {
	tests := []struct {
		endpoint string
		wantErr  bool
	}{
		{"https://example.com/create-recipe/", false},
		{"http://localhost:8080/", false},
		{"", true},
		{"ftp://example.com/", true},
		{"example.com/create", true},
		{"https://", true},
	}

	for _, tt := range tests {
		t.Run(tt.endpoint, func(t *testing.T) {
			err := ValidateEndpoint(tt.endpoint)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEndpoint(%q) error = %v, wantErr %v", tt.endpoint, err, tt.wantErr)
			}
		})
	}
}

func TestValidateOutputFormat(t *testing.T) {
	for _, f := range []string{"text", "json", "yaml"} {
		if err := ValidateOutputFormat(f); err != nil {
			t.Errorf("ValidateOutputFormat(%q) = %v", f, err)
		}
	}
	if err := ValidateOutputFormat("xml"); err == nil {
		t.Error("expected error for xml")
	}
}
