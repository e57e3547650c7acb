package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestOutputResults(t *testing.T) {
	data := map[string]string{"title": "Soup"}

	tests := []struct {
		format  string
		want    string
		wantErr bool
	}{
		{"json", `"title": "Soup"`, false},
		{"yaml", "title: Soup", false},
		{"text", "map[title:Soup]", false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			err := OutputResults(&buf, tt.format, data)
			if (err != nil) != tt.wantErr {
				t.Fatalf("OutputResults() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("output %q does not contain %q", buf.String(), tt.want)
			}
		})
	}
}

func TestTruncateString(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"a long recipe title", 10, "a long ..."},
		{"crème brûlée", 8, "crème..."},
		{"abcdef", 2, "ab"},
	}
	for _, tt := range tests {
		if got := TruncateString(tt.in, tt.max); got != tt.want {
			t.Errorf("TruncateString(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}

func TestFormatBytes(t *testing.T) {
	if got := FormatBytes(512); got != "512 B" {
		t.Errorf("FormatBytes(512) = %q", got)
	}
	if got := FormatBytes(2048); got != "2.0 KiB" {
		t.Errorf("FormatBytes(2048) = %q", got)
	}
}

func TestFormatAge(t *testing.T) {
	if got := FormatAge(time.Time{}); got != "-" {
		t.Errorf("FormatAge(zero) = %q", got)
	}
	if got := FormatAge(time.Now().Add(-2 * time.Hour)); got != "2 hours ago" {
		t.Errorf("FormatAge(-2h) = %q", got)
	}
}

func TestTableFormatter(t *testing.T) {
	var buf bytes.Buffer
	tf := NewTableFormatter(&buf)
	tf.Header("TITLE", "STATUS")
	tf.Row("Soup", "succeeded")
	tf.Flush()

	out := buf.String()
	if !strings.Contains(out, "TITLE") || !strings.Contains(out, "Soup") {
		t.Errorf("unexpected table output:\n%s", out)
	}
}
