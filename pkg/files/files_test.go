package files

import (
	"os"
	"path/filepath"
	"testing"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	tempDir := t.TempDir()
	oldWd, _ := os.Getwd()
	t.Cleanup(func() { os.Chdir(oldWd) })
	if err := os.Chdir(tempDir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	return tempDir
}

func TestInitProjectStructure(t *testing.T) {
	chdirTemp(t)

	if ProjectExists() {
		t.Fatal("ProjectExists() = true before init")
	}
	if err := InitProjectStructure(); err != nil {
		t.Fatalf("InitProjectStructure failed: %v", err)
	}
	if !ProjectExists() {
		t.Error("ProjectExists() = false after init")
	}
	if _, err := os.Stat(RecipesDir); os.IsNotExist(err) {
		t.Errorf("Expected directory %s does not exist", RecipesDir)
	}
}

func TestLoadEnv(t *testing.T) {
	chdirTemp(t)

	if err := LoadEnv(); err != nil {
		t.Fatalf("LoadEnv without .env: %v", err)
	}

	if err := os.WriteFile(EnvFile, []byte("RECIPES_TEST_ONLY=from-dotenv\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("RECIPES_TEST_ONLY") })

	if err := LoadEnv(); err != nil {
		t.Fatalf("LoadEnv: %v", err)
	}
	if got := os.Getenv("RECIPES_TEST_ONLY"); got != "from-dotenv" {
		t.Errorf("RECIPES_TEST_ONLY = %q, want from-dotenv", got)
	}
}

func TestOpenLogCreatesDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "app.log")

	f, err := OpenLog(path)
	if err != nil {
		t.Fatalf("OpenLog: %v", err)
	}
	defer f.Close()

	if _, err := f.WriteString("hello\n"); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("log file missing: %v", err)
	}
}
