package secrets

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "key")
	if err := os.WriteFile(path, []byte("  file-secret \n"), 0o600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	got, err := Load(Source{Name: "api key", File: path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got != "file-secret" {
		t.Fatalf("expected the trimmed file content, got %q", got)
	}
}

func TestLoadFilePrecedesEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key")
	if err := os.WriteFile(path, []byte("from-file"), 0o600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	t.Setenv("TEST_SECRET", "from-env")

	got, err := Load(Source{Name: "api key", File: path, Env: "TEST_SECRET"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got != "from-file" {
		t.Fatalf("expected the file to win, got %q", got)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("TEST_SECRET_ENV", "env-secret")

	got, err := Load(Source{Name: "api key", Env: "TEST_SECRET_ENV", Value: "inline"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got != "env-secret" {
		t.Fatalf("expected the environment to win over the inline value, got %q", got)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		src  Source
	}{
		{"nothing configured", Source{Name: "api key"}},
		{"missing file", Source{Name: "api key", File: filepath.Join(os.TempDir(), "definitely-missing-secret")}},
		{"blank value", Source{Name: "api key", Value: "   "}},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if _, err := Load(tc.src); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestLoadEmptyFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "empty")
	if err := os.WriteFile(path, []byte("   \n"), 0o600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	if _, err := Load(Source{Name: "api key", File: path}); err == nil {
		t.Fatal("expected an error for an empty secret file")
	}
}
