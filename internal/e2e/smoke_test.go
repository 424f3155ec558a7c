package e2e

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmokeFlow(t *testing.T) {
	home := t.TempDir()
	binaryPath := buildBinary(t)
	server := newBackend(t)
	require.NoError(t, writeConfigFixture(home, server.URL))

	garment := filepath.Join(home, "shirt.png")
	person := filepath.Join(home, "me.png")
	require.NoError(t, os.WriteFile(garment, []byte("\x89PNG\r\n\x1a\ngarment"), 0o644))
	require.NoError(t, os.WriteFile(person, []byte("\x89PNG\r\n\x1a\nperson"), 0o644))

	_, stderr, err := runVTON(t, binaryPath, home, "auth", "set", "--token", "tok-123")
	require.NoError(t, err, "stderr: %s", stderr)

	stdout, stderr, err := runVTON(t, binaryPath, home, "tryon", "--garment", garment, "--person", person)
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "slots ready: 2/2")
	assert.Contains(t, stdout, "/media/results/smoke.png")

	stdout, stderr, err = runVTON(t, binaryPath, home, "status", "--json")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, `"result": "/media/results/smoke.png"`)
}

func newBackend(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	upload := func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusCreated)
		_, _ = fmt.Fprintf(w, `{"id":%d,"image":"/media%s","uploaded_at":"2026-10-16T12:00:00Z"}`, len(r.URL.Path), r.URL.Path)
	}
	mux.HandleFunc("POST /api/vton/upload-cloth/", upload)
	mux.HandleFunc("POST /api/vton/upload-human/", upload)
	mux.HandleFunc("POST /api/vton/virtual-try-on/", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = fmt.Fprint(w, `{"result":"/media/results/smoke.png"}`)
	})
	mux.HandleFunc("GET /api/vton/vton-history/", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = fmt.Fprint(w, `[]`)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "vton-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/vton")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build vton binary: %s", string(output))
	return binaryPath
}

func runVTON(t *testing.T, binaryPath, home string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Env = append(os.Environ(), "HOME="+home)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func repoRoot(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(wd, "..", ".."))
}

func writeConfigFixture(home, baseURL string) error {
	configDir := filepath.Join(home, ".vton")
	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return err
	}

	config := fmt.Sprintf(`[api]
base_url = %q

[credentials]
backend = "file"

[skeleton]
min_display = "10ms"
`, baseURL)

	return os.WriteFile(filepath.Join(configDir, "config.toml"), []byte(config), 0o600)
}
