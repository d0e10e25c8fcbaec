package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vodeneev/pokepaste/internal/pkg/models"
)

const cliPaste = `Pikachu (F) @ Light Ball
Ability: Static
Level: 50
EVs: 4 HP / 252 SpA / 252 Spe
Timid Nature
IVs: 0 Atk
- Thunderbolt
- Volt Switch`

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := execute(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func pasteServer(t *testing.T) string {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/good/json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.PasteDocument{
			Paste: cliPaste, Title: "Mouse", Author: "red", Notes: "Format: gen9ou",
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	cfg := fmt.Sprintf("fetcher:\n  base_url: %s\n  timeout: 5s\n", srv.URL)
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))
	return cfgPath
}

func TestNoArgsPrintsUsage(t *testing.T) {
	code, stdout, stderr := runCLI(t)
	assert.Equal(t, 1, code)
	assert.Contains(t, stdout+stderr, "Usage:")
	assert.NotContains(t, stderr, "error:")
}

func TestTextMode(t *testing.T) {
	code, stdout, stderr := runCLI(t, "--config", "", "--text", cliPaste)
	require.Equal(t, 0, code, stderr)

	var team models.Team
	require.NoError(t, json.Unmarshal([]byte(stdout), &team))
	require.Len(t, team.Pokemon, 1)
	m := team.Pokemon[0]
	assert.Equal(t, "Pikachu", m.Name)
	assert.Equal(t, models.GenderFemale, m.Gender)
	assert.Equal(t, "Timid", m.Nature)
	assert.Equal(t, 0, m.IVs.Attack)
	assert.Equal(t, []string{"Thunderbolt", "Volt Switch"}, m.Moves)
}

func TestFileModeSummary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "team.txt")
	require.NoError(t, os.WriteFile(path, []byte(cliPaste), 0o644))

	code, stdout, stderr := runCLI(t, "--config", "", "--file", path, "--output", "summary")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "1. Pikachu (Female) @ Light Ball")
	assert.Contains(t, stdout, "Nature: Timid (+Spe -Atk)")
}

func TestFileModeMissingFile(t *testing.T) {
	code, _, stderr := runCLI(t, "--config", "", "--file", filepath.Join(t.TempDir(), "nope.txt"))
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "error: failed to read paste file")
}

func TestEmptyPasteFails(t *testing.T) {
	code, stdout, stderr := runCLI(t, "--config", "", "--text", "   ")
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Equal(t, "error: no valid pokemon found in paste\n", stderr)
}

func TestUnknownOutput(t *testing.T) {
	code, _, stderr := runCLI(t, "--config", "", "--text", cliPaste, "--output", "xml")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, `unknown output "xml"`)
}

func TestURLMode(t *testing.T) {
	cfgPath := pasteServer(t)

	code, stdout, stderr := runCLI(t, "--config", cfgPath, "good")
	require.Equal(t, 0, code, stderr)

	var team models.Team
	require.NoError(t, json.Unmarshal([]byte(stdout), &team))
	assert.Equal(t, "Mouse", team.Title)
	assert.Equal(t, "red", team.Author)
	assert.Equal(t, "gen9ou", team.Format)
	assert.Equal(t, "good", team.Metadata.OriginalURL)
}

func TestURLModeHTTPError(t *testing.T) {
	cfgPath := pasteServer(t)

	code, stdout, stderr := runCLI(t, "--config", cfgPath, "missing")
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Equal(t, "error: HTTP 404: Not Found\n", stderr)
}

func TestURLModeBatch(t *testing.T) {
	cfgPath := pasteServer(t)

	code, stdout, stderr := runCLI(t, "--config", cfgPath, "good", "missing")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "error: 1 of 2 pastes failed")

	var entries []batchEntry
	require.NoError(t, json.Unmarshal([]byte(stdout), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "good", entries[0].URL)
	assert.True(t, entries[0].Result.Success)
	assert.Equal(t, "missing", entries[1].URL)
	assert.Equal(t, "HTTP 404: Not Found", entries[1].Result.Error)
}

func TestStoreRequiresDSN(t *testing.T) {
	t.Setenv("POSTGRES_DSN", "")
	code, _, stderr := runCLI(t, "--config", "", "--text", cliPaste, "--store")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "--store needs postgres.dsn")
}
