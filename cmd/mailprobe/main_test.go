package main

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mailprobe/pkg/corpus"
	"mailprobe/pkg/domain"
)

func TestLoadConfig_MissingFileFallsBack(t *testing.T) {
	cfg, err := loadConfig("non-existent-config.yml")
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.Searches, "built-in defaults used")
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	tmpFile, err := os.CreateTemp("", "invalid-config-*.yml")
	require.NoError(t, err)
	defer os.Remove(tmpFile.Name())

	_, err = tmpFile.WriteString("invalid: yaml: content: [")
	require.NoError(t, err)
	tmpFile.Close()

	_, err = loadConfig(tmpFile.Name())
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to load config")
}

func writeTestConfig(t *testing.T, dir, extra string) string {
	t.Helper()
	path := filepath.Join(dir, "mailprobe.yml")
	content := fmt.Sprintf("report:\n  output_dir: %q\n  charts: false\n%s", dir, extra)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestAnalyzeCommand_Execute(t *testing.T) {
	dir := t.TempDir()
	opts.Config = writeTestConfig(t, dir, "")

	created := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	posts := []domain.Post{
		{URL: "u1", Source: "r/gmail", Title: "How do I organize my cluttered Gmail inbox?",
			Body: "my cluttered inbox is hopeless", Score: 42, NumComments: 7, CreatedAt: created},
		{URL: "u2", Source: "r/productivity", Title: "Best turkey recipe",
			Body: "thanksgiving ideas", Score: 5, NumComments: 1, CreatedAt: created},
	}
	corpusPath := filepath.Join(dir, "corpus.csv")
	require.NoError(t, corpus.Write(corpusPath, posts))

	cmd := AnalyzeCommand{Input: corpusPath, NoCharts: true}
	require.NoError(t, cmd.Execute(nil))

	matches, err := filepath.Glob(filepath.Join(dir, "mailprobe_report_*.txt"))
	require.NoError(t, err)
	require.Len(t, matches, 1)

	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "EMAIL PRODUCTIVITY PROBLEM ANALYSIS REPORT")
	assert.Contains(t, text, "Total posts analyzed: 1", "irrelevant post filtered out")
}

func TestAnalyzeCommand_EmptyCorpusProducesNoDataReport(t *testing.T) {
	dir := t.TempDir()
	opts.Config = writeTestConfig(t, dir, "")

	corpusPath := filepath.Join(dir, "corpus.csv")
	require.NoError(t, corpus.Write(corpusPath, nil))

	cmd := AnalyzeCommand{Input: corpusPath, NoCharts: true}
	require.NoError(t, cmd.Execute(nil))

	matches, err := filepath.Glob(filepath.Join(dir, "mailprobe_report_*.txt"))
	require.NoError(t, err)
	require.Len(t, matches, 1)

	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), "No data to analyze.")
	assert.NotContains(t, string(data), "NaN")
}

func TestAnalyzeCommand_MissingCorpus(t *testing.T) {
	dir := t.TempDir()
	opts.Config = writeTestConfig(t, dir, "")

	cmd := AnalyzeCommand{Input: filepath.Join(dir, "nope.csv")}
	err := cmd.Execute(nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, corpus.ErrNotFound)
}

func TestCollectCommand_Execute(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"children":[{"data":{
			"title":"Cluttered inbox help","selftext":"too many emails","score":42,
			"num_comments":7,"created_utc":1741600800,
			"permalink":"/r/gmail/comments/abc/cluttered_inbox_help/"}}]}}`))
	}))
	defer server.Close()

	dir := t.TempDir()
	extra := fmt.Sprintf(`source:
  base_url: %q
  rate_limit: 1s
database:
  dsn: "file:%s/test.db?mode=rwc"
searches:
  - subreddit: gmail
    query: organize
`, server.URL, dir)
	opts.Config = writeTestConfig(t, dir, extra)

	out := filepath.Join(dir, "corpus.csv")
	cmd := CollectCommand{Out: out}
	require.NoError(t, cmd.Execute(nil))

	posts, err := corpus.Read(out)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "Cluttered inbox help", posts[0].Title)

	// second run collects the same post, the corpus stays deduplicated
	require.NoError(t, cmd.Execute(nil))
	posts, err = corpus.Read(out)
	require.NoError(t, err)
	assert.Len(t, posts, 1)
}

func TestSetupLog(t *testing.T) {
	t.Run("debug mode enabled", func(t *testing.T) {
		setupLog(true)
	})

	t.Run("debug mode disabled", func(t *testing.T) {
		setupLog(false)
	})

	t.Run("with secrets", func(t *testing.T) {
		setupLog(true, "secret1", "secret2")
	})
}
