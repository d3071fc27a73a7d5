package tcos

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeOutputFile(t *testing.T, dir, rel, content string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(rel))
	assert.Nil(t, os.MkdirAll(filepath.Dir(path), os.ModePerm))
	assert.Nil(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCollectOutputFiles(t *testing.T) {
	outputDir := t.TempDir()
	writeOutputFile(t, outputDir, "index.html", "<html></html>")
	writeOutputFile(t, outputDir, "assets/app.js", "content")
	writeOutputFile(t, outputDir, "assets/deep/style.css", "content")

	records, collectErr := CollectOutputFiles(outputDir)

	assert.Nil(t, collectErr)
	assert.Equal(t, []string{"assets/app.js", "assets/deep/style.css", "index.html"}, recordNames(records))
	for _, record := range records {
		assert.NotEmpty(t, record.Path)
		assert.Nil(t, record.Content)
	}
}

func TestCollectOutputFilesMissingDir(t *testing.T) {
	_, collectErr := CollectOutputFiles(filepath.Join(t.TempDir(), "does-not-exist"))

	assert.NotNil(t, collectErr)
}

func TestBatchRemoveModeDeletesLocalFiles(t *testing.T) {
	outputDir := t.TempDir()
	jsPath := writeOutputFile(t, outputDir, "assets/app.js", "content")
	htmlPath := writeOutputFile(t, outputDir, "index.html", "<html></html>")

	records, collectErr := CollectOutputFiles(outputDir)
	assert.Nil(t, collectErr)

	mockStore := NewMockStore()
	uploader := newTestUploader(mockStore, Options{
		ExistCheck: boolPtr(false),
		RemoveMode: boolPtr(true),
	})

	run, runErr := uploader.Run(context.Background(), records, RunOptions{})

	assert.Nil(t, runErr)
	assert.Nil(t, run.Err)

	_, jsStatErr := os.Stat(jsPath)
	assert.True(t, os.IsNotExist(jsStatErr))

	// excluded markup never uploads, so it survives cleanup
	_, htmlStatErr := os.Stat(htmlPath)
	assert.Nil(t, htmlStatErr)
}

func TestUploadLoadsContentLazily(t *testing.T) {
	outputDir := t.TempDir()
	writeOutputFile(t, outputDir, "app.js", "lazy content")

	records, collectErr := CollectOutputFiles(outputDir)
	assert.Nil(t, collectErr)

	mockStore := NewMockStore()
	uploader := newTestUploader(mockStore, Options{ExistCheck: boolPtr(false)})

	outcome := uploader.processFile(context.Background(), records[0], 1, 1)

	assert.Nil(t, outcome.Err)
	assert.Equal(t, len("lazy content"), mockStore.PutRequests[0].Size)
}
