package tcos

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func recordNames(records []*FileRecord) []string {
	names := make([]string, 0, len(records))
	for _, record := range records {
		names = append(names, record.Name)
	}
	return names
}

func TestSelectDefaultExcludesMarkup(t *testing.T) {
	cfg, _ := NewUploadConfig(Options{})
	files := []*FileRecord{
		{Name: "index.html"},
		{Name: "assets/app.js"},
		{Name: "assets/style.css"},
	}

	selected := SelectFiles(files, cfg)

	assert.Equal(t, []string{"assets/app.js", "assets/style.css"}, recordNames(selected))
}

func TestSelectExcludeWinsOverInclude(t *testing.T) {
	cfg, _ := NewUploadConfig(Options{
		Exclude: `\.html$`,
		Include: `index\.html`,
	})
	files := []*FileRecord{{Name: "index.html"}}

	selected := SelectFiles(files, cfg)

	assert.Len(t, selected, 0)
}

func TestSelectIncludeFilters(t *testing.T) {
	cfg, _ := NewUploadConfig(Options{Include: `\.js$`})
	files := []*FileRecord{
		{Name: "assets/app.js"},
		{Name: "assets/style.css"},
		{Name: "favicon.ico"},
	}

	selected := SelectFiles(files, cfg)

	assert.Equal(t, []string{"assets/app.js"}, recordNames(selected))
}

func TestSelectEmptyResultIsValid(t *testing.T) {
	cfg, _ := NewUploadConfig(Options{Exclude: `.*`})
	files := []*FileRecord{
		{Name: "index.html"},
		{Name: "assets/app.js"},
	}

	selected := SelectFiles(files, cfg)

	assert.NotNil(t, selected)
	assert.Len(t, selected, 0)
}
