package tcos

import (
	"os"
	"path/filepath"
	"sort"
)

// CollectOutputFiles snapshots a bundler output directory into file
// records. Names are output-root-relative and slash-normalized so they
// stay stable as both filter keys and remote key suffixes. Content is left
// unread; the upload pipeline loads it lazily.
func CollectOutputFiles(outputDir string) ([]*FileRecord, error) {
	records := make([]*FileRecord, 0)
	walkErr := filepath.Walk(outputDir, func(path string, f os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if f.IsDir() {
			return nil
		}
		rel, relErr := filepath.Rel(outputDir, path)
		if relErr != nil {
			return relErr
		}
		records = append(records, &FileRecord{Name: filepath.ToSlash(rel), Path: path})
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	// dispatch order, and with it the idx/total log lines, should not
	// depend on walk order quirks
	sort.Slice(records, func(i, j int) bool { return records[i].Name < records[j].Name })

	return records, nil
}
