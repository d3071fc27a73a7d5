package tcos

import (
	"fmt"
	"os"
	"sort"
)

// FileRecord is one build artifact considered for upload. Name is the
// output-root-relative identifier using forward slashes; it doubles as the
// local filter key and, prefixed, as the remote object key. Content is read
// lazily from Path when nil. retryCount is owned exclusively by the pipeline
// processing this record.
type FileRecord struct {
	Name    string
	Path    string
	Content []byte

	retryCount int
}

func (f *FileRecord) load() ([]byte, error) {
	if f.Content != nil {
		return f.Content, nil
	}
	if f.Path == "" {
		return nil, fmt.Errorf("file %s has no content and no source path", f.Name)
	}
	content, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", f.Path, err)
	}
	return content, nil
}

// AssetMap is an in-memory build output keyed by file name, as handed over
// by bundlers that never touch disk. RemoveMode deletes uploaded entries
// from it instead of the filesystem.
type AssetMap map[string][]byte

// AssetRecords converts an in-memory asset map into records in stable
// name order.
func AssetRecords(assets AssetMap) []*FileRecord {
	records := make([]*FileRecord, 0, len(assets))
	for name, content := range assets {
		records = append(records, &FileRecord{Name: name, Content: content})
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Name < records[j].Name })
	return records
}
