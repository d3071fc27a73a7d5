package tcos

// SelectFiles filters the candidate records down to the upload set. The
// exclude pattern is evaluated first and wins: a name matching both
// patterns is rejected. An empty result is valid and means nothing to
// upload.
func SelectFiles(files []*FileRecord, cfg UploadConfig) []*FileRecord {
	selected := make([]*FileRecord, 0, len(files))
	for _, file := range files {
		if cfg.Exclude != nil && cfg.Exclude.MatchString(file.Name) {
			continue
		}
		if cfg.Include != nil && !cfg.Include.MatchString(file.Name) {
			continue
		}
		selected = append(selected, file)
	}

	return selected
}
