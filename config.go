package tcos

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// Defaults applied by NewUploadConfig for any Options field left unset.
const (
	DefaultExclude = `\.html$`
	DefaultInclude = `.*`
	DefaultRetry   = 3
)

// COSOptions carries the bucket credentials and location. The core never
// inspects these beyond handing them to the store client.
type COSOptions struct {
	SecretID  string
	SecretKey string
	Bucket    string
	Region    string
	// Endpoint overrides the default https://cos.<region>.myqcloud.com,
	// mainly for tests against S3-compatible stand-ins.
	Endpoint string
}

// Options is the user-facing override set. Pointer fields distinguish
// "not set" from an explicit zero value so the merge stays field-by-field
// instead of reflective.
type Options struct {
	COS         COSOptions
	Exclude     string
	Include     string
	EnableLog   *bool
	IgnoreError *bool
	RemoveMode  *bool
	BaseDir     string
	Project     string
	Retry       *int
	ExistCheck  *bool
	Gzip        *bool
}

// UploadConfig is the resolved configuration for one orchestrator run.
// It is never mutated after NewUploadConfig returns it.
type UploadConfig struct {
	COS         COSOptions
	Exclude     *regexp.Regexp
	Include     *regexp.Regexp
	EnableLog   bool
	IgnoreError bool
	RemoveMode  bool
	BaseDir     string
	Project     string
	Retry       int
	ExistCheck  bool
	Gzip        bool
}

// NewUploadConfig merges the supplied overrides over the defaults.
// A negative retry count is normalized to 0, meaning one attempt and
// no retry.
func NewUploadConfig(opts Options) (UploadConfig, error) {
	cfg := UploadConfig{
		COS:        opts.COS,
		BaseDir:    opts.BaseDir,
		Project:    opts.Project,
		Retry:      DefaultRetry,
		ExistCheck: true,
	}

	excludePattern := DefaultExclude
	if opts.Exclude != "" {
		excludePattern = opts.Exclude
	}
	exclude, excludeErr := regexp.Compile(excludePattern)
	if excludeErr != nil {
		return cfg, fmt.Errorf("compiling exclude pattern %q: %w", excludePattern, excludeErr)
	}
	cfg.Exclude = exclude

	includePattern := DefaultInclude
	if opts.Include != "" {
		includePattern = opts.Include
	}
	include, includeErr := regexp.Compile(includePattern)
	if includeErr != nil {
		return cfg, fmt.Errorf("compiling include pattern %q: %w", includePattern, includeErr)
	}
	cfg.Include = include

	if opts.EnableLog != nil {
		cfg.EnableLog = *opts.EnableLog
	}
	if opts.IgnoreError != nil {
		cfg.IgnoreError = *opts.IgnoreError
	}
	if opts.RemoveMode != nil {
		cfg.RemoveMode = *opts.RemoveMode
	}
	if opts.Retry != nil {
		cfg.Retry = *opts.Retry
	}
	if cfg.Retry < 0 {
		cfg.Retry = 0
	}
	if opts.ExistCheck != nil {
		cfg.ExistCheck = *opts.ExistCheck
	}
	if opts.Gzip != nil {
		cfg.Gzip = *opts.Gzip
	}

	return cfg, nil
}

// RemoteKey derives the full object key for a selected file name. Keys are
// always joined with forward slashes regardless of the host path separator.
func (c UploadConfig) RemoteKey(name string) string {
	return joinKey(c.BaseDir, c.Project, name)
}

func joinKey(parts ...string) string {
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.Trim(filepath.ToSlash(part), "/")
		if part != "" {
			segments = append(segments, part)
		}
	}
	return strings.Join(segments, "/")
}
