// Package tcos uploads static-site build output to a Tencent COS bucket
// as a post-build step: select files, optionally skip ones already present
// remotely, upload the rest with bounded per-file retry, and aggregate the
// per-file outcomes into one batch verdict.
package tcos

import (
	"context"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

// Uploader is the batch orchestrator. The store handle and configuration
// are shared read-only across all concurrent per-file pipelines.
type Uploader struct {
	store RemoteStore
	cfg   UploadConfig
	log   logrus.FieldLogger
}

// NewUploader wires an orchestrator. A nil logger gets a default one whose
// level follows cfg.EnableLog: info lines are only emitted when verbose
// logging is on, warnings and errors always are.
func NewUploader(store RemoteStore, cfg UploadConfig, log logrus.FieldLogger) *Uploader {
	if log == nil {
		logger := logrus.New()
		if cfg.EnableLog {
			logger.SetLevel(logrus.DebugLevel)
		} else {
			logger.SetLevel(logrus.WarnLevel)
		}
		log = logger
	}

	return &Uploader{
		store: store,
		cfg:   cfg,
		log:   log.WithField("component", "tcos-uploader"),
	}
}

// FileOutcome is one file's terminal state within a batch.
type FileOutcome struct {
	Name      string
	RemoteKey string
	Skipped   bool
	Attempts  int
	Location  string
	ETag      string
	Err       error
}

// BatchRun aggregates a whole batch. Err holds the first terminal per-file
// failure in dispatch order, wrapped in *BatchError; Suppressed marks that
// the failure was swallowed because IgnoreError was set.
type BatchRun struct {
	Outcomes   []*FileOutcome
	Err        error
	Suppressed bool
}

// RunOptions are the integration hooks supplied by the build-tool adapter.
type RunOptions struct {
	// Assets, when non-nil, is the in-memory build output; RemoveMode
	// deletes uploaded entries from it instead of the filesystem.
	Assets AssetMap

	// OnComplete is invoked exactly once at the end of the run, on both
	// the success and the failure path.
	OnComplete func(*BatchRun)

	// ErrorSink, when set, receives the batch error instead of it being
	// returned, so adapters with their own failure collection are not
	// halted mid-handoff.
	ErrorSink func(error)
}

// Run selects from the candidate files and fans every survivor out into
// its own existence-check/upload pipeline. All pipelines are started
// without waiting on each other and all are allowed to settle before the
// batch is finalized; an early failure never cancels in-flight siblings.
func (u *Uploader) Run(ctx context.Context, files []*FileRecord, opts RunOptions) (*BatchRun, error) {
	run := &BatchRun{}
	if opts.OnComplete != nil {
		defer func() { opts.OnComplete(run) }()
	}

	selected := SelectFiles(files, u.cfg)
	if len(selected) == 0 {
		u.log.Warn("no files matched the upload filters, nothing to upload")
		return run, nil
	}

	u.log.Infof("upload starting, %d files -> bucket %s", len(selected), u.cfg.COS.Bucket)

	outcomes := make([]*FileOutcome, len(selected))
	var wg sync.WaitGroup
	for i, file := range selected {
		wg.Add(1)
		go func(idx int, record *FileRecord) {
			defer wg.Done()
			outcomes[idx] = u.processFile(ctx, record, idx+1, len(selected))
		}(i, file)
	}
	wg.Wait()
	run.Outcomes = outcomes

	for _, outcome := range outcomes {
		if outcome.Err != nil {
			run.Err = &BatchError{Err: outcome.Err}
			break
		}
	}

	if run.Err != nil {
		u.log.Errorf("%v", run.Err)
		if u.cfg.IgnoreError {
			run.Suppressed = true
			return run, nil
		}
		if opts.ErrorSink != nil {
			opts.ErrorSink(run.Err)
			return run, nil
		}
		return run, run.Err
	}

	u.log.Infof("upload complete, %d files", len(selected))
	if u.cfg.RemoveMode {
		u.removeOriginals(selected, opts.Assets)
	}

	return run, nil
}

// removeOriginals drops the local copies after a fully successful batch.
// Deletion is best-effort; its failures are logged and never escalate.
func (u *Uploader) removeOriginals(files []*FileRecord, assets AssetMap) {
	for _, file := range files {
		if assets != nil {
			delete(assets, file.Name)
			continue
		}
		if file.Path == "" {
			continue
		}
		if err := os.Remove(file.Path); err != nil {
			u.log.Warnf("failed to remove %s after upload: %v", file.Path, err)
		}
	}
}
