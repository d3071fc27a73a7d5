package tcos

// Notifier reports batch results to an out-of-band channel once a run has
// settled. Implementations decide what is worth reporting.
type Notifier interface {
	NotifyBatchResults(cfg UploadConfig, run *BatchRun) error
}
