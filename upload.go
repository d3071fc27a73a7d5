package tcos

import (
	"bytes"
	"context"
)

// processFile runs one file's existence-check/upload pipeline. The outcome
// is always non-nil; a terminal failure is carried in Outcome.Err rather
// than returned, so the batch can keep collecting siblings.
func (u *Uploader) processFile(ctx context.Context, file *FileRecord, seq, total int) *FileOutcome {
	remoteKey := u.cfg.RemoteKey(file.Name)

	if u.cfg.ExistCheck {
		exists, probeErr := u.store.HeadExists(ctx, u.cfg.COS.Bucket, remoteKey)
		switch {
		case probeErr == nil && exists:
			u.log.Infof("skip %d/%d, already uploaded: %s", seq, total, remoteKey)
			return &FileOutcome{Name: file.Name, RemoteKey: remoteKey, Skipped: true}
		case probeErr != nil && isPermissionDenied(probeErr):
			u.log.Warnf("existence check for %s denied, uploading anyway: %v", remoteKey, probeErr)
		}
		// any other probe failure, including not-found, falls through
		// to the upload without a second probe
	}

	return u.runUpload(ctx, file, remoteKey, seq, total)
}

// runUpload uploads a single file with bounded back-to-back retry. Each
// attempt increments the record's retry counter before calling the store;
// the counter never exceeds Retry+1.
func (u *Uploader) runUpload(ctx context.Context, file *FileRecord, remoteKey string, seq, total int) *FileOutcome {
	outcome := &FileOutcome{Name: file.Name, RemoteKey: remoteKey}

	raw, loadErr := file.load()
	if loadErr != nil {
		outcome.Err = loadErr
		return outcome
	}
	body, encodeErr := encodeBody(file.Name, raw, u.cfg.Gzip)
	if encodeErr != nil {
		outcome.Err = encodeErr
		return outcome
	}

	u.log.Debugf("uploading %d/%d: %s", seq, total, remoteKey)
	for {
		file.retryCount++
		result, putErr := u.store.Put(ctx, u.cfg.COS.Bucket, remoteKey, bytes.NewReader(body))
		if putErr == nil {
			u.log.Infof("uploaded %d/%d: %s", seq, total, remoteKey)
			outcome.Attempts = file.retryCount
			outcome.Location = result.Location
			outcome.ETag = result.ETag
			return outcome
		}

		if file.retryCount < u.cfg.Retry+1 {
			u.log.Warnf("upload of %s failed on attempt %d/%d, retrying: %v",
				remoteKey, file.retryCount, u.cfg.Retry+1, putErr)
			continue
		}

		outcome.Attempts = file.retryCount
		outcome.Err = newUploadError(file.Name, remoteKey, file.retryCount, putErr)
		return outcome
	}
}
