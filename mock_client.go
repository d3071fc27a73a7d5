package tcos

import (
	"context"
	"io"
	"sync"
)

// MockStore is an in-memory RemoteStore for tests. Existing seeds the
// existence probe; FailPuts schedules per-key put failures: a positive
// count fails that many attempts before succeeding, -1 fails forever.
type MockStore struct {
	Existing map[string]bool
	FailPuts map[string]int
	HeadErr  error

	HeadRequests []MockRequest
	PutRequests  []MockRequest

	lock sync.Mutex
}

type MockRequest struct {
	Bucket string
	Key    string
	Size   int
}

func NewMockStore() *MockStore {
	return &MockStore{
		Existing:     make(map[string]bool),
		FailPuts:     make(map[string]int),
		HeadRequests: make([]MockRequest, 0),
		PutRequests:  make([]MockRequest, 0),
	}
}

func (s *MockStore) HeadExists(ctx context.Context, bucket, key string) (bool, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.HeadRequests = append(s.HeadRequests, MockRequest{Bucket: bucket, Key: key})
	if s.HeadErr != nil {
		return false, s.HeadErr
	}

	return s.Existing[key], nil
}

func (s *MockStore) Put(ctx context.Context, bucket, key string, body io.Reader) (PutResult, error) {
	content, readErr := io.ReadAll(body)
	if readErr != nil {
		return PutResult{}, readErr
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	s.PutRequests = append(s.PutRequests, MockRequest{Bucket: bucket, Key: key, Size: len(content)})

	remaining := s.FailPuts[key]
	if remaining != 0 {
		if remaining > 0 {
			s.FailPuts[key] = remaining - 1
		}
		return PutResult{}, &StoreError{Code: "InternalError", Name: "PutObject", Message: "mock put failure"}
	}

	s.Existing[key] = true

	return PutResult{Location: "https://mock/" + key, ETag: "mock-etag"}, nil
}
