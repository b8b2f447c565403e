package attachment

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/gophblog/internal/client/models"
)

// EncodeFunc produces an Attachment for a selected source.
type EncodeFunc func(ctx context.Context, source string) (*Attachment, error)

// FileEncoder returns an EncodeFunc reading sources as file paths.
func FileEncoder(maxBytes int64) EncodeFunc {
	return func(_ context.Context, path string) (*Attachment, error) {
		return EncodeFile(path, maxBytes)
	}
}

// Selector holds the attachment of one form. Every Select supersedes the
// previous one: encodings run in the background and only the result of the
// latest selection is kept, whatever order they finish in. Earlier
// encodings are not cancelled, their results are dropped on arrival.
type Selector struct {
	mu        sync.Mutex
	encode    EncodeFunc
	seq       uint64
	current   *Attachment
	err       error
	done      chan struct{} // closed when the latest selection finishes
	discarded bool
}

func NewSelector(encode EncodeFunc) *Selector {
	return &Selector{encode: encode}
}

// Select starts encoding source and returns its selection number. The
// previous attachment is dropped immediately.
func (s *Selector) Select(ctx context.Context, source string) uint64 {
	s.mu.Lock()
	if s.discarded {
		s.mu.Unlock()
		return 0
	}
	s.seq++
	id := s.seq
	s.current, s.err = nil, nil
	done := make(chan struct{})
	s.done = done
	s.mu.Unlock()

	go func() {
		defer close(done)
		a, err := s.encode(ctx, source)

		s.mu.Lock()
		defer s.mu.Unlock()
		if s.discarded || id != s.seq {
			return
		}
		s.current, s.err = a, err
	}()
	return id
}

// Current returns the latest selection's result. Both are nil while it is
// still encoding or when nothing was selected.
func (s *Selector) Current() (*Attachment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current, s.err
}

// Wait blocks until the latest selection has finished encoding and returns
// its result. A Select made while waiting is waited for as well.
func (s *Selector) Wait() (*Attachment, error) {
	for {
		s.mu.Lock()
		id, done := s.seq, s.done
		s.mu.Unlock()

		if done != nil {
			<-done
		}

		s.mu.Lock()
		if id == s.seq {
			defer s.mu.Unlock()
			return s.current, s.err
		}
		s.mu.Unlock()
	}
}

// Upload returns the payload to transmit, or nil to leave the image field
// out of the request.
func (s *Selector) Upload() *models.Upload {
	a, _ := s.Current()
	if a == nil {
		return nil
	}
	u := a.Upload
	return &u
}

// Clear forgets the current selection. Encodings still running are ignored.
func (s *Selector) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.current, s.err, s.done = nil, nil, nil
}

// Discard releases the selector when its form goes away. Later results and
// selections are ignored.
func (s *Selector) Discard() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.discarded = true
	s.current, s.err, s.done = nil, nil, nil
}
