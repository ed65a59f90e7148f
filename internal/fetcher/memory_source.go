package fetcher

import (
	"context"
	"time"
)

// MemorySource serves artifacts from memory. Missing names are reported as
// not found. Delay, when set, is applied before every Get and respects ctx.
type MemorySource struct {
	Artifacts map[string][]byte
	Delay     time.Duration
}

func (s *MemorySource) Get(ctx context.Context, name string) ([]byte, error) {
	if s.Delay > 0 {
		t := time.NewTimer(s.Delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-t.C:
		}
	} else if err := ctx.Err(); err != nil {
		return nil, err
	}

	b, ok := s.Artifacts[name]
	if !ok {
		return nil, notFound(name, nil)
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out, nil
}
