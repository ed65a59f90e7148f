package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// DefaultDir is where the file source looks when no directory is configured.
const DefaultDir = "./data"

// FileSource reads artifacts from a local directory.
type FileSource struct {
	Dir string
}

func (s *FileSource) Get(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !fs.ValidPath(name) {
		return nil, fmt.Errorf("invalid artifact name %q", name)
	}
	logf("read %s/%s", s.Dir, name)

	b, err := fs.ReadFile(os.DirFS(s.Dir), name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, notFound(name, err)
		}
		return nil, err
	}
	return b, nil
}
