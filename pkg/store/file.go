package store

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/trimworks/flashing/pkg/core/profile"
	"github.com/trimworks/flashing/pkg/errors"
	"github.com/trimworks/flashing/pkg/io"
)

// FileStore reads <dir>/<orderID>.json.
type FileStore struct {
	dir  string
	opts []io.Option
}

// NewFileStore returns a store over dir, which must exist.
func NewFileStore(dir string, opts ...io.Option) (*FileStore, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "order directory %s", dir)
	}
	if !info.IsDir() {
		return nil, errors.New(errors.ErrCodeInvalidPath, "%s is not a directory", dir)
	}
	return &FileStore{dir: dir, opts: opts}, nil
}

func (s *FileStore) Load(ctx context.Context, orderID string) (profile.DiagramSet, []io.Warning, error) {
	if err := errors.ValidateOrderID(orderID); err != nil {
		return profile.DiagramSet{}, nil, err
	}
	set, warnings, err := io.ImportJSON(filepath.Join(s.dir, orderID+".json"), s.opts...)
	if errors.Is(err, errors.ErrCodeFileNotFound) {
		return profile.DiagramSet{}, nil, errors.Wrap(errors.ErrCodeOrderNotFound, err, "order %s not found", orderID)
	}
	if err != nil {
		return profile.DiagramSet{}, nil, err
	}
	if set.ID == "" {
		set.ID = orderID
	}
	return set, warnings, nil
}

func (s *FileStore) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	var ids []string
	for _, e := range entries {
		id, ok := strings.CutSuffix(e.Name(), ".json")
		if e.IsDir() || !ok || errors.ValidateOrderID(id) != nil {
			continue
		}
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, nil
}

func (s *FileStore) Close(context.Context) error { return nil }

var _ Store = (*FileStore)(nil)
