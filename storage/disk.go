package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// PublicPrefix is the URL path uploaded files are served under.
const PublicPrefix = "/upload"

const maxNameAttempts = 100

// DiskStore writes uploads below Root as <folder>/<field>-<unixMillis>.webp.
type DiskStore struct {
	Root string
	now  func() time.Time
}

func NewDiskStore(root string) *DiskStore {
	return &DiskStore{Root: root, now: time.Now}
}

func (s *DiskStore) Save(ctx context.Context, folder, field string, fh *multipart.FileHeader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	dir := filepath.Join(s.Root, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	dst, name, err := s.create(dir, field)
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(filepath.Join(dir, name))
		return "", fmt.Errorf("write upload: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(filepath.Join(dir, name))
		return "", fmt.Errorf("close upload: %w", err)
	}

	return path.Join(PublicPrefix, folder, name), nil
}

// create opens a new file exclusively. Two uploads in the same millisecond
// get distinct names instead of overwriting each other.
func (s *DiskStore) create(dir, field string) (*os.File, string, error) {
	base := fmt.Sprintf("%s-%d", field, s.now().UnixMilli())
	for i := 0; i < maxNameAttempts; i++ {
		name := base + ".webp"
		if i > 0 {
			name = fmt.Sprintf("%s-%d.webp", base, i)
		}
		f, err := os.OpenFile(filepath.Join(dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return nil, "", fmt.Errorf("create upload file: %w", err)
		}
		return f, name, nil
	}
	return nil, "", fmt.Errorf("no free file name for %s", base)
}

// Remove deletes the file behind ref. A file that is already gone counts as removed.
func (s *DiskStore) Remove(ctx context.Context, ref string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := s.localPath(ref)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (s *DiskStore) localPath(ref string) (string, error) {
	clean := path.Clean("/" + ref)
	if !strings.HasPrefix(clean, PublicPrefix+"/") {
		return "", fmt.Errorf("reference %q is not an uploaded file", ref)
	}
	rel := strings.TrimPrefix(clean, PublicPrefix+"/")
	return filepath.Join(s.Root, filepath.FromSlash(rel)), nil
}
