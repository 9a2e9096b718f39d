package storage

import (
	"context"
	"mime/multipart"
)

// ImageStore keeps uploaded files outside the database. Save returns the
// reference stored on the owning document; Remove accepts that reference.
type ImageStore interface {
	Save(ctx context.Context, folder, field string, fh *multipart.FileHeader) (string, error)
	Remove(ctx context.Context, ref string) error
}

// SaveAll stores every file and returns their references in order. When one
// save fails, the files already written are removed again.
func SaveAll(ctx context.Context, store ImageStore, folder, field string, files []*multipart.FileHeader) ([]string, error) {
	refs := make([]string, 0, len(files))
	for _, fh := range files {
		ref, err := store.Save(ctx, folder, field, fh)
		if err != nil {
			RemoveAll(ctx, store, refs)
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

// RemoveAll removes each reference, returning the ones that could not be removed.
func RemoveAll(ctx context.Context, store ImageStore, refs []string) []string {
	var failed []string
	for _, ref := range refs {
		if err := store.Remove(ctx, ref); err != nil {
			failed = append(failed, ref)
		}
	}
	return failed
}
