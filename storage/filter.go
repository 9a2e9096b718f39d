package storage

import (
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"regexp"

	"github.com/gabriel-vasile/mimetype"
)

const (
	MaxServiceImages    = 10
	MaxServiceImageSize = 5 * 1024 * 1024
)

var (
	ErrFileTooLarge    = errors.New("file too large")
	ErrUnsupportedType = errors.New("only .png, .jpg and .jpeg format allowed")
	ErrTooManyFiles    = errors.New("too many files")
	ErrNotValidFile    = errors.New("not a valid file")
)

// Filter accepts or rejects one uploaded file before it is stored.
type Filter func(fh *multipart.FileHeader) error

// ServiceImageFilter sniffs the content and accepts PNG and JPEG images up
// to 5MB.
func ServiceImageFilter(fh *multipart.FileHeader) error {
	if fh.Size > MaxServiceImageSize {
		return fmt.Errorf("%s: %w", fh.Filename, ErrFileTooLarge)
	}

	f, err := fh.Open()
	if err != nil {
		return err
	}
	defer f.Close()

	mtype, err := mimetype.DetectReader(f)
	if err != nil {
		return err
	}
	if !mtype.Is("image/png") && !mtype.Is("image/jpeg") {
		return fmt.Errorf("%s (%s): %w", fh.Filename, mtype.String(), ErrUnsupportedType)
	}
	return nil
}

var profileExt = regexp.MustCompile(`jpg|png|jpeg|webp|svg`)

// ProfileImageFilter only looks at the file extension.
func ProfileImageFilter(fh *multipart.FileHeader) error {
	if !profileExt.MatchString(filepath.Ext(fh.Filename)) {
		return fmt.Errorf("%s: %w", fh.Filename, ErrNotValidFile)
	}
	return nil
}

// CheckAll applies filter to every file and enforces the file count limit.
func CheckAll(files []*multipart.FileHeader, max int, filter Filter) error {
	if max > 0 && len(files) > max {
		return fmt.Errorf("%d files, at most %d: %w", len(files), max, ErrTooManyFiles)
	}
	for _, fh := range files {
		if err := filter(fh); err != nil {
			return err
		}
	}
	return nil
}
