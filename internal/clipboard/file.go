package clipboard

import (
	"context"

	"github.com/hack-pad/hackpadfs"
	"github.com/pkg/errors"
)

// File writes clipboard text to a file, replacing its contents. Useful for headless environments.
type File struct {
	fs   hackpadfs.FS
	path string
}

// NewFile returns a File clipboard writing to the given FS path
func NewFile(fs hackpadfs.FS, path string) *File {
	return &File{fs: fs, path: path}
}

// WriteText implements Writer
func (f *File) WriteText(ctx context.Context, text string) (err error) {
	defer func() { err = errors.Wrap(err, "file clipboard") }()
	if err := ctx.Err(); err != nil {
		return err
	}
	file, err := hackpadfs.Create(f.fs, f.path)
	if err != nil {
		return err
	}
	_, err = hackpadfs.WriteFile(file, []byte(text))
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	return err
}
