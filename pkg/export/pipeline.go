package export

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/arthur-debert/synthfs/pkg/synthfs"
	"github.com/arthur-debert/synthfs/pkg/synthfs/core"
	"github.com/arthur-debert/synthfs/pkg/synthfs/operations"

	"github.com/modfold/modfold/pkg/errors"
)

// execute writes the staged files through a synthfs pipeline rooted at
// the OS filesystem. Directories come first so every file write lands
// in an existing parent.
func (e *Exporter) execute(dir string, files []stagedFile) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return errors.Wrapf(err, errors.ErrInvalidInput, "unusable export directory: %s", dir)
	}

	pipeline := synthfs.NewMemPipeline()
	for _, d := range dirsFor(abs, files) {
		op, err := dirOperation(d)
		if err != nil {
			return err
		}
		if err := pipeline.Add(op); err != nil {
			return errors.Wrap(err, errors.ErrFileWrite, "failed to add directory operation to pipeline")
		}
	}
	for _, f := range files {
		op, err := fileOperation(filepath.Join(abs, f.rel), f.data)
		if err != nil {
			return err
		}
		if err := pipeline.Add(op); err != nil {
			return errors.Wrap(err, errors.ErrFileWrite, "failed to add file operation to pipeline")
		}
	}

	executor := synthfs.NewExecutor()
	result := executor.Run(context.Background(), pipeline, e.fs)
	if result.GetError() != nil {
		e.logger.Error().Err(result.GetError()).Msg("Export pipeline failed")
		return errors.Wrap(result.GetError(), errors.ErrFileWrite, "failed to write extension files")
	}
	return nil
}

// dirOperation builds a create-directory operation for an absolute path.
func dirOperation(target string) (synthfs.Operation, error) {
	relPath, err := filepath.Rel("/", target)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "failed to convert path: %s", target)
	}
	opID := core.OperationID(fmt.Sprintf("create-dir-%s", target))
	op := operations.NewCreateDirectoryOperation(opID, relPath)
	op.SetItem(&directoryItem{path: relPath, mode: 0755})
	return synthfs.NewOperationsPackageAdapter(op), nil
}

// fileOperation builds a write-file operation for an absolute path.
func fileOperation(target string, content []byte) (synthfs.Operation, error) {
	relPath, err := filepath.Rel("/", target)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "failed to convert path: %s", target)
	}
	opID := core.OperationID(fmt.Sprintf("write-file-%s", target))
	op := operations.NewCreateFileOperation(opID, relPath)
	op.SetItem(&fileItem{path: relPath, content: content, mode: 0644})
	return synthfs.NewOperationsPackageAdapter(op), nil
}

// fileItem implements the item interface for file operations.
type fileItem struct {
	path    string
	content []byte
	mode    fs.FileMode
}

func (f *fileItem) Path() string       { return f.path }
func (f *fileItem) Type() string       { return "file" }
func (f *fileItem) Content() []byte    { return f.content }
func (f *fileItem) Mode() fs.FileMode  { return f.mode }
func (f *fileItem) IsDir() bool        { return false }
func (f *fileItem) ModTime() time.Time { return time.Now() }
func (f *fileItem) Size() int64        { return int64(len(f.content)) }

// directoryItem implements the item interface for directory operations.
type directoryItem struct {
	path string
	mode fs.FileMode
}

func (d *directoryItem) Path() string       { return d.path }
func (d *directoryItem) Type() string       { return "directory" }
func (d *directoryItem) Mode() fs.FileMode  { return d.mode }
func (d *directoryItem) IsDir() bool        { return true }
func (d *directoryItem) ModTime() time.Time { return time.Now() }
func (d *directoryItem) Size() int64        { return 0 }
