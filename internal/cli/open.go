// Package cli implements the launch path shared by the root command and
// the hand-off listener: read the requested documents, report per-file
// failures, and forward the surviving batch to the UI.
package cli

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/studiowebux/monight/internal/document"
)

// OpenFile is one successfully read document ready to be opened in a tab
type OpenFile struct {
	Path  string
	Title string
	Data  []byte
}

// OpenBatch is the outcome of reading a list of paths. Files and Errors
// keep the order of the original argument list.
type OpenBatch struct {
	Files  []OpenFile
	Errors []error

	// Page is the 1-based page the active tab jumps to after the batch
	// opened, 0 for no jump
	Page int
}

// ReadBatch reads every path concurrently. A file that fails to read
// produces an error entry but does not stop the rest of the batch unless
// stopOnError is set, mirroring how a multi-select open dialog behaves.
func ReadBatch(ctx context.Context, paths []string, stopOnError bool) OpenBatch {
	files := make([]*OpenFile, len(paths))
	errs := make([]error, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			data, err := document.ReadFile(path)
			if err != nil {
				errs[i] = err
				if stopOnError {
					return err
				}
				return nil
			}

			files[i] = &OpenFile{
				Path:  path,
				Title: document.DisplayName(path),
				Data:  data,
			}
			return nil
		})
	}
	// The group error is already captured per file; with stopOnError the
	// first failure cancels the remaining reads through ctx.
	_ = g.Wait()

	var batch OpenBatch
	for i := range paths {
		if files[i] != nil {
			batch.Files = append(batch.Files, *files[i])
		}
		if errs[i] != nil {
			batch.Errors = append(batch.Errors, errs[i])
		}
	}
	return batch
}

// ReadOne reads a single path, with the same user-facing errors
func ReadOne(path string) (OpenFile, error) {
	data, err := document.ReadFile(path)
	if err != nil {
		return OpenFile{}, err
	}
	return OpenFile{
		Path:  path,
		Title: document.DisplayName(path),
		Data:  data,
	}, nil
}

// Summary renders a short status line for a finished batch
func (b OpenBatch) Summary() string {
	switch {
	case len(b.Errors) == 0:
		return fmt.Sprintf("Opened %d file(s)", len(b.Files))
	case len(b.Files) == 0:
		return fmt.Sprintf("Failed to open %d file(s)", len(b.Errors))
	default:
		return fmt.Sprintf("Opened %d file(s), %d failed", len(b.Files), len(b.Errors))
	}
}
