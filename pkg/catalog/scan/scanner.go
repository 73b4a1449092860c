package scan

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"github.com/tendant/simple-catalog/pkg/catalog"
)

// ErrTooLarge indicates a file exceeded Options.MaxFileSize
var ErrTooLarge = errors.New("file exceeds maximum size")

// Scanner reads files, builds objects from them and inserts them into a
// collection.
type Scanner struct {
	fs      afero.Fs
	builder *catalog.Builder
	logger  *slog.Logger
}

// New creates a new Scanner instance. Nil arguments fall back to the OS
// filesystem, the default builder and slog.Default().
func New(fsys afero.Fs, builder *catalog.Builder, logger *slog.Logger) *Scanner {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	if builder == nil {
		builder = catalog.NewBuilder()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scanner{fs: fsys, builder: builder, logger: logger}
}

// Options configures the scan operation.
type Options struct {
	// Paths lists files or directories to import
	Paths []string

	// Recursive descends into subdirectories of directory paths. Without it
	// only the direct children of a directory are imported.
	Recursive bool

	// MaxFileSize skips files larger than this many bytes (0: no limit)
	MaxFileSize int64

	// OnProgress is called after each file is handled (optional)
	OnProgress func(path string, result *Result)
}

// Result contains statistics about the scan operation.
type Result struct {
	// RunID identifies the scan in logs
	RunID uuid.UUID

	// TotalFound is the number of regular files visited
	TotalFound int64

	// TotalImported is the number of objects added to the collection
	TotalImported int64

	// TotalDuplicates is the number of files whose bytes were already present
	TotalDuplicates int64

	// TotalFailed is the number of files that could not be read
	TotalFailed int64

	// FailedPaths contains the paths of the files that failed
	FailedPaths []string

	// Imported contains the digests of the added objects, in import order
	Imported []string
}

// Scan imports every file reachable from opts.Paths into coll. A file that
// cannot be read is recorded in the result and skipped; only context
// cancellation stops the scan early.
func (s *Scanner) Scan(ctx context.Context, coll *catalog.Collection, opts Options) (*Result, error) {
	result := &Result{RunID: uuid.New()}
	log := s.logger.With("run_id", result.RunID)

	for _, root := range opts.Paths {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		info, err := s.fs.Stat(root)
		if err != nil {
			s.fail(log, result, root, err)
			continue
		}

		if !info.IsDir() {
			s.importFile(log, coll, result, root, opts)
			continue
		}

		err = afero.Walk(s.fs, root, func(path string, info fs.FileInfo, err error) error {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			if err != nil {
				s.fail(log, result, path, err)
				return nil
			}
			if info.IsDir() {
				if path != root && !opts.Recursive {
					return filepath.SkipDir
				}
				return nil
			}
			if !info.Mode().IsRegular() {
				return nil
			}
			s.importFile(log, coll, result, path, opts)
			return nil
		})
		if err != nil {
			return result, err
		}
	}

	log.Info("Scan finished",
		"found", result.TotalFound,
		"imported", result.TotalImported,
		"duplicates", result.TotalDuplicates,
		"failed", result.TotalFailed)
	return result, nil
}

func (s *Scanner) importFile(log *slog.Logger, coll *catalog.Collection, result *Result, path string, opts Options) {
	result.TotalFound++
	defer func() {
		if opts.OnProgress != nil {
			opts.OnProgress(path, result)
		}
	}()

	if opts.MaxFileSize > 0 {
		info, err := s.fs.Stat(path)
		if err != nil {
			s.fail(log, result, path, err)
			return
		}
		if info.Size() > opts.MaxFileSize {
			s.fail(log, result, path, fmt.Errorf("%w: %d > %d", ErrTooLarge, info.Size(), opts.MaxFileSize))
			return
		}
	}

	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		s.fail(log, result, path, err)
		return
	}

	obj := s.builder.Build(data)
	if !coll.Insert(obj) {
		result.TotalDuplicates++
		log.Debug("Skipped duplicate", "path", path, "digest", obj.Digest())
		return
	}

	result.TotalImported++
	result.Imported = append(result.Imported, obj.Digest())
	log.Debug("Imported file", "path", path, "kind", obj.Kind(), "tags", len(obj.Tags()), "size", obj.Size())
}

func (s *Scanner) fail(log *slog.Logger, result *Result, path string, err error) {
	result.TotalFailed++
	result.FailedPaths = append(result.FailedPaths, path)
	log.Warn("Failed to import file", "path", path, "err", err)
}
