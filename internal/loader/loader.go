// Package loader reads a project directory of YAML object descriptions into a
// model.Snapshot.
//
// Each file holds one or more YAML documents; each document describes one
// top-level object:
//
//	kind: Catalog
//	name: Goods
//	hierarchical: true
//	attributes:
//	  - name: Price
//	    type: Number
//	    precision: 15
//
// Keys other than kind and name are feature names. Decoded files are cached
// by path, modification time and size, so repeated loads of an unchanged
// project only stat the files.
package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"mdcheck/internal/model"
)

// DefaultInclude matches every YAML file in the project.
var DefaultInclude = []string{"**/*.yaml", "**/*.yml"}

type Options struct {
	// Include and Exclude are doublestar patterns over slash-separated paths
	// relative to the project root. Files under hidden directories, and
	// hidden files, are always skipped.
	Include []string
	Exclude []string
	// Concurrency bounds the number of files parsed at once. Zero means
	// GOMAXPROCS.
	Concurrency int
}

type Loader struct {
	opts   Options
	cache  *Cache
	group  Group
	logger *zap.Logger
}

// Result is a loaded snapshot plus bookkeeping about the load.
type Result struct {
	Snapshot  *model.Snapshot
	Files     int
	CacheHits int
	// Sources maps each top-level object FQN to the file it came from.
	Sources map[string]string
}

func New(opts Options, logger *zap.Logger) *Loader {
	if len(opts.Include) == 0 {
		opts.Include = DefaultInclude
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = runtime.GOMAXPROCS(0)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{opts: opts, cache: NewCache(), logger: logger}
}

// Files lists the project files selected by the include and exclude
// patterns, as sorted slash-separated paths relative to root.
func (l *Loader) Files(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("project root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("project root %s is not a directory", root)
	}

	for _, p := range append(append([]string(nil), l.opts.Include...), l.opts.Exclude...) {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid pattern %q", p)
		}
	}

	fsys := os.DirFS(root)
	seen := make(map[string]bool)
	var files []string
	for _, pattern := range l.opts.Include {
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", pattern, err)
		}
		for _, m := range matches {
			if seen[m] || hidden(m) || l.excluded(m) {
				continue
			}
			seen[m] = true
			files = append(files, m)
		}
	}
	sort.Strings(files)
	return files, nil
}

func (l *Loader) excluded(rel string) bool {
	for _, pattern := range l.opts.Exclude {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

func hidden(rel string) bool {
	for _, seg := range strings.Split(rel, "/") {
		if strings.HasPrefix(seg, ".") {
			return true
		}
	}
	return false
}

// Load reads every selected file under root and builds a snapshot. All file
// and object errors are reported together.
func (l *Loader) Load(ctx context.Context, root string) (*Result, error) {
	files, err := l.Files(root)
	if err != nil {
		return nil, err
	}

	docs := make([][]document, len(files))
	fileErrs := make([]error, len(files))
	var hits atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.opts.Concurrency)
	for i, rel := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			d, hit, err := l.readFile(filepath.Join(root, filepath.FromSlash(rel)))
			if err != nil {
				fileErrs[i] = fmt.Errorf("%s: %w", rel, err)
				return nil
			}
			if hit {
				hits.Add(1)
			}
			docs[i] = d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	keep := make(map[string]bool, len(files))
	for _, rel := range files {
		keep[filepath.Join(root, filepath.FromSlash(rel))] = true
	}
	l.cache.Forget(keep)

	var errs []error
	for _, err := range fileErrs {
		if err != nil {
			errs = append(errs, err)
		}
	}

	res := &Result{Files: len(files), CacheHits: int(hits.Load()), Sources: make(map[string]string)}
	var nodes []*model.Node
	for i, rel := range files {
		for j, doc := range docs[i] {
			n, err := buildObject(doc)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: document %d: %w", rel, j+1, err))
				continue
			}
			if n.Name() == "" {
				errs = append(errs, fmt.Errorf("%s: document %d: %s has no name", rel, j+1, n.Kind()))
				continue
			}
			if prev, dup := res.Sources[n.FQN()]; dup {
				errs = append(errs, fmt.Errorf("%s: document %d: %s is already defined in %s", rel, j+1, n.FQN(), prev))
				continue
			}
			res.Sources[n.FQN()] = rel
			nodes = append(nodes, n)
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	snap, err := model.NewSnapshot(nodes...)
	if err != nil {
		return nil, err
	}
	res.Snapshot = snap

	l.logger.Debug("project loaded",
		zap.String("root", root),
		zap.Int("files", res.Files),
		zap.Int("cache_hits", res.CacheHits),
		zap.Int("objects", snap.Len()),
	)
	return res, nil
}

func (l *Loader) readFile(path string) ([]document, bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, false, err
	}
	if !info.Mode().IsRegular() {
		return nil, false, fmt.Errorf("not a regular file: %w", fs.ErrInvalid)
	}
	stamp := fileStamp{modTime: info.ModTime(), size: info.Size()}

	if docs, ok := l.cache.Get(path, stamp); ok {
		return docs, true, nil
	}

	key := path + "@" + strconv.FormatInt(stamp.modTime.UnixNano(), 10) + ":" + strconv.FormatInt(stamp.size, 10)
	docs, err, _ := l.group.Do(key, func() ([]document, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return decodeDocuments(data)
	})
	if err != nil {
		return nil, false, err
	}
	l.cache.Set(path, stamp, docs)
	return docs, false, nil
}
