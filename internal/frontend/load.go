package frontend

import (
	"context"
	"fmt"

	"typings/internal/source"
)

// Load reads path into fs and loads it with the configured loader.
func Load(ctx context.Context, fs *source.FileSet, path string, opts Options) (*Program, error) {
	abs, err := source.AbsolutePath(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	id, err := fs.Load(abs)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return LoadFile(ctx, fs.Get(id), opts)
}

// LoadFile loads an already registered file. Package mode and the packages
// loader need the file to exist on disk next to its siblings.
func LoadFile(ctx context.Context, file *source.File, opts Options) (*Program, error) {
	if file == nil {
		return nil, fmt.Errorf("load: %w", ErrNoSyntaxTree)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	loader := opts.Loader
	if loader == "" {
		loader = LoaderSource
	}
	p := newProgram(file, loader)
	var err error
	switch loader {
	case LoaderSource:
		err = p.loadSource(opts)
	case LoaderPackages:
		err = p.loadPackages(ctx, opts)
	default:
		err = fmt.Errorf("unknown loader %q", loader)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Inputs lists the files whose content determines the analysis of path: the
// file alone in file mode, its package otherwise. The packages loader always
// checks the whole package.
func Inputs(path string, opts Options) ([]string, error) {
	abs, err := source.AbsolutePath(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	if opts.PackageMode != ModePackage && opts.Loader != LoaderPackages {
		return []string{abs}, nil
	}
	return siblingFiles(abs, opts.Tags)
}
