package frontend

import (
	"errors"
	"fmt"
	"go/ast"
	"go/build"
	"go/importer"
	"go/parser"
	"go/types"
	"path/filepath"
	"slices"

	"typings/internal/diag"
)

const parseMode = parser.ParseComments | parser.AllErrors

// loadSource parses the analysed file (and its siblings in package mode) and
// type-checks them with the source importer.
func (p *Program) loadSource(opts Options) error {
	col := newCollector(p, diag.BagReporter{Bag: p.bag})

	target, err := parser.ParseFile(p.fset, p.file.Path, p.file.Content, parseMode)
	if !hasTree(target) {
		return noTree(p.file.Path, err)
	}
	col.parseErrors(err)

	files := []*ast.File{target}
	if opts.PackageMode == ModePackage {
		siblings, err := siblingFiles(p.file.Path, opts.Tags)
		if err != nil {
			return err
		}
		files = files[:0]
		for _, name := range siblings {
			if name == p.file.Path {
				files = append(files, target)
				continue
			}
			f, err := parser.ParseFile(p.fset, name, nil, parseMode)
			col.parseErrors(err)
			if f != nil {
				files = append(files, f)
			}
		}
	}

	conf := types.Config{
		Importer:  importer.ForCompiler(p.fset, "source", nil),
		GoVersion: NormalizeGoVersion(opts.GoVersion),
		Error:     col.typeError,
	}
	info := newInfo()
	// Errors arrive through conf.Error; the returned one is the first of them.
	pkg, _ := conf.Check(target.Name.Name, p.fset, files, info)
	p.bindSyntax(target, info, pkg)
	return nil
}

// hasTree reports whether f has at least a package clause. The parser gives
// up on everything else when that fails.
func hasTree(f *ast.File) bool {
	return f != nil && f.Package.IsValid()
}

func noTree(path string, cause error) error {
	if cause == nil {
		return fmt.Errorf("%s: %w", path, ErrNoSyntaxTree)
	}
	return fmt.Errorf("%s: %w: %w", path, ErrNoSyntaxTree, cause)
}

// siblingFiles lists the files go/build selects for the analysed file's
// package, including the file itself. Test files join the package they
// belong to; an external test package is checked on its own.
func siblingFiles(path string, tags []string) ([]string, error) {
	ctx := build.Default
	ctx.BuildTags = append(slices.Clone(ctx.BuildTags), tags...)

	dir := filepath.Dir(filepath.FromSlash(path))
	bp, err := ctx.ImportDir(dir, 0)
	if err != nil {
		var noGo *build.NoGoError
		if !errors.As(err, &noGo) {
			return nil, fmt.Errorf("list package in %s: %w", dir, err)
		}
	}
	if bp == nil {
		return nil, fmt.Errorf("%s: %w", path, ErrFileNotInPackage)
	}

	base := filepath.Base(path)
	var names []string
	switch {
	case slices.Contains(bp.GoFiles, base):
		names = bp.GoFiles
	case slices.Contains(bp.TestGoFiles, base):
		names = append(slices.Clone(bp.GoFiles), bp.TestGoFiles...)
	case slices.Contains(bp.XTestGoFiles, base):
		names = bp.XTestGoFiles
	default:
		return nil, fmt.Errorf("%s: %w", path, ErrFileNotInPackage)
	}

	out := make([]string, 0, len(names))
	for _, n := range names {
		out = append(out, filepath.ToSlash(filepath.Join(dir, n)))
	}
	return out, nil
}
