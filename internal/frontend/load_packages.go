package frontend

import (
	"context"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"path/filepath"
	"strings"

	"golang.org/x/tools/go/packages"

	"typings/internal/diag"
)

const loadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// loadPackages asks the go command for the package containing the analysed
// file. The file's normalized content is fed through the ParseFile hook so
// offsets agree with source.File.
func (p *Program) loadPackages(ctx context.Context, opts Options) error {
	native := filepath.FromSlash(p.file.Path)
	cfg := &packages.Config{
		Context: ctx,
		Mode:    loadMode,
		Dir:     filepath.Dir(native),
		Fset:    p.fset,
		Tests:   strings.HasSuffix(native, "_test.go"),
		ParseFile: func(fset *token.FileSet, filename string, src []byte) (*ast.File, error) {
			if filepath.ToSlash(filepath.Clean(filename)) == p.file.Path {
				src = p.file.Content
			}
			return parser.ParseFile(fset, filename, src, parseMode)
		},
	}
	if len(opts.Tags) > 0 {
		cfg.BuildFlags = []string{"-tags=" + strings.Join(opts.Tags, ",")}
	}

	pkgs, err := packages.Load(cfg, "file="+native)
	if err != nil {
		return fmt.Errorf("load package for %s: %w", p.file.Path, err)
	}

	pkg, syntax := p.pickPackage(pkgs)
	if pkg == nil {
		return fmt.Errorf("%s: %w", p.file.Path, ErrFileNotInPackage)
	}

	col := newCollector(p, diag.NewDedupReporter(diag.BagReporter{Bag: p.bag}))
	typed := pkg.TypesInfo != nil || len(pkg.TypeErrors) > 0
	for _, e := range pkg.Errors {
		if typed && compilerEcho(e) {
			continue
		}
		col.packageError(e)
	}
	if !hasTree(syntax) {
		return noTree(p.file.Path, nil)
	}
	if pkg.TypesInfo == nil {
		return fmt.Errorf("%s: no type information for package %s", p.file.Path, pkg.ID)
	}
	p.bindSyntax(syntax, pkg.TypesInfo, pkg.Types)
	return nil
}

// compilerEcho reports whether e is the go command replaying compiler output
// ("# pkg\n./b.go:10:14: ..."). The same errors arrive positioned as type
// errors once type information exists.
func compilerEcho(e packages.Error) bool {
	return e.Kind == packages.ListError && strings.HasPrefix(e.Msg, "# ")
}

// listsFile reports whether pkg names path among its Go files.
func listsFile(pkg *packages.Package, path string) bool {
	for _, names := range [][]string{pkg.GoFiles, pkg.CompiledGoFiles} {
		for _, name := range names {
			if filepath.ToSlash(filepath.Clean(name)) == path {
				return true
			}
		}
	}
	return false
}

// pickPackage returns the first loaded package listing the analysed file,
// with its syntax tree when one was produced.
func (p *Program) pickPackage(pkgs []*packages.Package) (*packages.Package, *ast.File) {
	var fallback *packages.Package
	for _, pkg := range pkgs {
		if !listsFile(pkg, p.file.Path) {
			continue
		}
		for _, f := range pkg.Syntax {
			if filepath.ToSlash(filepath.Clean(p.fset.Position(f.Pos()).Filename)) == p.file.Path {
				return pkg, f
			}
		}
		if fallback == nil {
			fallback = pkg
		}
	}
	return fallback, nil
}
