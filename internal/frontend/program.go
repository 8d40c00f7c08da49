package frontend

import (
	"go/ast"
	"go/token"
	"go/types"

	"typings/internal/diag"
	"typings/internal/directive"
	"typings/internal/source"
)

var _ directive.Frontend[ast.Node, types.Type] = (*Program)(nil)

// Program is one analysed Go file with its syntax tree, type information and
// diagnostics.
type Program struct {
	file   *source.File
	fset   *token.FileSet
	tfile  *token.File
	syntax *ast.File
	info   *types.Info
	pkg    *types.Package
	qual   types.Qualifier
	bag    *diag.Bag
	loader Loader
}

func newProgram(file *source.File, loader Loader) *Program {
	return &Program{
		file:   file,
		fset:   token.NewFileSet(),
		bag:    diag.NewBag(0),
		loader: loader,
	}
}

func newInfo() *types.Info {
	return &types.Info{
		Types:     make(map[ast.Expr]types.TypeAndValue),
		Defs:      make(map[*ast.Ident]types.Object),
		Uses:      make(map[*ast.Ident]types.Object),
		Implicits: make(map[ast.Node]types.Object),
		Instances: make(map[*ast.Ident]types.Instance),
	}
}

// bindSyntax fixes the analysed tree and the checked package.
func (p *Program) bindSyntax(f *ast.File, info *types.Info, pkg *types.Package) {
	p.syntax = f
	p.tfile = p.fset.File(f.Pos())
	p.info = info
	p.pkg = pkg
	p.qual = qualifier(pkg)
}

// qualifier leaves the checked package unqualified and names every other
// package by its name.
func qualifier(pkg *types.Package) types.Qualifier {
	return func(other *types.Package) string {
		if pkg != nil && other == pkg {
			return ""
		}
		return other.Name()
	}
}

func (p *Program) SourceFile() *source.File { return p.file }
func (p *Program) Syntax() *ast.File        { return p.syntax }
func (p *Program) Package() *types.Package  { return p.pkg }
func (p *Program) Loader() Loader           { return p.loader }

// File implements directive.Frontend.
func (p *Program) File() source.FileID { return p.file.ID }

func (p *Program) Diagnostics() []diag.Diagnostic { return p.bag.Items() }

func (p *Program) Tokens() directive.Scanner {
	return newTokenScanner(p.file.Path, p.file.Content)
}

func (p *Program) Position(offset int) (line, col int) {
	return p.file.Position(offset)
}

// offset maps pos to a byte offset in the analysed file. ok is false for
// invalid positions and positions in other files.
func (p *Program) offset(pos token.Pos) (off int, ok bool) {
	if !pos.IsValid() || p.tfile == nil {
		return 0, false
	}
	base := p.tfile.Base()
	if int(pos) < base || int(pos) > base+p.tfile.Size() {
		return 0, false
	}
	return int(pos) - base, true
}

// Tree view. Comment nodes are trivia and never show up as children.

func (p *Program) Root() ast.Node { return p.syntax }

func (p *Program) ForEachChild(n ast.Node, fn func(ast.Node)) {
	if n == nil {
		return
	}
	ast.Inspect(n, func(c ast.Node) bool {
		if c == nil {
			return false
		}
		if c == n {
			return true
		}
		switch c.(type) {
		case *ast.CommentGroup, *ast.Comment:
			return false
		}
		fn(c)
		return false
	})
}

func (p *Program) FirstChild(n ast.Node) (ast.Node, bool) {
	var first ast.Node
	p.ForEachChild(n, func(c ast.Node) {
		if first == nil {
			first = c
		}
	})
	return first, first != nil
}

// Start returns -1 for nodes without a position in the analysed file.
func (p *Program) Start(n ast.Node) int {
	off, ok := p.offset(n.Pos())
	if !ok {
		return -1
	}
	return off
}

func (p *Program) Text(n ast.Node) string {
	start, ok := p.offset(n.Pos())
	if !ok {
		return ""
	}
	end, ok := p.offset(n.End())
	if !ok {
		return ""
	}
	return p.file.Slice(start, end)
}

// Type oracle.

// TypeAt returns the static type of n, or types.Typ[types.Invalid] when the
// checker recorded none.
func (p *Program) TypeAt(n ast.Node) types.Type {
	if t := p.typeOf(n); t != nil {
		return t
	}
	return types.Typ[types.Invalid]
}

func (p *Program) typeOf(n ast.Node) types.Type {
	if p.info == nil || n == nil {
		return nil
	}
	switch n := n.(type) {
	case *ast.Ident:
		if obj := p.info.ObjectOf(n); obj != nil {
			return obj.Type()
		}
		return p.info.TypeOf(n)
	case ast.Expr:
		return p.info.TypeOf(n)
	case *ast.ValueSpec:
		if len(n.Names) > 0 {
			return p.typeOf(n.Names[0])
		}
	case *ast.TypeSpec:
		return p.typeOf(n.Name)
	case *ast.FuncDecl:
		return p.typeOf(n.Name)
	case *ast.Field:
		if len(n.Names) > 0 {
			return p.typeOf(n.Names[0])
		}
		return p.info.TypeOf(n.Type)
	case *ast.GenDecl:
		if len(n.Specs) > 0 {
			return p.typeOf(n.Specs[0])
		}
	case *ast.DeclStmt:
		return p.typeOf(n.Decl)
	case *ast.ExprStmt:
		return p.typeOf(n.X)
	case *ast.AssignStmt:
		if len(n.Lhs) > 0 {
			return p.typeOf(n.Lhs[0])
		}
	case *ast.ReturnStmt:
		if len(n.Results) > 0 {
			return p.typeOf(n.Results[0])
		}
	}
	return nil
}

func (p *Program) TypeString(t types.Type) string {
	if t == nil {
		t = types.Typ[types.Invalid]
	}
	return types.TypeString(t, p.qual)
}
