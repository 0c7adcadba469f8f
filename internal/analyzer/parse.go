package analyzer

import (
	"go/ast"
	"go/parser"
	"go/token"
	"strconv"
	"strings"
)

// ParseModule lowers Go source into the minimal Tree the rules inspect.
// Returns the parse error verbatim when the file is not syntactically valid;
// callers turn that into a syntax-error violation.
func ParseModule(path string, src []byte) (*Tree, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, src, parser.ParseComments)
	if err != nil {
		return nil, err
	}
	return lower(fset, file), nil
}

func lower(fset *token.FileSet, file *ast.File) *Tree {
	tree := &Tree{}

	for _, imp := range file.Imports {
		path, err := strconv.Unquote(imp.Path.Value)
		if err != nil {
			path = strings.Trim(imp.Path.Value, `"`)
		}
		alias := ""
		if imp.Name != nil {
			alias = imp.Name.Name
		}
		tree.Imports = append(tree.Imports, Import{
			Path:  path,
			Alias: alias,
			Line:  fset.Position(imp.Pos()).Line,
		})
	}

	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			tree.Funcs = append(tree.Funcs, FuncDecl{
				Name:     d.Name.Name,
				Exported: ast.IsExported(d.Name.Name),
				Line:     fset.Position(d.Pos()).Line,
			})
		case *ast.GenDecl:
			if d.Tok != token.VAR && d.Tok != token.TYPE {
				continue
			}
			for _, spec := range d.Specs {
				switch s := spec.(type) {
				case *ast.ValueSpec:
					for _, name := range s.Names {
						tree.Bindings = append(tree.Bindings, Binding{
							Name:     name.Name,
							Exported: ast.IsExported(name.Name),
							Line:     fset.Position(name.Pos()).Line,
						})
					}
				case *ast.TypeSpec:
					tree.Types = append(tree.Types, TypeDecl{
						Name:     s.Name.Name,
						Exported: ast.IsExported(s.Name.Name),
						Line:     fset.Position(s.Pos()).Line,
					})
				}
			}
		}
	}

	ast.Inspect(file, func(n ast.Node) bool {
		call, ok := n.(*ast.CallExpr)
		if !ok {
			return true
		}
		callee := flattenCallee(call.Fun)
		if callee == "" {
			return true
		}
		c := Call{
			Callee: callee,
			Line:   fset.Position(call.Pos()).Line,
		}
		for _, argExpr := range call.Args {
			c.Args = append(c.Args, lowerArg(argExpr))
		}
		tree.Calls = append(tree.Calls, c)
		return true
	})

	return tree
}

// flattenCallee renders the called expression as dotted selector text.
// Calls through computed expressions (x[i](), f()()) yield "".
func flattenCallee(expr ast.Expr) string {
	switch e := expr.(type) {
	case *ast.Ident:
		return e.Name
	case *ast.SelectorExpr:
		base := flattenCallee(e.X)
		if base == "" {
			return e.Sel.Name
		}
		return base + "." + e.Sel.Name
	default:
		return ""
	}
}

func lowerArg(expr ast.Expr) Arg {
	switch e := expr.(type) {
	case *ast.BasicLit:
		if e.Kind == token.STRING {
			if s, err := strconv.Unquote(e.Value); err == nil {
				return Arg{Kind: ArgString, Str: s}
			}
		}
	case *ast.Ident:
		switch e.Name {
		case "true":
			return Arg{Kind: ArgBool, Bool: true}
		case "false":
			return Arg{Kind: ArgBool, Bool: false}
		}
	}
	return Arg{Kind: ArgOther}
}
