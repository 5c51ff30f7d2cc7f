package expand

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"strings"

	"golang.org/x/tools/go/ast/astutil"

	"github.com/alaric/lock-order/lockreq"
)

// Source expands every lock directive in src, a template Go file, and
// returns the gofmt'd result. "ignore" build constraints are dropped
// so the output participates in the build, and the poison import is
// added when an expansion needs it. Directive errors are prefixed with
// the filename:line:col of the offending span; the returned error
// unwraps to one error per bad span.
func Source(filename string, src []byte) ([]byte, error) {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, filename, src, parser.ParseComments)
	if err != nil {
		return nil, err
	}
	tf := fset.File(f.Pos())

	type edit struct {
		start, end int
		text       string
	}
	var (
		edits    []edit
		errs     []error
		expanded bool
	)
	for _, group := range f.Comments {
		for _, c := range group.List {
			start, end := tf.Offset(c.Pos()), tf.Offset(c.End())
			args, ok := lockreq.CutDirective(c.Text)
			if !ok {
				if isIgnoreTag(c.Text) {
					if end < len(src) && src[end] == '\n' {
						end++
					}
					edits = append(edits, edit{start, end, ""})
				}
				continue
			}
			if !inFuncBody(f, c.Pos()) {
				errs = append(errs, fmt.Errorf("%s: lock directive outside a function body", fset.Position(c.Pos())))
				continue
			}
			list, err := lockreq.Parse(args)
			if err != nil {
				base := start + len(c.Text) - len(args)
				for _, se := range lockreq.SyntaxErrors(err) {
					errs = append(errs, fmt.Errorf("%s: %s", fset.Position(tf.Pos(base+se.Offset)), se.Msg))
				}
				continue
			}
			edits = append(edits, edit{start, end, strings.Join(Stmts(list), "\n")})
			expanded = true
		}
	}
	if err := lockreq.Errors(errs...); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	last := 0
	for _, e := range edits {
		buf.Write(src[last:e.start])
		buf.WriteString(e.text)
		last = e.end
	}
	buf.Write(src[last:])

	if !expanded {
		return format.Source(buf.Bytes())
	}
	fset = token.NewFileSet()
	f, err = parser.ParseFile(fset, filename, buf.Bytes(), parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("%s: expansion produced invalid code: %v", filename, err)
	}
	astutil.AddImport(fset, f, PoisonImport)
	var out bytes.Buffer
	if err := format.Node(&out, fset, f); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func inFuncBody(f *ast.File, pos token.Pos) bool {
	for _, d := range f.Decls {
		if fd, ok := d.(*ast.FuncDecl); ok && fd.Body != nil && fd.Body.Lbrace < pos && pos < fd.Body.Rbrace {
			return true
		}
	}
	return false
}

func isIgnoreTag(text string) bool {
	return text == "//go:build ignore" || text == "// +build ignore"
}
