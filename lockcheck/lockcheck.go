// Package lockcheck reports malformed lock:acquire directives without
// running the generator, so editors and vet runs surface the same
// diagnostics lockgen would.
package lockcheck

import (
	"go/token"

	"golang.org/x/tools/go/analysis"

	"github.com/alaric/lock-order/lockreq"
)

var Analyzer = &analysis.Analyzer{
	Name: "lockcheck",
	Doc:  "reports malformed lock:acquire directives",
	Run:  run,
}

func run(pass *analysis.Pass) (interface{}, error) {
	for _, file := range pass.Files {
		for _, group := range file.Comments {
			for _, c := range group.List {
				args, ok := lockreq.CutDirective(c.Text)
				if !ok {
					continue
				}
				_, err := lockreq.Parse(args)
				base := c.Pos() + token.Pos(len(c.Text)-len(args))
				for _, se := range lockreq.SyntaxErrors(err) {
					pass.Reportf(base+token.Pos(se.Offset), "%s", se.Msg)
				}
			}
		}
	}
	return nil, nil
}
