// Package expand generates the sequential-acquisition code a lock
// directive stands for: every requested lock acquired in canonical
// order, guards rebound under the caller's names.
package expand

import (
	"strings"

	"github.com/alaric/lock-order/lockreq"
)

// PoisonImport is the package the generated code depends on.
const PoisonImport = "github.com/alaric/lock-order/poison"

// Stmts renders the statements a directive expands to.
//
// The first statement acquires every lock in canonical order into one
// temporary per lock, recovering poisoned guards inline; a Go
// multi-assign evaluates its right side left to right, so the
// temporaries double as the acquisition tuple. The deferred unlocks
// release in reverse acquisition order and tie each guard to the
// enclosing function, the closest Go gets to drop-at-end-of-scope. The
// last statement rebinds the temporaries in the order the caller wrote
// them: mut entries bind the writable guard, the rest a read-only
// view. A single-lock directive takes the same shape.
func Stmts(l lockreq.List) []string {
	canon := l.Canonical()
	temps := make([]string, len(canon))
	acquires := make([]string, len(canon))
	for i, r := range canon {
		temps[i] = "_" + r.Bind()
		acquires[i] = "poison.Recover(" + string(r.Path) + ".Lock())"
	}
	lines := make([]string, 0, len(canon)+2)
	lines = append(lines, strings.Join(temps, ", ")+" := "+strings.Join(acquires, ", "))
	for _, tmp := range temps {
		lines = append(lines, "defer "+tmp+".Unlock()")
	}
	binds := make([]string, len(l))
	guards := make([]string, len(l))
	for i, r := range l {
		binds[i] = r.Bind()
		guards[i] = "_" + r.Bind()
		if !r.Mutable {
			guards[i] += ".ReadOnly()"
		}
	}
	lines = append(lines, strings.Join(binds, ", ")+" := "+strings.Join(guards, ", "))
	return lines
}
