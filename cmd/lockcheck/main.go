package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"github.com/alaric/lock-order/lockcheck"
)

func main() {
	singlechecker.Main(lockcheck.Analyzer)
}
