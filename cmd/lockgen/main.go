// lockgen expands lock:acquire directives in a template Go file into
// deterministic, deadlock-ordered lock acquisitions.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/alaric/lock-order/expand"
)

var (
	output = flag.String("o", "", "output `file` (default stdout)")
)

const header = "// Code generated by lockgen; DO NOT EDIT.\n\n"

func fatalf(s string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, s, args...)
	os.Exit(1)
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <input>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	fname := flag.Arg(0)
	src, err := os.ReadFile(fname)
	if err != nil {
		fatalf("%v\n", err)
	}
	out, err := expand.Source(fname, src)
	if err != nil {
		fatalf("%v\n", err)
	}
	if *output == "" {
		os.Stdout.Write(out)
		return
	}
	out = append([]byte(header), out...)
	if err := os.WriteFile(*output, out, 0644); err != nil {
		fatalf("%v\n", err)
	}
}
