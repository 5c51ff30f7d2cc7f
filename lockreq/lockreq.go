// Package lockreq parses lock-acquisition directives and computes the
// canonical acquisition order that keeps independent call sites
// deadlock-free.
package lockreq

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
)

// Directive is the comment prefix that introduces a lock-acquisition
// request in a template file.
const Directive = "//lock:acquire"

// CutDirective splits a comment's text into the directive's argument
// list. ok is false when the comment is not a lock:acquire directive.
func CutDirective(comment string) (args string, ok bool) {
	rest, ok := strings.CutPrefix(comment, Directive)
	if !ok || (rest != "" && rest[0] != ' ' && rest[0] != '\t') {
		return "", false
	}
	return rest, true
}

// Path is a dotted chain of identifiers naming a lock object, such as
// "s.locks.connections". It is kept opaque except for its final
// segment.
type Path string

// Bind returns the final segment of the path: the name the acquired
// guard is bound under.
func (p Path) Bind() string {
	if i := strings.LastIndexByte(string(p), '.'); i >= 0 {
		return string(p)[i+1:]
	}
	return string(p)
}

func (p Path) valid() bool {
	if p == "" {
		return false
	}
	for _, seg := range strings.Split(string(p), ".") {
		if !identifier(seg) {
			return false
		}
	}
	return true
}

func identifier(s string) bool {
	for i, r := range s {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return s != ""
}

// Request is one lock named in a directive.
type Request struct {
	Path    Path
	Mutable bool
	Offset  int // byte offset of the path within the directive's arguments
}

// Bind returns the name the acquired guard is bound under.
func (r Request) Bind() string { return r.Path.Bind() }

// List holds a directive's requests in the order the caller wrote
// them. Caller order decides rebinding, never acquisition.
type List []Request

// Canonical returns the acquisition order: the same requests, stably
// sorted by bind name with plain byte-wise comparison. The result
// depends only on the set of bind names, so every call site naming the
// same locks acquires them in the same relative order.
func (l List) Canonical() List {
	out := make(List, len(l))
	copy(out, l)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Bind() < out[j].Bind() })
	return out
}

// Parse converts a directive's argument text into a caller-ordered
// List. Every malformed entry contributes a *SyntaxError; the returned
// error unwraps to all of them.
func Parse(args string) (List, error) {
	if strings.TrimSpace(args) == "" {
		return nil, &SyntaxError{Msg: "at least one lock is required"}
	}
	var (
		list List
		errs []error
	)
	at := 0
	for {
		entry := args[at:]
		end := len(args)
		if i := strings.IndexByte(entry, ','); i >= 0 {
			entry = entry[:i]
			end = at + i
		}
		if req, err := parseEntry(entry, at); err != nil {
			errs = append(errs, err)
		} else {
			list = append(list, req)
		}
		if end == len(args) {
			break
		}
		at = end + 1
	}
	if err := Errors(errs...); err != nil {
		return nil, err
	}
	return list, nil
}

func parseEntry(entry string, base int) (Request, error) {
	body := strings.TrimSpace(entry)
	if body == "" {
		return Request{}, &SyntaxError{Offset: base, Msg: "empty lock entry"}
	}
	off := base + strings.Index(entry, body[:1])
	req := Request{Offset: off}
	words := strings.Fields(body)
	if words[0] == "mut" {
		req.Mutable = true
		if len(words) == 1 {
			return Request{}, &SyntaxError{Offset: off, Msg: "missing lock path after mut"}
		}
		words = words[1:]
	}
	if len(words) > 1 {
		return Request{}, &SyntaxError{
			Offset: base + strings.LastIndex(entry, words[1]),
			Msg:    fmt.Sprintf("unexpected %q after lock path", words[1]),
		}
	}
	req.Path = Path(words[0])
	req.Offset = base + strings.LastIndex(entry, words[0])
	if !req.Path.valid() {
		return Request{}, &SyntaxError{
			Offset: req.Offset,
			Msg:    fmt.Sprintf("malformed lock path %q", words[0]),
		}
	}
	return req, nil
}
