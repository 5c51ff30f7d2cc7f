// Package example pairs a lock template with the code lockgen
// generates from it. stats.go is the template; stats_locked.go is its
// expansion.
package example

//go:generate go run github.com/alaric/lock-order/cmd/lockgen -o stats_locked.go stats.go
