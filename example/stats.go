//go:build ignore

package example

import "github.com/alaric/lock-order/poison"

type hitCounters struct {
	hits   poison.Mutex[int]
	misses poison.Mutex[int]
}

func (c *hitCounters) record(hit bool) int {
	//lock:acquire mut c.misses, mut c.hits
	if hit {
		hits.Set(hits.Get() + 1)
	} else {
		misses.Set(misses.Get() + 1)
	}
	return hits.Get() + misses.Get()
}
