package a

import "sync"

type server struct {
	conns sync.Mutex
	stats sync.Mutex
}

func (s *server) good() {
	//lock:acquire mut s.conns, s.stats
	//lock:acquire s.stats
	//lock:acquired by the caller, not a directive
}

func (s *server) bad() {
	/* want `at least one lock is required` */ //lock:acquire
	/* want `missing lock path after mut` */ //lock:acquire mut
	/* want `empty lock entry` */ //lock:acquire s.conns,
	/* want `malformed lock path "s\.1stats"` */ //lock:acquire mut s.conns, s.1stats
	/* want `unexpected "stats" after lock path` */ //lock:acquire s.conns stats
}
