package service

import "sync/atomic"

// SyncSignal is the single-slot sync trigger raised when a session pauses
// with sync-on-pause enabled. Consume swaps the flag clear, so a raise that
// lands between two polls coalesces with the previous one; a dropped trigger
// is at worst deferred to the next auto-sync push.
type SyncSignal struct {
	flag atomic.Bool
}

func NewSyncSignal() *SyncSignal {
	return &SyncSignal{}
}

func (s *SyncSignal) Raise() {
	s.flag.Store(true)
}

func (s *SyncSignal) Consume() bool {
	return s.flag.Swap(false)
}
