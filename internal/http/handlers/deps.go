package handlers

import (
	"matamazon/internal/store"
)

type Deps struct {
	SearchHandler *SearchHandler
	SystemHandler *SystemHandler
}

// NewDeps wires the read-only handlers over one finished store. The store is
// not mutated after replay, so handlers may read it without locking.
func NewDeps(sys *store.System) *Deps {
	return &Deps{
		SearchHandler: &SearchHandler{Sys: sys},
		SystemHandler: &SystemHandler{Sys: sys},
	}
}
