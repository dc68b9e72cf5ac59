// File: pool/prefetch.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Background restoration of hinted pages. Non-forced reads of evicted pages
// file hints instead of blocking; this worker drains the hint ring so a
// later non-forced read finds the page resident.

package pool

func (pl *Pool) prefetchLoop() {
	defer pl.wg.Done()
	for {
		for {
			p, ok := pl.ring.dequeue()
			if !ok {
				break
			}
			p.hinted.Store(false)
			if pl.closed.Load() {
				continue
			}
			p.restore()
		}
		select {
		case <-pl.stop:
			return
		case <-pl.notify:
		}
	}
}
