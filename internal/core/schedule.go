package core

import "golang.org/x/sync/errgroup"

// fillMemoryBlocks drives the passes x slices x lanes grid. Every
// slice dispatches one fillSegment task per lane, at most threads of
// them running concurrently, and joins them all before the next slice
// starts.
//
// The barrier between slices is load-bearing: slice s+1 of lane L may
// reference slice s of lane M, and that read must observe fully
// written blocks. No barrier is needed within a slice - the
// addressing pool never includes another lane's currently-filling
// segment - so the per-lane tasks of one slice run lock-free.
//
// Thread count only decides which worker executes a given lane's
// segment, never the per-position result: the tag is identical for
// any thread count.
func (in *Instance) fillMemoryBlocks() {
	if in.threads <= 1 || in.lanes == 1 {
		in.fillSequential()
		return
	}

	for pass := uint32(0); pass < in.passes; pass++ {
		for slice := uint32(0); slice < SyncPoints; slice++ {
			var g errgroup.Group
			g.SetLimit(int(in.threads))
			for lane := uint32(0); lane < in.lanes; lane++ {
				pos := Position{Pass: pass, Lane: lane, Slice: slice}
				g.Go(func() error {
					in.fillSegment(pos)
					return nil
				})
			}
			// Barrier: all lanes of this slice before the next.
			_ = g.Wait()
		}
	}
}

// fillSequential is the single-worker schedule, same order without
// the pool.
func (in *Instance) fillSequential() {
	for pass := uint32(0); pass < in.passes; pass++ {
		for slice := uint32(0); slice < SyncPoints; slice++ {
			for lane := uint32(0); lane < in.lanes; lane++ {
				in.fillSegment(Position{Pass: pass, Lane: lane, Slice: slice})
			}
		}
	}
}
