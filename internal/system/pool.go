package system

import (
	"fmt"
	"sync"

	"github.com/osokin/composite/internal/yuv"
)

// FramePool reuses packed frame buffers between output frames to keep the
// per-frame allocation pressure off the garbage collector.
type FramePool struct {
	pools map[string]*sync.Pool
	mu    sync.RWMutex
}

var globalPool = &FramePool{
	pools: make(map[string]*sync.Pool),
}

// GetFrame returns a frame of the given size from the pool, allocating a
// new one when the pool is empty. The contents are unspecified; callers
// overwrite every sample.
func GetFrame(w, h int) *yuv.Frame {
	return globalPool.Get(w, h)
}

// PutFrame returns a frame to the pool for reuse. The caller must not
// touch the frame afterwards.
func PutFrame(f *yuv.Frame) {
	globalPool.Put(f)
}

func (p *FramePool) Get(w, h int) *yuv.Frame {
	key := fmt.Sprintf("%dx%d", w, h)
	p.mu.RLock()
	pool, exists := p.pools[key]
	p.mu.RUnlock()

	if !exists {
		p.mu.Lock()
		// Double check
		pool, exists = p.pools[key]
		if !exists {
			pool = &sync.Pool{
				New: func() interface{} {
					return yuv.NewFrame(w, h)
				},
			}
			p.pools[key] = pool
		}
		p.mu.Unlock()
	}

	return pool.Get().(*yuv.Frame)
}

func (p *FramePool) Put(f *yuv.Frame) {
	if f == nil {
		return
	}
	key := fmt.Sprintf("%dx%d", f.W, f.H)
	p.mu.RLock()
	pool, exists := p.pools[key]
	p.mu.RUnlock()

	if exists {
		pool.Put(f)
	}
}
