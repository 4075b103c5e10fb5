package stream

import (
	"sort"
	"sync"

	"github.com/aykamko/minecrust/internal/mesh"
	"github.com/aykamko/minecrust/internal/world"
)

// Generator produces chunk contents. Implementations must be safe for
// concurrent use; the manager calls Generate from worker goroutines.
type Generator interface {
	Generate(world.ChunkCoord) *world.Chunk
}

// MeshSink receives chunk meshes as they are built and gives them back
// when chunks unload. The renderer implements it.
type MeshSink interface {
	Upload(m mesh.Mesh)
	Release(coord world.ChunkCoord)
}

// Options bound the streaming work per tick. LoadRadius and
// EvictRadius are horizontal Chebyshev distances in chunks; EvictRadius
// must exceed LoadRadius so chunks at the load boundary do not churn.
type Options struct {
	LoadRadius  int
	EvictRadius int
	// ColumnMinY/MaxY bound the vertical chunk band that gets loaded.
	ColumnMinY int32
	ColumnMaxY int32
	// GenBudget and MeshBudget cap chunk installs and mesh rebuilds
	// applied per Update call.
	GenBudget  int
	MeshBudget int
	// Workers is the number of generation goroutines.
	Workers    int
	MaxPending int
	// JobsPerUpdate caps how many new jobs one Update may enqueue.
	JobsPerUpdate int
}

func (o *Options) applyDefaults() {
	if o.LoadRadius <= 0 {
		o.LoadRadius = 6
	}
	if o.EvictRadius <= o.LoadRadius {
		o.EvictRadius = o.LoadRadius + 2
	}
	if o.ColumnMaxY == 0 && o.ColumnMinY == 0 {
		o.ColumnMinY, o.ColumnMaxY = -2, 4
	}
	if o.GenBudget <= 0 {
		o.GenBudget = 8
	}
	if o.MeshBudget <= 0 {
		o.MeshBudget = 8
	}
	if o.Workers <= 0 {
		o.Workers = 4
	}
	if o.MaxPending <= 0 {
		o.MaxPending = 256
	}
	if o.JobsPerUpdate <= 0 {
		o.JobsPerUpdate = 64
	}
}

type genJob struct {
	coord world.ChunkCoord
	epoch uint64
}

type genResult struct {
	chunk *world.Chunk
	epoch uint64
}

// Manager streams chunks around a focus position: it schedules
// asynchronous generation for chunks inside the load radius, installs
// finished chunks and rebuilds dirty meshes under per-tick budgets, and
// evicts chunks beyond the larger eviction radius.
type Manager struct {
	world *world.World
	gen   Generator
	sink  MeshSink
	opts  Options

	jobs    chan genJob
	results chan genResult
	stop    chan struct{}
	wg      sync.WaitGroup

	mu      sync.Mutex
	pending map[world.ChunkCoord]struct{}
	// epochs counts evictions per coord; generation results from a
	// previous epoch are stale and dropped.
	epochs map[world.ChunkCoord]uint64

	// meshed tracks which coords hold live renderer buffers. Not under
	// mu: only the Update goroutine touches it.
	meshed map[world.ChunkCoord]bool
}

func NewManager(w *world.World, gen Generator, sink MeshSink, opts Options) *Manager {
	opts.applyDefaults()
	m := &Manager{
		world:   w,
		gen:     gen,
		sink:    sink,
		opts:    opts,
		jobs:    make(chan genJob, opts.MaxPending),
		results: make(chan genResult, opts.MaxPending),
		stop:    make(chan struct{}),
		pending: make(map[world.ChunkCoord]struct{}),
		epochs:  make(map[world.ChunkCoord]uint64),
		meshed:  make(map[world.ChunkCoord]bool),
	}
	for i := 0; i < opts.Workers; i++ {
		m.wg.Add(1)
		go m.worker()
	}
	return m
}

func (m *Manager) worker() {
	defer m.wg.Done()
	for {
		select {
		case <-m.stop:
			return
		case job, ok := <-m.jobs:
			if !ok {
				return
			}
			c := m.gen.Generate(job.coord)
			select {
			case m.results <- genResult{chunk: c, epoch: job.epoch}:
			case <-m.stop:
				return
			}
		}
	}
}

// Close stops the workers. Pending results are discarded.
func (m *Manager) Close() {
	close(m.stop)
	m.wg.Wait()
}

// Update advances streaming for one tick around the focus block
// position. Work beyond the budgets carries over to later calls.
func (m *Manager) Update(focusX, focusY, focusZ int) {
	center := world.ChunkCoordAt(focusX, focusY, focusZ)
	m.installResults()
	m.enqueueAround(center)
	m.evictFar(center)
	m.remesh(center)
}

// installResults drains finished generation results, installing at most
// GenBudget chunks and dropping stale ones.
func (m *Manager) installResults() {
	installed := 0
	for installed < m.opts.GenBudget {
		select {
		case res := <-m.results:
			coord := res.chunk.Coord
			m.mu.Lock()
			delete(m.pending, coord)
			stale := m.epochs[coord] != res.epoch
			m.mu.Unlock()
			if stale {
				continue
			}
			if m.world.Install(res.chunk) {
				installed++
			}
		default:
			return
		}
	}
}

// enqueueAround schedules missing chunks nearest-first, walking rings
// outward from the center column.
func (m *Manager) enqueueAround(center world.ChunkCoord) {
	budget := m.opts.JobsPerUpdate
	for r := 0; r <= m.opts.LoadRadius && budget > 0; r++ {
		m.eachRingColumn(center, r, func(cx, cz int32) {
			for cy := m.opts.ColumnMinY; cy <= m.opts.ColumnMaxY && budget > 0; cy++ {
				if m.request(world.ChunkCoord{X: cx, Y: cy, Z: cz}) {
					budget--
				}
			}
		})
	}
}

// eachRingColumn visits the columns at Chebyshev distance r from the
// center.
func (m *Manager) eachRingColumn(center world.ChunkCoord, r int, fn func(cx, cz int32)) {
	if r == 0 {
		fn(center.X, center.Z)
		return
	}
	r32 := int32(r)
	for dx := -r32; dx <= r32; dx++ {
		fn(center.X+dx, center.Z-r32)
		fn(center.X+dx, center.Z+r32)
	}
	for dz := -r32 + 1; dz <= r32-1; dz++ {
		fn(center.X-r32, center.Z+dz)
		fn(center.X+r32, center.Z+dz)
	}
}

// request enqueues generation for coord unless it is loaded, already
// pending, or the queue is saturated. It reports whether a job was
// enqueued.
func (m *Manager) request(coord world.ChunkCoord) bool {
	if m.world.Loaded(coord) {
		return false
	}
	m.mu.Lock()
	if _, ok := m.pending[coord]; ok {
		m.mu.Unlock()
		return false
	}
	if len(m.pending) >= m.opts.MaxPending {
		m.mu.Unlock()
		return false
	}
	m.pending[coord] = struct{}{}
	epoch := m.epochs[coord]
	m.mu.Unlock()

	select {
	case m.jobs <- genJob{coord: coord, epoch: epoch}:
		return true
	default:
		m.mu.Lock()
		delete(m.pending, coord)
		m.mu.Unlock()
		return false
	}
}

// evictFar unloads chunks beyond the eviction radius and releases
// their meshes. The eviction epoch bump invalidates any in-flight
// generation for the coord.
func (m *Manager) evictFar(center world.ChunkCoord) {
	var far []world.ChunkCoord
	m.world.EachChunk(func(c *world.Chunk) {
		dx := chebAbs(c.Coord.X - center.X)
		dz := chebAbs(c.Coord.Z - center.Z)
		if dx > int32(m.opts.EvictRadius) || dz > int32(m.opts.EvictRadius) {
			far = append(far, c.Coord)
		}
	})
	for _, coord := range far {
		m.world.Remove(coord)
		m.mu.Lock()
		m.epochs[coord]++
		m.mu.Unlock()
		if m.meshed[coord] {
			m.sink.Release(coord)
			delete(m.meshed, coord)
		}
	}
}

// remesh rebuilds up to MeshBudget dirty chunks, nearest first.
func (m *Manager) remesh(center world.ChunkCoord) {
	dirty := m.world.DirtyChunks()
	if len(dirty) == 0 {
		return
	}
	sort.Slice(dirty, func(i, j int) bool {
		return chunkDistSq(dirty[i], center) < chunkDistSq(dirty[j], center)
	})
	if len(dirty) > m.opts.MeshBudget {
		dirty = dirty[:m.opts.MeshBudget]
	}
	for _, coord := range dirty {
		c := m.world.Chunk(coord)
		if c == nil {
			continue
		}
		built, ok := mesh.Build(m.world, coord)
		if !ok {
			continue
		}
		c.ClearDirty()
		if built.FaceCount() == 0 {
			if m.meshed[coord] {
				m.sink.Release(coord)
				delete(m.meshed, coord)
			}
			continue
		}
		m.sink.Upload(built)
		m.meshed[coord] = true
	}
}

// PendingCount returns the number of in-flight generation jobs.
func (m *Manager) PendingCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}

func chebAbs(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

func chunkDistSq(a, b world.ChunkCoord) int64 {
	dx := int64(a.X - b.X)
	dy := int64(a.Y - b.Y)
	dz := int64(a.Z - b.Z)
	return dx*dx + dy*dy + dz*dz
}
