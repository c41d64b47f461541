// Package lattice provides the node storage a lattice-based conversion
// search runs over. The session model caches one Lattice per session so
// repeated conversions of a growing preedit reuse node storage; the search
// and scoring that fill the lattice live in the converter, not here.
package lattice

import (
	"fmt"
	"iter"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/Team-Hmm/superIME/internal/pool"
)

// nodePoolCapacity sizes the per-lattice node slab. A long preedit easily
// produces hundreds of nodes per conversion; past the slab the pool falls
// back to the heap.
const nodePoolCapacity = 1024

// Lattice stores the nodes of one conversion attempt, indexed by the byte
// position of the key at which they begin and end. Position p is valid for
// 0 <= p <= len(key): the slot one past the last byte holds the nodes that
// end at (or begin after) the final byte, EOS included.
//
// Alongside the nodes the lattice keeps cache records for incremental
// re-conversion: CacheInfo(pos) is the word length up to which dictionary
// lookup from pos has been exhausted, so a re-keyed lattice tells the
// converter exactly which lookups it may skip and where to resume.
//
// Lattice is not safe for concurrent use. The zero value is an empty
// lattice; SetKey prepares it for inserts.
type Lattice struct {
	key           string
	beginNodes    []*Node // chain heads, linked through BNext
	endNodes      []*Node // chain heads, linked through ENext
	historyEndPos int
	nodes         *pool.Pool[Node]
	cachedPos     *roaring.Bitmap // positions holding a cache record
	cacheLens     []int32         // exhausted lookup length per position
}

func (l *Lattice) pool() *pool.Pool[Node] {
	if l.nodes == nil {
		l.nodes = pool.New[Node](nodePoolCapacity)
	}
	return l.nodes
}

// Key returns the key the lattice was last initialized with.
func (l *Lattice) Key() string {
	return l.key
}

// HasLattice reports whether SetKey has prepared node storage.
func (l *Lattice) HasLattice() bool {
	return len(l.beginNodes) > 0
}

// SetKey clears the lattice and sizes the position lists for key.
func (l *Lattice) SetKey(key string) {
	l.Clear()
	l.key = key
	n := len(key) + 1
	l.beginNodes = grow(l.beginNodes, n)
	l.endNodes = grow(l.endNodes, n)
	l.cacheLens = grow(l.cacheLens, n)
}

// UpdateKey re-keys the lattice in place, the as-you-type pattern: node
// chains and cache records covering the shared byte prefix of the old and
// new key survive, everything else is released. Cache records are clamped
// to the shared prefix, so lookups the converter resumes from CacheInfo
// still find every word the new key admits. Without a shared prefix,
// UpdateKey is SetKey.
func (l *Lattice) UpdateKey(newKey string) {
	if l.HasLattice() && newKey == l.key {
		return
	}
	shared := sharedPrefixLen(l.key, newKey)
	if !l.HasLattice() || shared == 0 {
		l.SetKey(newKey)
		return
	}

	// Release what the new key cannot reuse: whole chains at and past the
	// prefix, individual nodes whose span leaves it.
	for pos, head := range l.beginNodes {
		if pos >= shared {
			l.releaseChain(head)
			l.beginNodes[pos] = nil
			continue
		}
		l.beginNodes[pos] = l.filterChain(head, shared)
	}

	// A cache record past the prefix is gone; one inside it shrinks to the
	// lookups the prefix could answer. Words reaching past the prefix must
	// be looked up again, the new key may extend them.
	if l.cachedPos != nil {
		l.cachedPos.RemoveRange(uint64(shared), uint64(len(l.beginNodes)))
		it := l.cachedPos.Iterator()
		for it.HasNext() {
			pos := int(it.Next())
			if l.cacheLens[pos] > int32(shared-pos) {
				l.cacheLens[pos] = int32(shared - pos)
			}
		}
	}

	n := len(newKey) + 1
	l.key = newKey
	l.historyEndPos = min(l.historyEndPos, shared)
	l.beginNodes = resize(l.beginNodes, n)
	l.endNodes = resize(l.endNodes, n)
	l.cacheLens = resize(l.cacheLens, n)

	// Re-thread the end lists from the surviving chains.
	clear(l.endNodes)
	for pos := 0; pos < shared; pos++ {
		for node := l.beginNodes[pos]; node != nil; node = node.BNext {
			node.ENext = l.endNodes[node.EndPos]
			l.endNodes[node.EndPos] = node
		}
	}
}

// releaseChain returns every node of a begin chain to the pool.
func (l *Lattice) releaseChain(head *Node) {
	for head != nil {
		next := head.BNext
		l.pool().Put(head)
		head = next
	}
}

// filterChain keeps the nodes whose whole span lies within the first limit
// bytes and that the old key end did not clamp; the rest go back to the
// pool. Chain order is preserved.
func (l *Lattice) filterChain(head *Node, limit int) *Node {
	var first, last *Node
	for n := head; n != nil; {
		next := n.BNext
		if n.EndPos > limit || n.EndPos-n.BeginPos != len(n.Key) {
			l.pool().Put(n)
		} else {
			n.BNext = nil
			if first == nil {
				first = n
			} else {
				last.BNext = n
			}
			last = n
		}
		n = next
	}
	return first
}

// grow resizes s to n cleared slots, reusing capacity when it can.
func grow[T any](s []T, n int) []T {
	if cap(s) < n {
		return make([]T, n)
	}
	s = s[:n]
	clear(s)
	return s
}

// resize adjusts s to n slots, preserving existing contents and clearing
// anything newly exposed from spare capacity.
func resize[T any](s []T, n int) []T {
	if cap(s) < n {
		out := make([]T, n)
		copy(out, s)
		return out
	}
	old := len(s)
	s = s[:n]
	if old < n {
		clear(s[old:])
	}
	return s
}

// sharedPrefixLen returns the byte length of the longest common prefix of a
// and b.
func sharedPrefixLen(a, b string) int {
	n := min(len(a), len(b))
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}

// Clear drops every node, the key and the cache records. Node storage and
// position-list capacity are retained for the next conversion.
func (l *Lattice) Clear() {
	l.key = ""
	clear(l.beginNodes)
	l.beginNodes = l.beginNodes[:0]
	clear(l.endNodes)
	l.endNodes = l.endNodes[:0]
	clear(l.cacheLens)
	l.cacheLens = l.cacheLens[:0]
	l.historyEndPos = 0
	if l.nodes != nil {
		l.nodes.Reset()
	}
	if l.cachedPos != nil {
		l.cachedPos.Clear()
	}
}

// NewNode returns a cleared node owned by the lattice. The node stays valid
// until the next Clear or SetKey.
func (l *Lattice) NewNode() *Node {
	return l.pool().Get()
}

// Insert hooks a chain of nodes into position pos. The chain is linked
// through BNext; every node in it is registered in the end list of the
// position it ends at (clamped to the key end), and the chain as a whole is
// prepended to the begin list of pos. Prev, Next and the accumulated cost
// are cleared, they belong to the search that follows.
func (l *Lattice) Insert(pos int, node *Node) {
	if node == nil {
		panic("lattice: Insert of nil node")
	}
	l.checkPos(pos)

	last := node
	for n := node; n != nil; n = n.BNext {
		end := min(pos+len(n.Key), len(l.key))
		n.BeginPos = pos
		n.EndPos = end
		n.Prev = nil
		n.Next = nil
		n.Cost = 0
		n.ENext = l.endNodes[end]
		l.endNodes[end] = n
		last = n
	}
	last.BNext = l.beginNodes[pos]
	l.beginNodes[pos] = node
}

// BeginNodes returns the head of the chain of nodes beginning at pos,
// linked through BNext. It is nil when no node begins there.
func (l *Lattice) BeginNodes(pos int) *Node {
	l.checkPos(pos)
	return l.beginNodes[pos]
}

// EndNodes returns the head of the chain of nodes ending at pos, linked
// through ENext. It is nil when no node ends there.
func (l *Lattice) EndNodes(pos int) *Node {
	l.checkPos(pos)
	return l.endNodes[pos]
}

// BOSNodes returns the beginning-of-sentence chain, kept in the end list of
// position 0.
func (l *Lattice) BOSNodes() *Node {
	return l.EndNodes(0)
}

// EOSNodes returns the end-of-sentence chain, kept in the begin list one
// past the final key byte.
func (l *Lattice) EOSNodes() *Node {
	return l.BeginNodes(len(l.key))
}

// SetHistoryEndPos records where the committed history context ends inside
// the key; the actual user input starts there.
func (l *Lattice) SetHistoryEndPos(pos int) {
	l.historyEndPos = pos
}

// HistoryEndPos returns the recorded history boundary.
func (l *Lattice) HistoryEndPos() int {
	return l.historyEndPos
}

// SetCacheInfo records that dictionary lookup from pos has been exhausted
// for words up to length bytes. The converter resumes a later lookup at
// pos from length+1, skipping the words already in the chain. A
// non-positive length removes the record.
func (l *Lattice) SetCacheInfo(pos, length int) {
	l.checkPos(pos)
	if length <= 0 {
		if l.cachedPos != nil {
			l.cachedPos.Remove(uint32(pos))
		}
		return
	}
	if l.cachedPos == nil {
		l.cachedPos = roaring.New()
	}
	l.cachedPos.Add(uint32(pos))
	l.cacheLens[pos] = int32(length)
}

// CacheInfo returns the exhausted lookup length recorded at pos, 0 when
// there is none.
func (l *Lattice) CacheInfo(pos int) int {
	if l.cachedPos == nil || pos < 0 || pos >= len(l.cacheLens) || !l.cachedPos.Contains(uint32(pos)) {
		return 0
	}
	return int(l.cacheLens[pos])
}

// IsCached reports whether pos holds a cache record.
func (l *Lattice) IsCached(pos int) bool {
	return l.CacheInfo(pos) > 0
}

// InvalidateCacheFrom drops the cache records at and after pos. A
// non-positive pos drops every record.
func (l *Lattice) InvalidateCacheFrom(pos int) {
	if l.cachedPos == nil {
		return
	}
	if pos <= 0 {
		l.cachedPos.Clear()
		return
	}
	if pos >= len(l.beginNodes) {
		return
	}
	l.cachedPos.RemoveRange(uint64(pos), uint64(len(l.beginNodes)))
}

// CachedPositions iterates the positions holding cache records in ascending
// order.
func (l *Lattice) CachedPositions() iter.Seq[int] {
	return func(yield func(int) bool) {
		if l.cachedPos == nil {
			return
		}
		it := l.cachedPos.Iterator()
		for it.HasNext() {
			if !yield(int(it.Next())) {
				return
			}
		}
	}
}

func (l *Lattice) checkPos(pos int) {
	if pos < 0 || pos >= len(l.beginNodes) {
		panic(fmt.Sprintf("lattice: position %d out of range [0, %d)", pos, len(l.beginNodes)))
	}
}

// AllocatorStats reports node slab usage for capacity tuning.
type AllocatorStats struct {
	Gets          uint64
	PoolHits      uint64
	HeapFallbacks uint64
	Puts          uint64
	Live          int
}

// AllocatorStats returns a snapshot of the node pool counters.
func (l *Lattice) AllocatorStats() AllocatorStats {
	if l.nodes == nil {
		return AllocatorStats{}
	}
	st := l.nodes.Stats()
	return AllocatorStats{
		Gets:          st.Gets,
		PoolHits:      st.PoolHits,
		HeapFallbacks: st.HeapFallbacks,
		Puts:          st.Puts,
		Live:          st.Live,
	}
}

// String summarizes the lattice for debug output.
func (l *Lattice) String() string {
	if !l.HasLattice() {
		return "Lattice{empty}"
	}
	nodes := 0
	for _, head := range l.beginNodes {
		for n := head; n != nil; n = n.BNext {
			nodes++
		}
	}
	return fmt.Sprintf("Lattice{key: %q, positions: %d, nodes: %d, historyEnd: %d}",
		l.key, len(l.beginNodes), nodes, l.historyEndPos)
}
