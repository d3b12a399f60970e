package william3

import (
	"fmt"
	"math/bits"
	"slices"
)

// Shape selects how the chunk labels of a message are paired into a tree.
//
// The shape depends only on the message length, never on its content.
type Shape uint8

const (
	// ShapeLeftFold folds the chunk labels strictly left to right:
	// chunk 0 is combined with chunk 1,
	// that result with chunk 2, and so on.
	// Every combine binds the length of the entire message.
	//
	// This is the shape used by [BatchHash].
	ShapeLeftFold Shape = iota

	// ShapeLeftComplete builds a left-complete binary tree,
	// where the left child of every node covers
	// the largest power of two chunks below the node's chunk count.
	// Every combine binds the byte length of its own subtree.
	//
	// For messages of at most two chunks,
	// it is identical to [ShapeLeftFold].
	ShapeLeftComplete

	nShapes
)

var shapeNames = [nShapes]string{
	ShapeLeftFold:     "left-fold",
	ShapeLeftComplete: "left-complete",
}

func (s Shape) String() string {
	if s >= nShapes {
		return fmt.Sprintf("Shape(%d)", uint8(s))
	}
	return shapeNames[s]
}

// ParseShape returns the Shape whose [Shape.String] value is name.
func ParseShape(name string) (Shape, error) {
	for i, n := range shapeNames {
		if n == name {
			return Shape(i), nil
		}
	}
	return 0, UnknownShapeError{Name: name}
}

// Valid reports whether s is one of the defined shapes.
func (s Shape) Valid() bool {
	return s < nShapes
}

// NumChunks returns the number of chunks in a message of the given length.
// An empty message is a single empty chunk.
func NumChunks(length uint64) uint64 {
	if length == 0 {
		return 1
	}
	return (length-1)/ChunkSize + 1
}

// ChunkLen returns the length of chunk idx in a message of the given length.
// It panics if idx is out of range.
func ChunkLen(length, idx uint64) uint64 {
	n := NumChunks(length)
	if idx >= n {
		panic(fmt.Errorf(
			"BUG: chunk index %d out of range for %d chunks", idx, n,
		))
	}
	return rangeLen(length, n, idx, idx+1)
}

// rangeLen returns the byte length of chunks [lo, hi)
// in a message of the given length and chunk count n.
func rangeLen(length, n, lo, hi uint64) uint64 {
	// Only the final chunk can be short,
	// and below the final chunk the multiplications cannot overflow.
	end := length
	if hi < n {
		end = hi * ChunkSize
	}
	return end - lo*ChunkSize
}

// leftChunks returns how many of k > 1 chunks belong in the left subtree.
func (s Shape) leftChunks(k uint64) uint64 {
	switch s {
	case ShapeLeftFold:
		return k - 1
	case ShapeLeftComplete:
		return 1 << (bits.Len64(k-1) - 1)
	default:
		panic(fmt.Errorf("BUG: unknown shape %d", uint8(s)))
	}
}

// mergeLength returns the length bound into the combine of chunks [lo, hi).
func (s Shape) mergeLength(length, n, lo, hi uint64) uint64 {
	if s == ShapeLeftFold {
		return length
	}
	return rangeLen(length, n, lo, hi)
}

// Merge describes a single inner combine in a planned tree.
//
// In a plan for n chunks, node indices below n refer to chunk labels,
// and the k-th Merge in the plan produces node n+k.
type Merge struct {
	Left, Right uint64

	// The length argument to [HashInner].
	Length uint64

	IsRoot bool
}

// Merges returns the complete combine plan for a message of the given length,
// in an order where every Merge appears after the merges producing its children.
// The final Merge, if any, is the root.
//
// Single chunk messages have no merges.
func (s Shape) Merges(length uint64) []Merge {
	n := NumChunks(length)
	if n == 1 {
		return nil
	}

	out := make([]Merge, 0, n-1)

	switch s {
	case ShapeLeftFold:
		acc := uint64(0)
		for i := uint64(1); i < n; i++ {
			out = append(out, Merge{
				Left:   acc,
				Right:  i,
				Length: length,
				IsRoot: i == n-1,
			})
			acc = n + uint64(len(out)) - 1
		}

	case ShapeLeftComplete:
		// The same chaining value stack that the Reducer uses,
		// but tracking node indices instead of labels.
		type subtree struct {
			node, length uint64
		}
		stack := make([]subtree, 0, 64)
		merge := func(left, right subtree, isRoot bool) subtree {
			out = append(out, Merge{
				Left:   left.node,
				Right:  right.node,
				Length: left.length + right.length,
				IsRoot: isRoot,
			})
			return subtree{
				node:   n + uint64(len(out)) - 1,
				length: left.length + right.length,
			}
		}

		for i := uint64(0); i < n-1; i++ {
			cur := subtree{node: i, length: ChunkSize}
			for total := i + 1; total&1 == 0; total >>= 1 {
				left := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				cur = merge(left, cur, false)
			}
			stack = append(stack, cur)
		}

		cur := subtree{node: n - 1, length: rangeLen(length, n, n-1, n)}
		for j := len(stack) - 1; j >= 0; j-- {
			cur = merge(stack[j], cur, j == 0)
		}

	default:
		panic(fmt.Errorf("BUG: unknown shape %d", uint8(s)))
	}

	return out
}

// Step is one level of the path from a chunk to the root.
type Step struct {
	// Whether the sibling at this level is the left operand.
	// If false, the sibling is the right operand.
	SiblingLeft bool

	// The length argument to [HashInner].
	Length uint64

	IsRoot bool
}

// Path returns the steps from chunk idx up to the root,
// for a message of the given length.
// The first step combines the chunk label with its sibling,
// and the final step is the root combine.
//
// Single chunk messages have an empty path.
// Path panics if idx is out of range.
func (s Shape) Path(length, idx uint64) []Step {
	n := NumChunks(length)
	if idx >= n {
		panic(fmt.Errorf(
			"BUG: chunk index %d out of range for %d chunks", idx, n,
		))
	}

	var steps []Step

	// Walk down from the root, narrowing [lo, hi) to the target chunk.
	lo, hi := uint64(0), n
	for hi-lo > 1 {
		mid := lo + s.leftChunks(hi-lo)
		st := Step{
			Length: s.mergeLength(length, n, lo, hi),
			IsRoot: lo == 0 && hi == n,
		}
		if idx < mid {
			hi = mid
		} else {
			st.SiblingLeft = true
			lo = mid
		}
		steps = append(steps, st)
	}

	slices.Reverse(steps)
	return steps
}
