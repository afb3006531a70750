package main

import (
	"math"

	"github.com/dhconnelly/rtreego"
)

// edgeEntry wraps one polygon edge, in plane coordinates, for R-tree storage.
type edgeEntry struct {
	start planePoint
	end   planePoint
	bbox  rtreego.Rect
}

// Bounds implements rtreego.Spatial interface
func (e *edgeEntry) Bounds() rtreego.Rect {
	return e.bbox
}

// edgeIndex answers "which edges can this scan line touch" so clipping a
// sweep line does not have to test every edge of a dense boundary.
type edgeIndex struct {
	tree *rtreego.Rtree
}

// rtreego requires strictly positive extents, so axis-aligned edges get their
// degenerate dimension padded.
const rectEpsilon = 1e-9

func newEdgeIndex(ring []planePoint) *edgeIndex {
	tree := rtreego.NewTree(2, 25, 50)

	n := len(ring)
	for i := 0; i < n; i++ {
		start, end := ring[i], ring[(i+1)%n]
		bbox, err := edgeRect(start, end)
		if err != nil {
			continue
		}
		tree.Insert(&edgeEntry{start: start, end: end, bbox: bbox})
	}

	return &edgeIndex{tree: tree}
}

// candidates returns the edges whose bounding boxes intersect the box spanned
// by a and b.
func (idx *edgeIndex) candidates(a, b planePoint) []*edgeEntry {
	bbox, err := edgeRect(a, b)
	if err != nil {
		return nil
	}

	results := idx.tree.SearchIntersect(bbox)
	edges := make([]*edgeEntry, 0, len(results))
	for _, item := range results {
		edges = append(edges, item.(*edgeEntry))
	}
	return edges
}

func edgeRect(a, b planePoint) (rtreego.Rect, error) {
	minX := math.Min(a.X, b.X)
	minY := math.Min(a.Y, b.Y)
	return rtreego.NewRect(
		rtreego.Point{minX - rectEpsilon, minY - rectEpsilon},
		[]float64{
			math.Abs(a.X-b.X) + 2*rectEpsilon,
			math.Abs(a.Y-b.Y) + 2*rectEpsilon,
		},
	)
}
