package geometry

import (
	"sort"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// BVHNode represents a node in the Bounding Volume Hierarchy.
// Children are either further nodes or the primitives themselves.
type BVHNode struct {
	Left  Hittable
	Right Hittable
	Box   core.AABB

	single bool // Left and Right hold the same lone object
}

// NewBVH constructs a BVH over objects using median splits on the longest axis
func NewBVH(objects []Hittable) *BVHNode {
	if len(objects) == 0 {
		return &BVHNode{Box: core.EmptyAABB}
	}

	// Sort a copy so the caller's ordering is untouched
	objectsCopy := make([]Hittable, len(objects))
	copy(objectsCopy, objects)

	return buildBVH(objectsCopy)
}

// buildBVH recursively splits objects, which it reorders in place
func buildBVH(objects []Hittable) *BVHNode {
	box := core.EmptyAABB
	for _, object := range objects {
		box = core.NewAABBUnion(box, object.BoundingBox())
	}

	node := &BVHNode{Box: box}
	switch n := len(objects); n {
	case 1:
		node.Left, node.Right = objects[0], objects[0]
		node.single = true
	case 2:
		node.Left, node.Right = objects[0], objects[1]
	default:
		axis := box.LongestAxis()
		sort.SliceStable(objects, func(i, j int) bool {
			return objects[i].BoundingBox().Axis(axis).Min < objects[j].BoundingBox().Axis(axis).Min
		})

		mid := n / 2
		node.Left = buildBVH(objects[:mid])
		node.Right = buildBVH(objects[mid:])
	}

	return node
}

// Hit tests the ray against the node box, then both children, keeping the nearer hit
func (n *BVHNode) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler) (*material.HitRecord, bool) {
	if n.Left == nil || !n.Box.Hit(ray, rayT) {
		return nil, false
	}

	leftHit, hitLeft := n.Left.Hit(ray, rayT, sampler)

	upper := rayT.Max
	if hitLeft {
		upper = leftHit.T
	}
	if rightHit, hitRight := n.Right.Hit(ray, core.NewInterval(rayT.Min, upper), sampler); hitRight {
		return rightHit, true
	}

	return leftHit, hitLeft
}

// BoundingBox returns the box enclosing everything below this node
func (n *BVHNode) BoundingBox() core.AABB {
	return n.Box
}

// bvhStats contains statistics about the BVH structure
type bvhStats struct {
	totalNodes int
	leafNodes  int
	maxDepth   int
}

// getStats returns statistics about the BVH structure
func (n *BVHNode) getStats() bvhStats {
	stats := bvhStats{}
	if n.Left == nil {
		return stats
	}
	n.collectStats(0, &stats)
	return stats
}

// collectStats recursively collects statistics; primitives count as leaves
func (n *BVHNode) collectStats(depth int, stats *bvhStats) {
	stats.totalNodes++
	if depth > stats.maxDepth {
		stats.maxDepth = depth
	}

	children := []Hittable{n.Left}
	if !n.single {
		children = append(children, n.Right)
	}
	for _, child := range children {
		if node, ok := child.(*BVHNode); ok {
			node.collectStats(depth+1, stats)
		} else {
			stats.leafNodes++
		}
	}
}
