// Copyright 2025 The OpenAEC Foundation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import "math"

// Point is a 2D coordinate pair used by polygon outlines
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PlateRegion is a user-drawn area auto-meshed into 4-node plane elements.
// Either the axis-aligned rectangle (W > 0) or the polygon outline is set.
// Generated entities belong to exactly one region and are removed with it.
type PlateRegion struct {
	ID         int       `json:"id"`
	X          float64   `json:"x"`
	Y          float64   `json:"y"`
	W          float64   `json:"width"`
	H          float64   `json:"height"`
	Outline    []Point   `json:"outline,omitempty"` // polygon regions
	Voids      [][]Point `json:"voids,omitempty"`
	MaterialID int       `json:"materialId"`
	Thickness  float64   `json:"thickness"`
	MeshSize   float64   `json:"meshSize"` // target element edge [m]

	// generated (derived, rebuilt on re-mesh)
	GenNodes    []int `json:"genNodes,omitempty"`
	GenElems    []int `json:"genElems,omitempty"`
	CornerNodes []int `json:"cornerNodes,omitempty"` // edit handles triggering re-mesh
}

// IsPolygon tells whether the region is defined by an outline
func (o *PlateRegion) IsPolygon() bool { return len(o.Outline) > 2 }

// pointInPolygon implements the even-odd ray casting rule
func pointInPolygon(x, y float64, poly []Point) bool {
	inside := false
	n := len(poly)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		xi, yi := poly[i].X, poly[i].Y
		xj, yj := poly[j].X, poly[j].Y
		if (yi > y) != (yj > y) {
			t := (y - yi) / (yj - yi)
			if x < xi+t*(xj-xi) {
				inside = !inside
			}
		}
	}
	return inside
}

// cellInRegion tells whether a grid cell centered at (cx,cy) belongs to the
// region (inside the outline, outside every void)
func (o *PlateRegion) cellInRegion(cx, cy float64) bool {
	if !o.IsPolygon() {
		return cx > o.X && cx < o.X+o.W && cy > o.Y && cy < o.Y+o.H
	}
	if !pointInPolygon(cx, cy, o.Outline) {
		return false
	}
	for _, v := range o.Voids {
		if pointInPolygon(cx, cy, v) {
			return false
		}
	}
	return true
}

// bbox returns the bounding box of the region
func (o *PlateRegion) bbox() (x0, y0, x1, y1 float64) {
	if !o.IsPolygon() {
		return o.X, o.Y, o.X + o.W, o.Y + o.H
	}
	x0, y0 = o.Outline[0].X, o.Outline[0].Y
	x1, y1 = x0, y0
	for _, p := range o.Outline[1:] {
		x0 = math.Min(x0, p.X)
		y0 = math.Min(y0, p.Y)
		x1 = math.Max(x1, p.X)
		y1 = math.Max(y1, p.Y)
	}
	return
}

// generate meshes the region into an axis-aligned quad grid. Cells whose
// center falls outside the outline or inside a void are skipped. Nodes are
// shared between the region's own cells but never with other regions.
func (o *PlateRegion) generate(msh *Mesh) {
	x0, y0, x1, y1 := o.bbox()
	size := o.MeshSize
	if size <= 0 {
		size = 0.5
	}
	nx := int(math.Max(1, math.Round((x1-x0)/size)))
	ny := int(math.Max(1, math.Round((y1-y0)/size)))
	dx := (x1 - x0) / float64(nx)
	dy := (y1 - y0) / float64(ny)

	// grid vertex -> node id, created lazily so void interiors stay empty
	vid := make(map[[2]int]int)
	nodeAt := func(i, j int) int {
		key := [2]int{i, j}
		if id, ok := vid[key]; ok {
			return id
		}
		n := &Node{ID: msh.allocID(), X: x0 + float64(i)*dx, Y: y0 + float64(j)*dy}
		msh.Nodes = append(msh.Nodes, n)
		vid[key] = n.ID
		o.GenNodes = append(o.GenNodes, n.ID)
		return n.ID
	}

	o.GenNodes = nil
	o.GenElems = nil
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			cx := x0 + (float64(i)+0.5)*dx
			cy := y0 + (float64(j)+0.5)*dy
			if !o.cellInRegion(cx, cy) {
				continue
			}
			e := &PlaneElement{
				ID:         msh.allocID(),
				NodeIDs:    []int{nodeAt(i, j), nodeAt(i+1, j), nodeAt(i+1, j+1), nodeAt(i, j+1)},
				MaterialID: o.MaterialID,
				Thickness:  o.Thickness,
				RegionID:   o.ID,
			}
			msh.Planes = append(msh.Planes, e)
			o.GenElems = append(o.GenElems, e.ID)
		}
	}

	// corner handles: for rectangles the four corners; for polygons the
	// generated node nearest to each outline vertex
	o.CornerNodes = nil
	corners := o.Outline
	if !o.IsPolygon() {
		corners = []Point{{o.X, o.Y}, {o.X + o.W, o.Y}, {o.X + o.W, o.Y + o.H}, {o.X, o.Y + o.H}}
	}
	for _, c := range corners {
		best, bestD := 0, math.MaxFloat64
		for _, nid := range o.GenNodes {
			n := msh.Node(nid)
			d := math.Hypot(n.X-c.X, n.Y-c.Y)
			if d < bestD {
				best, bestD = nid, d
			}
		}
		if best != 0 {
			o.CornerNodes = append(o.CornerNodes, best)
		}
	}
}

// EdgeSegment returns the geometric segment of a region boundary edge. For
// rectangles the index selects bottom(0), right(1), top(2), left(3); for
// polygons it selects the outline segment starting at that vertex.
func (o *PlateRegion) EdgeSegment(edge int) (a, b Point, err error) {
	if o.IsPolygon() {
		n := len(o.Outline)
		if edge < 0 || edge >= n {
			return a, b, Valerr("bad-edge", "plate region %d has no outline segment %d", o.ID, edge)
		}
		return o.Outline[edge], o.Outline[(edge+1)%n], nil
	}
	switch edge {
	case 0:
		return Point{o.X, o.Y}, Point{o.X + o.W, o.Y}, nil
	case 1:
		return Point{o.X + o.W, o.Y}, Point{o.X + o.W, o.Y + o.H}, nil
	case 2:
		return Point{o.X + o.W, o.Y + o.H}, Point{o.X, o.Y + o.H}, nil
	case 3:
		return Point{o.X, o.Y + o.H}, Point{o.X, o.Y}, nil
	}
	return a, b, Valerr("bad-edge", "plate region %d has no edge %d", o.ID, edge)
}
