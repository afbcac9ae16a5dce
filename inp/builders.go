// Copyright 2025 The OpenAEC Foundation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

// default sections used by the parametric builders. The values match the
// IPE200 and IPE300 rolled profiles; callers swap sections afterwards with
// SetProfile when another size is wanted.
var (
	SectionIPE200 = Section{A: 28.5e-4, I: 1940e-8, H: 0.200}
	SectionIPE300 = Section{A: 53.8e-4, I: 8360e-8, H: 0.300}
)

// DefaultSteel registers the default S235 structural steel material
func (o *Model) DefaultSteel() *Material {
	return o.AddMaterial("S235", 210e9, 0.3, 7850, 1.2e-5)
}

// BuildSimplySupported creates a single-span beam: pinned at the left end,
// vertical roller at the right. Returns the beam.
func BuildSimplySupported(span float64) (*Model, *BeamElement) {
	m := NewModel()
	mat := m.DefaultSteel()
	n1 := m.AddNode(0, 0)
	n2 := m.AddNode(span, 0)
	m.SetSupport(n1.ID, "pinned")
	m.SetSupport(n2.ID, "roller")
	b, _ := m.AddBeam(n1.ID, n2.ID, mat.ID, SectionIPE200)
	b.Profile = "IPE200"
	return m, b
}

// BuildCantilever creates a horizontal cantilever fixed at the left end
func BuildCantilever(span float64) (*Model, *BeamElement) {
	m := NewModel()
	mat := m.DefaultSteel()
	n1 := m.AddNode(0, 0)
	n2 := m.AddNode(span, 0)
	m.SetSupport(n1.ID, "fixed")
	b, _ := m.AddBeam(n1.ID, n2.ID, mat.ID, SectionIPE200)
	b.Profile = "IPE200"
	return m, b
}

// BuildPortalFrame creates a rectangular portal: two columns fixed at the
// base and a horizontal girder. Returns left column, girder, right column.
func BuildPortalFrame(width, height float64) (*Model, []*BeamElement) {
	m := NewModel()
	mat := m.DefaultSteel()
	bl := m.AddNode(0, 0)
	tl := m.AddNode(0, height)
	tr := m.AddNode(width, height)
	br := m.AddNode(width, 0)
	m.SetSupport(bl.ID, "fixed")
	m.SetSupport(br.ID, "fixed")
	c1, _ := m.AddBeam(bl.ID, tl.ID, mat.ID, SectionIPE300)
	g, _ := m.AddBeam(tl.ID, tr.ID, mat.ID, SectionIPE300)
	c2, _ := m.AddBeam(br.ID, tr.ID, mat.ID, SectionIPE300)
	for _, b := range []*BeamElement{c1, g, c2} {
		b.Profile = "IPE300"
	}
	return m, []*BeamElement{c1, g, c2}
}

// BuildContinuousBeam creates nspans equal spans on a pinned support at the
// left end and vertical rollers elsewhere
func BuildContinuousBeam(spanLength float64, nspans int) (*Model, []*BeamElement) {
	m := NewModel()
	mat := m.DefaultSteel()
	if nspans < 1 {
		nspans = 1
	}
	nodes := make([]*Node, nspans+1)
	for i := range nodes {
		nodes[i] = m.AddNode(float64(i)*spanLength, 0)
		if i == 0 {
			m.SetSupport(nodes[i].ID, "pinned")
		} else {
			m.SetSupport(nodes[i].ID, "roller")
		}
	}
	beams := make([]*BeamElement, nspans)
	for i := 0; i < nspans; i++ {
		beams[i], _ = m.AddBeam(nodes[i].ID, nodes[i+1].ID, mat.ID, SectionIPE200)
		beams[i].Profile = "IPE200"
	}
	return m, beams
}

// BuildTruss creates a Pratt-type flat truss: nbays bays of the given bay
// width and height, all member ends moment-released so the model carries
// axial forces only. Supports: pinned bottom-left, vertical roller
// bottom-right.
func BuildTruss(bayWidth, height float64, nbays int) (*Model, []*BeamElement) {
	m := NewModel()
	mat := m.DefaultSteel()
	if nbays < 1 {
		nbays = 1
	}
	bot := make([]*Node, nbays+1)
	top := make([]*Node, nbays+1)
	for i := 0; i <= nbays; i++ {
		bot[i] = m.AddNode(float64(i)*bayWidth, 0)
		top[i] = m.AddNode(float64(i)*bayWidth, height)
	}
	m.SetSupport(bot[0].ID, "pinned")
	m.SetSupport(bot[nbays].ID, "roller")

	var beams []*BeamElement
	add := func(a, b *Node) {
		el, _ := m.AddBeam(a.ID, b.ID, mat.ID, SectionIPE200)
		el.Profile = "IPE200"
		m.SetReleases(el.ID, true, true)
		beams = append(beams, el)
	}
	for i := 0; i < nbays; i++ {
		add(bot[i], bot[i+1]) // bottom chord
		add(top[i], top[i+1]) // top chord
	}
	mid := nbays / 2
	for i := 0; i <= nbays; i++ {
		add(bot[i], top[i]) // verticals
	}
	for i := 0; i < nbays; i++ {
		// diagonals lean towards midspan
		if i < mid {
			add(bot[i], top[i+1])
		} else {
			add(top[i], bot[i+1])
		}
	}
	return m, beams
}
