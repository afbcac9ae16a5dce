// Copyright 2025 The OpenAEC Foundation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package steel provides rolled-profile tables, steel grades and the
// cross-section resistance check used to verify and size frame members.
package steel

import (
	"sort"
	"strings"

	"github.com/cpmech/gosl/chk"
)

// Profile holds the section properties of one rolled steel profile (strong
// axis bending). All values are SI: m², m⁴, m³, m, kg/m.
type Profile struct {
	Name string
	H    float64 // section depth
	A    float64 // cross-section area
	Iy   float64 // second moment of area, strong axis
	Wel  float64 // elastic section modulus, strong axis
	Avz  float64 // shear area (web)
	Mass float64 // mass per metre
}

// Grade is a structural steel grade
type Grade struct {
	Name string
	Fy   float64 // yield strength [Pa]
}

// common European structural steel grades (nominal fy for t <= 40mm)
var Grades = map[string]Grade{
	"S235": {Name: "S235", Fy: 235e6},
	"S275": {Name: "S275", Fy: 275e6},
	"S355": {Name: "S355", Fy: 355e6},
}

// Profiles maps profile names to their section properties
var Profiles = map[string]Profile{}

// table rows: name, h[mm], A[cm²], Iy[cm⁴], Wel[cm³], Avz[cm²], mass[kg/m]
var profileRows = []struct {
	name                   string
	h, a, iy, wel, avz, kg float64
}{
	{"IPE80", 80, 7.64, 80.1, 20.0, 3.58, 6.0},
	{"IPE100", 100, 10.3, 171, 34.2, 5.08, 8.1},
	{"IPE120", 120, 13.2, 318, 53.0, 6.31, 10.4},
	{"IPE140", 140, 16.4, 541, 77.3, 7.64, 12.9},
	{"IPE160", 160, 20.1, 869, 109, 9.66, 15.8},
	{"IPE180", 180, 23.9, 1320, 146, 11.3, 18.8},
	{"IPE200", 200, 28.5, 1940, 194, 14.0, 22.4},
	{"IPE220", 220, 33.4, 2770, 252, 15.9, 26.2},
	{"IPE240", 240, 39.1, 3890, 324, 19.1, 30.7},
	{"IPE270", 270, 45.9, 5790, 429, 22.1, 36.1},
	{"IPE300", 300, 53.8, 8360, 557, 25.7, 42.2},
	{"IPE330", 330, 62.6, 11770, 713, 30.8, 49.1},
	{"IPE360", 360, 72.7, 16270, 904, 35.1, 57.1},
	{"IPE400", 400, 84.5, 23130, 1160, 42.7, 66.3},
	{"IPE450", 450, 98.8, 33740, 1500, 50.8, 77.6},
	{"IPE500", 500, 116, 48200, 1930, 59.9, 90.7},
	{"IPE550", 550, 134, 67120, 2440, 72.3, 106},
	{"IPE600", 600, 156, 92080, 3070, 83.8, 122},

	{"HEA100", 96, 21.2, 349, 72.8, 7.56, 16.7},
	{"HEA120", 114, 25.3, 606, 106, 8.46, 19.9},
	{"HEA140", 133, 31.4, 1030, 155, 10.1, 24.7},
	{"HEA160", 152, 38.8, 1670, 220, 13.2, 30.4},
	{"HEA180", 171, 45.3, 2510, 294, 14.5, 35.5},
	{"HEA200", 190, 53.8, 3690, 389, 18.1, 42.3},
	{"HEA220", 210, 64.3, 5410, 515, 20.7, 50.5},
	{"HEA240", 230, 76.8, 7760, 675, 25.2, 60.3},
	{"HEA260", 250, 86.8, 10450, 836, 28.8, 68.2},
	{"HEA280", 270, 97.3, 13670, 1010, 31.7, 76.4},
	{"HEA300", 290, 112.5, 18260, 1260, 37.3, 88.3},
	{"HEA340", 330, 133.5, 27690, 1680, 45.0, 105},
	{"HEA400", 390, 159.0, 45070, 2310, 57.3, 125},
	{"HEA500", 490, 197.5, 86970, 3550, 74.7, 155},
	{"HEA600", 590, 226.5, 141200, 4790, 93.2, 178},

	{"HEB100", 100, 26.0, 450, 89.9, 9.04, 20.4},
	{"HEB120", 120, 34.0, 864, 144, 11.0, 26.7},
	{"HEB140", 140, 43.0, 1510, 216, 13.1, 33.7},
	{"HEB160", 160, 54.3, 2490, 311, 17.6, 42.6},
	{"HEB180", 180, 65.3, 3830, 426, 20.2, 51.2},
	{"HEB200", 200, 78.1, 5700, 570, 24.8, 61.3},
	{"HEB220", 220, 91.0, 8090, 736, 27.9, 71.5},
	{"HEB240", 240, 106, 11260, 938, 33.2, 83.2},
	{"HEB260", 260, 118.4, 14920, 1150, 37.6, 93.0},
	{"HEB280", 280, 131.4, 19270, 1380, 41.1, 103},
	{"HEB300", 300, 149.1, 25170, 1680, 47.4, 117},
	{"HEB340", 340, 170.9, 36660, 2160, 56.1, 134},
	{"HEB400", 400, 197.8, 57680, 2880, 70.0, 155},
	{"HEB500", 500, 238.6, 107200, 4290, 89.8, 187},
	{"HEB600", 600, 270.0, 171000, 5700, 110.8, 212},
}

func init() {
	for _, r := range profileRows {
		Profiles[r.name] = Profile{
			Name: r.name,
			H:    r.h / 1000.0,
			A:    r.a * 1e-4,
			Iy:   r.iy * 1e-8,
			Wel:  r.wel * 1e-6,
			Avz:  r.avz * 1e-4,
			Mass: r.kg,
		}
	}
}

// GetProfile returns a profile by name (case-insensitive)
func GetProfile(name string) (Profile, error) {
	if p, ok := Profiles[strings.ToUpper(strings.TrimSpace(name))]; ok {
		return p, nil
	}
	return Profile{}, chk.Err("unknown steel profile %q", name)
}

// GetGrade returns a steel grade by name (case-insensitive)
func GetGrade(name string) (Grade, error) {
	if g, ok := Grades[strings.ToUpper(strings.TrimSpace(name))]; ok {
		return g, nil
	}
	return Grade{}, chk.Err("unknown steel grade %q", name)
}

// Series returns the profiles of one series ("IPE", "HEA" or "HEB"), sorted
// from lightest to heaviest
func Series(series string) []Profile {
	series = strings.ToUpper(strings.TrimSpace(series))
	var res []Profile
	for _, p := range Profiles {
		if strings.HasPrefix(p.Name, series) && len(series) >= 3 {
			res = append(res, p)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Mass < res[j].Mass })
	return res
}
