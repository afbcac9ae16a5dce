// Copyright 2025 The OpenAEC Foundation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"fmt"
	"math"

	"github.com/OpenAEC-Foundation/Open-FEM2D-Studio-sub000/fem"
	"github.com/OpenAEC-Foundation/Open-FEM2D-Studio-sub000/inp"
	"github.com/OpenAEC-Foundation/Open-FEM2D-Studio-sub000/steel"

	"github.com/cpmech/gosl/chk"
	"github.com/spf13/cobra"
)

var (
	optBeam      int
	optCombo     int
	optSeries    string
	optGrade     string
	optCriterion string
	optMaxUC     float64
	optDeflRatio float64
	optApply     bool
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize <model.json>",
	Short: "Size the lightest profile of a series for one beam",
	Long: `Walk a profile series from lightest to heaviest and pick the first
profile satisfying the chosen criterion. The model is re-solved per
candidate because swapping the section redistributes forces in statically
indeterminate structures.

Criteria:
  uc          governing unity check <= --max-uc (default)
  deflection  max |uy| <= span / --defl-ratio

Examples:
  fem2d optimize portal.json --beam 2 --series IPE --combo 12
  fem2d optimize floor.json --beam 5 --criterion deflection --defl-ratio 250`,
	Args: cobra.ExactArgs(1),
	RunE: runOptimize,
}

func init() {
	rootCmd.AddCommand(optimizeCmd)
	optimizeCmd.Flags().IntVarP(&optBeam, "beam", "b", 0, "beam id to size [required]")
	optimizeCmd.Flags().IntVar(&optCombo, "combo", 0, "combination id to solve")
	optimizeCmd.Flags().StringVarP(&optSeries, "series", "s", "IPE", "profile series: IPE, HEA or HEB")
	optimizeCmd.Flags().StringVarP(&optGrade, "grade", "g", "", "steel grade: S235, S275 or S355")
	optimizeCmd.Flags().StringVar(&optCriterion, "criterion", "uc", "sizing criterion: uc or deflection")
	optimizeCmd.Flags().Float64Var(&optMaxUC, "max-uc", 0, "unity check limit (default from config)")
	optimizeCmd.Flags().Float64Var(&optDeflRatio, "defl-ratio", 250, "span over deflection limit")
	optimizeCmd.Flags().BoolVar(&optApply, "apply", false, "write the chosen profile back to the model file")
	optimizeCmd.MarkFlagRequired("beam")
}

func runOptimize(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if optGrade == "" {
		optGrade = cfg.Grade
	}
	if optMaxUC == 0 {
		optMaxUC = cfg.MaxUC
	}
	grade, err := steel.GetGrade(optGrade)
	if err != nil {
		return err
	}

	m, err := inp.ReadModel(args[0])
	if err != nil {
		return err
	}
	b := m.Mesh.Beam(optBeam)
	if b == nil {
		return chk.Err("beam %d does not exist", optBeam)
	}
	span := m.Mesh.BeamLength(b)

	candidates := steel.Series(optSeries)
	if len(candidates) == 0 {
		return chk.Err("unknown profile series %q", optSeries)
	}

	for _, p := range candidates {
		if err := m.SetProfile(b.ID, p.Name, inp.Section{A: p.A, I: p.Iy, H: p.H}); err != nil {
			return err
		}
		res, err := fem.Solve(m, fem.Options{
			Analysis:   fem.Frame,
			ComboID:    optCombo,
			LinSolName: cfg.Solver,
			Nstations:  cfg.Stations,
		})
		if err != nil {
			return err
		}
		d := res.BeamForces[b.ID]

		switch optCriterion {
		case "uc":
			r := steel.Check(p, grade, d.MaxN, d.MaxV, d.MaxM)
			if r.UC > optMaxUC {
				continue
			}
			fmt.Printf("selected %s: UC %.2f (bending %.2f, shear %.2f), %.1f kg/m\n",
				p.Name, r.UC, r.UCM, r.UCV, p.Mass)
		case "deflection":
			maxD := 0.0
			for _, v := range d.DeflY {
				if math.Abs(v) > maxD {
					maxD = math.Abs(v)
				}
			}
			limit := span / optDeflRatio
			if maxD > limit {
				continue
			}
			fmt.Printf("selected %s: max deflection %.2f mm <= L/%g = %.2f mm, %.1f kg/m\n",
				p.Name, maxD*1000, optDeflRatio, limit*1000, p.Mass)
		default:
			return chk.Err("unknown criterion %q (want uc or deflection)", optCriterion)
		}

		if optApply {
			if err := m.SaveJSON(args[0]); err != nil {
				return err
			}
			fmt.Printf("model updated: beam %d -> %s\n", b.ID, p.Name)
		}
		return nil
	}
	return chk.Err("no %s profile satisfies the %s criterion", optSeries, optCriterion)
}
