// Copyright 2025 The OpenAEC Foundation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/OpenAEC-Foundation/Open-FEM2D-Studio-sub000/fem"
	"github.com/OpenAEC-Foundation/Open-FEM2D-Studio-sub000/inp"
	"github.com/OpenAEC-Foundation/Open-FEM2D-Studio-sub000/steel"

	"github.com/cpmech/gosl/chk"
	"github.com/spf13/cobra"
)

var (
	checkBeam  int
	checkCombo int
	checkGrade string
)

var checkCmd = &cobra.Command{
	Use:   "check <model.json>",
	Short: "Verify the steel profile of a beam against the solved forces",
	Long: `Solve the model and verify the cross-section of one beam (or all
beams with a profile) for the recovered design forces: axial plus bending
unity check with shear reduction, and the shear unity check.

Examples:
  # Check all profiled beams for combination 12 in S355
  fem2d check portal.json --combo 12 --grade S355

  # Check a single beam
  fem2d check portal.json --beam 3`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().IntVarP(&checkBeam, "beam", "b", 0, "beam id to check (default: all beams with a profile)")
	checkCmd.Flags().IntVar(&checkCombo, "combo", 0, "combination id to solve")
	checkCmd.Flags().StringVarP(&checkGrade, "grade", "g", "", "steel grade: S235, S275 or S355")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if checkGrade == "" {
		checkGrade = cfg.Grade
	}
	grade, err := steel.GetGrade(checkGrade)
	if err != nil {
		return err
	}

	m, err := inp.ReadModel(args[0])
	if err != nil {
		return err
	}
	res, err := fem.Solve(m, fem.Options{
		Analysis:   fem.Frame,
		ComboID:    checkCombo,
		LinSolName: cfg.Solver,
		Nstations:  cfg.Stations,
	})
	if err != nil {
		return err
	}

	var beams []*inp.BeamElement
	if checkBeam != 0 {
		b := m.Mesh.Beam(checkBeam)
		if b == nil {
			return chk.Err("beam %d does not exist", checkBeam)
		}
		beams = append(beams, b)
	} else {
		for _, b := range m.Mesh.Beams {
			if b.Profile != "" {
				beams = append(beams, b)
			}
		}
	}
	if len(beams) == 0 {
		return chk.Err("no beams with a steel profile to check")
	}

	fmt.Println()
	fmt.Printf("STEEL CHECK (%s):\n", grade.Name)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  beam\tprofile\tN (N)\tV (N)\tM (Nm)\tUC bend\tUC shear\tUC\tstatus")
	allOK := true
	for _, b := range beams {
		if b.Profile == "" {
			return chk.Err("beam %d has no steel profile assigned", b.ID)
		}
		p, err := steel.GetProfile(b.Profile)
		if err != nil {
			return err
		}
		d, ok := res.BeamForces[b.ID]
		if !ok {
			continue
		}
		r := steel.Check(p, grade, d.MaxN, d.MaxV, d.MaxM)
		status := "OK"
		if !r.OK {
			status = "FAIL"
			allOK = false
		}
		fmt.Fprintf(w, "  %d\t%s\t%.4g\t%.4g\t%.4g\t%.2f\t%.2f\t%.2f\t%s\n",
			b.ID, p.Name, d.MaxN, d.MaxV, d.MaxM, r.UCM, r.UCV, r.UC, status)
	}
	w.Flush()
	fmt.Println()
	if !allOK {
		return chk.Err("one or more sections fail the unity check")
	}
	return nil
}
