// Copyright 2025 The OpenAEC Foundation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"text/tabwriter"

	"github.com/OpenAEC-Foundation/Open-FEM2D-Studio-sub000/fem"
	"github.com/OpenAEC-Foundation/Open-FEM2D-Studio-sub000/inp"
	"github.com/OpenAEC-Foundation/Open-FEM2D-Studio-sub000/out"

	"github.com/spf13/cobra"
)

var (
	solveAnalysis string
	solveCase     int
	solveCombo    int
	solveOut      string
	solveDiagrams bool
)

var solveCmd = &cobra.Command{
	Use:   "solve <model.json>",
	Short: "Run a linear analysis on a model file",
	Long: `Run one linear solve on a JSON model: a single load case (--case),
a single combination (--combo), or all cases at factor one.

Examples:
  # Frame analysis of all load cases
  fem2d solve portal.json

  # One ULS combination with result file and diagram images
  fem2d solve portal.json --combo 12 --out results.json --diagrams`,
	Args: cobra.ExactArgs(1),
	RunE: runSolve,
}

func init() {
	rootCmd.AddCommand(solveCmd)
	solveCmd.Flags().StringVarP(&solveAnalysis, "analysis", "a", "", "analysis type: frame, planeStress, planeStrain, plateBending")
	solveCmd.Flags().IntVar(&solveCase, "case", 0, "solve a single load case id")
	solveCmd.Flags().IntVar(&solveCombo, "combo", 0, "solve a single combination id")
	solveCmd.Flags().StringVarP(&solveOut, "out", "o", "", "write the result JSON to this file")
	solveCmd.Flags().BoolVar(&solveDiagrams, "diagrams", false, "export N/V/M and deflection images per beam")
}

func runSolve(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if solveAnalysis == "" {
		solveAnalysis = cfg.Analysis
	}

	m, err := inp.ReadModel(args[0])
	if err != nil {
		return err
	}
	res, err := fem.Solve(m, fem.Options{
		Analysis:   fem.AnalysisType(solveAnalysis),
		CaseID:     solveCase,
		ComboID:    solveCombo,
		LinSolName: cfg.Solver,
		Nstations:  cfg.Stations,
	})
	if err != nil {
		return err
	}

	printResultSummary(res)
	for _, w := range res.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}

	if solveOut != "" {
		b, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(solveOut, b, 0644); err != nil {
			return err
		}
		fmt.Printf("results written to %s\n", solveOut)
	}
	if solveDiagrams {
		if err := exportDiagrams(res, cfg.OutDir); err != nil {
			return err
		}
		fmt.Printf("diagrams written to %s/\n", cfg.OutDir)
	}
	return nil
}

func printResultSummary(res *fem.Result) {
	fmt.Println()
	fmt.Println("REACTIONS:")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	keys := res.Analysis.Keys()
	header := "  node"
	for _, k := range keys {
		header += "\t" + k
	}
	fmt.Fprintln(w, header)
	nids := make([]int, 0, len(res.Reactions))
	for nid := range res.Reactions {
		nids = append(nids, nid)
	}
	sort.Ints(nids)
	for _, nid := range nids {
		row := fmt.Sprintf("  %d", nid)
		for _, v := range res.Reactions[nid] {
			row += fmt.Sprintf("\t%.4g", v)
		}
		fmt.Fprintln(w, row)
	}
	w.Flush()

	if len(res.BeamForces) > 0 {
		fmt.Println()
		fmt.Println("BEAM FORCES (signed extremes):")
		w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "  beam\tN (N)\tV (N)\tM (Nm)")
		bids := make([]int, 0, len(res.BeamForces))
		for bid := range res.BeamForces {
			bids = append(bids, bid)
		}
		sort.Ints(bids)
		for _, bid := range bids {
			d := res.BeamForces[bid]
			fmt.Fprintf(w, "  %d\t%.4g\t%.4g\t%.4g\n", bid, d.MaxN, d.MaxV, d.MaxM)
		}
		w.Flush()
	}
	fmt.Println()
}

func exportDiagrams(res *fem.Result, dir string) error {
	for bid, d := range res.BeamForces {
		for _, field := range []string{"N", "V", "M"} {
			fn := filepath.Join(dir, fmt.Sprintf("beam%d_%s.png", bid, field))
			if err := out.ExportBeamDiagram(d, field, fn); err != nil {
				return err
			}
		}
		fn := filepath.Join(dir, fmt.Sprintf("beam%d_defl.png", bid))
		if err := out.ExportDeflection(d, fn); err != nil {
			return err
		}
	}
	return nil
}
