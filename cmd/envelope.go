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
	envAnalysis string
	envOut      string
	envDiagrams bool
)

var envelopeCmd = &cobra.Command{
	Use:   "envelope <model.json>",
	Short: "Solve all combinations and aggregate force envelopes",
	Long: `Solve every load combination of the model concurrently and report
the station-wise min/max normal force, shear force and bending moment
per beam (frame analyses) or the componentwise extreme stresses,
moments and shears per element (plane and plate analyses), plus the
governing combination per beam.

A combination that fails (e.g. a mechanism under that load pattern) is
reported and skipped; the envelope is then marked partial.`,
	Args: cobra.ExactArgs(1),
	RunE: runEnvelope,
}

func init() {
	rootCmd.AddCommand(envelopeCmd)
	envelopeCmd.Flags().StringVarP(&envAnalysis, "analysis", "a", "", "analysis type: frame, planeStress, planeStrain, plateBending")
	envelopeCmd.Flags().StringVarP(&envOut, "out", "o", "", "write the envelope JSON to this file")
	envelopeCmd.Flags().BoolVar(&envDiagrams, "diagrams", false, "export min/max band images per beam")
}

func runEnvelope(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	m, err := inp.ReadModel(args[0])
	if err != nil {
		return err
	}
	if envAnalysis == "" {
		envAnalysis = cfg.Analysis
	}
	env, err := fem.SolveEnvelope(m, fem.Options{
		Analysis:   fem.AnalysisType(envAnalysis),
		LinSolName: cfg.Solver,
		Nstations:  cfg.Stations,
	})
	if err != nil {
		return err
	}

	if len(env.Beams) > 0 {
		fmt.Println()
		fmt.Println("ENVELOPE (station extremes):")
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "  beam\tminM (Nm)\tmaxM (Nm)\tminV (N)\tmaxV (N)\tgoverning combo")
		bids := make([]int, 0, len(env.Beams))
		for bid := range env.Beams {
			bids = append(bids, bid)
		}
		sort.Ints(bids)
		for _, bid := range bids {
			be := env.Beams[bid]
			minM, maxM := minMax(be.MinM, be.MaxM)
			minV, maxV := minMax(be.MinV, be.MaxV)
			fmt.Fprintf(w, "  %d\t%.4g\t%.4g\t%.4g\t%.4g\t%d\n", bid, minM, maxM, minV, maxV, env.GoverningCombo[bid])
		}
		w.Flush()
		fmt.Println()
	}

	if len(env.Elements) > 0 {
		fmt.Println()
		fmt.Println("ENVELOPE (element extremes):")
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		if envAnalysis == string(fem.PlateBending) {
			fmt.Fprintln(w, "  elem\tminMx (Nm/m)\tmaxMx (Nm/m)\tminMy (Nm/m)\tmaxMy (Nm/m)")
		} else {
			fmt.Fprintln(w, "  elem\tminSx (Pa)\tmaxSx (Pa)\tminSvm (Pa)\tmaxSvm (Pa)")
		}
		eids := make([]int, 0, len(env.Elements))
		for eid := range env.Elements {
			eids = append(eids, eid)
		}
		sort.Ints(eids)
		for _, eid := range eids {
			ee := env.Elements[eid]
			if envAnalysis == string(fem.PlateBending) {
				fmt.Fprintf(w, "  %d\t%.4g\t%.4g\t%.4g\t%.4g\n", eid, ee.Min.Mx, ee.Max.Mx, ee.Min.My, ee.Max.My)
			} else {
				fmt.Fprintf(w, "  %d\t%.4g\t%.4g\t%.4g\t%.4g\n", eid, ee.Min.Sx, ee.Max.Sx, ee.Min.VonMises, ee.Max.VonMises)
			}
		}
		w.Flush()
		fmt.Println()
	}

	if env.Partial() {
		fmt.Fprintf(os.Stderr, "warning: envelope is partial; %d combination(s) failed:\n", len(env.Failures))
		for _, f := range env.Failures {
			fmt.Fprintf(os.Stderr, "  combination %d (%s): %v\n", f.ComboID, f.Name, f.Err)
		}
	}

	if envOut != "" {
		b, err := json.MarshalIndent(env, "", "  ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(envOut, b, 0644); err != nil {
			return err
		}
		fmt.Printf("envelope written to %s\n", envOut)
	}
	if envDiagrams {
		for bid, be := range env.Beams {
			for _, field := range []string{"N", "V", "M"} {
				fn := filepath.Join(cfg.OutDir, fmt.Sprintf("beam%d_env_%s.png", bid, field))
				if err := out.ExportEnvelopeBand(be, field, fn); err != nil {
					return err
				}
			}
		}
		fmt.Printf("envelope bands written to %s/\n", cfg.OutDir)
	}
	return nil
}

func minMax(lo, hi []float64) (mn, mx float64) {
	if len(lo) == 0 {
		return
	}
	mn, mx = lo[0], hi[0]
	for i := range lo {
		if lo[i] < mn {
			mn = lo[i]
		}
		if hi[i] > mx {
			mx = hi[i]
		}
	}
	return
}
