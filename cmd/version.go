// Copyright 2025 The OpenAEC Foundation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the tool version
const Version = "0.3.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of fem2d",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("fem2d v%s\n", Version)
		fmt.Println("2D structural finite element analysis")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
