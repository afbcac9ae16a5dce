// Copyright 2025 The OpenAEC Foundation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import "github.com/OpenAEC-Foundation/Open-FEM2D-Studio-sub000/cmd"

func main() {
	cmd.Execute()
}
