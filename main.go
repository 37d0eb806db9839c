// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Kaz Walker, Thermoquad
//
// Pyrostat - Cinder Pyrometer Simulator
//
// A simulated KT-class infrared pyrometer for exercising serial-device
// drivers without hardware.

package main

import (
	"os"

	"github.com/Thermoquad/pyrostat/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
