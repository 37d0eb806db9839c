// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Kaz Walker, Thermoquad

package cmd

import (
	"github.com/spf13/cobra"
)

var (
	// Serial connection flags
	portName string
	baudRate int

	// WebSocket connection flags
	wsURL string
)

var rootCmd = &cobra.Command{
	Use:   "pyrostat",
	Short: "Cinder Pyrometer Simulator",
	Long: `Pyrostat - A simulated KT-class infrared pyrometer speaking the Cinder
ASCII command language.

Lets serial-device drivers be exercised against an instrument that behaves
like the real hardware: one command per line, protocol-correct responses,
simulated response latency and a 40-character input buffer.

Connection modes:
  Simulated (default): no flags needed, a fresh instrument per session
  Serial:              --port /dev/ttyUSB0 [--baud 9600] (real hardware passthrough)
  WebSocket:           --url ws://host/cinder (a bridged simulator, see 'pyrostat bridge')

Port enumeration ('pyrostat ports') always lists real system ports and is
never simulated.`,
	Version: "1.0.0",
}

func init() {
	// Serial connection flags
	rootCmd.PersistentFlags().StringVarP(&portName, "port", "p", "", "Serial port device (passthrough to real hardware)")
	rootCmd.PersistentFlags().IntVarP(&baudRate, "baud", "b", 9600, "Baud rate (serial only)")

	// WebSocket connection flags
	rootCmd.PersistentFlags().StringVarP(&wsURL, "url", "u", "", "WebSocket URL of a bridged simulator (ws:// or wss://)")
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
