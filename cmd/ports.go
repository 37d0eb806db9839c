// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.bug.st/serial/enumerator"
)

var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "List serial ports on this system",
	Long: `List the serial ports present on this system.

Enumeration is a passthrough to the operating system, never simulated:
drivers are expected to enumerate ports whether or not an instrument is
plugged in, so faking this would hide real integration problems.

Exit codes:
  0 - At least one port found
  1 - No ports found
  2 - Enumeration error`,
	RunE: runPorts,
}

func init() {
	rootCmd.AddCommand(portsCmd)
}

func runPorts(cmd *cobra.Command, args []string) error {
	ports, err := enumerator.GetDetailedPortsList()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Enumeration error: %v\n", err)
		os.Exit(2)
	}

	if len(ports) == 0 {
		fmt.Println("No serial ports found")
		os.Exit(1)
	}

	for _, port := range ports {
		fmt.Printf("%s\n", port.Name)
		if port.IsUSB {
			fmt.Printf("   USB ID:     %s:%s\n", port.VID, port.PID)
			if port.SerialNumber != "" {
				fmt.Printf("   USB serial: %s\n", port.SerialNumber)
			}
		}
	}

	return nil
}
