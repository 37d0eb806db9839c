// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Kaz Walker, Thermoquad

package cmd

import (
	"bufio"
	"fmt"
	"os"
	"time"

	"github.com/Thermoquad/pyrostat/pkg/cinder"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var consoleRecordPath string

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Interactive line console to the instrument",
	Long: `Send Cinder commands line by line and print each response.

Reads commands from stdin, one per line, writes them to the instrument and
prints the response (or the error). With a terminal attached a prompt is
shown; piped input runs silently, so scripted sessions stay clean:

  echo 'CAL ?' | pyrostat console

Commands:
  CAL ?          query calibration factor
  CAL <decimal>  set calibration factor
  TEMP           query temperature
  RAD            query radiance
  UNIT ?         query unit
  UNIT <K|C|F>   set unit

Use --record to capture the session as a CBOR transcript for later
inspection. Supports simulated, serial and WebSocket connections.`,
	RunE: runConsole,
}

func init() {
	rootCmd.AddCommand(consoleCmd)
	consoleCmd.Flags().StringVar(&consoleRecordPath, "record", "", "Write a CBOR transcript of the session to this file")
}

func runConsole(cmd *cobra.Command, args []string) error {
	conn, connInfo, err := OpenConnection()
	if err != nil {
		return err
	}
	defer conn.Close()

	var recorder *cinder.Recorder
	if consoleRecordPath != "" {
		f, err := os.Create(consoleRecordPath)
		if err != nil {
			return fmt.Errorf("failed to create transcript file: %v", err)
		}
		defer f.Close()
		recorder = cinder.NewRecorder(f)
	}

	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	if interactive {
		fmt.Printf("Pyrostat - Cinder Console\n")
		fmt.Printf("Connection: %s\n", connInfo)
		fmt.Printf("Ctrl+D to exit\n\n")
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		if interactive {
			fmt.Print("> ")
		}
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		if line == "" {
			continue
		}

		ex := cinder.Exchange{Timestamp: time.Now(), Query: line + "\n"}

		if err := conn.WriteLine(line); err != nil {
			ex.Error = err.Error()
			fmt.Fprintf(os.Stderr, "[ERROR] %v\n", err)
		} else {
			resp, err := conn.ReadLine()
			if err != nil {
				ex.Error = err.Error()
				fmt.Fprintf(os.Stderr, "[ERROR] %v\n", err)
			} else if resp == "" {
				ex.Response = ""
				if interactive {
					fmt.Println("(no response)")
				}
			} else {
				ex.Response = resp + "\n"
				fmt.Println(resp)
			}
		}

		if recorder != nil {
			if err := recorder.Record(ex); err != nil {
				fmt.Fprintf(os.Stderr, "[ERROR] transcript: %v\n", err)
			}
		}
	}

	if interactive {
		fmt.Println()
	}
	return scanner.Err()
}
