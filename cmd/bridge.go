// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Kaz Walker, Thermoquad

package cmd

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/Thermoquad/pyrostat/pkg/cinder"
	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"
)

var bridgeListenAddr string

var bridgeCmd = &cobra.Command{
	Use:   "bridge",
	Short: "Serve simulated instruments over WebSocket",
	Long: `Serve the simulator over WebSocket so remote harnesses can drive it.

Each WebSocket client gets its own fresh instrument at /cinder. One text
frame carries one command line and every command yields exactly one frame
back: the response for queries, an empty frame for set commands (a real
read would time out silently), or "ERROR: ..." for transport and protocol
failures, so the remote side can observe rejection behavior.

Connect with:
  pyrostat console --url ws://localhost:8137/cinder`,
	RunE: runBridge,
}

func init() {
	rootCmd.AddCommand(bridgeCmd)
	bridgeCmd.Flags().StringVar(&bridgeListenAddr, "listen", ":8137", "Listen address")
}

var bridgeUpgrader = websocket.Upgrader{
	// The bridge is a lab tool; same-origin policy would only get in
	// the way of harnesses connecting from anywhere.
	CheckOrigin: func(r *http.Request) bool { return true },
}

func runBridge(cmd *cobra.Command, args []string) error {
	http.HandleFunc("/cinder", handleBridgeClient)

	fmt.Printf("Pyrostat - WebSocket Bridge\n")
	fmt.Printf("Listening on %s at /cinder\n", bridgeListenAddr)
	fmt.Printf("Press Ctrl+C to exit\n\n")

	return http.ListenAndServe(bridgeListenAddr, nil)
}

func handleBridgeClient(w http.ResponseWriter, r *http.Request) {
	conn, err := bridgeUpgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Upgrade failed for %s: %v", r.RemoteAddr, err)
		return
	}
	defer conn.Close()

	log.Printf("Client connected: %s", r.RemoteAddr)

	session := cinder.NewSession(r.RemoteAddr)
	defer session.Close()

	for {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			log.Printf("Client disconnected: %s (%v)", r.RemoteAddr, err)
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		line := strings.TrimSuffix(string(data), "\n")
		if err := session.Write(line + "\n"); err != nil {
			if writeErr := conn.WriteMessage(websocket.TextMessage, []byte("ERROR: "+err.Error())); writeErr != nil {
				return
			}
			// Rejected input may leave the session closed only if the
			// client closed it; everything else is per-command.
			var closedErr *cinder.PortClosedError
			if errors.As(err, &closedErr) {
				return
			}
			continue
		}

		// Always answer with exactly one frame so clients can pair
		// frames with commands. Set commands yield an empty frame.
		resp, err := session.ReadLine()
		if err != nil {
			return
		}
		if err := conn.WriteMessage(websocket.TextMessage, []byte(resp)); err != nil {
			return
		}
	}
}
