// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Kaz Walker, Thermoquad

package cmd

import (
	"bufio"
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/Thermoquad/pyrostat/pkg/cinder"
	"github.com/gorilla/websocket"
	"go.bug.st/serial"
)

// LineConn provides a common line-oriented interface for talking to an
// instrument, whether it is the in-process simulator, real hardware on
// a serial port, or a simulator bridged over WebSocket.
type LineConn interface {
	// WriteLine sends one command line. The terminator is appended here;
	// callers pass bare command text.
	WriteLine(line string) error
	// ReadLine returns one response line without its terminator, or the
	// empty string on a read timeout.
	ReadLine() (string, error)
	Close() error
}

// SimConn drives an in-process simulated instrument.
type SimConn struct {
	session *cinder.Session
}

func (c *SimConn) WriteLine(line string) error {
	return c.session.Write(line + "\n")
}

func (c *SimConn) ReadLine() (string, error) {
	resp, err := c.session.ReadLine()
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(resp, "\n"), nil
}

func (c *SimConn) Close() error {
	c.session.Close()
	return nil
}

// SerialConn wraps a real serial port for passthrough use, so the same
// commands can be pointed at actual hardware.
type SerialConn struct {
	port   serial.Port
	reader *bufio.Reader
}

func (c *SerialConn) WriteLine(line string) error {
	_, err := c.port.Write([]byte(line + "\n"))
	return err
}

func (c *SerialConn) ReadLine() (string, error) {
	resp, err := c.reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(resp, "\n"), nil
}

func (c *SerialConn) Close() error {
	return c.port.Close()
}

// WebSocketConn talks to a simulator served by 'pyrostat bridge'. Each
// command is one text message; each response comes back the same way.
type WebSocketConn struct {
	conn *websocket.Conn
}

func (c *WebSocketConn) WriteLine(line string) error {
	return c.conn.WriteMessage(websocket.TextMessage, []byte(line))
}

func (c *WebSocketConn) ReadLine() (string, error) {
	for {
		messageType, data, err := c.conn.ReadMessage()
		if err != nil {
			return "", err
		}
		if messageType != websocket.TextMessage {
			// The bridge only speaks text frames; skip anything else.
			continue
		}
		return strings.TrimSuffix(string(data), "\n"), nil
	}
}

func (c *WebSocketConn) Close() error {
	return c.conn.Close()
}

// OpenSimConnection starts a fresh simulated instrument session.
func OpenSimConnection() (LineConn, error) {
	return &SimConn{session: cinder.NewSession("sim0")}, nil
}

// OpenSerialConnection opens a serial port connection
func OpenSerialConnection(portName string, baudRate int) (LineConn, error) {
	mode := &serial.Mode{
		BaudRate: baudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	port, err := serial.Open(portName, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %v", portName, err)
	}

	return &SerialConn{port: port, reader: bufio.NewReader(port)}, nil
}

// OpenWebSocketConnection connects to a bridged simulator.
func OpenWebSocketConnection(wsURL string) (LineConn, error) {
	u, err := url.Parse(wsURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %v", err)
	}

	switch u.Scheme {
	case "ws", "wss":
		// OK
	default:
		return nil, fmt.Errorf("unsupported URL scheme: %s (use ws:// or wss://)", u.Scheme)
	}

	dialer := websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	conn, resp, err := dialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("WebSocket connection failed (HTTP %d): %v", resp.StatusCode, err)
		}
		return nil, fmt.Errorf("WebSocket connection failed: %v", err)
	}

	return &WebSocketConn{conn: conn}, nil
}

// OpenConnection opens a connection based on flags: WebSocket if --url
// was given, serial passthrough if --port was given, otherwise the
// in-process simulator.
func OpenConnection() (LineConn, string, error) {
	if wsURL != "" {
		conn, err := OpenWebSocketConnection(wsURL)
		if err != nil {
			return nil, "", err
		}
		return conn, fmt.Sprintf("WebSocket: %s", wsURL), nil
	}

	if portName != "" {
		conn, err := OpenSerialConnection(portName, baudRate)
		if err != nil {
			return nil, "", err
		}
		return conn, fmt.Sprintf("Serial: %s @ %d baud", portName, baudRate), nil
	}

	conn, err := OpenSimConnection()
	if err != nil {
		return nil, "", err
	}
	return conn, fmt.Sprintf("Simulated: sim0 @ %d baud", cinder.DefaultBaudRate), nil
}
