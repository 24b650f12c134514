package net

import (
	"fmt"
	"log"
	"net"
)

// Listen opens a TCP listener on addr and reports the port it got, which
// matters when addr asks for port 0.
func Listen(addr string) (net.Listener, int, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	port := listener.Addr().(*net.TCPAddr).Port
	log.Printf("TCP server listening on port %d...", port)
	return listener, port, nil
}
