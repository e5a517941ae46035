package mcp

import (
	"fmt"
	"net"
	"strconv"
)

// PortAttempts is how many consecutive ports Listen tries.
const PortAttempts = 10

// Listen opens a TCP listener on addr. If the port is taken it tries the
// following ports, up to attempts in total. Port 0 picks any free port.
func Listen(addr string, attempts int) (net.Listener, error) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, fmt.Errorf("parsing address %q: %w", addr, err)
	}
	start, err := strconv.Atoi(portStr)
	if err != nil || start < 0 || start > 65535 {
		return nil, fmt.Errorf("invalid port in %q", addr)
	}
	if start == 0 || attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for port := start; port < start+attempts && port <= 65535; port++ {
		ln, err := net.Listen("tcp", net.JoinHostPort(host, strconv.Itoa(port)))
		if err == nil {
			return ln, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("no available port in range %d-%d: %w", start, start+attempts-1, lastErr)
}
