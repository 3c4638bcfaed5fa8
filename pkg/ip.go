package pkg

import (
	"fmt"
	"net"
	"net/http"
	"strings"
)

// ReadUserIP tries to get the real client IP, looking at the
// proxy headers first, falling back to the remote address.
func ReadUserIP(r *http.Request) (string, error) {
	ipAddr := r.Header.Get("X-Real-Ip")
	if ipAddr == "" {
		ipAddr = r.Header.Get("X-Forwarded-For")
	}
	if ipAddr == "" {
		ipAddr = r.RemoteAddr
	}

	if strings.Contains(ipAddr, ":") {
		host, _, err := net.SplitHostPort(ipAddr)
		if err == nil {
			ipAddr = host
		}
	}

	if net.ParseIP(ipAddr) == nil {
		return "", fmt.Errorf("ip addr %s is invalid", ipAddr)
	}

	return ipAddr, nil
}
