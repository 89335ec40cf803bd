package pkg

import (
	"fmt"
	"net"
	"net/http"
	"strings"
)

// ReadUserIP returns the client address. The proxy headers are read only when
// trustProxyHeaders is set, i.e. the service runs behind a front web server that
// overwrites them; otherwise any client could pick its own address.
func ReadUserIP(r *http.Request, trustProxyHeaders bool) (string, error) {
	var ipAddr string
	if trustProxyHeaders {
		ipAddr = r.Header.Get("X-Real-Ip")
		if ipAddr == "" {
			// the first entry is the original client
			if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
				ipAddr = strings.TrimSpace(strings.Split(fwd, ",")[0])
			}
		}
	}
	if ipAddr == "" {
		ipAddr = r.RemoteAddr
	}

	if host, _, err := net.SplitHostPort(ipAddr); err == nil {
		ipAddr = host
	}

	if net.ParseIP(ipAddr) == nil {
		return "", fmt.Errorf("ip addr %s is invalid", ipAddr)
	}

	return ipAddr, nil
}
