package net

import (
	"net"
	"net/url"
	"strconv"
)

// OutgoingIP returns the IPv4 address this host routes outbound traffic
// from. Without a route it falls back to FirstIPv4.
func OutgoingIP() net.IP {
	// UDP dial sends nothing; it only picks the source address.
	conn, err := net.Dial("udp4", "8.8.8.8:80")
	if err != nil {
		return FirstIPv4()
	}
	defer conn.Close()
	if addr, ok := conn.LocalAddr().(*net.UDPAddr); ok && addr.IP.To4() != nil {
		return addr.IP.To4()
	}
	return FirstIPv4()
}

// ShareLink returns the page URL other devices on the LAN can open.
func ShareLink(port int) string {
	return pageURL(OutgoingIP(), port)
}

func pageURL(ip net.IP, port int) string {
	u := url.URL{Scheme: "http", Host: net.JoinHostPort(ip.String(), strconv.Itoa(port)), Path: "/"}
	return u.String()
}
