package net

import (
	"context"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/hashicorp/mdns"
)

// ServiceType is the mDNS service under which overlay servers advertise.
const ServiceType = "_doodleboard._tcp"

var query = mdns.Query

// Advertise announces an overlay server on the local network. Call
// Shutdown on the returned server to withdraw it.
func Advertise(port int, info ...string) (*mdns.Server, error) {
	host, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("could not get hostname: %w", err)
	}
	if len(info) == 0 {
		info = []string{"DoodleBoard"}
	}

	service, err := mdns.NewMDNSService(host, ServiceType, "", "", port, []net.IP{FirstIPv4()}, info)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS service: %w", err)
	}
	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return nil, fmt.Errorf("failed to start mDNS server: %w", err)
	}
	return server, nil
}

// Browse looks for overlay servers until timeout and calls found with
// each host:port. It returns early when ctx is done; the query itself
// runs out its timeout in the background.
func Browse(ctx context.Context, timeout time.Duration, found func(addr string)) error {
	entries := make(chan *mdns.ServiceEntry, 8)
	params := mdns.DefaultParams(ServiceType)
	params.Entries = entries
	params.Timeout = timeout
	params.DisableIPv6 = true

	errCh := make(chan error, 1)
	go func() { errCh <- query(params) }()

	for {
		select {
		case e := <-entries:
			report(e, found)
		case err := <-errCh:
			// Entries queued before the query returned are still due.
			for {
				select {
				case e := <-entries:
					report(e, found)
				default:
					return err
				}
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func report(e *mdns.ServiceEntry, found func(addr string)) {
	if e == nil || e.AddrV4 == nil || e.Port == 0 {
		return
	}
	found(fmt.Sprintf("%s:%d", e.AddrV4.String(), e.Port))
}

// FirstIPv4 returns the first IPv4 address of an interface that is up and
// not loopback, or 127.0.0.1.
func FirstIPv4() net.IP {
	ifaces, _ := net.Interfaces()
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, _ := iface.Addrs()
		for _, a := range addrs {
			if ipnet, ok := a.(*net.IPNet); ok && ipnet.IP.To4() != nil {
				return ipnet.IP.To4()
			}
		}
	}
	return net.IPv4(127, 0, 0, 1)
}
