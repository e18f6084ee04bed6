package config

import (
	"fmt"
)

// Validate checks that all configuration values are within acceptable
// ranges. Returns an error describing the first validation failure found.
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("http_port must be between 1 and 65535, got %d", c.Server.HTTPPort)
	}
	if c.Session.TCPPort <= 0 || c.Session.TCPPort > 65535 {
		return fmt.Errorf("tcp_port must be between 1 and 65535, got %d", c.Session.TCPPort)
	}
	if c.Server.HTTPPort == c.Session.TCPPort {
		return fmt.Errorf("http_port and tcp_port must be different, both are %d", c.Server.HTTPPort)
	}
	if c.Ingest.UDPPort <= 0 || c.Ingest.UDPPort > 65535 {
		return fmt.Errorf("udp_port must be between 1 and 65535, got %d", c.Ingest.UDPPort)
	}
	if c.Monitor.PushIntervalMS < 100 {
		return fmt.Errorf("push_interval_ms must be at least 100, got %d", c.Monitor.PushIntervalMS)
	}
	return nil
}
