// Package config loads the server configuration. Decoding is strict: an
// unknown YAML key is an error, and every field has an explicit default.
package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the complete process configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Session SessionConfig `yaml:"session"`
	Ingest  IngestConfig  `yaml:"ingest"`
	Monitor MonitorConfig `yaml:"monitor"`
}

// ServerConfig defines the HTTP surface: health, API, and the stats
// WebSocket share one port.
type ServerConfig struct {
	HTTPPort int `yaml:"http_port"`
}

// SessionConfig defines the TCP handshake listener.
type SessionConfig struct {
	TCPPort int `yaml:"tcp_port"`
}

// IngestConfig defines the UDP frame listener.
type IngestConfig struct {
	UDPPort int `yaml:"udp_port"`
}

// MonitorConfig defines the stats push feed.
type MonitorConfig struct {
	PushIntervalMS int `yaml:"push_interval_ms"`
}

// Load reads configuration from a YAML file.
// Returns an error if the file cannot be read or decoded.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields

	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	cfg.setDefaults()
	return &cfg, nil
}

// setDefaults applies explicit default values to unset fields.
func (c *Config) setDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Session.TCPPort == 0 {
		c.Session.TCPPort = 1935
	}
	if c.Ingest.UDPPort == 0 {
		c.Ingest.UDPPort = 5004
	}
	if c.Monitor.PushIntervalMS == 0 {
		c.Monitor.PushIntervalMS = 1000
	}
}
