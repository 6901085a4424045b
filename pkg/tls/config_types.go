// Package tls builds the TLS configuration of the HTTP surface from certificate
// files or a generated self-signed certificate.
package tls

import (
	"crypto/tls"
	"time"
)

// Config holds TLS configuration options
type Config struct {
	CertFile string
	KeyFile  string

	// SelfSigned generates an in-memory certificate when no files are given
	SelfSigned   bool
	Hosts        []string
	Organization string
	ValidFor     time.Duration

	MinVersion uint16
}

// DefaultConfig returns the defaults for a local, self-signed endpoint
func DefaultConfig() *Config {
	return &Config{
		Hosts:        []string{"localhost", "127.0.0.1"},
		Organization: "assembly-kg",
		ValidFor:     365 * 24 * time.Hour,
		MinVersion:   tls.VersionTLS12,
	}
}

// Enabled returns true if the config asks for TLS at all
func (c *Config) Enabled() bool {
	return c != nil && (c.CertFile != "" || c.KeyFile != "" || c.SelfSigned)
}

// CertificateInfo holds certificate metadata
type CertificateInfo struct {
	Subject      string
	SerialNumber string
	NotBefore    time.Time
	NotAfter     time.Time
	DNSNames     []string
	IPAddresses  []string
}

// IsExpired checks if the certificate has expired
func (ci *CertificateInfo) IsExpired() bool {
	return time.Now().After(ci.NotAfter)
}
