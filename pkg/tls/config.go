package tls

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"os"
)

// ErrIncompleteKeyPair is returned when only one of the cert and key files is set
var ErrIncompleteKeyPair = errors.New("both a certificate and a key file are required")

// Load returns the server TLS config, or nil when cfg does not enable TLS. Files
// win over SelfSigned.
func Load(cfg *Config) (*tls.Config, error) {
	if !cfg.Enabled() {
		return nil, nil
	}

	var (
		cert tls.Certificate
		err  error
	)
	switch {
	case cfg.CertFile != "" && cfg.KeyFile != "":
		cert, err = tls.LoadX509KeyPair(cfg.CertFile, cfg.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("load TLS key pair %s: %w", cfg.CertFile, err)
		}
	case cfg.CertFile != "" || cfg.KeyFile != "":
		return nil, ErrIncompleteKeyPair
	default:
		cert, err = GenerateSelfSigned(cfg)
		if err != nil {
			return nil, err
		}
	}

	minVersion := cfg.MinVersion
	if minVersion == 0 {
		minVersion = tls.VersionTLS12
	}
	return &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   minVersion,
	}, nil
}

// ReadCertificateInfo reads the first certificate of a PEM file
func ReadCertificateInfo(certFile string) (*CertificateInfo, error) {
	data, err := os.ReadFile(certFile)
	if err != nil {
		return nil, fmt.Errorf("read certificate %s: %w", certFile, err)
	}
	cert, err := parsePEMCertificate(data)
	if err != nil {
		return nil, fmt.Errorf("certificate %s: %w", certFile, err)
	}
	return Info(cert), nil
}

// Info describes a parsed certificate
func Info(cert *x509.Certificate) *CertificateInfo {
	info := &CertificateInfo{
		Subject:      cert.Subject.String(),
		SerialNumber: cert.SerialNumber.String(),
		NotBefore:    cert.NotBefore,
		NotAfter:     cert.NotAfter,
		DNSNames:     cert.DNSNames,
	}
	for _, ip := range cert.IPAddresses {
		info.IPAddresses = append(info.IPAddresses, ip.String())
	}
	return info
}
