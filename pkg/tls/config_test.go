package tls

import (
	"crypto/tls"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDisabledByDefault(t *testing.T) {
	cfg, err := Load(DefaultConfig())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg != nil {
		t.Error("Expected no TLS config when TLS is not requested")
	}
	if (*Config)(nil).Enabled() {
		t.Error("Expected a nil config to be disabled")
	}
}

func TestSelfSigned(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SelfSigned = true

	tlsCfg, err := Load(cfg)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if tlsCfg.MinVersion != tls.VersionTLS12 {
		t.Errorf("Expected TLS 1.2 minimum, got %x", tlsCfg.MinVersion)
	}
	if len(tlsCfg.Certificates) != 1 {
		t.Fatalf("Expected 1 certificate, got %d", len(tlsCfg.Certificates))
	}

	info := Info(tlsCfg.Certificates[0].Leaf)
	if len(info.DNSNames) != 1 || info.DNSNames[0] != "localhost" {
		t.Errorf("Unexpected DNS names: %v", info.DNSNames)
	}
	if len(info.IPAddresses) != 1 || info.IPAddresses[0] != "127.0.0.1" {
		t.Errorf("Unexpected IP addresses: %v", info.IPAddresses)
	}
	if info.IsExpired() {
		t.Error("Fresh certificate reported as expired")
	}
	if got := info.NotAfter.Sub(info.NotBefore); got != cfg.ValidFor {
		t.Errorf("Expected validity %s, got %s", cfg.ValidFor, got)
	}
}

func TestLoadFromFiles(t *testing.T) {
	dir := t.TempDir()
	certFile := filepath.Join(dir, "certs", "server.crt")
	keyFile := filepath.Join(dir, "certs", "server.key")

	cert, err := GenerateSelfSigned(&Config{Hosts: []string{"kg.local"}, ValidFor: time.Hour})
	if err != nil {
		t.Fatalf("GenerateSelfSigned failed: %v", err)
	}
	if err := SaveCertificate(cert, certFile, keyFile); err != nil {
		t.Fatalf("SaveCertificate failed: %v", err)
	}

	st, err := os.Stat(keyFile)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if st.Mode().Perm() != 0600 {
		t.Errorf("Expected key mode 0600, got %o", st.Mode().Perm())
	}

	tlsCfg, err := Load(&Config{CertFile: certFile, KeyFile: keyFile, SelfSigned: true})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(tlsCfg.Certificates) != 1 {
		t.Fatalf("Expected 1 certificate, got %d", len(tlsCfg.Certificates))
	}

	info, err := ReadCertificateInfo(certFile)
	if err != nil {
		t.Fatalf("ReadCertificateInfo failed: %v", err)
	}
	if len(info.DNSNames) != 1 || info.DNSNames[0] != "kg.local" {
		t.Errorf("Unexpected DNS names: %v", info.DNSNames)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	bogus := filepath.Join(dir, "bogus.pem")
	if err := os.WriteFile(bogus, []byte("not pem"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		cfg  *Config
	}{
		{"cert without key", &Config{CertFile: bogus}},
		{"key without cert", &Config{KeyFile: bogus}},
		{"unreadable pair", &Config{CertFile: bogus, KeyFile: bogus}},
		{"missing files", &Config{CertFile: filepath.Join(dir, "a"), KeyFile: filepath.Join(dir, "b")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(tt.cfg); err == nil {
				t.Error("Expected an error")
			}
		})
	}

	if _, err := ReadCertificateInfo(bogus); err == nil {
		t.Error("Expected an error for a file without a PEM block")
	}
}

func TestSaveCertificateRejectsEmpty(t *testing.T) {
	dir := t.TempDir()
	if err := SaveCertificate(tls.Certificate{}, filepath.Join(dir, "c"), filepath.Join(dir, "k")); err == nil {
		t.Error("Expected an error for an empty certificate")
	}
}
