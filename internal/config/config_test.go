package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/volki-dev/volki/internal/errors"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func TestDefaults(t *testing.T) {
	cfg := Default()
	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != 8080 {
		t.Fatalf("server defaults = %+v", cfg.Server)
	}
	if cfg.Server.PublicDir != "public" || cfg.Server.Dist != "dist" {
		t.Fatalf("path defaults = %+v", cfg.Server)
	}
	if cfg.Security.SizeLimits.MaxHeaderSize != 8*1024 {
		t.Fatalf("max_header_size = %d", cfg.Security.SizeLimits.MaxHeaderSize)
	}
	if cfg.Security.RateLimits.MaxConnections != 1024 {
		t.Fatalf("max_connections = %d", cfg.Security.RateLimits.MaxConnections)
	}
	if cfg.Security.Timeouts.KeepAlive.Std() != 60*time.Second {
		t.Fatalf("keep_alive = %v", cfg.Security.Timeouts.KeepAlive.Std())
	}
}

func TestLoadDirMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadDir(t.TempDir())
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Fatalf("port = %d, want default 8080", cfg.Server.Port)
	}
}

func TestLoadDecodesAllSections(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
[server]
host = "0.0.0.0"
port = 9000
public_dir = "static"
workers = 4
tls_cert = "cert.pem"
tls_key = "key.pem"

[security.size_limits]
max_header_size = 4096
max_body_size = 1048576

[security.rate_limits]
max_connections = 512
max_connections_per_ip = 8

[security.rate_limits.global]
requests = 100
window = "1m"

[security.timeouts]
handshake = "5s"
keep_alive = "2m"
`)

	cfg, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if cfg.Server.Host != "0.0.0.0" || cfg.Server.Port != 9000 {
		t.Fatalf("server = %+v", cfg.Server)
	}
	if cfg.Server.PublicDir != "static" || cfg.Server.Workers != 4 {
		t.Fatalf("server = %+v", cfg.Server)
	}
	if cfg.Server.TLSCert != "cert.pem" || cfg.Server.TLSKey != "key.pem" {
		t.Fatalf("tls = %q %q", cfg.Server.TLSCert, cfg.Server.TLSKey)
	}

	sec := cfg.ReactorSecurity()
	if sec.MaxHeaderSize != 4096 || sec.MaxBodySize != 1048576 {
		t.Fatalf("size limits = %d %d", sec.MaxHeaderSize, sec.MaxBodySize)
	}
	// Unset knobs keep their defaults.
	if sec.MaxURILength != 8192 {
		t.Fatalf("max_uri_length = %d, want default 8192", sec.MaxURILength)
	}
	if sec.MaxConnections != 512 || sec.MaxConnectionsPerIP != 8 {
		t.Fatalf("connection caps = %d %d", sec.MaxConnections, sec.MaxConnectionsPerIP)
	}
	if sec.GlobalRateLimit == nil ||
		sec.GlobalRateLimit.Requests != 100 ||
		sec.GlobalRateLimit.Window != time.Minute {
		t.Fatalf("global limit = %+v", sec.GlobalRateLimit)
	}
	if sec.HandshakeTimeout != 5*time.Second || sec.KeepAliveTimeout != 2*time.Minute {
		t.Fatalf("timeouts = %v %v", sec.HandshakeTimeout, sec.KeepAliveTimeout)
	}
	if sec.ReadTimeout != 30*time.Second {
		t.Fatalf("read timeout = %v, want default 30s", sec.ReadTimeout)
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "[server\nport = nine")

	_, err := LoadDir(dir)
	if err == nil {
		t.Fatal("malformed config accepted")
	}
	if !errors.IsCategory(err, errors.CategoryConfig) {
		t.Fatalf("error category = %v", err)
	}
}

func TestLoadRejectsBadDuration(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "[security.timeouts]\nread = \"soon\"\n")

	if _, err := LoadDir(dir); err == nil {
		t.Fatal("bad duration accepted")
	}
}

func TestDurationRoundTrip(t *testing.T) {
	d := Duration(90 * time.Second)
	text, err := d.MarshalText()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back Duration
	if err := back.UnmarshalText(text); err != nil {
		t.Fatalf("unmarshal %q: %v", text, err)
	}
	if back != d {
		t.Fatalf("round trip %v != %v", back, d)
	}
}
