// Package config loads volki.toml. The [server] and [security] sections
// live here; [style] is decoded separately by pkg/style next to the
// sources it applies to.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/volki-dev/volki/internal/errors"
	"github.com/volki-dev/volki/pkg/reactor"
)

// FileName is the configuration file searched for in the project root.
const FileName = "volki.toml"

// Duration decodes TOML strings like "30s" or "1m".
type Duration time.Duration

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config is the decoded volki.toml.
type Config struct {
	Server   Server   `toml:"server"`
	Security Security `toml:"security"`
}

// Server holds listener and build paths.
type Server struct {
	Host          string `toml:"host"`
	Port          int    `toml:"port"`
	PublicDir     string `toml:"public_dir"`
	Dist          string `toml:"dist"`
	Workers       int    `toml:"workers"`
	QueueCapacity int    `toml:"queue_capacity"`

	TLSCert string `toml:"tls_cert"`
	TLSKey  string `toml:"tls_key"`
}

// Security mirrors the reactor's knobs in TOML form.
type Security struct {
	SizeLimits SizeLimits `toml:"size_limits"`
	RateLimits RateLimits `toml:"rate_limits"`
	Timeouts   Timeouts   `toml:"timeouts"`
}

type SizeLimits struct {
	MaxHeaderSize int `toml:"max_header_size"`
	MaxBodySize   int `toml:"max_body_size"`
	MaxURILength  int `toml:"max_uri_length"`
}

type RateLimits struct {
	MaxConnections      int          `toml:"max_connections"`
	MaxConnectionsPerIP int          `toml:"max_connections_per_ip"`
	Global              *GlobalLimit `toml:"global"`
}

type GlobalLimit struct {
	Requests int      `toml:"requests"`
	Window   Duration `toml:"window"`
}

type Timeouts struct {
	Handshake Duration `toml:"handshake"`
	Read      Duration `toml:"read"`
	Write     Duration `toml:"write"`
	KeepAlive Duration `toml:"keep_alive"`
}

// Default returns the configuration used when no volki.toml exists.
func Default() Config {
	sec := reactor.DefaultSecurityConfig()
	return Config{
		Server: Server{
			Host:      "127.0.0.1",
			Port:      8080,
			PublicDir: "public",
			Dist:      "dist",
		},
		Security: Security{
			SizeLimits: SizeLimits{
				MaxHeaderSize: sec.MaxHeaderSize,
				MaxBodySize:   sec.MaxBodySize,
				MaxURILength:  sec.MaxURILength,
			},
			RateLimits: RateLimits{
				MaxConnections:      sec.MaxConnections,
				MaxConnectionsPerIP: sec.MaxConnectionsPerIP,
			},
			Timeouts: Timeouts{
				Handshake: Duration(sec.HandshakeTimeout),
				Read:      Duration(sec.ReadTimeout),
				Write:     Duration(sec.WriteTimeout),
				KeepAlive: Duration(sec.KeepAliveTimeout),
			},
		},
	}
}

// Load reads and decodes the file at path. Unset fields keep their
// defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.New("E401").Wrap(err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.New("E401").
			WithDetail(err.Error()).
			Wrap(err)
	}
	return cfg, nil
}

// LoadDir loads dir/volki.toml, or the defaults when the file does not
// exist.
func LoadDir(dir string) (Config, error) {
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); err != nil {
		return Default(), nil
	}
	return Load(path)
}

// ReactorSecurity converts the TOML knobs to the reactor's config.
func (c Config) ReactorSecurity() reactor.SecurityConfig {
	sec := reactor.DefaultSecurityConfig()
	sl := c.Security.SizeLimits
	if sl.MaxHeaderSize > 0 {
		sec.MaxHeaderSize = sl.MaxHeaderSize
	}
	if sl.MaxBodySize > 0 {
		sec.MaxBodySize = sl.MaxBodySize
	}
	if sl.MaxURILength > 0 {
		sec.MaxURILength = sl.MaxURILength
	}
	rl := c.Security.RateLimits
	if rl.MaxConnections > 0 {
		sec.MaxConnections = rl.MaxConnections
	}
	if rl.MaxConnectionsPerIP > 0 {
		sec.MaxConnectionsPerIP = rl.MaxConnectionsPerIP
	}
	if g := rl.Global; g != nil && g.Requests > 0 && g.Window > 0 {
		sec.GlobalRateLimit = &reactor.RateLimitSpec{
			Requests: g.Requests,
			Window:   g.Window.Std(),
		}
	}
	to := c.Security.Timeouts
	if to.Handshake > 0 {
		sec.HandshakeTimeout = to.Handshake.Std()
	}
	if to.Read > 0 {
		sec.ReadTimeout = to.Read.Std()
	}
	if to.Write > 0 {
		sec.WriteTimeout = to.Write.Std()
	}
	if to.KeepAlive > 0 {
		sec.KeepAliveTimeout = to.KeepAlive.Std()
	}
	return sec
}
