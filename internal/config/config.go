// Package config carga la configuración del servicio: defaults, archivo
// YAML opcional y por último variables de entorno (que pisan todo).
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Server struct {
	Addr string `yaml:"addr"`
}

type DB struct {
	// DSN vacío = repos in-memory.
	DSN string `yaml:"dsn"`
}

// Duration acepta valores estilo "30m" / "1h" en YAML.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("config: duración inválida %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) Std() time.Duration { return time.Duration(d) }

type JWT struct {
	Secret    string   `yaml:"secret"`
	Issuer    string   `yaml:"issuer"`
	AccessTTL Duration `yaml:"access_ttl"`
}

type Uploads struct {
	Dir string `yaml:"dir"`
}

type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type Seed struct {
	Enabled       bool   `yaml:"enabled"`
	AdminCPF      string `yaml:"admin_cpf"`
	AdminName     string `yaml:"admin_name"`
	AdminPassword string `yaml:"admin_password"`
}

type CORS struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type Config struct {
	Server  Server  `yaml:"server"`
	DB      DB      `yaml:"db"`
	JWT     JWT     `yaml:"jwt"`
	Uploads Uploads `yaml:"uploads"`
	Log     Log     `yaml:"log"`
	Seed    Seed    `yaml:"seed"`
	CORS    CORS    `yaml:"cors"`
}

func defaults() Config {
	return Config{
		Server:  Server{Addr: ":8080"},
		JWT:     JWT{Issuer: "petshop-api", AccessTTL: Duration(time.Hour)},
		Uploads: Uploads{Dir: "./uploads"},
		Log:     Log{Level: "info", Format: "text"},
		Seed: Seed{
			Enabled:       true,
			AdminCPF:      "12345678900",
			AdminName:     "admin",
			AdminPassword: "admin123",
		},
		CORS: CORS{AllowedOrigins: []string{"*"}},
	}
}

// Load arma la config final: defaults <- YAML (si path no es vacío) <- env.
func Load(path string) (Config, error) {
	cfg := defaults()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: leyendo %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parseando %s: %w", path, err)
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Addr = ":" + v
	}
	if v := os.Getenv("DB_DSN"); v != "" {
		cfg.DB.DSN = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWT.Secret = v
	}
	if v := os.Getenv("JWT_ISSUER"); v != "" {
		cfg.JWT.Issuer = v
	}
	if v := os.Getenv("JWT_ACCESS_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.JWT.AccessTTL = Duration(d)
		}
	}
	if v := os.Getenv("UPLOAD_DIR"); v != "" {
		cfg.Uploads.Dir = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("SEED_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Seed.Enabled = b
		}
	}
	if v := os.Getenv("ADMIN_CPF"); v != "" {
		cfg.Seed.AdminCPF = v
	}
	if v := os.Getenv("ADMIN_NAME"); v != "" {
		cfg.Seed.AdminName = v
	}
	if v := os.Getenv("ADMIN_PASSWORD"); v != "" {
		cfg.Seed.AdminPassword = v
	}
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		parts := strings.Split(v, ",")
		origins := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				origins = append(origins, p)
			}
		}
		cfg.CORS.AllowedOrigins = origins
	}
}
