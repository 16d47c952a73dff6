package shared

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix         = "MARKETPLACE_ADMIN_"
	configFileEnv     = "MARKETPLACE_ADMIN_CONFIG"
	defaultConfigFile = "config/default.yaml"
)

// unprefixed environment names existing deployments already set
var legacyEnv = map[string]string{
	"PORT":                 "app.port",
	"NODE_ENV":             "app.env",
	"STATIC_ROOT":          "app.static-root",
	"DB_HOST":              "db.postgres.host",
	"DB_PORT":              "db.postgres.port",
	"DB_USER":              "db.postgres.user",
	"DB_PASSWORD":          "db.postgres.password",
	"DB_NAME":              "db.postgres.name",
	"DATABASE_URL":         "db.postgres.dsn",
	"CLIENT_ORIGIN":        "cors.origin",
	"JWT_SECRET":           "auth.jwt.secret",
	"SESSION_SECRET":       "auth.session.secret",
	"GOOGLE_CLIENT_ID":     "auth.google.client-id",
	"GOOGLE_CLIENT_SECRET": "auth.google.client-secret",
	"GOOGLE_CALLBACK_URL":  "auth.google.callback-url",
	"REDIS_URL":            "redis.url",
	"AMQP_URL":             "amqp.url",
	"ADMIN_USERNAME":       "auth.user.username",
	"ADMIN_PASSWORD":       "auth.user.password",
	"ADMIN_PASSWORD_HASH":  "auth.user.password-hash",
	"SLACK_WEBHOOK_URL":    "alert.slack.webhook-url",
}

func DefaultValues() map[string]interface{} {
	return map[string]interface{}{
		"app.name":                      "marketplace-admin",
		"app.host":                      ":5000",
		"app.idle-timeout":              "50s",
		"app.production":                false,
		"app.static-root":               "frontend/build",
		"logger.time-format":            time.RFC3339,
		"logger.level":                  1,
		"db.postgres.name":              "genesis_marketplace",
		"db.pool.max-open-conns":        10,
		"db.pool.max-idle-conns":        10,
		"db.pool.conn-max-lifetime":     "30m",
		"cors.origin":                   "http://localhost:5000",
		"auth.provider":                 "password",
		"auth.jwt.expiration":           "24h",
		"auth.cookie.name":              "token",
		"auth.session.cookie-name":      "sid",
		"auth.session.ttl":              "24h",
		"auth.login-rate-per-minute":    10,
		"auth.user.id":                  1,
		"auth.user.role":                "admin",
		"auth.user.display-name":        "Marketplace Admin",
		"auth.protected":                []string{"/api/tasks", "/api/users", "/api/telegram-users", "/api/telegram-invite-logs", "/api/data", "/api/volume"},
		"redis.enable":                  false,
		"redis.keeplive-interval":       "30s",
		"redis.retry-count":             3,
		"amqp.enable":                   false,
		"amqp.exchange":                 "marketplace.audit",
		"amqp.exchange-type":            "topic",
		"amqp.keeplive-interval":        "30s",
		"amqp.retry-count":              3,
		"metrics.enable":                true,
		"metrics.path":                  "/metrics",
		"scheduler.pool-stats-interval": "30s",
		"api.strict-not-found":          false,
		"alert.enable":                  false,
		"alert.slack.username":          "marketplace-admin",
		"alert.threshold":               5,
		"alert.window":                  "10m",
		"alert.cooldown":                "24h",
	}
}

func NewKoanfInstance() *koanf.Koanf {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(DefaultValues(), "."), nil); err != nil {
		log.Fatalf("error loading default values: %v", err)
	}

	path := os.Getenv(configFileEnv)
	if path == "" {
		path = defaultConfigFile
	}
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			log.Panicf("Error loading config %s: %v", path, err)
		}
		log.Printf("Load local config %s!", path)
	} else {
		log.Printf("Config file %s not found, using defaults and environment", path)
	}

	if err := LoadEnv(k); err != nil {
		log.Panicf("Error loading env: %v", err)
	}

	return k
}

// LoadEnv merges the prefixed variables, then the legacy names on top
func LoadEnv(k *koanf.Koanf) error {
	if err := k.Load(env.ProviderWithValue(envPrefix, ".", func(s string, v string) (string, interface{}) {
		// MARKETPLACE_ADMIN_DB_POOL_MAX__OPEN__CONNS -> db.pool.max-open-conns
		key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
		key = strings.ReplaceAll(key, "__", "-")
		key = strings.ReplaceAll(key, "_", ".")

		if key == "auth.protected" {
			return key, strings.Fields(v)
		}
		return key, v
	}), nil); err != nil {
		return err
	}

	legacy := make(map[string]interface{})
	for name, key := range legacyEnv {
		if v, ok := os.LookupEnv(name); ok && v != "" {
			legacy[key] = v
		}
	}
	if v, ok := legacy["app.env"]; ok {
		legacy["app.production"] = v == "production"
	}
	if v, ok := legacy["app.port"]; ok {
		legacy["app.host"] = ":" + v.(string)
	}

	return k.Load(confmap.Provider(legacy, "."), nil)
}
