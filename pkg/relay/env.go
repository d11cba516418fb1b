// pkg/relay/env.go

package relay

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/CodeMonkeyCybersecurity/janus/pkg/crypto"
	cerr "github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// EnsureEnvFile writes the application environment file with freshly generated
// secrets, unless one already exists. An existing file is preserved verbatim:
// rotating JWT_SECRET or ENCRYPTION_KEY would invalidate issued sessions and
// stored credentials.
func EnsureEnvFile(ctx context.Context, cfg *Config) (created bool, err error) {
	log := otelzap.Ctx(ctx)

	if _, err := os.Stat(cfg.EnvPath()); err == nil {
		log.Info("Environment file already exists, keeping secrets",
			zap.String("path", cfg.EnvPath()))
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, cerr.Wrapf(err, "stat %s", cfg.EnvPath())
	}

	jwtSecret, err := crypto.GenerateHexSecret(32)
	if err != nil {
		return false, cerr.Wrap(err, "generate JWT secret")
	}
	// The application requires a 32-character AES key.
	encryptionKey, err := crypto.GenerateHexSecret(16)
	if err != nil {
		return false, cerr.Wrap(err, "generate encryption key")
	}
	// Seeds the application's admin console account on first boot.
	adminPassword, err := crypto.GeneratePassword(24)
	if err != nil {
		return false, cerr.Wrap(err, "generate admin password")
	}

	env := map[string]string{
		"JWT_SECRET":     jwtSecret,
		"ENCRYPTION_KEY": encryptionKey,
		"ADMIN_USERNAME": "admin",
		"ADMIN_PASSWORD": adminPassword,
		"DOMAIN":         cfg.Domain,
		"SSL_EMAIL":      cfg.Email,
		"BIND_HOST":      DefaultBindHost,
		"PORT":           strconv.Itoa(cfg.AppPort),
		"REDIS_HOST":     "redis",
		"REDIS_PORT":     "6379",
		"TZ":             "UTC",
	}

	if err := godotenv.Write(env, cfg.EnvPath()); err != nil {
		return false, cerr.Wrapf(err, "write %s", cfg.EnvPath())
	}
	if err := os.Chmod(cfg.EnvPath(), 0600); err != nil {
		return false, cerr.Wrapf(err, "chmod %s", cfg.EnvPath())
	}

	log.Info("Environment file generated",
		zap.String("path", cfg.EnvPath()),
		zap.String("jwt_secret", crypto.Redact(jwtSecret)),
		zap.String("encryption_key", crypto.Redact(encryptionKey)),
		zap.String("admin_password", crypto.Redact(adminPassword)))
	return true, nil
}

// ReadEnvFile loads the deployment's env file as a map.
func ReadEnvFile(cfg *Config) (map[string]string, error) {
	env, err := godotenv.Read(cfg.EnvPath())
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", cfg.EnvPath(), err)
	}
	return env, nil
}
