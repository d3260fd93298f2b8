package config

import (
	"bytes"
	"os"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func chdir(t *testing.T, dir string) {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoadConfig_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.True(t, cfg.Development())
	assert.Equal(t, "4001", cfg.HTTP.Port)
	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, 24*time.Hour, cfg.Cache.TTL)
	assert.Equal(t, 32, cfg.Resolver.MaxRedirectHops)
	assert.Equal(t, 10*time.Second, cfg.Resolver.Timeout)
	assert.Equal(t, "@every 1h", cfg.Jobs.RedirectAudit)
}

func TestLoadConfig_Env(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("BOOKBRAINZ_ENV", "production")
	t.Setenv("BOOKBRAINZ_HTTP_PORT", "8080")
	t.Setenv("BOOKBRAINZ_DB_DRIVER", "postgres")
	t.Setenv("BOOKBRAINZ_DB_DSN", "host=localhost user=bookbrainz dbname=bookbrainz")
	t.Setenv("BOOKBRAINZ_CACHE_COMPRESSION", "lz4")
	t.Setenv("BOOKBRAINZ_RESOLVER_TIMEOUT", "2s")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.False(t, cfg.Development())
	assert.Equal(t, "8080", cfg.HTTP.Port)
	assert.Equal(t, "postgres", cfg.DB.Driver)
	assert.Equal(t, "lz4", cfg.Cache.Compression)
	assert.Equal(t, 2*time.Second, cfg.Resolver.Timeout)
}

func TestDecode_Invalid(t *testing.T) {
	tests := []struct {
		key   string
		value any
	}{
		{"db.driver", "mysql"},
		{"cache.compression", "zstd"},
		{"resolver.max_redirect_hops", 0},
		{"http.port", "http"},
		{"log.level", "loud"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			v := viper.New()
			setDefaults(v)
			v.Set(tt.key, tt.value)

			_, err := decode(v)
			assert.Error(t, err)
		})
	}
}

func TestGetDb_Sqlite(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("db.dsn", t.TempDir()+"/test.db")
	cfg, err := decode(v)
	require.NoError(t, err)

	db, err := GetDb(cfg)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.NoError(t, sqlDB.Ping())
	assert.NoError(t, sqlDB.Close())

	cfg.DB.Driver = "oracle"
	_, err = GetDb(cfg)
	assert.Error(t, err)
}

func TestGetDb_QuietOnMissingRecord(t *testing.T) {
	var out bytes.Buffer
	logrus.SetOutput(&out)
	defer logrus.SetOutput(os.Stderr)
	defer logrus.SetLevel(logrus.GetLevel())
	logrus.SetLevel(logrus.InfoLevel)

	v := viper.New()
	setDefaults(v)
	v.Set("db.dsn", t.TempDir()+"/test.db")
	cfg, err := decode(v)
	require.NoError(t, err)

	db, err := GetDb(cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	type shelf struct {
		ID   uint
		Name string
	}
	require.NoError(t, db.AutoMigrate(&shelf{}))

	var found shelf
	err = db.First(&found, 42).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NotContains(t, out.String(), "record not found")

	err = db.Table("missing_table").First(&found).Error
	assert.Error(t, err)
	assert.Contains(t, out.String(), "missing_table")
}

func TestSetupLogging(t *testing.T) {
	defer logrus.SetLevel(logrus.GetLevel())
	defer logrus.SetFormatter(logrus.StandardLogger().Formatter)

	require.NoError(t, SetupLogging(&Config{Log: LogConfig{Level: "warn", JSON: true}}))
	assert.Equal(t, logrus.WarnLevel, logrus.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logrus.StandardLogger().Formatter)

	assert.Error(t, SetupLogging(&Config{Log: LogConfig{Level: "loud"}}))
}
