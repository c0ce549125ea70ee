package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_ValoresPorDefecto(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "postgres", cfg.App.StorageDriver)
	assert.Equal(t, 15, cfg.Queue.AvgServiceMinutes)
	assert.False(t, cfg.Queue.StrictServices)
	assert.Equal(t, 10.0, cfg.Queue.DefaultRadiusKm)
	assert.Equal(t, 480, cfg.JWT.Expiration)
	assert.Equal(t, "INR", cfg.Payment.Currency)
	assert.Equal(t, int64(100000), cfg.Payment.MaxAmount)
	assert.False(t, cfg.Payment.Configured())
	assert.Empty(t, cfg.Kafka.Brokers)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestFromViper_LeeValoresComoTexto(t *testing.T) {
	v := viper.New()
	v.Set("QUEUE_AVG_SERVICE_MINUTES", "20")
	v.Set("QUEUE_STRICT_SERVICES", "true")
	v.Set("QUEUE_DEFAULT_RADIUS_KM", "2.5")
	v.Set("KAFKA_BROKERS", "k1:9092, k2:9092,")
	v.Set("RAZORPAY_KEY_ID", "rzp_test")
	v.Set("RAZORPAY_KEY_SECRET", "secret")
	v.Set("STORAGE_DRIVER", "memory")

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, 20, cfg.Queue.AvgServiceMinutes)
	assert.True(t, cfg.Queue.StrictServices)
	assert.Equal(t, 2.5, cfg.Queue.DefaultRadiusKm)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.Payment.Configured())
	assert.Equal(t, "memory", cfg.App.StorageDriver)
}

func TestFromViper_RechazaConfiguracionInvalida(t *testing.T) {
	v := viper.New()
	v.Set("QUEUE_AVG_SERVICE_MINUTES", "0")
	_, err := fromViper(v)
	assert.Error(t, err)

	v = viper.New()
	v.Set("STORAGE_DRIVER", "sqlite")
	_, err = fromViper(v)
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss word", DBName: "nextcut", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%20word@db:5432/nextcut?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}
