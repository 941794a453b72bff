package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestFromViperDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg := fromViper(v)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, time.Hour, cfg.JWTExpiryDuration)
	assert.Equal(t, 5, cfg.DefaultGracePeriodDays)
	assert.Equal(t, "0.05", cfg.LateFeeDailyRate.String())
	assert.Equal(t, "KE", cfg.PhoneDefaultRegion)
	assert.False(t, cfg.AllowSharedHouses)
	assert.NotEmpty(t, cfg.JWTSecret)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSAllowedOrigins)
}

func TestFromViperOverrides(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("ALLOW_SHARED_HOUSES", true)
	v.Set("DEFAULT_GRACE_PERIOD_DAYS", 7)
	v.Set("LATE_FEE_DAILY_RATE", "0.02")
	v.Set("JWT_EXPIRY_DURATION", "30m")
	v.Set("PHONE_DEFAULT_REGION", "ug")
	v.Set("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")

	cfg := fromViper(v)

	assert.True(t, cfg.AllowSharedHouses)
	assert.Equal(t, 7, cfg.DefaultGracePeriodDays)
	assert.Equal(t, "0.02", cfg.LateFeeDailyRate.String())
	assert.Equal(t, 30*time.Minute, cfg.JWTExpiryDuration)
	assert.Equal(t, "UG", cfg.PhoneDefaultRegion)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
}

func TestFromViperRejectsBadValues(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("LATE_FEE_DAILY_RATE", "-1")
	v.Set("JWT_EXPIRY_DURATION", "soon")
	v.Set("DEFAULT_GRACE_PERIOD_DAYS", -3)

	cfg := fromViper(v)

	assert.Equal(t, "0.05", cfg.LateFeeDailyRate.String())
	assert.Equal(t, time.Hour, cfg.JWTExpiryDuration)
	assert.Equal(t, 5, cfg.DefaultGracePeriodDays)
}
