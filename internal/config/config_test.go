package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8090, cfg.Server.Port)
	assert.Equal(t, 20*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "memory", cfg.Storage.Backend)
	assert.Equal(t, "companion", cfg.Storage.KeyPrefix)
	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, 720*time.Hour, cfg.JWT.LearnerTokenTTL)
	assert.Equal(t, 60*time.Second, cfg.AI.OpenRouter.Timeout)
	assert.Equal(t, WizardConfig{LessonID: 3, SubLessonID: "3.2", ExerciseID: "workflow-redesign"}, cfg.Wizard)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("SERVER_PORT", "9191")
	t.Setenv("STORAGE_BACKEND", "redis")
	t.Setenv("REDIS_ADDRESS", "redis:6379")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_ASSISTANT_ID", "asst_1")
	t.Setenv("JWT_SECRET_KEY", "s3cret")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 9191, cfg.Server.Port)
	assert.Equal(t, "redis", cfg.Storage.Backend)
	assert.Equal(t, "redis:6379", cfg.Redis.Address)
	assert.Equal(t, "sk-test", cfg.AI.OpenAI.APIKey)
	assert.Equal(t, "asst_1", cfg.AI.OpenAI.AssistantID)
	assert.Equal(t, "s3cret", cfg.JWT.SecretKey)
	assert.Equal(t, "debug", cfg.Logger.Level)
}

func TestStoreKeyPrefix(t *testing.T) {
	assert.Equal(t, "companion", (&Config{}).StoreKeyPrefix())
	assert.Equal(t, "edu", (&Config{Storage: StorageConfig{KeyPrefix: "edu"}}).StoreKeyPrefix())
}
