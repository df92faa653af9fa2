package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	DB      DBConfig
	Redis   RedisConfig
	Logger  LoggerConfig
	AI      AIConfig
	JWT     JWTConfig
	Course  CourseConfig
	Wizard  WizardConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// StorageConfig selects the key-value backend that holds progress trees
// and auxiliary exercise blobs: "memory", "redis" or "sql".
type StorageConfig struct {
	Backend   string
	KeyPrefix string
}

type DBConfig struct {
	Driver string // "sqlite" or "oracle"
	DSN    string
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type LoggerConfig struct {
	Level string
	Env   string
}

type AIConfig struct {
	OpenRouter ProviderConfig
	OpenAI     ProviderConfig
}

type ProviderConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	AssistantID string
	Timeout     time.Duration
}

type JWTConfig struct {
	SecretKey       string
	LearnerTokenTTL time.Duration
}

type CourseConfig struct {
	Path string
}

// WizardConfig names the exercise marked answered when the workflow wizard
// reaches its final stage.
type WizardConfig struct {
	LessonID    int
	SubLessonID string
	ExerciseID  string
}

func setDefaults() {
	viper.SetDefault("server.port", 8090)
	viper.SetDefault("server.read_timeout", 20)
	viper.SetDefault("server.write_timeout", 60)
	viper.SetDefault("storage.backend", "memory")
	viper.SetDefault("storage.key_prefix", "companion")
	viper.SetDefault("db.driver", "sqlite")
	viper.SetDefault("db.dsn", "file:companion.db?_pragma=busy_timeout(5000)")
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.env", "development")
	viper.SetDefault("ai.openrouter.base_url", "https://openrouter.ai/api/v1")
	viper.SetDefault("ai.openrouter.model", "openai/gpt-4o-mini")
	viper.SetDefault("ai.openrouter.timeout", 60)
	viper.SetDefault("ai.openai.base_url", "https://api.openai.com/v1")
	viper.SetDefault("ai.openai.model", "gpt-4o-mini")
	viper.SetDefault("ai.openai.timeout", 120)
	viper.SetDefault("jwt.learner_token_ttl", "720h")
	viper.SetDefault("wizard.lesson_id", 3)
	viper.SetDefault("wizard.sub_lesson_id", "3.2")
	viper.SetDefault("wizard.exercise_id", "workflow-redesign")
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	if os.Getenv("ENV") == "test" {
		viper.AddConfigPath("../../config")
		viper.AddConfigPath("../../")
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
	}

	setDefaults()
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if configFile := viper.ConfigFileUsed(); configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Printf("Using config file: %s\n", absPath)
	}

	config := &Config{
		Server: ServerConfig{
			Port:         viper.GetInt("server.port"),
			ReadTimeout:  time.Duration(viper.GetInt("server.read_timeout")) * time.Second,
			WriteTimeout: time.Duration(viper.GetInt("server.write_timeout")) * time.Second,
		},
		Storage: StorageConfig{
			Backend:   viper.GetString("storage.backend"),
			KeyPrefix: viper.GetString("storage.key_prefix"),
		},
		DB: DBConfig{
			Driver: viper.GetString("db.driver"),
			DSN:    viper.GetString("db.dsn"),
		},
		Redis: RedisConfig{
			Address:  viper.GetString("redis.address"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		},
		Logger: LoggerConfig{
			Level: viper.GetString("logger.level"),
			Env:   viper.GetString("logger.env"),
		},
		AI: AIConfig{
			OpenRouter: ProviderConfig{
				APIKey:  viper.GetString("ai.openrouter.api_key"),
				BaseURL: viper.GetString("ai.openrouter.base_url"),
				Model:   viper.GetString("ai.openrouter.model"),
				Timeout: time.Duration(viper.GetInt("ai.openrouter.timeout")) * time.Second,
			},
			OpenAI: ProviderConfig{
				APIKey:      viper.GetString("ai.openai.api_key"),
				BaseURL:     viper.GetString("ai.openai.base_url"),
				Model:       viper.GetString("ai.openai.model"),
				AssistantID: viper.GetString("ai.openai.assistant_id"),
				Timeout:     time.Duration(viper.GetInt("ai.openai.timeout")) * time.Second,
			},
		},
		JWT: JWTConfig{
			SecretKey:       viper.GetString("jwt.secret_key"),
			LearnerTokenTTL: viper.GetDuration("jwt.learner_token_ttl"),
		},
		Course: CourseConfig{
			Path: viper.GetString("course.path"),
		},
		Wizard: WizardConfig{
			LessonID:    viper.GetInt("wizard.lesson_id"),
			SubLessonID: viper.GetString("wizard.sub_lesson_id"),
			ExerciseID:  viper.GetString("wizard.exercise_id"),
		},
	}

	// Override with environment variables if set
	if port := os.Getenv("SERVER_PORT"); port != "" {
		config.Server.Port = viper.GetInt("SERVER_PORT")
	}
	if backend := os.Getenv("STORAGE_BACKEND"); backend != "" {
		config.Storage.Backend = backend
	}
	if driver := os.Getenv("DB_DRIVER"); driver != "" {
		config.DB.Driver = driver
	}
	if dsn := os.Getenv("DB_DSN"); dsn != "" {
		config.DB.DSN = dsn
	}
	if redisAddress := os.Getenv("REDIS_ADDRESS"); redisAddress != "" {
		config.Redis.Address = redisAddress
	}
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		config.Redis.Password = redisPassword
	}
	if key := os.Getenv("OPENROUTER_API_KEY"); key != "" {
		config.AI.OpenRouter.APIKey = key
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		config.AI.OpenAI.APIKey = key
	}
	if assistantID := os.Getenv("OPENAI_ASSISTANT_ID"); assistantID != "" {
		config.AI.OpenAI.AssistantID = assistantID
	}
	if secret := os.Getenv("JWT_SECRET_KEY"); secret != "" {
		config.JWT.SecretKey = secret
	}
	if coursePath := os.Getenv("COURSE_PATH"); coursePath != "" {
		config.Course.Path = coursePath
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		config.Logger.Level = level
	}

	return config, nil
}

// StoreKeyPrefix returns the namespace used for every storage key.
func (c *Config) StoreKeyPrefix() string {
	if c.Storage.KeyPrefix == "" {
		return "companion"
	}
	return c.Storage.KeyPrefix
}
