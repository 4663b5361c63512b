package config

import (
	"log"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverPostgres  = "postgres"
	DriverFirestore = "firestore"
	DriverRedis     = "redis"
)

type Config struct {
	App struct {
		Env                string   `mapstructure:"env"`
		Port               string   `mapstructure:"port"`
		CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
		RateLimitPerSecond float64  `mapstructure:"rate_limit_per_second"`
		RateLimitBurst     int      `mapstructure:"rate_limit_burst"`
	} `mapstructure:"app"`
	Store struct {
		Driver     string `mapstructure:"driver"`
		Collection string `mapstructure:"collection"`
	} `mapstructure:"store"`
	DB struct {
		DSN string `mapstructure:"dsn"`
	} `mapstructure:"db"`
	Firestore struct {
		ProjectID    string `mapstructure:"project_id"`
		EmulatorHost string `mapstructure:"emulator_host"`
	} `mapstructure:"firestore"`
	Redis struct {
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
		DB       int    `mapstructure:"db"`
	} `mapstructure:"redis"`
	Kafka struct {
		Brokers []string `mapstructure:"brokers"`
		GroupID string   `mapstructure:"group_id"`
	} `mapstructure:"kafka"`
	Jaeger struct {
		OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	} `mapstructure:"jaeger"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("app.rate_limit_per_second", 20)
	v.SetDefault("app.rate_limit_burst", 40)
	v.SetDefault("store.driver", DriverPostgres)
	v.SetDefault("store.collection", "users")
	v.SetDefault("kafka.group_id", "user-sync-group")
}

// LoadConfig reads .env, then config.yaml from the given paths (the working
// directory when none is given), then the environment.
func LoadConfig(paths ...string) (cfg Config, err error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}

	envFiles := make([]string, 0, len(paths))
	for _, p := range paths {
		envFiles = append(envFiles, filepath.Join(p, ".env"))
	}
	err = godotenv.Load(envFiles...)
	if err != nil {
		log.Println("warning: .env file not found, use default.")
	}

	v := viper.New()
	setDefaults(v)
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if err = v.ReadInConfig(); err != nil {
		log.Printf("note: config.yaml not found, read .env only. Error: %v", err)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.BindEnv("app.env", "APP_ENV")
	v.BindEnv("app.port", "APP_PORT")
	v.BindEnv("app.cors_allowed_origins", "CORS_ALLOWED_ORIGINS")
	v.BindEnv("app.rate_limit_per_second", "RATE_LIMIT_PER_SECOND")
	v.BindEnv("app.rate_limit_burst", "RATE_LIMIT_BURST")
	v.BindEnv("store.driver", "STORE_DRIVER")
	v.BindEnv("store.collection", "STORE_COLLECTION")
	v.BindEnv("db.dsn", "DB_DSN")
	v.BindEnv("firestore.project_id", "FIRESTORE_PROJECT_ID")
	v.BindEnv("firestore.emulator_host", "FIRESTORE_EMULATOR_HOST")
	v.BindEnv("redis.addr", "REDIS_ADDR")
	v.BindEnv("redis.password", "REDIS_PASSWORD")
	v.BindEnv("redis.db", "REDIS_DB")
	v.BindEnv("kafka.brokers", "KAFKA_BROKERS")
	v.BindEnv("kafka.group_id", "KAFKA_GROUP_ID")
	v.BindEnv("jaeger.otlp_endpoint", "OTLP_ENDPOINT")

	err = v.Unmarshal(&cfg)
	if err != nil {
		return
	}

	cfg.App.CORSAllowedOrigins = splitList(cfg.App.CORSAllowedOrigins)
	cfg.Kafka.Brokers = splitList(cfg.Kafka.Brokers)
	return
}

// splitList accepts both YAML lists and comma separated env values.
func splitList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
