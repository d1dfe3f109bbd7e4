package config

import "os"

type Config struct {
	Port                    string
	Env                     string
	AuthMode                string // "jwt" or "firebase"
	FirebaseCredentialsPath string
	PostgresConnStr         string
	MongoURI                string
	MongoDB                 string
}

func Load() *Config {
	return &Config{
		Port:                    getEnv("PORT", "8080"),
		Env:                     getEnv("ENV", "development"),
		AuthMode:                getEnv("AUTH_MODE", "jwt"),
		FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
		PostgresConnStr:         getEnv("POSTGRES_CONN_STR", ""),
		MongoURI:                getEnv("MONGO_URI", ""),
		MongoDB:                 getEnv("MONGO_DB", "archnet"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
