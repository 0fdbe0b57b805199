package config

import "github.com/caarlos0/env/v10"

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort        string `env:"HTTP_PORT" envDefault:"8080"`
	MongoURI        string `env:"MONGO_URI,required"`
	MongoDB         string `env:"MONGO_DB" envDefault:"animes"`
	MongoCollection string `env:"MONGO_COLLECTION" envDefault:"characters"`
	ImagesDir       string `env:"IMAGES_DIR" envDefault:"images"`
	RedisAddr       string `env:"REDIS_ADDR"`
	RedisPassword   string `env:"REDIS_PASSWORD"`
	RedisDB         int    `env:"REDIS_DB" envDefault:"0"`
	StatsCacheTTL   int    `env:"STATS_CACHE_TTL_SECONDS" envDefault:"60"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
