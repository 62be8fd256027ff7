package config

type App struct {
	Port            string `env:"APP_PORT" envDefault:"8080"`
	DatabaseURL     string `env:"DATABASE_URL,required,notEmpty"`
	AuthSecret      string `env:"AUTH_SECRET" envDefault:"local_dev_secret"`
	Env             string `env:"APP_ENV" envDefault:"dev"`
	LogLevel        string `env:"LOG_LEVEL" envDefault:"info"`
	SessionTTLHours int    `env:"SESSION_TTL_HOURS" envDefault:"24"`
	SeedFile        string `env:"SEED_FILE"`
	CacheEntries    int    `env:"CACHE_ENTRIES" envDefault:"1024"`
}

func (a App) IsProd() bool { return a.Env == "prod" }
