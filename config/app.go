package config

type App struct {
	Port         string `env:"APP_PORT" default:"8080"`
	DatabaseURL  string `env:"DATABASE_URL,required"`
	JWTSecret    string `env:"JWT_SECRET,required"`
	JWTTTLHours  int    `env:"JWT_TTL_HOURS" default:"24"`
	UPIPayeeVPA  string `env:"UPI_PAYEE_VPA,required"`
	UPIPayeeName string `env:"UPI_PAYEE_NAME" default:"Library Print Desk"`
	Env          string `env:"APP_ENV" default:"dev"`
}
