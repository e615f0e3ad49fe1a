package config

import (
	"time"
)

type DB struct {
	Url string `envconfig:"URL"`
}

type Storage struct {
	Backend string `envconfig:"BACKEND" default:"file" validate:"oneof=file postgres"`
	DataDir string `envconfig:"DATA_DIR" default:"./data" validate:"required"`
}

type Upload struct {
	Dir         string `envconfig:"DIR" default:"./uploads" validate:"required"`
	MaxFiles    int    `envconfig:"MAX_FILES" default:"10" validate:"min=1"`
	MaxFileSize int64  `envconfig:"MAX_FILE_SIZE" default:"10485760" validate:"min=1"`
}

type Analysis struct {
	StartDelay   time.Duration `envconfig:"START_DELAY" default:"1s"`
	ProcessDelay time.Duration `envconfig:"PROCESS_DELAY" default:"3s"`
	Workers      int           `envconfig:"WORKERS" default:"4" validate:"min=1"`
	QueueSize    int           `envconfig:"QUEUE_SIZE" default:"256" validate:"min=1"`
	JobTimeout   time.Duration `envconfig:"JOB_TIMEOUT" default:"30s"`
}

type Queue struct {
	Backend string `envconfig:"BACKEND" default:"memory" validate:"oneof=memory redis"`
}

type Redis struct {
	URL          string        `envconfig:"URL" default:"redis://localhost:6379/0"`
	Stream       string        `envconfig:"STREAM" default:"analysis-jobs"`
	Group        string        `envconfig:"GROUP" default:"analysis-workers"`
	PoolSize     int           `envconfig:"POOL_SIZE" default:"10"`
	DialTimeout  time.Duration `envconfig:"DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"WRITE_TIMEOUT" default:"3s"`
}

type Jwt struct {
	Secret string        `envconfig:"SECRET"`
	Expiry time.Duration `envconfig:"EXPIRY" default:"24h"`
}

type Demo struct {
	UserID    string `envconfig:"USER_ID" default:"00000000-0000-0000-0000-000000000001" validate:"uuid"`
	Email     string `envconfig:"EMAIL" default:"demo@example.com" validate:"omitempty,email"`
	FirstName string `envconfig:"FIRST_NAME" default:"Demo"`
	LastName  string `envconfig:"LAST_NAME" default:"User"`
}

type Auth struct {
	Strategy string `envconfig:"STRATEGY" default:"demo" validate:"oneof=demo jwt"`
	Jwt      *Jwt   `envconfig:"JWT"`
	Demo     *Demo  `envconfig:"DEMO"`
}

type RateLimit struct {
	MaxRequests int           `envconfig:"MAX_REQUESTS" default:"100"`
	Window      time.Duration `envconfig:"WINDOW" default:"1m"`
}

type Cors struct {
	AllowOrigins string `envconfig:"ALLOW_ORIGINS" default:"*"`
}

type Mail struct {
	Driver   string `envconfig:"DRIVER" default:"log" validate:"oneof=log smtp"`
	Host     string `envconfig:"HOST" default:"localhost"`
	Port     int    `envconfig:"PORT" default:"587"`
	Username string `envconfig:"USERNAME"`
	Password string `envconfig:"PASSWORD"`
	From     string `envconfig:"FROM" default:"reminders@subtracker.local" validate:"email"`
}

type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"json" validate:"oneof=json text"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[subtracker]"`
}

type Server struct {
	Scheme          string        `envconfig:"SCHEME" default:"http"`
	Host            string        `envconfig:"HOST" default:"localhost"`
	Port            int           `envconfig:"PORT" default:"3000"`
	APIPrefix       string        `envconfig:"API_PREFIX" default:"/api"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

type App struct {
	Env       string     `envconfig:"APP_ENV" default:"development"`
	Server    *Server    `envconfig:"SERVER"`
	Log       *Log       `envconfig:"LOG"`
	DB        *DB        `envconfig:"DATABASE"`
	Storage   *Storage   `envconfig:"STORAGE"`
	Upload    *Upload    `envconfig:"UPLOAD"`
	Analysis  *Analysis  `envconfig:"ANALYSIS"`
	Queue     *Queue     `envconfig:"QUEUE"`
	Redis     *Redis     `envconfig:"REDIS"`
	Auth      *Auth      `envconfig:"AUTH"`
	RateLimit *RateLimit `envconfig:"RATE_LIMIT"`
	Cors      *Cors      `envconfig:"CORS"`
	Mail      *Mail      `envconfig:"MAIL"`
}
