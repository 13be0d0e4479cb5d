package configuration

import (
	"fmt"
	"log"
	"net"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-sql-driver/mysql"
	"github.com/iota-uz/utils/fs"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/ulule/limiter/v3"

	"github.com/iota-uz/legacy-migrate/pkg/logging"
)

const (
	StrategyDB     = "db"
	StrategyAPI    = "api"
	StrategyMemory = "memory"
)

var singleton = sync.OnceValue(func() *Configuration {
	c := &Configuration{}
	if err := c.load([]string{".env", ".env.local"}); err != nil {
		c.Unload()
		panic(err)
	}
	return c
})

// LoadEnv loads the env files that exist. When none is found in the working
// directory it retries next to the nearest go.mod above it.
func LoadEnv(envFiles []string) (int, error) {
	existing := existingFiles(envFiles, "")
	if len(existing) == 0 {
		if root := moduleRoot(); root != "" {
			existing = existingFiles(envFiles, root)
		}
	}
	if len(existing) == 0 {
		return 0, nil
	}
	return len(existing), godotenv.Load(existing...)
}

func existingFiles(envFiles []string, dir string) []string {
	out := make([]string, 0, len(envFiles))
	for _, file := range envFiles {
		path := file
		if dir != "" && !filepath.IsAbs(file) {
			path = filepath.Join(dir, file)
		}
		if fs.FileExists(path) {
			out = append(out, path)
		}
	}
	return out
}

func moduleRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		if fs.FileExists(filepath.Join(dir, "go.mod")) {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// LegacyDatabaseOptions point at the MySQL server holding the legacy
// schemas. It is only ever read.
type LegacyDatabaseOptions struct {
	Host     string `env:"LEGACY_DB_HOST" envDefault:"localhost"`
	Port     string `env:"LEGACY_DB_PORT" envDefault:"3306"`
	User     string `env:"LEGACY_DB_USER" envDefault:"root"`
	Password string `env:"LEGACY_DB_PASSWORD"`
	Name     string `env:"LEGACY_DB_NAME" envDefault:"mwnf3"`
}

func (l *LegacyDatabaseOptions) MySQLConfig() *mysql.Config {
	cfg := mysql.NewConfig()
	cfg.User = l.User
	cfg.Passwd = l.Password
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(l.Host, l.Port)
	cfg.DBName = l.Name
	cfg.ParseTime = false
	cfg.Params = map[string]string{"charset": "utf8mb4"}
	return cfg
}

func (l *LegacyDatabaseOptions) DSN() string {
	return l.MySQLConfig().FormatDSN()
}

func (l *LegacyDatabaseOptions) Validate() error {
	if strings.TrimSpace(l.Host) == "" {
		return fmt.Errorf("LEGACY_DB_HOST is required")
	}
	if strings.TrimSpace(l.User) == "" {
		return fmt.Errorf("LEGACY_DB_USER is required")
	}
	return nil
}

type DatabaseOptions struct {
	Opts     string `env:"-"`
	Name     string `env:"DB_NAME" envDefault:"inventory"`
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     string `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"postgres"`
	Password string `env:"DB_PASSWORD" envDefault:"postgres"`
	SSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`
}

func (d *DatabaseOptions) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s dbname=%s password=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Name, d.Password, d.SSLMode,
	)
}

type APIOptions struct {
	BaseURL   string        `env:"API_BASE_URL"`
	Token     string        `env:"API_TOKEN"`
	Timeout   time.Duration `env:"API_TIMEOUT" envDefault:"30s"`
	RateLimit string        `env:"API_RATE_LIMIT" envDefault:"20-S"`
	// Sent with every request; a fresh uuid is used per request.
	RequestIDHeader string `env:"API_REQUEST_ID_HEADER" envDefault:"X-Request-ID"`
}

// Validate checks the options the API strategy needs. It is only called
// when that strategy is selected.
func (a *APIOptions) Validate() error {
	if strings.TrimSpace(a.BaseURL) == "" {
		return fmt.Errorf("API_BASE_URL is required for the api strategy")
	}
	if strings.TrimSpace(a.Token) == "" {
		return fmt.Errorf("API_TOKEN is required for the api strategy")
	}
	if a.Timeout < 0 {
		return fmt.Errorf("API_TIMEOUT must be non-negative, got %s", a.Timeout)
	}
	if rl := strings.TrimSpace(a.RateLimit); rl != "" {
		if _, err := limiter.NewRateFromFormatted(rl); err != nil {
			return fmt.Errorf("invalid API_RATE_LIMIT=%q: %w", a.RateLimit, err)
		}
	}
	return nil
}

type ImportOptions struct {
	Strategy        string `env:"IMPORT_STRATEGY" envDefault:"db"`
	DryRun          bool   `env:"IMPORT_DRY_RUN" envDefault:"false"`
	SampleOnly      bool   `env:"IMPORT_SAMPLE_ONLY" envDefault:"false"`
	RowLimit        int    `env:"IMPORT_ROW_LIMIT" envDefault:"0"`
	ChunkSize       int    `env:"IMPORT_CHUNK_SIZE" envDefault:"500"`
	DefaultLanguage string `env:"IMPORT_DEFAULT_LANGUAGE" envDefault:"eng"`
	TrackerWarmup   bool   `env:"TRACKER_WARMUP" envDefault:"true"`
	CodeMapFile     string `env:"CODE_MAP_FILE"`
	ImageRoot       string `env:"IMAGE_ROOT"`
}

func (i *ImportOptions) Validate() error {
	strategy := strings.ToLower(strings.TrimSpace(i.Strategy))
	switch strategy {
	case StrategyDB, StrategyAPI, StrategyMemory:
	default:
		return fmt.Errorf("invalid IMPORT_STRATEGY=%q (expected db|api|memory)", i.Strategy)
	}
	i.Strategy = strategy
	if i.RowLimit < 0 {
		return fmt.Errorf("IMPORT_ROW_LIMIT must be non-negative, got %d", i.RowLimit)
	}
	if i.ChunkSize <= 0 {
		return fmt.Errorf("IMPORT_CHUNK_SIZE must be positive, got %d", i.ChunkSize)
	}
	if len(strings.TrimSpace(i.DefaultLanguage)) != 3 {
		return fmt.Errorf("IMPORT_DEFAULT_LANGUAGE must be an ISO 639-3 code, got %q", i.DefaultLanguage)
	}
	if i.CodeMapFile != "" && !fs.FileExists(i.CodeMapFile) {
		return fmt.Errorf("CODE_MAP_FILE %s does not exist", i.CodeMapFile)
	}
	return nil
}

type SampleOptions struct {
	// Empty disables sample collection.
	DBPath       string `env:"SAMPLE_DB_PATH"`
	SuccessLimit int    `env:"SAMPLE_SUCCESS_LIMIT" envDefault:"20"`
}

func (s *SampleOptions) Validate() error {
	if s.SuccessLimit < 0 {
		return fmt.Errorf("SAMPLE_SUCCESS_LIMIT must be non-negative, got %d", s.SuccessLimit)
	}
	return nil
}

type Configuration struct {
	LegacyDatabase LegacyDatabaseOptions
	Database       DatabaseOptions
	API            APIOptions
	Import         ImportOptions
	Sample         SampleOptions

	LogDir   string `env:"LOG_DIR" envDefault:"logs"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	logFile *os.File
	logger  *logrus.Logger
}

func Use() *Configuration {
	return singleton()
}

// Load builds a configuration outside the process singleton, for commands
// that override values from flags and for tests.
func Load(envFiles ...string) (*Configuration, error) {
	c := &Configuration{}
	if err := c.load(envFiles); err != nil {
		c.Unload()
		return nil, err
	}
	return c, nil
}

// Logger is the console logger.
func (c *Configuration) Logger() *logrus.Logger {
	return c.logger
}

func (c *Configuration) LogrusLogLevel() logrus.Level {
	return logging.ParseLevel(c.LogLevel)
}

// RunLogPath is the per-run log file, named after the run start.
func (c *Configuration) RunLogPath(started time.Time, ext string) string {
	return filepath.Join(c.LogDir, fmt.Sprintf("import-%s.%s", started.Format("20060102-150405"), ext))
}

// OpenRunLog opens the run log file. It is closed by Unload.
func (c *Configuration) OpenRunLog(started time.Time) (string, *logrus.Logger, error) {
	path := c.RunLogPath(started, "log")
	f, logger, err := logging.FileLogger(logrus.DebugLevel, path)
	if err != nil {
		return "", nil, err
	}
	c.logFile = f
	return path, logger, nil
}

// Validate checks every option group. The API group is only checked when
// the api strategy is selected.
func (c *Configuration) Validate() error {
	if err := c.Import.Validate(); err != nil {
		return fmt.Errorf("import configuration error: %w", err)
	}
	if err := c.LegacyDatabase.Validate(); err != nil {
		return fmt.Errorf("legacy database configuration error: %w", err)
	}
	if c.Import.Strategy == StrategyAPI {
		if err := c.API.Validate(); err != nil {
			return fmt.Errorf("api configuration error: %w", err)
		}
	}
	if err := c.Sample.Validate(); err != nil {
		return fmt.Errorf("sample configuration error: %w", err)
	}
	return nil
}

func (c *Configuration) load(envFiles []string) error {
	n, err := LoadEnv(envFiles)
	if err != nil {
		return err
	}
	if n == 0 && len(envFiles) > 0 {
		wd, _ := os.Getwd()
		log.Println("No .env files found. Tried:")
		for _, file := range envFiles {
			log.Println(filepath.Join(wd, file))
		}
	}
	if err := env.Parse(c); err != nil {
		return err
	}
	if err := c.Validate(); err != nil {
		return err
	}
	c.logger = logging.ConsoleLogger(c.LogrusLogLevel())
	c.Database.Opts = c.Database.ConnectionString()
	return nil
}

// Unload closes the run log.
func (c *Configuration) Unload() {
	if c.logFile != nil {
		if err := c.logFile.Close(); err != nil {
			log.Printf("Failed to close log file: %v", err)
		}
		c.logFile = nil
	}
}
