package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the configuration shared by the command-line tool and the server.
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Import ImportConfig `mapstructure:"import"`
	Export ExportConfig `mapstructure:"export"`
	CSV    CSVConfig    `mapstructure:"csv"`
	Log    LogConfig    `mapstructure:"log"`
}

type ServerConfig struct {
	Port        int      `mapstructure:"port"`
	CORSOrigins []string `mapstructure:"cors_origins"`
}

// ImportConfig names the data sources of an import session. Empty values skip the source.
type ImportConfig struct {
	CalendariumURL string        `mapstructure:"calendarium_url"`
	HTTPTimeout    time.Duration `mapstructure:"http_timeout"`
	EnrollmentDir  string        `mapstructure:"enrollment_dir"`
	EnrollmentCSV  string        `mapstructure:"enrollment_csv"`
	RoomsCSV       string        `mapstructure:"rooms_csv"`
}

// ExportConfig names the output files. Empty values skip the export.
type ExportConfig struct {
	TimetableCSV  string `mapstructure:"timetable_csv"`
	EnrollmentCSV string `mapstructure:"enrollment_csv"`
	Workbook      string `mapstructure:"workbook"`
}

type CSVConfig struct {
	Delimiter string `mapstructure:"delimiter"`
}

// Comma returns the delimiter as a rune, ';' when unset.
func (c CSVConfig) Comma() rune {
	for _, r := range c.Delimiter {
		return r
	}
	return ';'
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

const DefaultCalendariumURL = "https://raw.githubusercontent.com/cesium/calendarium/refs/heads/master/data/shifts.json"

// Load reads the configuration. Environment variables (TIMETABLE_*) override
// the file, which overrides the defaults. An empty path looks for
// config.yaml in ./config and the working directory; a missing file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors_origins", []string{"*"})

	v.SetDefault("import.calendarium_url", DefaultCalendariumURL)
	v.SetDefault("import.http_timeout", "30s")
	v.SetDefault("import.enrollment_dir", "")
	v.SetDefault("import.enrollment_csv", "")
	v.SetDefault("import.rooms_csv", "")

	v.SetDefault("export.timetable_csv", "timetable.csv")
	v.SetDefault("export.enrollment_csv", "")
	v.SetDefault("export.workbook", "")

	v.SetDefault("csv.delimiter", ";")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("TIMETABLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d", c.Server.Port)
	}
	if c.Import.HTTPTimeout < 0 {
		return fmt.Errorf("invalid import.http_timeout %v", c.Import.HTTPTimeout)
	}
	if len([]rune(c.CSV.Delimiter)) > 1 {
		return fmt.Errorf("csv.delimiter must be a single character, got %q", c.CSV.Delimiter)
	}
	return nil
}
