package config

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/thorn-jmh/errorst"

	"github.com/thorn-jmh/reqgen/pkg/requestgen"
	"github.com/thorn-jmh/reqgen/pkg/schemas"
)

// EnvPrefix prefixes every environment variable read, e.g. REQGEN_SOURCE_DSN.
const EnvPrefix = "REQGEN"

// DefaultFile is looked up in the working directory when no file is given.
const DefaultFile = "reqgen"

var (
	ErrReadConfig    = errorst.NewError("failed to read config")
	ErrInvalidConfig = errorst.NewError("invalid config")
)

type Config struct {
	Log    Log               `mapstructure:"log"`
	Source Source            `mapstructure:"source"`
	Output Output            `mapstructure:"output"`
	Locale string            `mapstructure:"locale"`
	Skip   []string          `mapstructure:"skip"`   // columns never validated, on top of the defaults
	Tables map[string]string `mapstructure:"tables"` // model -> table overrides
}

type Log struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // text or json
}

type Source struct {
	Type   string `mapstructure:"type"` // file, mysql or postgres
	Path   string `mapstructure:"path"`
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
	Schema string `mapstructure:"schema"`
}

type Output struct {
	Dir       string `mapstructure:"dir"`
	Emitter   string `mapstructure:"emitter"`
	Package   string `mapstructure:"package"`
	Namespace string `mapstructure:"namespace"`
}

var defaults = map[string]any{
	"log.level":        "info",
	"log.format":       "text",
	"source.type":      string(schemas.SourceTypeFile),
	"source.path":      "schema.yaml",
	"source.driver":    "",
	"source.dsn":       "",
	"source.schema":    "",
	"output.dir":       "./requests",
	"output.emitter":   "go",
	"output.package":   "requests",
	"output.namespace": requestgen.DefaultNamespace,
	"locale":           "en",
	"skip":             []string{},
	"tables":           map[string]string{},
}

// flagKeys maps the flags of RegisterFlags to their config keys.
var flagKeys = map[string]string{
	"output":     "output.dir",
	"package":    "output.package",
	"emitter":    "output.emitter",
	"namespace":  "output.namespace",
	"locale":     "locale",
	"source":     "source.type",
	"schema":     "source.path",
	"driver":     "source.driver",
	"dsn":        "source.dsn",
	"db-schema":  "source.schema",
	"table":      "tables",
	"skip":       "skip",
	"log-level":  "log.level",
	"log-format": "log.format",
}

// RegisterFlags defines the flags Load understands on fs. Flag defaults
// are empty: an unset flag never hides a value from the file or the
// environment.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.StringP("output", "o", "", "output directory (default ./requests)")
	fs.StringP("package", "p", "", "package of generated Go files (default requests)")
	fs.StringP("emitter", "e", "", "target framework: "+strings.Join(requestgen.EmitterNames(), ", ")+" (default go)")
	fs.String("namespace", "", `namespace of generated PHP classes (default App\Http\Requests)`)
	fs.String("locale", "", "language of validation messages: en, pt-BR (default en)")
	fs.String("source", "", "schema source: file, mysql, postgres (default file)")
	fs.String("schema", "", "schema document of the file source (default schema.yaml)")
	fs.String("driver", "", "database/sql driver of the database source")
	fs.String("dsn", "", "data source name of the database source")
	fs.String("db-schema", "", "database schema holding the tables (default current)")
	fs.StringToString("table", nil, "table of a model, as Model=table")
	fs.StringSlice("skip", nil, "extra columns never validated")
	fs.String("log-level", "", "debug, info, warn or error (default info)")
	fs.String("log-format", "", "text or json (default text)")
}

// Load reads the config file, REQGEN_* environment variables and the
// changed flags of fs, in increasing precedence. An empty file means
// reqgen.{yaml,yml,json,toml} in the working directory, if any. String
// values may reference ${VAR} or ${VAR:-default}.
func Load(file string, fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, errorst.Wrap(ErrReadConfig, "bind flag %s: %v", name, err)
				}
			}
		}
	}

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, errorst.Wrap(ErrReadConfig, "%s: %v", file, err)
		}
	} else {
		v.SetConfigName(DefaultFile)
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, errorst.Wrap(ErrReadConfig, "%v", err)
			}
		}
	}

	for _, key := range v.AllKeys() {
		if s, ok := v.Get(key).(string); ok && strings.Contains(s, "${") {
			v.Set(key, expandEnvWithDefaults(s))
		}
	}

	cfg := new(Config)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errorst.Wrap(ErrReadConfig, "unmarshal: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if file := v.ConfigFileUsed(); file != "" {
		slog.Debug("config loaded", "file", file)
	}
	return cfg, nil
}

var envPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandEnvWithDefaults replaces ${VAR} and ${VAR:-default}. An unset or
// empty VAR takes the default, or the empty string.
func expandEnvWithDefaults(s string) string {
	return envPattern.ReplaceAllStringFunc(s, func(match string) string {
		m := envPattern.FindStringSubmatch(match)
		if value := os.Getenv(m[1]); value != "" {
			return value
		}
		return m[2]
	})
}

// Validate checks the values Load cannot default.
func (c *Config) Validate() error {
	switch schemas.SourceType(c.Source.Type) {
	case schemas.SourceTypeFile:
		if c.Source.Path == "" {
			return errorst.Wrap(ErrInvalidConfig, "file source without a schema path")
		}
	case schemas.SourceTypeMySQL, schemas.SourceTypePostgres:
		if c.Source.DSN == "" {
			return errorst.Wrap(ErrInvalidConfig, "%s source without a dsn", c.Source.Type)
		}
	default:
		return errorst.Wrap(ErrInvalidConfig, "unknown source type %q", c.Source.Type)
	}

	if c.Output.Dir == "" {
		return errorst.Wrap(ErrInvalidConfig, "empty output directory")
	}
	if _, err := c.Log.level(); err != nil {
		return errorst.Wrap(ErrInvalidConfig, "log level %q", c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		return errorst.Wrap(ErrInvalidConfig, "log format %q", c.Log.Format)
	}
	return nil
}

// SchemaSource returns the schema source the config describes.
func (c *Config) SchemaSource() schemas.Source {
	return schemas.Source{
		Type:   schemas.SourceType(c.Source.Type),
		Path:   c.Source.Path,
		Driver: c.Source.Driver,
		DSN:    c.Source.DSN,
		Schema: c.Source.Schema,
	}
}

// EmitterOptions returns the options of the configured emitter.
func (c *Config) EmitterOptions() requestgen.EmitterOptions {
	return requestgen.EmitterOptions{
		Package:   c.Output.Package,
		Namespace: c.Output.Namespace,
	}
}

func (l Log) level() (slog.Level, error) {
	var level slog.Level
	if l.Level == "" {
		return slog.LevelInfo, nil
	}
	err := level.UnmarshalText([]byte(l.Level))
	return level, err
}

// Logger returns a logger writing to w in the configured format and level.
func (l Log) Logger(w io.Writer) *slog.Logger {
	level, err := l.level()
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	if strings.EqualFold(l.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
