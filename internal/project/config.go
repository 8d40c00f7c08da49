package project

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Check    CheckConfig    `toml:"check" yaml:"check"`
	Frontend FrontendConfig `toml:"frontend" yaml:"frontend"`
	Output   OutputConfig   `toml:"output" yaml:"output"`
}

type CheckConfig struct {
	AllowExpectError bool `toml:"allow_expect_error" yaml:"allow_expect_error"`
	StrictTypeLines  bool `toml:"strict_type_lines" yaml:"strict_type_lines"`
}

type FrontendConfig struct {
	Loader      string   `toml:"loader" yaml:"loader"`
	PackageMode string   `toml:"package_mode" yaml:"package_mode"`
	Tags        []string `toml:"tags" yaml:"tags"`
	GoVersion   string   `toml:"go_version" yaml:"go_version"`
}

type OutputConfig struct {
	Format  string `toml:"format" yaml:"format"`
	NoLines bool   `toml:"no_lines" yaml:"no_lines"`
	Verbose bool   `toml:"verbose" yaml:"verbose"`
}

// Manifest is a loaded configuration file.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Default returns the configuration used when no file is found.
func Default() Config {
	return Config{
		Frontend: FrontendConfig{Loader: "source", PackageMode: "file"},
		Output:   OutputConfig{Format: "pretty"},
	}
}

// Load finds and loads the configuration for startDir. ok is false when no
// file exists; the returned manifest then carries Default().
func Load(startDir string) (*Manifest, bool, error) {
	path, ok, err := FindConfig(startDir)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return &Manifest{Config: Default()}, false, nil
	}
	m, err := LoadManifest(path)
	if err != nil {
		return nil, true, err
	}
	return m, true, nil
}

// LoadManifest loads an explicit configuration file.
func LoadManifest(path string) (*Manifest, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %q: %w", path, err)
	}
	return &Manifest{Path: abs, Root: filepath.Dir(abs), Config: cfg}, nil
}

// LoadConfig decodes path as YAML when it has a .yaml/.yml extension and as
// TOML otherwise. Keys left out keep their Default() values.
func LoadConfig(path string) (Config, error) {
	// #nosec G304 -- path is provided by the caller
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		cfg, err = decodeYAML(data)
		if err != nil {
			return Config{}, fmt.Errorf("%s: failed to parse YAML: %w", path, err)
		}
	default:
		cfg, err = decodeTOML(data)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", path, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func decodeTOML(data []byte) (Config, error) {
	cfg := Default()
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse TOML: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return Config{}, fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	if meta.IsDefined("frontend", "go_version") && strings.TrimSpace(cfg.Frontend.GoVersion) == "" {
		return Config{}, errors.New("empty [frontend].go_version")
	}
	if meta.IsDefined("frontend", "loader") && strings.TrimSpace(cfg.Frontend.Loader) == "" {
		return Config{}, errors.New("empty [frontend].loader")
	}
	return cfg, nil
}

func decodeYAML(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks enumerated fields.
func (c Config) Validate() error {
	switch c.Frontend.Loader {
	case "source", "packages":
	default:
		return fmt.Errorf("[frontend].loader must be \"source\" or \"packages\", got %q", c.Frontend.Loader)
	}
	switch c.Frontend.PackageMode {
	case "file", "package":
	default:
		return fmt.Errorf("[frontend].package_mode must be \"file\" or \"package\", got %q", c.Frontend.PackageMode)
	}
	switch c.Output.Format {
	case "pretty", "json":
	default:
		return fmt.Errorf("[output].format must be \"pretty\" or \"json\", got %q", c.Output.Format)
	}
	for _, tag := range c.Frontend.Tags {
		if strings.TrimSpace(tag) == "" || strings.ContainsAny(tag, " ,") {
			return fmt.Errorf("[frontend].tags: invalid tag %q", tag)
		}
	}
	return nil
}

// DefaultTOML is the file `typings init` writes.
const DefaultTOML = `# typings configuration

[check]
# Allow // $ExpectError directives.
allow_expect_error = false
# Report diagnostics on $ExpectType lines as unexpected errors.
strict_type_lines = false

[frontend]
# "source" parses and type-checks in-process; "packages" asks the go command.
loader = "source"
# "file" checks the file alone; "package" includes its sibling files.
package_mode = "file"
# Build tags, e.g. ["integration"].
# tags = []

[output]
format = "pretty"
no_lines = false
verbose = false
`
