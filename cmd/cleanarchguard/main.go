// Command cleanarchguard checks that the migration module keeps its layers
// apart: domain imports nothing above it and infrastructure never leaks into
// domain. Run it from the repository root.
package main

import (
	"flag"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-faster/errors"
	"github.com/roblaszczak/go-cleanarch/cleanarch"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/iota-uz/legacy-migrate/pkg/logging"
)

type config struct {
	Root              string   `yaml:"root"`
	IgnoreTests       bool     `yaml:"ignore_tests"`
	IgnorePackages    []string `yaml:"ignore_packages"`
	SharedModules     []string `yaml:"shared_modules"`
	AllowedViolations []string `yaml:"allow_violations"`
	Layers            layers   `yaml:"layers"`
}

type layers struct {
	Domain         []string `yaml:"domain"`
	Application    []string `yaml:"application"`
	Interfaces     []string `yaml:"interfaces"`
	Infrastructure []string `yaml:"infrastructure"`
}

var defaultLayers = layers{
	Domain:         []string{"domain"},
	Interfaces:     []string{"cmd"},
	Infrastructure: []string{"infrastructure"},
}

func main() {
	configPath := flag.String("config", ".gocleanarch.yml", "config file")
	debug := flag.Bool("debug", false, "print go-cleanarch debug output")
	flag.Parse()

	log := logging.ConsoleLogger(logrus.InfoLevel)
	if err := run(*configPath, *debug, log); err != nil {
		log.Error(err)
		os.Exit(1)
	}
	log.Info("layer check passed")
}

func run(configPath string, debug bool, log logrus.FieldLogger) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return errors.Wrap(err, "resolve root")
	}
	if debug {
		cleanarch.Log.SetOutput(os.Stderr)
	}

	ok, found, err := cleanarch.NewValidator(aliases(cfg.Layers)).Validate(root, cfg.IgnoreTests, cfg.IgnorePackages)
	if err != nil {
		return errors.Wrap(err, "go-cleanarch")
	}
	violations := filterViolations(found, cfg)
	if ok || len(violations) == 0 {
		return nil
	}
	for _, v := range violations {
		log.Warn(v.Error())
	}
	return errors.Errorf("%d layer violation(s)", len(violations))
}

// loadConfig reads path; a missing file yields the defaults rooted at modules/.
func loadConfig(path string) (*config, error) {
	cfg := &config{Root: "modules", IgnoreTests: true}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "decode %s", path)
	}
	if cfg.Root == "" {
		cfg.Root = "modules"
	}
	return cfg, nil
}

func aliases(l layers) map[string]cleanarch.Layer {
	out := map[string]cleanarch.Layer{}
	add := func(names, defaults []string, layer cleanarch.Layer) {
		if len(names) == 0 {
			names = defaults
		}
		for _, n := range names {
			if n = strings.TrimSpace(n); n != "" {
				out[n] = layer
			}
		}
	}
	add(l.Domain, defaultLayers.Domain, cleanarch.LayerDomain)
	add(l.Application, defaultLayers.Application, cleanarch.LayerApplication)
	add(l.Interfaces, defaultLayers.Interfaces, cleanarch.LayerInterfaces)
	add(l.Infrastructure, defaultLayers.Infrastructure, cleanarch.LayerInfrastructure)
	return out
}

var crossModulePattern = regexp.MustCompile(`between ([\w-]+) and ([\w-]+) modules`)

type violation interface{ Error() string }

func filterViolations[V violation](found []V, cfg *config) []V {
	shared := map[string]bool{}
	for _, m := range cfg.SharedModules {
		if m = strings.TrimSpace(m); m != "" {
			shared[m] = true
		}
	}
	var out []V
	for _, v := range found {
		msg := v.Error()
		if m := crossModulePattern.FindStringSubmatch(msg); len(m) == 3 && (shared[m[1]] || shared[m[2]]) {
			continue
		}
		if allowed(msg, cfg.AllowedViolations) {
			continue
		}
		out = append(out, v)
	}
	return out
}

func allowed(msg string, patterns []string) bool {
	for _, p := range patterns {
		if p != "" && strings.Contains(msg, p) {
			return true
		}
	}
	return false
}
