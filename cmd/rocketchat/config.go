package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

const passwordEnv = "ROCKETCHAT_PASSWORD"

// config is the merged view of the config file, the environment and the
// command line. Later sources win.
type config struct {
	Server    string        `yaml:"server"`
	Username  string        `yaml:"username"`
	Password  string        `yaml:"password"`
	AuthToken string        `yaml:"auth_token"`
	UserID    string        `yaml:"user_id"`
	Insecure  bool          `yaml:"insecure"`
	CAFile    string        `yaml:"ca_file"`
	Timeout   time.Duration `yaml:"timeout"`
	Verbose   bool          `yaml:"verbose"`
}

func defaultConfig() *config {
	return &config{Timeout: 30 * time.Second}
}

// loadConfig reads the YAML file at path on top of the defaults. An empty
// path yields the defaults. Unknown keys are rejected.
func loadConfig(path string) (*config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return cfg, nil
}

// cliFlags holds the raw flag values. Only flags that were set on the
// command line override the file.
type cliFlags struct {
	configPath string
	server     string
	username   string
	authToken  string
	userID     string
	insecure   bool
	caFile     string
	timeout    time.Duration
	verbose    bool
}

func (f *cliFlags) register(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&f.configPath, "config", "", "path to a YAML config file")
	flagSet.StringVar(&f.server, "server", "", "Rocket.Chat server URL, e.g. https://chat.example.com")
	flagSet.StringVar(&f.username, "username", "", "login user name (password from "+passwordEnv+" or the config file)")
	flagSet.StringVar(&f.authToken, "auth-token", "", "personal access token, used instead of a password login")
	flagSet.StringVar(&f.userID, "user-id", "", "user ID belonging to --auth-token")
	flagSet.BoolVar(&f.insecure, "insecure", false, "skip TLS certificate verification")
	flagSet.StringVar(&f.caFile, "ca-file", "", "PEM file with additional root certificates")
	flagSet.DurationVar(&f.timeout, "timeout", 30*time.Second, "timeout of a single HTTP request")
	flagSet.BoolVarP(&f.verbose, "verbose", "v", false, "log requests at debug level to stderr")
}

// apply overrides cfg with the flags that were set and with the password
// from the environment.
func (f *cliFlags) apply(cfg *config, flagSet *pflag.FlagSet, getenv func(string) string) {
	if flagSet.Changed("server") {
		cfg.Server = f.server
	}

	if flagSet.Changed("username") {
		cfg.Username = f.username
	}

	if flagSet.Changed("auth-token") {
		cfg.AuthToken = f.authToken
	}

	if flagSet.Changed("user-id") {
		cfg.UserID = f.userID
	}

	if flagSet.Changed("insecure") {
		cfg.Insecure = f.insecure
	}

	if flagSet.Changed("ca-file") {
		cfg.CAFile = f.caFile
	}

	if flagSet.Changed("timeout") {
		cfg.Timeout = f.timeout
	}

	if flagSet.Changed("verbose") {
		cfg.Verbose = f.verbose
	}

	if password := getenv(passwordEnv); password != "" {
		cfg.Password = password
	}
}

func (c *config) validate() error {
	if c.Server == "" {
		return errors.New("server URL must be set with --server or in the config file")
	}

	if c.AuthToken != "" || c.UserID != "" {
		if c.AuthToken == "" || c.UserID == "" {
			return errors.New("--auth-token and --user-id must be used together")
		}
		return nil
	}

	if c.Username == "" || c.Password == "" {
		return fmt.Errorf("credentials missing: set --username and %s, or --auth-token and --user-id", passwordEnv)
	}

	return nil
}
