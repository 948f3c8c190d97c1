// Package config provides Viper-based configuration loading for the game client.
package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/cory-johannsen/otsession/internal/game/feature"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// GameConfig holds session settings.
type GameConfig struct {
	// ProtocolVersion is the game protocol version; 0 leaves it unset.
	ProtocolVersion int `mapstructure:"protocol_version"`
	// BotProtection rejects game actions triggered by scripts outside input handling.
	BotProtection bool `mapstructure:"bot_protection"`
	// CharactersFile is the YAML character list.
	CharactersFile string `mapstructure:"characters_file"`
	// Character selects the entry of the character list to log in with.
	Character string `mapstructure:"character"`
}

// AccountConfig holds login credentials.
type AccountConfig struct {
	Name     string `mapstructure:"name"`
	Password string `mapstructure:"password"`
}

// BridgeConfig holds the connection settings of the protocol gateway.
type BridgeConfig struct {
	// Transport is "grpc" or "websocket".
	Transport string `mapstructure:"transport"`
	Host      string `mapstructure:"host"`
	Port      int    `mapstructure:"port"`
	// Path is the WebSocket endpoint path.
	Path        string        `mapstructure:"path"`
	DialTimeout time.Duration `mapstructure:"dial_timeout"`
}

// Addr returns the "host:port" gateway address.
//
// Postcondition: Returns a non-empty string in "host:port" format.
func (b BridgeConfig) Addr() string {
	return net.JoinHostPort(b.Host, strconv.Itoa(b.Port))
}

// URL returns the WebSocket URL of the gateway.
func (b BridgeConfig) URL() string {
	u := url.URL{Scheme: "ws", Host: b.Addr(), Path: b.Path}
	return u.String()
}

// ScriptingConfig holds Lua scripting settings.
type ScriptingConfig struct {
	// Dir holds the *.lua scripts loaded at startup. Empty disables scripting.
	Dir string `mapstructure:"dir"`
	// InstructionLimit bounds the VM instructions a single hook call may execute.
	InstructionLimit int `mapstructure:"instruction_limit"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging   LoggingConfig   `mapstructure:"logging"`
	Game      GameConfig      `mapstructure:"game"`
	Account   AccountConfig   `mapstructure:"account"`
	Bridge    BridgeConfig    `mapstructure:"bridge"`
	Scripting ScriptingConfig `mapstructure:"scripting"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateGame(c.Game); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateBridge(c.Bridge); err != nil {
		errs = append(errs, err.Error())
	}
	if c.Scripting.InstructionLimit < 0 {
		errs = append(errs, fmt.Sprintf("scripting.instruction_limit must be >= 0, got %d", c.Scripting.InstructionLimit))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateGame(g GameConfig) error {
	if err := feature.ValidateVersion(g.ProtocolVersion); err != nil {
		return fmt.Errorf("game.protocol_version: %w", err)
	}
	return nil
}

func validateBridge(b BridgeConfig) error {
	var errs []string
	validTransports := map[string]bool{"grpc": true, "websocket": true}
	if !validTransports[b.Transport] {
		errs = append(errs, fmt.Sprintf("bridge.transport must be one of [grpc, websocket], got %q", b.Transport))
	}
	if b.Host == "" {
		errs = append(errs, "bridge.host must not be empty")
	}
	if b.Port < 1 || b.Port > 65535 {
		errs = append(errs, fmt.Sprintf("bridge.port must be 1-65535, got %d", b.Port))
	}
	if b.DialTimeout < 0 {
		errs = append(errs, "bridge.dial_timeout must not be negative")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with OTS_ prefix
	v.SetEnvPrefix("OTS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("game.protocol_version", 860)
	v.SetDefault("game.bot_protection", true)
	v.SetDefault("game.characters_file", "content/characters.yaml")

	v.SetDefault("bridge.transport", "grpc")
	v.SetDefault("bridge.host", "127.0.0.1")
	v.SetDefault("bridge.port", 7172)
	v.SetDefault("bridge.path", "/session")
	v.SetDefault("bridge.dial_timeout", "5s")

	v.SetDefault("scripting.instruction_limit", 100000)
}
