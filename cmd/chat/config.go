package main

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// duration lets TOML carry values like "90s" or "2m".
type duration time.Duration

func (d *duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = duration(parsed)
	return nil
}

// MCPServer describes one MCP server to attach at startup. Command servers
// run over stdio; URL servers connect over SSE.
type MCPServer struct {
	Name    string   `toml:"name"`
	Command string   `toml:"command"`
	Args    []string `toml:"args"`
	URL     string   `toml:"url"`
	Env     []string `toml:"env"`
}

// Config holds the chat CLI configuration.
type Config struct {
	BaseURL       string      `toml:"base_url"`
	Model         string      `toml:"model"`
	Effort        string      `toml:"effort"`
	MaxIterations int         `toml:"max_iterations"`
	IdleTimeout   duration    `toml:"idle_timeout"`
	MCPServers    []MCPServer `toml:"mcp_servers"`

	// APIKey comes from the environment only, never from the file.
	APIKey string `toml:"-"`
}

// LoadConfig reads the TOML file at path when it exists and overlays
// environment variables. A missing file is not an error; missing base_url is.
func LoadConfig(path string) (*Config, error) {
	godotenv.Load()

	cfg := &Config{
		Model:         "gpt-4o-mini",
		MaxIterations: 10,
		IdleTimeout:   duration(90 * time.Second),
	}

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	if v := os.Getenv("ASSISTANT_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("ASSISTANT_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("ASSISTANT_EFFORT"); v != "" {
		cfg.Effort = v
	}
	cfg.APIKey = os.Getenv("ASSISTANT_API_KEY")
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("OPENAI_API_KEY")
	}

	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("no base URL configured: set base_url in %s or ASSISTANT_BASE_URL", path)
	}
	return cfg, nil
}
