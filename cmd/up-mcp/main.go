package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/banksia-labs/up-mcp/internal/common"
	"github.com/banksia-labs/up-mcp/internal/upbank"
)

// UpConfig holds Up API client settings. The token normally comes from the
// UP_TOKEN environment variable; the config file form exists for local runs.
type UpConfig struct {
	Token    string `toml:"token"`
	BaseURL  string `toml:"base_url"`
	Timeout  string `toml:"timeout"`
	PageSize int    `toml:"page_size"`
	MaxPages int    `toml:"max_pages"`
}

// ServerConfig holds MCP server settings.
type ServerConfig struct {
	Name string `toml:"name"`
	Port string `toml:"port"`
}

// Config holds all up-mcp configuration.
type Config struct {
	Server  ServerConfig         `toml:"server"`
	Up      UpConfig             `toml:"up"`
	Logging common.LoggingConfig `toml:"logging"`
}

// newDefaultConfig returns a Config with sensible defaults.
func newDefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Name: "Up-MCP",
			Port: "4270",
		},
		Up: UpConfig{
			BaseURL: upbank.DefaultBaseURL,
			Timeout: "30s",
		},
		Logging: common.LoggingConfig{
			Level:      "info",
			Outputs:    []string{"console", "file"},
			FilePath:   "logs/up-mcp.log",
			MaxSizeMB:  100,
			MaxBackups: 3,
		},
	}
}

// loadConfig loads configuration from a TOML file with defaults and env overrides.
func loadConfig(path string) Config {
	cfg := newDefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				log.Fatalf("Failed to read config file %s: %v", path, err)
			}
			// File not found, use defaults
		} else {
			if err := toml.Unmarshal(data, &cfg); err != nil {
				log.Fatalf("Failed to parse config file %s: %v", path, err)
			}
		}
	}

	// Apply environment overrides
	if token := os.Getenv("UP_TOKEN"); token != "" {
		cfg.Up.Token = token
	}
	if base := os.Getenv("UP_API_BASE_URL"); base != "" {
		cfg.Up.BaseURL = base
	}
	if timeout := os.Getenv("UP_HTTP_TIMEOUT"); timeout != "" {
		cfg.Up.Timeout = timeout
	}
	if port := os.Getenv("UP_MCP_PORT"); port != "" {
		cfg.Server.Port = port
	}
	if level := os.Getenv("UP_LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}

	return cfg
}

func main() {
	stdio := flag.Bool("stdio", false, "Use stdio transport (for desktop agent clients)")
	configFile := flag.String("config", "up-mcp.toml", "Path to config file")
	flag.Parse()

	// Pick up UP_TOKEN and friends from a local .env when present.
	_ = godotenv.Load()

	cfg := loadConfig(*configFile)
	if cfg.Up.Token == "" {
		log.Fatal("UP_TOKEN is required: set it in the environment, a .env file, or [up] token in the config file")
	}

	// Load version
	common.LoadVersionFromFile()

	// Setup logging
	logger := common.NewLoggerFromConfig(cfg.Logging)
	logger.Info().Str("version", common.GetFullVersion()).Msg("Starting " + cfg.Server.Name)

	client := upbank.NewClient(upbank.Config{
		BaseURL:  cfg.Up.BaseURL,
		Token:    cfg.Up.Token,
		Timeout:  common.ParseTimeout(cfg.Up.Timeout, 30*time.Second),
		PageSize: cfg.Up.PageSize,
		MaxPages: cfg.Up.MaxPages,
	}, logger)

	// Create MCP server with tool definitions
	mcpServer := server.NewMCPServer(
		cfg.Server.Name,
		common.GetVersion(),
		server.WithToolCapabilities(true),
	)

	// Register all MCP tools
	registerTools(mcpServer, client)

	if *stdio {
		// Stdio transport reads stdin and writes stdout
		if err := server.ServeStdio(mcpServer); err != nil {
			fmt.Fprintf(os.Stderr, "stdio server error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	port := cfg.Server.Port

	// Streamable HTTP transport on the configured port
	httpServer := server.NewStreamableHTTPServer(mcpServer,
		server.WithStateLess(true),
	)

	log.Printf("Starting MCP Streamable HTTP on :%s", port)
	fmt.Fprintf(os.Stderr, "Starting MCP Streamable HTTP on :%s\n", port)

	if err := httpServer.Start(":" + port); err != nil {
		fmt.Fprintf(os.Stderr, "http server error: %v\n", err)
		os.Exit(1)
	}
}
