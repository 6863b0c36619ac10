package cmd

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/lukman83/youtube-mcp/config"
	"github.com/lukman83/youtube-mcp/internal/dispatch"
	"github.com/lukman83/youtube-mcp/internal/httputil"
	"github.com/lukman83/youtube-mcp/internal/logger"
	"github.com/lukman83/youtube-mcp/internal/transcript"
	"github.com/lukman83/youtube-mcp/internal/transport"
	"github.com/lukman83/youtube-mcp/internal/youtube"
	mcpserver "github.com/lukman83/youtube-mcp/mcp"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:               "ytmcp",
	Short:             "YouTube MCP server & CLI",
	Long:              "Read-only YouTube lookups (videos, transcripts, channels, playlists) as MCP tools and CLI commands.",
	SilenceUsage:      true,
	PersistentPreRunE: initConfig,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	f := rootCmd.PersistentFlags()
	f.String("config", "", "Path to a TOML or YAML config file")
	f.String("format", "json", "Output format: json, table")
	f.String("delay-profile", "", "Caption scraping delay profile: none, normal, cautious")
	f.Bool("respect-robots", false, "Respect robots.txt when scraping caption pages")
	f.Bool("headless", false, "Fall back to a headless browser for transcripts")
	f.String("proxies", "", "Comma-separated proxy URLs (http, https, socks5)")
	f.String("log-level", "", "Log level: debug, info, warn, error")
	f.String("log-format", "", "Log format: text, json")
}

// initConfig layers defaults, the config file, the environment and finally
// any flags the user set explicitly.
func initConfig(cmd *cobra.Command, _ []string) error {
	cfg = config.DefaultConfig()
	flags := cmd.Flags()

	if path, _ := flags.GetString("config"); path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return err
		}
	}
	cfg.LoadFromEnv()

	if flags.Changed("delay-profile") {
		cfg.DelayProfile, _ = flags.GetString("delay-profile")
	}
	if flags.Changed("respect-robots") {
		cfg.RespectRobots, _ = flags.GetBool("respect-robots")
	}
	if flags.Changed("headless") {
		cfg.Headless, _ = flags.GetBool("headless")
	}
	if flags.Changed("proxies") {
		v, _ := flags.GetString("proxies")
		cfg.Proxies = splitComma(v)
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("log-format") {
		cfg.LogFormat, _ = flags.GetString("log-format")
	}

	logger.Setup(cfg.LogLevel, cfg.LogFormat)
	return nil
}

// app is everything a command needs: the services, their tool catalog and
// the dispatcher both the CLI and the MCP server call through.
type app struct {
	services   *youtube.Services
	tools      []mcpserver.Tool
	dispatcher *dispatch.Dispatcher
}

func newApp() (*app, error) {
	apiClient, scrapeClient, err := buildHTTPClients()
	if err != nil {
		return nil, err
	}

	client := youtube.NewClient(youtube.Config{
		APIKey:     cfg.YouTubeAPIKey,
		HTTPClient: apiClient,
		Endpoint:   cfg.YouTubeEndpoint,
	})
	fetcher := transcript.NewDefaultFetcher(scrapeClient, cfg.Headless)
	svcs := youtube.NewServices(client, fetcher, cfg.TranscriptLanguage)

	tools := mcpserver.Catalog(svcs)
	d := dispatch.New()
	mcpserver.RegisterTools(d, tools)
	return &app{services: svcs, tools: tools, dispatcher: d}, nil
}

// buildHTTPClients creates the two outbound pipelines: a plain one for the
// Data API and a browser-fingerprinted one for caption pages. They share the
// rate limiter and proxy pool.
func buildHTTPClients() (api, scrape *http.Client, err error) {
	var proxies *transport.ProxyRotator
	if len(cfg.Proxies) > 0 {
		proxies, err = transport.NewProxyRotator(cfg.Proxies)
		if err != nil {
			return nil, nil, fmt.Errorf("proxies: %w", err)
		}
	}

	var limiter *rate.Limiter
	if cfg.RatePerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSecond), max(cfg.RateBurst, 1))
	}

	base := httputil.NewBaseTransport()
	api = httputil.NewHTTPClient(&transport.Transport{
		Base:        base,
		Proxy:       proxies,
		RateLimiter: limiter,
	}, cfg.RequestTimeout)

	scrapeRT := &transport.Transport{
		Base:        base,
		Fingerprint: transport.NewFingerprintPool(),
		Proxy:       proxies,
		Delay:       transport.NewJitter(cfg.DelayProfile),
		RateLimiter: limiter,
	}
	if cfg.RespectRobots {
		scrapeRT.Robots = transport.NewRobotsChecker(httputil.NewHTTPClient(base, 10*time.Second))
	}
	scrape = httputil.NewHTTPClient(scrapeRT, cfg.RequestTimeout)
	return api, scrape, nil
}
