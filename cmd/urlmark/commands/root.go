// Package commands implements the CLI commands for urlmark.
package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/urlmark/urlmark/internal/logger"
	"github.com/urlmark/urlmark/pkg/extractor"
	"github.com/urlmark/urlmark/pkg/fetcher"
	"github.com/urlmark/urlmark/pkg/reader"
)

var rootCmd = &cobra.Command{
	Use:   "urlmark",
	Short: "Convert public URLs into clean Markdown",
	Long: `urlmark turns an arbitrary publicly reachable URL into clean Markdown.

It handles ordinary articles, Notion pages, Google Docs, and JavaScript-heavy
pages by trying retrieval strategies in order until one yields usable content:
a direct fetch, the public Notion rendering proxy, and a reader snapshot
service.

Examples:
  # Convert one URL and print the result as JSON
  urlmark convert https://example.com/post

  # Print only the Markdown body
  urlmark convert -o markdown https://example.com/post

  # Run the HTTP service
  urlmark serve --addr :8080`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default $HOME/.urlmark.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "only log errors")
	rootCmd.PersistentFlags().Bool("log-json", false, "log as JSON")
	rootCmd.PersistentFlags().Duration("timeout", 15*time.Second, "direct fetch timeout")
	rootCmd.PersistentFlags().Duration("proxy-timeout", 20*time.Second, "proxy and snapshot fetch timeout")
	rootCmd.PersistentFlags().Int("min-text", 140, "minimum visible text characters to accept a fetch")
	rootCmd.PersistentFlags().String("user-agent", "", "override the outbound user agent")
	rootCmd.PersistentFlags().String("notion-api", "", "override the Notion rendering proxy base URL")
	rootCmd.PersistentFlags().String("jina-base", "", "override the reader snapshot base URL")

	for _, flag := range []string{
		"debug", "quiet", "log-json", "timeout", "proxy-timeout",
		"min-text", "user-agent", "notion-api", "jina-base",
	} {
		_ = viper.BindPFlag(flag, rootCmd.PersistentFlags().Lookup(flag))
	}
}

func initConfig() {
	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".urlmark")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("URLMARK")
	viper.AutomaticEnv()

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()

	logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
		JSON:  viper.GetBool("log-json"),
	})
}

// readerConfig assembles the pipeline configuration from viper state.
func readerConfig() reader.Config {
	return reader.Config{
		Fetch: fetcher.Config{
			UserAgent:     viper.GetString("user-agent"),
			Timeout:       viper.GetDuration("timeout"),
			ProxyTimeout:  viper.GetDuration("proxy-timeout"),
			MinTextChars:  viper.GetInt("min-text"),
			NotionAPIBase: viper.GetString("notion-api"),
			JinaBase:      viper.GetString("jina-base"),
		},
		Extract: extractor.Config{
			CharThreshold: viper.GetInt("min-text"),
		},
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// logError prints an error message to stderr.
func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}
