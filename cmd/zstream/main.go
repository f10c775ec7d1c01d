package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/neekrasov/zstream/internal/application"
	"github.com/neekrasov/zstream/pkg/config"
	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	buildTime = "unknown"
	gitHash   = "unset"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "zstream",
		Short: "Streaming file compression tool",
	}

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("zstream version %s\nbuild time: %s\nhash: %s\n",
				version, buildTime, gitHash)
		},
	})

	rootCmd.AddCommand(makeRunCmd("compress", "Compress files", application.ModeCompress))
	rootCmd.AddCommand(makeRunCmd("decompress", "Decompress files", application.ModeDecompress))

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func makeRunCmd(use, short string, mode application.Mode) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use + " [files...]",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			configPath, _ := cmd.Flags().GetString("config")
			format, _ := cmd.Flags().GetString("format")
			suffix, _ := cmd.Flags().GetString("suffix")

			ctx, cancel := signal.NotifyContext(context.Background(),
				syscall.SIGINT, syscall.SIGTERM, syscall.SIGABRT)
			defer cancel()

			cfg, err := config.GetConfig(configPath)
			if err != nil {
				log.Fatalf("failed to get config: %s", err)
			}

			if format != "" {
				cfg.Compression.Format = format
			}
			if cmd.Flags().Changed("level") {
				cfg.Compression.Level, _ = cmd.Flags().GetInt("level")
			}

			if err := application.New(&cfg).Run(ctx, mode, args, suffix); err != nil {
				log.Fatalf("application error: %s", err)
			}
		},
	}

	cmd.Flags().StringP("config", "c", "config.yml", "Path to config file")
	cmd.Flags().StringP("format", "f", "", "Compression format (flate, gzip, zstd, bzip2)")
	cmd.Flags().IntP("level", "l", 0, "Compression level")
	cmd.Flags().StringP("suffix", "s", "", "Compressed file suffix")

	return cmd
}
