package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/panbanda/combfino/internal/cache"
	"github.com/panbanda/combfino/pkg/config"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the persistent feature cache",
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the number of entries in the feature cache",
	RunE:  runCacheStats,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the feature cache file from disk",
	RunE:  runCacheClear,
}

func init() {
	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}

func cachePath(cmd *cobra.Command) (string, error) {
	var opts []config.LoadOption
	if cfgFile != "" {
		opts = append(opts, config.WithPath(cfgFile))
	}
	result, err := config.LoadConfig(opts...)
	if err != nil {
		return "", err
	}
	return result.Config.Cache.Path, nil
}

func runCacheStats(cmd *cobra.Command, args []string) error {
	path, err := cachePath(cmd)
	if err != nil {
		return err
	}
	store := cache.Load(path)
	color.Cyan("Cache file: %s", path)
	color.Cyan("Entries: %d", store.Len())
	return nil
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	path, err := cachePath(cmd)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			color.Yellow("No cache file at %s", path)
			return nil
		}
		return err
	}
	color.Green("Removed cache file %s", path)
	return nil
}
