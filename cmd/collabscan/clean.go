package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"collabscan/internal/driver"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove the region cache",
	Long:  `Remove the on-disk region cache so every file is rescanned from scratch`,
	Args:  cobra.NoArgs,
	RunE:  runClean,
}

func runClean(_ *cobra.Command, _ []string) error {
	cache, err := driver.OpenDiskCache(cacheAppName)
	if err != nil {
		return fmt.Errorf("failed to open cache: %w", err)
	}
	if err := cache.DropAll(); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Println("cache already empty")
			return nil
		}
		return fmt.Errorf("failed to drop cache: %w", err)
	}
	fmt.Println("cache removed")
	return nil
}
