package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"dailynotesbot/internal/config"
	"dailynotesbot/internal/notes"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the structure of every daily note",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		entries, err := os.ReadDir(cfg.DailyDir())
		if err != nil {
			return fmt.Errorf("read daily dir: %w", err)
		}

		var names []string
		for _, e := range entries {
			if !e.IsDir() && strings.HasSuffix(strings.ToLower(e.Name()), ".md") {
				names = append(names, e.Name())
			}
		}
		sort.Strings(names)

		violations := 0
		for _, name := range names {
			data, err := os.ReadFile(filepath.Join(cfg.DailyDir(), name))
			if err != nil {
				fmt.Printf("✗ %s: %v\n", name, err)
				violations++
				continue
			}
			if err := notes.Validate(string(data)); err != nil {
				fmt.Printf("✗ %s: %v\n", name, err)
				violations++
				continue
			}
			fmt.Printf("✓ %s\n", name)
		}

		if violations > 0 {
			return fmt.Errorf("%d of %d notes failed validation", violations, len(names))
		}
		fmt.Printf("All %d notes valid\n", len(names))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
