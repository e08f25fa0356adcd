package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"dailynotesbot/internal/config"
	"dailynotesbot/internal/index"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Rebuild the sqlite index from the vault",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		db, err := index.Open(cfg.IndexPath)
		if err != nil {
			return err
		}
		defer db.Close()

		idx := index.NewIndexer(db, logger)
		if err := idx.Sync(cfg.DailyDir()); err != nil {
			return err
		}

		s, err := db.Stats()
		if err != nil {
			return err
		}
		fmt.Printf("Indexed %d notes: %d tasks (%d done), %d rated\n",
			s.Notes, s.TasksTotal, s.TasksDone, s.Rated)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
}
