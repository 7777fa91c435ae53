package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-pomodoro-timer/internal/storage"
)

var dataCmd = &cobra.Command{
	Use:   "data",
	Short: "Inspect the data file",
}

var dataPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the location of the data file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := storage.New(cfg.DataFile).Path()
		fmt.Fprintln(cmd.OutOrStdout(), path)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			fmt.Fprintln(os.Stderr, "The data file has not been created yet.")
		}
		return nil
	},
}

func init() {
	dataCmd.AddCommand(dataPathCmd)
}
