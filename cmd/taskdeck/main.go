package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/taskdeck/taskdeck/cmd/taskdeck/commands"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "taskdeck",
		Short: "Task tracking client",
		Long:  "CLI client for the taskdeck task tracker: create, filter, complete, and archive tasks",
	}

	rootCmd.PersistentFlags().String("config", "", "path to YAML config file")

	rootCmd.AddCommand(commands.NewListCmd())
	rootCmd.AddCommand(commands.NewAddCmd())
	rootCmd.AddCommand(commands.NewDoneCmd())
	rootCmd.AddCommand(commands.NewEditCmd())
	rootCmd.AddCommand(commands.NewRemoveCmd())
	rootCmd.AddCommand(commands.NewArchiveCmd())
	rootCmd.AddCommand(commands.NewTagsCmd())
	rootCmd.AddCommand(commands.NewFilterCmd())
	rootCmd.AddCommand(commands.NewRetryCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
