package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/taskdeck/taskdeck/internal/filter"
	"github.com/taskdeck/taskdeck/internal/logger"
	"github.com/taskdeck/taskdeck/internal/models"
)

// NewFilterCmd creates the filter command group
func NewFilterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Manage the persisted task filter",
	}
	cmd.AddCommand(newFilterSetCmd())
	cmd.AddCommand(newFilterClearCmd())
	cmd.AddCommand(newFilterShowCmd())
	return cmd
}

func newFilterSetCmd() *cobra.Command {
	var status string
	var priority string
	var tags []string
	var search string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Replace the active filter",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, log, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync(log) }()

			f := filter.Filter{
				Status: filter.Status(status),
				Tags:   tags,
				Search: search,
			}
			if priority != "" {
				p := models.Priority(priority)
				f.Priority = &p
			}

			if err := sess.SetFilter(context.Background(), f); err != nil {
				return err
			}
			fmt.Println("Filter saved")
			return nil
		},
	}

	cmd.Flags().StringVarP(&status, "status", "s", "", "status (all, pending, completed)")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "priority (low, medium, high)")
	cmd.Flags().StringSliceVarP(&tags, "tag", "t", nil, "tag (repeatable)")
	cmd.Flags().StringVarP(&search, "search", "q", "", "free-text search")
	return cmd
}

func newFilterClearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Reset the filter to show everything",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, log, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync(log) }()

			if err := sess.ClearFilter(context.Background()); err != nil {
				return err
			}
			fmt.Println("Filter cleared")
			return nil
		},
	}
	return cmd
}

func newFilterShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the active filter",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, log, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync(log) }()

			f := sess.Filter()
			if !f.IsActive() {
				fmt.Println("No active filter")
				return nil
			}
			if f.Status != "" && f.Status != filter.StatusAll {
				fmt.Printf("Status:   %s\n", f.Status)
			}
			if f.Priority != nil {
				fmt.Printf("Priority: %s\n", *f.Priority)
			}
			if len(f.Tags) > 0 {
				fmt.Printf("Tags:     %s\n", strings.Join(f.Tags, ", "))
			}
			if strings.TrimSpace(f.Search) != "" {
				fmt.Printf("Search:   %s\n", f.Search)
			}
			return nil
		},
	}
	return cmd
}
