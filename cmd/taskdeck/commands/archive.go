package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/taskdeck/taskdeck/internal/logger"
)

// NewArchiveCmd creates the archive command
func NewArchiveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Show completed tasks grouped by day",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, log, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync(log) }()

			if _, err := sess.LoadArchive(context.Background()); err != nil {
				return err
			}

			groups := sess.FilteredGroups()
			if len(groups) == 0 {
				fmt.Println("No archived tasks")
				return nil
			}

			for _, group := range groups {
				fmt.Printf("%s (%d)\n", group.Date, group.Count)
				for _, task := range group.Tasks {
					fmt.Printf("  %s  %s\n", task.ID, task.Title)
				}
			}

			totals := sess.ArchiveTotals()
			if totals.IsFiltering() {
				fmt.Printf("Showing %d of %d tasks\n", totals.FilteredTotal, totals.Total)
			}
			return nil
		},
	}
	return cmd
}

// NewTagsCmd creates the tags command
func NewTagsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "List tags available in the archive",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, log, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync(log) }()

			if _, err := sess.LoadArchive(context.Background()); err != nil {
				return err
			}

			tags := sess.AvailableTags()
			if len(tags) == 0 {
				fmt.Println("No tags")
				return nil
			}
			for _, tag := range tags {
				fmt.Println(tag)
			}
			return nil
		},
	}
	return cmd
}
