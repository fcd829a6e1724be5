package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/taskdeck/taskdeck/internal/logger"
	"github.com/taskdeck/taskdeck/internal/models"
)

// NewListCmd creates the list command
func NewListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks under the active filter",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, log, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync(log) }()

			if err := sess.Refresh(context.Background(), false); err != nil {
				return err
			}

			tasks := sess.Tasks()
			if len(tasks) == 0 {
				fmt.Println("No tasks")
				return nil
			}
			for _, entry := range tasks {
				fmt.Println(formatTask(entry))
			}
			return nil
		},
	}
	return cmd
}

// NewAddCmd creates the add command
func NewAddCmd() *cobra.Command {
	var priority string
	var tags []string
	var memo string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, log, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync(log) }()

			input := models.TaskInput{
				Title: args[0],
				Tags:  tags,
				Memo:  memo,
			}
			if priority != "" {
				input.Priority = models.Priority(priority)
			}

			task, err := sess.Create(context.Background(), input)
			if err != nil {
				return err
			}
			fmt.Printf("Created %s: %s\n", task.ID, task.Title)
			return nil
		},
	}

	cmd.Flags().StringVarP(&priority, "priority", "p", "", "priority (low, medium, high)")
	cmd.Flags().StringSliceVarP(&tags, "tag", "t", nil, "tag (repeatable)")
	cmd.Flags().StringVarP(&memo, "memo", "m", "", "markdown memo")
	return cmd
}

// NewDoneCmd creates the done command
func NewDoneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "done <id>",
		Short: "Toggle a task's completion state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, log, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync(log) }()

			task, err := sess.ToggleCompletion(context.Background(), args[0])
			if err != nil {
				return err
			}
			if task.Completed {
				fmt.Printf("Completed: %s\n", task.Title)
			} else {
				fmt.Printf("Reopened: %s\n", task.Title)
			}
			return nil
		},
	}
	return cmd
}

// NewEditCmd creates the edit command
func NewEditCmd() *cobra.Command {
	var title string
	var priority string
	var tags []string
	var memo string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update fields of a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, log, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync(log) }()

			var patch models.TaskPatch
			if cmd.Flags().Changed("title") {
				patch.Title = &title
			}
			if cmd.Flags().Changed("priority") {
				p := models.Priority(priority)
				patch.Priority = &p
			}
			if cmd.Flags().Changed("tag") {
				patch.Tags = tags
			}
			if cmd.Flags().Changed("memo") {
				patch.Memo = &memo
			}

			task, err := sess.Update(context.Background(), args[0], patch)
			if err != nil {
				return err
			}
			fmt.Printf("Updated %s: %s\n", task.ID, task.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "priority (low, medium, high)")
	cmd.Flags().StringSliceVarP(&tags, "tag", "t", nil, "replacement tag set (repeatable)")
	cmd.Flags().StringVarP(&memo, "memo", "m", "", "markdown memo")
	return cmd
}

// NewRemoveCmd creates the rm command
func NewRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, log, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync(log) }()

			if err := sess.Delete(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted %s\n", args[0])
			return nil
		},
	}
	return cmd
}
