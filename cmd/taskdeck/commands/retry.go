package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/taskdeck/taskdeck/internal/logger"
)

// NewRetryCmd creates the retry command
func NewRetryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "retry",
		Short: "Retry the last failed operation",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, log, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync(log) }()

			state := sess.Err()
			if state == nil {
				fmt.Println("Nothing to retry")
				return nil
			}
			if !state.Retryable {
				fmt.Printf("Last error is not retryable (%s): %s\n", state.Category, state.Message)
				return nil
			}

			if err := sess.RetryLastAction(context.Background()); err != nil {
				return err
			}
			fmt.Println("Retry succeeded")
			return nil
		},
	}
	return cmd
}
