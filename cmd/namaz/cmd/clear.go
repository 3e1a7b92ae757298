package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/namaztracker/namaz/internal/app"
)

func ClearCmd(open Opener) *cobra.Command {
	var yes bool

	c := &cobra.Command{
		Use:   "clear",
		Short: "Delete every prayer record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("refusing to clear without --yes")
			}
			return withApp(cmd.Context(), open, func(ctx context.Context, a *app.App) error {
				err := a.RecordService.ClearAll(ctx)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), "All prayer records were cleared.")
				return err
			})
		},
	}

	c.Flags().BoolVar(&yes, "yes", false, "confirm deletion")
	return c
}
