package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/pmerrell/atrium/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newBriefCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "brief",
		Short: "Show the daily brief",
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now().In(app.Config.Location())
			brief, err := app.Brief.Generate(context.Background(), now)
			if err != nil {
				return err
			}

			fmt.Printf("%s\n", formatter.FormatBrief(brief))
			return nil
		},
	}
}
