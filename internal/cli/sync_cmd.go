package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/pmerrell/atrium/internal/cli/formatter"
	"github.com/pmerrell/atrium/internal/config"
	"github.com/pmerrell/atrium/internal/feed"
	"github.com/spf13/cobra"
)

func newSyncCmd(app *App) *cobra.Command {
	var feedName string

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Import subscribed ICS feeds",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			if len(app.Config.Feeds) == 0 {
				fmt.Println("No feeds configured.")
				return nil
			}

			var results []feed.SyncResult
			var err error
			if feedName != "" {
				f, ok := findFeed(app, feedName)
				if !ok {
					return fmt.Errorf("feed not found: %q", feedName)
				}
				var r feed.SyncResult
				r, err = app.Importer.SyncFeed(ctx, app.Config, f)
				if err == nil {
					results = append(results, r)
				}
			} else {
				results, err = app.Importer.SyncAll(ctx, app.Config)
			}

			for _, r := range results {
				fmt.Println(syncResultLine(r))
			}
			return err
		},
	}

	cmd.Flags().StringVar(&feedName, "feed", "", "Sync only the named feed")

	return cmd
}

func findFeed(app *App, name string) (config.Feed, bool) {
	for _, cf := range app.Config.Feeds {
		if strings.EqualFold(cf.Name, name) {
			return cf, true
		}
	}
	return config.Feed{}, false
}

func syncResultLine(r feed.SyncResult) string {
	if r.FromCache {
		return fmt.Sprintf("%s  %s", formatter.Bold(r.FeedName), formatter.Dim("unchanged"))
	}
	return fmt.Sprintf("%s  %d occurrences imported", formatter.Bold(r.FeedName), r.Imported)
}
