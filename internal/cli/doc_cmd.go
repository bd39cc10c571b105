package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pmerrell/atrium/internal/cli/formatter"
	"github.com/pmerrell/atrium/internal/domain"
	"github.com/spf13/cobra"
)

func newDocCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doc",
		Short: "Manage the knowledge base",
	}

	cmd.AddCommand(
		newDocTreeCmd(app),
		newDocAddCmd(app),
		newDocShowCmd(app),
		newDocEditCmd(app),
		newDocMoveCmd(app),
		newDocPinCmd(app),
		newDocUnpinCmd(app),
		newDocRemoveCmd(app),
		newDocSearchCmd(app),
		newFolderCmd(app),
	)

	return cmd
}

func newDocTreeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tree",
		Short: "Show the folder tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := app.Documents.Tree(context.Background())
			if err != nil {
				return err
			}
			fmt.Printf("%s\n", formatter.FormatTree(tree))
			return nil
		},
	}
}

// readDocBody returns the document body from --body, --file, or stdin
// when neither flag is set and stdin is piped.
func readDocBody(app *App, body, file string) (string, error) {
	if body != "" {
		return body, nil
	}
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	if app.IsInteractive != nil && !app.IsInteractive() {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	return "", nil
}

func newDocAddCmd(app *App) *cobra.Command {
	var title, folder, body, file string
	var pinned bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a document",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			d := &domain.Document{
				Title:  title,
				Pinned: pinned,
			}

			var err error
			if d.Body, err = readDocBody(app, body, file); err != nil {
				return err
			}

			if folder != "" {
				f, err := resolveFolder(ctx, app, folder)
				if err != nil {
					return err
				}
				d.FolderID = &f.ID
			}

			if err := app.Documents.Create(ctx, d); err != nil {
				return err
			}
			fmt.Printf("Created document %s [%s]\n", d.Title, formatter.TruncID(d.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Document title")
	cmd.Flags().StringVar(&folder, "folder", "", "Folder name or ID (default root)")
	cmd.Flags().StringVar(&body, "body", "", "Document body")
	cmd.Flags().StringVar(&file, "file", "", "Read body from file")
	cmd.Flags().BoolVar(&pinned, "pin", false, "Pin the document")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newDocShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show TITLE",
		Short: "Show a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			d, err := resolveDocument(ctx, app, args[0])
			if err != nil {
				return err
			}

			folderName := ""
			if d.FolderID != nil {
				if f, err := resolveFolder(ctx, app, *d.FolderID); err == nil {
					folderName = f.Name
				}
			}

			fmt.Printf("%s\n", formatter.FormatDocument(d, folderName))
			return nil
		},
	}
}

func newDocEditCmd(app *App) *cobra.Command {
	var title, body, file string

	cmd := &cobra.Command{
		Use:   "edit TITLE",
		Short: "Update a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			d, err := resolveDocument(ctx, app, args[0])
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("title") {
				d.Title = title
			}
			if body != "" || file != "" {
				if d.Body, err = readDocBody(app, body, file); err != nil {
					return err
				}
			}

			if err := app.Documents.Update(ctx, d); err != nil {
				return err
			}
			fmt.Printf("Updated document %s [%s]\n", d.Title, formatter.TruncID(d.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&body, "body", "", "New body")
	cmd.Flags().StringVar(&file, "file", "", "Read new body from file")

	return cmd
}

func newDocMoveCmd(app *App) *cobra.Command {
	var folder string

	cmd := &cobra.Command{
		Use:   "move TITLE",
		Short: "Move a document to another folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			d, err := resolveDocument(ctx, app, args[0])
			if err != nil {
				return err
			}

			var folderID *string
			dest := "root"
			if folder != "" {
				f, err := resolveFolder(ctx, app, folder)
				if err != nil {
					return err
				}
				folderID = &f.ID
				dest = f.Name
			}

			if err := app.Documents.Move(ctx, d.ID, folderID); err != nil {
				return err
			}
			fmt.Printf("Moved document %s to %s\n", d.Title, dest)
			return nil
		},
	}

	cmd.Flags().StringVar(&folder, "folder", "", "Destination folder name or ID (empty for root)")

	return cmd
}

func newDocPinCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "pin TITLE",
		Short: "Pin a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			d, err := resolveDocument(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Documents.SetPinned(ctx, d.ID, true); err != nil {
				return err
			}
			fmt.Printf("Pinned document %s\n", d.Title)
			return nil
		},
	}
}

func newDocUnpinCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "unpin TITLE",
		Short: "Unpin a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			d, err := resolveDocument(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Documents.SetPinned(ctx, d.ID, false); err != nil {
				return err
			}
			fmt.Printf("Unpinned document %s\n", d.Title)
			return nil
		},
	}
}

func newDocRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove TITLE",
		Short: "Remove a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			d, err := resolveDocument(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Documents.Delete(ctx, d.ID); err != nil {
				return err
			}
			fmt.Printf("Removed document %s\n", d.Title)
			return nil
		},
	}
}

func newDocSearchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "search QUERY",
		Short: "Search documents by title and body",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			docs, err := app.Documents.Search(context.Background(), query)
			if err != nil {
				return err
			}
			fmt.Printf("%s\n", formatter.FormatSearchResults(query, docs))
			return nil
		},
	}
}

// ── folders ──────────────────────────────────────────────────────────────────

func newFolderCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "folder",
		Short: "Manage folders",
	}

	cmd.AddCommand(
		newFolderAddCmd(app),
		newFolderRenameCmd(app),
		newFolderRemoveCmd(app),
	)

	return cmd
}

func newFolderAddCmd(app *App) *cobra.Command {
	var parent string

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Create a folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			f := &domain.Folder{Name: args[0]}
			if parent != "" {
				p, err := resolveFolder(ctx, app, parent)
				if err != nil {
					return err
				}
				f.ParentID = &p.ID
			}

			if err := app.Documents.CreateFolder(ctx, f); err != nil {
				return err
			}
			fmt.Printf("Created folder %s [%s]\n", f.Name, formatter.TruncID(f.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&parent, "parent", "", "Parent folder name or ID (default root)")

	return cmd
}

func newFolderRenameCmd(app *App) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "rename NAME",
		Short: "Rename a folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			f, err := resolveFolder(ctx, app, args[0])
			if err != nil {
				return err
			}
			f.Name = name
			if err := app.Documents.UpdateFolder(ctx, f); err != nil {
				return err
			}
			fmt.Printf("Renamed folder to %s\n", f.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "to", "", "New folder name")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func newFolderRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove NAME",
		Short: "Remove a folder (its documents move to the root)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			f, err := resolveFolder(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Documents.DeleteFolder(ctx, f.ID); err != nil {
				return err
			}
			fmt.Printf("Removed folder %s\n", f.Name)
			return nil
		},
	}
}
