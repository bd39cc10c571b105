package cli

import (
	"context"
	"fmt"

	"github.com/pmerrell/atrium/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// startDocumentWizard creates a document in the given folder (nil for the
// knowledge-base root).
func startDocumentWizard(state *SharedState, folderID *string) tea.Cmd {
	app := state.App

	title := new(string)
	body := new(string)
	pinned := new(bool)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(title).
				Validate(validateRequired("title")),
			huh.NewText().
				Title("Body").
				Value(body),
			huh.NewConfirm().
				Title("Pin to the brief?").
				Affirmative("Yes").
				Negative("No").
				Value(pinned),
		),
	).WithTheme(atriumHuhTheme()).WithShowHelp(false)

	return startWizardCmd(state, "New Document", form, func() tea.Cmd {
		d := &domain.Document{
			FolderID: folderID,
			Title:    *title,
			Body:     *body,
			Pinned:   *pinned,
		}
		return func() tea.Msg {
			if err := app.Documents.Create(context.Background(), d); err != nil {
				return statusFlashMsg{text: formErrorText(err)}
			}
			return statusFlashMsg{text: formSuccessText(fmt.Sprintf("Created document %s", d.Title))}
		}
	})
}

// startFolderWizard creates a folder under the given parent (nil for a
// root folder).
func startFolderWizard(state *SharedState, parentID *string) tea.Cmd {
	app := state.App

	name := new(string)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Folder Name").
				Value(name).
				Validate(validateRequired("name")),
		),
	).WithTheme(atriumHuhTheme()).WithShowHelp(false)

	return startWizardCmd(state, "New Folder", form, func() tea.Cmd {
		f := &domain.Folder{
			ParentID: parentID,
			Name:     *name,
		}
		return func() tea.Msg {
			if err := app.Documents.CreateFolder(context.Background(), f); err != nil {
				return statusFlashMsg{text: formErrorText(err)}
			}
			return statusFlashMsg{text: formSuccessText(fmt.Sprintf("Created folder %s", f.Name))}
		}
	})
}
