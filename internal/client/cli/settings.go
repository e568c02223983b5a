package cli

import (
	"context"
	"fmt"

	"github.com/ecosync/ecosync-cli/internal/client/models"
)

// settings shows the current preferences and optionally saves new ones.
func (a *App) settings(ctx context.Context) {
	snap := a.coord.Snapshot()
	if snap.User == nil {
		fmt.Fprintln(a.out, "Sign in to manage settings.")
		return
	}

	fmt.Fprintf(a.out, "Username: %s\nTheme: %s\n", snap.Settings.Username, snap.Settings.Theme)

	username, err := GetSimpleText(a.reader, "New username (empty to keep)", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	theme, err := GetSimpleText(a.reader, "Theme, light or dark (empty to keep)", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	if username == "" && theme == "" {
		return
	}
	if username == "" {
		username = snap.Settings.Username
	}
	if theme == "" {
		theme = snap.Settings.Theme
	}

	if _, err := a.api.UpdateSettings(ctx, snap.User.UID, models.SettingsUpdate{
		Username: username,
		Theme:    theme,
	}); err != nil {
		fmt.Fprintf(a.out, "Settings save failed: %v\n", err)
		return
	}

	// The refresh pulls the saved settings back and syncs the cached
	// session's username to the server's value.
	a.coord.Refresh(ctx)
	fmt.Fprintln(a.out, "Settings saved.")
}
