package cli

import (
	"context"
	"fmt"

	"github.com/ecosync/ecosync-cli/internal/client/models"
)

func (a *App) feed(ctx context.Context) {
	snap := a.coord.Snapshot()
	if snap.User == nil {
		fmt.Fprintln(a.out, "Sign in to see the feed.")
		return
	}
	if len(snap.Posts) == 0 {
		fmt.Fprintln(a.out, "No cleanup posts yet.")
		return
	}
	for _, p := range snap.Posts {
		a.printPost(p)
	}
}

func (a *App) printPost(p models.Post) {
	author := p.Username
	if author == "" {
		author = p.UserEmail
	}
	fmt.Fprintf(a.out, "[%s] %s by %s — %q", p.Status, p.ID, author, p.Caption)
	if p.Location != "" {
		fmt.Fprintf(a.out, " @ %s", p.Location)
	}
	if p.CreditsAwarded > 0 {
		fmt.Fprintf(a.out, " (+%d credits)", p.CreditsAwarded)
	}
	if p.ReviewNotes != "" {
		fmt.Fprintf(a.out, " — %s", p.ReviewNotes)
	}
	fmt.Fprintln(a.out)
}

func (a *App) lostItems(ctx context.Context) {
	snap := a.coord.Snapshot()
	if snap.User == nil {
		fmt.Fprintln(a.out, "Sign in to see lost & found items.")
		return
	}
	if len(snap.LostItems) == 0 {
		fmt.Fprintln(a.out, "No lost & found reports.")
		return
	}
	for _, item := range snap.LostItems {
		fmt.Fprintf(a.out, "[%s] %s: %s @ %s — contact %s\n",
			item.Status, item.ID, item.Title, item.Location, item.Contact)
	}
}
