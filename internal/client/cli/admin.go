package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// defaultApproveCredits matches the server default for the approve action.
const defaultApproveCredits = 10

func (a *App) requireAdmin() bool {
	if !a.isAdmin() {
		fmt.Fprintln(a.out, "Admin access required.")
		return false
	}
	return true
}

func (a *App) users(ctx context.Context) {
	if !a.requireAdmin() {
		return
	}
	users, err := a.api.ListUsers(ctx)
	if err != nil {
		fmt.Fprintf(a.out, "User listing failed: %v\n", err)
		return
	}
	for _, u := range users {
		fmt.Fprintf(a.out, "%s %s <%s> role=%s\n", u.ID, u.Username, u.Email, u.Role)
	}
}

func (a *App) approve(ctx context.Context, args []string) {
	if !a.requireAdmin() {
		return
	}
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: approve <post-id> [credits] [notes]")
		return
	}

	credits := defaultApproveCredits
	notes := ""
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			fmt.Fprintln(a.out, "Credits must be a number.")
			return
		}
		credits = n
	}
	if len(args) > 2 {
		notes = strings.Join(args[2:], " ")
	}

	post, err := a.api.ApprovePost(ctx, args[0], credits, notes)
	if err != nil {
		fmt.Fprintf(a.out, "Approve failed: %v\n", err)
		return
	}
	fmt.Fprintf(a.out, "Approved %s (+%d credits)\n", post.ID, post.CreditsAwarded)
	a.coord.Refresh(ctx)
}

func (a *App) reject(ctx context.Context, args []string) {
	if !a.requireAdmin() {
		return
	}
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: reject <post-id> [reason]")
		return
	}

	post, err := a.api.RejectPost(ctx, args[0], strings.Join(args[1:], " "))
	if err != nil {
		fmt.Fprintf(a.out, "Reject failed: %v\n", err)
		return
	}
	fmt.Fprintf(a.out, "Rejected %s\n", post.ID)
	a.coord.Refresh(ctx)
}

func (a *App) removePost(ctx context.Context, args []string) {
	if !a.requireAdmin() {
		return
	}
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: rmpost <post-id>")
		return
	}
	if err := a.api.DeletePost(ctx, args[0]); err != nil {
		fmt.Fprintf(a.out, "Delete failed: %v\n", err)
		return
	}
	fmt.Fprintf(a.out, "Deleted %s\n", args[0])
	a.coord.Refresh(ctx)
}

func (a *App) removeLostItem(ctx context.Context, args []string) {
	if !a.requireAdmin() {
		return
	}
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: rmlost <item-id>")
		return
	}
	if err := a.api.DeleteLostItem(ctx, args[0]); err != nil {
		fmt.Fprintf(a.out, "Delete failed: %v\n", err)
		return
	}
	fmt.Fprintf(a.out, "Deleted %s\n", args[0])
	a.coord.Refresh(ctx)
}

func (a *App) lostStatus(ctx context.Context, args []string) {
	if !a.requireAdmin() {
		return
	}
	if len(args) != 2 {
		fmt.Fprintln(a.out, "Usage: loststatus <item-id> <status>")
		return
	}
	item, err := a.api.UpdateLostItemStatus(ctx, args[0], args[1])
	if err != nil {
		fmt.Fprintf(a.out, "Status update failed: %v\n", err)
		return
	}
	fmt.Fprintf(a.out, "%s is now %s\n", item.ID, item.Status)
	a.coord.Refresh(ctx)
}
