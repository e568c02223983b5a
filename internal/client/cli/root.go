package cli

import (
	"context"
	"fmt"
	"strings"
)

const firstRunNotice = `Welcome to EcoSync! Upload proof of campus cleanups to earn credits,
report lost & found items, and redeem credits for rewards.
Media you upload is reviewed before credits are awarded.`

func (a *App) getStatus() string {
	var parts []string
	snap := a.coord.Snapshot()
	if snap.User != nil {
		name := snap.User.Username
		if name == "" {
			name = snap.User.Email
		}
		parts = append(parts, name, snap.User.Role)
	}
	if !a.online.Load() {
		parts = append(parts, "offline")
	}
	if len(parts) == 0 {
		return ""
	}
	return fmt.Sprintf("(%s)", strings.Join(parts, " "))
}

func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to EcoSync CLI (type 'help' for commands)")

	a.showFirstRunNotice(ctx)
	a.coord.Bootstrap(ctx)

	go func() {
		a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)
	}()

	// All line input goes through a.reader so command words and the answers
	// the handlers prompt for come from the same buffer.
	for {
		fmt.Fprintf(a.out, "eco %s> ", a.getStatus())
		line, readErr := a.reader.ReadString('\n')

		parts := strings.Fields(line)
		if len(parts) == 0 {
			if readErr != nil {
				break
			}
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			a.help()
		case "login":
			a.login(ctx)
		case "signup":
			a.signup(ctx)
		case "logout":
			a.logout(ctx)
		case "whoami":
			a.whoami(ctx)
		case "feed":
			a.feed(ctx)
		case "lost":
			a.lostItems(ctx)
		case "upload":
			a.upload(ctx)
		case "report":
			a.report(ctx)
		case "credits":
			a.credits(ctx)
		case "redeem":
			a.redeem(ctx, args)
		case "settings":
			a.settings(ctx)
		case "tip":
			a.tip(ctx)
		case "refresh":
			a.coord.Refresh(ctx)
			fmt.Fprintln(a.out, "Refreshed.")
		case "status":
			a.status(ctx)
		case "users":
			a.users(ctx)
		case "approve":
			a.approve(ctx, args)
		case "reject":
			a.reject(ctx, args)
		case "rmpost":
			a.removePost(ctx, args)
		case "rmlost":
			a.removeLostItem(ctx, args)
		case "loststatus":
			a.lostStatus(ctx, args)
		case "exit", "quit":
			fmt.Fprintln(a.out, "Bye!")
			return
		default:
			fmt.Fprintln(a.out, "Unknown command:", cmd)
		}

		if readErr != nil {
			break
		}
	}
}

// status performs an on-demand reachability probe and updates the prompt
// marker alongside the periodic watcher.
func (a *App) status(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := a.api.Ping(pingCtx); err != nil {
		a.setOnline(ctx, false)
		fmt.Fprintf(a.out, "Server unreachable: %v\n", err)
		return
	}
	a.setOnline(ctx, true)
	fmt.Fprintln(a.out, "Server is up.")
}

func (a *App) help() {
	if !a.isSignedIn() {
		fmt.Fprintln(a.out, "Available commands: login, signup, tip, status, help, exit")
		return
	}
	fmt.Fprintln(a.out, "Available commands: feed, lost, upload, report, credits, redeem, settings, tip, refresh, status, whoami, logout, exit")
	if a.isAdmin() {
		fmt.Fprintln(a.out, "Admin commands: users, approve <id> [credits] [notes], reject <id> [reason], rmpost <id>, rmlost <id>, loststatus <id> <status>")
	}
}

// showFirstRunNotice prints the informational notice once; dismissal is
// remembered in the local state store.
func (a *App) showFirstRunNotice(ctx context.Context) {
	dismissed, err := a.sessions.NoticeDismissed(ctx)
	if err != nil {
		a.log.Warn(ctx, "notice flag read failed", "error", err)
		return
	}
	if dismissed {
		return
	}
	fmt.Fprintln(a.out, firstRunNotice)
	if err := a.sessions.DismissNotice(ctx); err != nil {
		a.log.Warn(ctx, "notice flag write failed", "error", err)
	}
}
