package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

func (a *App) credits(ctx context.Context) {
	snap := a.coord.Snapshot()
	if snap.User == nil {
		fmt.Fprintln(a.out, "Sign in to see your credits.")
		return
	}
	fmt.Fprintf(a.out, "Credit balance: %d\n", snap.Credits)
}

func (a *App) redeem(ctx context.Context, args []string) {
	snap := a.coord.Snapshot()
	if snap.User == nil {
		fmt.Fprintln(a.out, "Sign in to redeem credits.")
		return
	}
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: redeem <amount> [note]")
		return
	}

	amount, err := strconv.Atoi(args[0])
	if err != nil || amount <= 0 {
		fmt.Fprintln(a.out, "Amount must be a positive number.")
		return
	}
	note := strings.Join(args[1:], " ")

	result, err := a.api.Redeem(ctx, snap.User.UID, amount, note)
	if err != nil {
		fmt.Fprintf(a.out, "Redeem failed: %v\n", err)
		return
	}

	fmt.Fprintf(a.out, "Redeemed %d credits, %d remaining.\n", result.Amount, result.RemainingCredits)
	a.coord.Refresh(ctx)
}

func (a *App) tip(ctx context.Context) {
	prompt, err := GetSimpleText(a.reader, "What would you like a sustainability tip about?", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}

	tip, err := a.api.RequestTip(ctx, prompt, "")
	if err != nil {
		fmt.Fprintf(a.out, "Tip request failed: %v\n", err)
		return
	}
	fmt.Fprintln(a.out, tip.Output)
}
