package cli

import (
	"context"
	"fmt"

	"github.com/ecosync/ecosync-cli/internal/client/services"
)

func (a *App) login(ctx context.Context) {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	password, err := GetPassword(a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}

	sess, err := a.auth.Login(ctx, email, password)
	if err != nil {
		fmt.Fprintf(a.out, "Login unsuccessful: %v\n", err)
		return
	}

	fmt.Fprintf(a.out, "Signed in as %s\n", sess.Email)
	a.coord.Refresh(ctx)
}

func (a *App) signup(ctx context.Context) {
	email, err := GetSimpleText(a.reader, "Enter email (gmail.com or student.mes.ac.in)", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	username, err := GetSimpleText(a.reader, "Choose a username", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	password, err := GetPassword(a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}

	sess, err := a.auth.Signup(ctx, email, username, password)
	if err != nil {
		fmt.Fprintf(a.out, "Signup unsuccessful: %v\n", err)
		return
	}

	fmt.Fprintf(a.out, "Welcome, %s!\n", sess.Username)
	a.coord.Refresh(ctx)
}

func (a *App) logout(ctx context.Context) {
	if err := a.auth.Logout(ctx); err != nil {
		fmt.Fprintf(a.out, "Logout failed: %v\n", err)
		return
	}
	a.coord.Refresh(ctx)
	fmt.Fprintln(a.out, "Signed out.")
}

func (a *App) whoami(ctx context.Context) {
	sess, err := a.auth.Current(ctx)
	if err != nil {
		fmt.Fprintln(a.out, "Not signed in.")
		return
	}
	fmt.Fprintf(a.out, "%s <%s> role=%s\n", sess.Username, sess.Email, sess.Role)

	if exp, err := services.TokenExpiresAt(sess.Token); err == nil && !exp.IsZero() {
		fmt.Fprintf(a.out, "Session token expires %s\n", exp.Local().Format("2006-01-02 15:04"))
	}
}
