package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/inkwell/internal/api"
	"github.com/dmitrijs2005/inkwell/internal/common"
)

var errNotLoggedIn = errors.New("not logged in, use 'login' or 'register'")

// Register prompts for the account fields and creates the account. The new
// session is kept, so the user is logged in afterwards.
func (a *App) Register(ctx context.Context) error {
	username, err := a.prompt.field("username")
	if err != nil {
		return err
	}
	email, err := a.prompt.field("email")
	if err != nil {
		return err
	}
	password, err := a.prompt.password()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	bio, err := a.prompt.field("bio (optional)")
	if err != nil {
		return err
	}
	var bioPtr *string
	if bio != "" {
		bioPtr = &bio
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	id, err := a.client.Register(ctx, username, email, string(password), bioPtr)
	if err != nil {
		return err
	}

	a.email = email
	fmt.Fprintf(a.out, "Registered, account id %s\n", id)
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, err := a.prompt.field("email")
	if err != nil {
		return err
	}
	password, err := a.prompt.password()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if err := a.client.Login(ctx, email, string(password)); err != nil {
		return err
	}

	a.email = email
	fmt.Fprintln(a.out, "Login successful")
	return nil
}

func (a *App) Logout(context.Context) error {
	a.client.Logout()
	a.email = ""
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) Profile(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	p, err := a.client.Profile(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "id:       %s\n", p.ID)
	fmt.Fprintf(a.out, "username: %s\n", p.Username)
	fmt.Fprintf(a.out, "email:    %s\n", p.Email)
	if p.Bio != nil {
		fmt.Fprintf(a.out, "bio:      %s\n", *p.Bio)
	}
	fmt.Fprintf(a.out, "joined:   %s\n", p.CreatedAt.Format(time.DateTime))
	return nil
}

// Post reads a multi-line body and publishes it.
func (a *App) Post(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}

	content, err := a.prompt.body()
	if err != nil {
		return err
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	p, err := a.client.CreatePost(ctx, content)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Posted %s\n", p.ID)
	return nil
}

// Posts lists the caller's own posts, newest first. An optional argument
// caps the count.
func (a *App) Posts(ctx context.Context, args []string) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}

	limit := 0
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return fmt.Errorf("usage: posts [n]")
		}
		limit = n
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	posts, err := a.client.ListMyPosts(ctx, limit)
	if err != nil {
		return err
	}

	if len(posts) == 0 {
		fmt.Fprintln(a.out, "No posts yet")
		return nil
	}
	for _, p := range posts {
		fmt.Fprintf(a.out, "%s  %s  %s\n", p.ID, p.CreatedAt.Format(time.DateTime), summary(p))
	}
	return nil
}

func (a *App) Show(ctx context.Context, args []string) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}
	if len(args) == 0 {
		return fmt.Errorf("usage: show <id>")
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	p, err := a.client.GetPost(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s by %s at %s\n\n%s\n", p.ID, p.AuthorID, p.CreatedAt.Format(time.DateTime), p.Content)
	return nil
}

// summary is the first line of the post, cut to 60 runes.
func summary(p api.Post) string {
	line, _, _ := strings.Cut(p.Content, "\n")
	r := []rune(line)
	if len(r) > 60 {
		return string(r[:57]) + "..."
	}
	return line
}
