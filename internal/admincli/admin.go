// Package admincli implements the interactive bootstrap of administrator
// accounts. Self-registration never grants admin rights, so this is the only
// way to obtain the first one.
package admincli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/yogastudio/internal/server/httpapi"
	"github.com/dmitrijs2005/yogastudio/internal/server/models"
)

var ErrPasswordMismatch = errors.New("passwords do not match")

// Options carries values given on the command line. Empty fields are
// prompted for.
type Options struct {
	Email     string
	FirstName string
	LastName  string
}

// AdminEnsurer creates or promotes an administrator account.
type AdminEnsurer interface {
	EnsureAdmin(ctx context.Context, email, firstName, lastName, password string) (*models.User, bool, error)
}

// Run collects the account details, validates them with the signup rules
// and hands them to svc.
func Run(ctx context.Context, in *bufio.Reader, out io.Writer, opts Options, svc AdminEnsurer) error {
	var err error

	fields := []struct {
		value  *string
		prompt string
	}{
		{&opts.Email, "Email"},
		{&opts.FirstName, "First name"},
		{&opts.LastName, "Last name"},
	}
	for _, f := range fields {
		if *f.value != "" {
			continue
		}
		if *f.value, err = GetSimpleText(in, f.prompt, out); err != nil {
			return fmt.Errorf("read %s: %w", f.prompt, err)
		}
	}

	password, err := GetPassword(in, "Password", out)
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}
	confirm, err := GetPassword(in, "Repeat password", out)
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}
	if password != confirm {
		return ErrPasswordMismatch
	}

	req := httpapi.SignupRequest{
		Email:     opts.Email,
		FirstName: opts.FirstName,
		LastName:  opts.LastName,
		Password:  password,
	}
	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid input: %w", err)
	}

	user, created, err := svc.EnsureAdmin(ctx, req.Email, req.FirstName, req.LastName, req.Password)
	if err != nil {
		return err
	}

	if created {
		fmt.Fprintf(out, "Created admin %s (id %d)\n", user.Email, user.ID)
	} else {
		fmt.Fprintf(out, "Promoted %s (id %d) to admin, password updated\n", user.Email, user.ID)
	}
	return nil
}
