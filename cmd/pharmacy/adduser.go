package main

import (
	"errors"
	"fmt"
	"os"

	"pharmacy_inventory/internal/service"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

func (c *cli) addUserCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "adduser <username>",
		Short: "Create a user, prompting for the password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			password, err := promptPassword(cmd)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			a, err := c.open(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			id, err := a.Services.SignUp(ctx, args[0], password)
			if errors.Is(err, service.ErrDuplicateUsername) {
				return fmt.Errorf("user %q already exists", args[0])
			}
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(out, "Created user %q (id %d).\n", args[0], id)
			return err
		},
	}
}

func promptPassword(cmd *cobra.Command) (string, error) {
	out := cmd.OutOrStdout()
	if _, err := fmt.Fprint(out, "Password: "); err != nil {
		return "", err
	}
	first, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(out)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}

	if _, err := fmt.Fprint(out, "Repeat password: "); err != nil {
		return "", err
	}
	second, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(out)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}

	if string(first) != string(second) {
		return "", errors.New("passwords do not match")
	}
	return string(first), nil
}
