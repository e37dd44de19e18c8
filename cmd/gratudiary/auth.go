package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	errorvalues "github.com/limbo/gratudiary/internal/error_values"
	"github.com/limbo/gratudiary/internal/service"
	"github.com/limbo/gratudiary/internal/stats"
	"github.com/spf13/cobra"
)

// readSecret returns flagValue or, when it is empty, the first line of in.
func readSecret(in io.Reader, flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return "", errors.New("password required: pass --password or pipe it on stdin")
	}
	return line, nil
}

func newRegisterCommand(a *app) *cobra.Command {
	var name, email, password string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and log in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pass, err := readSecret(cmd.InOrStdin(), password)
			if err != nil {
				return err
			}
			user, err := a.users.Register(cmd.Context(), a.session, &service.RegisterRequest{
				Name:     name,
				Email:    email,
				Password: pass,
			})
			if err != nil {
				if errors.Is(err, errorvalues.ErrUserExists) {
					return errors.New("an account with this email already exists")
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Welcome, %s! You are logged in as %s.\n", user.Name, user.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password (read from stdin when omitted)")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("email")
	return cmd
}

func newLoginCommand(a *app) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to an existing account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pass, err := readSecret(cmd.InOrStdin(), password)
			if err != nil {
				return err
			}
			user, err := a.users.Login(cmd.Context(), a.session, email, pass)
			if err != nil {
				if errors.Is(err, errorvalues.ErrWrongCredentials) {
					return errors.New("invalid email or password")
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Welcome back, %s!\n", user.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password (read from stdin when omitted)")
	cmd.MarkFlagRequired("email")
	return cmd
}

func newLogoutCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out. Your journal stays on this device",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.users.Logout(cmd.Context(), a.session); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}

func newWhoamiCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := a.currentUser(cmd.Context())
			if err != nil {
				return err
			}
			joined := user.JoinedAt
			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s>\nMember since %s\n",
				user.Name, user.Email, stats.MemberSince(&joined, a.engine.Location()))
			return nil
		},
	}
}
