package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// messageResult is the server's response to a successful registration
type messageResult struct {
	Message string `json:"message"`
}

func newRegisterCmd() *cobra.Command {
	var user, email, pass string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !validEmail(email) {
				return errors.New("please enter a valid email")
			}

			req := map[string]string{
				"username": user,
				"email":    email,
				"password": pass,
			}
			var result messageResult

			if err := client.Post("/api/auth/register", req, &result); err != nil {
				return authFlowError(err, "registration")
			}

			out := NewOutput(cfg.Output)
			// Registering does not log the user in
			out.PrintMessage("Registration successful. You can now log in.")
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "Username")
	cmd.Flags().StringVar(&email, "email", "", "Email address (required)")
	cmd.Flags().StringVar(&pass, "pass", "", "Password (required)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("pass")

	return cmd
}

func newLoginCmd() *cobra.Command {
	var email, pass string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in with an existing account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !validEmail(email) {
				return errors.New("please enter a valid email")
			}

			req := map[string]string{
				"email":    email,
				"password": pass,
			}
			var result Identity

			if err := client.Post("/api/auth/login", req, &result); err != nil {
				return authFlowError(err, "login")
			}

			if err := cfg.IdentityStore().Save(result); err != nil {
				return fmt.Errorf("failed to save identity: %w", err)
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address (required)")
	cmd.Flags().StringVar(&pass, "pass", "", "Password (required)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("pass")

	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored identity",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.IdentityStore().Clear(); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Logged out.")
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the stored identity",
		RunE: func(cmd *cobra.Command, args []string) error {
			identity, err := cfg.IdentityStore().Load()
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(*identity)
			return nil
		},
	}
}

// authFlowError passes a structured rejection through verbatim and folds
// everything else into a generic server error, the way the browser client
// does
func authFlowError(err error, flow string) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return fmt.Errorf("server error during %s", flow)
}
