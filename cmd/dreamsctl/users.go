package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	usersCmd := &cobra.Command{Use: "users", Short: "User operations"}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all users",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet("/users")
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	usersCmd.AddCommand(listCmd)

	// signup
	var name, email, password string
	signupCmd := &cobra.Command{
		Use:   "signup",
		Short: "Register a new account and print the session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]interface{}{"name": name, "email": email, "password": password}
			data, err := doPostJSON("/users/signup", payload)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	signupCmd.Flags().StringVarP(&name, "name", "n", "", "Display name (required)")
	signupCmd.Flags().StringVarP(&email, "email", "e", "", "Email (required)")
	signupCmd.Flags().StringVarP(&password, "password", "p", "", "Password (required)")
	_ = signupCmd.MarkFlagRequired("name")
	_ = signupCmd.MarkFlagRequired("email")
	_ = signupCmd.MarkFlagRequired("password")
	usersCmd.AddCommand(signupCmd)

	// login
	var loginEmail, loginPassword string
	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and print the session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]interface{}{"email": loginEmail, "password": loginPassword}
			data, err := doPostJSON("/users/login", payload)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	loginCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "Email (required)")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Password (required)")
	_ = loginCmd.MarkFlagRequired("email")
	_ = loginCmd.MarkFlagRequired("password")
	usersCmd.AddCommand(loginCmd)

	rootCmd.AddCommand(usersCmd)
}
