package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	dreamsCmd := &cobra.Command{Use: "dreams", Short: "Dream operations"}

	getCmd := &cobra.Command{
		Use:   "get DREAM_ID",
		Short: "Get a dream by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet("/dreams/" + args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	dreamsCmd.AddCommand(getCmd)

	listCmd := &cobra.Command{
		Use:   "list USER_ID",
		Short: "List a user's dreams",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet("/dreams/user/" + args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	dreamsCmd.AddCommand(listCmd)

	var title, description string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a dream (requires --token)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if tokenFlag == "" {
				return fmt.Errorf("--token required")
			}
			payload := map[string]interface{}{"title": title, "description": description}
			data, err := doPostJSON("/dreams", payload)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	createCmd.Flags().StringVarP(&title, "title", "T", "", "Dream title (required)")
	createCmd.Flags().StringVarP(&description, "description", "d", "", "Dream description (required)")
	_ = createCmd.MarkFlagRequired("title")
	_ = createCmd.MarkFlagRequired("description")
	dreamsCmd.AddCommand(createCmd)

	deleteCmd := &cobra.Command{
		Use:   "delete DREAM_ID",
		Short: "Delete a dream (requires --token)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if tokenFlag == "" {
				return fmt.Errorf("--token required")
			}
			data, err := doDelete("/dreams/" + args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	dreamsCmd.AddCommand(deleteCmd)

	rootCmd.AddCommand(dreamsCmd)
}
