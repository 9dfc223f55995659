package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/bionutrex/internal/publish"
	"github.com/spf13/cobra"
)

func newPublishCmd(opts *rootOptions) *cobra.Command {
	var (
		apiURL   string
		file     string
		email    string
		password string
		token    string
	)

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Replay pending changes against the API",
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := loadQueue(file)
			if err != nil {
				return err
			}
			if !q.HasChanges() {
				fmt.Fprintln(cmd.OutOrStdout(), "no pending changes")
				return nil
			}

			client := publish.NewClient(apiURL)
			if token == "" {
				token = os.Getenv("CMS_TOKEN")
			}
			switch {
			case strings.TrimSpace(token) != "":
				client.SetToken(token)
			case email != "" && password != "":
				if err := client.Login(cmd.Context(), email, password); err != nil {
					return fmt.Errorf("login: %w", err)
				}
			default:
				return errors.New("either --token (or CMS_TOKEN) or --email and --password are required")
			}

			result := publish.NewPublisher(client, opts.log).Publish(cmd.Context(), q)
			fmt.Fprintf(cmd.OutOrStdout(), "published %d, failed %d\n", result.Succeeded, result.Failed())

			if !result.OK() {
				for _, f := range result.Failures {
					fmt.Fprintf(cmd.ErrOrStderr(), "  %s %s %s: %v\n", f.Change.Action, f.Change.Type, f.Change.ID, f.Err)
				}
				return fmt.Errorf("%d change(s) failed, queue kept in %s", result.Failed(), file)
			}
			return publish.SaveChanges(file, q.Changes())
		},
	}

	cmd.Flags().StringVar(&apiURL, "api", "http://localhost:3001", "API base URL")
	cmd.Flags().StringVar(&file, "file", defaultChangesFile, "pending changes file")
	cmd.Flags().StringVar(&email, "email", "", "admin email")
	cmd.Flags().StringVar(&password, "password", "", "admin password")
	cmd.Flags().StringVar(&token, "token", "", "bearer token (defaults to $CMS_TOKEN)")
	return cmd
}
