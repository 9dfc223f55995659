package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bionutrex/internal/publish"
	"github.com/spf13/cobra"
)

const defaultChangesFile = "pending-changes.json"

func newChangesCmd(opts *rootOptions) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "changes",
		Short: "Inspect and edit the pending change queue",
	}
	cmd.PersistentFlags().StringVar(&file, "file", defaultChangesFile, "pending changes file")

	add := &cobra.Command{
		Use:   "add <type> <action> [id]",
		Short: "Stage a change (type: slider|section|post, action: create|update|delete|visibility)",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, _ := cmd.Flags().GetString("data")
			change := publish.Change{
				Type:   publish.EntityType(args[0]),
				Action: publish.Action(args[1]),
			}
			if len(args) == 3 {
				change.ID = args[2]
			}
			if strings.TrimSpace(data) != "" {
				if err := json.Unmarshal([]byte(data), &change.Data); err != nil {
					return fmt.Errorf("parsing --data: %w", err)
				}
			}
			if err := change.Validate(); err != nil {
				return err
			}

			q, err := loadQueue(file)
			if err != nil {
				return err
			}
			q.Add(change)
			if err := publish.SaveChanges(file, q.Changes()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d pending change(s)\n", q.Len())
			return nil
		},
	}
	add.Flags().String("data", "", "JSON object with the fields to send")

	list := &cobra.Command{
		Use:   "list",
		Short: "Show pending changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := loadQueue(file)
			if err != nil {
				return err
			}
			if !q.HasChanges() {
				fmt.Fprintln(cmd.OutOrStdout(), "no pending changes")
				return nil
			}
			for _, change := range q.Changes() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%-10s %-7s %s\n",
					change.Timestamp.Format("2006-01-02 15:04:05"), change.Action, change.Type, change.ID)
			}
			return nil
		},
	}

	discard := &cobra.Command{
		Use:   "discard",
		Short: "Drop all pending changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := loadQueue(file)
			if err != nil {
				return err
			}
			q.Discard()
			return publish.SaveChanges(file, q.Changes())
		},
	}

	cmd.AddCommand(add, list, discard)
	return cmd
}

func loadQueue(file string) (*publish.Queue, error) {
	changes, err := publish.LoadChanges(file)
	if err != nil {
		return nil, err
	}
	return publish.NewQueue(changes...), nil
}
