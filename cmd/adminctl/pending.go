package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var pendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "Inspect and flush queued user creates",
}

var pendingListCmd = &cobra.Command{
	Use:   "list",
	Short: "List queued records",
	RunE:  runPendingList,
}

var pendingFlushCmd = &cobra.Command{
	Use:   "flush",
	Short: "Replay queued records against the backend",
	RunE:  runPendingFlush,
}

func init() {
	pendingCmd.AddCommand(pendingListCmd, pendingFlushCmd)
}

// Listing reads the local queue only, so it needs no session and works
// while the backend is down.
func runPendingList(cmd *cobra.Command, args []string) error {
	client, err := newLocalClient()
	if err != nil {
		return err
	}

	pending := client.PendingLocalRecords()
	if len(pending) == 0 {
		fmt.Println("no pending records")
		return nil
	}
	for _, p := range pending {
		fmt.Printf("#%d %s %s <%s>\n", p.LocalID, p.Input.FirstName, p.Input.LastName, p.Input.Email)
	}
	return nil
}

func runPendingFlush(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	client, err := newSession(ctx)
	if err != nil {
		return err
	}

	if len(client.PendingLocalRecords()) == 0 {
		fmt.Println("no pending records")
		return nil
	}

	created, err := client.Flush(ctx)
	for _, u := range created {
		okColor.Printf("promoted %s as user %d\n", u.Email, u.ID)
	}
	if remaining := client.PendingLocalRecords(); len(remaining) > 0 {
		warnColor.Printf("%d record(s) still queued\n", len(remaining))
	}
	return err
}
