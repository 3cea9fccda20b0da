package main

import (
	"fmt"

	"github.com/fwojciec/watchscout"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	filter := watchscout.SnapshotFilter{Limit: c.Limit}
	if c.Term != "" {
		filter.Term = &c.Term
	}

	snaps, err := deps.Snapshots.FindSnapshots(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", watchscout.ErrorMessage(err))
		return err
	}

	if len(snaps) == 0 {
		fmt.Fprintln(deps.Stdout, "No snapshots found. Use 'watchscout search --db' to save one.")
		return nil
	}

	renderSnapshots(deps.Stdout, snaps)
	return nil
}
