package main

import (
	"fmt"

	"github.com/fwojciec/watchscout"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	progress := deps.Progress
	if progress == nil {
		progress = nopIndicator{}
	}
	deps.Aggregator.Progress = progress.Update

	progress.Start(fmt.Sprintf("Searching %q", c.Term))
	result, err := deps.Aggregator.Aggregate(deps.Ctx, c.Term, c.All)
	progress.Stop(err)
	if err != nil {
		if page := watchscout.ErrorPage(err); page > 0 {
			fmt.Fprintf(deps.Stderr, "error: page %d: %s\n", page, watchscout.ErrorMessage(err))
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", watchscout.ErrorMessage(err))
		}
		return err
	}

	table := result.Table
	if table.Len() == 0 {
		fmt.Fprintf(deps.Stdout, "No offers found for %q.\n", c.Term)
	} else {
		renderOffers(deps.Stdout, table)
		if summary, ok := watchscout.Summarize(table); ok {
			renderSummary(deps.Stdout, summary)
		}
		if table.PriceOnRequest() {
			fmt.Fprintln(deps.Stdout, "Price column not available, hence the price is on request.")
		}
	}

	if result.ListingCount >= 0 {
		fmt.Fprintf(deps.Stdout, "%d offers from %d listings across %d pages\n",
			table.Len(), result.ListingCount, len(result.Pages))
	}

	for _, f := range result.Failed {
		fmt.Fprintf(deps.Stderr, "  skip page %d: %s\n", f.Page, watchscout.ErrorMessage(f.Err))
	}

	if deps.Exporter != nil {
		if err := deps.Exporter.ExportOffers(deps.Ctx, table); err != nil {
			fmt.Fprintf(deps.Stderr, "error exporting: %v\n", err)
			return err
		}
		fmt.Fprintf(deps.Stdout, "Exported %d offers to %s\n", table.Len(), c.CSV)
	}

	if deps.Snapshots != nil {
		snap := &watchscout.Snapshot{
			Term:         c.Term,
			AllPages:     c.All,
			ListingCount: result.ListingCount,
			FailedPages:  result.FailedPages(),
		}
		if err := deps.Snapshots.CreateSnapshot(deps.Ctx, snap, table); err != nil {
			fmt.Fprintf(deps.Stderr, "error saving snapshot: %s\n", watchscout.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Saved snapshot %s\n", snap.ID)
	}

	return nil
}
