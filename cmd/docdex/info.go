package main

import (
	"fmt"
	"sort"
)

// Run executes the info command.
func (c *InfoCmd) Run(deps *Dependencies) error {
	info, err := deps.Index.Info(deps.Ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "Documents: %d\n", info.Documents)
	fmt.Fprintf(deps.Stdout, "Dimension: %d\n", info.Dimension)

	if len(info.Jobs) == 0 {
		return nil
	}
	jobIDs := make([]string, 0, len(info.Jobs))
	for jobID := range info.Jobs {
		jobIDs = append(jobIDs, jobID)
	}
	sort.Strings(jobIDs)

	fmt.Fprintln(deps.Stdout, "Jobs:")
	for _, jobID := range jobIDs {
		fmt.Fprintf(deps.Stdout, "  %s: %d chunks\n", jobID, info.Jobs[jobID])
	}
	return nil
}
