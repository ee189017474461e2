package main

import "fmt"

// Run executes the clear-cache command.
func (c *ClearCacheCmd) Run(deps *Dependencies) error {
	stats := deps.Retrieval.CacheStats()
	deps.Retrieval.ClearCache()
	fmt.Fprintf(deps.Stdout, "Cache cleared (%d entries dropped)\n", stats.Size)
	return nil
}

// Run executes the clear-job command.
func (c *ClearJobCmd) Run(deps *Dependencies) error {
	if err := deps.Index.ClearJob(deps.Ctx, c.JobID); err != nil {
		return err
	}
	fmt.Fprintf(deps.Stdout, "Removed job %s from the index\n", c.JobID)
	return nil
}
