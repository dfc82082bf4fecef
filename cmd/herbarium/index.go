package main

import (
	"fmt"

	"github.com/fwojciec/herbarium"
)

// Run executes the index command.
func (c *IndexCmd) Run(deps *Dependencies) error {
	index, err := deps.Records.WriteIndex(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", herbarium.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "indexed %d entities\n", index.Total)
	for _, cat := range herbarium.Categories() {
		if n := index.Categories[cat]; n > 0 {
			fmt.Fprintf(deps.Stdout, "  %s: %d\n", cat, n)
		}
	}
	return nil
}
