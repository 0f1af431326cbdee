package main

import (
	"encoding/json"
	"fmt"

	"github.com/aliikhatami94/infradocs"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	if infradocs.QueryTooShort(c.Query) {
		err := infradocs.Errorf(infradocs.EINVALID, "query must be at least %d characters", infradocs.MinQueryLength)
		fmt.Fprintf(deps.Stderr, "error: %s\n", infradocs.ErrorMessage(err))
		return err
	}

	results, err := deps.Search.Search(deps.Ctx, c.Query)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", infradocs.ErrorMessage(err))
		return err
	}

	if c.JSON {
		if results == nil {
			results = []*infradocs.SearchResult{}
		}
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Results []*infradocs.SearchResult `json:"results"`
		}{results})
	}

	if len(results) == 0 {
		fmt.Fprintf(deps.Stdout, "No results found for %q.\n", c.Query)
		return nil
	}

	fmt.Fprint(deps.Stdout, infradocs.FormatResults(results))
	return nil
}
