package main

import (
	"fmt"

	"github.com/aliikhatami94/infradocs"
)

// Run executes the tree command.
func (c *TreeCmd) Run(deps *Dependencies) error {
	var all []*infradocs.DocsStructure

	if c.Package == "" {
		var err error
		if all, err = deps.Structures.BuildAllStructures(deps.Ctx); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", infradocs.ErrorMessage(err))
			return err
		}
	} else {
		p, err := infradocs.ParsePackage(c.Package)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", infradocs.ErrorMessage(err))
			return err
		}
		src, err := deps.Catalog.Lookup(p)
		if err != nil {
			return err
		}
		st, err := deps.Structures.BuildStructure(deps.Ctx, src)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", infradocs.ErrorMessage(err))
			return err
		}
		all = append(all, st)
	}

	for i, st := range all {
		if i > 0 {
			fmt.Fprintln(deps.Stdout)
		}
		if len(st.Items) == 0 {
			fmt.Fprintf(deps.Stdout, "%s\n  (no documents)\n", st.Package)
			continue
		}
		fmt.Fprint(deps.Stdout, infradocs.FormatStructure(st))
	}
	return nil
}
