package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func (r *RootCommand) newMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			versions, err := r.app.Migrate()
			if err != nil {
				return r.handler.Handle("migrate", err, nil)
			}

			if len(versions) == 0 {
				fmt.Fprintln(r.out, "No migrations applied")
				return nil
			}
			fmt.Fprintf(r.out, "Schema at version %d\n", versions[len(versions)-1])
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "List the schema migrations and whether they are applied",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			known, applied, err := r.app.MigrationStatus()
			if err != nil {
				return r.handler.Handle("read migration status", err, nil)
			}

			done := make(map[int]bool, len(applied))
			for _, v := range applied {
				done[v] = true
			}

			w := tabwriter.NewWriter(r.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "VERSION\tNAME\tSTATUS")
			for _, m := range known {
				status := "pending"
				if done[m.Version] {
					status = "applied"
				}
				fmt.Fprintf(w, "%d\t%s\t%s\n", m.Version, m.Name, status)
			}
			return w.Flush()
		},
	})

	return cmd
}
