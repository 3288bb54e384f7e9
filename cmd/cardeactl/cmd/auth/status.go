package auth

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/gauciv/cardea/internal/app"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display authentication status",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := app.MustFromContext(cmd.Context())
		sess, err := a.Session()
		if err != nil {
			return err
		}

		id := sess.Current(cmd.Context())
		if id == nil {
			return fmt.Errorf("not logged in")
		}

		pterm.DefaultSection.Println("Authentication Status")
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintf(w, "User:\t%s\n", id.DisplayLabel)
		fmt.Fprintf(w, "Subject:\t%s\n", id.SubjectID)
		fmt.Fprintf(w, "Provider:\t%s\n", id.Provider)
		fmt.Fprintf(w, "Roles:\t%s\n", strings.Join(id.Roles, ", "))
		if len(id.Attributes) > 0 {
			keys := make([]string, 0, len(id.Attributes))
			for k := range id.Attributes {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Fprintf(w, "%s:\t%s\n", k, id.Attributes[k])
			}
		}
		return w.Flush()
	},
}
