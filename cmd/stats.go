package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathtutor/internal/config"
	"github.com/abhisek/mathtutor/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats [username]",
	Short: "Show a user's session history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg := config.FromEnv()

		st, err := store.Open(ctx, store.Driver(cfg.DBDriver), cfg.DBDSN)
		if err != nil {
			return err
		}
		defer st.Close()

		u, err := st.Users().ByUsername(ctx, args[0])
		if err != nil {
			return err
		}
		recs, err := st.Sessions().ListByUser(ctx, u.ID)
		if err != nil {
			return err
		}

		events, err := st.CountEvents(ctx)
		if err != nil {
			return err
		}

		fmt.Printf("%s — total score %d\n", u.Username, u.TotalScore)
		for _, r := range recs {
			status := "open"
			if r.EndTime != nil {
				status = "closed"
			}
			fmt.Printf("  %-12s attempted=%d solved=%d hints=%d score=%d (%s)\n",
				r.Subject, r.ProblemsAttempted, r.ProblemsSolved, r.HintsUsed, r.Score, status)
		}
		fmt.Printf("completion calls logged: %d\n", events)
		return nil
	},
}
