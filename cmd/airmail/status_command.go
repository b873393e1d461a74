package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"airmail/internal/episodes"
	"airmail/internal/logging"
	"airmail/internal/state"
	"airmail/internal/tvmaze"
)

// newStatusCommand shows the persisted notified-state alongside the live
// schedule from TVMaze. Purely informational; nothing is sent or persisted.
func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show notified state and the current episode schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			states := state.NewStore(cfg.Paths.StateDir, logging.NewNop())

			rec, haveAired, err := states.LoadAired()
			if err != nil {
				return fmt.Errorf("read aired state: %w", err)
			}
			if haveAired {
				fmt.Fprintf(out, "Last notified episode: S%dE%d %q (aired %s)\n",
					rec.Season, rec.Number, rec.Name, rec.AirDate)
			} else {
				fmt.Fprintln(out, "Last notified episode: none")
			}

			ids, haveUpcoming, err := states.LoadUpcoming()
			if err != nil {
				return fmt.Errorf("read upcoming state: %w", err)
			}
			if haveUpcoming && len(ids) > 0 {
				fmt.Fprintf(out, "Last notified upcoming ids: %v\n", ids)
			} else {
				fmt.Fprintln(out, "Last notified upcoming ids: none")
			}

			source, err := tvmaze.New(cfg.TVMaze.BaseURL,
				tvmaze.WithTimeout(time.Duration(cfg.TVMaze.RequestTimeout)*time.Second))
			if err != nil {
				return err
			}

			listing, err := source.ShowEpisodes(cmd.Context(), cfg.Show.Query)
			if err != nil {
				return fmt.Errorf("fetch episodes: %w", err)
			}

			today := time.Now().Format(time.DateOnly)
			aired, upcoming := episodes.Split(listing.Episodes, today)

			fmt.Fprintf(out, "\nShow: %s (%d episodes listed)\n", listing.ShowName, len(listing.Episodes))
			if latest, ok := episodes.Latest(aired); ok {
				fmt.Fprintf(out, "Latest aired: %s %q (%s)\n", latest.Code(), latest.Name, latest.AirDate)
			} else {
				fmt.Fprintln(out, "Latest aired: none")
			}

			window := episodes.FirstN(upcoming, 5)
			if len(window) == 0 {
				fmt.Fprintln(out, "Upcoming: none scheduled")
				return nil
			}

			rows := make([][]string, 0, len(window))
			for _, ep := range window {
				name := ep.Name
				if name == "" {
					name = "TBA"
				}
				airdate := ep.AirDate
				if airdate == "" {
					airdate = "TBA"
				}
				rows = append(rows, []string{ep.Code(), name, airdate, strconv.Itoa(ep.ID)})
			}
			fmt.Fprintln(out, renderTable([]string{"Episode", "Title", "Airdate", "ID"}, rows))
			return nil
		},
	}
}
