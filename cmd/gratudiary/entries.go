package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/bytedance/sonic"
	errorvalues "github.com/limbo/gratudiary/internal/error_values"
	"github.com/limbo/gratudiary/internal/service"
	"github.com/limbo/gratudiary/pkg/entity"
	"github.com/spf13/cobra"
)

type entryFlags struct {
	workedWell  []string
	madeHappy   []string
	gratefulFor []string
	mood        int
	moodNote    string
}

func (f *entryFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(&f.workedWell, "worked", "w", nil, "something that worked well (up to 3, repeat the flag)")
	cmd.Flags().StringArrayVarP(&f.madeHappy, "happy", "H", nil, "something that made you happy (up to 3)")
	cmd.Flags().StringArrayVarP(&f.gratefulFor, "grateful", "g", nil, "something you are grateful for (up to 3)")
	cmd.Flags().IntVarP(&f.mood, "mood", "m", 0, "mood from 1 to 5")
	cmd.Flags().StringVarP(&f.moodNote, "note", "n", "", "what is weighing on you (kept for mood 3 or lower)")
	cmd.MarkFlagRequired("mood")
}

func (f *entryFlags) request() *service.EntryRequest {
	return &service.EntryRequest{
		WorkedWell:  f.workedWell,
		MadeHappy:   f.madeHappy,
		GratefulFor: f.gratefulFor,
		Mood:        f.mood,
		MoodNote:    f.moodNote,
	}
}

func newAddCommand(a *app) *cobra.Command {
	var flags entryFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Write today's entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := a.currentUser(cmd.Context())
			if err != nil {
				return err
			}
			if today, err := a.journal.TodayEntry(cmd.Context(), user.ID); err == nil {
				return fmt.Errorf("you already wrote today, use `gratudiary edit %s` to change it", today.ID)
			} else if !errors.Is(err, errorvalues.ErrEntryNotFound) {
				return err
			}
			entry, err := a.journal.AddEntry(cmd.Context(), user.ID, flags.request())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved entry %s.\n", entry.ID)
			return nil
		},
	}
	flags.bind(cmd)
	return cmd
}

func newEditCommand(a *app) *cobra.Command {
	var flags entryFlags
	cmd := &cobra.Command{
		Use:   "edit <entry-id>",
		Short: "Replace the contents of an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := a.currentUser(cmd.Context())
			if err != nil {
				return err
			}
			_, matched, err := a.journal.UpdateEntry(cmd.Context(), user.ID, args[0], flags.request())
			if err != nil {
				return err
			}
			if !matched {
				fmt.Fprintf(cmd.OutOrStdout(), "No entry with id %s, nothing changed.\n", args[0])
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated entry %s.\n", args[0])
			return nil
		},
	}
	flags.bind(cmd)
	return cmd
}

func newListCommand(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show journal entries, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := a.currentUser(cmd.Context())
			if err != nil {
				return err
			}
			entries, err := a.journal.Entries(cmd.Context(), user.ID)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				if entries == nil {
					entries = entity.Entries{}
				}
				return sonic.ConfigDefault.NewEncoder(out).Encode(entries)
			}
			if len(entries) == 0 {
				fmt.Fprintln(out, "No entries yet. Start with `gratudiary add`.")
				return nil
			}
			printEntries(out, entries, a.engine.Location())
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print raw JSON")
	return cmd
}

func printEntries(out io.Writer, entries entity.Entries, loc *time.Location) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\tmood %d\t%s\n", e.Date.In(loc).Format("Mon, Jan 2 2006"), e.Mood, e.ID)
		printItems(tw, "worked well", e.WorkedWell)
		printItems(tw, "made happy", e.MadeHappy)
		printItems(tw, "grateful for", e.GratefulFor)
		if e.MoodNote != "" {
			fmt.Fprintf(tw, "\tnote\t%s\n", e.MoodNote)
		}
	}
	tw.Flush()
}

func printItems(w io.Writer, label string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "\t%s\t%s\n", label, strings.Join(items, "; "))
}

func newStatsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show streaks and a short dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			user, err := a.currentUser(ctx)
			if err != nil {
				return err
			}
			st, err := a.journal.Stats(ctx, user)
			if err != nil {
				return err
			}
			dash, err := a.journal.Dashboard(ctx, user.ID)
			if err != nil {
				return err
			}
			backup, err := a.journal.BackupStatus(ctx, user.ID)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Entries:         %d\n", st.TotalEntries)
			fmt.Fprintf(out, "Current streak:  %d\n", st.CurrentStreak)
			fmt.Fprintf(out, "Longest streak:  %d\n", st.LongestStreak)
			fmt.Fprintf(out, "Member since:    %s\n", st.MemberSince)
			fmt.Fprintf(out, "Consistency:     %d%%\n", dash.Consistency)
			if len(dash.Keywords) > 0 {
				words := make([]string, 0, len(dash.Keywords))
				for _, k := range dash.Keywords {
					words = append(words, fmt.Sprintf("%s (%d)", k.Text, k.Count))
				}
				fmt.Fprintf(out, "Keywords:        %s\n", strings.Join(words, ", "))
			}
			if st.TotalEntries > 0 && backup.NeedsBackup {
				fmt.Fprintln(out, "Backup:          due, run `gratudiary export`")
			}
			return nil
		},
	}
}

func newInsightsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "insights",
		Short: "Summarize recent entries with AI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := a.currentUser(cmd.Context())
			if err != nil {
				return err
			}
			res, err := a.journal.Insights(cmd.Context(), user.ID)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			switch res.Status {
			case entity.InsightsOK:
				fmt.Fprintf(out, "What worked well: %s\n", res.Insights.WorkedWellSummary)
				fmt.Fprintf(out, "Challenges:       %s\n", res.Insights.ChallengesSummary)
			case entity.InsightsEmpty:
				fmt.Fprintln(out, "Write a few entries first.")
			case entity.InsightsUnavailable:
				fmt.Fprintln(out, "Insights are not configured. Set GEMINI_API_KEY to enable them.")
			default:
				fmt.Fprintln(out, "Could not generate insights right now.")
			}
			return nil
		},
	}
}
