package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/existflow/tempo/internal/api"
	"github.com/existflow/tempo/internal/model"
	"github.com/existflow/tempo/internal/timesheet"
	"github.com/spf13/cobra"
)

var logHoursCmd = &cobra.Command{
	Use:   "log <project> <hours>",
	Short: "Set logged hours for a project on a day",
	Long: `Set the hours cell for a (project, day) pair. Setting 0 clears the cell.

Examples:
  tempo log Atlas 2.5
  tempo log Atlas 0 --date 2024-06-03
  tempo log Atlas 1.5 --note "code review"`,
	Args: cobra.ExactArgs(2),
	RunE: runLogHours,
}

var (
	logDate string
	logNote string
)

func init() {
	logHoursCmd.Flags().StringVar(&logDate, "date", "", "Day to log against (YYYY-MM-DD, default today)")
	logHoursCmd.Flags().StringVar(&logNote, "note", "", "Entry description")
}

func runLogHours(cmd *cobra.Command, args []string) error {
	client, session, err := clientFromConfig()
	if err != nil {
		return err
	}
	if !session.LoggedIn() {
		fmt.Println("Not logged in. Run: tempo login")
		return nil
	}

	// Reject bad input before any request is issued
	hours, err := timesheet.ParseHours(args[1])
	if err != nil {
		return err
	}

	day := time.Now()
	if logDate != "" {
		day, err = time.Parse(model.DateFormat, logDate)
		if err != nil {
			return fmt.Errorf("invalid --date: %w", err)
		}
	}

	ctx := context.Background()
	projects, err := client.Projects(ctx)
	if err != nil {
		return fmt.Errorf("failed to load projects: %w", err)
	}
	proj, err := resolveProject(projects, args[0])
	if err != nil {
		return err
	}

	// Fetch the surrounding week so the edit sees the existing cell entry
	week := timesheet.WeekOf(day, loadedConfig().StartOfWeek())
	entries, err := client.TimeEntries(ctx, api.RangeScope(proj.ID, week.Start, week.End()))
	if err != nil {
		return fmt.Errorf("failed to load entries: %w", err)
	}
	store := timesheet.NewEntryStore()
	store.Load(entries)

	op, entry := timesheet.PlanEdit(store, proj.ID, day, hours)
	if logNote != "" {
		entry.Description = logNote
	}

	switch op {
	case timesheet.EditNone:
		fmt.Println("No change.")
		return nil
	case timesheet.EditCreate:
		err = client.CreateEntry(ctx, entry)
	case timesheet.EditUpdate:
		err = client.UpdateEntry(ctx, entry)
	case timesheet.EditDelete:
		err = client.DeleteEntry(ctx, entry.ID)
	}
	if err != nil {
		return err
	}

	if op == timesheet.EditDelete {
		fmt.Printf("✅ Cleared %s on %s\n", proj.Name, model.DayKey(model.DayOf(day)))
	} else {
		fmt.Printf("✅ Logged %s hours on %s for %s\n", timesheet.FormatHours(hours), model.DayKey(model.DayOf(day)), proj.Name)
	}
	return nil
}
