package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/existflow/tempo/internal/api"
	"github.com/existflow/tempo/internal/model"
	"github.com/existflow/tempo/internal/timesheet"
	"github.com/spf13/cobra"
)

var weekCmd = &cobra.Command{
	Use:   "week",
	Short: "Print the weekly timesheet grid",
	Long: `Print the weekly hours grid for every project.

Examples:
  tempo week
  tempo week --date 2024-06-03`,
	RunE: runWeek,
}

var weekDate string

func init() {
	weekCmd.Flags().StringVar(&weekDate, "date", "", "Any date inside the week to show (YYYY-MM-DD)")
}

// resolveProject matches a project by id or case-insensitive name
func resolveProject(projects []model.Project, nameOrID string) (model.Project, error) {
	for _, p := range projects {
		if p.ID == nameOrID || strings.EqualFold(p.Name, nameOrID) {
			return p, nil
		}
	}
	return model.Project{}, fmt.Errorf("unknown project %q", nameOrID)
}

func anchorDate() (time.Time, error) {
	if weekDate == "" {
		return time.Now(), nil
	}
	return time.Parse(model.DateFormat, weekDate)
}

func runWeek(cmd *cobra.Command, args []string) error {
	client, session, err := clientFromConfig()
	if err != nil {
		return err
	}
	if !session.LoggedIn() {
		fmt.Println("Not logged in. Run: tempo login")
		return nil
	}

	anchor, err := anchorDate()
	if err != nil {
		return fmt.Errorf("invalid --date: %w", err)
	}
	week := timesheet.WeekOf(anchor, loadedConfig().StartOfWeek())

	ctx := context.Background()
	projects, err := client.Projects(ctx)
	if err != nil {
		return fmt.Errorf("failed to load projects: %w", err)
	}

	// The grid is per-view-scope; aggregate each project's fetch into one store
	store := timesheet.NewEntryStore()
	var all []model.TimeEntry
	for _, p := range projects {
		entries, err := client.TimeEntries(ctx, api.RangeScope(p.ID, week.Start, week.End()))
		if err != nil {
			return fmt.Errorf("failed to load entries for %s: %w", p.Name, err)
		}
		all = append(all, entries...)
	}
	store.Load(all)

	grid := timesheet.NewGrid(week, projects, store)
	days := week.Days()

	fmt.Printf("\n🗓  %s\n", week.Label())
	fmt.Println(strings.Repeat("─", 14+8*8))

	fmt.Printf("%-14s", "")
	for _, d := range days {
		fmt.Printf("%8s", d.Format("Mon 02"))
	}
	fmt.Printf("%8s\n", "Total")

	for _, p := range projects {
		fmt.Printf("%-14s", truncateName(p.Name, 13))
		for _, d := range days {
			fmt.Printf("%8s", timesheet.FormatHours(grid.HoursAt(p.ID, d)))
		}
		fmt.Printf("%8s\n", timesheet.FormatHours(grid.ProjectTotal(p.ID)))
	}

	fmt.Println(strings.Repeat("─", 14+8*8))
	fmt.Printf("%-14s", "Total")
	for _, d := range days {
		fmt.Printf("%8s", timesheet.FormatHours(grid.DailyTotal(d)))
	}
	fmt.Printf("%8s\n\n", timesheet.FormatHours(grid.WeekTotal()))

	return nil
}

func truncateName(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
