package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/existflow/tempo/internal/api"
	"github.com/existflow/tempo/internal/board"
	"github.com/existflow/tempo/internal/model"
	"github.com/spf13/cobra"
)

var boardCmd = &cobra.Command{
	Use:   "board <project>",
	Short: "Print the task board for a project",
	Long: `Print the status columns of a project's board.

Examples:
  tempo board Atlas
  tempo board proj-atlas`,
	Args: cobra.ExactArgs(1),
	RunE: runBoard,
}

func runBoard(cmd *cobra.Command, args []string) error {
	client, session, err := clientFromConfig()
	if err != nil {
		return err
	}
	if !session.LoggedIn() {
		fmt.Println("Not logged in. Run: tempo login")
		return nil
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

	tasks, err := client.Tasks(ctx, api.ProjectScope(proj.ID))
	if err != nil {
		return fmt.Errorf("failed to load tasks: %w", err)
	}

	cols := board.Partition(tasks)

	fmt.Printf("\n📋 %s (%d tasks)\n", proj.Name, cols.Placed())
	for _, status := range model.Statuses {
		bucket := cols.Bucket(status)
		fmt.Printf("\n%s (%d)\n", status.Label(), len(bucket))
		fmt.Println(strings.Repeat("─", 60))
		if len(bucket) == 0 {
			fmt.Println("  (empty)")
			continue
		}
		for _, t := range bucket {
			printTask(t)
		}
	}

	if len(cols.Unplaced) > 0 {
		fmt.Printf("\n⚠ %d task(s) with unrecognized status:\n", len(cols.Unplaced))
		for _, t := range cols.Unplaced {
			fmt.Printf("  %-8s %-40s status=%q\n", shortID(t.ID), truncateName(t.Title, 40), t.Status)
		}
	}

	fmt.Println()
	return nil
}

func printTask(t model.Task) {
	priority := fmt.Sprintf("P%d", t.Priority)
	switch t.Priority {
	case model.PriorityUrgent:
		priority = "▲ P1"
	case model.PriorityHigh:
		priority = "▲ P2"
	case model.PriorityMedium:
		priority = "  P3"
	case model.PriorityLow:
		priority = "  P4"
	}

	due := ""
	if t.DueDate != nil {
		due = t.DueDate.Format("Jan 2")
	}

	fmt.Printf("  %-8s  %-40s  %-8s  %s\n", shortID(t.ID), truncateName(t.Title, 40), due, priority)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
