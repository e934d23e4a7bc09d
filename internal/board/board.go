package board

import "github.com/existflow/tempo/internal/model"

// Columns is the partition of top-level tasks into the four status buckets.
// Fetch order is preserved within each bucket; the client never re-sorts.
type Columns struct {
	Buckets map[model.Status][]model.Task

	// Unplaced collects tasks whose status is not one of the recognized
	// values. They are surfaced to the caller instead of silently dropped;
	// bucket totals count only recognized statuses.
	Unplaced []model.Task
}

// Partition splits a fetched task list into status columns.
// Subtasks (tasks with a parent) never appear on the board.
func Partition(tasks []model.Task) Columns {
	cols := Columns{Buckets: make(map[model.Status][]model.Task, len(model.Statuses))}
	for _, s := range model.Statuses {
		cols.Buckets[s] = []model.Task{}
	}

	for _, t := range tasks {
		if t.IsSubtask() {
			continue
		}
		if !t.Status.Valid() {
			cols.Unplaced = append(cols.Unplaced, t)
			continue
		}
		cols.Buckets[t.Status] = append(cols.Buckets[t.Status], t)
	}
	return cols
}

// Bucket returns the ordered tasks of one column
func (c Columns) Bucket(s model.Status) []model.Task {
	return c.Buckets[s]
}

// Placed returns the number of tasks placed into recognized buckets
func (c Columns) Placed() int {
	n := 0
	for _, s := range model.Statuses {
		n += len(c.Buckets[s])
	}
	return n
}
