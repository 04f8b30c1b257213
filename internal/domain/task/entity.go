package task

import (
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/domain/record"
)

// Wire column names of the task table.
const (
	ColTaskID       = "Task ID"
	ColParentTask   = "Parent Task (from HR)"
	ColAssignedTo   = "Assigned To"
	ColEmail        = "Email"
	ColDepartment   = "Department"
	ColAssignedBy   = "Assigned By"
	ColAssignedDate = "Assigned Date"
	ColDeadline     = "Deadline"
	ColTitle        = "Task Title"
	ColDescription  = "Description"
	ColProgress     = "Progress (%)"
	ColStatus       = "Status"
	ColComments     = "Comments"
)

// Columns lists the wire columns in sheet order.
var Columns = []string{
	ColTaskID, ColParentTask, ColAssignedTo, ColEmail, ColDepartment, ColAssignedBy, ColAssignedDate,
	ColDeadline, ColTitle, ColDescription, ColProgress, ColStatus, ColComments,
}

type Status string

const (
	StatusAssigned   Status = "Assigned"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
)

type AssignedBy string

const (
	AssignedByHR       AssignedBy = "HR"
	AssignedByTeamLead AssignedBy = "Team Lead"
)

const (
	MinProgress = 0
	MaxProgress = 100
)

type Task struct {
	ID              string     `json:"task_id"`
	ParentTaskTitle string     `json:"parent_task,omitempty"`
	AssignedTo      string     `json:"assigned_to"`
	Email           string     `json:"email"`
	Department      string     `json:"department"`
	AssignedBy      AssignedBy `json:"assigned_by"`
	AssignedDate    string     `json:"assigned_date"`
	Deadline        string     `json:"deadline,omitempty"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Progress        int        `json:"progress"`
	Status          Status     `json:"status"`
	Comments        string     `json:"comments,omitempty"`
}

// StatusForProgress derives the lifecycle status from a validated progress value.
func StatusForProgress(progress int) Status {
	switch {
	case progress >= MaxProgress:
		return StatusCompleted
	case progress <= MinProgress:
		return StatusAssigned
	default:
		return StatusInProgress
	}
}

// ValidProgress reports whether progress lies in [0,100].
func ValidProgress(progress int) bool {
	return progress >= MinProgress && progress <= MaxProgress
}

func (t Task) IsCompleted() bool {
	return t.Status == StatusCompleted
}

func (t Task) Row() record.Row {
	return record.Row{
		ColTaskID:       t.ID,
		ColParentTask:   t.ParentTaskTitle,
		ColAssignedTo:   t.AssignedTo,
		ColEmail:        t.Email,
		ColDepartment:   t.Department,
		ColAssignedBy:   string(t.AssignedBy),
		ColAssignedDate: t.AssignedDate,
		ColDeadline:     t.Deadline,
		ColTitle:        t.Title,
		ColDescription:  t.Description,
		ColProgress:     record.FormatInt(t.Progress),
		ColStatus:       string(t.Status),
		ColComments:     t.Comments,
	}
}

// FromRow parses a wire row. Progress is read defensively and clamped, and
// the status is re-derived from it so stale labels never leak out.
func FromRow(r record.Row) Task {
	progress := record.ParseInt(r.Get(ColProgress))
	if progress < MinProgress {
		progress = MinProgress
	}
	if progress > MaxProgress {
		progress = MaxProgress
	}

	return Task{
		ID:              r.Get(ColTaskID),
		ParentTaskTitle: r.Get(ColParentTask),
		AssignedTo:      r.Get(ColAssignedTo),
		Email:           r.Get(ColEmail),
		Department:      r.Get(ColDepartment),
		AssignedBy:      AssignedBy(r.Get(ColAssignedBy)),
		AssignedDate:    r.Get(ColAssignedDate),
		Deadline:        r.Get(ColDeadline),
		Title:           r.Get(ColTitle),
		Description:     r.Get(ColDescription),
		Progress:        progress,
		Status:          StatusForProgress(progress),
		Comments:        r.Get(ColComments),
	}
}

// ProgressUpdate is the partial write applied to one task.
type ProgressUpdate struct {
	Progress int
	Status   Status
	Comments string
}

func NewProgressUpdate(progress int, comments string) ProgressUpdate {
	return ProgressUpdate{
		Progress: progress,
		Status:   StatusForProgress(progress),
		Comments: comments,
	}
}

// Row renders the patch body; Comments is only sent when present.
func (u ProgressUpdate) Row() record.Row {
	row := record.Row{
		ColProgress: record.FormatInt(u.Progress),
		ColStatus:   string(u.Status),
	}
	if u.Comments != "" {
		row[ColComments] = u.Comments
	}
	return row
}

// Apply returns t with the update applied.
func (u ProgressUpdate) Apply(t Task) Task {
	t.Progress = u.Progress
	t.Status = u.Status
	if u.Comments != "" {
		t.Comments = u.Comments
	}
	return t
}

// FindByID returns the task with the given id.
func FindByID(tasks []Task, id string) (Task, bool) {
	for _, t := range tasks {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}
