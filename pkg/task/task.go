package task

import (
	"strings"
	"time"
)

// Task is a single to-do item. Archived tasks keep their Order but it no
// longer participates in the active ordering.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Memo        string     `json:"memo"`
	CreatedAt   Timestamp  `json:"createdAt"`
	CompletedAt *Timestamp `json:"completedAt"`
	IsCompleted bool       `json:"isCompleted"`
	IsDeleted   bool       `json:"isDeleted"`
	IsArchived  bool       `json:"isArchived"`
	Order       int        `json:"order"`
}

func New(id, title, memo string, now time.Time, order int) (*Task, error) {
	title, err := ValidateTitle(title)
	if err != nil {
		return nil, err
	}
	return &Task{
		ID:        id,
		Title:     title,
		Memo:      strings.TrimSpace(memo),
		CreatedAt: Timestamp{Time: now},
		Order:     order,
	}, nil
}

// Fields is a partial update. Nil fields are left alone.
type Fields struct {
	Title *string
	Memo  *string
}

// Apply validates and applies f to t. On error t is unchanged.
func (t *Task) Apply(f Fields) error {
	title := t.Title
	if f.Title != nil {
		v, err := ValidateTitle(*f.Title)
		if err != nil {
			return err
		}
		title = v
	}
	t.Title = title
	if f.Memo != nil {
		t.Memo = strings.TrimSpace(*f.Memo)
	}
	return nil
}

// SetCompleted keeps CompletedAt and IsCompleted in step.
func (t *Task) SetCompleted(done bool, now time.Time) {
	t.IsCompleted = done
	if done {
		t.CompletedAt = &Timestamp{Time: now}
	} else {
		t.CompletedAt = nil
	}
}

func (t *Task) Active() bool {
	return !t.IsArchived
}

// Clone returns a deep copy.
func (t *Task) Clone() *Task {
	if t == nil {
		return nil
	}
	c := *t
	if t.CompletedAt != nil {
		ts := *t.CompletedAt
		c.CompletedAt = &ts
	}
	return &c
}

func CloneAll(tasks []*Task) []*Task {
	out := make([]*Task, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.Clone())
	}
	return out
}

func Find(tasks []*Task, id string) *Task {
	for _, t := range tasks {
		if t.ID == id {
			return t
		}
	}
	return nil
}
