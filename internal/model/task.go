package model

import (
	"errors"
	"strings"
	"time"
)

type Task struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"due_date"`
	Completed   bool      `json:"completed"`
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return errors.New("model: task title is required")
	}
	if t.DueDate.IsZero() {
		return errors.New("model: task due_date is required")
	}
	return nil
}

func (t Task) Overdue(now time.Time) bool {
	return !t.Completed && t.DueDate.Before(now)
}
