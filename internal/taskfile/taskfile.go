// Package taskfile reads and writes YAML task lists for import and export.
package taskfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sandeepkv93/taskapi/internal/model"
)

type document struct {
	Tasks []record `yaml:"tasks"`
}

type record struct {
	ID          int64     `yaml:"id,omitempty"`
	Title       string    `yaml:"title"`
	Description string    `yaml:"description,omitempty"`
	DueDate     time.Time `yaml:"due_date"`
	Completed   bool      `yaml:"completed"`
}

// Load parses the taskfile at path. Unknown keys and records that fail
// validation are rejected.
func Load(path string) ([]model.Task, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read taskfile %s: %w", path, err)
	}

	var doc document
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse taskfile %s: %w", path, err)
	}

	tasks := make([]model.Task, 0, len(doc.Tasks))
	for i, rec := range doc.Tasks {
		task := model.Task{
			ID:          rec.ID,
			Title:       rec.Title,
			Description: rec.Description,
			DueDate:     rec.DueDate,
			Completed:   rec.Completed,
		}
		if err := task.Validate(); err != nil {
			return nil, fmt.Errorf("taskfile %s: tasks[%d]: %w", path, i, err)
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

// Save writes tasks to path as a YAML taskfile.
func Save(path string, tasks []model.Task) error {
	doc := document{Tasks: make([]record, 0, len(tasks))}
	for _, task := range tasks {
		doc.Tasks = append(doc.Tasks, record{
			ID:          task.ID,
			Title:       task.Title,
			Description: task.Description,
			DueDate:     task.DueDate,
			Completed:   task.Completed,
		})
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("encode taskfile %s: %w", path, err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("encode taskfile %s: %w", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write taskfile %s: %w", path, err)
	}
	return nil
}
