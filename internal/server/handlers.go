package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/sandeepkv93/taskapi/internal/model"
	"github.com/sandeepkv93/taskapi/internal/storage"
)

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.repo.ListTasks(r.Context())
	if err != nil {
		s.writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	id, ok := s.taskID(w, r)
	if !ok {
		return
	}
	task, err := s.repo.GetTask(r.Context(), id)
	if err != nil {
		s.writeTaskError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var payload model.Task
	if err := decodeJSON(r, &payload); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	if err := payload.Validate(); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	payload.ID = 0
	created, err := s.repo.CreateTask(r.Context(), payload)
	if err != nil {
		s.writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	s.scheduleDue(created)
	w.Header().Set("Location", fmt.Sprintf("/tasks/%d", created.ID))
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	id, ok := s.taskID(w, r)
	if !ok {
		return
	}
	var payload model.Task
	if err := decodeJSON(r, &payload); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	if err := payload.Validate(); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	payload.ID = id
	if err := s.repo.UpdateTask(r.Context(), payload); err != nil {
		s.writeTaskError(w, r, err)
		return
	}
	s.rescheduleDue(payload)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := s.taskID(w, r)
	if !ok {
		return
	}
	deleted, err := s.repo.DeleteTask(r.Context(), id)
	if err != nil {
		s.writeTaskError(w, r, err)
		return
	}
	s.cancelDue(id)
	writeJSON(w, http.StatusOK, deleted)
}

// taskID parses the {id} route variable; a non-integer id is a client
// error, not a missing task.
func (s *Server) taskID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, fmt.Errorf("invalid task id %q", raw))
		return 0, false
	}
	return id, true
}

func (s *Server) writeTaskError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		s.writeError(w, r, http.StatusNotFound, errors.New("task not found"))
		return
	}
	s.writeError(w, r, http.StatusInternalServerError, err)
}
