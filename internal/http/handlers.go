package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/CatalinMihaiIonescu/ndcd-capstone-project/internal/models"
	"github.com/CatalinMihaiIonescu/ndcd-capstone-project/internal/service"

	"github.com/go-chi/chi/v5"
)

type CreateTodoRequest struct {
	Name    string `json:"name"`
	DueDate string `json:"dueDate"`
}

type SetProfileRequest struct {
	Email string `json:"email"`
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, service.ErrTodoNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	a.Log.Error("request failed", "err", err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
}

func (a *App) listTodosHandler(w http.ResponseWriter, r *http.Request) {
	todos, err := a.Todos.List(r.Context(), userID(r))
	if err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": todos})
}

func (a *App) createTodoHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	todo, err := a.Todos.Create(r.Context(), userID(r), req.Name, req.DueDate)
	if err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"item": todo})
}

func (a *App) updateTodoHandler(w http.ResponseWriter, r *http.Request) {
	todoID := chi.URLParam(r, "todoId")

	var upd models.TodoUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	if err := a.Todos.Update(r.Context(), userID(r), todoID, upd); err != nil {
		a.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *App) deleteTodoHandler(w http.ResponseWriter, r *http.Request) {
	if err := a.Todos.Delete(r.Context(), userID(r), chi.URLParam(r, "todoId")); err != nil {
		a.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *App) generateUploadURLHandler(w http.ResponseWriter, r *http.Request) {
	url, err := a.Todos.GenerateUploadURL(r.Context(), userID(r), chi.URLParam(r, "todoId"))
	if err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"uploadUrl": url})
}

func (a *App) getProfileHandler(w http.ResponseWriter, r *http.Request) {
	profile, err := a.Profiles.Get(r.Context(), userID(r))
	if err != nil {
		a.writeError(w, err)
		return
	}
	if profile == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "profile not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"item": profile})
}

func (a *App) setProfileHandler(w http.ResponseWriter, r *http.Request) {
	var req SetProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if req.Email == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "email is required"})
		return
	}

	profile, err := a.Profiles.Set(r.Context(), userID(r), req.Email)
	if err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"item": profile})
}

func (a *App) deleteProfileHandler(w http.ResponseWriter, r *http.Request) {
	if err := a.Profiles.Delete(r.Context(), userID(r)); err != nil {
		a.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
