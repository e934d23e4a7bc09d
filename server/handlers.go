package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/existflow/tempo/internal/model"
	"github.com/labstack/echo/v4"
)

const userKey = "tempo-user"

// authMiddleware resolves the bearer token to a user or rejects with 401
func (s *Server) authMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		auth := c.Request().Header.Get("Authorization")
		token := strings.TrimPrefix(auth, "Bearer ")
		if token == "" || token == auth {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing token")
		}

		user, ok := s.store.UserForToken(token)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		}

		c.Set(userKey, user)
		c.Set("token", token)
		return next(c)
	}
}

func envelope(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, echo.Map{"data": data})
}

func (s *Server) handleLogin(c echo.Context) error {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil || req.Username == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "username required")
	}

	token, userID := s.store.Login(req.Username)
	return envelope(c, http.StatusOK, echo.Map{"token": token, "user_id": userID})
}

func (s *Server) handleLogout(c echo.Context) error {
	s.store.Logout(c.Get("token").(string))
	return envelope(c, http.StatusOK, echo.Map{"ok": true})
}

func (s *Server) handleMe(c echo.Context) error {
	user := c.Get(userKey).(model.User)
	return envelope(c, http.StatusOK, echo.Map{"user": user})
}

func (s *Server) handleProjects(c echo.Context) error {
	user := c.Get(userKey).(model.User)
	return envelope(c, http.StatusOK, echo.Map{"projects": s.store.ProjectsFor(user.ID)})
}

func (s *Server) handleListEntries(c echo.Context) error {
	projectID := c.QueryParam("project")
	from, err := time.Parse(model.DateFormat, c.QueryParam("from"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid from date")
	}
	to, err := time.Parse(model.DateFormat, c.QueryParam("to"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid to date")
	}

	entries := s.store.EntriesInRange(projectID, from, to)
	if entries == nil {
		entries = []model.TimeEntry{}
	}
	return envelope(c, http.StatusOK, echo.Map{"entries": entries})
}

// entryRequest is the wire shape of entry mutations; dates arrive with day
// granularity
type entryRequest struct {
	ProjectID   string  `json:"project_id"`
	TaskID      string  `json:"task_id"`
	Date        string  `json:"date"`
	Hours       float64 `json:"hours"`
	Description string  `json:"description"`
}

func (r *entryRequest) toEntry() (model.TimeEntry, error) {
	date, err := time.Parse(model.DateFormat, r.Date)
	if err != nil {
		return model.TimeEntry{}, err
	}
	return model.TimeEntry{
		ProjectID:   r.ProjectID,
		TaskID:      r.TaskID,
		Date:        date,
		Hours:       r.Hours,
		Description: r.Description,
	}, nil
}

func (s *Server) handleCreateEntry(c echo.Context) error {
	var req entryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	entry, err := req.toEntry()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid date")
	}
	if entry.ProjectID == "" || entry.Hours < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "project and non-negative hours required")
	}

	created := s.store.CreateEntry(entry)
	return envelope(c, http.StatusOK, echo.Map{"entry": created})
}

func (s *Server) handleUpdateEntry(c echo.Context) error {
	var req entryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	entry, err := req.toEntry()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid date")
	}

	updated, err := s.store.UpdateEntry(c.Param("id"), entry)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return envelope(c, http.StatusOK, echo.Map{"entry": updated})
}

func (s *Server) handleDeleteEntry(c echo.Context) error {
	if err := s.store.DeleteEntry(c.Param("id")); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return envelope(c, http.StatusOK, echo.Map{"ok": true})
}

func (s *Server) handleListTasks(c echo.Context) error {
	projectID := c.QueryParam("project")
	topLevel := c.QueryParam("top-level") == "true"

	tasks := s.store.Tasks(projectID, topLevel)
	if tasks == nil {
		tasks = []model.Task{}
	}
	return envelope(c, http.StatusOK, echo.Map{"tasks": tasks})
}

func (s *Server) handleTaskStatus(c echo.Context) error {
	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	status := model.Status(req.Status)
	if !status.Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown status")
	}

	task, err := s.store.SetTaskStatus(c.Param("id"), status)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return envelope(c, http.StatusOK, echo.Map{"task": task})
}
