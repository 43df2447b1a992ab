package handlers

import (
	"errors"
	"net/http"
	"sort"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mvaldez/projecttracker/internal/display"
	"github.com/mvaldez/projecttracker/internal/services"
	"github.com/mvaldez/projecttracker/internal/store"
	"github.com/mvaldez/projecttracker/pkg/response"
)

type ProjectHandler struct {
	projects *store.ProjectStore
	identity *store.IdentityStore
	activity *services.ActivityService
}

func NewProjectHandler(projects *store.ProjectStore, identity *store.IdentityStore, activity *services.ActivityService) *ProjectHandler {
	return &ProjectHandler{projects: projects, identity: identity, activity: activity}
}

type ProjectListResponse struct {
	Total     int             `json:"total"`
	Items     []store.Project `json:"items"`
	LoadError string          `json:"load_error,omitempty"`
}

// List returns all projects, most recently created first
// GET /api/projects
func (h *ProjectHandler) List(c *gin.Context) {
	projects := h.projects.List()
	sortByIDDesc(projects)

	response.Success(c, ProjectListResponse{
		Total:     len(projects),
		Items:     projects,
		LoadError: h.projects.LoadError(),
	})
}

// GetByID returns a project by id
// GET /api/projects/:id
func (h *ProjectHandler) GetByID(c *gin.Context) {
	project, ok := h.projects.Get(c.Param("id"))
	if !ok {
		response.NotFound(c, "project not found")
		return
	}
	response.Success(c, project)
}

// Create creates a new project, stamping the creator from the acting identity
// POST /api/projects
func (h *ProjectHandler) Create(c *gin.Context) {
	var req store.ProjectInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if user := h.identity.Current(); user != nil {
		if req.CreatorName == "" {
			req.CreatorName = user.Name
		}
		if req.CreatorAvatar == "" {
			req.CreatorAvatar = user.Avatar
		}
	}

	project, err := h.projects.Add(req)
	if err != nil {
		if errors.Is(err, store.ErrMissingField) {
			response.BadRequest(c, err.Error())
			return
		}
		response.ServerError(c, err.Error())
		return
	}

	h.activity.Record("info", "projects", "create", "created project "+project.Title, h.creatorUsername(), c.ClientIP(), gin.H{"project_id": project.ID})
	response.Created(c, project)
}

// Update merges fields into a project; a missing id is a silent no-op
// PUT /api/projects/:id
func (h *ProjectHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var req store.ProjectUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.projects.Update(id, req); err != nil {
		response.ServerError(c, err.Error())
		return
	}

	h.activity.Record("info", "projects", "update", "updated project "+id, h.creatorUsername(), c.ClientIP(), nil)
	response.Success(c, gin.H{"id": id})
}

// Delete removes a project; deleting a missing id is a silent no-op
// DELETE /api/projects/:id
func (h *ProjectHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	if err := h.projects.Delete(id); err != nil {
		response.ServerError(c, err.Error())
		return
	}

	h.activity.Record("info", "projects", "delete", "deleted project "+id, h.creatorUsername(), c.ClientIP(), nil)
	response.Success(c, gin.H{"id": id})
}

// ProjectDisplay bundles the derived display attributes for one project.
type ProjectDisplay struct {
	Icon          string                `json:"icon"`
	Creator       display.Creator       `json:"creator"`
	ProgressColor display.ProgressColor `json:"progress_color"`
	StatusBadge   display.StatusBadge   `json:"status_badge"`
}

// GetDisplay returns the derived display attributes for a project
// GET /api/projects/:id/display
func (h *ProjectHandler) GetDisplay(c *gin.Context) {
	project, ok := h.projects.Get(c.Param("id"))
	if !ok {
		response.NotFound(c, "project not found")
		return
	}

	creator := display.CreatorForID(project.ID)
	if project.CreatorName != "" && project.CreatorAvatar != "" {
		creator = display.Creator{Name: project.CreatorName, Avatar: project.CreatorAvatar}
	}

	response.Success(c, ProjectDisplay{
		Icon:          display.IconForID(project.ID),
		Creator:       creator,
		ProgressColor: display.ColorForProgress(project.Progress),
		StatusBadge:   display.BadgeForStatus(project.Status),
	})
}

// ListCompat serves the plain json-server style list the SPA's dataService
// fetches: a bare array, most recent first
// GET /projects
func (h *ProjectHandler) ListCompat(c *gin.Context) {
	projects := h.projects.List()
	sortByIDDesc(projects)
	c.JSON(http.StatusOK, projects)
}

// CreateCompat accepts a json-server style create and echoes the created
// record
// POST /projects
func (h *ProjectHandler) CreateCompat(c *gin.Context) {
	var req store.ProjectInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, err := h.projects.Add(req)
	if err != nil {
		if errors.Is(err, store.ErrMissingField) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, project)
}

func (h *ProjectHandler) creatorUsername() string {
	if user := h.identity.Current(); user != nil {
		return user.Username
	}
	return ""
}

// sortByIDDesc orders projects most-recently-created first. Ids are
// timestamp-derived numeric strings, so the numeric comparison doubles as a
// recency sort; non-numeric ids fall back to string order.
func sortByIDDesc(projects []store.Project) {
	sort.SliceStable(projects, func(i, j int) bool {
		a, aerr := strconv.ParseInt(projects[i].ID, 10, 64)
		b, berr := strconv.ParseInt(projects[j].ID, 10, 64)
		if aerr == nil && berr == nil {
			return a > b
		}
		return projects[i].ID > projects[j].ID
	})
}
