package services

import (
	"fmt"
	"math"
	"time"

	"github.com/mvaldez/projecttracker/internal/store"
)

type DashboardService struct {
	projects  *store.ProjectStore
	deadlines *DeadlineService
}

func NewDashboardService(projects *store.ProjectStore, deadlines *DeadlineService) *DashboardService {
	return &DashboardService{projects: projects, deadlines: deadlines}
}

type DashboardStats struct {
	TotalProjects      int    `json:"total_projects"`
	CompletedProjects  int    `json:"completed_projects"`
	InProgressProjects int    `json:"in_progress_projects"`
	PendingProjects    int    `json:"pending_projects"`
	CompletionRate     string `json:"completion_rate"`
}

type ProjectDeadline struct {
	ProjectID        string `json:"project_id"`
	Title            string `json:"title"`
	DueDate          string `json:"due_date"`
	BusinessDaysLeft int    `json:"business_days_left"`
	Overdue          bool   `json:"overdue"`
}

type DashboardResponse struct {
	Stats     DashboardStats    `json:"stats"`
	Deadlines []ProjectDeadline `json:"deadlines"`
	LoadError string            `json:"load_error,omitempty"`
}

// GetStats summarizes the current collection. Pending counts everything that
// is neither completed nor in progress, so Stuck projects land there too.
func (s *DashboardService) GetStats() *DashboardResponse {
	projects := s.projects.List()

	var stats DashboardStats
	stats.TotalProjects = len(projects)
	for _, p := range projects {
		switch p.Status {
		case store.StatusCompleted:
			stats.CompletedProjects++
		case store.StatusInProgress:
			stats.InProgressProjects++
		}
	}
	stats.PendingProjects = stats.TotalProjects - stats.CompletedProjects - stats.InProgressProjects
	stats.CompletionRate = completionRate(stats.CompletedProjects, stats.TotalProjects)

	deadlines := make([]ProjectDeadline, 0, len(projects))
	now := time.Now()
	for _, p := range projects {
		daysLeft, overdue, err := s.deadlines.BusinessDaysUntil(now, p.DueDate)
		if err != nil {
			continue
		}
		deadlines = append(deadlines, ProjectDeadline{
			ProjectID:        p.ID,
			Title:            p.Title,
			DueDate:          p.DueDate,
			BusinessDaysLeft: daysLeft,
			Overdue:          overdue,
		})
	}

	return &DashboardResponse{
		Stats:     stats,
		Deadlines: deadlines,
		LoadError: s.projects.LoadError(),
	}
}

func completionRate(completed, total int) string {
	if total == 0 {
		return "0%"
	}
	rate := float64(completed) / float64(total) * 100
	return fmt.Sprintf("%d%%", int(math.Round(rate)))
}
