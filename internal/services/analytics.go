package services

import (
	"sort"

	"github.com/studentcollab/backend/internal/models"
	"github.com/studentcollab/backend/pkg/response"
	"gorm.io/gorm"
)

type AnalyticsService struct {
	db *gorm.DB
}

func NewAnalyticsService(db *gorm.DB) *AnalyticsService {
	return &AnalyticsService{db: db}
}

// StatusDistribution counts a board's tasks per column. The three buckets
// always sum to TotalTasks.
type StatusDistribution struct {
	Todo       int `json:"todo"`
	InProgress int `json:"in_progress"`
	Done       int `json:"done"`
	TotalTasks int `json:"total_tasks"`
}

// ContributionEntry is one row of the completed-work ranking.
type ContributionEntry struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Done     int    `json:"done"`
}

// ProjectAnalytics is the full analytics payload for one project.
type ProjectAnalytics struct {
	Distribution  StatusDistribution  `json:"distribution"`
	Contributions []ContributionEntry `json:"contributions"`
}

// BuildDistribution tallies task statuses into the three board columns.
func BuildDistribution(tasks []models.Task) StatusDistribution {
	var dist StatusDistribution
	for _, t := range tasks {
		switch t.Status {
		case models.TaskStatusTodo:
			dist.Todo++
		case models.TaskStatusInProgress:
			dist.InProgress++
		case models.TaskStatusDone:
			dist.Done++
		}
		dist.TotalTasks++
	}
	return dist
}

// BuildContributions ranks users by completed task count, highest first.
// Unassigned DONE tasks are excluded. Ties break by user ID for a stable
// ordering.
func BuildContributions(tasks []models.Task) []ContributionEntry {
	counts := make(map[uint]*ContributionEntry)
	for _, t := range tasks {
		if t.Status != models.TaskStatusDone || t.AssigneeID == nil {
			continue
		}
		entry, ok := counts[*t.AssigneeID]
		if !ok {
			entry = &ContributionEntry{UserID: *t.AssigneeID}
			if t.Assignee != nil {
				entry.Username = t.Assignee.Username
			}
			counts[*t.AssigneeID] = entry
		}
		entry.Done++
	}

	ranking := make([]ContributionEntry, 0, len(counts))
	for _, entry := range counts {
		ranking = append(ranking, *entry)
	}
	sort.Slice(ranking, func(i, j int) bool {
		if ranking[i].Done != ranking[j].Done {
			return ranking[i].Done > ranking[j].Done
		}
		return ranking[i].UserID < ranking[j].UserID
	})
	return ranking
}

// ForProject computes a project's analytics. The caller must be the owner or
// an accepted member.
func (s *AnalyticsService) ForProject(projectID, userID uint) (*ProjectAnalytics, error) {
	project, err := findProject(s.db, projectID)
	if err != nil {
		return nil, err
	}
	if !isOwnerOrMember(s.db, project, userID) {
		return nil, response.NewForbidden("you are not a member of this project")
	}

	var tasks []models.Task
	if err := s.db.Preload("Assignee").
		Where("project_id = ?", projectID).
		Find(&tasks).Error; err != nil {
		return nil, err
	}

	return &ProjectAnalytics{
		Distribution:  BuildDistribution(tasks),
		Contributions: BuildContributions(tasks),
	}, nil
}
