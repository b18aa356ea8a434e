package services

import (
	"sort"

	"github.com/studentcollab/backend/internal/models"
	"github.com/studentcollab/backend/pkg/response"
	"gorm.io/gorm"
)

type MatchmakingService struct {
	db *gorm.DB
}

func NewMatchmakingService(db *gorm.DB) *MatchmakingService {
	return &MatchmakingService{db: db}
}

// RankedProject is a project annotated with its skill-overlap score for the
// requesting user.
type RankedProject struct {
	models.Project
	MatchCount int `json:"match_count"`
}

// MatchScore counts the tags shared between a project's required skills and
// the user's skill set.
func MatchScore(required map[string]struct{}, userSkills map[string]struct{}) int {
	count := 0
	for tag := range required {
		if _, ok := userSkills[tag]; ok {
			count++
		}
	}
	return count
}

// RankProjects orders projects by skill overlap with userSkills, descending,
// ties broken by most recent creation first. With no skills the input order
// (already newest-first) is preserved with zero scores.
func RankProjects(projects []models.Project, userSkills map[string]struct{}) []RankedProject {
	ranked := make([]RankedProject, len(projects))
	for i, p := range projects {
		ranked[i] = RankedProject{
			Project:    p,
			MatchCount: MatchScore(p.RequiredSkillSet(), userSkills),
		}
	}

	if len(userSkills) == 0 {
		return ranked
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].MatchCount != ranked[j].MatchCount {
			return ranked[i].MatchCount > ranked[j].MatchCount
		}
		return ranked[i].CreatedAt.After(ranked[j].CreatedAt)
	})

	return ranked
}

// FindProjects returns all projects ranked for the given user. userID 0 means
// anonymous; anonymous users and users without skill tags get the default
// newest-first ordering.
func (s *MatchmakingService) FindProjects(userID uint) ([]RankedProject, error) {
	var projects []models.Project
	if err := s.db.Preload("Owner").Order("created_at DESC").Find(&projects).Error; err != nil {
		return nil, err
	}

	var skills map[string]struct{}
	if userID != 0 {
		var user models.User
		if err := s.db.First(&user, userID).Error; err != nil {
			return nil, response.NewNotFound("user not found")
		}
		skills = user.SkillSet()
	}

	return RankProjects(projects, skills), nil
}
