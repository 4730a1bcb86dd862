package models

type Badge string

const (
	BadgeTargetMatch Badge = "Target Match"
	BadgeFoundation  Badge = "Review/Foundation"
)

type SkillGap struct {
	SkillName   string `json:"skill_name"`
	TargetLevel string `json:"target_level"`
}

// UserProfile is supplied per request; nothing about it is stored.
type UserProfile struct {
	Name             string     `json:"name"`
	ActivePath       string     `json:"active_path"`
	MissingSkills    []SkillGap `json:"missing_skills"`
	CompletedCourses []int      `json:"completed_courses"`
}

type RecommendationItem struct {
	Skill        string   `json:"skill"`
	CurrentLevel string   `json:"current_level"`
	CourseToTake string   `json:"course_to_take"`
	Chapters     []string `json:"chapters"`
	MatchScore   float64  `json:"match_score"`
	Badge        Badge    `json:"badge"`

	CourseID int `json:"course_id"`
}
