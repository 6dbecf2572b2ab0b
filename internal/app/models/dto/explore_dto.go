package dto

// Explore search types.
const (
	SearchTypeStudio  = "studio"
	SearchTypeCourse  = "course"
	SearchTypeTeacher = "teacher"
)

// ExploreRequest represents the explore query parameters.
type ExploreRequest struct {
	Type  string   `form:"type,default=studio"`
	Query string   `form:"q"`
	Tags  []string `form:"tags"`
}

// ExploreStudioResponse is the studio branch of the explore result.
type ExploreStudioResponse struct {
	Type    string       `json:"type"`
	Results []StudioCard `json:"results"`
}

// ExploreCourseResponse is the course branch of the explore result.
type ExploreCourseResponse struct {
	Type    string       `json:"type"`
	Results []LessonCard `json:"results"`
}

// ExploreTeacherResponse is the teacher branch of the explore result.
type ExploreTeacherResponse struct {
	Type    string        `json:"type"`
	Results []TeacherCard `json:"results"`
}
