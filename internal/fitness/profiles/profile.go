package profiles

import "time"

const (
	ExperienceBeginner     = "beginner"
	ExperienceIntermediate = "intermediate"
	ExperienceAdvanced     = "advanced"
)

func ValidExperienceLevel(level string) bool {
	switch level {
	case ExperienceBeginner, ExperienceIntermediate, ExperienceAdvanced:
		return true
	}
	return false
}

type Profile struct {
	UserID          string    `json:"-"`
	ExperienceLevel string    `json:"experienceLevel"`
	HeightCm        *float64  `json:"heightCm,omitempty"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
