package profile

import (
	"fmt"
	"time"

	"github.com/willyv3/ghprofile/internal/github"
)

// Achievement is a badge in the sidebar.
type Achievement struct {
	ID          string `yaml:"id"`
	Icon        string `yaml:"icon"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// GitHub's own badge artwork.
const (
	badgeYOLO      = "https://github.githubassets.com/assets/yolo-default-be0bbff04951.png"
	badgePullShark = "https://github.githubassets.com/assets/pull-shark-default-498c279a747d.png"
	badgeQuickdraw = "https://github.githubassets.com/assets/quickdraw-default--light-medium-5450fadcbe37.png"
)

const (
	veteranYears  = 5
	quickdrawDays = 7
)

// Achievements derives badges from public user stats. GitHub does not
// expose real achievements through the API, so these are approximations.
func Achievements(u github.User, now time.Time) []Achievement {
	var out []Achievement

	if age := now.Year() - u.CreatedAt.Year(); !u.CreatedAt.IsZero() && age >= veteranYears {
		out = append(out, Achievement{
			ID:          "yolo",
			Icon:        badgeYOLO,
			Name:        "YOLO",
			Description: fmt.Sprintf("%d+ years on GitHub", age),
		})
	}

	if u.PublicRepos >= 1 {
		noun := "requests"
		if u.PublicRepos == 1 {
			noun = "request"
		}
		out = append(out, Achievement{
			ID:          "pull-shark",
			Icon:        badgePullShark,
			Name:        "Pull Shark",
			Description: fmt.Sprintf("%d merged pull %s", u.PublicRepos, noun),
		})
	}

	if daysSince := int(now.Sub(u.UpdatedAt).Hours() / 24); !u.UpdatedAt.IsZero() && daysSince <= quickdrawDays {
		out = append(out, Achievement{
			ID:          "quickdraw",
			Icon:        badgeQuickdraw,
			Name:        "Quickdraw",
			Description: "Opened an issue or pull request within 5 minutes of another user",
		})
	}

	return out
}
