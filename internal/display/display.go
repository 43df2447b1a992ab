// Package display holds the pure display derivations used by list views:
// deterministic icon and placeholder-creator assignment from a project id,
// progress bar tiers and status badge styles. Everything here is stateless;
// the modulo-indexing rule is load-bearing because clients rely on a given id
// always mapping to the same icon and creator.
package display

import "fmt"

// ProjectIcons is the fixed ordered icon set.
var ProjectIcons = []string{
	"📊", "📈", "📉", "📋", "📝", "🗂️", "📁", "🗃️",
	"📌", "📍", "🔍", "💡", "🎯", "🚀", "⚡", "🔧",
	"🎨", "🖌️", "📐", "📏", "🔬", "🧪", "🔭", "🌐",
}

// CreatorNames is the fixed ordered set of placeholder creators, used only
// when a record lacks explicit creator fields.
var CreatorNames = []string{
	"Alex Johnson", "Sam Williams", "Jordan Smith", "Taylor Brown",
	"Morgan Davis", "Casey Miller", "Riley Wilson", "Avery Moore",
	"Quinn Taylor", "Drew Anderson", "Blake Thomas", "Cameron Jackson",
	"Dakota White", "Emerson Harris", "Parker Martin", "Reese Thompson",
	"Rowan Garcia", "Sage Martinez", "River Robinson", "Skye Clark",
}

// Creator is a placeholder creator identity.
type Creator struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// ProgressColor is the display tier for a progress value.
type ProgressColor struct {
	Tier  string `json:"tier"`
	Class string `json:"class"`
}

// StatusBadge is the style bundle for a status value.
type StatusBadge struct {
	BgColor       string `json:"bgColor"`
	TextColor     string `json:"textColor"`
	DarkBgColor   string `json:"darkBgColor"`
	DarkTextColor string `json:"darkTextColor"`
}

// indexFor maps an identifier to an index via the code point of its first
// character mod size. An absent identifier maps to index 0.
func indexFor(id string, size int) int {
	if id == "" {
		return 0
	}
	runes := []rune(id)
	return int(runes[0]) % size
}

// IconForID returns the icon assigned to the given project id.
func IconForID(id string) string {
	return ProjectIcons[indexFor(id, len(ProjectIcons))]
}

// CreatorForID returns the placeholder creator assigned to the given project
// id.
func CreatorForID(id string) Creator {
	index := indexFor(id, len(CreatorNames))
	return Creator{
		Name:   CreatorNames[index],
		Avatar: fmt.Sprintf("https://i.pravatar.cc/150?img=%d", index+1),
	}
}

// ColorForProgress maps progress to a tier: >=90 success, >=50 info,
// otherwise warning.
func ColorForProgress(progress int) ProgressColor {
	switch {
	case progress >= 90:
		return ProgressColor{Tier: "success", Class: "bg-green-500"}
	case progress >= 50:
		return ProgressColor{Tier: "info", Class: "bg-blue-500"}
	default:
		return ProgressColor{Tier: "warning", Class: "bg-red-500"}
	}
}

// BadgeForStatus returns the style bundle for a status; unrecognized or
// missing statuses get the gray default bundle.
func BadgeForStatus(status string) StatusBadge {
	switch status {
	case "Completed":
		return StatusBadge{"bg-green-100", "text-green-800", "dark:bg-green-800", "dark:text-green-100"}
	case "In Progress":
		return StatusBadge{"bg-blue-100", "text-blue-800", "dark:bg-blue-800", "dark:text-blue-100"}
	case "Stuck":
		return StatusBadge{"bg-red-100", "text-red-800", "dark:bg-red-800", "dark:text-red-100"}
	default:
		return StatusBadge{"bg-gray-100", "text-gray-800", "dark:bg-gray-800", "dark:text-gray-100"}
	}
}
