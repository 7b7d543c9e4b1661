package classify

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/goalboard/goalboard/internal/entities"
)

var (
	seasonPattern     = regexp.MustCompile(`(?i)season\s*(\d+)`)
	bareNumberPattern = regexp.MustCompile(`^\s*(\d+)\s*$`)
)

// MaxTrackedSeason returns the highest season number referenced in a task's
// checklists. Items matching "season N" count everywhere; inside a checklist
// whose own name mentions seasons, bare numeric items count too. Returns 0
// when no season markers exist.
func MaxTrackedSeason(checklists []entities.Checklist) int {
	max := 0
	for _, checklist := range checklists {
		nameHasSeason := strings.Contains(strings.ToLower(checklist.Name), "season")
		for _, item := range checklist.Items {
			if m := seasonPattern.FindStringSubmatch(item.Text); m != nil {
				if n, err := strconv.Atoi(m[1]); err == nil && n > max {
					max = n
				}
				continue
			}
			if nameHasSeason {
				if m := bareNumberPattern.FindStringSubmatch(item.Text); m != nil {
					if n, err := strconv.Atoi(m[1]); err == nil && n > max {
						max = n
					}
				}
			}
		}
	}
	return max
}
