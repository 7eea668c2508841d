package scoring

import (
	"github.com/spigell/resumelyze/internal/sections"
	"github.com/spigell/resumelyze/internal/semantic"
)

var sectionWeights = []struct {
	kind   sections.Kind
	weight float64
}{
	{sections.Skills, 0.30},
	{sections.Experience, 0.30},
	{sections.Summary, 0.15},
	{sections.Projects, 0.15},
	{sections.Education, 0.10},
}

// JDMatch blends whole-document similarity with the weighted similarity of
// the sections present, on a 0-100 scale. Weights are renormalised over the
// sections found; with none, the whole-document similarity is used twice.
func JDMatch(c semantic.Comparison) int {
	var weighted, total float64
	for _, sw := range sectionWeights {
		sim, ok := c.Sections[sw.kind]
		if !ok {
			continue
		}
		weighted += sim * sw.weight
		total += sw.weight
	}

	sectionPart := c.Full
	if total > 0 {
		sectionPart = weighted / total
	}

	return toScore((0.5*c.Full+0.5*sectionPart)*100, 0, 100)
}
