package sections

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type kindID uint8

const (
	headerID kindID = iota
	summaryID
	skillsID
	experienceID
	educationID
	projectsID
	certificationsID
	achievementsID
	languagesID
	interestsID
	volunteerID
	publicationsID
	referencesID
	otherID
)

var kindNames = map[kindID]string{
	headerID:         "header",
	summaryID:        "summary",
	skillsID:         "skills",
	experienceID:     "experience",
	educationID:      "education",
	projectsID:       "projects",
	certificationsID: "certifications",
	achievementsID:   "achievements",
	languagesID:      "languages",
	interestsID:      "interests",
	volunteerID:      "volunteer",
	publicationsID:   "publications",
	referencesID:     "references",
}

// Kind identifies a résumé section. The zero value is Header.
// Kinds are comparable and can be used as map keys.
type Kind struct {
	id   kindID
	name string
}

var (
	Header         = Kind{id: headerID}
	Summary        = Kind{id: summaryID}
	Skills         = Kind{id: skillsID}
	Experience     = Kind{id: experienceID}
	Education      = Kind{id: educationID}
	Projects       = Kind{id: projectsID}
	Certifications = Kind{id: certificationsID}
	Achievements   = Kind{id: achievementsID}
	Languages      = Kind{id: languagesID}
	Interests      = Kind{id: interestsID}
	Volunteer      = Kind{id: volunteerID}
	Publications   = Kind{id: publicationsID}
	References     = Kind{id: referencesID}
)

// Standard returns the five sections every résumé is scored on, in scoring order.
func Standard() []Kind {
	return []Kind{Summary, Skills, Experience, Education, Projects}
}

// Other builds a kind for a section name outside the canonical set.
// Canonical names resolve to their predefined kind.
func Other(name string) Kind {
	return Parse(name)
}

// Parse resolves a section name to its kind. Unknown names become Other kinds.
func Parse(name string) Kind {
	name = strings.ToLower(strings.TrimSpace(name))
	for id, known := range kindNames {
		if known == name {
			return Kind{id: id}
		}
	}
	return Kind{id: otherID, name: name}
}

func (k Kind) String() string {
	if k.id == otherID {
		return k.name
	}
	return kindNames[k.id]
}

// Title returns the display heading for the section, e.g. "Experience".
func (k Kind) Title() string {
	return cases.Title(language.English).String(k.String())
}

// IsOther reports whether the kind is outside the canonical set.
func (k Kind) IsOther() bool { return k.id == otherID }

// IsStandard reports whether the kind is one of the five scored sections.
func (k Kind) IsStandard() bool {
	switch k.id {
	case summaryID, skillsID, experienceID, educationID, projectsID:
		return true
	}
	return false
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	name := strings.TrimSpace(string(text))
	if name == "" {
		return fmt.Errorf("empty section name")
	}
	*k = Parse(name)
	return nil
}
