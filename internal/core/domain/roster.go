package domain

// Roster is the static assignee-to-level table. It is read-only for the
// lifetime of the process; headcount per level is the size of its name set.
type Roster struct {
	levels map[SupportLevel][]string
	byName map[string]SupportLevel
}

// NewRoster builds a roster from per-level name lists. A name appearing in
// more than one level resolves to the first level that lists it, in
// Level 1, Level 2, Level 3 order.
func NewRoster(levelOne, levelTwo, levelThree []string) *Roster {
	r := &Roster{
		levels: map[SupportLevel][]string{
			LevelOne:   levelOne,
			LevelTwo:   levelTwo,
			LevelThree: levelThree,
		},
		byName: make(map[string]SupportLevel, len(levelOne)+len(levelTwo)+len(levelThree)),
	}
	for _, level := range ProjectableLevels {
		for _, name := range r.levels[level] {
			if _, exists := r.byName[name]; !exists {
				r.byName[name] = level
			}
		}
	}
	return r
}

// LevelFor resolves an assignee name to its support level. Names are matched
// exactly (case-sensitive); empty or unmapped names resolve to LevelOther.
func (r *Roster) LevelFor(assignee string) SupportLevel {
	if level, ok := r.byName[assignee]; ok {
		return level
	}
	return LevelOther
}

// Headcount returns the number of analysts rostered at the given level.
// LevelOther always has a headcount of zero.
func (r *Roster) Headcount(level SupportLevel) int {
	return len(r.levels[level])
}

// DefaultRoster returns the current support-team roster.
func DefaultRoster() *Roster {
	return NewRoster(
		[]string{
			"Matheus Paleari", "Vitor Pereira", "Arthur Domingues", "Paulo Bonella",
			"Rafael Purgly", "Thiago Murgia", "Lucas Bergamin", "Welington Lara",
		},
		[]string{
			"Laura almeida", "Valdinei Costa", "Luiz Magalhães", "Emerson Melo",
			"Luan Viana", "Karina Apolinario", "Carol Rodrigues", "Rodolfo Santana",
			"Gabriel Faria", "Daniella Ponciano",
		},
		[]string{
			"Agatha Anunciação",
		},
	)
}
