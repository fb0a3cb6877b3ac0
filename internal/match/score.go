package match

// Scorer rates how well a candidate method name fits a target property name.
// Higher is better; scores are in [0, 1]. The function is pluggable so the
// exact weighting stays an isolated, independently testable unit.
type Scorer func(methodName, propertyName string) float64

// Score is the default Scorer: normalized Levenshtein similarity over
// normalized identifiers, taking the best window when the property name is
// embedded in a longer method name ("orderLineToDTO" vs "orderLine").
func Score(methodName, propertyName string) float64 {
	name := NormalizeIdent(methodName)
	prop := NormalizeIdent(propertyName)

	if prop == "" || name == "" {
		return 0
	}

	best := Similarity(name, prop)

	// A method name usually embeds the property name plus mapping verbiage;
	// slide a property-sized window over the method name.
	if len(name) > len(prop) {
		for i := 0; i+len(prop) <= len(name); i++ {
			if s := Similarity(name[i:i+len(prop)], prop); s > best {
				best = s
			}
		}
	}

	return best
}

// BestUnique returns the index of the strictly best-scoring name against the
// property, or -1 when the top score is shared by two or more names.
func BestUnique(names []string, property string, scorer Scorer) int {
	if scorer == nil {
		scorer = Score
	}

	best := -1
	bestScore := -1.0
	tied := false

	for i, n := range names {
		s := scorer(n, property)

		switch {
		case s > bestScore:
			best = i
			bestScore = s
			tied = false
		case s == bestScore:
			tied = true
		}
	}

	if tied {
		return -1
	}

	return best
}
