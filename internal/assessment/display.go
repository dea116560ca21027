package assessment

import "strings"

// displayOverrides maps skill ID tokens whose display form is not plain
// title case.
var displayOverrides = map[string]string{
	"sql":        "SQL",
	"nosql":      "NoSQL",
	"api":        "API",
	"apis":       "APIs",
	"html":       "HTML",
	"css":        "CSS",
	"ai":         "AI",
	"ml":         "ML",
	"nlp":        "NLP",
	"ci":         "CI",
	"cd":         "CD",
	"aws":        "AWS",
	"gcp":        "GCP",
	"k8s":        "Kubernetes",
	"golang":     "Go",
	"javascript": "JavaScript",
	"typescript": "TypeScript",
	"nodejs":     "Node.js",
	"devops":     "DevOps",
}

// DisplayName resolves a human-readable name for a skill ID: the catalog
// entry when present, otherwise a humanized form of the ID itself
// ("machine_learning" -> "Machine Learning").
func (i *Interpreter) DisplayName(skillID string) string {
	if s, ok := i.catalog[skillID]; ok && s.Name != "" {
		return s.Name
	}
	return humanize(skillID)
}

func humanize(id string) string {
	if id == "" {
		return ""
	}

	cleaned := strings.NewReplacer("_", " ", "-", " ").Replace(id)
	words := strings.Fields(cleaned)
	for idx, w := range words {
		lower := strings.ToLower(w)
		if canonical, ok := displayOverrides[lower]; ok {
			words[idx] = canonical
			continue
		}
		words[idx] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}
