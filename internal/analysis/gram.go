package analysis

import "strings"

// Gram is a coarse Gram-stain class used for summary grouping
type Gram string

const (
	GramPositive     Gram = "Грамположительные"
	GramNegative     Gram = "Грамотрицательные"
	GramFungi        Gram = "Грибы"
	GramUnclassified Gram = "Не классифицировано"
)

// Genus keyword lists for substring classification. Matching is on genus
// only; species-level detail never changes the class.
var (
	gramPositiveGenera = []string{
		"staphylococcus", "streptococcus", "enterococcus",
		"bacillus", "lactobacillus", "lactiplantibacillus",
		"gemella", "rothia", "micrococcus", "corynebacterium",
	}
	gramNegativeGenera = []string{
		"escherichia", "klebsiella", "enterobacter", "serratia",
		"proteus", "morganella", "pseudomonas",
		"acinetobacter", "haemophilus", "neisseria",
	}
	fungiGenera = []string{"candida", "malassezia"}
)

// ClassifyGram assigns a microbe name to a Gram class by genus keyword
func ClassifyGram(microbe string) Gram {
	m := strings.ToLower(microbe)

	for _, g := range gramPositiveGenera {
		if strings.Contains(m, g) {
			return GramPositive
		}
	}
	for _, g := range gramNegativeGenera {
		if strings.Contains(m, g) {
			return GramNegative
		}
	}
	for _, g := range fungiGenera {
		if strings.Contains(m, g) {
			return GramFungi
		}
	}
	return GramUnclassified
}
