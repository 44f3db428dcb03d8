// Package classify derives a case category from the free-text authority,
// class, and subject fields of an imported row. The rules encode how the
// court system splits work between the jury bench, the domestic-violence
// bench, penal execution, and substitution duty, with a confidence score
// the importer weighs against learned correction patterns.
package classify

import (
	"strings"

	"docket/internal/match"
	id "docket/pkg/domain"
)

// Result is a classification with its confidence (0-100) and the rule that
// produced it.
type Result struct {
	Category   id.CaseCategory
	Confidence int
	Reason     string
}

// Classifier applies keyword rules over normalized text. homeDistrict
// anchors the jurisdiction rules: matching courts outside the home
// district classify as substitution duty.
type Classifier struct {
	homeDistrict string
}

// New builds a classifier for the given home district (accent and case
// insensitive). An empty district disables the out-of-district demotions.
func New(homeDistrict string) *Classifier {
	return &Classifier{homeDistrict: match.Normalize(homeDistrict)}
}

// Classify identifies the category for a row. court is the
// authority/venue text; caseClass and subjects refine mixed-bench courts.
// Total: unrecognized input falls through to substitution at confidence 50.
func (c *Classifier) Classify(court, caseClass, subjects string) Result {
	courtN := match.Normalize(court)
	classN := match.Normalize(caseClass)
	subjectN := match.Normalize(subjects)
	inDistrict := c.homeDistrict != "" && strings.Contains(courtN, c.homeDistrict)

	// Domestic-violence bench in the home district. Femicide (homicide in a
	// domestic-violence context) falls to the jury bench instead.
	if strings.Contains(courtN, "violencia domestica") && inDistrict {
		if containsAny(subjectN+" "+classN, "homicidio", "feminicidio") {
			return Result{id.CategoryJury, 95, "femicide: domestic violence with homicide is jury jurisdiction"}
		}
		return Result{id.CategoryDomesticViolence, 100, "home district domestic-violence bench"}
	}

	// Mixed jury/penal-execution bench: the class and subject text decide.
	if strings.Contains(courtN, "juri") && strings.Contains(courtN, "execucoes penais") && inDistrict {
		if containsAny(classN+" "+subjectN, "execucao", "pena privativa", "progressao", "livramento condicional", "indulto", "saida temporaria") {
			return Result{id.CategoryPenalExecution, 95, "mixed bench with penal-execution class"}
		}
		if containsAny(classN+" "+subjectN, "juri", "inquerito", "homicidio", "latrocinio") {
			return Result{id.CategoryJury, 95, "mixed bench with jury-jurisdiction class"}
		}
		return Result{id.CategoryJury, 70, "mixed bench, class not identified, assuming jury"}
	}

	if strings.Contains(courtN, "juri") && !inDistrict {
		return Result{id.CategorySubstitution, 100, "jury bench outside home district"}
	}

	if strings.Contains(courtN, "vara criminal") && !inDistrict {
		return Result{id.CategorySubstitution, 100, "criminal bench outside home district"}
	}

	if strings.Contains(courtN, "juizado especial") {
		return Result{id.CategorySubstitution, 90, "special small-claims criminal court"}
	}

	if containsAny(courtN, "execucao penal", "vep") {
		if !inDistrict {
			return Result{id.CategorySubstitution, 85, "penal-execution bench outside home district"}
		}
		return Result{id.CategoryPenalExecution, 90, "penal-execution bench"}
	}

	if containsAny(courtN, "violencia", "maria da penha") {
		if !inDistrict {
			return Result{id.CategorySubstitution, 85, "domestic-violence bench outside home district"}
		}
		return Result{id.CategoryDomesticViolence, 85, "domestic-violence bench"}
	}

	if strings.Contains(courtN, "juri") {
		return Result{id.CategoryJury, 85, "jury bench"}
	}

	return Result{id.CategorySubstitution, 50, "court not identified, assuming substitution"}
}

func containsAny(haystack string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}
