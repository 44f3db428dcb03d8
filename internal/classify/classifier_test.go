package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	id "docket/pkg/domain"
)

func TestClassifier(t *testing.T) {
	c := New("Camaçari")

	tests := []struct {
		name       string
		court      string
		caseClass  string
		subjects   string
		category   id.CaseCategory
		confidence int
	}{
		{
			name:       "home district domestic violence bench",
			court:      "Vara de Violência Doméstica de Camaçari",
			caseClass:  "Ação Penal",
			category:   id.CategoryDomesticViolence,
			confidence: 100,
		},
		{
			name:       "femicide on domestic violence bench goes to jury",
			court:      "Vara de Violência Doméstica de Camaçari",
			subjects:   "Feminicídio",
			category:   id.CategoryJury,
			confidence: 95,
		},
		{
			name:       "homicide in class on domestic violence bench goes to jury",
			court:      "Vara de Violência Doméstica de Camaçari",
			caseClass:  "Homicídio Qualificado",
			category:   id.CategoryJury,
			confidence: 95,
		},
		{
			name:       "mixed bench with execution class",
			court:      "Vara do Júri e Execuções Penais de Camaçari",
			caseClass:  "Execução da Pena",
			category:   id.CategoryPenalExecution,
			confidence: 95,
		},
		{
			name:       "mixed bench with parole subject",
			court:      "Vara do Júri e Execuções Penais de Camaçari",
			subjects:   "Livramento Condicional",
			category:   id.CategoryPenalExecution,
			confidence: 95,
		},
		{
			name:       "mixed bench with jury class",
			court:      "Vara do Júri e Execuções Penais de Camaçari",
			caseClass:  "Ação Penal de Competência do Júri",
			category:   id.CategoryJury,
			confidence: 95,
		},
		{
			name:       "mixed bench with unknown class defaults to jury at lower confidence",
			court:      "Vara do Júri e Execuções Penais de Camaçari",
			caseClass:  "Procedimento Comum",
			category:   id.CategoryJury,
			confidence: 70,
		},
		{
			name:       "jury bench outside home district",
			court:      "2ª Vara do Júri de Salvador",
			category:   id.CategorySubstitution,
			confidence: 100,
		},
		{
			name:       "criminal bench outside home district",
			court:      "1ª Vara Criminal de Dias d'Ávila",
			category:   id.CategorySubstitution,
			confidence: 100,
		},
		{
			name:       "special criminal court",
			court:      "Juizado Especial Criminal de Camaçari",
			category:   id.CategorySubstitution,
			confidence: 90,
		},
		{
			name:       "penal execution bench in district",
			court:      "Vara de Execução Penal de Camaçari",
			category:   id.CategoryPenalExecution,
			confidence: 90,
		},
		{
			name:       "penal execution bench outside district",
			court:      "VEP de Salvador",
			category:   id.CategorySubstitution,
			confidence: 85,
		},
		{
			name:       "domestic violence bench outside district",
			court:      "Juizado da Maria da Penha de Salvador",
			category:   id.CategorySubstitution,
			confidence: 85,
		},
		{
			name:       "unrecognized court falls through to substitution",
			court:      "Vara Cível de Camaçari",
			category:   id.CategorySubstitution,
			confidence: 50,
		},
		{
			name:       "empty input falls through to substitution",
			category:   id.CategorySubstitution,
			confidence: 50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.court, tt.caseClass, tt.subjects)
			assert.Equal(t, tt.category, got.Category)
			assert.Equal(t, tt.confidence, got.Confidence)
			assert.NotEmpty(t, got.Reason)
		})
	}
}

func TestClassifierAccentInsensitive(t *testing.T) {
	c := New("camacari")

	got := c.Classify("VARA DE VIOLENCIA DOMESTICA DE CAMACARI", "", "")
	assert.Equal(t, id.CategoryDomesticViolence, got.Category)
	assert.Equal(t, 100, got.Confidence)
}

func TestClassifierNoHomeDistrict(t *testing.T) {
	c := New("")

	// Without a home district the out-of-district demotions never fire.
	got := c.Classify("2ª Vara do Júri de Salvador", "", "")
	assert.Equal(t, id.CategoryJury, got.Category)
	assert.Equal(t, 85, got.Confidence)
}
