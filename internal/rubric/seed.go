package rubric

import (
	"fmt"
	"sync"
)

// Default returns the seed rubric of the culinary production module.
// The returned value is shared and immutable.
func Default() *Rubric {
	return defaultRubric()
}

var defaultRubric = sync.OnceValue(func() *Rubric {
	r, err := New(seedOutcomes)
	if err != nil {
		panic(fmt.Sprintf("seed rubric: %v", err))
	}
	return r
})

var seedOutcomes = []Outcome{
	{
		ID:     "ra1",
		Name:   "Organiza el proceso de producción culinaria",
		Weight: 0.15,
		Criteria: []Criterion{
			{ID: "ra1.a", Name: "Interpreta la ficha técnica"},
			{ID: "ra1.b", Name: "Prepara el puesto de trabajo (mise en place)"},
			{ID: "ra1.c", Name: "Gestiona los tiempos de producción"},
		},
	},
	{
		ID:     "ra2",
		Name:   "Aplica técnicas de cocción",
		Weight: 0.30,
		Criteria: []Criterion{
			{ID: "ra2.a", Name: "Selecciona la técnica de cocción adecuada"},
			{ID: "ra2.b", Name: "Controla los puntos de cocción"},
			{ID: "ra2.c", Name: "Ajusta sazonado y fondos"},
		},
	},
	{
		ID:     "ra3",
		Name:   "Elabora guarniciones y salsas",
		Weight: 0.20,
		Criteria: []Criterion{
			{ID: "ra3.a", Name: "Obtiene la textura y el sabor requeridos"},
			{ID: "ra3.b", Name: "Conserva las elaboraciones de base"},
		},
	},
	{
		ID:     "ra4",
		Name:   "Presenta y emplata",
		Weight: 0.15,
		Criteria: []Criterion{
			{ID: "ra4.a", Name: "Emplata según la ficha técnica"},
			{ID: "ra4.b", Name: "Sirve a la temperatura adecuada"},
		},
	},
	{
		ID:     "ra5",
		Name:   "Cumple las normas de higiene y seguridad",
		Weight: 0.20,
		Criteria: []Criterion{
			{ID: "ra5.a", Name: "Higiene personal y uniformidad"},
			{ID: "ra5.b", Name: "Limpieza y orden del puesto"},
			{ID: "ra5.c", Name: "Control de alérgenos y APPCC"},
		},
	},
}
