package entities

// CatalogItem es un producto del catálogo estático, inmutable durante la vida del proceso
type CatalogItem struct {
	ID              int               `json:"id" yaml:"id"`
	Name            string            `json:"name" yaml:"name"`
	Images          map[string]string `json:"images" yaml:"images"`
	Weight          float64           `json:"weight" yaml:"weight"` // grams
	PopularityScore float64           `json:"popularityScore" yaml:"popularityScore"`
}

// PricedItem es un CatalogItem con su rating y precio derivados de la cotización actual
type PricedItem struct {
	CatalogItem
	PopularityScore5 float64 `json:"popularityScore5"`
	Price            float64 `json:"price"`
}
