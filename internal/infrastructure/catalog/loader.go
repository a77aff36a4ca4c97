// Package catalog carga el catálogo estático de productos (JSON o YAML)
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gold-pricing-service/internal/domain/entities"

	"gopkg.in/yaml.v3"
)

var (
	ErrEmptyCatalog  = errors.New("catalog has no items")
	ErrInvalidItem   = errors.New("invalid catalog item")
	ErrUnknownFormat = errors.New("unsupported catalog format")
)

// LoadFile lee el catálogo desde path. El formato se elige por extensión:
// .yaml/.yml usa YAML, cualquier otra JSON.
func LoadFile(path string) ([]entities.CatalogItem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}

	var items []entities.CatalogItem
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &items)
	case ".json", "":
		err = json.Unmarshal(data, &items)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}

	return normalize(items)
}

// normalize asigna IDs faltantes (posición + 1) y valida cada item
func normalize(items []entities.CatalogItem) ([]entities.CatalogItem, error) {
	if len(items) == 0 {
		return nil, ErrEmptyCatalog
	}

	for i := range items {
		if items[i].ID == 0 {
			items[i].ID = i + 1
		}
		if strings.TrimSpace(items[i].Name) == "" {
			return nil, fmt.Errorf("%w: item %d has no name", ErrInvalidItem, i+1)
		}
		if items[i].Weight <= 0 {
			return nil, fmt.Errorf("%w: item %q weight must be positive", ErrInvalidItem, items[i].Name)
		}
		if items[i].PopularityScore < 0 || items[i].PopularityScore > 1 {
			return nil, fmt.Errorf("%w: item %q popularityScore must be within [0,1]", ErrInvalidItem, items[i].Name)
		}
		if items[i].Images == nil {
			items[i].Images = map[string]string{}
		}
	}

	return items, nil
}
