package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v2"

	"cafecli/pkg/contracts/domain"
)

// LoadCatalog loads the product catalog from a YAML file. A missing file is
// not an error: the reference-dataset catalog is used instead.
func LoadCatalog(path string) (domain.Catalog, error) {
	if path == "" || !FileExists(path) {
		return domain.DefaultCatalog(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}

	var catalog domain.Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return domain.Catalog{}, fmt.Errorf("failed to parse catalog file %s: %w", path, err)
	}

	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(catalog); err != nil {
		return domain.Catalog{}, fmt.Errorf("invalid catalog in %s: %w", path, err)
	}

	return catalog, nil
}
