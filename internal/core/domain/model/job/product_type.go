package job

import (
	"fmt"
	"strings"

	"printfloor/internal/pkg/errs"
)

// ProductType is the media family a job prints on. Printers advertise the set they support.
type ProductType string

const (
	ProductDTF       ProductType = "dtf"
	ProductUVDTF     ProductType = "uv_dtf"
	ProductGlitter   ProductType = "glitter"
	ProductGlow      ProductType = "glow"
	ProductGangSheet ProductType = "gang_sheet"
)

// AllProductTypes returns the known media families.
func AllProductTypes() []ProductType {
	return []ProductType{ProductDTF, ProductUVDTF, ProductGlitter, ProductGlow, ProductGangSheet}
}

// ParseProductType accepts the canonical tag with '-' or ' ' for '_', case-insensitively.
func ParseProductType(s string) (ProductType, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.NewReplacer("-", "_", " ", "_").Replace(normalized)
	p := ProductType(normalized)
	if err := p.Validate(); err != nil {
		return "", err
	}
	return p, nil
}

func (p ProductType) Validate() error {
	for _, known := range AllProductTypes() {
		if p == known {
			return nil
		}
	}
	return errs.NewValueIsInvalidErrorWithCause("productType", fmt.Errorf("%q is not a known product type", string(p)))
}

func (p ProductType) String() string {
	return string(p)
}
