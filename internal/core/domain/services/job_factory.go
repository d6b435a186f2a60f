package services

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"printfloor/internal/core/domain/model/job"
	"printfloor/internal/core/domain/model/kernel"
	"printfloor/internal/core/domain/model/order"
)

// sizePattern matches "<w> x <h>" with x, X or × and optional decimals.
var sizePattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*[xX×]\s*(\d+(?:\.\d+)?)`)

// sizeExtractor is one strategy for reading print dimensions off a line item.
type sizeExtractor func(item order.LineItem) (kernel.Dimensions, bool)

// JobFactory derives printable jobs from an order.
//
// Dimensions are found by trying, in order: explicit width and height
// properties, a "<w> x <h>" pattern in the variant label, and the same pattern
// in a size option. The first strategy that yields a positive size wins.
// Items with no size (supplies, gift cards) are not printable and are skipped.
type JobFactory struct {
	extractors []sizeExtractor
	newID      func() kernel.UUID
}

func NewJobFactory() JobFactory {
	return JobFactory{
		extractors: []sizeExtractor{explicitSize, labelSize, optionSize},
		newID:      kernel.NewUUID,
	}
}

// JobFactoryResult is the outcome of deriving jobs from one order.
type JobFactoryResult struct {
	Created int
	Jobs    []*job.Job
}

// CreateJobs builds one QUEUED job per printable line item. An order with no
// printable items yields an empty result, not an error.
func (f JobFactory) CreateJobs(o order.Order, at time.Time) (JobFactoryResult, error) {
	if err := o.Validate(); err != nil {
		return JobFactoryResult{}, err
	}

	var result JobFactoryResult
	for _, item := range o.Items {
		size, ok := f.extractSize(item)
		if !ok {
			continue
		}

		j, err := job.NewJob(f.newID(), job.Attributes{
			OrderID:     o.ID,
			OwnerID:     o.OwnerID,
			Title:       item.Title,
			Size:        size,
			ProductType: InferProductType(item),
			Quantity:    item.Quantity,
			DPI:         dpiOf(item),
			Priority:    priorityOf(item),
		}, at)
		if err != nil {
			return JobFactoryResult{}, err
		}
		result.Jobs = append(result.Jobs, j)
	}

	result.Created = len(result.Jobs)
	return result, nil
}

func (f JobFactory) extractSize(item order.LineItem) (kernel.Dimensions, bool) {
	for _, extract := range f.extractors {
		if size, ok := extract(item); ok {
			return size, true
		}
	}
	return kernel.Dimensions{}, false
}

func explicitSize(item order.LineItem) (kernel.Dimensions, bool) {
	w, okW := item.Property("width")
	h, okH := item.Property("height")
	if !okW || !okH {
		return kernel.Dimensions{}, false
	}
	return parseSize(w, h)
}

func labelSize(item order.LineItem) (kernel.Dimensions, bool) {
	return matchSize(item.VariantLabel)
}

func optionSize(item order.LineItem) (kernel.Dimensions, bool) {
	for _, name := range []string{"size", "dimensions", "print size"} {
		if v, ok := item.Option(name); ok {
			if size, ok := matchSize(v); ok {
				return size, true
			}
		}
	}
	return kernel.Dimensions{}, false
}

func matchSize(s string) (kernel.Dimensions, bool) {
	m := sizePattern.FindStringSubmatch(s)
	if m == nil {
		return kernel.Dimensions{}, false
	}
	return parseSize(m[1], m[2])
}

func parseSize(w, h string) (kernel.Dimensions, bool) {
	width, errW := strconv.ParseFloat(strings.TrimSpace(w), 64)
	height, errH := strconv.ParseFloat(strings.TrimSpace(h), 64)
	if errW != nil || errH != nil {
		return kernel.Dimensions{}, false
	}
	size, err := kernel.NewDimensions(width, height)
	if err != nil {
		return kernel.Dimensions{}, false
	}
	return size, true
}

var productKeywords = []struct {
	keywords []string
	product  job.ProductType
}{
	{[]string{"uv dtf", "uvdtf"}, job.ProductUVDTF},
	{[]string{"glitter"}, job.ProductGlitter},
	{[]string{"glow"}, job.ProductGlow},
	{[]string{"gang sheet", "gangsheet"}, job.ProductGangSheet},
}

// InferProductType picks a product type from keywords in the item's title and
// variant label, defaulting to standard DTF.
func InferProductType(item order.LineItem) job.ProductType {
	text := strings.ToLower(item.Title + " " + item.VariantLabel)
	text = strings.NewReplacer("-", " ", "_", " ").Replace(text)
	for _, pk := range productKeywords {
		for _, kw := range pk.keywords {
			if strings.Contains(text, kw) {
				return pk.product
			}
		}
	}
	return job.ProductDTF
}

func dpiOf(item order.LineItem) int {
	if v, ok := item.Property("dpi"); ok {
		if dpi, err := strconv.Atoi(v); err == nil && dpi > 0 {
			return dpi
		}
	}
	return job.DefaultDPI
}

func priorityOf(item order.LineItem) job.Priority {
	if v, ok := item.Property("priority"); ok {
		if p, err := job.ParsePriority(v); err == nil {
			return p
		}
	}
	return job.PriorityStandard
}
