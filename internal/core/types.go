package core

// Category enumerates the kinds of visual content the scenery is built from.
type Category int

const (
	Background Category = iota
	Nebula
	StarStuff
	Planets
	Stars
	Overlay

	NumCategories
)

var categoryNames = [NumCategories]string{
	Background: "background",
	Nebula:     "nebula",
	StarStuff:  "star-stuff",
	Planets:    "planets",
	Stars:      "stars",
	Overlay:    "overlay",
}

// String returns the category identifier used in logs and reports.
func (c Category) String() string {
	if c < 0 || c >= NumCategories {
		return "unknown"
	}
	return categoryNames[c]
}

// Categories returns every category in stage order.
func Categories() []Category {
	out := make([]Category, NumCategories)
	for i := range out {
		out[i] = Category(i)
	}
	return out
}

// Cardinality states how many live instances a category may own.
type Cardinality int

const (
	// Singleton categories own at most one instance, replaced wholesale.
	Singleton Cardinality = iota
	// Pool categories own any number of instances, replaced as a batch.
	Pool
)

func (c Cardinality) String() string {
	if c == Pool {
		return "pool"
	}
	return "singleton"
}

// Material is the parameter block a live instance hands to the renderer.
type Material interface {
	Category() Category
}

// InstanceID names one live instance. Generation increases with every
// rebuild of the owning category so stale IDs never alias new instances.
type InstanceID struct {
	Category   Category
	Generation uint64
	Index      int
}
