package domain

// Default display values for optional data. Every optional field resolves
// through Or with exactly one of these:
//
//	product type / material type name  -> Placeholder
//	workshop type                      -> Placeholder
//	staff count                        -> 0
//	manufacturing time                 -> 0
//	selector label with no selection   -> NoSelection
const (
	Placeholder = "N/A"
	NoSelection = "—"
)

// Or returns *p, or def when p is nil.
func Or[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T { return &v }

func (p Product) Hours() float64 { return Or(p.ManufacturingHours, 0) }

func (e ProductWorkshopEntry) TypeLabel() string { return Or(e.Type, Placeholder) }

func (e ProductWorkshopEntry) Staff() int { return Or(e.StaffCount, 0) }
