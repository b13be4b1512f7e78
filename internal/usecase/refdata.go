package usecase

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/Glorc12/MebelCorpPractic/internal/domain"
)

// Snapshot is an immutable copy of the reference lists taken by one reload.
// Read it once per request; do not keep it across requests.
type Snapshot struct {
	productTypes  []domain.ProductType
	materialTypes []domain.MaterialType
	loadedAt      time.Time
}

func NewSnapshot(pts []domain.ProductType, mts []domain.MaterialType, at time.Time) *Snapshot {
	return &Snapshot{
		productTypes:  append([]domain.ProductType(nil), pts...),
		materialTypes: append([]domain.MaterialType(nil), mts...),
		loadedAt:      at,
	}
}

var emptySnapshot = &Snapshot{}

func (s *Snapshot) ProductTypes() []domain.ProductType {
	if s == nil {
		return nil
	}
	return append([]domain.ProductType(nil), s.productTypes...)
}

func (s *Snapshot) MaterialTypes() []domain.MaterialType {
	if s == nil {
		return nil
	}
	return append([]domain.MaterialType(nil), s.materialTypes...)
}

func (s *Snapshot) LoadedAt() time.Time {
	if s == nil {
		return time.Time{}
	}
	return s.loadedAt
}

func (s *Snapshot) Loaded() bool { return !s.LoadedAt().IsZero() }

func (s *Snapshot) ProductType(id int64) (domain.ProductType, bool) {
	if s != nil {
		for _, t := range s.productTypes {
			if t.ID == id {
				return t, true
			}
		}
	}
	return domain.ProductType{}, false
}

func (s *Snapshot) MaterialType(id int64) (domain.MaterialType, bool) {
	if s != nil {
		for _, m := range s.materialTypes {
			if m.ID == id {
				return m, true
			}
		}
	}
	return domain.MaterialType{}, false
}

func (s *Snapshot) ProductTypeLabel(id int64) string {
	if t, ok := s.ProductType(id); ok {
		return t.Name
	}
	return domain.NoSelection
}

func (s *Snapshot) MaterialTypeLabel(id int64) string {
	if m, ok := s.MaterialType(id); ok {
		return m.Name
	}
	return domain.NoSelection
}

// RefData publishes the latest reference snapshot.
type RefData struct {
	src domain.ReferenceSource
	cur atomic.Pointer[Snapshot]
	now func() time.Time
}

func NewRefData(src domain.ReferenceSource) *RefData {
	r := &RefData{src: src, now: time.Now}
	r.cur.Store(emptySnapshot)
	return r
}

// Current returns the latest snapshot, empty before the first reload.
func (r *RefData) Current() *Snapshot { return r.cur.Load() }

// Reload fetches both lists and publishes them as a new snapshot. On error
// the previous snapshot stays current.
func (r *RefData) Reload(ctx context.Context) (*Snapshot, error) {
	pts, err := r.src.ListProductTypes(ctx)
	if err != nil {
		return r.Current(), fmt.Errorf("типы продукции: %w", err)
	}
	mts, err := r.src.ListMaterialTypes(ctx)
	if err != nil {
		return r.Current(), fmt.Errorf("типы материалов: %w", err)
	}
	s := NewSnapshot(pts, mts, r.now())
	r.cur.Store(s)
	return s, nil
}

// Ensure reloads only when nothing has been loaded yet.
func (r *RefData) Ensure(ctx context.Context) (*Snapshot, error) {
	if s := r.Current(); s.Loaded() {
		return s, nil
	}
	return r.Reload(ctx)
}
