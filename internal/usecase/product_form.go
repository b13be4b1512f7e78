package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Glorc12/MebelCorpPractic/internal/domain"
)

var (
	ErrFormClosed       = errors.New("форма закрыта")
	ErrFormInvalid      = errors.New("пожалуйста, исправьте ошибки в форме")
	ErrSubmitInProgress = errors.New("форма уже отправляется")
)

const (
	DefaultFormTTL       = 30 * time.Minute
	alertKindError       = "error"
	alertKindWarning     = "warning"
	msgLoadProductFailed = "Ошибка загрузки продукта: "
)

// productForm is an open add/edit form. A form that is not in the store is
// Closed; Closed is terminal.
type productForm struct {
	token      string
	editingID  int64
	values     map[domain.ProductField]string
	errors     domain.FieldErrors
	alert      string
	alertKind  string
	submitting bool
	touched    time.Time
}

func (f *productForm) view() FormView {
	v := FormView{
		Token:     f.token,
		EditingID: f.editingID,
		Open:      true,
		Values:    make(map[string]string, len(f.values)),
		Errors:    f.errors.ByName(),
		Alert:     f.alert,
		AlertKind: f.alertKind,
	}
	for k, val := range f.values {
		v.Values[k.String()] = val
	}
	return v
}

// FormView is a copy of a form's state for rendering.
type FormView struct {
	Token     string
	EditingID int64
	Open      bool
	Values    map[string]string
	Errors    map[string]string
	Alert     string
	AlertKind string
}

func (v FormView) Editing() bool { return v.EditingID != 0 }

// FormStore keeps the open product forms keyed by token.
type FormStore struct {
	mu    sync.Mutex
	forms map[string]*productForm
	ttl   time.Duration
	now   func() time.Time
}

func NewFormStore(ttl time.Duration) *FormStore {
	if ttl <= 0 {
		ttl = DefaultFormTTL
	}
	return &FormStore{forms: map[string]*productForm{}, ttl: ttl, now: time.Now}
}

func (s *FormStore) put(f *productForm) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()
	f.touched = s.now()
	s.forms[f.token] = f
}

// with runs fn on the form under the store lock.
func (s *FormStore) with(token string, fn func(f *productForm) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.forms[token]
	if !ok || s.expiredLocked(f) {
		delete(s.forms, token)
		return ErrFormClosed
	}
	f.touched = s.now()
	return fn(f)
}

func (s *FormStore) remove(token string) {
	s.mu.Lock()
	delete(s.forms, token)
	s.mu.Unlock()
}

func (s *FormStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.forms)
}

func (s *FormStore) expiredLocked(f *productForm) bool {
	return !f.submitting && s.now().Sub(f.touched) > s.ttl
}

func (s *FormStore) sweepLocked() {
	for k, f := range s.forms {
		if s.expiredLocked(f) {
			delete(s.forms, k)
		}
	}
}

// ProductFormUC drives the product add/edit form:
// Closed -> Open(new) | Open(editing) -> Closed.
type ProductFormUC struct {
	Products domain.CatalogAPI
	Forms    *FormStore
}

// Open starts a form. When editing, the product is loaded; a load failure
// leaves the form open with empty fields and a form-level alert.
func (uc *ProductFormUC) Open(ctx context.Context, editingID int64) FormView {
	f := &productForm{
		token:     uuid.NewString(),
		editingID: editingID,
		values:    map[domain.ProductField]string{},
		errors:    domain.FieldErrors{},
	}
	if editingID != 0 {
		p, err := uc.Products.GetProduct(ctx, editingID)
		if err != nil {
			log.Error().Err(err).Int64("product_id", editingID).Msg("load product for edit")
			f.alert = msgLoadProductFailed + err.Error()
			f.alertKind = alertKindError
		} else {
			f.values = productValues(p)
		}
	}
	uc.Forms.put(f)
	return f.view()
}

func (uc *ProductFormUC) Get(token string) (FormView, error) {
	var v FormView
	err := uc.Forms.with(token, func(f *productForm) error {
		v = f.view()
		return nil
	})
	return v, err
}

// EditField stores a new value and clears the field's error. Unknown field
// names are ignored.
func (uc *ProductFormUC) EditField(token, name, value string) (FormView, error) {
	var v FormView
	err := uc.Forms.with(token, func(f *productForm) error {
		if field, ok := domain.ParseProductField(name); ok {
			f.values[field] = value
			delete(f.errors, field)
		}
		v = f.view()
		return nil
	})
	return v, err
}

// Submit replaces the form values, revalidates every field and, when all
// pass, creates or updates the product. Success closes the form. Invalid
// input returns ErrFormInvalid and an API failure returns its error; in
// both cases the form stays open with the messages in the view.
func (uc *ProductFormUC) Submit(ctx context.Context, token string, values map[string]string) (FormView, *domain.Product, error) {
	var (
		view      FormView
		input     domain.ProductInput
		editingID int64
	)
	err := uc.Forms.with(token, func(f *productForm) error {
		if f.submitting {
			return ErrSubmitInProgress
		}
		for _, field := range domain.ProductFields {
			f.values[field] = values[field.String()]
		}
		f.errors = ValidateProductForm(f.values)
		f.alert, f.alertKind = "", ""
		if !f.errors.Valid() {
			f.alert = "Пожалуйста, исправьте ошибки в форме"
			f.alertKind = alertKindWarning
			view = f.view()
			return ErrFormInvalid
		}
		in, err := productInput(f.values)
		if err != nil {
			var ve *domain.ValidationError
			if errors.As(err, &ve) {
				if field, ok := domain.ParseProductField(ve.Field); ok {
					f.errors[field] = ve.Message
				}
			}
			view = f.view()
			return ErrFormInvalid
		}
		input, editingID = in, f.editingID
		f.submitting = true
		view = f.view()
		return nil
	})
	if err != nil {
		return view, nil, err
	}

	var p *domain.Product
	if editingID != 0 {
		p, err = uc.Products.UpdateProduct(ctx, editingID, input)
	} else {
		p, err = uc.Products.CreateProduct(ctx, input)
	}
	if err != nil {
		_ = uc.Forms.with(token, func(f *productForm) error {
			f.submitting = false
			f.alert = "Ошибка: " + err.Error()
			f.alertKind = alertKindError
			view = f.view()
			return nil
		})
		return view, nil, fmt.Errorf("сохранение продукта: %w", err)
	}

	uc.Forms.remove(token)
	view.Open = false
	return view, p, nil
}

// Cancel discards the form and everything typed into it.
func (uc *ProductFormUC) Cancel(token string) {
	uc.Forms.remove(token)
}

func productValues(p *domain.Product) map[domain.ProductField]string {
	return map[domain.ProductField]string{
		domain.FieldArticleNumber:       fmt.Sprintf("%d", p.ArticleNumber),
		domain.FieldProductName:         p.Name,
		domain.FieldProductTypeID:       idString(p.ProductTypeID),
		domain.FieldMaterialTypeID:      idString(p.MaterialTypeID),
		domain.FieldMinimumPartnerPrice: fmt.Sprintf("%.2f", p.MinimumPartnerPrice),
	}
}

func idString(id int64) string {
	if id == 0 {
		return ""
	}
	return fmt.Sprintf("%d", id)
}
