package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/foodcart-api/internal/domain"
	"github.com/jhoicas/foodcart-api/internal/domain/entity"
	"github.com/jhoicas/foodcart-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación en memoria de CategoryRepository.
type CategoryRepo struct {
	guard
}

// NewCategoryRepository construye el repositorio sobre st.
func NewCategoryRepository(st *Store) *CategoryRepo {
	return &CategoryRepo{guard{st: st}}
}

// Create inserta la categoría; el nombre es único.
func (r *CategoryRepo) Create(_ context.Context, category *entity.Category) error {
	var err error
	r.write(func() {
		for _, c := range r.st.categories {
			if c.Name == category.Name {
				err = domain.ErrDuplicate
				return
			}
		}
		r.st.categories[category.ID] = *category
	})
	return err
}

// GetByID obtiene una categoría; (nil, nil) si no existe.
func (r *CategoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	var out *entity.Category
	r.read(func() {
		if c, ok := r.st.categories[id]; ok {
			out = &c
		}
	})
	return out, nil
}

// GetByName obtiene una categoría por nombre; (nil, nil) si no existe.
func (r *CategoryRepo) GetByName(_ context.Context, name string) (*entity.Category, error) {
	var out *entity.Category
	r.read(func() {
		for _, c := range r.st.categories {
			if c.Name == name {
				c := c
				out = &c
				return
			}
		}
	})
	return out, nil
}

// List devuelve las categorías ordenadas por nombre.
func (r *CategoryRepo) List(_ context.Context) ([]*entity.Category, error) {
	var out []*entity.Category
	r.read(func() {
		out = make([]*entity.Category, 0, len(r.st.categories))
		for _, c := range r.st.categories {
			c := c
			out = append(out, &c)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Delete elimina la categoría si no tiene ítems.
func (r *CategoryRepo) Delete(_ context.Context, id string) (*entity.Category, error) {
	var (
		out *entity.Category
		err error
	)
	r.write(func() {
		c, ok := r.st.categories[id]
		if !ok {
			err = domain.ErrNotFound
			return
		}
		for _, it := range r.st.items {
			if it.CategoryID == id {
				err = domain.ErrConflict
				return
			}
		}
		delete(r.st.categories, id)
		out = &c
	})
	return out, err
}
