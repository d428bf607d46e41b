package storage

import (
	"errors"

	"github.com/waiviolabs/hive-objects-backend/internal/model"
)

// DepartmentRepository stores department graph nodes under
// "department:<name>".
type DepartmentRepository struct {
	store *Store
}

func NewDepartmentRepository(store *Store) *DepartmentRepository {
	return &DepartmentRepository{store: store}
}

func departmentKey(name string) string {
	return "department:" + name
}

func (r *DepartmentRepository) Get(name string) (*model.Department, error) {
	var d model.Department
	if err := r.store.getJSON(departmentKey(name), &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// FindOrCreate returns the department, creating it with the given search
// token when missing.
func (r *DepartmentRepository) FindOrCreate(name, search string) (*model.Department, error) {
	d, err := r.Get(name)
	if err == nil {
		return d, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	created := model.Department{Name: name, Search: search}
	if err := r.store.putJSON(departmentKey(name), &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *DepartmentRepository) mutate(name string, fn func(*model.Department)) error {
	d, err := r.Get(name)
	if err != nil {
		return err
	}
	fn(d)
	return r.store.putJSON(departmentKey(name), d)
}

// AddRelated links the given departments to this one; duplicates and
// self-links are skipped.
func (r *DepartmentRepository) AddRelated(name string, related []string) error {
	return r.mutate(name, func(d *model.Department) {
		seen := make(map[string]struct{}, len(d.Related))
		for _, rel := range d.Related {
			seen[rel] = struct{}{}
		}
		for _, rel := range related {
			if rel == name {
				continue
			}
			if _, ok := seen[rel]; ok {
				continue
			}
			seen[rel] = struct{}{}
			d.Related = append(d.Related, rel)
		}
	})
}

func (r *DepartmentRepository) RemoveRelated(name, related string) error {
	return r.mutate(name, func(d *model.Department) {
		out := d.Related[:0]
		for _, rel := range d.Related {
			if rel != related {
				out = append(out, rel)
			}
		}
		d.Related = out
	})
}

func (r *DepartmentRepository) SetObjectsCount(name string, count int64) error {
	return r.mutate(name, func(d *model.Department) {
		d.ObjectsCount = count
	})
}
