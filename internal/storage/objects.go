package storage

import (
	"fmt"

	"github.com/waiviolabs/hive-objects-backend/internal/model"
)

// ObjectRepository stores object documents under "object:<permlink>".
// Cross-object queries are prefix scans: the engine recomputes instead of
// maintaining secondary indexes.
type ObjectRepository struct {
	store *Store
}

func NewObjectRepository(store *Store) *ObjectRepository {
	return &ObjectRepository{store: store}
}

func objectKey(permlink string) string {
	return "object:" + permlink
}

// Create stores a new object document; fails when the permlink is taken.
func (r *ObjectRepository) Create(obj *model.Object) error {
	key := objectKey(obj.AuthorPermlink)
	exists, err := r.store.has(key)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("object %s: %w", obj.AuthorPermlink, ErrAlreadyExists)
	}
	return r.store.putJSON(key, obj)
}

func (r *ObjectRepository) Exists(permlink string) (bool, error) {
	return r.store.has(objectKey(permlink))
}

func (r *ObjectRepository) FindByPermlink(permlink string) (*model.Object, error) {
	var obj model.Object
	if err := r.store.getJSON(objectKey(permlink), &obj); err != nil {
		return nil, err
	}
	return &obj, nil
}

// mutate applies fn to the stored document and writes it back.
func (r *ObjectRepository) mutate(permlink string, fn func(*model.Object) error) error {
	obj, err := r.FindByPermlink(permlink)
	if err != nil {
		return err
	}
	if err := fn(obj); err != nil {
		return err
	}
	return r.store.putJSON(objectKey(permlink), obj)
}

func (r *ObjectRepository) AppendField(permlink string, field model.Field) error {
	return r.mutate(permlink, func(obj *model.Object) error {
		obj.Fields = append(obj.Fields, field)
		return nil
	})
}

// Field returns the field appended by the given transaction.
func (r *ObjectRepository) Field(permlink, txID string) (*model.Field, error) {
	obj, err := r.FindByPermlink(permlink)
	if err != nil {
		return nil, err
	}
	i := obj.FieldByTransactionID(txID)
	if i < 0 {
		return nil, fmt.Errorf("field %s on %s: %w", txID, permlink, ErrNotFound)
	}
	field := obj.Fields[i]
	return &field, nil
}

// UpsertVote replaces the voter's active vote on the field, or appends it.
func (r *ObjectRepository) UpsertVote(permlink, txID string, vote model.ActiveVote) error {
	return r.mutateField(permlink, txID, func(f *model.Field) error {
		for i := range f.ActiveVotes {
			if f.ActiveVotes[i].Voter == vote.Voter {
				f.ActiveVotes[i] = vote
				return nil
			}
		}
		f.ActiveVotes = append(f.ActiveVotes, vote)
		return nil
	})
}

// SetFieldState writes back a recomputed field weight together with the
// re-derived vote weights.
func (r *ObjectRepository) SetFieldState(permlink, txID string, weight float64, votes []model.ActiveVote) error {
	return r.mutateField(permlink, txID, func(f *model.Field) error {
		f.Weight = weight
		f.ActiveVotes = votes
		return nil
	})
}

func (r *ObjectRepository) mutateField(permlink, txID string, fn func(*model.Field) error) error {
	return r.mutate(permlink, func(obj *model.Object) error {
		i := obj.FieldByTransactionID(txID)
		if i < 0 {
			return fmt.Errorf("field %s on %s: %w", txID, permlink, ErrNotFound)
		}
		return fn(&obj.Fields[i])
	})
}

// AddSearchFields unions terms into the object's search token set.
func (r *ObjectRepository) AddSearchFields(permlink string, terms []string) error {
	if len(terms) == 0 {
		return nil
	}
	return r.mutate(permlink, func(obj *model.Object) error {
		seen := make(map[string]struct{}, len(obj.SearchFields))
		for _, t := range obj.SearchFields {
			seen[t] = struct{}{}
		}
		for _, t := range terms {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			obj.SearchFields = append(obj.SearchFields, t)
		}
		return nil
	})
}

func (r *ObjectRepository) SetParent(permlink, parent string) error {
	return r.mutate(permlink, func(obj *model.Object) error {
		obj.Parent = parent
		return nil
	})
}

// SetMap stores the cached map projection; nil clears it.
func (r *ObjectRepository) SetMap(permlink string, point *model.GeoPoint) error {
	return r.mutate(permlink, func(obj *model.Object) error {
		obj.Map = point
		return nil
	})
}

// SetStatus stores the cached status title; empty clears it.
func (r *ObjectRepository) SetStatus(permlink, title string) error {
	return r.mutate(permlink, func(obj *model.Object) error {
		obj.Status = title
		return nil
	})
}

func (r *ObjectRepository) SetTagClouds(permlink string, tags []string) error {
	return r.mutate(permlink, func(obj *model.Object) error {
		obj.TagClouds = tags
		return nil
	})
}

func (r *ObjectRepository) SetRatings(permlink string, ratings []string) error {
	return r.mutate(permlink, func(obj *model.Object) error {
		obj.Ratings = ratings
		return nil
	})
}

func (r *ObjectRepository) AddChild(permlink, child string) error {
	return r.mutate(permlink, func(obj *model.Object) error {
		for _, c := range obj.Children {
			if c == child {
				return nil
			}
		}
		obj.Children = append(obj.Children, child)
		return nil
	})
}

func (r *ObjectRepository) AddDepartment(permlink, department string) error {
	return r.mutate(permlink, func(obj *model.Object) error {
		for _, d := range obj.Departments {
			if d == department {
				return nil
			}
		}
		obj.Departments = append(obj.Departments, department)
		return nil
	})
}

func (r *ObjectRepository) RemoveDepartment(permlink, department string) error {
	return r.mutate(permlink, func(obj *model.Object) error {
		out := obj.Departments[:0]
		for _, d := range obj.Departments {
			if d != department {
				out = append(out, d)
			}
		}
		obj.Departments = out
		return nil
	})
}

// GrantAuthority adds the account at the given level; idempotent.
func (r *ObjectRepository) GrantAuthority(permlink, level, account string) error {
	return r.mutate(permlink, func(obj *model.Object) error {
		set := authoritySet(obj, level)
		if set == nil {
			return fmt.Errorf("unknown authority level %q", level)
		}
		for _, a := range *set {
			if a == account {
				return nil
			}
		}
		*set = append(*set, account)
		return nil
	})
}

func (r *ObjectRepository) RevokeAuthority(permlink, level, account string) error {
	return r.mutate(permlink, func(obj *model.Object) error {
		set := authoritySet(obj, level)
		if set == nil {
			return fmt.Errorf("unknown authority level %q", level)
		}
		out := (*set)[:0]
		for _, a := range *set {
			if a != account {
				out = append(out, a)
			}
		}
		*set = out
		return nil
	})
}

func authoritySet(obj *model.Object, level string) *[]string {
	switch level {
	case model.AuthorityOwnership:
		return &obj.Authority.Ownership
	case model.AuthorityAdministrative:
		return &obj.Authority.Administrative
	}
	return nil
}

// SetMetaGroupID stamps the same meta-group id on every listed object.
func (r *ObjectRepository) SetMetaGroupID(permlinks []string, id string) error {
	for _, p := range permlinks {
		if err := r.mutate(p, func(obj *model.Object) error {
			obj.MetaGroupID = id
			return nil
		}); err != nil {
			return err
		}
	}
	return nil
}

func (r *ObjectRepository) scan(fn func(obj *model.Object) error) error {
	return r.store.iterPrefix("object:", func(_ string, value []byte) error {
		var obj model.Object
		if err := decodeValue(value, &obj); err != nil {
			return err
		}
		return fn(&obj)
	})
}

// ByGroupIDs returns objects carrying any of the given groupId field bodies,
// excluding objects already stamped with the given meta-group id.
func (r *ObjectRepository) ByGroupIDs(ids []string, excludeMetaGroup string) ([]model.Object, error) {
	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	var out []model.Object
	err := r.scan(func(obj *model.Object) error {
		if obj.MetaGroupID == excludeMetaGroup {
			return nil
		}
		for _, f := range obj.FieldsNamed(model.FieldGroupID) {
			if _, ok := want[f.Body]; ok {
				out = append(out, *obj)
				return nil
			}
		}
		return nil
	})
	return out, err
}

// VotedBy returns every object holding at least one active vote by the voter.
func (r *ObjectRepository) VotedBy(voter string) ([]model.Object, error) {
	var out []model.Object
	err := r.scan(func(obj *model.Object) error {
		for _, f := range obj.Fields {
			if _, ok := f.VoteBy(voter); ok {
				out = append(out, *obj)
				return nil
			}
		}
		return nil
	})
	return out, err
}

// CountByDepartment counts objects currently assigned to the department.
func (r *ObjectRepository) CountByDepartment(department string) (int64, error) {
	var n int64
	err := r.scan(func(obj *model.Object) error {
		for _, d := range obj.Departments {
			if d == department {
				n++
				return nil
			}
		}
		return nil
	})
	return n, err
}

// HaveBothDepartments reports whether any object is assigned to both
// departments at once.
func (r *ObjectRepository) HaveBothDepartments(a, b string) (bool, error) {
	found := false
	err := r.scan(func(obj *model.Object) error {
		hasA, hasB := false, false
		for _, d := range obj.Departments {
			if d == a {
				hasA = true
			}
			if d == b {
				hasB = true
			}
		}
		if hasA && hasB {
			found = true
		}
		return nil
	})
	return found, err
}

// ChildrenWithoutMap returns permlinks of the parent's children that carry no
// map field of their own.
func (r *ObjectRepository) ChildrenWithoutMap(parent string) ([]string, error) {
	var out []string
	err := r.scan(func(obj *model.Object) error {
		if obj.Parent != parent {
			return nil
		}
		if len(obj.FieldsNamed(model.FieldMap)) > 0 {
			return nil
		}
		out = append(out, obj.AuthorPermlink)
		return nil
	})
	return out, err
}
