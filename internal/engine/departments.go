package engine

import (
	"encoding/json"
	"fmt"

	"github.com/waiviolabs/hive-objects-backend/internal/model"
)

// departmentName extracts the department name from a field body.
func departmentName(body string) (string, bool) {
	var d struct {
		Department string `json:"department"`
	}
	if err := json.Unmarshal([]byte(body), &d); err != nil || d.Department == "" {
		return "", false
	}
	return d.Department, true
}

// manageDepartments maintains the object's department memberships and the
// co-occurrence graph between departments. A downvote triggers the removal
// path; an append or upvote registers the department and relates it to the
// object's other departments.
func (s *Service) manageDepartments(obj *model.Object, field model.Field, percent int64) error {
	name, ok := departmentName(field.Body)
	if !ok {
		return nil
	}

	var sameName int
	var relatedNames []string
	seen := make(map[string]struct{})
	for _, f := range obj.FieldsNamed(model.FieldDepartments) {
		other, ok := departmentName(f.Body)
		if !ok {
			continue
		}
		if other == name {
			sameName++
			continue
		}
		if _, ok := seen[other]; ok {
			continue
		}
		seen[other] = struct{}{}
		relatedNames = append(relatedNames, other)
	}

	if percent < 0 {
		return s.removeFromDepartments(obj, name, relatedNames)
	}

	dept, err := s.departments.FindOrCreate(name, searchToken(name))
	if err != nil {
		return fmt.Errorf("find or create department %s: %w", name, err)
	}
	if err := s.objects.AddDepartment(obj.AuthorPermlink, dept.Name); err != nil {
		return err
	}

	// First field naming this department on the object: refresh the count.
	if sameName == 1 {
		count, err := s.objects.CountByDepartment(dept.Name)
		if err != nil {
			return fmt.Errorf("count objects in %s: %w", dept.Name, err)
		}
		if count > 0 {
			if err := s.departments.SetObjectsCount(dept.Name, count); err != nil {
				return err
			}
		}
	}

	if len(relatedNames) == 0 {
		return nil
	}
	if err := s.departments.AddRelated(dept.Name, relatedNames); err != nil {
		return err
	}
	for _, related := range relatedNames {
		if err := s.departments.AddRelated(related, []string{dept.Name}); err != nil {
			return err
		}
	}
	return nil
}

// removeFromDepartments drops the department from the object once no
// non-rejected field still claims it, then prunes co-occurrence edges that
// no object supports anymore.
func (s *Service) removeFromDepartments(obj *model.Object, department string, relatedNames []string) error {
	for _, f := range obj.FieldsNamed(model.FieldDepartments) {
		if name, ok := departmentName(f.Body); ok && name == department && f.Weight >= 0 {
			return nil
		}
	}

	if err := s.objects.RemoveDepartment(obj.AuthorPermlink, department); err != nil {
		return err
	}

	for _, related := range relatedNames {
		both, err := s.objects.HaveBothDepartments(department, related)
		if err != nil {
			return fmt.Errorf("check departments %s and %s: %w", department, related, err)
		}
		if both {
			continue
		}
		if err := s.departments.RemoveRelated(related, department); err != nil {
			return err
		}
		if err := s.departments.RemoveRelated(department, related); err != nil {
			return err
		}
	}
	return nil
}
