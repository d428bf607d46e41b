package engine

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/waiviolabs/hive-objects-backend/internal/model"
)

const (
	tagCloudCacheSize = 5
	ratingCacheSize   = 4
)

// applyDerivedUpdates refreshes the cached projections touched by the field.
// It runs after every field append (voter empty) and after every field vote,
// reading the object fresh so vote weights are current.
func (s *Service) applyDerivedUpdates(ctx context.Context, permlink, fieldTxID, voter string, percent int64) error {
	obj, err := s.objects.FindByPermlink(permlink)
	if err != nil {
		s.logger.Warn("skip derived updates, object not found",
			zap.String("permlink", permlink), zap.Error(err))
		return nil
	}
	i := obj.FieldByTransactionID(fieldTxID)
	if i < 0 {
		s.logger.Warn("skip derived updates, field not found",
			zap.String("permlink", permlink),
			zap.String("fieldTransactionId", fieldTxID))
		return nil
	}
	field := obj.Fields[i]

	switch field.Name {
	case model.FieldEmail, model.FieldPhone, model.FieldAddress,
		model.FieldCompanyID, model.FieldProductID, model.FieldBrand,
		model.FieldManufacturer, model.FieldMerchant, model.FieldRecipeIngredients,
		model.FieldName, model.FieldTitle, model.FieldDescription,
		model.FieldCategoryItem:
		return s.addSearchTerms(obj.AuthorPermlink, field)
	case model.FieldParent:
		return s.applyParent(obj)
	case model.FieldTagCloud:
		return s.cacheTopFields(obj, model.FieldTagCloud, tagCloudCacheSize)
	case model.FieldRating:
		return s.cacheTopFields(obj, model.FieldRating, ratingCacheSize)
	case model.FieldMap:
		return s.applyMap(obj)
	case model.FieldStatus:
		return s.applyStatus(ctx, obj)
	case model.FieldAuthority:
		return s.manageAuthority(obj, field, voter, percent)
	case model.FieldAuthors, model.FieldPublisher:
		if err := s.addSearchTerms(obj.AuthorPermlink, field); err != nil {
			return err
		}
		return s.linkBackReference(obj, field)
	case model.FieldDepartments:
		return s.manageDepartments(obj, field, percent)
	case model.FieldGroupID:
		if err := s.addSearchTerms(obj.AuthorPermlink, field); err != nil {
			return err
		}
		return s.propagateMetaGroup(obj)
	}
	return nil
}

func (s *Service) addSearchTerms(permlink string, field model.Field) error {
	terms := searchTerms(field)
	if len(terms) == 0 {
		return nil
	}
	if err := s.objects.AddSearchFields(permlink, terms); err != nil {
		return fmt.Errorf("add search terms to %s: %w", permlink, err)
	}
	return nil
}

// winningField returns the non-rejected field of the given name with the
// highest weight, or nil.
func winningField(obj *model.Object, name string) *model.Field {
	var best *model.Field
	for _, f := range obj.FieldsNamed(name) {
		if f.Weight < 0 {
			continue
		}
		if best == nil || f.Weight > best.Weight {
			f := f
			best = &f
		}
	}
	return best
}

// applyParent caches the winning parent field and, when the object carries
// no map field of its own, inherits the parent's map point.
func (s *Service) applyParent(obj *model.Object) error {
	winner := winningField(obj, model.FieldParent)
	hasOwnMap := len(obj.FieldsNamed(model.FieldMap)) > 0

	if winner == nil {
		if err := s.objects.SetParent(obj.AuthorPermlink, ""); err != nil {
			return err
		}
		if hasOwnMap {
			return nil
		}
		return s.objects.SetMap(obj.AuthorPermlink, nil)
	}

	if err := s.objects.SetParent(obj.AuthorPermlink, winner.Body); err != nil {
		return err
	}
	if hasOwnMap {
		return nil
	}

	parent, err := s.objects.FindByPermlink(winner.Body)
	if err != nil {
		return nil
	}
	point := winningMapPoint(parent)
	if point == nil {
		return nil
	}
	return s.objects.SetMap(obj.AuthorPermlink, point)
}

func winningMapPoint(obj *model.Object) *model.GeoPoint {
	field := winningField(obj, model.FieldMap)
	if field == nil {
		return nil
	}
	return parseMapPoint(field.Body)
}

func parseMapPoint(body string) *model.GeoPoint {
	if !validateMapPoint(body) {
		return nil
	}
	var point struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	}
	if err := json.Unmarshal([]byte(body), &point); err != nil {
		return nil
	}
	return &model.GeoPoint{
		Type:        "Point",
		Coordinates: [2]float64{point.Longitude, point.Latitude},
	}
}

// cacheTopFields stores the bodies of the highest-weighted non-rejected
// fields of the given name, best first.
func (s *Service) cacheTopFields(obj *model.Object, name string, limit int) error {
	bodies := topFieldBodies(obj, name, limit)
	if len(bodies) == 0 {
		return nil
	}
	switch name {
	case model.FieldTagCloud:
		return s.objects.SetTagClouds(obj.AuthorPermlink, bodies)
	case model.FieldRating:
		return s.objects.SetRatings(obj.AuthorPermlink, bodies)
	}
	return nil
}

func topFieldBodies(obj *model.Object, name string, limit int) []string {
	fields := obj.FieldsNamed(name)
	kept := fields[:0]
	for _, f := range fields {
		if f.Weight >= 0 {
			kept = append(kept, f)
		}
	}
	// Insertion sort by weight, descending; field counts here are tiny.
	for i := 1; i < len(kept); i++ {
		for j := i; j > 0 && kept[j].Weight > kept[j-1].Weight; j-- {
			kept[j], kept[j-1] = kept[j-1], kept[j]
		}
	}
	if len(kept) > limit {
		kept = kept[:limit]
	}
	bodies := make([]string, len(kept))
	for i, f := range kept {
		bodies[i] = f.Body
	}
	return bodies
}

// applyMap caches the winning map point and copies it to children that have
// no map field of their own.
func (s *Service) applyMap(obj *model.Object) error {
	point := winningMapPoint(obj)
	if point == nil {
		return nil
	}
	if err := s.objects.SetMap(obj.AuthorPermlink, point); err != nil {
		return err
	}
	children, err := s.objects.ChildrenWithoutMap(obj.AuthorPermlink)
	if err != nil {
		return fmt.Errorf("children of %s: %w", obj.AuthorPermlink, err)
	}
	for _, child := range children {
		if err := s.objects.SetMap(child, point); err != nil {
			return err
		}
	}
	return nil
}

// applyStatus caches the first non-rejected status title, or clears the
// status when none remains. Either way watchers get notified.
func (s *Service) applyStatus(ctx context.Context, obj *model.Object) error {
	var title string
	for _, f := range obj.FieldsNamed(model.FieldStatus) {
		if f.Weight < 0 {
			continue
		}
		var status struct {
			Title string `json:"title"`
		}
		if err := json.Unmarshal([]byte(f.Body), &status); err != nil || status.Title == "" {
			continue
		}
		title = status.Title
		break
	}

	if err := s.objects.SetStatus(obj.AuthorPermlink, title); err != nil {
		return err
	}
	s.notifier.StatusChange(ctx, obj.AuthorPermlink, title)
	return nil
}

// manageAuthority maintains the object's authority sets. Only the field
// creator's own vote (or the initial append) moves their claim; a downvote
// withdraws it and marks the object deselected for that account.
func (s *Service) manageAuthority(obj *model.Object, field model.Field, voter string, percent int64) error {
	if voter != "" && voter != field.Creator {
		return nil
	}
	if percent < 0 {
		if err := s.objects.RevokeAuthority(obj.AuthorPermlink, field.Body, field.Creator); err != nil {
			return err
		}
		return s.restrictions.MarkDeselect(obj.AuthorPermlink, field.Creator)
	}
	if err := s.objects.GrantAuthority(obj.AuthorPermlink, field.Body, field.Creator); err != nil {
		return err
	}
	return s.restrictions.ClearDeselect(obj.AuthorPermlink, field.Creator)
}

// linkBackReference registers the object as a child of the referenced
// author or publisher object.
func (s *Service) linkBackReference(obj *model.Object, field model.Field) error {
	var ref struct {
		AuthorPermlink string `json:"authorPermlink"`
	}
	if err := json.Unmarshal([]byte(field.Body), &ref); err != nil || ref.AuthorPermlink == "" {
		return nil
	}
	return s.objects.AddChild(ref.AuthorPermlink, obj.AuthorPermlink)
}
