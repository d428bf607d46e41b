package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/waiviolabs/hive-objects-backend/internal/model"
)

// Object types allowed to carry external identifier fields.
var fieldTypeAllowlist = map[string][]model.ObjectType{
	model.FieldCompanyID: {
		model.ObjectTypeBusiness, model.ObjectTypeLink, model.ObjectTypeShop,
		model.ObjectTypeRestaurant, model.ObjectTypeHotel,
	},
	model.FieldProductID: {
		model.ObjectTypeProduct, model.ObjectTypeBook, model.ObjectTypeRecipe,
		model.ObjectTypeCar,
	},
	model.FieldGroupID: {
		model.ObjectTypeProduct, model.ObjectTypeBook, model.ObjectTypePerson,
		model.ObjectTypeRecipe,
	},
}

var weightUnits = map[string]struct{}{
	"t": {}, "kg": {}, "g": {}, "mg": {}, "lb": {}, "oz": {},
}

var dimensionUnits = map[string]struct{}{
	"km": {}, "m": {}, "cm": {}, "mm": {}, "μm": {}, "mi": {}, "yd": {},
	"ft": {}, "in": {},
}

var affiliateGeoAreas = map[string]struct{}{
	"GLOBAL": {}, "AFRICA": {}, "ASIA": {}, "EUROPE": {},
	"NORTH_AMERICA": {}, "OCEANIA": {}, "SOUTH_AMERICA": {},
}

// validateFieldBody runs the structural validator for the field name. It
// returns (false, nil) when the update must be silently skipped and reserves
// errors for store failures. For mapRectangles the field body is rewritten
// to the filtered rectangle set.
func (s *Service) validateFieldBody(ctx context.Context, obj *model.Object, field *model.Field) (bool, error) {
	if !model.KnownFieldName(field.Name) {
		return false, nil
	}

	switch field.Name {
	case model.FieldParent:
		return s.validateParent(obj, field.Body)
	case model.FieldNewsFilter:
		return validateNewsFilter(field.Body), nil
	case model.FieldMap:
		return validateMapPoint(field.Body), nil
	case model.FieldTagCategory:
		return validateTagCategory(obj, field), nil
	case model.FieldCategoryItem:
		return s.validateCategoryItem(obj, field)
	case model.FieldAuthority:
		return validateAuthority(obj, field), nil
	case model.FieldCompanyID, model.FieldGroupID:
		return typeAllowsField(obj.ObjectType, field.Name), nil
	case model.FieldProductID:
		if !typeAllowsField(obj.ObjectType, field.Name) {
			return false, nil
		}
		return validateProductID(field.Body), nil
	case model.FieldOptions:
		return validateOptions(field.Body), nil
	case model.FieldWeightAttr:
		return validateWeight(field.Body), nil
	case model.FieldDimensions:
		return validateDimensions(field.Body), nil
	case model.FieldAuthors:
		return s.validateNameOrPermlink(field.Body, model.ObjectTypePerson)
	case model.FieldPublisher, model.FieldBrand, model.FieldManufacturer, model.FieldMerchant:
		return s.validateNameOrPermlink(field.Body, model.ObjectTypeBusiness)
	case model.FieldPrintLength:
		_, err := strconv.ParseFloat(field.Body, 64)
		return err == nil, nil
	case model.FieldWidget:
		return validateWidget(field.Body), nil
	case model.FieldNewsFeed:
		return validateNewsFeed(field.Body), nil
	case model.FieldDepartments:
		return validateDepartments(field.Body), nil
	case model.FieldFeatures:
		return validateFeatures(field.Body), nil
	case model.FieldPin, model.FieldRemove:
		return s.validatePostLink(ctx, field.Body)
	case model.FieldShopFilter:
		return validateShopFilter(field.Body), nil
	case model.FieldMenuItem:
		return s.validateMenuItem(field.Body)
	case model.FieldRelated, model.FieldAddOn, model.FieldSimilar, model.FieldFeatured:
		return s.objectExists(field.Body)
	case model.FieldAffiliateButton:
		return validHTTPURL(field.Body), nil
	case model.FieldAffiliateIDType:
		return true, nil
	case model.FieldAffiliateGeo:
		_, ok := affiliateGeoAreas[field.Body]
		return ok, nil
	case model.FieldAffiliateURL:
		return strings.Contains(field.Body, "$productId") &&
			strings.Contains(field.Body, "$affiliateCode"), nil
	case model.FieldAffiliateCode:
		return validateAffiliateCode(field.Body), nil
	case model.FieldMapTags, model.FieldMapTypes:
		return validateStringList(field.Body), nil
	case model.FieldMapView, model.FieldMapMobileView:
		return validateMapView(field.Body), nil
	case model.FieldMapRectangles:
		return validateMapRectangles(field), nil
	case model.FieldWalletAddress:
		return validateWalletAddress(field.Body), nil
	case model.FieldSale, model.FieldPromotion:
		return validateTimeLimited(field), nil
	}
	return true, nil
}

func (s *Service) validateParent(obj *model.Object, parent string) (bool, error) {
	if parent == obj.AuthorPermlink {
		return false, nil
	}
	return s.objectExists(parent)
}

func (s *Service) objectExists(permlink string) (bool, error) {
	exists, err := s.objects.Exists(permlink)
	if err != nil {
		return false, fmt.Errorf("object lookup for %s: %w", permlink, err)
	}
	return exists, nil
}

func validateNewsFilter(body string) bool {
	var filter struct {
		AllowList  *[][]string `json:"allowList"`
		IgnoreList *[]string   `json:"ignoreList"`
		TypeList   *[]string   `json:"typeList"`
	}
	if err := json.Unmarshal([]byte(body), &filter); err != nil {
		return false
	}
	return filter.AllowList != nil && filter.IgnoreList != nil && filter.TypeList != nil
}

func validateMapPoint(body string) bool {
	var point struct {
		Latitude  json.Number `json:"latitude"`
		Longitude json.Number `json:"longitude"`
	}
	if err := json.Unmarshal([]byte(body), &point); err != nil {
		return false
	}
	lat, err := point.Latitude.Float64()
	if err != nil {
		return false
	}
	lng, err := point.Longitude.Float64()
	if err != nil {
		return false
	}
	if lat == 0 || lng == 0 {
		return false
	}
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

func validateTagCategory(obj *model.Object, field *model.Field) bool {
	if field.ID == "" {
		return false
	}
	for _, f := range obj.FieldsNamed(model.FieldTagCategory) {
		if f.ID == field.ID {
			return false
		}
	}
	return true
}

func (s *Service) validateCategoryItem(obj *model.Object, field *model.Field) (bool, error) {
	if field.ID == "" {
		return false, nil
	}
	tag, err := s.objects.FindByPermlink(field.Body)
	if err != nil || tag.ObjectType != model.ObjectTypeHashtag {
		return false, nil
	}
	category := false
	for _, f := range obj.FieldsNamed(model.FieldTagCategory) {
		if f.ID == field.ID {
			category = true
			break
		}
	}
	if !category {
		return false, nil
	}
	for _, f := range obj.FieldsNamed(model.FieldCategoryItem) {
		if f.Body == field.Body && f.ID == field.ID {
			return false, nil
		}
	}
	return true, nil
}

func validateAuthority(obj *model.Object, field *model.Field) bool {
	if field.Body != model.AuthorityOwnership && field.Body != model.AuthorityAdministrative {
		return false
	}
	for _, f := range obj.FieldsNamed(model.FieldAuthority) {
		if f.Creator == field.Creator && f.Body == field.Body {
			return false
		}
	}
	return true
}

func typeAllowsField(t model.ObjectType, name string) bool {
	for _, allowed := range fieldTypeAllowlist[name] {
		if t == allowed {
			return true
		}
	}
	return false
}

func validateProductID(body string) bool {
	var id struct {
		ProductIDType  string `json:"productIdType"`
		ProductIDImage string `json:"productIdImage"`
	}
	if err := json.Unmarshal([]byte(body), &id); err != nil {
		return false
	}
	if id.ProductIDType == "" {
		return false
	}
	if id.ProductIDImage != "" && !validHTTPURL(id.ProductIDImage) {
		return false
	}
	return true
}

func validateOptions(body string) bool {
	var opt struct {
		Category *string `json:"category"`
		Value    *string `json:"value"`
	}
	if err := json.Unmarshal([]byte(body), &opt); err != nil {
		return false
	}
	return opt.Category != nil && opt.Value != nil
}

func validateWeight(body string) bool {
	var w struct {
		Value *float64 `json:"value"`
		Unit  string   `json:"unit"`
	}
	if err := json.Unmarshal([]byte(body), &w); err != nil {
		return false
	}
	if w.Value == nil || *w.Value < 0 {
		return false
	}
	_, ok := weightUnits[w.Unit]
	return ok
}

func validateDimensions(body string) bool {
	var d struct {
		Length *float64 `json:"length"`
		Width  *float64 `json:"width"`
		Depth  *float64 `json:"depth"`
		Unit   string   `json:"unit"`
	}
	if err := json.Unmarshal([]byte(body), &d); err != nil {
		return false
	}
	for _, v := range []*float64{d.Length, d.Width, d.Depth} {
		if v == nil || *v < 0 {
			return false
		}
	}
	_, ok := dimensionUnits[d.Unit]
	return ok
}

// validateNameOrPermlink accepts bodies of the form {"name": ...} or
// {"name": ..., "authorPermlink": ...}. A permlink must reference an
// existing object of the wanted type.
func (s *Service) validateNameOrPermlink(body string, wantType model.ObjectType) (bool, error) {
	var ref struct {
		Name           string `json:"name"`
		AuthorPermlink string `json:"authorPermlink"`
	}
	if err := json.Unmarshal([]byte(body), &ref); err != nil {
		return false, nil
	}
	if ref.Name == "" && ref.AuthorPermlink == "" {
		return false, nil
	}
	if ref.AuthorPermlink == "" {
		return true, nil
	}
	obj, err := s.objects.FindByPermlink(ref.AuthorPermlink)
	if err != nil {
		return false, nil
	}
	return obj.ObjectType == wantType, nil
}

func validateWidget(body string) bool {
	var w struct {
		Column  *string `json:"column"`
		Type    *string `json:"type"`
		Content *string `json:"content"`
	}
	if err := json.Unmarshal([]byte(body), &w); err != nil {
		return false
	}
	return w.Column != nil && w.Type != nil && w.Content != nil
}

func validateNewsFeed(body string) bool {
	var feed struct {
		AllowList  [][]string `json:"allowList"`
		IgnoreList []string   `json:"ignoreList"`
		TypeList   []string   `json:"typeList"`
		Authors    []string   `json:"authors"`
	}
	return json.Unmarshal([]byte(body), &feed) == nil
}

func validateDepartments(body string) bool {
	var d struct {
		Department *string `json:"department"`
	}
	if err := json.Unmarshal([]byte(body), &d); err != nil {
		return false
	}
	return d.Department != nil
}

func validateFeatures(body string) bool {
	var f struct {
		Key   *string `json:"key"`
		Value *string `json:"value"`
	}
	if err := json.Unmarshal([]byte(body), &f); err != nil {
		return false
	}
	return f.Key != nil && f.Value != nil
}

// validatePostLink accepts "author/permlink" references to existing posts.
func (s *Service) validatePostLink(ctx context.Context, body string) (bool, error) {
	author, permlink, ok := strings.Cut(body, "/")
	if !ok || author == "" || permlink == "" {
		return false, nil
	}
	exists, err := s.posts.Exists(ctx, author, permlink)
	if err != nil {
		return false, fmt.Errorf("post lookup for %s: %w", body, err)
	}
	return exists, nil
}

func validateShopFilter(body string) bool {
	var filter struct {
		Type        *string     `json:"type"`
		Departments *[][]string `json:"departments"`
		Tags        *[]string   `json:"tags"`
		Authorities *[]string   `json:"authorities"`
	}
	if err := json.Unmarshal([]byte(body), &filter); err != nil {
		return false
	}
	return filter.Type != nil || filter.Departments != nil ||
		filter.Tags != nil || filter.Authorities != nil
}

func (s *Service) validateMenuItem(body string) (bool, error) {
	var item struct {
		Style        *string `json:"style"`
		LinkToObject string  `json:"linkToObject"`
		ObjectType   string  `json:"objectType"`
		LinkToWeb    string  `json:"linkToWeb"`
	}
	if err := json.Unmarshal([]byte(body), &item); err != nil {
		return false, nil
	}
	if item.Style == nil {
		return false, nil
	}
	if item.LinkToObject == "" && item.LinkToWeb == "" {
		return false, nil
	}
	if item.LinkToWeb != "" && !validHTTPURL(item.LinkToWeb) {
		return false, nil
	}
	if item.LinkToObject == "" {
		return true, nil
	}
	if item.ObjectType == "" {
		return false, nil
	}
	return s.objectExists(item.LinkToObject)
}

// validateAffiliateCode accepts a JSON array of at least two strings: a host
// marker followed by one or more codes. Multiple codes carry usage chances
// as "code::chance"; the chances must be positive and sum to 100.
func validateAffiliateCode(body string) bool {
	var entries []string
	if err := json.Unmarshal([]byte(body), &entries); err != nil {
		return false
	}
	if len(entries) < 2 {
		return false
	}
	codes := entries[1:]
	if len(codes) < 2 {
		return true
	}
	var sum float64
	for _, code := range codes {
		_, chance, ok := strings.Cut(code, "::")
		if !ok {
			return false
		}
		v, err := strconv.ParseFloat(chance, 64)
		if err != nil || v <= 0 {
			return false
		}
		sum += v
	}
	return sum == 100
}

func validateStringList(body string) bool {
	var entries []string
	if err := json.Unmarshal([]byte(body), &entries); err != nil {
		return false
	}
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		seen[e] = struct{}{}
	}
	return len(seen) >= 1
}

type mapCorner [2]float64

// valid reports whether the corner is a [longitude, latitude] pair in range.
func (c mapCorner) valid() bool {
	return c[0] >= -180 && c[0] <= 180 && c[1] >= -90 && c[1] <= 90
}

func validateMapView(body string) bool {
	var view struct {
		TopPoint    *mapCorner  `json:"topPoint"`
		BottomPoint *mapCorner  `json:"bottomPoint"`
		Center      *[2]float64 `json:"center"`
		Zoom        *float64    `json:"zoom"`
	}
	if err := json.Unmarshal([]byte(body), &view); err != nil {
		return false
	}
	if view.TopPoint == nil || view.BottomPoint == nil || view.Center == nil {
		return false
	}
	if !view.TopPoint.valid() || !view.BottomPoint.valid() {
		return false
	}
	if view.Zoom != nil && (*view.Zoom < 1 || *view.Zoom > 18) {
		return false
	}
	return true
}

type mapRectangle struct {
	TopPoint    mapCorner `json:"topPoint"`
	BottomPoint mapCorner `json:"bottomPoint"`
}

// contains reports whether inner lies entirely within outer.
func (outer mapRectangle) contains(inner mapRectangle) bool {
	return inner.TopPoint[0] >= outer.TopPoint[0] &&
		inner.BottomPoint[0] <= outer.BottomPoint[0] &&
		inner.TopPoint[1] >= outer.TopPoint[1] &&
		inner.BottomPoint[1] <= outer.BottomPoint[1]
}

// validateMapRectangles checks corner bounds and rewrites the field body to
// drop rectangles fully contained in another.
func validateMapRectangles(field *model.Field) bool {
	var rects []mapRectangle
	if err := json.Unmarshal([]byte(field.Body), &rects); err != nil {
		return false
	}
	for _, r := range rects {
		if !r.TopPoint.valid() || !r.BottomPoint.valid() {
			return false
		}
	}
	kept := make([]mapRectangle, 0, len(rects))
	for i, r := range rects {
		contained := false
		for j, other := range rects {
			if i != j && other.contains(r) {
				contained = true
				break
			}
		}
		if !contained {
			kept = append(kept, r)
		}
	}
	body, err := json.Marshal(kept)
	if err != nil {
		return false
	}
	field.Body = string(body)
	return true
}

func validateWalletAddress(body string) bool {
	var addr struct {
		Symbol  *string `json:"symbol"`
		Address *string `json:"address"`
	}
	if err := json.Unmarshal([]byte(body), &addr); err != nil {
		return false
	}
	return addr.Symbol != nil && addr.Address != nil
}

// validateTimeLimited checks the sale and promotion window: either both
// dates are unset, or both are set with the end after the start.
func validateTimeLimited(field *model.Field) bool {
	if field.StartDate == 0 && field.EndDate == 0 {
		return true
	}
	if field.StartDate == 0 || field.EndDate == 0 {
		return false
	}
	return field.EndDate > field.StartDate
}

func validHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && u.Scheme != "" && u.Host != ""
}
