package model

// ObjectType classifies an object. The set is closed; unknown types are
// rejected at creation time.
type ObjectType string

const (
	ObjectTypeHashtag    ObjectType = "hashtag"
	ObjectTypeList       ObjectType = "list"
	ObjectTypePage       ObjectType = "page"
	ObjectTypeRestaurant ObjectType = "restaurant"
	ObjectTypeDish       ObjectType = "dish"
	ObjectTypeDrink      ObjectType = "drink"
	ObjectTypeBusiness   ObjectType = "business"
	ObjectTypeProduct    ObjectType = "product"
	ObjectTypeBook       ObjectType = "book"
	ObjectTypePerson     ObjectType = "person"
	ObjectTypePlace      ObjectType = "place"
	ObjectTypeHotel      ObjectType = "hotel"
	ObjectTypeCrypto     ObjectType = "crypto"
	ObjectTypeCar        ObjectType = "car"
	ObjectTypeLink       ObjectType = "link"
	ObjectTypeShop       ObjectType = "shop"
	ObjectTypeGroup      ObjectType = "group"
	ObjectTypeWidget     ObjectType = "widget"
	ObjectTypeNewsfeed   ObjectType = "newsfeed"
	ObjectTypeMap        ObjectType = "map"
	ObjectTypeAffiliate  ObjectType = "affiliate"
	ObjectTypeWebpage    ObjectType = "webpage"
	ObjectTypeRecipe     ObjectType = "recipe"
)

// ValidObjectType reports whether t belongs to the closed type set.
func ValidObjectType(t ObjectType) bool {
	switch t {
	case ObjectTypeHashtag, ObjectTypeList, ObjectTypePage, ObjectTypeRestaurant,
		ObjectTypeDish, ObjectTypeDrink, ObjectTypeBusiness, ObjectTypeProduct,
		ObjectTypeBook, ObjectTypePerson, ObjectTypePlace, ObjectTypeHotel,
		ObjectTypeCrypto, ObjectTypeCar, ObjectTypeLink, ObjectTypeShop,
		ObjectTypeGroup, ObjectTypeWidget, ObjectTypeNewsfeed, ObjectTypeMap,
		ObjectTypeAffiliate, ObjectTypeWebpage, ObjectTypeRecipe:
		return true
	}
	return false
}

// GroupParticipant reports whether objects of type t join meta groups via
// groupId fields and get a metaGroupId stamped at creation.
func GroupParticipant(t ObjectType) bool {
	switch t {
	case ObjectTypeProduct, ObjectTypeBook, ObjectTypePerson, ObjectTypeRecipe:
		return true
	}
	return false
}

// ActiveVote is one account's current vote on a field. Percent is the signed
// vote strength in [-10000, 10000]; Weight is percent scaled by the voter's
// token stake.
type ActiveVote struct {
	Voter     string  `json:"voter"`
	Percent   int64   `json:"percent"`
	Weight    float64 `json:"weight"`
	Timestamp string  `json:"timestamp,omitempty"`
}

// Field is one appended update on an object.
type Field struct {
	Name          string       `json:"name"`
	Body          string       `json:"body"`
	Locale        string       `json:"locale,omitempty"`
	Creator       string       `json:"creator"`
	Author        string       `json:"author,omitempty"`
	TransactionID string       `json:"transactionId"`
	Weight        float64      `json:"weight"`
	ID            string       `json:"id,omitempty"`
	TagCategory   string       `json:"tagCategory,omitempty"`
	Number        string       `json:"number,omitempty"`
	StartDate     int64        `json:"startDate,omitempty"`
	EndDate       int64        `json:"endDate,omitempty"`
	ActiveVotes   []ActiveVote `json:"active_votes,omitempty"`
}

// VoteBy returns the voter's active vote on the field, if any.
func (f Field) VoteBy(voter string) (ActiveVote, bool) {
	for _, v := range f.ActiveVotes {
		if v.Voter == voter {
			return v, true
		}
	}
	return ActiveVote{}, false
}

// GeoPoint is a GeoJSON point: coordinates are [longitude, latitude].
type GeoPoint struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

// Authority holds the accounts claiming each authority level over an object.
type Authority struct {
	Ownership      []string `json:"ownership,omitempty"`
	Administrative []string `json:"administrative,omitempty"`
}

// Object is the stored document for one platform object.
type Object struct {
	AuthorPermlink string     `json:"author_permlink"`
	Author         string     `json:"author"`
	Creator        string     `json:"creator"`
	DefaultName    string     `json:"default_name"`
	ObjectType     ObjectType `json:"object_type"`
	TransactionID  string     `json:"transactionId"`
	MetaGroupID    string     `json:"metaGroupId,omitempty"`
	Fields         []Field    `json:"fields"`
	Authority      Authority  `json:"authority"`

	// Cached projections maintained by the derived-update dispatch. They
	// duplicate information recoverable from Fields so readers never have
	// to fold votes.
	SearchFields []string  `json:"search,omitempty"`
	Parent       string    `json:"parent,omitempty"`
	Children     []string  `json:"children,omitempty"`
	Departments  []string  `json:"departments,omitempty"`
	TagClouds    []string  `json:"tagClouds,omitempty"`
	Ratings      []string  `json:"ratings,omitempty"`
	Status       string    `json:"status,omitempty"`
	Map          *GeoPoint `json:"map,omitempty"`
}

// FieldByTransactionID returns the index of the field appended by the given
// transaction, or -1.
func (o *Object) FieldByTransactionID(txID string) int {
	for i := range o.Fields {
		if o.Fields[i].TransactionID == txID {
			return i
		}
	}
	return -1
}

// FieldsNamed returns all fields with the given name, in append order.
func (o *Object) FieldsNamed(name string) []Field {
	var out []Field
	for _, f := range o.Fields {
		if f.Name == name {
			out = append(out, f)
		}
	}
	return out
}
