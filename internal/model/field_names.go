package model

// Field names recognized by the update pipeline. Unknown names pass the
// structural validator untouched; these constants exist so the uniqueness,
// validation and derived-update tables dispatch on one spelling.
const (
	FieldName              = "name"
	FieldTitle             = "title"
	FieldDescription       = "description"
	FieldBody              = "body"
	FieldParent            = "parent"
	FieldTagCloud          = "tagCloud"
	FieldRating            = "rating"
	FieldMap               = "map"
	FieldStatus            = "status"
	FieldAuthority         = "authority"
	FieldEmail             = "email"
	FieldPhone             = "phone"
	FieldAddress           = "address"
	FieldWebsite           = "website"
	FieldURL               = "url"
	FieldAvatar            = "avatar"
	FieldBackground        = "background"
	FieldLink              = "link"
	FieldCategoryItem      = "categoryItem"
	FieldTagCategory       = "tagCategory"
	FieldGalleryAlbum      = "galleryAlbum"
	FieldGalleryItem       = "galleryItem"
	FieldListItem          = "listItem"
	FieldMenuItem          = "menuItem"
	FieldNewsFilter        = "newsFilter"
	FieldNewsFeed          = "newsFeed"
	FieldCompanyID         = "companyId"
	FieldProductID         = "productId"
	FieldGroupID           = "groupId"
	FieldOptions           = "options"
	FieldWeightAttr        = "weight"
	FieldDimensions        = "dimensions"
	FieldFeatures          = "features"
	FieldBrand             = "brand"
	FieldManufacturer      = "manufacturer"
	FieldMerchant          = "merchant"
	FieldAuthors           = "authors"
	FieldPublisher         = "publisher"
	FieldPrintLength       = "printLength"
	FieldPublicationDate   = "publicationDate"
	FieldDepartments       = "departments"
	FieldShopFilter        = "shopFilter"
	FieldWidget            = "widget"
	FieldHTMLContent       = "htmlContent"
	FieldPromotion         = "promotion"
	FieldSale              = "sale"
	FieldAffiliateButton   = "affiliateButton"
	FieldAffiliateURL      = "affiliateUrlTemplate"
	FieldAffiliateIDType   = "affiliateProductIdTypes"
	FieldAffiliateGeo      = "affiliateGeoArea"
	FieldAffiliateCode     = "affiliateCode"
	FieldMapTypes          = "mapObjectTypes"
	FieldMapTags           = "mapObjectTags"
	FieldMapView           = "mapDesktopView"
	FieldMapMobileView     = "mapMobileView"
	FieldMapRectangles     = "mapRectangles"
	FieldWalletAddress     = "walletAddress"
	FieldDelegation        = "delegation"
	FieldRelated           = "related"
	FieldAddOn             = "addOn"
	FieldSimilar           = "similar"
	FieldFeatured          = "featured"
	FieldPin               = "pin"
	FieldRemove            = "remove"
	FieldRecipeIngredients = "recipeIngredients"
	FieldCookingTime       = "cookingTime"
	FieldCalories          = "calories"
	FieldBudget            = "budget"
)

// Authority levels accepted as an authority field body.
const (
	AuthorityOwnership      = "ownership"
	AuthorityAdministrative = "administrative"
)

var knownFieldNames = map[string]struct{}{
	FieldName: {}, FieldTitle: {}, FieldDescription: {}, FieldBody: {},
	FieldParent: {}, FieldTagCloud: {}, FieldRating: {}, FieldMap: {},
	FieldStatus: {}, FieldAuthority: {}, FieldEmail: {}, FieldPhone: {},
	FieldAddress: {}, FieldWebsite: {}, FieldURL: {}, FieldAvatar: {},
	FieldBackground: {}, FieldLink: {}, FieldCategoryItem: {},
	FieldTagCategory: {}, FieldGalleryAlbum: {}, FieldGalleryItem: {},
	FieldListItem: {}, FieldMenuItem: {}, FieldNewsFilter: {}, FieldNewsFeed: {},
	FieldCompanyID: {}, FieldProductID: {}, FieldGroupID: {}, FieldOptions: {},
	FieldWeightAttr: {}, FieldDimensions: {}, FieldFeatures: {}, FieldBrand: {},
	FieldManufacturer: {}, FieldMerchant: {}, FieldAuthors: {}, FieldPublisher: {},
	FieldPrintLength: {}, FieldPublicationDate: {}, FieldDepartments: {},
	FieldShopFilter: {}, FieldWidget: {}, FieldHTMLContent: {}, FieldPromotion: {},
	FieldSale: {}, FieldAffiliateButton: {}, FieldAffiliateURL: {},
	FieldAffiliateIDType: {}, FieldAffiliateGeo: {}, FieldAffiliateCode: {},
	FieldMapTypes: {}, FieldMapTags: {}, FieldMapView: {}, FieldMapMobileView: {},
	FieldMapRectangles: {}, FieldWalletAddress: {}, FieldDelegation: {},
	FieldRelated: {}, FieldAddOn: {}, FieldSimilar: {}, FieldFeatured: {},
	FieldPin: {}, FieldRemove: {}, FieldRecipeIngredients: {},
	FieldCookingTime: {}, FieldCalories: {}, FieldBudget: {},
}

// KnownFieldName reports whether the update pipeline accepts fields of this
// name at all.
func KnownFieldName(name string) bool {
	_, ok := knownFieldNames[name]
	return ok
}
