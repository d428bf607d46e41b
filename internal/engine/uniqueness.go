package engine

import (
	"encoding/json"
	"strings"

	"github.com/waiviolabs/hive-objects-backend/internal/model"
)

// uniquenessKeys returns the attribute set that makes a field of this name
// unique on an object.
func uniquenessKeys(name string) []string {
	keys := []string{"name", "body", "locale"}
	switch name {
	case model.FieldCategoryItem, model.FieldGalleryAlbum, model.FieldGalleryItem:
		keys = append(keys, "id")
	case model.FieldAffiliateCode, model.FieldAuthority:
		keys = append(keys, "creator")
	case model.FieldPromotion, model.FieldSale:
		keys = append(keys, "startDate", "endDate")
	case model.FieldPhone:
		keys[1] = "number"
	case model.FieldListItem:
		keys = keys[:2]
	}
	return keys
}

func fieldKeyValue(f model.Field, key string) any {
	switch key {
	case "name":
		return f.Name
	case "body":
		return f.Body
	case "locale":
		return f.Locale
	case "id":
		return f.ID
	case "creator":
		return f.Creator
	case "number":
		return f.Number
	case "startDate":
		return f.StartDate
	case "endDate":
		return f.EndDate
	}
	return nil
}

func fieldsEqualOn(a, b model.Field, keys []string) bool {
	for _, key := range keys {
		if fieldKeyValue(a, key) != fieldKeyValue(b, key) {
			return false
		}
	}
	return true
}

// uniqueAmongSameFields reports whether the candidate field may be appended.
// Identifier fields also match a body whose JSON keys are reversed, and url
// is allowed once per object and only on link objects.
func uniqueAmongSameFields(obj *model.Object, field model.Field) bool {
	switch field.Name {
	case model.FieldProductID, model.FieldCompanyID:
		for _, body := range reversedBodyVariants(field.Body) {
			candidate := field
			candidate.Body = body
			for _, existing := range obj.Fields {
				if fieldsEqualOn(candidate, existing, []string{"name", "body", "locale"}) {
					return false
				}
			}
		}
		return true

	case model.FieldURL:
		if obj.ObjectType != model.ObjectTypeLink {
			return false
		}
		return len(obj.FieldsNamed(model.FieldURL)) == 0
	}

	keys := uniquenessKeys(field.Name)
	for _, existing := range obj.Fields {
		if fieldsEqualOn(field, existing, keys) {
			return false
		}
	}
	return true
}

// reversedBodyVariants returns the body and, when it is a JSON object, the
// same object serialized with its keys in reverse order. Identifier bodies
// like {"productIdType":..,"productId":..} arrive in both orders from
// different clients.
func reversedBodyVariants(body string) []string {
	reversed, ok := reverseJSONKeys(body)
	if !ok || reversed == body {
		return []string{body}
	}
	return []string{body, reversed}
}

func reverseJSONKeys(body string) (string, bool) {
	dec := json.NewDecoder(strings.NewReader(body))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return "", false
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return "", false
	}

	type pair struct {
		key   string
		value json.RawMessage
	}
	var pairs []pair
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return "", false
		}
		key, ok := keyTok.(string)
		if !ok {
			return "", false
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return "", false
		}
		pairs = append(pairs, pair{key: key, value: raw})
	}
	if _, err := dec.Token(); err != nil {
		return "", false
	}

	var b strings.Builder
	b.WriteByte('{')
	for i := len(pairs) - 1; i >= 0; i-- {
		if b.Len() > 1 {
			b.WriteByte(',')
		}
		encodedKey, err := json.Marshal(pairs[i].key)
		if err != nil {
			return "", false
		}
		b.Write(encodedKey)
		b.WriteByte(':')
		b.Write(pairs[i].value)
	}
	b.WriteByte('}')
	return b.String(), true
}
