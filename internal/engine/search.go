package engine

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/waiviolabs/hive-objects-backend/internal/model"
)

// searchMinGram is the shortest prefix emitted by edge n-gram expansion.
const searchMinGram = 3

const searchPunctuation = ".,%?+*|{}[]()<>\"^'\\-_=!&$:"

// searchTerms extracts the index tokens a field contributes to the object's
// search surface. Fields that carry structured bodies get their searchable
// parts pulled out first.
func searchTerms(field model.Field) []string {
	var raw []string
	switch field.Name {
	case model.FieldPhone:
		raw = []string{phoneSearchTerm(field)}
	case model.FieldAddress:
		raw = addressSearchTerms(field.Body)
	case model.FieldCompanyID, model.FieldProductID:
		raw = idSearchTerms(field.Body)
	case model.FieldAuthors, model.FieldPublisher, model.FieldBrand,
		model.FieldManufacturer, model.FieldMerchant:
		raw = namePropertyTerms(field.Body)
	case model.FieldRecipeIngredients:
		raw = arraySearchTerms(field.Body)
	default:
		raw = []string{searchToken(field.Body)}
	}

	terms := raw[:0]
	for _, t := range raw {
		if t != "" {
			terms = append(terms, t)
		}
	}
	return terms
}

// searchToken strips punctuation, collapses whitespace and expands the
// result into edge n-grams.
func searchToken(raw string) string {
	clean := strings.Map(func(r rune) rune {
		if strings.ContainsRune(searchPunctuation, r) {
			return -1
		}
		return r
	}, strings.TrimSpace(raw))
	clean = strings.Join(strings.Fields(clean), " ")
	return edgeNGrams(clean)
}

// edgeNGrams expands a token into its prefixes of length minGram and up,
// joined by spaces. Tokens at or below minGram pass through unchanged.
func edgeNGrams(token string) string {
	runes := []rune(token)
	if len(runes) <= searchMinGram {
		return token
	}
	var b strings.Builder
	for i := searchMinGram; i <= len(runes); i++ {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(string(runes[:i]))
	}
	return b.String()
}

// phoneSearchTerm prefers the parsed number and falls back to the body with
// punctuation and spaces stripped.
func phoneSearchTerm(field model.Field) string {
	number := field.Number
	if number == "" {
		number = strings.Map(func(r rune) rune {
			if r == ' ' || strings.ContainsRune(searchPunctuation, r) {
				return -1
			}
			return r
		}, field.Body)
		number = strings.TrimSpace(number)
	}
	return edgeNGrams(number)
}

// addressSearchTerms tokenizes each part of a JSON address body.
func addressSearchTerms(body string) []string {
	var address map[string]any
	if err := json.Unmarshal([]byte(body), &address); err != nil {
		return nil
	}
	keys := make([]string, 0, len(address))
	for k := range address {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	terms := make([]string, 0, len(keys))
	for _, k := range keys {
		if v, ok := address[k].(string); ok && v != "" {
			terms = append(terms, searchToken(v))
		}
	}
	return terms
}

// idSearchTerms pulls the external identifier out of a companyId or
// productId JSON body.
func idSearchTerms(body string) []string {
	var id struct {
		CompanyID any `json:"companyId"`
		ProductID any `json:"productId"`
	}
	if err := json.Unmarshal([]byte(body), &id); err != nil {
		return nil
	}
	value := id.CompanyID
	if value == nil {
		value = id.ProductID
	}
	if value == nil {
		return nil
	}
	return []string{searchToken(fmt.Sprint(value))}
}

// namePropertyTerms tokenizes the "name" property of a JSON reference body.
func namePropertyTerms(body string) []string {
	var ref struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal([]byte(body), &ref); err != nil || ref.Name == "" {
		return nil
	}
	return []string{searchToken(ref.Name)}
}

// arraySearchTerms tokenizes every entry of a JSON string array body.
func arraySearchTerms(body string) []string {
	var entries []string
	if err := json.Unmarshal([]byte(body), &entries); err != nil {
		return nil
	}
	terms := make([]string, 0, len(entries))
	for _, e := range entries {
		terms = append(terms, searchToken(e))
	}
	return terms
}
