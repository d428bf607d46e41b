package engine

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/google/uuid"

	"github.com/waiviolabs/hive-objects-backend/internal/model"
)

// supposedUpdate seeds one family of starter fields for a new object.
// withID stamps a generated id on each field; tagCategory seeds additionally
// link their category items by value.
type supposedUpdate struct {
	name   string
	values []string
	withID bool
}

var supposedUpdatesByType = map[model.ObjectType][]supposedUpdate{
	model.ObjectTypeRestaurant: {
		{name: model.FieldTagCategory, values: []string{"Cuisine", "Features", "Good For", "Price"}, withID: true},
		{name: model.FieldRating, values: []string{"Food", "Service", "Ambience", "Value"}},
	},
	model.ObjectTypeDish: {
		{name: model.FieldTagCategory, values: []string{"Category", "Ingredients"}, withID: true},
		{name: model.FieldRating, values: []string{"Taste", "Value"}},
	},
	model.ObjectTypeDrink: {
		{name: model.FieldTagCategory, values: []string{"Category", "Ingredients"}, withID: true},
		{name: model.FieldRating, values: []string{"Taste", "Value"}},
	},
}

// supposedUpdateTranslations localizes seeded field bodies. A missing locale
// falls back to en-US, then to the raw value.
var supposedUpdateTranslations = map[string]map[string]string{
	"Cuisine":     {"en-US": "Cuisine", "ru-RU": "Кухня", "uk-UA": "Кухня"},
	"Features":    {"en-US": "Features", "ru-RU": "Особенности", "uk-UA": "Особливості"},
	"Good For":    {"en-US": "Good For", "ru-RU": "Подходит для", "uk-UA": "Підходить для"},
	"Price":       {"en-US": "Price", "ru-RU": "Цена", "uk-UA": "Ціна"},
	"Food":        {"en-US": "Food", "ru-RU": "Еда", "uk-UA": "Їжа"},
	"Service":     {"en-US": "Service", "ru-RU": "Обслуживание", "uk-UA": "Обслуговування"},
	"Ambience":    {"en-US": "Ambience", "ru-RU": "Атмосфера", "uk-UA": "Атмосфера"},
	"Value":       {"en-US": "Value", "ru-RU": "Соотношение цена/качество", "uk-UA": "Співвідношення ціна/якість"},
	"Category":    {"en-US": "Category", "ru-RU": "Категория", "uk-UA": "Категорія"},
	"Ingredients": {"en-US": "Ingredients", "ru-RU": "Ингредиенты", "uk-UA": "Інгредієнти"},
	"Taste":       {"en-US": "Taste", "ru-RU": "Вкус", "uk-UA": "Смак"},
}

func translateSupposedValue(value, locale string) string {
	translations, ok := supposedUpdateTranslations[value]
	if !ok {
		return value
	}
	if body, ok := translations[locale]; ok {
		return body
	}
	if body, ok := translations["en-US"]; ok {
		return body
	}
	return value
}

func buildSupposedUpdates(obj *model.Object, locale string) model.ImportWobject {
	out := model.ImportWobject{
		ObjectType:     obj.ObjectType,
		AuthorPermlink: obj.AuthorPermlink,
	}
	for _, update := range supposedUpdatesByType[obj.ObjectType] {
		for _, value := range update.values {
			field := model.ImportField{
				Name:     update.name,
				Body:     translateSupposedValue(value, locale),
				Permlink: supposedUpdatePermlink(obj.AuthorPermlink, update.name),
				Creator:  obj.Creator,
				Locale:   locale,
			}
			if update.withID {
				field.ID = uuid.NewString()
				if update.name == model.FieldTagCategory {
					field.TagCategory = value
				}
			}
			out.Fields = append(out.Fields, field)
		}
	}
	return out
}

func supposedUpdatePermlink(permlink, fieldName string) string {
	return fmt.Sprintf("%s-%s-%s", permlink, strings.ToLower(fieldName), randomSuffix(5))
}

const suffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

func randomSuffix(n int) string {
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		b.WriteByte(suffixAlphabet[rand.Intn(len(suffixAlphabet))])
	}
	return b.String()
}
