// Package taxonomy содержит статические справочные данные маркетплейса:
// категории с подкатегориями, перечень состояний товара и список городов.
// Данные только для чтения и разделяются всеми компонентами; объявления
// хранят денормализованные копии, поэтому правки справочника не влияют
// на уже созданные записи.
package taxonomy

import "github.com/skrmarket/listings-service/internal/models"

// Category — категория справочника с вложенными подкатегориями.
type Category struct {
	ID            string
	Name          string
	Subcategories []Subcategory
}

// Subcategory — подкатегория справочника.
type Subcategory struct {
	ID   string
	Name string
}

// Categories — полный перечень категорий.
var Categories = []Category{
	{
		ID:   "clothing",
		Name: "Одежда",
		Subcategories: []Subcategory{
			{ID: "hoodies", Name: "Худи"},
			{ID: "longsleeves", Name: "Лонгсливы"},
			{ID: "sweatshirts", Name: "Свитшоты"},
			{ID: "tshirts", Name: "Футболки"},
			{ID: "pants", Name: "Штаны"},
			{ID: "outerwear", Name: "Верхняя одежда"},
		},
	},
	{
		ID:   "vapes",
		Name: "Поды, Вейпы",
		Subcategories: []Subcategory{
			{ID: "vape_liquids", Name: "Жидкости для вейпов"},
			{ID: "cartridges", Name: "Картриджи"},
			{ID: "pods", Name: "POD-системы"},
			{ID: "vape_devices", Name: "Вейп устройства"},
			{ID: "coils", Name: "Испарители"},
		},
	},
	{
		ID:   "electronics",
		Name: "Электроника",
		Subcategories: []Subcategory{
			{ID: "phones", Name: "Телефоны"},
			{ID: "laptops", Name: "Ноутбуки"},
			{ID: "tablets", Name: "Планшеты"},
			{ID: "accessories", Name: "Аксессуары"},
		},
	},
	{
		ID:   "furniture",
		Name: "Мебель",
		Subcategories: []Subcategory{
			{ID: "sofas", Name: "Диваны"},
			{ID: "tables", Name: "Столы"},
			{ID: "chairs", Name: "Стулья"},
			{ID: "beds", Name: "Кровати"},
		},
	},
	{
		ID:   "other",
		Name: "Разное",
		Subcategories: []Subcategory{
			{ID: "other_items", Name: "Прочее"},
		},
	},
}

// Conditions — допустимые состояния товара.
var Conditions = []models.Condition{
	models.ConditionNew,
	models.ConditionUsedExcellent,
	models.ConditionUsedGood,
	models.ConditionUsedFair,
	models.ConditionForParts,
}

// Cities — перечень городов.
var Cities = []string{
	"Киев", "Харьков", "Одесса", "Днепр", "Донецк",
	"Запорожье", "Львов", "Кривой Рог", "Николаев", "Мариуполь",
	"Луганск", "Винница", "Макеевка", "Севастополь", "Симферополь",
	"Херсон", "Полтава", "Чернигов", "Черкассы", "Хмельницкий",
	"Черновцы", "Житомир", "Сумы", "Ровно", "Ивано-Франковск",
	"Кропивницкий", "Тернополь", "Луцк", "Белая Церковь", "Краматорск",
	"Мелитополь", "Ужгород", "Бердянск", "Павлоград", "Каменец-Подольский",
}

// Resolve возвращает денормализованные копии категории/подкатегории по их id.
// Второе значение false, если категория неизвестна либо подкатегория
// не принадлежит выбранной категории.
func Resolve(categoryID, subcategoryID string) (models.CategoryRef, models.SubcategoryRef, bool) {
	for _, c := range Categories {
		if c.ID != categoryID {
			continue
		}

		for _, sub := range c.Subcategories {
			if sub.ID == subcategoryID {
				return models.CategoryRef{ID: c.ID, Name: c.Name},
					models.SubcategoryRef{ID: sub.ID, Name: sub.Name},
					true
			}
		}

		return models.CategoryRef{}, models.SubcategoryRef{}, false
	}

	return models.CategoryRef{}, models.SubcategoryRef{}, false
}

// ValidCondition проверяет, что состояние входит в фиксированный перечень.
func ValidCondition(c models.Condition) bool {
	for _, known := range Conditions {
		if known == c {
			return true
		}
	}

	return false
}

// ValidCity проверяет, что город входит в перечень.
func ValidCity(city string) bool {
	for _, known := range Cities {
		if known == city {
			return true
		}
	}

	return false
}
