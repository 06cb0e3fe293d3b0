// Package models содержит доменные сущности listings-сервиса.
package models

import "time"

// ListingStatus — статус модерационного жизненного цикла объявления.
type ListingStatus string

const (
	// StatusPendingModeration — начальный статус; присваивается при создании
	// и при любой правке содержимого владельцем (повторная модерация).
	StatusPendingModeration ListingStatus = "pending_moderation"
	// StatusActive — объявление одобрено и видно в публичной ленте.
	StatusActive ListingStatus = "active"
	// StatusRejected — объявление отклонено модератором.
	StatusRejected ListingStatus = "rejected"
	// StatusSold — товар продан; терминальный статус.
	StatusSold ListingStatus = "sold"
)

// Condition — состояние товара (фиксированный перечень).
type Condition string

const (
	ConditionNew           Condition = "new"
	ConditionUsedExcellent Condition = "used-excellent"
	ConditionUsedGood      Condition = "used-good"
	ConditionUsedFair      Condition = "used-fair"
	ConditionForParts      Condition = "for-parts"
)

// CategoryRef — денормализованная копия категории на момент создания объявления.
// Правки справочника не меняют уже созданные объявления (осознанная денормализация).
type CategoryRef struct {
	ID   string
	Name string
}

// SubcategoryRef — денормализованная копия подкатегории.
type SubcategoryRef struct {
	ID   string
	Name string
}

// Listing — внутренняя доменная модель объявления (MongoDB).
// Важно:
//   - ID — ObjectID MongoDB в hex; присваивается хранилищем, неизменяем;
//   - SellerID/SellerUsername — идентификатор и имя продавца из внешнего
//     identity-провайдера; имя фиксируется на момент создания и может устаревать;
//   - Images — упорядоченный список URL, первый элемент — обложка; инвариант 1..5;
//   - Version — монотонный счётчик версий документа для оптимистичной блокировки;
//   - CreatedAt — серверное время, неизменяемо.
type Listing struct {
	ID             string
	Title          string
	Description    string
	Price          float64
	Condition      Condition
	Category       CategoryRef
	Subcategory    SubcategoryRef
	City           string
	Images         []string
	SellerContact  string
	SellerID       string
	SellerUsername string
	Status         ListingStatus
	Version        int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ImageFile — загружаемый файл изображения (содержимое + метаданные).
type ImageFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// ImageCleanupEntry — запись журнала осиротевших изображений.
// Блоб, удаление которого не удалось, фиксируется здесь и дочищается джанитором,
// так что рассинхронизация документов и блобов наблюдаема и устранима.
type ImageCleanupEntry struct {
	ID         string
	URL        string
	Cause      string
	Attempts   int32
	LastError  string
	EnqueuedAt time.Time
	UpdatedAt  time.Time
}
