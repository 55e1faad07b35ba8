package company

import (
	"time"

	"github.com/jacentio/companies/store"
)

// TimestampLayout is the updated_at format: UTC, second precision, literal Z.
const TimestampLayout = "2006-01-02T15:04:05Z"

// FormatTimestamp renders t in TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// Record is a stored company record as returned by Create and Update.
// URL is nil when the item has no url attribute.
type Record struct {
	ID        string  `dynamodbav:"id" json:"id"`
	Company   string  `dynamodbav:"company" json:"company"`
	Location  string  `dynamodbav:"location" json:"location"`
	URL       *string `dynamodbav:"url,omitempty" json:"url,omitempty"`
	UpdatedAt string  `dynamodbav:"updated_at" json:"updated_at"`
}

// View is the list projection of a record. Attributes missing from the
// stored item are nil and encode as JSON null.
type View struct {
	ID        *string `json:"id"`
	Company   *string `json:"company"`
	Location  *string `json:"location"`
	URL       *string `json:"url"`
	UpdatedAt *string `json:"updated_at"`
}

// NewView projects a stored item to a View.
func NewView(item *store.Item) View {
	return View{
		ID:        stringAttr(item, "id"),
		Company:   stringAttr(item, FieldCompany),
		Location:  stringAttr(item, FieldLocation),
		URL:       stringAttr(item, FieldURL),
		UpdatedAt: stringAttr(item, "updated_at"),
	}
}

func stringAttr(item *store.Item, attr string) *string {
	v, ok := item.String(attr)
	if !ok {
		return nil
	}
	return &v
}
