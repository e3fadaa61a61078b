package models

import "time"

const (
	CategorySofa = "sofa"
	CategoryDesk = "desk"
	CategoryLamp = "lamp"
)

var Categories = []string{CategorySofa, CategoryDesk, CategoryLamp}

func IsCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

type Product struct {
	ID       string `json:"id" gorm:"primaryKey;size:36" bson:"_id"`
	Name     string `json:"name" gorm:"size:191;uniqueIndex;not null" bson:"name"`
	Price    int64  `json:"price" gorm:"not null" bson:"price"`
	Category string `json:"category" gorm:"size:16;index" bson:"category"`
	ImageURL string `json:"imageUrl" bson:"imageUrl"`
	ImageKey string `json:"imageKey" bson:"imageKey"`
	// SalesQty stays nil until the product is first sold.
	SalesQty  *int      `json:"salesQty" bson:"salesQty,omitempty"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

func (p *Product) Sold() int {
	if p.SalesQty == nil {
		return 0
	}
	return *p.SalesQty
}

// ProductForm is the admin add/edit form. Price stays a string so an empty
// field can be told apart from a malformed one.
type ProductForm struct {
	Name     string `form:"productName"`
	Price    string `form:"productPrice"`
	Category string `form:"productCategory"`
}
