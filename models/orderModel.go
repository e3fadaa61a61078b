package models

import (
	"time"

	"gorm.io/datatypes"
)

type LineItem struct {
	Qty   int   `json:"qty" bson:"qty"`
	Price int64 `json:"price" bson:"price"`
	Total int64 `json:"total" bson:"total"`
}

// Order is the record written at checkout. OrderNumber is shown to the
// customer only; it is random and may repeat. ID is the identifier.
type Order struct {
	ID          string                        `json:"id" gorm:"primaryKey;size:36" bson:"_id"`
	OrderNumber int                           `json:"orderNumber" bson:"orderNumber"`
	Username    string                        `json:"username" gorm:"size:64" bson:"username"`
	FirstName   string                        `json:"firstName" bson:"firstName"`
	LastName    string                        `json:"lastName" bson:"lastName"`
	City        string                        `json:"city" bson:"city"`
	Postcode    string                        `json:"postcode" gorm:"size:16" bson:"postcode"`
	Phone       string                        `json:"phone" gorm:"size:16" bson:"phone"`
	Address     string                        `json:"address" bson:"address"`
	Date        string                        `json:"date" gorm:"size:16" bson:"date"`
	Items       datatypes.JSONSlice[LineItem] `json:"items" bson:"items"`
	UserID      string                        `json:"userId" gorm:"size:36;index" bson:"userId"`
	ProductIDs  datatypes.JSONSlice[string]   `json:"productIds" bson:"productIds"`
	Delivered   bool                          `json:"delivered" bson:"delivered"`
	CreatedAt   time.Time                     `json:"createdAt" bson:"createdAt"`
}

func (o *Order) Total() int64 {
	var total int64
	for _, item := range o.Items {
		total += item.Total
	}
	return total
}

type CheckoutForm struct {
	FirstName string `form:"firstname"`
	LastName  string `form:"lastname"`
	City      string `form:"city"`
	Postcode  string `form:"postcode"`
	Phone     string `form:"phone"`
	Address   string `form:"address"`
}
