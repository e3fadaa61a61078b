package models

import "time"

type CartItem struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Category  string `json:"category"`
	ImageURL  string `json:"imageUrl"`
	Qty       int    `json:"qty"`
}

func (i CartItem) Total() int64 {
	return i.Price * int64(i.Qty)
}

// Cart belongs to one browser session and is addressed by the session's cart key.
type Cart struct {
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

func (c *Cart) IsEmpty() bool {
	return c == nil || len(c.Items) == 0
}

// IndexOf returns the position of the product's entry, or -1.
func (c *Cart) IndexOf(productID string) int {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// Prune drops every entry whose quantity is no longer positive.
func (c *Cart) Prune() {
	kept := c.Items[:0]
	for _, item := range c.Items {
		if item.Qty > 0 {
			kept = append(kept, item)
		}
	}
	c.Items = kept
}

func (c *Cart) Total() int64 {
	var total int64
	for _, item := range c.Items {
		total += item.Total()
	}
	return total
}

func (c *Cart) Count() int {
	n := 0
	for _, item := range c.Items {
		n += item.Qty
	}
	return n
}
