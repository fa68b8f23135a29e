package dto

import "github.com/shopspring/decimal"

type ProductDTO struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Discount    int             `json:"discount"`
	Category    string          `json:"category"`
	Brand       string          `json:"brand"`
	Stock       int             `json:"stock"`
	Images      []string        `json:"images"`
	Tags        []string        `json:"tags"`
	Featured    bool            `json:"featured"`
	Trending    bool            `json:"trending"`
	Status      string          `json:"status"`
}

type StockDTO struct {
	Stock int `json:"stock"`
}

type CategoryDTO struct {
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	Description  string `json:"description"`
	Image        string `json:"image"`
	Featured     bool   `json:"featured"`
	DisplayOrder int    `json:"displayOrder"`
	Active       bool   `json:"active"`
}
