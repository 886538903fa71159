// Package models holds the catalog record stored in products.json.
package models

import (
	"github.com/google/uuid"
)

// Product is one university listing. Validation tags are evaluated by the
// sanitize package; list fields are checked separately there.
type Product struct {
	ID                  string         `json:"id"`
	Maker               string         `json:"maker"`
	Location            string         `json:"location" validate:"required,notblank,max=55"`
	Image               string         `json:"img" validate:"required,notblank,localimage"`
	URL                 string         `json:"url" validate:"required,notblank,startswith=https://"`
	Title               string         `json:"title" validate:"required,notblank,max=55"`
	Description         string         `json:"description" validate:"required,notblank,max=500"`
	Ratings             []int          `json:"ratings"`
	GraduateDegree      []string       `json:"graduateDegree"`
	UnderGraduateDegree []string       `json:"undergraduateDegree"`
	TypeOfUniversity    UniversityType `json:"typeOfUniversity"`
	NumberOfDepartments int            `json:"numberOfDepartments" validate:"min=1,max=500"`
	HasOnlinePrograms   bool           `json:"hasOnlinePrograms"`
	Campuses            []string       `json:"campuses"`
}

// NewProduct returns a product with a random id and empty, non-nil
// collections. NumberOfDepartments starts at the lowest valid value.
func NewProduct() *Product {
	return &Product{
		ID:                  uuid.New().String(),
		Ratings:             []int{},
		GraduateDegree:      []string{},
		UnderGraduateDegree: []string{},
		Campuses:            []string{},
		TypeOfUniversity:    Undefined,
		NumberOfDepartments: 1,
	}
}

// AverageRating returns the mean rating and the number of votes.
func (p *Product) AverageRating() (float64, int) {
	if p == nil || len(p.Ratings) == 0 {
		return 0, 0
	}
	sum := 0
	for _, r := range p.Ratings {
		sum += r
	}
	return float64(sum) / float64(len(p.Ratings)), len(p.Ratings)
}

// Clone returns a deep copy so callers can mutate lists without touching
// the original.
func (p *Product) Clone() *Product {
	if p == nil {
		return nil
	}
	c := *p
	c.Ratings = append([]int(nil), p.Ratings...)
	c.GraduateDegree = append([]string(nil), p.GraduateDegree...)
	c.UnderGraduateDegree = append([]string(nil), p.UnderGraduateDegree...)
	c.Campuses = append([]string(nil), p.Campuses...)
	return &c
}
