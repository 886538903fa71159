package models

import (
	"strings"
	"testing"

	"github.com/goccy/go-json"
)

func TestNewProductDefaults(t *testing.T) {
	p := NewProduct()
	if p.ID == "" {
		t.Fatal("expected random id")
	}
	if p.Ratings == nil || p.Campuses == nil || p.GraduateDegree == nil || p.UnderGraduateDegree == nil {
		t.Fatalf("expected non-nil collections, got %+v", p)
	}
	if p.NumberOfDepartments != 1 || p.TypeOfUniversity != Undefined {
		t.Fatalf("unexpected defaults %+v", p)
	}
	if NewProduct().ID == p.ID {
		t.Fatal("expected distinct ids")
	}
}

func TestProductJSONFieldNames(t *testing.T) {
	p := NewProduct()
	p.ID = "uw"
	p.Image = "/images/UW_20240101000000.png"
	p.TypeOfUniversity = Private

	body, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	s := string(body)
	for _, want := range []string{`"id":"uw"`, `"img":"/images/UW_20240101000000.png"`, `"typeOfUniversity":"Private"`, `"undergraduateDegree":[]`} {
		if !strings.Contains(s, want) {
			t.Errorf("expected %s in %s", want, s)
		}
	}
}

func TestProductJSONCaseInsensitiveRead(t *testing.T) {
	raw := `{"Id":"p1","Title":"Test Product","IMG":"/images/a.png","Ratings":[1],"TypeOfUniversity":"public"}`
	var p Product
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if p.ID != "p1" || p.Title != "Test Product" || p.Image != "/images/a.png" {
		t.Fatalf("unexpected product %+v", p)
	}
	if len(p.Ratings) != 1 || p.TypeOfUniversity != Public {
		t.Fatalf("unexpected ratings/type %+v", p)
	}
}

func TestUniversityTypeUnmarshalDegrades(t *testing.T) {
	tests := []struct {
		raw  string
		want UniversityType
	}{
		{`"Public"`, Public},
		{`"community"`, Community},
		{`"5"`, Private},
		{`" 24 "`, Other},
		{`10`, Online},
		{`18`, Community},
		{`""`, Undefined},
		{`"   "`, Undefined},
		{`"7"`, Undefined},
		{`"University"`, Undefined},
		{`7`, Undefined},
		{`1.5`, Undefined},
		{`99999999999`, Undefined},
		{`true`, Undefined},
		{`null`, Undefined},
		{`[1]`, Undefined},
		{`{"a":1}`, Undefined},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			var p struct {
				Type UniversityType `json:"type"`
			}
			if err := json.Unmarshal([]byte(`{"type":`+tt.raw+`}`), &p); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p.Type != tt.want {
				t.Fatalf("got %v, want %v", p.Type, tt.want)
			}
		})
	}
}

func TestUniversityTypeMarshalUnknownIsUndefined(t *testing.T) {
	body, err := json.Marshal(UniversityType(3))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(body) != `"Undefined"` {
		t.Fatalf("got %s", body)
	}
}

func TestLookupUniversityType(t *testing.T) {
	if typ, ok := LookupUniversityType("PRIVATE"); !ok || typ != Private {
		t.Errorf("expected Private, got %v %v", typ, ok)
	}
	if _, ok := LookupUniversityType("999"); ok {
		t.Error("expected undefined numeric to be rejected")
	}
	if typ, ok := LookupUniversityType("undefined"); !ok || typ != Undefined {
		t.Errorf("expected Undefined to resolve, got %v %v", typ, ok)
	}
}

func TestAverageRatingAndClone(t *testing.T) {
	p := &Product{Ratings: []int{1, 2, 3, 4}}
	avg, n := p.AverageRating()
	if avg != 2.5 || n != 4 {
		t.Fatalf("got %v over %d", avg, n)
	}
	c := p.Clone()
	c.Ratings[0] = 5
	if p.Ratings[0] != 1 {
		t.Fatal("clone shares ratings with original")
	}
}
