// Package catalog serves the read-only product fixture bundled with the binary.
package catalog

import (
	_ "embed"
	"fmt"
	"sort"

	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/domain/entity"
	"gopkg.in/yaml.v3"
)

//go:embed fixtures/catalog.yaml
var defaultFixture []byte

type Seller struct {
	Username string `yaml:"username" json:"username"`
	Name     string `yaml:"name" json:"name"`
}

type productRecord struct {
	ID           string          `yaml:"id"`
	Username     string          `yaml:"username"`
	Caption      string          `yaml:"caption"`
	Details      string          `yaml:"details"`
	Price        string          `yaml:"price"`
	DeliveryFee  string          `yaml:"delivery_fee"`
	PostImage    string          `yaml:"post_image"`
	ProfileImage string          `yaml:"profile_image"`
	Size         string          `yaml:"size"`
	Color        string          `yaml:"color"`
	Likes        int             `yaml:"likes"`
	Comments     []commentRecord `yaml:"comments"`
	Latitude     *float64        `yaml:"latitude"`
	Longitude    *float64        `yaml:"longitude"`
}

type commentRecord struct {
	Username string `yaml:"username"`
	Text     string `yaml:"text"`
}

type demoCollection struct {
	Name  string   `yaml:"name"`
	Items []string `yaml:"items"`
}

type fixtureFile struct {
	Sellers  []Seller        `yaml:"sellers"`
	Products []productRecord `yaml:"products"`
	Posts    []productRecord `yaml:"posts"`
	Demo     struct {
		Favorites   []string         `yaml:"favorites"`
		Collections []demoCollection `yaml:"collections"`
	} `yaml:"demo"`
}

// Catalog is immutable after Load. Accessors return copies.
type Catalog struct {
	products []entity.Product
	byID     map[string]entity.Product
	posts    []entity.Product
	sellers  []Seller
	demo     DemoFixture
}

// DemoFixture is the sample data written by an explicit seed step.
type DemoFixture struct {
	Favorites   entity.Favorites
	Collections entity.Collections
}

func LoadDefault() (*Catalog, error) {
	return Load(defaultFixture)
}

// Load parses a YAML fixture. Any malformed price fails the whole load.
func Load(data []byte) (*Catalog, error) {
	var f fixtureFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog fixture: %w", err)
	}

	sellerNames := make(map[string]string, len(f.Sellers))
	for _, s := range f.Sellers {
		sellerNames[s.Username] = s.Name
	}

	c := &Catalog{
		byID:    make(map[string]entity.Product, len(f.Products)),
		sellers: f.Sellers,
	}

	for _, rec := range f.Products {
		p, err := rec.toProduct(sellerNames)
		if err != nil {
			return nil, err
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("catalog product %s: %w", p.ID, entity.ErrDuplicate)
		}
		c.products = append(c.products, p)
		c.byID[p.ID] = p
	}

	for _, rec := range f.Posts {
		p, err := rec.toProduct(sellerNames)
		if err != nil {
			return nil, err
		}
		c.posts = append(c.posts, p)
	}

	for _, id := range f.Demo.Favorites {
		p, ok := c.byID[id]
		if !ok {
			return nil, fmt.Errorf("demo favorite %s: %w", id, entity.ErrNotFound)
		}
		c.demo.Favorites = append(c.demo.Favorites, p)
	}
	for _, dc := range f.Demo.Collections {
		nc := entity.NamedCollection{Name: dc.Name, Items: make([]entity.Product, 0, len(dc.Items))}
		for _, id := range dc.Items {
			p, ok := c.byID[id]
			if !ok {
				return nil, fmt.Errorf("demo collection %q item %s: %w", dc.Name, id, entity.ErrNotFound)
			}
			nc.Items = append(nc.Items, p)
		}
		c.demo.Collections = append(c.demo.Collections, nc)
	}

	return c, nil
}

func (r productRecord) toProduct(sellerNames map[string]string) (entity.Product, error) {
	price, err := entity.ParsePrice(r.Price)
	if err != nil {
		return entity.Product{}, fmt.Errorf("catalog product %s: %w", r.ID, err)
	}

	p := entity.Product{
		ID:           r.ID,
		Username:     r.Username,
		Seller:       sellerNames[r.Username],
		Caption:      r.Caption,
		Details:      r.Details,
		Price:        price,
		PostImage:    r.PostImage,
		ProfileImage: r.ProfileImage,
		Size:         r.Size,
		Color:        r.Color,
		Likes:        r.Likes,
	}
	if r.DeliveryFee != "" {
		fee, err := entity.ParsePrice(r.DeliveryFee)
		if err != nil {
			return entity.Product{}, fmt.Errorf("catalog product %s delivery fee: %w", r.ID, err)
		}
		p.DeliveryFee = &fee
	}
	for _, cm := range r.Comments {
		p.Comments = append(p.Comments, entity.Comment{Username: cm.Username, Text: cm.Text})
	}
	if r.Latitude != nil && r.Longitude != nil {
		p.Location = &entity.GeoPoint{Latitude: *r.Latitude, Longitude: *r.Longitude}
	}
	if err := p.Validate(); err != nil {
		return entity.Product{}, err
	}
	return p, nil
}

func (c *Catalog) Products() []entity.Product {
	return cloneProducts(c.products)
}

func (c *Catalog) Posts() []entity.Product {
	return cloneProducts(c.posts)
}

func (c *Catalog) Product(id string) (entity.Product, error) {
	p, ok := c.byID[id]
	if !ok {
		return entity.Product{}, fmt.Errorf("product %s: %w", id, entity.ErrNotFound)
	}
	return cloneProduct(p), nil
}

func (c *Catalog) Sellers() []Seller {
	out := make([]Seller, len(c.sellers))
	copy(out, c.sellers)
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out
}

func (c *Catalog) Demo() DemoFixture {
	d := DemoFixture{Favorites: cloneProducts(c.demo.Favorites)}
	for _, nc := range c.demo.Collections {
		d.Collections = append(d.Collections, entity.NamedCollection{Name: nc.Name, Items: cloneProducts(nc.Items)})
	}
	return d
}

func cloneProducts(in []entity.Product) []entity.Product {
	out := make([]entity.Product, len(in))
	for i, p := range in {
		out[i] = cloneProduct(p)
	}
	return out
}

func cloneProduct(p entity.Product) entity.Product {
	if p.DeliveryFee != nil {
		fee := *p.DeliveryFee
		p.DeliveryFee = &fee
	}
	if p.Location != nil {
		loc := *p.Location
		p.Location = &loc
	}
	if p.Comments != nil {
		p.Comments = append([]entity.Comment(nil), p.Comments...)
	}
	return p
}
