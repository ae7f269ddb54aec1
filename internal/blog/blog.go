package blog

import (
	"fmt"
	"strings"
	"time"
)

// Category classifies a post. The string value is the wire representation
// used in seed data and GraphQL responses; the schema's enum names (METEOR,
// USER_STORY, ...) map onto these values.
type Category string

const (
	CategoryMeteor    Category = "meteor"
	CategoryProduct   Category = "product"
	CategoryUserStory Category = "user-story"
	CategoryOther     Category = "other"
)

// Categories lists all valid categories in declaration order.
var Categories = []Category{CategoryMeteor, CategoryProduct, CategoryUserStory, CategoryOther}

// Valid reports whether the category is one of the known values.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// EnumName returns the GraphQL enum name for the category (e.g. "USER_STORY").
func (c Category) EnumName() string {
	return strings.ToUpper(strings.ReplaceAll(string(c), "-", "_"))
}

// ParseCategory maps either the wire value ("user-story") or the GraphQL enum
// name ("USER_STORY") to a Category. Matching is case-insensitive.
func ParseCategory(s string) (Category, error) {
	normalized := Category(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-"))
	if normalized.Valid() {
		return normalized, nil
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// GeoCoord holds latitude/longitude as strings, matching the seed format.
type GeoCoord struct {
	Lat string `json:"lat" yaml:"lat"`
	Lng string `json:"lng" yaml:"lng"`
}

// Address is a user's postal address.
type Address struct {
	Street  string    `json:"street" yaml:"street"`
	Suite   string    `json:"suite,omitempty" yaml:"suite,omitempty"`
	City    string    `json:"city" yaml:"city"`
	Zipcode string    `json:"zipcode" yaml:"zipcode"`
	Geo     *GeoCoord `json:"geo,omitempty" yaml:"geo,omitempty"`
}

// Company is the organization a user works for.
type Company struct {
	Name        string `json:"name" yaml:"name"`
	CatchPhrase string `json:"catchPhrase,omitempty" yaml:"catchPhrase,omitempty"`
	Bs          string `json:"bs,omitempty" yaml:"bs,omitempty"`
}

// User is a registered author. Usernames are unique case-insensitively; the
// store keys users by the lower-cased username.
type User struct {
	ID       int      `json:"id" yaml:"id"`
	Username string   `json:"username" yaml:"username"`
	Name     string   `json:"name" yaml:"name"`
	Email    string   `json:"email,omitempty" yaml:"email,omitempty"`
	Address  *Address `json:"address,omitempty" yaml:"address,omitempty"`
	Phone    string   `json:"phone,omitempty" yaml:"phone,omitempty"`
	Website  string   `json:"website,omitempty" yaml:"website,omitempty"`
	Company  *Company `json:"company,omitempty" yaml:"company,omitempty"`
}

// Key returns the store lookup key for the user.
func (u *User) Key() string {
	return strings.ToLower(u.Username)
}

// Post is a blog post. UserID references a User by numeric id, not by the
// store's username key.
type Post struct {
	ID        int        `json:"id" yaml:"id"`
	UserID    int        `json:"userId" yaml:"userId"`
	Title     string     `json:"title" yaml:"title"`
	Body      string     `json:"body" yaml:"body"`
	Category  Category   `json:"category,omitempty" yaml:"category,omitempty"`
	LikeCount int        `json:"likeCount" yaml:"likeCount"`
	Date      *time.Time `json:"date,omitempty" yaml:"date,omitempty"`
}

// Timestamp returns the post date as epoch milliseconds. The second return
// value is false when the post has no date.
func (p *Post) Timestamp() (float64, bool) {
	if p.Date == nil {
		return 0, false
	}
	return float64(p.Date.UnixMilli()), true
}

// Comment is a reader comment on a post, referenced by numeric post id.
type Comment struct {
	ID     int    `json:"id" yaml:"id"`
	PostID int    `json:"postId" yaml:"postId"`
	Name   string `json:"name" yaml:"name"`
	Email  string `json:"email" yaml:"email"`
	Body   string `json:"body" yaml:"body"`
}
