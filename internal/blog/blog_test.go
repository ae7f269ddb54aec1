package blog

import (
	"testing"
	"time"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Category
		wantErr bool
	}{
		{name: "wire value", input: "meteor", want: CategoryMeteor},
		{name: "enum name", input: "USER_STORY", want: CategoryUserStory},
		{name: "mixed case wire value", input: "User-Story", want: CategoryUserStory},
		{name: "upper case wire value", input: "PRODUCT", want: CategoryProduct},
		{name: "surrounding whitespace", input: "  other  ", want: CategoryOther},
		{name: "unknown", input: "gardening", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCategory(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseCategory(%q) = %q, want error", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCategory(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseCategory(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCategoryEnumName(t *testing.T) {
	tests := []struct {
		category Category
		want     string
	}{
		{CategoryMeteor, "METEOR"},
		{CategoryProduct, "PRODUCT"},
		{CategoryUserStory, "USER_STORY"},
		{CategoryOther, "OTHER"},
	}

	for _, tt := range tests {
		if got := tt.category.EnumName(); got != tt.want {
			t.Errorf("EnumName(%q) = %q, want %q", tt.category, got, tt.want)
		}
	}
}

func TestCategoryValid(t *testing.T) {
	for _, c := range Categories {
		if !c.Valid() {
			t.Errorf("Valid(%q) = false, want true", c)
		}
	}
	if Category("gardening").Valid() {
		t.Error("Valid(\"gardening\") = true, want false")
	}
	if Category("").Valid() {
		t.Error("Valid(\"\") = true, want false")
	}
}

func TestUserKey(t *testing.T) {
	u := &User{Username: "Alice"}
	if got := u.Key(); got != "alice" {
		t.Errorf("Key() = %q, want %q", got, "alice")
	}
}

func TestPostTimestamp(t *testing.T) {
	date := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	p := &Post{Date: &date}

	ts, ok := p.Timestamp()
	if !ok {
		t.Fatal("Timestamp() ok = false, want true")
	}
	if want := float64(date.UnixMilli()); ts != want {
		t.Errorf("Timestamp() = %v, want %v", ts, want)
	}

	undated := &Post{}
	if _, ok := undated.Timestamp(); ok {
		t.Error("Timestamp() on undated post: ok = true, want false")
	}
}
