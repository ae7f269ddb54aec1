package blogcore

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rasiler/academy-graphql1/internal/blog"
)

const testSeed = `{
  "users": [
    {"id": 1, "username": "alice", "name": "Alice Wells", "email": "alice@example.com"},
    {"id": 2, "username": "bob", "name": "Bob Tanaka", "email": "bob@example.com"}
  ],
  "posts": [
    {"id": 1, "userId": 1, "title": "Meteor shower viewing guide", "body": "When and where to watch.", "category": "meteor", "likeCount": 12, "date": "2021-01-01T00:00:00Z"},
    {"id": 2, "userId": 2, "title": "Roadmap update", "body": "Product plans for the quarter.", "category": "product", "likeCount": 4, "date": "2023-05-01T00:00:00Z"},
    {"id": 3, "userId": 1, "title": "As a reader, I want search", "body": "Full-text search over posts.", "category": "user-story", "likeCount": 7, "date": "2022-06-01T00:00:00Z"}
  ],
  "comments": [
    {"id": 1, "postId": 1, "name": "great writeup", "email": "bob@example.com", "body": "Caught three meteors."},
    {"id": 2, "postId": 1, "name": "question", "email": "carol@example.net", "body": "Does the peak shift?"},
    {"id": 3, "postId": 3, "name": "seconding", "email": "ALICE@example.com", "body": "Search would help."}
  ]
}`

func setupTestCore(t *testing.T) *Core {
	t.Helper()

	path := filepath.Join(t.TempDir(), "blog.json")
	if err := os.WriteFile(path, []byte(testSeed), 0644); err != nil {
		t.Fatalf("failed to write test seed: %v", err)
	}

	core := New(path)
	if err := core.Load(); err != nil {
		t.Fatalf("failed to load core: %v", err)
	}
	return core
}

func postIDs(posts []*blog.Post) []int {
	result := make([]int, len(posts))
	for i, p := range posts {
		result[i] = p.ID
	}
	return result
}

func assertIDs(t *testing.T, got, want []int) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("ids = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ids = %v, want %v", got, want)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	core := New(filepath.Join(t.TempDir(), "nope.json"))
	if err := core.Load(); err == nil {
		t.Error("Load() on missing file: error = nil, want error")
	}
}

func TestPosts(t *testing.T) {
	core := setupTestCore(t)

	posts := core.Posts(nil)
	assertIDs(t, postIDs(posts), []int{1, 2, 3})
}

func TestPostsByCategory(t *testing.T) {
	core := setupTestCore(t)

	category := blog.CategoryMeteor
	posts := core.Posts(&category)
	assertIDs(t, postIDs(posts), []int{1})

	other := blog.CategoryOther
	if got := core.Posts(&other); len(got) != 0 {
		t.Errorf("Posts(other) returned %d posts, want 0", len(got))
	}
}

func TestUserCaseInsensitive(t *testing.T) {
	core := setupTestCore(t)

	for _, username := range []string{"alice", "ALICE", "Alice"} {
		u := core.User(username)
		if u == nil {
			t.Fatalf("User(%q) = nil, want alice", username)
		}
		if u.ID != 1 {
			t.Errorf("User(%q).ID = %d, want 1", username, u.ID)
		}
	}

	if u := core.User("mallory"); u != nil {
		t.Errorf("User(\"mallory\") = %+v, want nil", u)
	}
}

func TestUserByID(t *testing.T) {
	core := setupTestCore(t)

	u := core.UserByID(2)
	if u == nil || u.Username != "bob" {
		t.Errorf("UserByID(2) = %+v, want bob", u)
	}
	if u := core.UserByID(99); u != nil {
		t.Errorf("UserByID(99) = %+v, want nil", u)
	}
}

func TestPost(t *testing.T) {
	core := setupTestCore(t)

	p := core.Post(2)
	if p == nil || p.Title != "Roadmap update" {
		t.Errorf("Post(2) = %+v, want roadmap post", p)
	}
	if p := core.Post(99); p != nil {
		t.Errorf("Post(99) = %+v, want nil", p)
	}
}

func TestLatestPost(t *testing.T) {
	core := setupTestCore(t)

	p := core.LatestPost()
	if p == nil {
		t.Fatal("LatestPost() = nil")
	}
	if p.ID != 2 {
		t.Errorf("LatestPost().ID = %d, want 2", p.ID)
	}

	// The live collection keeps its original order.
	assertIDs(t, postIDs(core.Posts(nil)), []int{1, 2, 3})
}

func TestRecentPosts(t *testing.T) {
	core := setupTestCore(t)

	tests := []struct {
		name  string
		count int
		want  []int
	}{
		{name: "top two", count: 2, want: []int{2, 3}},
		{name: "all", count: 3, want: []int{2, 3, 1}},
		{name: "more than available", count: 10, want: []int{2, 3, 1}},
		{name: "zero", count: 0, want: []int{}},
		{name: "negative", count: -1, want: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertIDs(t, postIDs(core.RecentPosts(tt.count)), tt.want)
		})
	}

	// The live collection keeps its original order.
	assertIDs(t, postIDs(core.Posts(nil)), []int{1, 2, 3})
}

func TestCommentsFor(t *testing.T) {
	core := setupTestCore(t)

	tests := []struct {
		name   string
		postID int
		limit  int
		want   int
	}{
		{name: "all comments", postID: 1, limit: -1, want: 2},
		{name: "truncated", postID: 1, limit: 1, want: 1},
		{name: "limit zero", postID: 1, limit: 0, want: 0},
		{name: "limit above count", postID: 1, limit: 10, want: 2},
		{name: "no comments", postID: 2, limit: -1, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := core.CommentsFor(tt.postID, tt.limit)
			if len(got) != tt.want {
				t.Errorf("CommentsFor(%d, %d) returned %d comments, want %d", tt.postID, tt.limit, len(got), tt.want)
			}
		})
	}
}

func TestUserByEmail(t *testing.T) {
	core := setupTestCore(t)

	u := core.UserByEmail("ALICE@EXAMPLE.COM")
	if u == nil || u.Username != "alice" {
		t.Errorf("UserByEmail case-insensitive lookup = %+v, want alice", u)
	}
	if u := core.UserByEmail("carol@example.net"); u != nil {
		t.Errorf("UserByEmail(unregistered) = %+v, want nil", u)
	}
	if u := core.UserByEmail(""); u != nil {
		t.Errorf("UserByEmail(\"\") = %+v, want nil", u)
	}
}

func TestAuthored(t *testing.T) {
	core := setupTestCore(t)

	posts, comments := core.Authored("Alice")
	assertIDs(t, postIDs(posts), []int{1, 3})
	if len(comments) != 1 || comments[0].ID != 3 {
		t.Errorf("Authored comments = %+v, want comment 3", comments)
	}

	posts, comments = core.Authored("mallory")
	if posts != nil || comments != nil {
		t.Errorf("Authored(unknown) = %v, %v, want nil, nil", posts, comments)
	}
}

func TestCreatePost(t *testing.T) {
	core := setupTestCore(t)

	category := blog.CategoryMeteor
	p, err := core.CreatePost("New Post", "Some body.", &category, "ALICE")
	if err != nil {
		t.Fatalf("CreatePost() error = %v", err)
	}

	if p.ID != 4 {
		t.Errorf("CreatePost().ID = %d, want 4", p.ID)
	}
	if p.UserID != 1 {
		t.Errorf("CreatePost().UserID = %d, want 1", p.UserID)
	}
	if p.Category != blog.CategoryMeteor {
		t.Errorf("CreatePost().Category = %q, want %q", p.Category, blog.CategoryMeteor)
	}
	if p.Date == nil {
		t.Error("CreatePost().Date = nil, want set")
	}

	// The returned record is the stored one.
	if stored := core.Post(4); stored != p {
		t.Error("Post(4) returned a different record than CreatePost")
	}
}

func TestCreatePostUnknownAuthor(t *testing.T) {
	core := setupTestCore(t)

	_, err := core.CreatePost("Title", "Body", nil, "mallory")
	if !errors.Is(err, ErrUnknownAuthor) {
		t.Fatalf("CreatePost(unknown author) error = %v, want ErrUnknownAuthor", err)
	}

	// All-or-nothing: the store is unchanged.
	if got := len(core.Posts(nil)); got != 3 {
		t.Errorf("post count after failed create = %d, want 3", got)
	}
}

func TestCreateUser(t *testing.T) {
	core := setupTestCore(t)

	email := "dora@example.com"
	u, err := core.CreateUser("Dora", "Dora Marsh", &email)
	if err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}

	if u.ID != 3 {
		t.Errorf("CreateUser().ID = %d, want 3", u.ID)
	}
	if u.Username != "Dora" {
		t.Errorf("CreateUser().Username = %q, want %q (original casing preserved)", u.Username, "Dora")
	}
	if u.Email != email {
		t.Errorf("CreateUser().Email = %q, want %q", u.Email, email)
	}

	// Lookup works under any casing.
	if core.User("dora") == nil {
		t.Error("User(\"dora\") = nil after CreateUser")
	}
}

func TestCreateUserNoEmail(t *testing.T) {
	core := setupTestCore(t)

	u, err := core.CreateUser("eve", "Eve Stone", nil)
	if err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	if u.Email != "" {
		t.Errorf("CreateUser(nil email).Email = %q, want empty", u.Email)
	}
}

func TestCreateUserConflict(t *testing.T) {
	core := setupTestCore(t)

	_, err := core.CreateUser("ALICE", "Alice Impostor", nil)
	if !errors.Is(err, ErrUserExists) {
		t.Fatalf("CreateUser(duplicate) error = %v, want ErrUserExists", err)
	}

	// All-or-nothing: the original record survives.
	if got := len(core.Users()); got != 2 {
		t.Errorf("user count after failed create = %d, want 2", got)
	}
	if u := core.User("alice"); u == nil || u.Name != "Alice Wells" {
		t.Errorf("User(\"alice\") = %+v, want original record", u)
	}
}

func TestSearchPosts(t *testing.T) {
	core := setupTestCore(t)

	if _, err := core.SearchPosts("meteor"); err == nil {
		t.Fatal("SearchPosts() before EnableSearch: error = nil, want error")
	}

	if err := core.EnableSearch(); err != nil {
		t.Fatalf("EnableSearch() error = %v", err)
	}

	posts, err := core.SearchPosts("meteor")
	if err != nil {
		t.Fatalf("SearchPosts() error = %v", err)
	}
	assertIDs(t, postIDs(posts), []int{1})
}

func TestSearchPostsIndexesNewPosts(t *testing.T) {
	core := setupTestCore(t)

	if err := core.EnableSearch(); err != nil {
		t.Fatalf("EnableSearch() error = %v", err)
	}

	if _, err := core.CreatePost("Telescope maintenance", "Keeping the optics clean.", nil, "bob"); err != nil {
		t.Fatalf("CreatePost() error = %v", err)
	}

	posts, err := core.SearchPosts("telescope")
	if err != nil {
		t.Fatalf("SearchPosts() error = %v", err)
	}
	assertIDs(t, postIDs(posts), []int{4})
}
