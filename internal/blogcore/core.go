// Package blogcore provides a thread-safe in-memory store for blog data:
// posts, users keyed by lower-cased username, and comments. The collections
// are populated once from a seed file and thereafter changed only by
// CreatePost and CreateUser; nothing is ever updated or deleted.
package blogcore

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rasiler/academy-graphql1/internal/blog"
	"github.com/rasiler/academy-graphql1/internal/search"
)

var (
	ErrUserExists    = errors.New("user already exists")
	ErrUnknownAuthor = errors.New("unknown author")
)

// Core owns the three in-memory collections behind a single RWMutex. Query
// results alias the stored records; callers must treat them as read-only.
type Core struct {
	path string

	mu       sync.RWMutex
	posts    []*blog.Post
	users    map[string]*blog.User
	comments []*blog.Comment

	searchIndex *search.Index

	// File watching (optional)
	watching bool
	done     chan struct{}
	onChange func()
}

// New creates a Core backed by the seed file at path. Call Load before use.
func New(path string) *Core {
	return &Core{
		path:  path,
		users: make(map[string]*blog.User),
	}
}

// Path returns the seed file path.
func (c *Core) Path() string {
	return c.path
}

// Load reads the seed file into memory, replacing any existing state.
func (c *Core) Load() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.loadFromFile()
}

// EnableSearch builds a full-text index over the current posts. New posts
// are indexed incrementally; reloads rebuild the index.
func (c *Core) EnableSearch() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx, err := newIndexFor(c.posts)
	if err != nil {
		return err
	}
	c.searchIndex = idx
	return nil
}

func newIndexFor(posts []*blog.Post) (*search.Index, error) {
	idx, err := search.NewIndex()
	if err != nil {
		return nil, fmt.Errorf("creating search index: %w", err)
	}
	for _, p := range posts {
		if err := idx.IndexPost(p); err != nil {
			return nil, fmt.Errorf("indexing post %d: %w", p.ID, err)
		}
	}
	return idx, nil
}

// Posts returns all posts in store order, optionally filtered to a category.
func (c *Core) Posts(category *blog.Category) []*blog.Post {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if category == nil {
		result := make([]*blog.Post, len(c.posts))
		copy(result, c.posts)
		return result
	}

	result := make([]*blog.Post, 0)
	for _, p := range c.posts {
		if p.Category == *category {
			result = append(result, p)
		}
	}
	return result
}

// Users returns all users. Iteration order of the underlying map is not
// specified.
func (c *Core) Users() []*blog.User {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]*blog.User, 0, len(c.users))
	for _, u := range c.users {
		result = append(result, u)
	}
	return result
}

// User looks up a user by username, case-insensitively. Returns nil if no
// such user exists.
func (c *Core) User(username string) *blog.User {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.users[strings.ToLower(username)]
}

// UserByID returns the first user with the given numeric id, or nil.
func (c *Core) UserByID(id int) *blog.User {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.userByIDLocked(id)
}

func (c *Core) userByIDLocked(id int) *blog.User {
	for _, u := range c.users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

// Post returns the first post with the given id, or nil.
func (c *Core) Post(id int) *blog.Post {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, p := range c.posts {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// LatestPost returns the most recent post by date, or nil when the store is
// empty. The live collection is never reordered; the sort happens on a copy.
func (c *Core) LatestPost() *blog.Post {
	c.mu.RLock()
	defer c.mu.RUnlock()

	sorted := c.sortedByDateLocked()
	if len(sorted) == 0 {
		return nil
	}
	return sorted[0]
}

// RecentPosts returns the count most recent posts, newest first. Fewer are
// returned when the store is smaller; a negative count yields an empty slice.
func (c *Core) RecentPosts(count int) []*blog.Post {
	c.mu.RLock()
	defer c.mu.RUnlock()

	sorted := c.sortedByDateLocked()
	if count < 0 {
		count = 0
	}
	if count > len(sorted) {
		count = len(sorted)
	}
	return sorted[:count]
}

// sortedByDateLocked returns a copy of the posts, newest first (must be
// called with the lock held).
func (c *Core) sortedByDateLocked() []*blog.Post {
	sorted := make([]*blog.Post, len(c.posts))
	copy(sorted, c.posts)
	blog.SortByDateDesc(sorted)
	return sorted
}

// CommentsFor returns the comments on a post in collection order. A
// non-negative limit truncates the result; a negative limit returns all
// matches.
func (c *Core) CommentsFor(postID, limit int) []*blog.Comment {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]*blog.Comment, 0)
	if limit == 0 {
		return result
	}
	for _, cm := range c.comments {
		if cm.PostID != postID {
			continue
		}
		result = append(result, cm)
		if limit > 0 && len(result) == limit {
			break
		}
	}
	return result
}

// UserByEmail returns the first user whose email matches, case-insensitively,
// or nil. Used to attribute comments to registered users.
func (c *Core) UserByEmail(email string) *blog.User {
	if email == "" {
		return nil
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, u := range c.users {
		if strings.EqualFold(u.Email, email) {
			return u
		}
	}
	return nil
}

// Authored returns everything attributed to the named user: their posts in
// store order, and comments whose email matches the user's. Both slices are
// empty for an unknown username.
func (c *Core) Authored(username string) ([]*blog.Post, []*blog.Comment) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	u := c.users[strings.ToLower(username)]
	if u == nil {
		return nil, nil
	}

	var posts []*blog.Post
	for _, p := range c.posts {
		if p.UserID == u.ID {
			posts = append(posts, p)
		}
	}

	var comments []*blog.Comment
	if u.Email != "" {
		for _, cm := range c.comments {
			if strings.EqualFold(cm.Email, u.Email) {
				comments = append(comments, cm)
			}
		}
	}

	return posts, comments
}

// SearchPosts runs a full-text query over post titles and bodies, returning
// matches ranked by score. EnableSearch must have been called first.
func (c *Core) SearchPosts(query string) ([]*blog.Post, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.searchIndex == nil {
		return nil, errors.New("search index not enabled")
	}

	ids, err := c.searchIndex.Search(query)
	if err != nil {
		return nil, err
	}

	byID := make(map[int]*blog.Post, len(c.posts))
	for _, p := range c.posts {
		byID[p.ID] = p
	}

	result := make([]*blog.Post, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			result = append(result, p)
		}
	}
	return result, nil
}

// CreatePost appends a new post authored by the named user. The author is
// resolved case-insensitively; an unknown author fails with ErrUnknownAuthor
// and leaves the store unchanged. The returned post is the stored record.
func (c *Core) CreatePost(title, body string, category *blog.Category, author string) (*blog.Post, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	u := c.users[strings.ToLower(author)]
	if u == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAuthor, author)
	}

	now := time.Now().UTC()
	p := &blog.Post{
		ID:     len(c.posts) + 1,
		UserID: u.ID,
		Title:  title,
		Body:   body,
		Date:   &now,
	}
	if category != nil {
		p.Category = *category
	}

	c.posts = append(c.posts, p)

	if c.searchIndex != nil {
		if err := c.searchIndex.IndexPost(p); err != nil {
			c.logWarn("failed to index post %d: %v", p.ID, err)
		}
	}

	return p, nil
}

// CreateUser registers a new user under the lower-cased username. A username
// already taken (case-insensitively) fails with ErrUserExists and leaves the
// store unchanged.
func (c *Core) CreateUser(username, name string, email *string) (*blog.User, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := strings.ToLower(username)
	if _, taken := c.users[key]; taken {
		return nil, fmt.Errorf("%w: %q", ErrUserExists, username)
	}

	u := &blog.User{
		ID:       len(c.users) + 1,
		Username: username,
		Name:     name,
	}
	if email != nil {
		u.Email = *email
	}

	c.users[key] = u

	return u, nil
}

// Close stops any active file watcher.
func (c *Core) Close() error {
	return c.Unwatch()
}
