package blogcore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rasiler/academy-graphql1/internal/blog"
)

// seedFile is the on-disk document: three collections in a single file,
// encoded as JSON or YAML depending on the file extension.
type seedFile struct {
	Users    []*blog.User    `json:"users" yaml:"users"`
	Posts    []*blog.Post    `json:"posts" yaml:"posts"`
	Comments []*blog.Comment `json:"comments" yaml:"comments"`
}

// loadFromFile reads the seed file and replaces the in-memory collections
// (must be called with the lock held).
func (c *Core) loadFromFile() error {
	seed, err := readSeed(c.path)
	if err != nil {
		return err
	}

	users := make(map[string]*blog.User, len(seed.Users))
	for _, u := range seed.Users {
		if u.Username == "" {
			return fmt.Errorf("seed user %d has no username", u.ID)
		}
		key := u.Key()
		if _, dup := users[key]; dup {
			return fmt.Errorf("duplicate username %q in seed data", u.Username)
		}
		users[key] = u
	}

	c.posts = seed.Posts
	c.users = users
	c.comments = seed.Comments
	if c.posts == nil {
		c.posts = []*blog.Post{}
	}
	if c.comments == nil {
		c.comments = []*blog.Comment{}
	}

	// Rebuild the search index when one is active.
	if c.searchIndex != nil {
		idx, err := newIndexFor(c.posts)
		if err != nil {
			return err
		}
		c.searchIndex = idx
	}

	return nil
}

// readSeed parses a seed file by extension.
func readSeed(path string) (*seedFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading seed file: %w", err)
	}

	var seed seedFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &seed); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, &seed); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	return &seed, nil
}

func (c *Core) logWarn(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "warning: "+format+"\n", args...)
}
