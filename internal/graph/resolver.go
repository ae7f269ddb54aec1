package graph

import (
	"context"
	"fmt"
	"time"

	"github.com/rasiler/academy-graphql1/internal/blog"
	"github.com/rasiler/academy-graphql1/internal/blogcore"
)

// Resolver is the root resolver for the blog schema. It holds a reference
// to blogcore.Core for data access and implements engine.Runtime.
type Resolver struct {
	Core *blogcore.Core
}

// Resolve dispatches a field resolution to the owning type's resolver set.
func (r *Resolver) Resolve(ctx context.Context, objectType, field string, source any, args map[string]any) (any, error) {
	switch objectType {
	case "Query":
		return r.resolveQuery(field, args)
	case "Mutation":
		return r.resolveMutation(field, args)
	case "Post":
		return r.resolvePost(source, field, args)
	case "Comment":
		return r.resolveComment(source, field)
	case "User":
		return resolveUser(source, field)
	case "Address":
		return resolveAddress(source, field)
	case "Company":
		return resolveCompany(source, field)
	case "GeoCoord":
		return resolveGeoCoord(source, field)
	}
	return nil, fmt.Errorf("no resolver for type %q", objectType)
}

// ResolveType classifies a HasAuthor value by its concrete Go type. Unlike
// a structural shape check, the type switch is total: a value that is
// neither a post nor a comment is an execution error, not a silent null.
func (r *Resolver) ResolveType(abstractType string, value any) (string, error) {
	switch value.(type) {
	case *blog.Post:
		return "Post", nil
	case *blog.Comment:
		return "Comment", nil
	}
	return "", fmt.Errorf("cannot resolve %s variant for %T", abstractType, value)
}

// Serialize renders leaf values: Time as RFC 3339, Category as its wire
// value ("user-story", not "USER_STORY").
func (r *Resolver) Serialize(typeName string, value any) (any, error) {
	switch typeName {
	case "Time":
		switch v := value.(type) {
		case time.Time:
			return v.Format(time.RFC3339), nil
		case *time.Time:
			return v.Format(time.RFC3339), nil
		}
	case "Category":
		switch v := value.(type) {
		case blog.Category:
			return string(v), nil
		case string:
			return v, nil
		}
	case "Int":
		switch v := value.(type) {
		case int:
			return v, nil
		case int64:
			return int(v), nil
		}
	case "Float":
		switch v := value.(type) {
		case float64:
			return v, nil
		case int:
			return float64(v), nil
		}
	case "String", "ID":
		if v, ok := value.(string); ok {
			return v, nil
		}
	case "Boolean":
		if v, ok := value.(bool); ok {
			return v, nil
		}
	}
	return nil, fmt.Errorf("cannot serialize %T as %s", value, typeName)
}

// resolveQuery implements the root read operations.
func (r *Resolver) resolveQuery(field string, args map[string]any) (any, error) {
	switch field {
	case "posts":
		category, err := optionalCategoryArg(args)
		if err != nil {
			return nil, err
		}
		return r.Core.Posts(category), nil

	case "users":
		return r.Core.Users(), nil

	case "user":
		username, err := stringArg(args, "username")
		if err != nil {
			return nil, err
		}
		return r.Core.User(username), nil

	case "post":
		id, err := intArg(args, "id")
		if err != nil {
			return nil, err
		}
		return r.Core.Post(id), nil

	case "latestPost":
		return r.Core.LatestPost(), nil

	case "recentPosts":
		count, err := intArg(args, "count")
		if err != nil {
			return nil, err
		}
		return r.Core.RecentPosts(count), nil

	case "searchPosts":
		query, err := stringArg(args, "query")
		if err != nil {
			return nil, err
		}
		return r.Core.SearchPosts(query)

	case "authored":
		username, err := stringArg(args, "username")
		if err != nil {
			return nil, err
		}
		posts, comments := r.Core.Authored(username)
		result := make([]any, 0, len(posts)+len(comments))
		for _, p := range posts {
			result = append(result, p)
		}
		for _, cm := range comments {
			result = append(result, cm)
		}
		return result, nil
	}
	return nil, fmt.Errorf("no resolver for Query.%s", field)
}

// resolveMutation implements the root write operations.
func (r *Resolver) resolveMutation(field string, args map[string]any) (any, error) {
	switch field {
	case "createPost":
		title, err := stringArg(args, "title")
		if err != nil {
			return nil, err
		}
		body, err := stringArg(args, "body")
		if err != nil {
			return nil, err
		}
		author, err := stringArg(args, "author")
		if err != nil {
			return nil, err
		}
		category, err := optionalCategoryArg(args)
		if err != nil {
			return nil, err
		}
		return r.Core.CreatePost(title, body, category, author)

	case "createUser":
		username, err := stringArg(args, "username")
		if err != nil {
			return nil, err
		}
		name, err := stringArg(args, "name")
		if err != nil {
			return nil, err
		}
		var email *string
		if v, ok := args["email"].(string); ok {
			email = &v
		}
		return r.Core.CreateUser(username, name, email)
	}
	return nil, fmt.Errorf("no resolver for Mutation.%s", field)
}

// Argument helpers. The engine has already coerced types; these guard the
// boundary and produce readable errors for anything that slipped through.

func stringArg(args map[string]any, name string) (string, error) {
	v, ok := args[name].(string)
	if !ok {
		return "", fmt.Errorf("argument %q must be a string", name)
	}
	return v, nil
}

func intArg(args map[string]any, name string) (int, error) {
	v, ok := args[name].(int)
	if !ok {
		return 0, fmt.Errorf("argument %q must be an integer", name)
	}
	return v, nil
}

// optionalCategoryArg parses the optional category argument, accepting both
// the enum spelling and the wire value.
func optionalCategoryArg(args map[string]any) (*blog.Category, error) {
	raw, present := args["category"]
	if !present || raw == nil {
		return nil, nil
	}
	str, ok := raw.(string)
	if !ok {
		return nil, fmt.Errorf("argument \"category\" must be a Category")
	}
	category, err := blog.ParseCategory(str)
	if err != nil {
		return nil, err
	}
	return &category, nil
}
