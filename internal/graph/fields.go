package graph

import (
	"fmt"

	"github.com/rasiler/academy-graphql1/internal/blog"
)

// Entity field resolvers. Each is a pure function of the owning record and
// its validated arguments; relationship fields go back through the Core.

func (r *Resolver) resolvePost(source any, field string, args map[string]any) (any, error) {
	p, ok := source.(*blog.Post)
	if !ok {
		return nil, fmt.Errorf("Post.%s resolved against %T", field, source)
	}

	switch field {
	case "id":
		return p.ID, nil
	case "userId":
		return p.UserID, nil
	case "title":
		return p.Title, nil
	case "body":
		return p.Body, nil
	case "likeCount":
		return p.LikeCount, nil
	case "category":
		if p.Category == "" {
			return nil, nil
		}
		return p.Category, nil
	case "date":
		if p.Date == nil {
			return nil, nil
		}
		return p.Date, nil
	case "timestamp":
		ts, ok := p.Timestamp()
		if !ok {
			return nil, nil
		}
		return ts, nil
	case "author":
		return r.Core.UserByID(p.UserID), nil
	case "comments":
		limit := -1
		if v, ok := args["limit"].(int); ok {
			limit = v
		}
		return r.Core.CommentsFor(p.ID, limit), nil
	}
	return nil, fmt.Errorf("no resolver for Post.%s", field)
}

func (r *Resolver) resolveComment(source any, field string) (any, error) {
	cm, ok := source.(*blog.Comment)
	if !ok {
		return nil, fmt.Errorf("Comment.%s resolved against %T", field, source)
	}

	switch field {
	case "id":
		return cm.ID, nil
	case "postId":
		return cm.PostID, nil
	case "name":
		return cm.Name, nil
	case "email":
		return cm.Email, nil
	case "body":
		return cm.Body, nil
	case "author":
		return r.Core.UserByEmail(cm.Email), nil
	case "post":
		return r.Core.Post(cm.PostID), nil
	}
	return nil, fmt.Errorf("no resolver for Comment.%s", field)
}

func resolveUser(source any, field string) (any, error) {
	u, ok := source.(*blog.User)
	if !ok {
		return nil, fmt.Errorf("User.%s resolved against %T", field, source)
	}

	switch field {
	case "id":
		return u.ID, nil
	case "username":
		return u.Username, nil
	case "name":
		return u.Name, nil
	case "email":
		return emptyAsNull(u.Email), nil
	case "address":
		return u.Address, nil
	case "phone":
		return emptyAsNull(u.Phone), nil
	case "website":
		return emptyAsNull(u.Website), nil
	case "company":
		return u.Company, nil
	}
	return nil, fmt.Errorf("no resolver for User.%s", field)
}

func resolveAddress(source any, field string) (any, error) {
	a, ok := source.(*blog.Address)
	if !ok {
		return nil, fmt.Errorf("Address.%s resolved against %T", field, source)
	}

	switch field {
	case "street":
		return a.Street, nil
	case "suite":
		return emptyAsNull(a.Suite), nil
	case "city":
		return a.City, nil
	case "zipcode":
		return a.Zipcode, nil
	case "geo":
		return a.Geo, nil
	}
	return nil, fmt.Errorf("no resolver for Address.%s", field)
}

func resolveCompany(source any, field string) (any, error) {
	c, ok := source.(*blog.Company)
	if !ok {
		return nil, fmt.Errorf("Company.%s resolved against %T", field, source)
	}

	switch field {
	case "name":
		return c.Name, nil
	case "catchPhrase":
		return emptyAsNull(c.CatchPhrase), nil
	case "bs":
		return emptyAsNull(c.Bs), nil
	}
	return nil, fmt.Errorf("no resolver for Company.%s", field)
}

func resolveGeoCoord(source any, field string) (any, error) {
	g, ok := source.(*blog.GeoCoord)
	if !ok {
		return nil, fmt.Errorf("GeoCoord.%s resolved against %T", field, source)
	}

	switch field {
	case "lat":
		return g.Lat, nil
	case "lng":
		return g.Lng, nil
	}
	return nil, fmt.Errorf("no resolver for GeoCoord.%s", field)
}

// emptyAsNull maps an unset optional string to a GraphQL null.
func emptyAsNull(s string) any {
	if s == "" {
		return nil
	}
	return s
}
