package graph

import (
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
)

// SchemaSDL declares the blog type system: the entity object types, the
// Category enumeration, and the HasAuthor interface implemented by Post and
// Comment. Category's enum names map onto wire values ("USER_STORY" is
// serialized as "user-story"); see blog.Category.
const SchemaSDL = `
scalar Time

enum Category {
  METEOR
  PRODUCT
  USER_STORY
  OTHER
}

interface HasAuthor {
  author: User
}

type GeoCoord {
  lat: String!
  lng: String!
}

type Address {
  street: String!
  suite: String
  city: String!
  zipcode: String!
  geo: GeoCoord
}

type Company {
  name: String!
  catchPhrase: String
  bs: String
}

type User {
  id: Int!
  username: String!
  name: String!
  email: String
  address: Address
  phone: String
  website: String
  company: Company
}

type Post implements HasAuthor {
  id: Int!
  userId: Int!
  title: String!
  body: String!
  category: Category
  likeCount: Int!
  date: Time
  timestamp: Float
  author: User
  comments(limit: Int): [Comment!]!
}

type Comment implements HasAuthor {
  id: Int!
  postId: Int!
  name: String!
  email: String!
  body: String!
  author: User
  post: Post
}

type Query {
  posts(category: Category): [Post!]!
  users: [User!]!
  user(username: String!): User
  post(id: Int!): Post
  latestPost: Post
  recentPosts(count: Int!): [Post!]!
  searchPosts(query: String!): [Post!]!
  authored(username: String!): [HasAuthor!]!
}

type Mutation {
  createPost(title: String!, body: String!, category: Category, author: String!): Post!
  createUser(username: String!, name: String!, email: String): User!
}
`

var schema = gqlparser.MustLoadSchema(&ast.Source{Name: "schema.graphql", Input: SchemaSDL})

// Schema returns the parsed blog schema.
func Schema() *ast.Schema {
	return schema
}
