package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rasiler/academy-graphql1/internal/config"
)

// starterSeed is the data set written by the init command. It is small
// but covers every entity kind so queries have something to return.
const starterSeed = `{
  "users": [
    {
      "id": 1,
      "username": "alice",
      "name": "Alice Wells",
      "email": "alice@example.com",
      "phone": "1-555-0101",
      "website": "alice.example.com",
      "address": {
        "street": "12 Harbor Lane",
        "suite": "Apt. 4",
        "city": "Portwich",
        "zipcode": "41100-2201",
        "geo": { "lat": "52.1405", "lng": "-0.4690" }
      },
      "company": {
        "name": "Wells & Co",
        "catchPhrase": "Composable end-to-end publishing",
        "bs": "scale frictionless content"
      }
    },
    {
      "id": 2,
      "username": "bob",
      "name": "Bob Tanaka",
      "email": "bob@example.com",
      "phone": "1-555-0102",
      "website": "tanaka.example.com"
    }
  ],
  "posts": [
    {
      "id": 1,
      "userId": 1,
      "title": "Meteor shower viewing guide",
      "body": "The best spots and times to catch this year's meteor shower.",
      "category": "meteor",
      "likeCount": 12,
      "date": "2024-03-01T09:00:00Z"
    },
    {
      "id": 2,
      "userId": 2,
      "title": "Roadmap update",
      "body": "What we shipped last quarter and what's next on the product side.",
      "category": "product",
      "likeCount": 4,
      "date": "2024-04-15T14:30:00Z"
    },
    {
      "id": 3,
      "userId": 1,
      "title": "As a reader, I want search",
      "body": "Full-text search over posts, ranked by relevance.",
      "category": "user-story",
      "likeCount": 7,
      "date": "2024-05-02T08:15:00Z"
    }
  ],
  "comments": [
    {
      "id": 1,
      "postId": 1,
      "name": "great writeup",
      "email": "bob@example.com",
      "body": "Caught three meteors thanks to this, cheers."
    },
    {
      "id": 2,
      "postId": 1,
      "name": "question about timing",
      "email": "carol@example.net",
      "body": "Does the peak shift much between time zones?"
    },
    {
      "id": 3,
      "postId": 3,
      "name": "seconding this",
      "email": "alice@example.com",
      "body": "Search would make the archive so much more useful."
    }
  ]
}
`

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a config file and starter data set",
	Long: `Creates a blog.toml config file and a blog.json starter data set in the
current directory. Existing files are left untouched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := os.Getwd()
		if err != nil {
			return err
		}

		configPath := filepath.Join(dir, config.ConfigFile)
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			if err := config.Default().Save(dir); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}
			fmt.Printf("Created %s\n", config.ConfigFile)
		} else {
			fmt.Printf("%s already exists, skipping\n", config.ConfigFile)
		}

		dataFile := filepath.Join(dir, config.DefaultDataFile)
		if _, err := os.Stat(dataFile); os.IsNotExist(err) {
			if err := os.WriteFile(dataFile, []byte(starterSeed), 0644); err != nil {
				return fmt.Errorf("writing data file: %w", err)
			}
			fmt.Printf("Created %s\n", config.DefaultDataFile)
		} else {
			fmt.Printf("%s already exists, skipping\n", config.DefaultDataFile)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
