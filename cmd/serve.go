package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/99designs/gqlgen/graphql/playground"
	"github.com/gin-gonic/gin"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/spf13/cobra"

	"github.com/rasiler/academy-graphql1/internal/engine"
	"github.com/rasiler/academy-graphql1/internal/graph"
)

var (
	servePort  int
	serveWatch bool
)

var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"s"},
	Short:   "Start the web server",
	Long: `Start an HTTP server that serves the GraphQL API.

The server exposes:
  - GraphQL endpoint at /graphql (POST)
  - GraphQL Playground at /graphql (GET) for interactive queries

Examples:
  # Start server on the configured port
  academy-graphql serve

  # Start server on a custom port
  academy-graphql serve --port 3000

  # Reload the data file when it changes on disk
  academy-graphql serve --watch`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

type graphqlRequest struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName"`
	Variables     map[string]any `json:"variables"`
}

func runServer() error {
	eng := engine.New(graph.Schema(), &graph.Resolver{Core: core})

	if serveWatch {
		if err := core.Watch(func() {
			fmt.Println("Data file changed, reloaded")
		}); err != nil {
			return fmt.Errorf("watching data file: %w", err)
		}
		defer core.Close()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), requestID())

	router.GET("/graphql", gin.WrapH(playground.Handler("Blog GraphQL", "/graphql")))
	router.POST("/graphql", func(c *gin.Context) {
		var req graphqlRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"errors": []gin.H{{"message": "invalid request body: " + err.Error()}},
			})
			return
		}

		resp := eng.Execute(c.Request.Context(), req.Query, req.OperationName, req.Variables)

		payload := gin.H{}
		if resp.Data != nil {
			payload["data"] = resp.Data
		}
		if len(resp.Errors) > 0 {
			payload["errors"] = resp.Errors
		}
		c.JSON(http.StatusOK, payload)
	})

	port := servePort
	if port == 0 {
		port = cfg.Server.Port
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Set up signal handling with context
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Channel to listen for server errors
	serverErr := make(chan error, 1)

	// Start server in goroutine
	go func() {
		fmt.Printf("Starting server at http://localhost:%d/\n", port)
		fmt.Printf("GraphQL Playground: http://localhost:%d/graphql\n", port)
		serverErr <- server.ListenAndServe()
	}()

	// Wait for shutdown signal or server error
	select {
	case err := <-serverErr:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
		fmt.Printf("\nShutting down...\n")

		// Create context with timeout for graceful shutdown
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		fmt.Println("Server stopped")
	}

	return nil
}

// requestID tags every response with an X-Request-ID header, honoring
// an id supplied by the client.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			if generated, err := gonanoid.New(); err == nil {
				id = generated
			}
		}
		if id != "" {
			c.Writer.Header().Set("X-Request-ID", id)
		}
		c.Next()
	}
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to listen on (defaults to the configured port)")
	serveCmd.Flags().BoolVarP(&serveWatch, "watch", "w", false, "Reload the data file when it changes")
	rootCmd.AddCommand(serveCmd)
}
