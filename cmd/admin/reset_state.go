// Resets the degraded-mode session flags in Redis after a backend recovery:
// the backend-unavailable marker and every mock-warning flag.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/tamkeenai/careerd/internal/session"
	redisstore "github.com/tamkeenai/careerd/internal/session/redis"
)

func main() {
	_ = godotenv.Load()

	url := os.Getenv("REDIS_URL")
	if url == "" {
		url = "redis://localhost:6379/0"
	}

	store, err := redisstore.NewStore(redisstore.Config{
		URL:      url,
		Password: os.Getenv("REDIS_PASSWORD"),
	})
	if err != nil {
		panic(err)
	}
	defer store.Close()

	removed, err := store.ClearSessionFlags(
		context.Background(),
		session.CircuitKey,
		session.WarningKey("*"),
	)
	if err != nil {
		panic(err)
	}

	fmt.Printf("Successfully cleared %d session flags\n", removed)
}
