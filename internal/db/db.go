// internal/db/db.go
package db

import (
    "database/sql"
    "fmt"
    "os"

    _ "github.com/lib/pq"
)

// Connect opens a Postgres connection from the DB_* environment variables
// and verifies it with a ping. Call sites own the returned handle.
func Connect() (*sql.DB, error) {
    user := getenv("DB_USER", "postgres")
    pass := getenv("DB_PASSWORD", "postgres")
    host := getenv("DB_HOST", "localhost")
    port := getenv("DB_PORT", "5432")
    name := getenv("DB_NAME", "marketing_agent")

    dsn := fmt.Sprintf(
        "postgres://%s:%s@%s:%s/%s?sslmode=disable",
        user, pass, host, port, name,
    )

    conn, err := sql.Open("postgres", dsn)
    if err != nil {
        return nil, fmt.Errorf("open database: %w", err)
    }
    if err := conn.Ping(); err != nil {
        conn.Close()
        return nil, fmt.Errorf("ping database: %w", err)
    }
    return conn, nil
}

func getenv(key, fallback string) string {
    if v := os.Getenv(key); v != "" {
        return v
    }
    return fallback
}
