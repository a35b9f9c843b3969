package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Addr           string
	AllowedOrigins []string
	WSBufferSize   int
}

func Default() Config {
	return Config{
		Addr:           ":3000",
		AllowedOrigins: []string{"http://localhost:5173"},
		WSBufferSize:   1024,
	}
}

// Load reads the server settings from the environment, falling back to
// Default for unset variables.
func Load() (Config, error) {
	return load(os.LookupEnv)
}

func load(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()
	if v, ok := lookup("CHESS_ADDR"); ok && v != "" {
		cfg.Addr = v
	}
	if v, ok := lookup("CHESS_ALLOWED_ORIGINS"); ok && v != "" {
		cfg.AllowedOrigins = nil
		for _, origin := range strings.Split(v, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
			}
		}
		if len(cfg.AllowedOrigins) == 0 {
			return Config{}, fmt.Errorf("invalid CHESS_ALLOWED_ORIGINS %q: no origins", v)
		}
	}
	if v, ok := lookup("CHESS_WS_BUFFER"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("invalid CHESS_WS_BUFFER %q", v)
		}
		cfg.WSBufferSize = n
	}
	return cfg, nil
}
