package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

var (
	TLS_DOMAINS        = ""     // e.g. "example.com,example2.com"
	MYSQL_DSN          = ""     // MySQL will be used if this is set
	SQLITE_FILE        = ""     // SQLite will be used if MYSQL_DSN is not configured and this is set
	BIND_ADDRESS       = "0.0.0.0:8080"
	PUSH_SERVER        = "https://push.cooklog.app"
	DEFAULT_BUCKET_DIR = "" // Used for creating the initial photo bucket
	SESSION_KEY        = "this is a long key - change it"
	REDIS_ADDR         = "" // Optional shared cache for probed image dimensions
	REDIS_PASSWORD     = ""
	DEBUG_MODE         = true
	// Seconds to sleep when the photo processing queue is drained
	PROCESSING_IDLE_WAIT = 30
)

func init() {
	// .env file is optional
	_ = godotenv.Load()

	readEnvString("TLS_DOMAINS", &TLS_DOMAINS)
	readEnvString("MYSQL_DSN", &MYSQL_DSN)
	readEnvString("SQLITE_FILE", &SQLITE_FILE)
	readEnvString("BIND_ADDRESS", &BIND_ADDRESS)
	readEnvString("PUSH_SERVER", &PUSH_SERVER)
	readEnvString("DEFAULT_BUCKET_DIR", &DEFAULT_BUCKET_DIR)
	readEnvString("SESSION_KEY", &SESSION_KEY)
	readEnvString("REDIS_ADDR", &REDIS_ADDR)
	readEnvString("REDIS_PASSWORD", &REDIS_PASSWORD)
	readEnvBool("DEBUG_MODE", &DEBUG_MODE)
	readEnvInt("PROCESSING_IDLE_WAIT", &PROCESSING_IDLE_WAIT)
}

func readEnvString(name string, value *string) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	*value = v
}

func readEnvBool(name string, value *bool) {
	v := strings.ToLower(os.Getenv(name))
	if v == "true" || v == "1" || v == "yes" || v == "on" {
		*value = true
	} else if v == "false" || v == "0" || v == "no" || v == "off" {
		*value = false
	}
}

func readEnvInt(name string, value *int) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	f, err := strconv.Atoi(v)
	if err != nil {
		return
	}
	*value = f
}
