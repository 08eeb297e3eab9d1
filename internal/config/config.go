package config

import (
	"log"
	"os"
)

type Config struct {
	Port       string
	LogFile    string
	ArchiveDSN string
}

func Load() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = "./matamazon.log" // default log sink in project root
	}
	archive := os.Getenv("ARCHIVE_DSN") // empty disables the sqlite archive

	cfg := Config{Port: port, LogFile: logFile, ArchiveDSN: archive}
	log.Printf("[config] PORT=%s LOG_FILE=%s ARCHIVE_DSN=%s", cfg.Port, cfg.LogFile, cfg.ArchiveDSN)
	return cfg
}
