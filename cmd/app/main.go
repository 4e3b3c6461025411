package main

import (
	"log/slog"
	"os"
	_ "time/tzdata"

	"fulfillment/cmd"

	"github.com/labstack/gommon/log"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel()}))
	slog.SetDefault(logger)

	if err := cmd.NewRootCommand(logger).Execute(); err != nil {
		log.Fatal(err)
	}
}

func logLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(os.Getenv("LOG_LEVEL"))); err != nil {
		return slog.LevelInfo
	}
	return level
}
