package logger

import (
	"fmt"
	"log"
	"os"
)

var std = log.New(os.Stdout, "", log.LstdFlags)

func Info(message string) {
	std.Println("[INFO] " + message)
}

func Success(message string) {
	std.Println("[OK] " + message)
}

func Warning(message string) {
	std.Println("[WARN] " + message)
}

func Debug(message string) {
	if os.Getenv("APP_ENV") != "production" {
		std.Println("[DEBUG] " + message)
	}
}

func Error(message string, err error) {
	if err != nil {
		std.Println(fmt.Sprintf("[ERROR] %s: %v", message, err))
		return
	}
	std.Println("[ERROR] " + message)
}
