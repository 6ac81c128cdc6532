package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/ngocminh/bookstore-chatbot-api/config"
	"github.com/ngocminh/bookstore-chatbot-api/models"
	"github.com/ngocminh/bookstore-chatbot-api/services"
)

// Terminal front end: one line in, one reply out, same conversation
// boundary the HTTP API uses.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	db := config.GetDB()
	if err := db.AutoMigrate(&models.Book{}, &models.Order{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	if cfg.SeedOnStartup {
		if err := config.SeedBooks(db); err != nil {
			log.Fatalf("Failed to seed catalog: %v", err)
		}
	}

	catalog := services.NewGormCatalogService(db)
	chat := services.NewDialogueChatService(catalog)
	conversationID := uuid.NewString()

	fmt.Println("Xin chao! Toi la tro ly cua nha sach. Ban can gi?")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("Ban: ")
		if !scanner.Scan() {
			fmt.Println("\nTam biet!")
			return
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if isExitWord(line) {
			fmt.Println("Tam biet!")
			return
		}

		fmt.Println("Bot:", chat.HandleTurn(conversationID, line))
	}
}

func isExitWord(line string) bool {
	switch strings.ToLower(line) {
	case "thoat", "exit", "quit":
		return true
	}
	return false
}
