package services

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/ngocminh/bookstore-chatbot-api/models"
	"github.com/ngocminh/bookstore-chatbot-api/nlu"
)

// Replies owned by the dialogue driver
const (
	msgHelp         = "Toi co the giup tim sach hoac dat sach. Vi du: 'tim Dac Nhan Tam', 'dat sach Nha Gia Kim 2 quyen'."
	msgNoTitleMatch = "Khong tim thay sach phu hop."
	msgNoAuthor     = "Khong tim thay sach theo tac gia."
	msgNoCategory   = "Khong tim thay sach theo the loai."
	msgCanceled     = "Da huy don hang dang dat. Ban can gi them khong?"
	msgStoreTrouble = "Xin loi, he thong dang gap su co. Ban thu lai giup minh nhe."
)

// maxSearchResults caps how many books a search reply lists
const maxSearchResults = 10

// ChatService is the per-turn conversation boundary every front end talks
// to: one utterance in, one reply out.
type ChatService interface {
	// HandleTurn processes one utterance of the given conversation and
	// returns the reply text. Store failures never escape; they become a
	// generic retry reply and the order session, if any, stays open.
	HandleTurn(conversationID, text string) string
}

// DialogueChatService drives conversations against the catalog. It owns
// one order session per conversation id; a session is discarded as soon as
// it commits, so a commit can never replay.
type DialogueChatService struct {
	catalog CatalogService

	mu       sync.Mutex
	sessions map[string]*OrderSession
}

var chatServiceInstance ChatService

// InitChatService initializes the chat service against a catalog
func InitChatService(catalog CatalogService) ChatService {
	chatServiceInstance = NewDialogueChatService(catalog)
	return chatServiceInstance
}

// GetChatService returns the initialized chat service instance
func GetChatService() ChatService {
	return chatServiceInstance
}

// SetChatService sets the chat service instance (primarily for testing)
func SetChatService(service ChatService) {
	chatServiceInstance = service
}

// NewDialogueChatService creates a chat service bound to the catalog
func NewDialogueChatService(catalog CatalogService) *DialogueChatService {
	return &DialogueChatService{
		catalog:  catalog,
		sessions: make(map[string]*OrderSession),
	}
}

var cancelWords = map[string]bool{
	"huy":     true,
	"huy don": true,
	"thoi":    true,
	"thoat":   true,
	"cancel":  true,
	"exit":    true,
	"quit":    true,
}

// HandleTurn routes one utterance: an open session consumes every turn
// until it completes or is canceled; otherwise the utterance is classified
// and dispatched.
func (s *DialogueChatService) HandleTurn(conversationID, text string) string {
	raw := strings.TrimSpace(text)
	if raw == "" {
		return msgHelp
	}

	if cancelWords[nlu.Normalize(raw)] {
		s.mu.Lock()
		_, open := s.sessions[conversationID]
		delete(s.sessions, conversationID)
		s.mu.Unlock()
		if open {
			return msgCanceled
		}
		return msgHelp
	}

	s.mu.Lock()
	session, open := s.sessions[conversationID]
	s.mu.Unlock()
	if open {
		return s.advanceSession(conversationID, session, raw)
	}

	intent := nlu.Parse(raw)
	switch intent.Name {
	case nlu.IntentSearchTitle, nlu.IntentSearchAuthor, nlu.IntentSearchCategory:
		return s.handleSearch(intent)
	case nlu.IntentOrder:
		session = NewOrderSession(s.catalog)
		s.mu.Lock()
		s.sessions[conversationID] = session
		s.mu.Unlock()

		reply := s.advanceSession(conversationID, session, raw)
		if book := session.Book(); book != nil && session.State() != StateComplete {
			reply = fmt.Sprintf("Da tim thay: %s (con %d quyen).\n%s", book.Title, book.Stock, reply)
		}
		return reply
	}

	return msgHelp
}

// advanceSession runs one state-machine turn and discards the session when
// it commits. A store failure keeps the session so the user can retry.
func (s *DialogueChatService) advanceSession(conversationID string, session *OrderSession, raw string) string {
	reply, done, err := session.Advance(raw)
	if err != nil {
		log.Printf("order session store failure (conversation %s): %v", conversationID, err)
		return msgStoreTrouble
	}
	if done {
		s.mu.Lock()
		delete(s.sessions, conversationID)
		s.mu.Unlock()
	}
	return reply
}

// handleSearch answers the read-only search intents
func (s *DialogueChatService) handleSearch(intent nlu.Intent) string {
	switch intent.Name {
	case nlu.IntentSearchTitle:
		title := intent.Slots[nlu.SlotTitle]
		if title == "" {
			return msgHelp
		}
		book, err := s.catalog.FindBookByTitle(title)
		if err != nil {
			log.Printf("title search failure: %v", err)
			return msgStoreTrouble
		}
		if book == nil {
			return msgNoTitleMatch
		}
		return fmt.Sprintf("%s - %s | Gia: %.0f | Con: %d | The loai: %s",
			book.Title, book.Author, book.Price, book.Stock, book.Category)

	case nlu.IntentSearchAuthor:
		author := intent.Slots[nlu.SlotAuthor]
		if author == "" {
			return msgHelp
		}
		books, err := s.catalog.FindBooksByAuthor(author)
		if err != nil {
			log.Printf("author search failure: %v", err)
			return msgStoreTrouble
		}
		if len(books) == 0 {
			return msgNoAuthor
		}
		return renderBookList(books, func(b models.Book) string {
			return fmt.Sprintf("- %s (%s) - %.0f", b.Title, b.Category, b.Price)
		})

	case nlu.IntentSearchCategory:
		category := intent.Slots[nlu.SlotCategory]
		if category == "" {
			return msgHelp
		}
		books, err := s.catalog.FindBooksByCategory(category)
		if err != nil {
			log.Printf("category search failure: %v", err)
			return msgStoreTrouble
		}
		if len(books) == 0 {
			return msgNoCategory
		}
		return renderBookList(books, func(b models.Book) string {
			return fmt.Sprintf("- %s (%s) - %.0f", b.Title, b.Author, b.Price)
		})
	}

	return msgHelp
}

// renderBookList renders up to maxSearchResults books, one line each
func renderBookList(books []models.Book, line func(models.Book) string) string {
	if len(books) > maxSearchResults {
		books = books[:maxSearchResults]
	}
	lines := make([]string, 0, len(books))
	for _, b := range books {
		lines = append(lines, line(b))
	}
	return strings.Join(lines, "\n")
}
