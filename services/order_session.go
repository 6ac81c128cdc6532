package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/ngocminh/bookstore-chatbot-api/models"
	"github.com/ngocminh/bookstore-chatbot-api/nlu"
	"github.com/ngocminh/bookstore-chatbot-api/utils"
)

// SessionState names the field the session is waiting for. Fields fill
// strictly in this order; a later field is never set while an earlier one
// is unset.
type SessionState string

const (
	StateAwaitingBook     SessionState = "awaiting_book"
	StateAwaitingQuantity SessionState = "awaiting_quantity"
	StateAwaitingName     SessionState = "awaiting_name"
	StateAwaitingPhone    SessionState = "awaiting_phone"
	StateAwaitingAddress  SessionState = "awaiting_address"
	StateComplete         SessionState = "complete"
)

// Prompts and validation messages of the order dialogue
const (
	msgAskTitle       = "Ban muon mua sach nao? (nhap ten sach)"
	msgTitleNotFound  = "Khong tim thay sach phu hop. Ban muon mua sach nao? (nhap ten sach)"
	msgAskName        = "Ho ten day du cua nguoi nhan la gi?"
	msgNameTooShort   = "Vui long nhap ho ten day du cua ban."
	msgAskPhone       = "So dien thoai cua ban la?"
	msgPhoneInvalid   = "So dien thoai khong hop le. Nhap lai nhe."
	msgAskAddress     = "Dia chi nhan hang?"
	msgQuantityNotPos = "So luong phai > 0. Ban nhap lai so luong nhe."
	msgStockChanged   = "So luong vuot qua ton kho hien tai. Ban nhap lai so luong nhe."
)

// OrderSession is the in-progress state of one order-taking conversation.
// It lives in memory only; nothing is persisted until the final commit.
type OrderSession struct {
	catalog CatalogService

	book         *models.Book
	quantity     *int
	customerName string
	phone        string
	address      string
}

// NewOrderSession opens a session against the given catalog
func NewOrderSession(catalog CatalogService) *OrderSession {
	return &OrderSession{catalog: catalog}
}

// State returns the first unfilled field of the session
func (s *OrderSession) State() SessionState {
	switch {
	case s.book == nil:
		return StateAwaitingBook
	case s.quantity == nil:
		return StateAwaitingQuantity
	case s.customerName == "":
		return StateAwaitingName
	case s.phone == "":
		return StateAwaitingPhone
	case s.address == "":
		return StateAwaitingAddress
	}
	return StateComplete
}

// Book returns the bound book, or nil while none is bound
func (s *OrderSession) Book() *models.Book {
	return s.book
}

// Quantity returns the staged quantity and whether one is set
func (s *OrderSession) Quantity() (int, bool) {
	if s.quantity == nil {
		return 0, false
	}
	return *s.quantity, true
}

// Advance processes one user turn. It returns the reply to show, whether
// the session finished with a committed order, and an error only for store
// failures (validation problems and lookup misses are replies, not errors).
// On a store failure the session keeps its state so the user can retry.
func (s *OrderSession) Advance(text string) (reply string, done bool, err error) {
	raw := strings.TrimSpace(text)
	entry := s.State()

	// Slot extraction runs only while the book is still being bound.
	// Later states capture the raw utterance for the field they asked for,
	// so a name like "the loai Kim" can never be misread as a search cue.
	var lookupMiss bool
	if entry == StateAwaitingBook {
		intent := nlu.Parse(raw)
		lookup := intent.Slots[nlu.SlotTitle]
		if lookup == "" && intent.Name != nlu.IntentOrder {
			// No order phrasing: the reply to "which book?" is the title
			lookup = raw
		}
		if lookup != "" {
			book, ferr := s.catalog.FindBookByTitle(lookup)
			if ferr != nil {
				return "", false, ferr
			}
			if book != nil {
				s.book = book
			} else {
				lookupMiss = true
			}
		}
		// Quantity fills only together with the book; a missed lookup
		// leaves every field untouched
		if qs, ok := intent.Slots[nlu.SlotQuantity]; ok && s.book != nil && s.quantity == nil {
			if n, aerr := strconv.Atoi(qs); aerr == nil {
				s.quantity = &n
			}
		}
	}
	if entry == StateAwaitingQuantity {
		if n, ok := nlu.ExtractQuantity(raw); ok {
			s.quantity = &n
		}
	}

	// Exactly one action for the first unmet condition, top-down
	if s.book == nil {
		if lookupMiss {
			return msgTitleNotFound, false, nil
		}
		return msgAskTitle, false, nil
	}

	if s.quantity == nil {
		return fmt.Sprintf("Ban muon mua bao nhieu quyen '%s'?", s.book.Title), false, nil
	}
	if *s.quantity <= 0 {
		s.quantity = nil
		return msgQuantityNotPos, false, nil
	}
	if s.book.Stock < *s.quantity {
		s.quantity = nil
		return fmt.Sprintf("Chi con %d quyen trong kho. Ban nhap lai so luong nhe.", s.book.Stock), false, nil
	}

	if s.customerName == "" {
		if entry != StateAwaitingName {
			// The utterance that bound book/quantity is not a name
			return msgAskName, false, nil
		}
		if !utils.IsFullName(raw) {
			return msgNameTooShort, false, nil
		}
		s.customerName = raw
		return msgAskPhone, false, nil
	}

	if s.phone == "" {
		digits := utils.ExtractDigits(raw)
		if len(digits) < utils.MinPhoneDigits {
			return msgPhoneInvalid, false, nil
		}
		s.phone = digits
		// "0912345678 Ha Noi" carries the address in the same turn
		if rest := inlineAddress(raw); rest != "" {
			s.address = rest
		} else {
			return msgAskAddress, false, nil
		}
	}

	if s.address == "" {
		if raw == "" {
			return msgAskAddress, false, nil
		}
		s.address = raw
	}

	return s.commit()
}

// commit finalizes the order once all five fields are bound
func (s *OrderSession) commit() (string, bool, error) {
	order, err := s.catalog.CommitOrder(
		s.book.ID, *s.quantity, s.customerName, s.phone, s.address, models.StatusConfirmed)
	if errors.Is(err, ErrInsufficientStock) {
		// Stock moved between validation and commit; collect a new quantity
		s.quantity = nil
		return msgStockChanged, false, nil
	}
	if err != nil {
		return "", false, err
	}

	return fmt.Sprintf(
		"Da dat hang thanh cong: %s x%d. Gui den %s. Ma don: %d. Cam on ban!",
		s.book.Title, order.Quantity, s.address, order.ID), true, nil
}

// inlineAddress returns the text after the final digit of a phone turn,
// whitespace-collapsed. Returns "" unless at least one letter follows the
// number, so filler spoken before the number ("so dien thoai cua toi la
// 0912345678") never becomes a delivery address.
func inlineAddress(text string) string {
	idx := strings.LastIndexFunc(text, unicode.IsDigit)
	if idx < 0 {
		return ""
	}
	rest := text[idx+1:]
	if !strings.ContainsFunc(rest, unicode.IsLetter) {
		return ""
	}
	return strings.Join(strings.Fields(rest), " ")
}
