package nlu

import (
	"regexp"
	"strconv"
	"strings"
)

// Intent names recognized by the parser
const (
	IntentOrder          = "order"
	IntentSearchTitle    = "search_title"
	IntentSearchAuthor   = "search_author"
	IntentSearchCategory = "search_category"
	IntentChitchat       = "chitchat"
)

// Slot keys extracted alongside an intent
const (
	SlotTitle    = "title"
	SlotAuthor   = "author"
	SlotCategory = "category"
	SlotQuantity = "quantity"
)

// Intent is the classified purpose of a single utterance plus any slots
// extracted from it.
type Intent struct {
	Name  string
	Slots map[string]string
}

var orderKeywords = []string{"dat sach", "mua sach", "mua cuon", "dat cuon", "dat ", "mua "}

var (
	// Title is captured from the RAW text so it keeps its diacritics.
	orderTitleRe    = regexp.MustCompile(`(?i)(?:mua|dat|đặt)(?:\s+sach|\s+cuon|\s+sách|\s+cuốn)?\s+(.+)`)
	trailingQtyRe   = regexp.MustCompile(`(?i)\s+\d+\s*(?:quy?en|quyển|cuon|cuốn)?\s*$`)
	quantityRe      = regexp.MustCompile(`(\d+)\s*(?:quy?en|cuon|quy?n?)?`)
	authorRe        = regexp.MustCompile(`tac gia\s+(.+)`)
	categoryRe      = regexp.MustCompile(`the loai\s+(.+)`)
	stockQuestionRe = regexp.MustCompile(`(?:sach|cuon)?\s*(.+?)\s*(?:con hang|gia|bao nhieu|con khong)$`)
	findTitleRe     = regexp.MustCompile(`tim\s+(.+)`)
)

// Parse classifies one utterance. Pure and deterministic: matching runs on
// the normalized text, slot text that identifies catalog entries is taken
// from the raw input. Slot extraction never fails; a slot that cannot be
// extracted is simply absent.
func Parse(text string) Intent {
	t := Normalize(text)
	raw := strings.TrimSpace(text)

	// Order intent wins over everything else
	for _, k := range orderKeywords {
		if strings.Contains(t, k) {
			return Intent{Name: IntentOrder, Slots: orderSlots(t, raw)}
		}
	}

	if m := authorRe.FindStringSubmatch(t); m != nil {
		return Intent{Name: IntentSearchAuthor, Slots: map[string]string{SlotAuthor: strings.TrimSpace(m[1])}}
	}

	if m := categoryRe.FindStringSubmatch(t); m != nil {
		return Intent{Name: IntentSearchCategory, Slots: map[string]string{SlotCategory: strings.TrimSpace(m[1])}}
	}

	// Stock/price question with the title in the middle: "sach X con hang khong"
	if m := stockQuestionRe.FindStringSubmatch(t); m != nil {
		return Intent{Name: IntentSearchTitle, Slots: map[string]string{SlotTitle: strings.TrimSpace(m[1])}}
	}

	if strings.Contains(t, "tim") || strings.Contains(t, "co sach") {
		if m := findTitleRe.FindStringSubmatch(t); m != nil {
			return Intent{Name: IntentSearchTitle, Slots: map[string]string{SlotTitle: strings.TrimSpace(m[1])}}
		}
	}

	return Intent{Name: IntentChitchat, Slots: map[string]string{}}
}

// orderSlots extracts the title and quantity slots of an order utterance.
func orderSlots(normalized, raw string) map[string]string {
	slots := map[string]string{}

	if m := orderTitleRe.FindStringSubmatch(raw); m != nil {
		title := strings.TrimSpace(m[1])
		// Drop a trailing quantity expression like "2 quyen"
		title = trailingQtyRe.ReplaceAllString(title, "")
		// "dat sach" alone backtracks the unit word into the capture;
		// a bare unit word is not a title
		switch Normalize(title) {
		case "", "sach", "cuon":
		default:
			slots[SlotTitle] = title
		}
	}

	if m := quantityRe.FindStringSubmatch(normalized); m != nil {
		slots[SlotQuantity] = m[1]
	}

	return slots
}

// ExtractQuantity scans text for an integer, optionally followed by a unit
// word ("quyen"/"cuon"). Used when the dialogue is explicitly waiting for a
// quantity answer. Returns false when no parseable integer is present.
func ExtractQuantity(text string) (int, bool) {
	m := quantityRe.FindStringSubmatch(Normalize(text))
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		// Digits too long for an int; treat as absent, not as zero
		return 0, false
	}
	return n, true
}
