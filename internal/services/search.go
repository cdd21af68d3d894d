package services

import "log"

// SearchNotifier tells the search index about content changes. Indexing
// itself lives outside this service; the default implementation only logs.
type SearchNotifier interface {
	ItemIndexed(itemID string)
	ItemRemoved(itemID string)
}

type logSearchNotifier struct{}

// NewLogSearchNotifier returns the logging stand-in used until a real index
// is wired up.
func NewLogSearchNotifier() SearchNotifier {
	return logSearchNotifier{}
}

func (logSearchNotifier) ItemIndexed(itemID string) {
	log.Printf("search index: upsert item %s", itemID)
}

func (logSearchNotifier) ItemRemoved(itemID string) {
	log.Printf("search index: remove item %s", itemID)
}
