package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kindling/internal/models"

	"gorm.io/gorm"
)

// txTimeout bounds every service transaction. Variable so tests can shrink it.
var txTimeout = 5 * time.Second

// inTx runs fn inside a deadline-bounded transaction. A deadline abort rolls
// back fully and surfaces as a retryable error: no partial effect persists.
func inTx(g *gorm.DB, fn func(tx *gorm.DB) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), txTimeout)
	defer cancel()

	err := g.WithContext(ctx).Transaction(fn)
	if err != nil && errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: transaction deadline exceeded", models.ErrTransient)
	}
	return err
}
