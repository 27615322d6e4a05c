// Package seed creates demo data for development and testing only.
package seed

import (
	"context"
	"fmt"
	"time"

	"ripple/internal/models"
	"ripple/internal/uow"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Posts inserts count fake posts through the unit of work, one transaction
// for the whole batch so a partial seed never survives.
func Posts(ctx context.Context, db *gorm.DB, count int) error {
	gofakeit.Seed(time.Now().UnixNano())

	u := uow.New(db)
	return u.Transact(ctx, func(tx *gorm.DB) error {
		u.UseTransaction(tx)

		for i := 0; i < count; i++ {
			post := &models.Post{
				Content:        gofakeit.SentenceSimple(),
				AuthorName:     gofakeit.Name(),
				ProfilePicture: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.Username()),
			}
			if len(post.Content) > 256 {
				post.Content = post.Content[:256]
			}
			if _, err := u.Posts.Create(ctx, post); err != nil {
				return err
			}
		}
		return nil
	})
}
