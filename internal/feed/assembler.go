package feed

import (
	"context"
	"fmt"

	"media-feed/internal/identity"
	"media-feed/internal/models"
	feedmodels "media-feed/pkg/models"
)

type PostLister interface {
	ListByRecency(ctx context.Context) ([]models.Post, error)
}

type EmailDirectory interface {
	Emails(ctx context.Context) (map[string]string, error)
}

// Assembler builds the feed a viewer sees: every post, newest first,
// flagged with whether the viewer owns it.
type Assembler struct {
	posts PostLister
	users EmailDirectory
}

func NewAssembler(posts PostLister, users EmailDirectory) *Assembler {
	return &Assembler{posts: posts, users: users}
}

// Assemble keeps the store's order. Owners without an account are shown as
// feedmodels.UnknownEmail.
func (a *Assembler) Assemble(ctx context.Context, viewer identity.Identity) ([]feedmodels.FeedItem, error) {
	posts, err := a.posts.ListByRecency(ctx)
	if err != nil {
		return nil, err
	}
	emails, err := a.users.Emails(ctx)
	if err != nil {
		return nil, fmt.Errorf("load identities: %w", err)
	}

	items := make([]feedmodels.FeedItem, 0, len(posts))
	for _, p := range posts {
		email, ok := emails[p.UserID]
		if !ok {
			email = feedmodels.UnknownEmail
		}
		items = append(items, feedmodels.FeedItem{
			ID:        p.ID,
			UserID:    p.UserID,
			Caption:   p.Caption,
			URL:       p.URL,
			CreatedAt: p.CreatedAt,
			FileType:  p.FileType,
			FileName:  p.FileName,
			IsOwner:   p.UserID == viewer.ID,
			Email:     email,
		})
	}
	return items, nil
}
