package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oksasatya/go-ddd-blog/internal/domain/entity"
	"github.com/oksasatya/go-ddd-blog/pkg/mailer"
	mailtpl "github.com/oksasatya/go-ddd-blog/pkg/mailer/templates"
)

// Publisher puts a JSON message on the email queue.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// EmailNotifier enqueues one article_published job per recipient.
type EmailNotifier struct {
	pub        Publisher
	recipients []string
	appName    string
	siteURL    string
}

func NewEmailNotifier(pub Publisher, recipients []string, appName, siteURL string) *EmailNotifier {
	return &EmailNotifier{pub: pub, recipients: recipients, appName: appName, siteURL: siteURL}
}

func (n *EmailNotifier) ArticlePublished(ctx context.Context, a *entity.Article) error {
	var errs []error
	for _, to := range n.recipients {
		data := mailtpl.NewArticlePublishedData(n.appName, n.siteURL, to, a.ID, a.Title, a.Description,
			mailtpl.WithAuthor(a.Author.Name),
			mailtpl.WithCoverImage(a.CoverImage),
			mailtpl.WithTime(time.Now()),
		)
		job := mailer.EmailJob{To: to, Template: mailtpl.ArticlePublished, Data: data}
		if err := n.pub.PublishJSON(ctx, job); err != nil {
			errs = append(errs, fmt.Errorf("enqueue for %s: %w", to, err))
		}
	}
	return errors.Join(errs...)
}
