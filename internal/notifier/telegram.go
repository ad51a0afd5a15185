package notifier

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"reeltor/internal/domain"
)

const (
	maxCaptionLength = 950
	maxImagesPerAd   = 7
	sendPause        = 2 * time.Second
)

// AdSource is the slice of the ad store the notifier needs.
type AdSource interface {
	Recent(ctx context.Context, limit int) ([]domain.Ad, error)
	MarkPosted(ctx context.Context, id int64, postedAt time.Time) error
}

type ImageSource interface {
	ListByAd(ctx context.Context, adID int64) ([]domain.AdImage, error)
}

type mediaSender interface {
	SendMediaGroup(cfg tgbotapi.MediaGroupConfig) ([]tgbotapi.Message, error)
}

// Notifier posts recent ads to a Telegram channel as grouped media messages.
type Notifier struct {
	sender  mediaSender
	channel string
	ads     AdSource
	images  ImageSource
	logger  *slog.Logger
}

func New(token, channel string, ads AdSource, images ImageSource, logger *slog.Logger) (*Notifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("init telegram bot: %w", err)
	}
	return &Notifier{
		sender:  bot,
		channel: channel,
		ads:     ads,
		images:  images,
		logger:  logger.With("component", "notifier"),
	}, nil
}

// Notify sends the most recent ads to the channel, pausing between sends.
// An empty result set is a no-op. Ads without images are skipped; a failed
// send is logged and does not stop the remaining ads.
func (n *Notifier) Notify(ctx context.Context, limit int) error {
	ads, err := n.ads.Recent(ctx, limit)
	if err != nil {
		return fmt.Errorf("load recent ads: %w", err)
	}
	if len(ads) == 0 {
		n.logger.Info("no recent ads to post")
		return nil
	}

	for i, ad := range ads {
		images, err := n.images.ListByAd(ctx, ad.ID)
		if err != nil {
			return fmt.Errorf("load images of ad %d: %w", ad.AdID, err)
		}

		group := mediaGroup(ad, i+1, len(ads), images)
		if len(group) == 0 {
			n.logger.Debug("ad has no images, skipped", "ad_id", ad.AdID)
			continue
		}

		cfg := tgbotapi.MediaGroupConfig{
			ChannelUsername: n.channel,
			Media:           group,
		}
		if _, err := n.sender.SendMediaGroup(cfg); err != nil {
			n.logger.Error("failed to send media group", "ad_id", ad.AdID, "error", err)
			continue
		}

		if err := n.ads.MarkPosted(ctx, ad.ID, time.Now()); err != nil {
			n.logger.Error("failed to mark ad posted", "ad_id", ad.AdID, "error", err)
		}
		n.logger.Info("posted ad", "ad_id", ad.AdID, "images", len(group))

		if i < len(ads)-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(sendPause):
			}
		}
	}
	return nil
}

func mediaGroup(ad domain.Ad, rank, total int, images []domain.AdImage) []interface{} {
	if len(images) > maxImagesPerAd {
		images = images[:maxImagesPerAd]
	}

	group := make([]interface{}, 0, len(images))
	for i, img := range images {
		photo := tgbotapi.NewInputMediaPhoto(tgbotapi.FileURL(img.ImageURL))
		if i == 0 {
			photo.Caption = formatCaption(ad, rank, total)
		}
		group = append(group, photo)
	}
	return group
}

func formatCaption(ad domain.Ad, rank, total int) string {
	return fmt.Sprintf("#%d of Top %d annonces of this week!\n", rank, total) + formatMessage(ad)
}

// formatMessage renders subject+body within the caption budget, marking the
// cut with an ellipsis. Truncation is rune-based so multibyte text never
// splits mid-character.
func formatMessage(ad domain.Ad) string {
	msg := fmt.Sprintf("\n%s\n%s\n\n", ad.Subject, ad.Body)
	runes := []rune(msg)
	if len(runes) > maxCaptionLength {
		msg = string(runes[:maxCaptionLength-3]) + "..."
	}
	return msg
}
