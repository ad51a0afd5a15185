package notifier

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reeltor/internal/domain"
	"reeltor/internal/storage/memory"
)

type stubSender struct {
	sent []tgbotapi.MediaGroupConfig
	err  error
}

func (s *stubSender) SendMediaGroup(cfg tgbotapi.MediaGroupConfig) ([]tgbotapi.Message, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.sent = append(s.sent, cfg)
	return nil, nil
}

func newTestNotifier(sender mediaSender, store *memory.Store) *Notifier {
	return &Notifier{
		sender:  sender,
		channel: "@test_channel",
		ads:     store.Ads(),
		images:  store.Images(),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func seedAd(t *testing.T, store *memory.Store, adID int64, imageURLs ...string) *domain.Ad {
	t.Helper()
	ctx := context.Background()

	ad := &domain.Ad{AdID: adID, Subject: "House", Body: "Nice house"}
	require.NoError(t, store.Ads().Insert(ctx, ad))
	for _, url := range imageURLs {
		require.NoError(t, store.Images().Insert(ctx, &domain.AdImage{
			AdID:      ad.ID,
			ImageURL:  url,
			ImageType: domain.ImageTypeRegular,
		}))
	}
	return ad
}

func TestNotify_SendsMediaGroupAndMarksPosted(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	ad := seedAd(t, store, 1, "https://cdn/a.jpg", "https://cdn/b.jpg")

	sender := &stubSender{}
	n := newTestNotifier(sender, store)

	require.NoError(t, n.Notify(ctx, 5))

	require.Len(t, sender.sent, 1)
	cfg := sender.sent[0]
	assert.Equal(t, "@test_channel", cfg.ChannelUsername)
	require.Len(t, cfg.Media, 2)

	first, ok := cfg.Media[0].(tgbotapi.InputMediaPhoto)
	require.True(t, ok)
	assert.Contains(t, first.Caption, "#1 of Top 1 annonces of this week!")
	assert.Contains(t, first.Caption, "House")

	stored, err := store.Ads().FindByAdID(ctx, ad.AdID)
	require.NoError(t, err)
	assert.NotNil(t, stored.PostedAt)
}

func TestNotify_EmptyStoreIsNoOp(t *testing.T) {
	sender := &stubSender{}
	n := newTestNotifier(sender, memory.New())

	require.NoError(t, n.Notify(context.Background(), 5))
	assert.Empty(t, sender.sent)
}

func TestNotify_SkipsAdsWithoutImages(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	ad := seedAd(t, store, 1)

	sender := &stubSender{}
	n := newTestNotifier(sender, store)

	require.NoError(t, n.Notify(ctx, 5))
	assert.Empty(t, sender.sent)

	stored, err := store.Ads().FindByAdID(ctx, ad.AdID)
	require.NoError(t, err)
	assert.Nil(t, stored.PostedAt)
}

func TestNotify_SendFailureDoesNotMarkPosted(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	ad := seedAd(t, store, 1, "https://cdn/a.jpg")

	n := newTestNotifier(&stubSender{err: errors.New("telegram down")}, store)

	require.NoError(t, n.Notify(ctx, 5))

	stored, err := store.Ads().FindByAdID(ctx, ad.AdID)
	require.NoError(t, err)
	assert.Nil(t, stored.PostedAt)
}

func TestMediaGroup_CapsImageCount(t *testing.T) {
	images := make([]domain.AdImage, 0, maxImagesPerAd+5)
	for i := 0; i < maxImagesPerAd+5; i++ {
		images = append(images, domain.AdImage{ImageURL: "https://cdn/img.jpg"})
	}

	group := mediaGroup(domain.Ad{Subject: "House"}, 1, 1, images)
	assert.Len(t, group, maxImagesPerAd)
}

func TestFormatMessage_TruncatesLongBodies(t *testing.T) {
	ad := domain.Ad{
		Subject: "House",
		Body:    strings.Repeat("я", 2*maxCaptionLength),
	}

	msg := formatMessage(ad)
	runes := []rune(msg)
	assert.Len(t, runes, maxCaptionLength)
	assert.True(t, strings.HasSuffix(msg, "..."))
}

func TestFormatMessage_ShortBodyUntouched(t *testing.T) {
	ad := domain.Ad{Subject: "House", Body: "short"}
	assert.Equal(t, "\nHouse\nshort\n\n", formatMessage(ad))
}

func TestNotify_HonorsContextBetweenSends(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	store := memory.New()
	seedAd(t, store, 1, "https://cdn/a.jpg")
	seedAd(t, store, 2, "https://cdn/b.jpg")

	sender := &stubSender{}
	n := newTestNotifier(sender, store)

	done := make(chan error, 1)
	go func() { done <- n.Notify(ctx, 5) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	err := <-done
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, sender.sent, 1)
}
