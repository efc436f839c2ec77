package telegram

import (
	"fmt"
	"io"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/dreadedbot/group_games_bot/internal/config"
	"github.com/dreadedbot/group_games_bot/internal/upload"
)

// SendMessage posts a plain message and returns the id Telegram assigned to
// it. The game engine keys answer correlation on that id.
func (b *Bot) SendMessage(chatID int64, text string) (int, error) {
	sent, err := b.api.Send(tgbotapi.NewMessage(chatID, text))
	if err != nil {
		return 0, err
	}
	return sent.MessageID, nil
}

// SendReply posts a message quoting an earlier one.
func (b *Bot) SendReply(chatID int64, replyToID int, text string) (int, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyToMessageID = replyToID
	sent, err := b.api.Send(msg)
	if err != nil {
		return 0, err
	}
	return sent.MessageID, nil
}

// DownloadFile fetches a file's bytes from Telegram's file servers. Reads are
// capped at the configured upload limit.
func (b *Bot) DownloadFile(fileID string) ([]byte, error) {
	url, err := b.api.GetFileDirectURL(fileID)
	if err != nil {
		return nil, err
	}

	client := &http.Client{Timeout: b.config.UploadTimeout()}
	resp, err := client.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("file download failed with status %d", resp.StatusCode)
	}

	limit := b.config.UploadMaxSize
	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("file exceeds %d byte limit", limit)
	}
	return data, nil
}

// SetChatPhoto replaces the group's chat photo.
func (b *Bot) SetChatPhoto(chatID int64, photo []byte) error {
	cfg := tgbotapi.NewChatPhoto(chatID, tgbotapi.FileBytes{
		Name:  "chat_photo.jpg",
		Bytes: photo,
	})
	_, err := b.api.Request(cfg)
	return err
}

// newUploadChain wires the hosting providers in preference order.
func newUploadChain(cfg *config.Config) *upload.Chain {
	client := &http.Client{Timeout: cfg.UploadTimeout() + 10*time.Second}
	return upload.NewChain(
		upload.NewPixeldrain(client, ""),
		upload.NewCatbox(client, ""),
	)
}
