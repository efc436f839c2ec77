package handlers

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dreadedbot/group_games_bot/internal/security"
	"github.com/dreadedbot/group_games_bot/pkg/logger"
	"github.com/google/uuid"
)

var allowedUploadExts = []string{
	".jpg", ".jpeg", ".png", ".gif", ".webp",
	".mp4", ".mov", ".mp3", ".ogg",
	".pdf", ".zip", ".txt", ".docx", ".xlsx",
}

// UploadRequest carries the media of the message the /upload command replied
// to.
type UploadRequest struct {
	ChatID    int64
	MessageID int
	FileID    string
	FileName  string
	FileSize  int64
}

// HandleUpload downloads the replied-to file from the chat platform and
// relays it through the upload provider chain, answering with the public URL.
func (h *HandlerManager) HandleUpload(req UploadRequest, bot BotInterface) {
	if req.FileID == "" {
		h.reply(bot, req.ChatID, req.MessageID, "❌ Reply to a media file (photo, video, or document) to upload.")
		return
	}
	if !security.ValidateFileSize(req.FileSize, h.Config.UploadMaxSize) {
		h.reply(bot, req.ChatID, req.MessageID,
			fmt.Sprintf("❌ File too large. Max size is %d MB.", h.Config.UploadMaxSize/(1<<20)))
		return
	}

	fileName := req.FileName
	if fileName == "" {
		fileName = fmt.Sprintf("upload_%s.bin", uuid.NewString())
	} else if !security.ValidateFileType(fileName, allowedUploadExts) {
		h.reply(bot, req.ChatID, req.MessageID, "❌ This file type can't be uploaded.")
		return
	} else {
		// Keep the extension, replace the name: the original may leak
		// personal info into a public URL.
		fileName = fmt.Sprintf("upload_%s%s", uuid.NewString(), strings.ToLower(filepath.Ext(fileName)))
	}

	data, err := bot.DownloadFile(req.FileID)
	if err != nil {
		logger.Error("Failed to download media", "chat_id", req.ChatID, "error", err)
		h.reply(bot, req.ChatID, req.MessageID, "⚠️ Couldn't fetch that file. Try again.")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.Config.UploadTimeout())
	defer cancel()

	url, err := h.Uploader.Upload(ctx, fileName, data)
	if err != nil {
		logger.Error("Upload failed", "chat_id", req.ChatID, "error", err)
		h.reply(bot, req.ChatID, req.MessageID, "❌ Upload failed on all providers. Try again later.")
		return
	}

	h.reply(bot, req.ChatID, req.MessageID, fmt.Sprintf("✅ Upload successful:\n\n📁 %s\n🔗 %s", fileName, url))
}
