package handlers

import (
	"github.com/dreadedbot/group_games_bot/pkg/logger"
)

// HandleSetPhoto is the owner-only /setphoto command: replying to an image
// sets it as the group's chat photo.
func (h *HandlerManager) HandleSetPhoto(chatID, userID int64, messageID int, photoFileID string, bot BotInterface) {
	if userID != h.Config.OwnerTgID {
		h.reply(bot, chatID, messageID, "❌ Owner only.")
		return
	}
	if photoFileID == "" {
		h.reply(bot, chatID, messageID, "Reply to an image with /setphoto.")
		return
	}

	data, err := bot.DownloadFile(photoFileID)
	if err != nil {
		logger.Error("Failed to download photo", "chat_id", chatID, "error", err)
		h.reply(bot, chatID, messageID, "⚠️ Couldn't fetch that image. Try again.")
		return
	}

	if err := bot.SetChatPhoto(chatID, data); err != nil {
		logger.Error("Failed to set chat photo", "chat_id", chatID, "error", err)
		h.reply(bot, chatID, messageID, "❌ An error occurred while updating the chat photo.")
		return
	}

	h.reply(bot, chatID, messageID, "✅ Chat photo updated.")
}
