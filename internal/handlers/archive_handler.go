package handlers

import (
	"fmt"

	"github.com/dreadedbot/group_games_bot/internal/models"
	"github.com/dreadedbot/group_games_bot/internal/security"
	"github.com/dreadedbot/group_games_bot/pkg/logger"
	"github.com/dreadedbot/group_games_bot/pkg/utils"
)

// ArchiveInbound stores a copy of a group message so its original content can
// be reported later. Best-effort: failures are logged, never surfaced.
func (h *HandlerManager) ArchiveInbound(chatID int64, messageID int, senderID int64, senderName, content, mediaType string) {
	if !h.archiveEnabled.Load() || h.ArchiveRepo == nil {
		return
	}
	if mediaType == "" {
		mediaType = models.MediaTypeText
	}

	msg := &models.ArchivedMessage{
		ChatID:     chatID,
		MessageID:  messageID,
		SenderID:   senderID,
		SenderName: senderName,
		Content:    security.SanitizeContent(content),
		MediaType:  mediaType,
	}
	if err := h.ArchiveRepo.Save(msg); err != nil {
		logger.Error("Failed to archive message", "chat_id", chatID, "message_id", messageID, "error", err)
	}
}

// ReportEditedMessage notifies the owner with the archived original when a
// group message changes under us. Edits by the owner are not reported.
func (h *HandlerManager) ReportEditedMessage(chatID int64, messageID int, editorID int64, editorName, newContent string, bot BotInterface) {
	if !h.archiveEnabled.Load() || h.ArchiveRepo == nil || h.Config.OwnerTgID == 0 {
		return
	}
	if editorID == h.Config.OwnerTgID {
		return
	}

	original, err := h.ArchiveRepo.GetByChatAndMessage(chatID, messageID)
	if err != nil {
		return
	}

	notification := fmt.Sprintf(
		"🛡️ ARCHIVE REPORT\n\nEdited by: %s\nChat: %d\n\nOriginal: %s\nNow: %s",
		editorName, chatID,
		utils.TruncateText(original.Content, 1000),
		utils.TruncateText(security.SanitizeContent(newContent), 1000),
	)
	if _, err := bot.SendMessage(h.Config.OwnerTgID, notification); err != nil {
		logger.Error("Failed to notify owner of edit", "chat_id", chatID, "error", err)
	}
}

// HandleArchiveToggle is the owner-only /archive on|off command.
func (h *HandlerManager) HandleArchiveToggle(chatID, userID int64, messageID int, args []string, bot BotInterface) {
	if userID != h.Config.OwnerTgID {
		h.reply(bot, chatID, messageID, "❌ Owner only.")
		return
	}

	if len(args) == 0 {
		state := "off"
		if h.archiveEnabled.Load() {
			state = "on"
		}
		h.reply(bot, chatID, messageID, fmt.Sprintf("🛡️ Message archive is %s.", state))
		return
	}

	switch args[0] {
	case "on":
		h.archiveEnabled.Store(true)
		h.reply(bot, chatID, messageID, "🛡️ Message archive enabled.")
	case "off":
		h.archiveEnabled.Store(false)
		h.reply(bot, chatID, messageID, "🛡️ Message archive disabled.")
	default:
		h.reply(bot, chatID, messageID, "Usage: /archive on|off")
	}
}

// PurgeExpiredArchives drops archive rows past the retention window. Called
// from the background job ticker.
func (h *HandlerManager) PurgeExpiredArchives() {
	if h.ArchiveRepo == nil {
		return
	}
	count, err := h.ArchiveRepo.PurgeOlderThan(h.Config.ArchiveRetention())
	if err != nil {
		logger.Error("Failed to purge archive", "error", err)
		return
	}
	if count > 0 {
		logger.Debug("Purged expired archive rows", "count", count)
	}
}
