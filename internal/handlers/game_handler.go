package handlers

import (
	"strings"

	"github.com/dreadedbot/group_games_bot/internal/game"
	apperrors "github.com/dreadedbot/group_games_bot/pkg/errors"
	"github.com/dreadedbot/group_games_bot/pkg/logger"
)

const wordUsage = "🔤 Word Guessing Game\n\n" +
	"2 players required. First to answer wins the point.\n\n" +
	"📘 Usage:\n" +
	"• /gword join — join game\n" +
	"• /gword leave — leave game\n" +
	"• /gword players — view players\n" +
	"• /gword scores — view scores\n" +
	"• Reply to question messages with your guess!"

const capitalUsage = "🌍 Capital City Quiz\n\n" +
	"2 players take turns; answer on your turn only.\n\n" +
	"📘 Usage:\n" +
	"• /gcapital join — join game\n" +
	"• /gcapital leave — leave game (opponent wins)\n" +
	"• /gcapital players — view players\n" +
	"• /gcapital scores — view scores\n" +
	"• /gcapital start — re-post the question if it went missing\n" +
	"• Reply to question messages with your answer!"

// HandleWordCommand routes one /gword invocation.
func (h *HandlerManager) HandleWordCommand(chatID, userID int64, display string, args []string, messageID int, bot BotInterface) {
	if len(args) == 0 {
		h.reply(bot, chatID, messageID, wordUsage)
		return
	}

	switch strings.ToLower(args[0]) {
	case "join":
		if err := h.Engine.Join(chatID, game.ModeFreeForAll, userID, display); err != nil {
			h.replyError(bot, chatID, messageID, err)
		}
	case "leave":
		if err := h.Engine.Leave(chatID, userID); err != nil {
			h.replyError(bot, chatID, messageID, err)
		}
	case "players":
		text, err := h.Engine.Players(chatID)
		h.replyResult(bot, chatID, messageID, text, err)
	case "scores":
		text, err := h.Engine.Scores(chatID)
		h.replyResult(bot, chatID, messageID, text, err)
	default:
		h.reply(bot, chatID, messageID, wordUsage)
	}
}

// HandleCapitalCommand routes one /gcapital invocation.
func (h *HandlerManager) HandleCapitalCommand(chatID, userID int64, display string, args []string, messageID int, bot BotInterface) {
	if len(args) == 0 {
		h.reply(bot, chatID, messageID, capitalUsage)
		return
	}

	switch strings.ToLower(args[0]) {
	case "join":
		if err := h.Engine.Join(chatID, game.ModeTurnBased, userID, display); err != nil {
			h.replyError(bot, chatID, messageID, err)
		}
	case "leave":
		if err := h.Engine.Leave(chatID, userID); err != nil {
			h.replyError(bot, chatID, messageID, err)
		}
	case "players":
		text, err := h.Engine.Players(chatID)
		h.replyResult(bot, chatID, messageID, text, err)
	case "scores":
		text, err := h.Engine.Scores(chatID)
		h.replyResult(bot, chatID, messageID, text, err)
	case "start":
		if err := h.Engine.Start(chatID, userID); err != nil {
			h.replyError(bot, chatID, messageID, err)
		}
	default:
		h.reply(bot, chatID, messageID, capitalUsage)
	}
}

func (h *HandlerManager) reply(bot BotInterface, chatID int64, messageID int, text string) {
	if _, err := bot.SendReply(chatID, messageID, text); err != nil {
		logger.Error("Failed to send reply", "chat_id", chatID, "error", err)
	}
}

func (h *HandlerManager) replyResult(bot BotInterface, chatID int64, messageID int, text string, err error) {
	if err != nil {
		h.replyError(bot, chatID, messageID, err)
		return
	}
	h.reply(bot, chatID, messageID, text)
}

// replyError surfaces protocol errors to the user; anything else is logged
// and answered generically.
func (h *HandlerManager) replyError(bot BotInterface, chatID int64, messageID int, err error) {
	if appErr, ok := err.(*apperrors.AppError); ok {
		h.reply(bot, chatID, messageID, appErr.Message)
		return
	}
	logger.Error("Command failed", "chat_id", chatID, "error", err)
	h.reply(bot, chatID, messageID, "❌ Something went wrong!")
}
