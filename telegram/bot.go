package telegram

import (
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/dreadedbot/group_games_bot/internal/config"
	"github.com/dreadedbot/group_games_bot/internal/game"
	"github.com/dreadedbot/group_games_bot/internal/handlers"
	"github.com/dreadedbot/group_games_bot/internal/middleware"
	"github.com/dreadedbot/group_games_bot/internal/models"
	"github.com/dreadedbot/group_games_bot/internal/repositories"
	"github.com/dreadedbot/group_games_bot/pkg/logger"
	"gorm.io/gorm"
)

const numWorkers = 8

type Bot struct {
	api      *tgbotapi.BotAPI
	config   *config.Config
	db       *gorm.DB
	handlers *handlers.HandlerManager
	engine   *game.Engine
	limiter  *middleware.RateLimiter

	// Worker pool; updates are hashed by chat so each group's events are
	// processed in order, which is what the session engine assumes.
	workerChans []chan tgbotapi.Update
	stop        chan struct{}
}

func InitBot(cfg *config.Config, db *gorm.DB) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, err
	}

	if cfg.AppEnv == "development" {
		api.Debug = true
	}

	logger.Info("Authorized on account", "username", api.Self.UserName)

	// Initialize repositories
	archiveRepo := repositories.NewArchiveRepository(db)
	resultRepo := repositories.NewGameResultRepository(db)
	capitalRepo := repositories.NewCapitalRepository(db)

	bot := &Bot{
		api:         api,
		config:      cfg,
		db:          db,
		limiter:     middleware.NewRateLimiter(cfg.RateLimitPerUser, cfg.RateLimitPerChat, time.Minute),
		workerChans: make([]chan tgbotapi.Update, numWorkers),
		stop:        make(chan struct{}),
	}

	rules := map[game.Mode]game.Rules{
		game.ModeFreeForAll: {
			Picker:       game.NewWordPicker(game.DefaultWords()),
			RoundLimit:   cfg.WordRoundLimit,
			RoundTimeout: cfg.WordRoundTimeout(),
		},
		game.ModeTurnBased: {
			Picker:       game.NewCapitalPicker(loadCapitalPool(capitalRepo)),
			RoundLimit:   cfg.CapitalRoundsPerPlayer,
			RoundTimeout: cfg.CapitalRoundTimeout(),
		},
	}
	bot.engine = game.NewEngine(bot, rules, handlers.NewGameResultSink(resultRepo))
	bot.handlers = handlers.NewHandlerManager(cfg, db, bot.engine, archiveRepo, resultRepo, newUploadChain(cfg))

	for i := 0; i < numWorkers; i++ {
		bot.workerChans[i] = make(chan tgbotapi.Update, 100)
		go bot.startWorker(bot.workerChans[i])
	}

	go bot.startUpdateListener()
	go bot.startBackgroundJobs()

	return bot, nil
}

// loadCapitalPool prefers imported rows and falls back to the built-in pool.
func loadCapitalPool(repo *repositories.CapitalRepository) []game.CapitalPair {
	rows, err := repo.ListAll()
	if err != nil || len(rows) == 0 {
		if err != nil {
			logger.Warn("Falling back to built-in capital pool", "error", err)
		}
		return game.DefaultCapitals()
	}

	pairs := make([]game.CapitalPair, 0, len(rows))
	for _, row := range rows {
		pairs = append(pairs, game.CapitalPair{Country: row.Country, Capital: row.Capital})
	}
	logger.Info("Loaded capital pool from database", "count", len(pairs))
	return pairs
}

func (b *Bot) startWorker(ch chan tgbotapi.Update) {
	for update := range ch {
		b.handleUpdate(update)
	}
}

func (b *Bot) startUpdateListener() {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	for {
		logger.Info("Starting update listener...")
		updates := b.api.GetUpdatesChan(u)

		for update := range updates {
			var chatID int64
			if update.Message != nil {
				chatID = update.Message.Chat.ID
			} else if update.EditedMessage != nil {
				chatID = update.EditedMessage.Chat.ID
			}

			if chatID != 0 {
				idx := chatID % numWorkers
				if idx < 0 {
					idx = -idx
				}
				b.workerChans[idx] <- update
			} else {
				go b.handleUpdate(update)
			}
		}

		select {
		case <-b.stop:
			return
		default:
		}
		logger.Warn("Update channel closed. Restarting in 5 seconds...")
		time.Sleep(5 * time.Second)
	}
}

func (b *Bot) startBackgroundJobs() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-b.stop:
			return
		case <-ticker.C:
			b.handlers.PurgeExpiredArchives()
		}
	}
}

func (b *Bot) Stop() {
	close(b.stop)
	b.api.StopReceivingUpdates()
}

func (b *Bot) handleUpdate(update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Panic in handleUpdate", "error", r)
		}
	}()

	if update.Message != nil {
		b.handleMessage(update.Message)
	} else if update.EditedMessage != nil {
		b.handleEditedMessage(update.EditedMessage)
	}
}

func (b *Bot) handleMessage(message *tgbotapi.Message) {
	if message.From == nil {
		return
	}
	chatID := message.Chat.ID
	userID := message.From.ID
	isGroup := message.Chat.IsGroup() || message.Chat.IsSuperGroup()

	logger.Debug("Received message",
		"chat_id", chatID,
		"user_id", userID,
		"is_command", message.IsCommand(),
	)

	if isGroup {
		b.handlers.ArchiveInbound(chatID, message.MessageID, userID,
			displayName(message.From), messageContent(message), mediaType(message))
	}

	if message.IsCommand() {
		if !b.limiter.Allow(userID, chatID) {
			logger.Debug("Rate limited", "chat_id", chatID, "user_id", userID)
			return
		}
		b.routeCommand(message)
		return
	}

	// Non-command messages only matter to a live question's correlator.
	replyTo := 0
	if message.ReplyToMessage != nil {
		replyTo = message.ReplyToMessage.MessageID
	}
	b.engine.HandleInbound(game.Inbound{
		ChatID:    chatID,
		MessageID: message.MessageID,
		SenderID:  userID,
		Display:   displayName(message.From),
		ReplyToID: replyTo,
		Text:      message.Text,
	})
}

func (b *Bot) handleEditedMessage(message *tgbotapi.Message) {
	if message.From == nil {
		return
	}
	if !message.Chat.IsGroup() && !message.Chat.IsSuperGroup() {
		return
	}
	b.handlers.ReportEditedMessage(message.Chat.ID, message.MessageID,
		message.From.ID, displayName(message.From), messageContent(message), b)
}

func (b *Bot) routeCommand(message *tgbotapi.Message) {
	chatID := message.Chat.ID
	userID := message.From.ID
	display := displayName(message.From)
	args := strings.Fields(message.CommandArguments())

	switch message.Command() {
	case "gword":
		b.handlers.HandleWordCommand(chatID, userID, display, args, message.MessageID, b)
	case "gcapital":
		b.handlers.HandleCapitalCommand(chatID, userID, display, args, message.MessageID, b)
	case "upload":
		b.handlers.HandleUpload(uploadRequestFrom(message), b)
	case "setphoto":
		b.handlers.HandleSetPhoto(chatID, userID, message.MessageID, repliedPhotoID(message), b)
	case "archive":
		b.handlers.HandleArchiveToggle(chatID, userID, message.MessageID, args, b)
	case "help", "start":
		b.sendHelp(chatID, message.MessageID)
	}
}

func (b *Bot) sendHelp(chatID int64, messageID int) {
	help := "🤖 Group Games Bot\n\n" +
		"• /gword — word guessing game (free-for-all)\n" +
		"• /gcapital — capital city quiz (turn-based)\n" +
		"• /upload — reply to a file to get a public link\n" +
		"• /archive on|off — owner: toggle the message archive\n" +
		"• /setphoto — owner: reply to an image to set the chat photo"
	if _, err := b.SendReply(chatID, messageID, help); err != nil {
		logger.Error("Failed to send help", "chat_id", chatID, "error", err)
	}
}

func displayName(user *tgbotapi.User) string {
	if user.UserName != "" {
		return "@" + user.UserName
	}
	return user.FirstName
}

func messageContent(message *tgbotapi.Message) string {
	if message.Text != "" {
		return message.Text
	}
	return message.Caption
}

func mediaType(message *tgbotapi.Message) string {
	switch {
	case len(message.Photo) > 0:
		return models.MediaTypePhoto
	case message.Video != nil:
		return models.MediaTypeVideo
	case message.Document != nil:
		return models.MediaTypeDocument
	case message.Sticker != nil:
		return models.MediaTypeSticker
	case message.Voice != nil:
		return models.MediaTypeVoice
	default:
		return models.MediaTypeText
	}
}

// uploadRequestFrom pulls the media handle out of the message the /upload
// command replied to.
func uploadRequestFrom(message *tgbotapi.Message) handlers.UploadRequest {
	req := handlers.UploadRequest{
		ChatID:    message.Chat.ID,
		MessageID: message.MessageID,
	}

	quoted := message.ReplyToMessage
	if quoted == nil {
		return req
	}

	switch {
	case quoted.Document != nil:
		req.FileID = quoted.Document.FileID
		req.FileName = quoted.Document.FileName
		req.FileSize = int64(quoted.Document.FileSize)
	case quoted.Video != nil:
		req.FileID = quoted.Video.FileID
		req.FileSize = int64(quoted.Video.FileSize)
	case quoted.Audio != nil:
		req.FileID = quoted.Audio.FileID
		req.FileName = quoted.Audio.FileName
		req.FileSize = int64(quoted.Audio.FileSize)
	case quoted.Voice != nil:
		req.FileID = quoted.Voice.FileID
		req.FileSize = int64(quoted.Voice.FileSize)
	case len(quoted.Photo) > 0:
		largest := quoted.Photo[len(quoted.Photo)-1]
		req.FileID = largest.FileID
		req.FileSize = int64(largest.FileSize)
	}
	return req
}

// repliedPhotoID returns the file id of the image the command replied to.
func repliedPhotoID(message *tgbotapi.Message) string {
	quoted := message.ReplyToMessage
	if quoted == nil {
		return ""
	}
	if len(quoted.Photo) > 0 {
		return quoted.Photo[len(quoted.Photo)-1].FileID
	}
	if quoted.Document != nil && strings.HasPrefix(quoted.Document.MimeType, "image/") {
		return quoted.Document.FileID
	}
	return ""
}
