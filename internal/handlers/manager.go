package handlers

import (
	"sync/atomic"

	"github.com/dreadedbot/group_games_bot/internal/config"
	"github.com/dreadedbot/group_games_bot/internal/game"
	"github.com/dreadedbot/group_games_bot/internal/repositories"
	"github.com/dreadedbot/group_games_bot/internal/upload"
	"gorm.io/gorm"
)

// BotInterface is the slice of the chat client the handlers need. The
// concrete implementation lives in the telegram package; tests use fakes.
type BotInterface interface {
	SendMessage(chatID int64, text string) (int, error)
	SendReply(chatID int64, replyToID int, text string) (int, error)
	DownloadFile(fileID string) ([]byte, error)
	SetChatPhoto(chatID int64, photo []byte) error
}

type HandlerManager struct {
	Config      *config.Config
	DB          *gorm.DB
	Engine      *game.Engine
	ArchiveRepo *repositories.ArchiveRepository
	ResultRepo  *repositories.GameResultRepository
	Uploader    *upload.Chain

	archiveEnabled atomic.Bool
}

func NewHandlerManager(
	cfg *config.Config,
	db *gorm.DB,
	engine *game.Engine,
	archiveRepo *repositories.ArchiveRepository,
	resultRepo *repositories.GameResultRepository,
	uploader *upload.Chain,
) *HandlerManager {
	h := &HandlerManager{
		Config:      cfg,
		DB:          db,
		Engine:      engine,
		ArchiveRepo: archiveRepo,
		ResultRepo:  resultRepo,
		Uploader:    uploader,
	}
	h.archiveEnabled.Store(cfg.ArchiveEnabled)
	return h
}
