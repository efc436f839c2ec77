package handlers

import (
	"github.com/dreadedbot/group_games_bot/internal/game"
	"github.com/dreadedbot/group_games_bot/internal/models"
	"github.com/dreadedbot/group_games_bot/internal/repositories"
	"github.com/dreadedbot/group_games_bot/pkg/logger"
)

// GameResultSink persists finished games. It satisfies game.ResultSink and
// writes asynchronously so the engine never blocks on the database.
type GameResultSink struct {
	repo *repositories.GameResultRepository
}

func NewGameResultSink(repo *repositories.GameResultRepository) *GameResultSink {
	return &GameResultSink{repo: repo}
}

func (s *GameResultSink) RecordResult(res game.Result) {
	if s.repo == nil {
		return
	}

	rec := &models.GameResult{
		GroupID:    res.GroupID,
		Mode:       string(res.Mode),
		WinnerName: res.Winner,
		IsTie:      res.Winner == "" && !res.Forfeit,
		Forfeit:    res.Forfeit,
		FinishedAt: res.FinishedAt,
	}
	if len(res.Players) > 0 {
		rec.Player1Name = res.Players[0].Display
		rec.Player1Score = res.Players[0].Score
	}
	if len(res.Players) > 1 {
		rec.Player2Name = res.Players[1].Display
		rec.Player2Score = res.Players[1].Score
	}

	go func() {
		if err := s.repo.Create(rec); err != nil {
			logger.Error("Failed to persist game result", "group_id", res.GroupID, "error", err)
		}
	}()
}
