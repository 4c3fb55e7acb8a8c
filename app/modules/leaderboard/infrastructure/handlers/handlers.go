package leaderboardhandlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Black-And-White-Club/frolf-bot-shared/observability/attr"
	chatevents "github.com/Black-And-White-Club/wordle-bot/app/events/chat"
	leaderboardservice "github.com/Black-And-White-Club/wordle-bot/app/modules/leaderboard/application"
	"github.com/Black-And-White-Club/wordle-bot/app/shared/handlerwrapper"
	"github.com/Black-And-White-Club/wordle-bot/app/shared/observability"
	sharedtypes "github.com/Black-And-White-Club/wordle-bot/app/shared/types"
	"go.opentelemetry.io/otel/trace"
)

const (
	noActiveTournamentReply = "There is no active tournament in this chat. Use /create_tournament to start one."
	groupCommandReply       = "Use this command in the group chat that runs the tournament."
	unavailableReply        = "⚠️ The leaderboard is unavailable right now. Please try again."
	chartFilename           = "leaderboard.png"
)

// LeaderboardHandlers implements the Handlers interface.
type LeaderboardHandlers struct {
	service leaderboardservice.Service
	palette leaderboardservice.ChartPalette
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewLeaderboardHandlers creates a new LeaderboardHandlers instance.
func NewLeaderboardHandlers(
	service leaderboardservice.Service,
	logger *slog.Logger,
	tracer trace.Tracer,
) Handlers {
	return &LeaderboardHandlers{
		service: service,
		palette: leaderboardservice.DefaultChartPalette,
		logger:  logger,
		tracer:  tracer,
	}
}

// HandleLeaderboardRequested replies with the ranked standings.
func (h *LeaderboardHandlers) HandleLeaderboardRequested(ctx context.Context, payload *chatevents.ChatEventV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "LeaderboardHandlers.HandleLeaderboardRequested")
	defer span.End()

	if !payload.IsGroup() {
		return reply(payload.ChatID, groupCommandReply), nil
	}

	res, err := h.service.ComputeLeaderboard(ctx, payload.GroupID)
	if err != nil {
		return nil, err
	}
	if res.IsFailure() {
		return reply(payload.ChatID, h.failureText(ctx, payload.GroupID, *res.Failure)), nil
	}

	return reply(payload.ChatID, (*res.Success).Render()), nil
}

// HandleLeaderboardChartRequested replies with a bar chart of the averages.
func (h *LeaderboardHandlers) HandleLeaderboardChartRequested(ctx context.Context, payload *chatevents.ChatEventV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "LeaderboardHandlers.HandleLeaderboardChartRequested")
	defer span.End()

	if !payload.IsGroup() {
		return reply(payload.ChatID, groupCommandReply), nil
	}

	res, err := h.service.ComputeLeaderboard(ctx, payload.GroupID)
	if err != nil {
		return nil, err
	}
	if res.IsFailure() {
		return reply(payload.ChatID, h.failureText(ctx, payload.GroupID, *res.Failure)), nil
	}

	board := *res.Success
	if board.NotStarted {
		return reply(payload.ChatID, board.Render()), nil
	}

	png, err := leaderboardservice.GenerateLeaderboardChart(board, h.palette)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to render leaderboard chart",
			observability.CorrelationAttr(ctx),
			attr.String("group_id", payload.GroupID.String()),
			attr.Error(err),
		)
		return reply(payload.ChatID, unavailableReply), nil
	}

	return []handlerwrapper.Result{{
		Topic: chatevents.SendPhotoV1,
		Payload: &chatevents.SendFilePayloadV1{
			Destination: payload.ChatID,
			Caption:     fmt.Sprintf("🏆 Day %d of %d", board.DaysElapsed, board.Tournament.DurationDays()),
			Filename:    chartFilename,
			Data:        png,
		},
	}}, nil
}

// HandleTournamentExportRequested replies with a spreadsheet of the tournament's scores.
func (h *LeaderboardHandlers) HandleTournamentExportRequested(ctx context.Context, payload *chatevents.ChatEventV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "LeaderboardHandlers.HandleTournamentExportRequested")
	defer span.End()

	if !payload.IsGroup() {
		return reply(payload.ChatID, groupCommandReply), nil
	}

	res, err := h.service.ExportTournament(ctx, payload.GroupID)
	if err != nil {
		return nil, err
	}
	if res.IsFailure() {
		return reply(payload.ChatID, h.failureText(ctx, payload.GroupID, *res.Failure)), nil
	}

	export := *res.Success
	h.logger.InfoContext(ctx, "Tournament exported",
		observability.CorrelationAttr(ctx),
		attr.String("group_id", payload.GroupID.String()),
		attr.String("filename", export.Filename),
		attr.Int("size_bytes", len(export.Data)),
	)
	return []handlerwrapper.Result{{
		Topic: chatevents.SendDocumentV1,
		Payload: &chatevents.SendFilePayloadV1{
			Destination: payload.ChatID,
			Caption:     "📊 Tournament scores",
			Filename:    export.Filename,
			Data:        export.Data,
		},
	}}, nil
}

func (h *LeaderboardHandlers) failureText(ctx context.Context, groupID sharedtypes.GroupID, failure error) string {
	if errors.Is(failure, leaderboardservice.ErrNoActiveTournament) {
		return noActiveTournamentReply
	}
	h.logger.WarnContext(ctx, "Leaderboard request failed",
		observability.CorrelationAttr(ctx),
		attr.String("group_id", groupID.String()),
		attr.Error(failure),
	)
	return unavailableReply
}

func reply(destination, text string) []handlerwrapper.Result {
	return []handlerwrapper.Result{{
		Topic:   chatevents.SendTextV1,
		Payload: &chatevents.SendTextPayloadV1{Destination: destination, Text: text},
	}}
}
