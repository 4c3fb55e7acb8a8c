package tournamentservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/Black-And-White-Club/frolf-bot-shared/observability/attr"
	"github.com/Black-And-White-Club/wordle-bot/app/shared/clock"
	"github.com/Black-And-White-Club/wordle-bot/app/shared/observability"
	sharedtypes "github.com/Black-And-White-Club/wordle-bot/app/shared/types"
	"go.opentelemetry.io/otel/trace"
)

const (
	GroupOnlyReply     = "Tournaments can only be created in a group chat."
	AskStartDateReply  = "📅 When should the tournament start? Send the date as YYYY-MM-DD, or /cancel to stop."
	BadDateReply       = "❌ That doesn't look like a date. Please send the start date as YYYY-MM-DD."
	PastDateReply      = "❌ The start date can't be in the past. Please send today's date or a later one (YYYY-MM-DD)."
	AskDaysReply       = "⏱ How many days should the tournament last? Send a number from 1 to 30."
	BadDaysReply       = "❌ Please send a whole number of days from 1 to 30."
	CancelledReply     = "Tournament creation cancelled."
	NothingToCancel    = "There is no tournament creation in progress."
	CreateFailedReply  = "⚠️ The tournament could not be created. Please try again."
	tournamentSummary  = "Start: %s\nEnd: %s\nDays: %d\n\nUse /join to take part and /leaderboard to see the standings."
	alreadyActiveReply = "⚠️ This group already has a tournament running until %s. Create a new one after it ends."
)

// DialogEntry is the context a creation dialog starts from.
type DialogEntry struct {
	GroupID       sharedtypes.GroupID
	ChatID        string
	ParticipantID sharedtypes.ParticipantID
	InGroup       bool
}

// DialogReply is the text the dialog wants sent back, and where.
type DialogReply struct {
	ChatID string
	Text   string
	// Stage is the stage the session is in after the step; empty once the dialog is over.
	Stage Stage
}

// Lifecycle is the part of the lifecycle manager the dialog drives.
type Lifecycle interface {
	CreateTournament(ctx context.Context, req CreateTournamentRequest) (CreateOperationResult, error)
	GetActiveTournament(ctx context.Context, groupID sharedtypes.GroupID) (TournamentOperationResult, error)
}

// CreationDialog asks for a start date and a duration, then creates the tournament.
type CreationDialog struct {
	sessions *SessionStore
	creator  Lifecycle
	dates    *DateParser
	calendar *clock.GameCalendar
	logger   *slog.Logger
	tracer   trace.Tracer
}

// NewCreationDialog creates a CreationDialog.
func NewCreationDialog(
	sessions *SessionStore,
	creator Lifecycle,
	dates *DateParser,
	calendar *clock.GameCalendar,
	logger *slog.Logger,
	tracer trace.Tracer,
) *CreationDialog {
	if dates == nil {
		dates = NewDateParser()
	}
	if calendar == nil {
		calendar = clock.NewGameCalendar(nil, nil)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CreationDialog{
		sessions: sessions,
		creator:  creator,
		dates:    dates,
		calendar: calendar,
		logger:   logger,
		tracer:   tracer,
	}
}

// Begin starts, or restarts, the participant's dialog.
func (d *CreationDialog) Begin(ctx context.Context, entry DialogEntry) DialogReply {
	ctx, span := d.startSpan(ctx, "CreationDialog.Begin")
	defer span.End()

	if !entry.InGroup || entry.GroupID == "" {
		return DialogReply{ChatID: entry.ChatID, Text: GroupOnlyReply}
	}

	d.sessions.Put(DialogSession{
		ParticipantID: entry.ParticipantID,
		GroupID:       entry.GroupID,
		ChatID:        entry.ChatID,
		Stage:         StageAwaitingStartDate,
	})

	d.logger.InfoContext(ctx, "Tournament creation dialog started",
		observability.CorrelationAttr(ctx),
		attr.String("participant_id", entry.ParticipantID.String()),
		attr.String("group_id", entry.GroupID.String()),
	)
	return DialogReply{ChatID: entry.ChatID, Text: AskStartDateReply, Stage: StageAwaitingStartDate}
}

// Answer feeds free text to the participant's dialog. ok is false when the participant has
// no dialog in progress. The error is non-nil only for infrastructure failures, in which case
// the session is left untouched so the same answer can be replayed.
func (d *CreationDialog) Answer(ctx context.Context, participantID sharedtypes.ParticipantID, text string) (reply DialogReply, ok bool, err error) {
	ctx, span := d.startSpan(ctx, "CreationDialog.Answer")
	defer span.End()

	session, ok := d.sessions.Get(participantID)
	if !ok {
		return DialogReply{}, false, nil
	}

	text = strings.TrimSpace(text)
	if strings.EqualFold(text, "cancel") {
		reply, _ := d.Cancel(ctx, participantID)
		return reply, true, nil
	}

	switch session.Stage {
	case StageAwaitingStartDate:
		return d.answerStartDate(ctx, session, text), true, nil
	case StageAwaitingDays:
		reply, err := d.answerDays(ctx, session, text)
		return reply, true, err
	default:
		d.sessions.Discard(participantID)
		return DialogReply{}, false, nil
	}
}

// Cancel discards the participant's dialog. ok reports whether one was in progress.
func (d *CreationDialog) Cancel(ctx context.Context, participantID sharedtypes.ParticipantID) (DialogReply, bool) {
	session, found := d.sessions.Get(participantID)
	d.sessions.Discard(participantID)
	if !found {
		return DialogReply{Text: NothingToCancel}, false
	}
	d.logger.InfoContext(ctx, "Tournament creation dialog cancelled",
		observability.CorrelationAttr(ctx),
		attr.String("participant_id", participantID.String()),
	)
	return DialogReply{ChatID: session.ChatID, Text: CancelledReply}, true
}

func (d *CreationDialog) answerStartDate(ctx context.Context, session DialogSession, text string) DialogReply {
	now := d.calendar.Now()
	start, err := d.dates.Parse(text, now)
	if err != nil {
		d.logger.DebugContext(ctx, "Rejected start date",
			attr.String("participant_id", session.ParticipantID.String()),
			attr.Error(err),
		)
		d.sessions.Put(session)
		return DialogReply{ChatID: session.ChatID, Text: BadDateReply, Stage: StageAwaitingStartDate}
	}
	if start.Before(d.calendar.Today()) {
		d.sessions.Put(session)
		return DialogReply{ChatID: session.ChatID, Text: PastDateReply, Stage: StageAwaitingStartDate}
	}

	session.StartDate = start
	session.Stage = StageAwaitingDays
	d.sessions.Put(session)
	return DialogReply{ChatID: session.ChatID, Text: AskDaysReply, Stage: StageAwaitingDays}
}

func (d *CreationDialog) answerDays(ctx context.Context, session DialogSession, text string) (DialogReply, error) {
	days, err := strconv.Atoi(text)
	if err != nil || days < MinDurationDays || days > MaxDurationDays {
		d.sessions.Put(session)
		return DialogReply{ChatID: session.ChatID, Text: BadDaysReply, Stage: StageAwaitingDays}, nil
	}

	result, err := d.creator.CreateTournament(ctx, CreateTournamentRequest{
		GroupID:      session.GroupID,
		CreatorID:    session.ParticipantID,
		StartDate:    session.StartDate,
		DurationDays: days,
	})
	if err != nil {
		return DialogReply{}, err
	}

	if result.IsFailure() {
		failure := *result.Failure
		switch {
		case errors.Is(failure, ErrInvalidWindow):
			// The start date went stale while the dialog was open.
			session.Stage = StageAwaitingStartDate
			d.sessions.Put(session)
			return DialogReply{ChatID: session.ChatID, Text: PastDateReply, Stage: StageAwaitingStartDate}, nil
		case errors.Is(failure, ErrTournamentAlreadyActive):
			d.sessions.Discard(session.ParticipantID)
			return DialogReply{ChatID: session.ChatID, Text: d.alreadyActiveText(ctx, session.GroupID)}, nil
		default:
			d.sessions.Discard(session.ParticipantID)
			d.logger.WarnContext(ctx, "Tournament creation failed",
				observability.CorrelationAttr(ctx),
				attr.String("group_id", session.GroupID.String()),
				attr.Error(failure),
			)
			return DialogReply{ChatID: session.ChatID, Text: CreateFailedReply}, nil
		}
	}

	d.sessions.Discard(session.ParticipantID)
	return DialogReply{ChatID: session.ChatID, Text: CreatedText(*result.Success)}, nil
}

func (d *CreationDialog) alreadyActiveText(ctx context.Context, groupID sharedtypes.GroupID) string {
	res, err := d.creator.GetActiveTournament(ctx, groupID)
	if err == nil && res.IsSuccess() {
		return fmt.Sprintf(alreadyActiveReply, sharedtypes.FormatDay((*res.Success).EndDate))
	}
	return fmt.Sprintf(alreadyActiveReply, "its end date")
}

func (d *CreationDialog) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	if d.tracer == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return d.tracer.Start(ctx, name)
}

// CreatedText renders the confirmation for a create call.
func CreatedText(created *CreatedTournament) string {
	t := created.Tournament
	header := "🏆 Tournament created!"
	if !created.Created {
		header = "ℹ️ This tournament already exists."
	}
	return header + "\n\n" + fmt.Sprintf(tournamentSummary,
		sharedtypes.FormatDay(t.StartDate),
		sharedtypes.FormatDay(t.EndDate),
		t.DurationDays(),
	)
}
