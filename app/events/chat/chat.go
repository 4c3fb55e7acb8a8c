// Package chatevents defines the subjects and payloads exchanged with the chat transport.
package chatevents

import (
	sharedtypes "github.com/Black-And-White-Club/wordle-bot/app/shared/types"
)

// StreamName is the JetStream stream that carries every subject below.
const StreamName = "wordle"

// Inbound subjects published by the chat transport.
const (
	StartCommandV1              = "wordle.chat.start.v1"
	PlayCommandV1               = "wordle.chat.play.v1"
	GameResultSubmittedV1       = "wordle.chat.game_result.v1"
	TournamentCreateRequestedV1 = "wordle.chat.tournament.create.v1"
	DialogTextReceivedV1        = "wordle.chat.dialog.text.v1"
	DialogCancelRequestedV1     = "wordle.chat.dialog.cancel.v1"
	TournamentJoinRequestedV1   = "wordle.chat.tournament.join.v1"
	TournamentLeaveRequestedV1  = "wordle.chat.tournament.leave.v1"
	LeaderboardRequestedV1      = "wordle.chat.leaderboard.requested.v1"
	LeaderboardChartRequestedV1 = "wordle.chat.leaderboard.chart.requested.v1"
	TournamentExportRequestedV1 = "wordle.chat.tournament.export.requested.v1"
)

// Outbound subjects consumed by the chat transport.
const (
	SendTextV1     = "wordle.chat.send_text.v1"
	SendPhotoV1    = "wordle.chat.send_photo.v1"
	SendDocumentV1 = "wordle.chat.send_document.v1"
)

// DisplayNameResolveV1 is the request/reply subject the transport answers with a
// participant's display name.
const DisplayNameResolveV1 = "wordle.chat.display_name.resolve.v1"

// DeadLetterV1 receives messages whose handlers kept failing after retries.
const DeadLetterV1 = "wordle.dead_letter.v1"

// Metadata keys copied onto every inbound message by the transport.
const (
	MetadataChatID        = "chat_id"
	MetadataParticipantID = "participant_id"
)

// ChatType mirrors the transport's chat kinds.
type ChatType string

const (
	ChatTypePrivate    ChatType = "private"
	ChatTypeGroup      ChatType = "group"
	ChatTypeSupergroup ChatType = "supergroup"
)

// ChatEventV1 is the envelope for every inbound chat event.
type ChatEventV1 struct {
	GroupID       sharedtypes.GroupID       `json:"group_id,omitempty"`
	ChatID        string                    `json:"chat_id"`
	ChatType      ChatType                  `json:"chat_type"`
	ParticipantID sharedtypes.ParticipantID `json:"participant_id"`
	DisplayHint   string                    `json:"display_hint,omitempty"`
	Text          string                    `json:"text,omitempty"`
	// Payload carries the raw web-app data for game results.
	Payload string `json:"payload,omitempty"`
}

// IsGroup reports whether the event came from a group conversation.
func (e *ChatEventV1) IsGroup() bool {
	return (e.ChatType == ChatTypeGroup || e.ChatType == ChatTypeSupergroup) && e.GroupID != ""
}

// SendTextPayloadV1 asks the transport to deliver a text message.
type SendTextPayloadV1 struct {
	Destination string `json:"destination"`
	Text        string `json:"text"`
	// WebAppURL, when set, is attached as a button that opens the game.
	WebAppURL string `json:"web_app_url,omitempty"`
}

// SendFilePayloadV1 asks the transport to deliver a photo or document.
type SendFilePayloadV1 struct {
	Destination string `json:"destination"`
	Caption     string `json:"caption,omitempty"`
	Filename    string `json:"filename"`
	Data        []byte `json:"data"`
}

// DisplayNameRequestV1 is sent on DisplayNameResolveV1.
type DisplayNameRequestV1 struct {
	ParticipantID sharedtypes.ParticipantID `json:"participant_id"`
	GroupID       sharedtypes.GroupID       `json:"group_id,omitempty"`
}

// DisplayNameResponseV1 is the transport's reply on DisplayNameResolveV1.
type DisplayNameResponseV1 struct {
	DisplayName string `json:"display_name"`
}

// Reply builds a text reply to the conversation an event came from.
func Reply(event *ChatEventV1, text string) *SendTextPayloadV1 {
	return &SendTextPayloadV1{Destination: event.ChatID, Text: text}
}
