package services

import "github.com/rs/zerolog/log"

func logWarn(err error, eventType string) {
	log.Warn().Err(err).Str("event_type", eventType).Msg("Failed to record activity event")
}
